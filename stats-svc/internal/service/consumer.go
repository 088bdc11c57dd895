package service

import (
	"context"
	"time"

	"qrmenu/events"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const statusCancelled = "cancelled"

// Consumer folds order events into the per-day read models that the admin
// statistics screen reads.
type Consumer struct {
	Subscriber events.Subscriber
	Store      StoreInterface
	Loc        *time.Location
	Logger     *zap.SugaredLogger
}

func NewConsumer(subscriber events.Subscriber, store StoreInterface, loc *time.Location, logger *zap.SugaredLogger) *Consumer {
	if loc == nil {
		loc = time.UTC
	}
	return &Consumer{
		Subscriber: subscriber,
		Store:      store,
		Loc:        loc,
		Logger:     logger,
	}
}

// Start blocks until ctx is cancelled or the subscription ends.
func (c *Consumer) Start(ctx context.Context) error {
	stream, err := c.Subscriber.Subscribe(ctx, events.OfTypes(events.OrderCreated, events.OrderStatusChanged))
	if err != nil {
		return err
	}

	c.Logger.Infow("stats consumer started")
	for event := range stream {
		c.ProcessOrder(ctx, event)
	}
	c.Logger.Infow("stats consumer stopped")
	return nil
}

func (c *Consumer) ProcessOrder(ctx context.Context, event events.Event) {
	switch event.Type {
	case events.OrderCreated:
		c.countOrder(ctx, event)
	case events.OrderStatusChanged:
		c.adjustOrder(ctx, event)
	}
}

func (c *Consumer) countOrder(ctx context.Context, event events.Event) {
	day := event.Day(c.Loc)

	if err := c.Store.IncrementProducts(ctx, day, event.Items); err != nil {
		c.Logger.Errorw("failed to update product popularity", "order", event.OrderNumber, "error", err)
		return
	}

	if err := c.Store.IncrementDaily(ctx, day, event.OrderType, eventTotal(event)); err != nil {
		c.Logger.Errorw("failed to update daily totals", "order", event.OrderNumber, "error", err)
		return
	}

	c.Logger.Debugw("order counted", "order", event.OrderNumber, "items", len(event.Items), "day", day.Format(time.DateOnly))
}

// adjustOrder takes a cancelled order back out of revenue and popularity, and
// puts it back when the cancellation is overridden.
func (c *Consumer) adjustOrder(ctx context.Context, event events.Event) {
	var sign int64
	switch {
	case event.Status == statusCancelled && event.PreviousStatus != statusCancelled:
		sign = -1
	case event.PreviousStatus == statusCancelled && event.Status != statusCancelled:
		sign = 1
	default:
		return
	}

	day := event.Day(c.Loc)
	if err := c.Store.AdjustOrder(ctx, day, event.Items, eventTotal(event), sign); err != nil {
		c.Logger.Errorw("failed to adjust daily totals", "order", event.OrderNumber, "status", event.Status, "error", err)
		return
	}

	c.Logger.Debugw("order adjusted", "order", event.OrderNumber, "status", event.Status, "day", day.Format(time.DateOnly))
}

func eventTotal(event events.Event) decimal.Decimal {
	if event.TotalAmount == nil {
		return decimal.Zero
	}
	return *event.TotalAmount
}
