package service

import (
	"context"
	"time"

	"qrmenu/events"
	"qrmenu/stats-svc/internal/storage"

	"github.com/shopspring/decimal"
)

type StoreInterface interface {
	IncrementProducts(ctx context.Context, day time.Time, items []events.Item) error
	IncrementDaily(ctx context.Context, day time.Time, orderType string, total decimal.Decimal) error
	AdjustOrder(ctx context.Context, day time.Time, items []events.Item, total decimal.Decimal, sign int64) error
}

type ConsumerInterface interface {
	Start(ctx context.Context) error
	ProcessOrder(ctx context.Context, event events.Event)
}

var (
	_ StoreInterface    = (*storage.Store)(nil)
	_ ConsumerInterface = (*Consumer)(nil)
)
