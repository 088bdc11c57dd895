// Package events defines the change notifications emitted after a successful
// mutation and the publish/subscribe port they travel through.
package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	OrderCreated       Type = "order.created"
	OrderStatusChanged Type = "order.status_changed"
	WaiterCallCreated  Type = "waiter_call.created"
	WaiterCallUpdated  Type = "waiter_call.updated"
)

type Item struct {
	ProductID   int    `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

type Event struct {
	Type           Type             `json:"type"`
	OrderID        int              `json:"order_id,omitempty"`
	OrderNumber    string           `json:"order_number,omitempty"`
	OrderType      string           `json:"order_type,omitempty"`
	TotalAmount    *decimal.Decimal `json:"total_amount,omitempty"`
	Items          []Item           `json:"items,omitempty"`
	WaiterCallID   int              `json:"waiter_call_id,omitempty"`
	TableNumber    int              `json:"table_number,omitempty"`
	Status         string           `json:"status,omitempty"`
	PreviousStatus string           `json:"previous_status,omitempty"`
	// OrderedAt is when the order was placed; it picks the stats day.
	OrderedAt time.Time `json:"ordered_at"`
	Timestamp time.Time `json:"timestamp"`
}

// Day returns the stats day of an order event in loc.
func (e Event) Day(loc *time.Location) time.Time {
	at := e.OrderedAt
	if at.IsZero() {
		at = e.Timestamp
	}
	if at.IsZero() {
		at = time.Now()
	}
	return at.In(loc)
}

// Key groups related events onto the same partition.
func (e Event) Key() string {
	switch e.Type {
	case WaiterCallCreated, WaiterCallUpdated:
		return "table:" + itoa(e.TableNumber)
	default:
		return "order:" + itoa(e.OrderID)
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Filter reports whether a subscriber wants the event.
type Filter func(Event) bool

type Subscriber interface {
	Subscribe(ctx context.Context, filter Filter) (<-chan Event, error)
}

func OfTypes(types ...Type) Filter {
	wanted := make(map[Type]struct{}, len(types))
	for _, t := range types {
		wanted[t] = struct{}{}
	}
	return func(e Event) bool {
		_, ok := wanted[e.Type]
		return ok
	}
}
