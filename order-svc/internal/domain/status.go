package domain

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderPreparing, OrderCancelled},
	OrderPreparing: {OrderReady, OrderCancelled},
	OrderReady:     {OrderCompleted, OrderCancelled},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPreparing, OrderReady, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// CanTransitionTo reports whether next is a single forward step of the order
// lifecycle, or a cancellation of a non-terminal order.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type WaiterCallStatus string

const (
	WaiterCallPending      WaiterCallStatus = "pending"
	WaiterCallAcknowledged WaiterCallStatus = "acknowledged"
	WaiterCallCompleted    WaiterCallStatus = "completed"
)

func (s WaiterCallStatus) rank() int {
	switch s {
	case WaiterCallPending:
		return 1
	case WaiterCallAcknowledged:
		return 2
	case WaiterCallCompleted:
		return 3
	}
	return 0
}

func (s WaiterCallStatus) Valid() bool {
	return s.rank() > 0
}

// CanTransitionTo allows forward moves only; acknowledging may be skipped.
func (s WaiterCallStatus) CanTransitionTo(next WaiterCallStatus) bool {
	return s.Valid() && next.Valid() && next.rank() > s.rank()
}
