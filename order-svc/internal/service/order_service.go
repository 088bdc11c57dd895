package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"qrmenu/events"
	"qrmenu/order-svc/internal/domain"
	"qrmenu/order-svc/internal/pricing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const orderNumberAttempts = 3

type CreateOrderInput struct {
	OrderType   domain.OrderType
	Items       []domain.OrderItem
	Note        string
	TableID     *int
	TableNumber *int
	// ExpectedTotal is the total the client showed the customer, if any.
	ExpectedTotal *decimal.Decimal
}

type OrderService struct {
	repo      OrderRepository
	numbers   OrderNumberGenerator
	publisher events.Publisher
	logger    *zap.SugaredLogger
	now       func() time.Time
}

func NewOrderService(repo OrderRepository, numbers OrderNumberGenerator, publisher events.Publisher, logger *zap.SugaredLogger) *OrderService {
	return &OrderService{
		repo:      repo,
		numbers:   numbers,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock replaces the clock used for order numbers and timestamps.
func (s *OrderService) WithClock(now func() time.Time) *OrderService {
	s.now = now
	return s
}

func validateItems(items []domain.OrderItem) ([]domain.OrderItem, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	snapshot := make([]domain.OrderItem, 0, len(items))
	for i, item := range items {
		if strings.TrimSpace(item.ProductName) == "" {
			return nil, domain.InvalidInput("item %d has no product name", i+1)
		}
		if item.Quantity < 1 {
			return nil, domain.InvalidInput("item %q has quantity %d", item.ProductName, item.Quantity)
		}
		item.ID = 0
		item.OrderID = 0
		// Rounded before the subtotal so stored subtotals add up to the stored total.
		item.ProductPrice = pricing.Currency(item.ProductPrice)
		item.Subtotal = pricing.LineSubtotal(item.ProductPrice, item.Quantity)
		snapshot = append(snapshot, item)
	}
	return snapshot, nil
}

// Create validates and snapshots the items, then persists the order with all
// of its items in one unit. Nothing is retained when persistence fails.
func (s *OrderService) Create(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
	if !input.OrderType.Valid() {
		return nil, domain.InvalidInput("unknown order type %q", input.OrderType)
	}
	items, err := validateItems(input.Items)
	if err != nil {
		return nil, err
	}

	total := pricing.Total(items)
	if input.ExpectedTotal != nil && !pricing.Currency(*input.ExpectedTotal).Equal(total) {
		return nil, domain.InvalidInput("total %s does not match items total %s", input.ExpectedTotal.StringFixed(2), total.StringFixed(2))
	}

	order := &domain.Order{
		OrderType:     input.OrderType,
		TableID:       input.TableID,
		TableNumber:   input.TableNumber,
		TotalAmount:   total,
		Status:        domain.OrderPending,
		CustomerNotes: strings.TrimSpace(input.Note),
		Items:         items,
	}

	for attempt := 1; ; attempt++ {
		number, err := s.numbers.Next(ctx, s.now())
		if err != nil {
			s.logger.Errorw("failed to generate order number", "error", err)
			return nil, domain.ErrOrderCreationFailed
		}
		order.OrderNumber = number

		err = s.repo.CreateOrder(ctx, order)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrConflict) && attempt < orderNumberAttempts {
			s.logger.Warnw("order number collision, retrying", "order_number", number, "attempt", attempt)
			continue
		}
		s.logger.Errorw("failed to create order", "order_number", number, "error", err)
		if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrInvalidInput) {
			return nil, err
		}
		return nil, domain.ErrOrderCreationFailed
	}

	publish(ctx, s.publisher, s.logger, orderEvent(events.OrderCreated, order, s.now()))
	s.logger.Infow("order created", "order_id", order.ID, "order_number", order.OrderNumber, "total", order.TotalAmount.StringFixed(2))
	return order, nil
}

// SetStatus moves an order one step along its lifecycle. Any other move,
// including leaving a terminal state, needs override.
func (s *OrderService) SetStatus(ctx context.Context, id int, status domain.OrderStatus, override bool) (*domain.Order, error) {
	if !status.Valid() {
		return nil, domain.InvalidInput("unknown order status %q", status)
	}
	order, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status == status {
		return order, nil
	}
	if !override && !order.Status.CanTransitionTo(status) {
		return nil, domain.ErrInvalidTransition
	}

	affected, err := s.repo.UpdateOrderStatus(ctx, id, order.Status, status)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrConflict
	}

	if override && !order.Status.CanTransitionTo(status) {
		s.logger.Warnw("order status overridden", "order_id", id, "from", order.Status, "to", status)
	}
	previous := order.Status
	order.Status = status
	order.UpdatedAt = s.now()
	event := orderEvent(events.OrderStatusChanged, order, order.UpdatedAt)
	event.PreviousStatus = string(previous)
	publish(ctx, s.publisher, s.logger, event)
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, id int) (*domain.Order, error) {
	return s.repo.GetOrder(ctx, id)
}

func (s *OrderService) GetByNumber(ctx context.Context, number string) (*domain.Order, error) {
	return s.repo.GetOrderByNumber(ctx, number)
}

func (s *OrderService) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, domain.InvalidInput("unknown order status %q", *filter.Status)
	}
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 100
	}
	return s.repo.ListOrders(ctx, filter)
}

// publish runs after the row is committed, so it must outlive a client that
// has already hung up. A failed publish is logged and never undoes the mutation.
func publish(ctx context.Context, publisher events.Publisher, logger *zap.SugaredLogger, event events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		logger.Warnw("failed to publish event", "type", event.Type, "key", event.Key(), "error", err)
	}
}

func orderEvent(t events.Type, order *domain.Order, at time.Time) events.Event {
	total := order.TotalAmount
	event := events.Event{
		Type:        t,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		OrderType:   string(order.OrderType),
		TotalAmount: &total,
		Status:      string(order.Status),
		OrderedAt:   order.CreatedAt,
		Timestamp:   at,
	}
	if event.OrderedAt.IsZero() {
		event.OrderedAt = at
	}
	if order.TableNumber != nil {
		event.TableNumber = *order.TableNumber
	}
	// Status changes carry the items too so a cancellation can be taken back
	// out of the daily read models.
	for _, item := range order.Items {
		event.Items = append(event.Items, events.Item{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
		})
	}
	return event
}
