package service

import (
	"context"
	"fmt"
	"strings"

	"qrmenu/order-svc/internal/cart"
	"qrmenu/order-svc/internal/customization"
	"qrmenu/order-svc/internal/domain"

	"go.uber.org/zap"
)

// Choice is the full set of options picked for one group. It replaces the
// group's defaults.
type Choice struct {
	GroupID   int
	OptionIDs []int
}

type AddLineInput struct {
	ProductID int
	Quantity  int
	Choices   []Choice
}

type CheckoutInput struct {
	OrderType domain.OrderType
	Note      string
}

type CartService struct {
	store   CartStore
	catalog CatalogRepository
	orders  OrderServiceInterface
	logger  *zap.SugaredLogger
}

func NewCartService(store CartStore, catalog CatalogRepository, orders OrderServiceInterface, logger *zap.SugaredLogger) *CartService {
	return &CartService{store: store, catalog: catalog, orders: orders, logger: logger}
}

func (s *CartService) Get(ctx context.Context, session domain.Session) (*cart.Cart, error) {
	return s.store.LoadCart(ctx, session.ID)
}

func (s *CartService) AddLine(ctx context.Context, session domain.Session, input AddLineInput) (*cart.Cart, error) {
	if input.Quantity < 1 {
		return nil, domain.InvalidInput("quantity must be at least 1")
	}
	product, err := s.catalog.GetProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsAvailable {
		return nil, domain.InvalidInput("%s is not available", product.Name)
	}
	groups, err := s.catalog.ListCustomizations(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	sel, err := applyChoices(groups, input.Choices)
	if err != nil {
		return nil, err
	}
	if !sel.IsComplete() {
		return nil, fmt.Errorf("%w: %s", domain.ErrCustomizationIncomplete, strings.Join(sel.Missing(), ", "))
	}

	c, err := s.store.LoadCart(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	if _, err := c.AddLine(*product, sel, input.Quantity); err != nil {
		return nil, err
	}
	if err := s.store.SaveCart(ctx, session.ID, c); err != nil {
		return nil, err
	}
	return c, nil
}

func applyChoices(groups []domain.CustomizationGroup, choices []Choice) (*customization.Selection, error) {
	modes := make(map[int]domain.SelectionMode, len(groups))
	for _, g := range groups {
		modes[g.ID] = g.Mode
	}

	sel := customization.NewSelection(groups)
	for _, choice := range choices {
		if err := sel.Clear(choice.GroupID); err != nil {
			return nil, err
		}
		if modes[choice.GroupID] == domain.SelectionSingle {
			if len(choice.OptionIDs) > 1 {
				return nil, domain.InvalidInput("group %d takes a single option", choice.GroupID)
			}
			for _, optionID := range choice.OptionIDs {
				if err := sel.Select(choice.GroupID, optionID); err != nil {
					return nil, err
				}
			}
			continue
		}
		for _, optionID := range choice.OptionIDs {
			if err := sel.Toggle(choice.GroupID, optionID, true); err != nil {
				return nil, err
			}
		}
	}
	return sel, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, session domain.Session, key string, delta int) (*cart.Cart, error) {
	c, err := s.store.LoadCart(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	if _, ok := c.Line(key); !ok {
		return nil, domain.NotFound("cart line")
	}
	c.UpdateQuantity(key, delta)
	if err := s.store.SaveCart(ctx, session.ID, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CartService) RemoveLine(ctx context.Context, session domain.Session, key string) (*cart.Cart, error) {
	c, err := s.store.LoadCart(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	c.RemoveLine(key)
	if err := s.store.SaveCart(ctx, session.ID, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CartService) Clear(ctx context.Context, session domain.Session) error {
	return s.store.DeleteCart(ctx, session.ID)
}

// Checkout turns the cart into an order. The cart is only dropped once the
// order exists, so a failed checkout can be retried as is.
func (s *CartService) Checkout(ctx context.Context, session domain.Session, input CheckoutInput) (*domain.Order, error) {
	c, err := s.store.LoadCart(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}

	orderType := input.OrderType
	if orderType == "" {
		orderType = domain.OrderTypeTakeaway
		if session.TableID != nil {
			orderType = domain.OrderTypeDineIn
		}
	}
	total := c.Total()
	order, err := s.orders.Create(ctx, CreateOrderInput{
		OrderType:     orderType,
		Items:         c.Items(),
		Note:          input.Note,
		TableID:       session.TableID,
		TableNumber:   session.TableNumber,
		ExpectedTotal: &total,
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteCart(ctx, session.ID); err != nil {
		s.logger.Warnw("failed to clear cart after checkout", "session_id", session.ID, "order_number", order.OrderNumber, "error", err)
	}
	return order, nil
}
