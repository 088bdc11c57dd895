package httpapi

import (
	"time"

	"qrmenu/order-svc/internal/cart"
	"qrmenu/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

type sessionRequest struct {
	QRToken string `json:"qr_token" validate:"omitempty,max=64"`
}

type choiceRequest struct {
	GroupID   int   `json:"group_id" validate:"gt=0"`
	OptionIDs []int `json:"option_ids" validate:"dive,gt=0"`
}

type addLineRequest struct {
	ProductID int             `json:"product_id" validate:"gt=0"`
	Quantity  int             `json:"quantity" validate:"gte=1,lte=99"`
	Choices   []choiceRequest `json:"choices" validate:"dive"`
}

type updateLineRequest struct {
	Delta int `json:"delta" validate:"ne=0"`
}

type checkoutRequest struct {
	OrderType string `json:"order_type" validate:"omitempty,oneof=dine-in takeaway"`
	Notes     string `json:"notes" validate:"max=500"`
}

type orderItemRequest struct {
	ProductID      int     `json:"product_id" validate:"gte=0"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Quantity       int     `json:"quantity"`
	Customizations string  `json:"customizations" validate:"max=500"`
}

// Item contents are checked by the order service so an empty list reports
// an empty cart rather than a validation failure.
type createOrderRequest struct {
	OrderType   string             `json:"order_type" validate:"required,oneof=dine-in takeaway"`
	Items       []orderItemRequest `json:"items"`
	Notes       string             `json:"notes" validate:"max=500"`
	TotalAmount *float64           `json:"total_amount"`
	TableID     *int               `json:"table_id" validate:"omitempty,gt=0"`
	TableNumber *int               `json:"table_number" validate:"omitempty,gt=0"`
}

type createOrderResponse struct {
	OrderID     int    `json:"order_id"`
	OrderNumber string `json:"order_number"`
}

type statusRequest struct {
	Status   string `json:"status" validate:"required,oneof=pending preparing ready completed cancelled"`
	Override bool   `json:"override"`
}

type createTableRequest struct {
	TableNumber int    `json:"table_number" validate:"required,gte=1"`
	TableName   string `json:"table_name" validate:"max=100"`
	Capacity    int    `json:"capacity" validate:"gte=0,lte=100"`
	Location    string `json:"location" validate:"max=100"`
	IsActive    *bool  `json:"is_active"`
}

type updateTableRequest struct {
	TableNumber *int    `json:"table_number"`
	TableName   *string `json:"table_name" validate:"omitempty,max=100"`
	Capacity    *int    `json:"capacity" validate:"omitempty,gte=1,lte=100"`
	Location    *string `json:"location" validate:"omitempty,max=100"`
	IsActive    *bool   `json:"is_active"`
}

type waiterCallRequest struct {
	TableID     int    `json:"table_id" validate:"required,gt=0"`
	TableNumber int    `json:"table_number" validate:"gte=0"`
	Note        string `json:"note" validate:"max=500"`
}

type waiterCallStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending acknowledged completed"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required_without=Email"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

type cartLineView struct {
	*cart.Line
	Summary  string          `json:"summary,omitempty"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type cartView struct {
	Lines     []cartLineView  `json:"lines"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

func newCartView(c *cart.Cart) cartView {
	view := cartView{
		Lines:     make([]cartLineView, 0, len(c.Lines)),
		Total:     c.Total(),
		ItemCount: c.ItemCount(),
	}
	for _, line := range c.Lines {
		view.Lines = append(view.Lines, cartLineView{Line: line, Summary: line.Summary(), Subtotal: line.Subtotal()})
	}
	return view
}

type trackedItemView struct {
	ProductName    string `json:"product_name"`
	Quantity       int    `json:"quantity"`
	Customizations string `json:"customizations,omitempty"`
}

// orderTrackingView is what anyone holding an order number may see. Notes,
// the table and row ids stay with staff.
type orderTrackingView struct {
	OrderNumber string             `json:"order_number"`
	OrderType   domain.OrderType   `json:"order_type"`
	Status      domain.OrderStatus `json:"status"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	CreatedAt   time.Time          `json:"created_at"`
	Items       []trackedItemView  `json:"order_items"`
}

func newOrderTrackingView(order *domain.Order) orderTrackingView {
	view := orderTrackingView{
		OrderNumber: order.OrderNumber,
		OrderType:   order.OrderType,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		CreatedAt:   order.CreatedAt,
		Items:       make([]trackedItemView, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		view.Items = append(view.Items, trackedItemView{
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			Customizations: item.Customizations,
		})
	}
	return view
}
