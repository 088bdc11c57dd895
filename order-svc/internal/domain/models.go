package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	DisplayOrder int       `json:"display_order"`
	Products     []Product `json:"products,omitempty"`
}

type Product struct {
	ID           int             `json:"id"`
	CategoryID   int             `json:"category_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	ImageURL     string          `json:"image_url,omitempty"`
	IsAvailable  bool            `json:"is_available"`
	DisplayOrder int             `json:"display_order"`
	CreatedAt    time.Time       `json:"created_at"`
}

type SelectionMode string

const (
	SelectionSingle   SelectionMode = "single"
	SelectionMultiple SelectionMode = "multiple"
)

type CustomizationGroup struct {
	ID           int                   `json:"id"`
	ProductID    int                   `json:"product_id"`
	Name         string                `json:"name"`
	Mode         SelectionMode         `json:"type"`
	IsRequired   bool                  `json:"is_required"`
	DisplayOrder int                   `json:"display_order"`
	Options      []CustomizationOption `json:"customization_options"`
}

type CustomizationOption struct {
	ID              int             `json:"id"`
	GroupID         int             `json:"customization_id"`
	Label           string          `json:"label"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
	IsDefault       bool            `json:"is_default"`
	DisplayOrder    int             `json:"display_order"`
}

// SelectedOption is the copy of a chosen option carried by a cart line.
type SelectedOption struct {
	GroupID         int             `json:"group_id"`
	GroupName       string          `json:"group_name"`
	OptionID        int             `json:"option_id"`
	Label           string          `json:"label"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
}

type OrderType string

const (
	OrderTypeDineIn   OrderType = "dine-in"
	OrderTypeTakeaway OrderType = "takeaway"
)

func (t OrderType) Valid() bool {
	return t == OrderTypeDineIn || t == OrderTypeTakeaway
}

type Order struct {
	ID            int             `json:"id"`
	OrderNumber   string          `json:"order_number"`
	OrderType     OrderType       `json:"order_type"`
	TableID       *int            `json:"table_id,omitempty"`
	TableNumber   *int            `json:"table_number,omitempty"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        OrderStatus     `json:"status"`
	CustomerNotes string          `json:"customer_notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Items         []OrderItem     `json:"order_items"`
}

// OrderItem is frozen at submission; it is never re-derived from the product.
type OrderItem struct {
	ID             int             `json:"id,omitempty"`
	OrderID        int             `json:"order_id,omitempty"`
	ProductID      int             `json:"product_id"`
	ProductName    string          `json:"product_name"`
	ProductPrice   decimal.Decimal `json:"product_price"`
	Quantity       int             `json:"quantity"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Customizations string          `json:"customizations,omitempty"`
}

type OrderFilter struct {
	Status *OrderStatus
	Limit  int
}

type Table struct {
	ID          int       `json:"id"`
	TableNumber int       `json:"table_number"`
	TableName   string    `json:"table_name"`
	QRCode      string    `json:"qr_code"`
	Capacity    int       `json:"capacity"`
	Location    string    `json:"location"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const (
	DefaultTableCapacity = 4
	DefaultTableLocation = "İç Mekan"
)

// QRToken derives the stable token printed on a table's QR code.
func QRToken(tableNumber int) string {
	return fmt.Sprintf("QR_TABLE_%03d", tableNumber)
}

func DefaultTableName(tableNumber int) string {
	return fmt.Sprintf("Masa %d", tableNumber)
}

type WaiterCall struct {
	ID             int              `json:"id"`
	TableID        int              `json:"table_id"`
	TableNumber    int              `json:"table_number"`
	Status         WaiterCallStatus `json:"status"`
	Note           string           `json:"note,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	AcknowledgedAt *time.Time       `json:"acknowledged_at,omitempty"`
	CompletedAt    *time.Time       `json:"completed_at,omitempty"`
}

type AdminUser struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Role string

const (
	RoleAdmin Role = "admin"
	RoleGuest Role = "guest"
)

type Session struct {
	ID          string    `json:"id"`
	Role        Role      `json:"role"`
	UserID      int       `json:"user_id,omitempty"`
	Username    string    `json:"username,omitempty"`
	TableID     *int      `json:"table_id,omitempty"`
	TableNumber *int      `json:"table_number,omitempty"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

type DailyStats struct {
	TotalOrders   int             `json:"totalOrders"`
	PendingOrders int             `json:"pendingOrders"`
	TotalProducts int             `json:"totalProducts"`
	TodayDineIn   int             `json:"todayDineIn"`
	TodayTakeaway int             `json:"todayTakeaway"`
	TodayTotal    int             `json:"todayTotal"`
	TodayRevenue  decimal.Decimal `json:"todayRevenue"`
}

type ProductScore struct {
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
}

type StatsResponse struct {
	Stats        DailyStats     `json:"stats"`
	RecentOrders []Order        `json:"recentOrders"`
	TopProducts  []ProductScore `json:"topProducts"`
}
