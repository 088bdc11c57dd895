package service

import (
	"context"
	"time"

	"qrmenu/order-svc/internal/cart"
	"qrmenu/order-svc/internal/domain"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, id int) (*domain.Order, error)
	GetOrderByNumber(ctx context.Context, number string) (*domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id int, from, to domain.OrderStatus) (int64, error)
}

type OrderNumberGenerator interface {
	Next(ctx context.Context, at time.Time) (string, error)
}

type TableRepository interface {
	CreateTable(ctx context.Context, table *domain.Table) error
	GetTable(ctx context.Context, id int) (*domain.Table, error)
	GetTableByQRCode(ctx context.Context, qrCode string) (*domain.Table, error)
	ListTables(ctx context.Context) ([]domain.Table, error)
	UpdateTable(ctx context.Context, table *domain.Table) error
	DeleteTable(ctx context.Context, id int) (int64, error)
}

type WaiterCallRepository interface {
	CreateWaiterCall(ctx context.Context, call *domain.WaiterCall) error
	GetWaiterCall(ctx context.Context, id int) (*domain.WaiterCall, error)
	ListWaiterCalls(ctx context.Context, status *domain.WaiterCallStatus) ([]domain.WaiterCall, error)
	UpdateWaiterCallStatus(ctx context.Context, call *domain.WaiterCall, from domain.WaiterCallStatus) (int64, error)
}

type CatalogRepository interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListAvailableProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
	ListCustomizations(ctx context.Context, productID int) ([]domain.CustomizationGroup, error)
}

type UserRepository interface {
	GetUserByLogin(ctx context.Context, login string) (*domain.AdminUser, error)
	GetUser(ctx context.Context, id int) (*domain.AdminUser, error)
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
}

type StatsRepository interface {
	CountOrders(ctx context.Context, status *domain.OrderStatus) (int, error)
	CountProducts(ctx context.Context) (int, error)
	DailyOrderStats(ctx context.Context, from, to time.Time) (domain.DailyStats, error)
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]domain.ProductScore, error)
}

// StatsCache is the Redis read model kept by stats-svc. DailyStats returns nil
// for a day it has not counted.
type StatsCache interface {
	TopProducts(ctx context.Context, day time.Time, limit int) ([]domain.ProductScore, error)
	DailyStats(ctx context.Context, day time.Time) (*domain.DailyStats, error)
}

type CartStore interface {
	LoadCart(ctx context.Context, sessionID string) (*cart.Cart, error)
	SaveCart(ctx context.Context, sessionID string, c *cart.Cart) error
	DeleteCart(ctx context.Context, sessionID string) error
}

type RevocationStore interface {
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

// CredentialVerifier is the single way an admin proves who they are.
type CredentialVerifier interface {
	Verify(ctx context.Context, login, password string) (*domain.AdminUser, error)
}

type TokenIssuer interface {
	Issue(session domain.Session) (string, error)
	Parse(token string) (*domain.Session, error)
}

type OrderServiceInterface interface {
	Create(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	SetStatus(ctx context.Context, id int, status domain.OrderStatus, override bool) (*domain.Order, error)
	Get(ctx context.Context, id int) (*domain.Order, error)
	GetByNumber(ctx context.Context, number string) (*domain.Order, error)
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
}

type TableServiceInterface interface {
	Create(ctx context.Context, input TableInput) (*domain.Table, error)
	Update(ctx context.Context, id int, patch TablePatch) (*domain.Table, error)
	Delete(ctx context.Context, id int) error
	Get(ctx context.Context, id int) (*domain.Table, error)
	List(ctx context.Context) ([]domain.Table, error)
	ResolveByQR(ctx context.Context, qrCode string) (*domain.Table, error)
}

type WaiterCallServiceInterface interface {
	Create(ctx context.Context, input WaiterCallInput) (*domain.WaiterCall, error)
	List(ctx context.Context, status *domain.WaiterCallStatus) ([]domain.WaiterCall, error)
	Transition(ctx context.Context, id int, status domain.WaiterCallStatus) (*domain.WaiterCall, error)
}

type CatalogServiceInterface interface {
	Menu(ctx context.Context) ([]domain.Category, error)
	Product(ctx context.Context, id int) (*domain.Product, error)
	Customizations(ctx context.Context, productID int) ([]domain.CustomizationGroup, error)
}

type CartServiceInterface interface {
	Get(ctx context.Context, session domain.Session) (*cart.Cart, error)
	AddLine(ctx context.Context, session domain.Session, input AddLineInput) (*cart.Cart, error)
	UpdateQuantity(ctx context.Context, session domain.Session, key string, delta int) (*cart.Cart, error)
	RemoveLine(ctx context.Context, session domain.Session, key string) (*cart.Cart, error)
	Clear(ctx context.Context, session domain.Session) error
	Checkout(ctx context.Context, session domain.Session, input CheckoutInput) (*domain.Order, error)
}

type AuthServiceInterface interface {
	Login(ctx context.Context, login, password string) (string, *domain.AdminUser, error)
	Logout(ctx context.Context, session domain.Session) error
	Authenticate(ctx context.Context, token string) (*domain.Session, error)
	Me(ctx context.Context, session domain.Session) (*domain.AdminUser, error)
	ChangePassword(ctx context.Context, session domain.Session, current, next string) error
	GuestSession(ctx context.Context, qrCode string) (string, *domain.Session, error)
}

type StatsServiceInterface interface {
	Summary(ctx context.Context, day time.Time) (*domain.StatsResponse, error)
}

var (
	_ OrderServiceInterface      = (*OrderService)(nil)
	_ TableServiceInterface      = (*TableService)(nil)
	_ WaiterCallServiceInterface = (*WaiterCallService)(nil)
	_ CatalogServiceInterface    = (*CatalogService)(nil)
	_ CartServiceInterface       = (*CartService)(nil)
	_ AuthServiceInterface       = (*AuthService)(nil)
	_ StatsServiceInterface      = (*StatsService)(nil)
)
