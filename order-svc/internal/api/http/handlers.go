package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"qrmenu/order-svc/internal/domain"
	"qrmenu/order-svc/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Services are the use cases the HTTP layer exposes.
type Services struct {
	Catalog     service.CatalogServiceInterface
	Cart        service.CartServiceInterface
	Orders      service.OrderServiceInterface
	Tables      service.TableServiceInterface
	WaiterCalls service.WaiterCallServiceInterface
	Auth        service.AuthServiceInterface
	Stats       service.StatsServiceInterface
}

type Handler struct {
	Services

	logger   *zap.SugaredLogger
	validate *validator.Validate
	loc      *time.Location
}

func NewHandler(svc Services, loc *time.Location, logger *zap.SugaredLogger) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		Services: svc,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		loc:      loc,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(h.withSession)

	api.HandleFunc("/menu", h.getMenu).Methods("GET")
	api.HandleFunc("/products/{id}/customizations", h.getCustomizations).Methods("GET")
	api.HandleFunc("/tables/{qrCode}", h.resolveTable).Methods("GET")
	api.HandleFunc("/sessions", h.createSession).Methods("POST")
	api.HandleFunc("/orders", h.createOrder).Methods("POST")
	api.HandleFunc("/orders/number/{number}", h.getOrderByNumber).Methods("GET")
	api.HandleFunc("/waiter-calls", h.createWaiterCall).Methods("POST")

	api.HandleFunc("/auth/login", h.login).Methods("POST")
	api.Handle("/auth/logout", h.requireSession(http.HandlerFunc(h.logout))).Methods("POST")
	api.Handle("/auth/me", h.requireAdmin(http.HandlerFunc(h.me))).Methods("GET")
	api.Handle("/auth/change-password", h.requireAdmin(http.HandlerFunc(h.changePassword))).Methods("POST")

	cartRoutes := api.PathPrefix("/cart").Subrouter()
	cartRoutes.Use(h.requireSession)
	cartRoutes.HandleFunc("", h.getCart).Methods("GET")
	cartRoutes.HandleFunc("", h.clearCart).Methods("DELETE")
	cartRoutes.HandleFunc("/lines", h.addCartLine).Methods("POST")
	cartRoutes.HandleFunc("/lines/{key}", h.updateCartLine).Methods("PATCH")
	cartRoutes.HandleFunc("/lines/{key}", h.removeCartLine).Methods("DELETE")
	cartRoutes.HandleFunc("/checkout", h.checkout).Methods("POST")

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(h.requireAdmin)
	admin.HandleFunc("/orders", h.listOrders).Methods("GET")
	admin.HandleFunc("/orders/{id}", h.getOrder).Methods("GET")
	admin.HandleFunc("/orders/{id}/status", h.setOrderStatus).Methods("PATCH")
	admin.HandleFunc("/tables", h.listTables).Methods("GET")
	admin.HandleFunc("/tables", h.createTable).Methods("POST")
	admin.HandleFunc("/tables/{id}", h.updateTable).Methods("PATCH")
	admin.HandleFunc("/tables/{id}", h.deleteTable).Methods("DELETE")
	admin.HandleFunc("/waiter-calls", h.listWaiterCalls).Methods("GET")
	admin.HandleFunc("/waiter-calls/{id}", h.updateWaiterCall).Methods("PATCH")
	admin.HandleFunc("/stats", h.getStats).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "order-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// decode reads a JSON body into dst and runs its validate tags.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, domain.InvalidInput("malformed JSON body"))
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			h.writeError(w, domain.InvalidInput("field %s failed %s validation", fe.Field(), fe.Tag()))
			return false
		}
		h.writeError(w, domain.InvalidInput("%v", err))
		return false
	}
	return true
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		h.writeError(w, domain.InvalidInput("%s must be a positive integer", name))
		return 0, false
	}
	return id, true
}
