package httpapi

import (
	"net/http"

	"qrmenu/order-svc/internal/domain"
	"qrmenu/order-svc/internal/pricing"
	"qrmenu/order-svc/internal/service"

	"github.com/gorilla/mux"
)

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	menu, err := h.Catalog.Menu(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, menu)
}

func (h *Handler) getCustomizations(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	groups, err := h.Catalog.Customizations(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (h *Handler) resolveTable(w http.ResponseWriter, r *http.Request) {
	table, err := h.Tables.ResolveByQR(r.Context(), mux.Vars(r)["qrCode"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if r.ContentLength != 0 && !h.decode(w, r, &req) {
		return
	}
	token, session, err := h.Auth.GuestSession(r.Context(), req.QRToken)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"token": token, "session": session})
}

// createOrder takes a finished cart from the client. Prices arrive as JSON
// numbers and are converted to exact decimals before anything else happens.
func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if !h.decode(w, r, &req) {
		return
	}

	input := service.CreateOrderInput{
		OrderType:   domain.OrderType(req.OrderType),
		Note:        req.Notes,
		TableID:     req.TableID,
		TableNumber: req.TableNumber,
	}
	if session, ok := sessionFrom(r.Context()); ok && session.TableID != nil {
		input.TableID = session.TableID
		input.TableNumber = session.TableNumber
	}

	for _, item := range req.Items {
		price, err := pricing.FromFloat(item.Price)
		if err != nil {
			h.writeError(w, err)
			return
		}
		input.Items = append(input.Items, domain.OrderItem{
			ProductID:      item.ProductID,
			ProductName:    item.Name,
			ProductPrice:   price,
			Quantity:       item.Quantity,
			Customizations: item.Customizations,
		})
	}
	if req.TotalAmount != nil {
		total, err := pricing.FromFloat(*req.TotalAmount)
		if err != nil {
			h.writeError(w, err)
			return
		}
		input.ExpectedTotal = &total
	}

	order, err := h.Orders.Create(r.Context(), input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createOrderResponse{OrderID: order.ID, OrderNumber: order.OrderNumber})
}

func (h *Handler) getOrderByNumber(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.GetByNumber(r.Context(), mux.Vars(r)["number"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	if session, ok := sessionFrom(r.Context()); ok && session.IsAdmin() {
		writeJSON(w, http.StatusOK, order)
		return
	}
	writeJSON(w, http.StatusOK, newOrderTrackingView(order))
}

func (h *Handler) createWaiterCall(w http.ResponseWriter, r *http.Request) {
	var req waiterCallRequest
	if !h.decode(w, r, &req) {
		return
	}
	call, err := h.WaiterCalls.Create(r.Context(), service.WaiterCallInput{
		TableID:     req.TableID,
		TableNumber: req.TableNumber,
		Note:        req.Note,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, call)
}
