package httpapi

import (
	"net/http"

	"qrmenu/order-svc/internal/domain"
	"qrmenu/order-svc/internal/service"

	"github.com/gorilla/mux"
)

// Cart routes sit behind requireSession, so the session is always present.
func mustSession(r *http.Request) domain.Session {
	session, _ := sessionFrom(r.Context())
	return *session
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.Cart.Get(r.Context(), mustSession(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartView(c))
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.Cart.Clear(r.Context(), mustSession(r)); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addCartLine(w http.ResponseWriter, r *http.Request) {
	var req addLineRequest
	if !h.decode(w, r, &req) {
		return
	}
	input := service.AddLineInput{ProductID: req.ProductID, Quantity: req.Quantity}
	for _, choice := range req.Choices {
		input.Choices = append(input.Choices, service.Choice{GroupID: choice.GroupID, OptionIDs: choice.OptionIDs})
	}

	c, err := h.Cart.AddLine(r.Context(), mustSession(r), input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartView(c))
}

func (h *Handler) updateCartLine(w http.ResponseWriter, r *http.Request) {
	var req updateLineRequest
	if !h.decode(w, r, &req) {
		return
	}
	c, err := h.Cart.UpdateQuantity(r.Context(), mustSession(r), mux.Vars(r)["key"], req.Delta)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartView(c))
}

func (h *Handler) removeCartLine(w http.ResponseWriter, r *http.Request) {
	c, err := h.Cart.RemoveLine(r.Context(), mustSession(r), mux.Vars(r)["key"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartView(c))
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if r.ContentLength != 0 && !h.decode(w, r, &req) {
		return
	}
	order, err := h.Cart.Checkout(r.Context(), mustSession(r), service.CheckoutInput{
		OrderType: domain.OrderType(req.OrderType),
		Note:      req.Notes,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}
