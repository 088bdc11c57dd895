package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"qrmenu/order-svc/internal/domain"
	"qrmenu/order-svc/internal/service"
)

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	var filter domain.OrderFilter
	if s := r.URL.Query().Get("status"); s != "" {
		status := domain.OrderStatus(s)
		filter.Status = &status
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		limit, err := strconv.Atoi(l)
		if err != nil {
			h.writeError(w, domain.InvalidInput("limit must be an integer"))
			return
		}
		filter.Limit = limit
	}

	orders, err := h.Orders.List(r.Context(), filter)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	order, err := h.Orders.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) setOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	var req statusRequest
	if !h.decode(w, r, &req) {
		return
	}
	order, err := h.Orders.SetStatus(r.Context(), id, domain.OrderStatus(req.Status), req.Override)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) listTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.Tables.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tables)
}

func (h *Handler) createTable(w http.ResponseWriter, r *http.Request) {
	var req createTableRequest
	if !h.decode(w, r, &req) {
		return
	}
	table, err := h.Tables.Create(r.Context(), service.TableInput{
		TableNumber: req.TableNumber,
		TableName:   req.TableName,
		Capacity:    req.Capacity,
		Location:    req.Location,
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, table)
}

func (h *Handler) updateTable(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	var req updateTableRequest
	if !h.decode(w, r, &req) {
		return
	}
	table, err := h.Tables.Update(r.Context(), id, service.TablePatch{
		TableNumber: req.TableNumber,
		TableName:   req.TableName,
		Capacity:    req.Capacity,
		Location:    req.Location,
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

func (h *Handler) deleteTable(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Tables.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listWaiterCalls(w http.ResponseWriter, r *http.Request) {
	var status *domain.WaiterCallStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := domain.WaiterCallStatus(s)
		status = &st
	}
	calls, err := h.WaiterCalls.List(r.Context(), status)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, calls)
}

func (h *Handler) updateWaiterCall(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	var req waiterCallStatusRequest
	if !h.decode(w, r, &req) {
		return
	}
	call, err := h.WaiterCalls.Transition(r.Context(), id, domain.WaiterCallStatus(req.Status))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, call)
}

// getStats reports on today unless ?date=YYYY-MM-DD is given.
func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	day := time.Now().In(h.loc)
	if d := r.URL.Query().Get("date"); d != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, d, h.loc)
		if err != nil {
			h.writeError(w, domain.InvalidInput("date must look like 2006-01-02"))
			return
		}
		day = parsed
	}
	stats, err := h.Stats.Summary(r.Context(), day)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
