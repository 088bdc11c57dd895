package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"qrmenu/order-svc/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrCustomizationIncomplete):
		return http.StatusUnprocessableEntity, "customization_incomplete"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	default:
		return http.StatusInternalServerError, "persistence"
	}
}

// writeError never shows the cause of a server side failure to the client;
// it goes to the log instead.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status, kind := errorStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Errorw("request failed", "error", err)
		msg = "internal server error"
		if errors.Is(err, domain.ErrOrderCreationFailed) {
			msg = "order could not be created, please try again"
		}
	}
	writeJSON(w, status, errorResponse{Error: msg, Kind: kind})
}
