package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/commercekit/commerce-core/internal/orders/domain"
	"github.com/commercekit/commerce-core/internal/orders/ports"
	"github.com/commercekit/commerce-core/internal/statemachine"
)

// writeDomainError maps the lifecycle error taxonomy onto HTTP statuses.
// Anything unrecognized is an internal failure and stays generic: storage
// details never reach the client.
func writeDomainError(w http.ResponseWriter, err error) {
	var (
		validationErr   *domain.ValidationError
		statusErr       *domain.StatusNotFoundError
		modificationErr *domain.ModificationNotAllowedError
		cancellationErr *domain.CancellationNotAllowedError
		transitionErr   *statemachine.TransitionError
	)

	switch {
	case errors.Is(err, ports.ErrNotFound):
		writeError(w, http.StatusNotFound, "order not found")
	case errors.As(err, &statusErr):
		writeError(w, http.StatusNotFound, statusErr.Error())
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &modificationErr):
		writeError(w, http.StatusForbidden, modificationErr.Error())
	case errors.As(err, &cancellationErr):
		writeError(w, http.StatusUnprocessableEntity, cancellationErr.Error())
	case errors.As(err, &transitionErr):
		writeError(w, http.StatusUnprocessableEntity, transitionErr.Error())
	case errors.Is(err, ports.ErrVersionConflict):
		writeError(w, http.StatusConflict, "order was modified concurrently, reload and retry")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
