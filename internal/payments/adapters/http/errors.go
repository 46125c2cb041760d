package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/commercekit/commerce-core/internal/payments/domain"
	"github.com/commercekit/commerce-core/internal/payments/ports"
	"github.com/commercekit/commerce-core/internal/statemachine"
)

// writeDomainError maps the payment error taxonomy onto HTTP statuses.
// Unrecognized errors stay generic so storage details never leak.
func writeDomainError(w http.ResponseWriter, err error) {
	var (
		validationErr *domain.ValidationError
		statusErr     *domain.StatusNotFoundError
		methodErr     *domain.MethodNotFoundError
		inactiveErr   *domain.MethodInactiveError
		currencyErr   *domain.CurrencyNotFoundError
		amountErr     *domain.InvalidAmountError
		terminalErr   *domain.TerminalStatusError
		transitionErr *statemachine.TransitionError
	)

	switch {
	case errors.Is(err, ports.ErrNotFound):
		writeError(w, http.StatusNotFound, "payment not found")
	case errors.As(err, &statusErr):
		writeError(w, http.StatusNotFound, statusErr.Error())
	case errors.As(err, &methodErr):
		writeError(w, http.StatusNotFound, methodErr.Error())
	case errors.As(err, &currencyErr):
		writeError(w, http.StatusNotFound, currencyErr.Error())
	case errors.As(err, &inactiveErr):
		writeError(w, http.StatusUnprocessableEntity, inactiveErr.Error())
	case errors.As(err, &amountErr):
		writeError(w, http.StatusBadRequest, amountErr.Error())
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &terminalErr):
		writeError(w, http.StatusUnprocessableEntity, terminalErr.Error())
	case errors.As(err, &transitionErr):
		writeError(w, http.StatusUnprocessableEntity, transitionErr.Error())
	case errors.Is(err, ports.ErrVersionConflict):
		writeError(w, http.StatusConflict, "payment was modified concurrently, reload and retry")
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
