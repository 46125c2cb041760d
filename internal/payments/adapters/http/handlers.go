package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/commercekit/commerce-core/internal/idempotency"
	"github.com/commercekit/commerce-core/internal/payments/app"
	"github.com/commercekit/commerce-core/internal/payments/app/commands"
	"github.com/commercekit/commerce-core/internal/payments/domain"
	"github.com/commercekit/commerce-core/internal/payments/ports"
	"github.com/commercekit/commerce-core/internal/retry"
	"github.com/shopspring/decimal"
)

// Handler exposes HTTP endpoints for payment operations.
type Handler struct {
	service *app.Service
	idem    idempotency.Store
}

// NewHandler constructs a Handler.
func NewHandler(service *app.Service, idem idempotency.Store) *Handler {
	return &Handler{service: service, idem: idem}
}

// Register binds the payment handlers to the provided ServeMux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/v1/payments", h.handlePayments)
	mux.HandleFunc("/v1/payments/", h.handlePaymentByID)
}

func (h *Handler) handlePayments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h.createPayment(w, r)
}

func (h *Handler) handlePaymentByID(w http.ResponseWriter, r *http.Request) {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v1/payments/"), "/")
	if trimmed == "" {
		writeError(w, http.StatusNotFound, "payment not found")
		return
	}

	if id, ok := strings.CutSuffix(trimmed, "/status"); ok {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h.updatePaymentStatus(w, r, id)
		return
	}

	if id, ok := strings.CutSuffix(trimmed, "/history"); ok {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h.getHistory(w, r, id)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getPayment(w, r, trimmed)
	case http.MethodDelete:
		h.softDeletePayment(w, r, trimmed)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

type createPaymentPayload struct {
	OrderID        string           `json:"order_id"`
	MethodCode     string           `json:"method_code"`
	CurrencyCode   string           `json:"currency_code"`
	Amount         decimal.Decimal  `json:"amount"`
	ProcessingFee  *decimal.Decimal `json:"processing_fee"`
	TransactionRef string           `json:"transaction_ref"`
}

func (h *Handler) createPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idemKey := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if idemKey != "" {
		if stored, err := h.idem.Get(ctx, idemKey); err != nil {
			writeError(w, http.StatusInternalServerError, "idempotency lookup failed")
			return
		} else if stored != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(stored.StatusCode)
			_, _ = w.Write(stored.Body)
			return
		}
	}

	var payload createPaymentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	payment, err := h.service.CreatePayment(ctx, commands.CreatePaymentCommand{
		OrderID:        payload.OrderID,
		MethodCode:     payload.MethodCode,
		CurrencyCode:   payload.CurrencyCode,
		Amount:         payload.Amount,
		ProcessingFee:  payload.ProcessingFee,
		TransactionRef: payload.TransactionRef,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if idemKey != "" {
		if body, err := json.Marshal(map[string]any{"payment": payment}); err == nil {
			_ = h.idem.Save(ctx, idemKey, idempotency.StoredResponse{
				StatusCode: http.StatusCreated,
				Body:       body,
				EntityID:   payment.ID,
			})
		}
	}

	writeJSON(w, http.StatusCreated, map[string]any{"payment": payment})
}

type updateStatusPayload struct {
	Status          string `json:"status"`
	Reason          string `json:"reason"`
	FailureReason   string `json:"failure_reason"`
	GatewayResponse string `json:"gateway_response"`
}

func (h *Handler) updatePaymentStatus(w http.ResponseWriter, r *http.Request, id string) {
	var payload updateStatusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	actor := r.Header.Get("X-Actor-ID")
	if actor == "" {
		actor = domain.SystemActor
	}

	var payment *domain.Payment
	err := retry.Do(r.Context(), retry.DefaultAttempts, retry.DefaultBaseDelay,
		retry.On(ports.ErrVersionConflict),
		func(ctx context.Context) error {
			var handleErr error
			payment, handleErr = h.service.UpdatePaymentStatus(ctx, commands.UpdatePaymentStatusCommand{
				PaymentID:       id,
				TargetStatus:    payload.Status,
				Reason:          payload.Reason,
				Actor:           actor,
				FailureReason:   payload.FailureReason,
				GatewayResponse: payload.GatewayResponse,
			})
			return handleErr
		})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"payment": payment})
}

func (h *Handler) softDeletePayment(w http.ResponseWriter, r *http.Request, id string) {
	err := h.service.SoftDeletePayment(r.Context(), commands.SoftDeletePaymentCommand{
		PaymentID: id,
		Actor:     r.Header.Get("X-Actor-ID"),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getPayment(w http.ResponseWriter, r *http.Request, id string) {
	payment, err := h.service.GetPayment(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"payment": payment})
}

func (h *Handler) getHistory(w http.ResponseWriter, r *http.Request, id string) {
	history, err := h.service.GetPaymentStatusHistory(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": history})
}
