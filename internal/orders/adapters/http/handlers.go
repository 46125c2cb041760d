package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/commercekit/commerce-core/internal/idempotency"
	"github.com/commercekit/commerce-core/internal/orders/app"
	"github.com/commercekit/commerce-core/internal/orders/app/commands"
	"github.com/commercekit/commerce-core/internal/orders/domain"
	"github.com/commercekit/commerce-core/internal/orders/ports"
	"github.com/commercekit/commerce-core/internal/retry"
	"github.com/shopspring/decimal"
)

// Handler exposes HTTP endpoints for order operations.
type Handler struct {
	service *app.Service
	idem    idempotency.Store
}

// NewHandler constructs a Handler.
func NewHandler(service *app.Service, idem idempotency.Store) *Handler {
	return &Handler{service: service, idem: idem}
}

// Register binds the order handlers to the provided ServeMux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/v1/orders", h.handleOrders)
	mux.HandleFunc("/v1/orders/", h.handleOrderByID)
}

func (h *Handler) handleOrders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createOrder(w, r)
	case http.MethodGet:
		h.listOrders(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) handleOrderByID(w http.ResponseWriter, r *http.Request) {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v1/orders/"), "/")
	if trimmed == "" {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}

	if id, ok := strings.CutSuffix(trimmed, "/cancel"); ok {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h.cancelOrder(w, r, id)
		return
	}

	if id, ok := strings.CutSuffix(trimmed, "/status"); ok {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h.updateOrderStatus(w, r, id)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getOrder(w, r, trimmed)
	case http.MethodPatch:
		h.updateOrder(w, r, trimmed)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

type itemPayload struct {
	ProductID     string          `json:"product_id"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	FinalPrice    decimal.Decimal `json:"final_price"`
}

type createOrderPayload struct {
	UserID      string           `json:"user_id"`
	Items       []itemPayload    `json:"items"`
	TotalAmount *decimal.Decimal `json:"total_amount"`
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
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

	var payload createOrderPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	cmd := commands.CreateOrderCommand{
		UserID:      payload.UserID,
		Items:       toItemInputs(payload.Items),
		TotalAmount: payload.TotalAmount,
	}

	order, err := h.service.CreateOrder(ctx, cmd)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if idemKey != "" {
		if body, err := json.Marshal(map[string]any{"order": order}); err == nil {
			_ = h.idem.Save(ctx, idemKey, idempotency.StoredResponse{
				StatusCode: http.StatusCreated,
				Body:       body,
				EntityID:   order.ID,
			})
		}
	}

	writeJSON(w, http.StatusCreated, map[string]any{"order": order})
}

type updateOrderPayload struct {
	ExpectedVersion int64          `json:"expected_version"`
	Items           *[]itemPayload `json:"items"`
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request, id string) {
	var payload updateOrderPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	cmd := commands.UpdateOrderCommand{
		OrderID:         id,
		Actor:           actorFrom(r),
		ExpectedVersion: payload.ExpectedVersion,
	}
	if payload.Items != nil {
		items := toItemInputs(*payload.Items)
		cmd.Items = &items
	}

	order, err := h.service.UpdateOrder(r.Context(), cmd)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"order": order})
}

type updateStatusPayload struct {
	Status string `json:"status"`
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request, id string) {
	var payload updateStatusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	// Status transitions are safe to retry on a version conflict: each
	// attempt re-reads fresh state before revalidating the edge.
	var order *domain.Order
	err := retry.Do(r.Context(), retry.DefaultAttempts, retry.DefaultBaseDelay,
		retry.On(ports.ErrVersionConflict),
		func(ctx context.Context) error {
			var handleErr error
			order, handleErr = h.service.UpdateOrderStatus(ctx, commands.UpdateOrderStatusCommand{
				OrderID:      id,
				TargetStatus: payload.Status,
				Actor:        actorFrom(r),
			})
			return handleErr
		})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"order": order})
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request, id string) {
	err := retry.Do(r.Context(), retry.DefaultAttempts, retry.DefaultBaseDelay,
		retry.On(ports.ErrVersionConflict),
		func(ctx context.Context) error {
			return h.service.CancelOrder(ctx, commands.CancelOrderCommand{
				OrderID: id,
				Actor:   actorFrom(r),
			})
		})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request, id string) {
	order, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"order": order})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	filter := ports.ListFilter{}
	if statusParam := r.URL.Query().Get("status"); statusParam != "" {
		status, err := domain.ParseStatus(statusParam)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		filter.Status = &status
	}
	if userParam := r.URL.Query().Get("user_id"); userParam != "" {
		filter.UserID = &userParam
	}
	if pageParam := r.URL.Query().Get("page"); pageParam != "" {
		if page, err := strconv.Atoi(pageParam); err == nil {
			filter.Page = page
		}
	}
	if pageSizeParam := r.URL.Query().Get("page_size"); pageSizeParam != "" {
		if pageSize, err := strconv.Atoi(pageSizeParam); err == nil {
			filter.PageSize = pageSize
		}
	}

	orders, err := h.service.ListOrders(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func toItemInputs(payloads []itemPayload) []commands.ItemInput {
	items := make([]commands.ItemInput, 0, len(payloads))
	for _, p := range payloads {
		items = append(items, commands.ItemInput{
			ProductID:     p.ProductID,
			Quantity:      p.Quantity,
			UnitPrice:     p.UnitPrice,
			DiscountValue: p.DiscountValue,
			FinalPrice:    p.FinalPrice,
		})
	}
	return items
}

// actorFrom reads the actor identity the gateway injected. Authentication
// policy lives upstream; these headers are trusted here.
func actorFrom(r *http.Request) domain.Actor {
	return domain.Actor{
		UserID:     r.Header.Get("X-Actor-ID"),
		Privileged: strings.EqualFold(r.Header.Get("X-Actor-Role"), "admin"),
	}
}
