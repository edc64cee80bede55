package orders

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/orderdesk/orderdesk/internal/auth"
	"github.com/orderdesk/orderdesk/internal/domain"
)

// Store is the aggregate store the handler writes through. GetByID returns
// (nil, nil) when the order does not exist.
type Store interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	Update(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Order, int, error)
}

// UserDirectory resolves user ids into users for response summaries.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}

type Handler struct {
	store    Store
	users    UserDirectory
	producer Publisher
	logger   *slog.Logger
}

// NewHandler builds the order CRUD handler. producer may be nil, in which
// case no events are published.
func NewHandler(store Store, users UserDirectory, producer Publisher, logger *slog.Logger) *Handler {
	return &Handler{
		store:    store,
		users:    users,
		producer: producer,
		logger:   logger,
	}
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(query.Get("limit"))
	if limit < 1 {
		limit = 10
	}

	filter := ListFilter{
		Status:        query.Get("status"),
		PaymentStatus: query.Get("paymentStatus"),
		Page:          page,
		Limit:         limit,
	}
	if user.Role != domain.RoleAdmin {
		filter.OwnerID = user.ID
	}

	orders, total, err := h.store.List(r.Context(), filter)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list orders", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	summaries := h.resolveSummaries(r.Context(), orders)
	views := make([]View, 0, len(orders))
	for i := range orders {
		views = append(views, NewView(&orders[i], summaries, user.Role))
	}

	pages := (total + limit - 1) / limit

	h.logger.InfoContext(r.Context(), "orders listed", "count", len(orders), "total", total, "user_id", user.ID)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"orders": views,
		"count":  len(views),
		"total":  total,
		"page":   page,
		"pages":  pages,
	})
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	order, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to get order", "error", err, "id", id)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if order == nil {
		h.writeError(w, http.StatusNotFound, "Order not found")
		return
	}

	if err := Authorize(user.ID, user.Role, order.CreatedBy, OpRead); err != nil {
		h.writeError(w, http.StatusForbidden, "Not authorized to access this order")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"order": h.view(r.Context(), order, user.Role),
	})
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	var payload Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	Sanitize(&payload)
	if verr := Validate(&payload); verr != nil {
		h.writeValidationError(w, verr)
		return
	}
	FilterPrivileged(&payload, user.Role)

	order := &domain.Order{
		Status:        domain.OrderStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
		Priority:      domain.PriorityMedium,
		Tags:          []string{},
		CreatedBy:     user.ID,
	}
	payload.Apply(order)

	if err := h.store.Create(r.Context(), order); err != nil {
		if errors.Is(err, domain.ErrDuplicateOrderNumber) {
			h.writeError(w, http.StatusConflict, "Order number already exists")
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to create order", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.publishEvent(r.Context(), domain.OrderEventCreated, order)

	h.logger.InfoContext(r.Context(), "order created", "order_id", order.ID, "order_number", order.OrderNumber, "created_by", user.ID)
	h.writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Order created successfully",
		"order":   h.view(r.Context(), order, user.Role),
	})
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	// Existence is resolved before ownership so not-found wins over
	// forbidden.
	order, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to get order", "error", err, "id", id)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if order == nil {
		h.writeError(w, http.StatusNotFound, "Order not found")
		return
	}

	if err := Authorize(user.ID, user.Role, order.CreatedBy, OpUpdate); err != nil {
		h.writeError(w, http.StatusForbidden, "Not authorized to update this order")
		return
	}

	var payload Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	Sanitize(&payload)
	if verr := Validate(&payload); verr != nil {
		h.writeValidationError(w, verr)
		return
	}
	FilterPrivileged(&payload, user.Role)

	payload.Apply(order)

	if err := h.store.Update(r.Context(), order); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateOrderNumber):
			h.writeError(w, http.StatusConflict, "Order number already exists")
		case errors.Is(err, domain.ErrNotFound):
			h.writeError(w, http.StatusNotFound, "Order not found")
		default:
			h.logger.ErrorContext(r.Context(), "failed to update order", "error", err, "id", id)
			h.writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	updated, err := h.store.GetByID(r.Context(), id)
	if err != nil || updated == nil {
		h.logger.ErrorContext(r.Context(), "failed to reload order", "error", err, "id", id)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.publishEvent(r.Context(), domain.OrderEventUpdated, updated)

	h.logger.InfoContext(r.Context(), "order updated", "order_id", updated.ID, "updated_by", user.ID)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"message": "Order updated successfully",
		"order":   h.view(r.Context(), updated, user.Role),
	})
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	order, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to get order", "error", err, "id", id)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if order == nil {
		h.writeError(w, http.StatusNotFound, "Order not found")
		return
	}

	if err := Authorize(user.ID, user.Role, order.CreatedBy, OpDelete); err != nil {
		h.writeError(w, http.StatusForbidden, "Not authorized to delete this order")
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "Order not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to delete order", "error", err, "id", id)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.publishEvent(r.Context(), domain.OrderEventDeleted, order)

	h.logger.InfoContext(r.Context(), "order deleted", "order_id", id, "deleted_by", user.ID)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"message": "Order deleted successfully",
	})
}

func (h *Handler) view(ctx context.Context, order *domain.Order, viewer domain.Role) View {
	summaries := h.resolveSummaries(ctx, []domain.Order{*order})
	return NewView(order, summaries, viewer)
}

// resolveSummaries looks up the creator and assignee of every order once.
// Unknown ids (e.g. a deleted user) fall back to an id-only summary.
func (h *Handler) resolveSummaries(ctx context.Context, orders []domain.Order) map[string]domain.UserSummary {
	summaries := make(map[string]domain.UserSummary)

	resolve := func(id string) {
		if id == "" {
			return
		}
		if _, ok := summaries[id]; ok {
			return
		}
		user, err := h.users.GetByID(ctx, id)
		if err != nil || user == nil {
			summaries[id] = domain.UserSummary{ID: id}
			return
		}
		summaries[id] = user.Summary()
	}

	for i := range orders {
		resolve(orders[i].CreatedBy)
		if orders[i].AssignedTo != nil {
			resolve(*orders[i].AssignedTo)
		}
	}

	return summaries
}

func (h *Handler) publishEvent(ctx context.Context, eventType domain.OrderEventType, order *domain.Order) {
	if h.producer == nil {
		return
	}

	event := domain.OrderEvent{
		Type:          eventType,
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		TotalAmount:   order.TotalAmount,
		Status:        order.Status,
		Timestamp:     time.Now().UTC(),
	}
	if err := h.producer.Publish(ctx, order.ID, event); err != nil {
		h.logger.ErrorContext(ctx, "failed to publish order event", "error", err, "order_id", order.ID, "type", eventType)
	}
}

func (h *Handler) writeValidationError(w http.ResponseWriter, verr *domain.ValidationError) {
	h.writeJSON(w, http.StatusBadRequest, map[string]any{
		"error":  "validation failed",
		"fields": verr.Fields,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
