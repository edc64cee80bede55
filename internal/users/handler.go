package users

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/orderdesk/orderdesk/internal/domain"
)

type Lister interface {
	List(ctx context.Context) ([]domain.User, error)
}

type Handler struct {
	store  Lister
	logger *slog.Logger
}

func NewHandler(store Lister, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// HandleList returns every account, newest first. The router mounts it
// behind the admin guard; the password hash never serializes (json:"-").
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.List(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list users", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.InfoContext(r.Context(), "users listed", "count", len(users))
	h.writeJSON(w, http.StatusOK, map[string]any{
		"users": users,
		"count": len(users),
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
