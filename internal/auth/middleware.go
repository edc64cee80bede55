package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/orderdesk/orderdesk/internal/domain"
)

type contextKey struct{}

var userContextKey contextKey

// UserFromContext returns the authenticated user placed in the context by
// Authenticate, or nil outside an authenticated request.
func UserFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userContextKey).(*domain.User)
	return user
}

// ContextWithUser is exported for handler tests.
func ContextWithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserLoader resolves a token subject to a live user. GetByID returns
// (nil, nil) when the user no longer exists.
type UserLoader interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type Middleware struct {
	tokens *TokenIssuer
	users  UserLoader
	logger *slog.Logger
}

func NewMiddleware(tokens *TokenIssuer, users UserLoader, logger *slog.Logger) *Middleware {
	return &Middleware{tokens: tokens, users: users, logger: logger}
}

// Authenticate resolves the bearer credential to a user and stores it in the
// request context. Tokens for deleted users are rejected.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}

		claims, err := m.tokens.Verify(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}

		user, err := m.users.GetByID(r.Context(), claims.Subject)
		if err != nil {
			m.logger.ErrorContext(r.Context(), "failed to load user", "error", err, "user_id", claims.Subject)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
	})
}

// RequireAdmin guards admin-only routes. It must run after Authenticate.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}
		if user.Role != domain.RoleAdmin {
			writeError(w, http.StatusForbidden, fmt.Sprintf("User role '%s' is not authorized to access this route", user.Role))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
