package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/orderdesk/orderdesk/internal/domain"
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,})+$`)

const maxNameLen = 50

// UserStore is the persistence the auth handlers need. GetByEmail returns
// (nil, nil) when no account matches.
type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type Handler struct {
	users  UserStore
	tokens *TokenIssuer
	logger *slog.Logger
}

func NewHandler(users UserStore, tokens *TokenIssuer, logger *slog.Logger) *Handler {
	return &Handler{users: users, tokens: tokens, logger: logger}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (req *registerRequest) validate() *domain.ValidationError {
	var fields []domain.FieldError

	if req.Name == "" {
		fields = append(fields, domain.FieldError{Field: "name", Message: "Name is required"})
	} else if utf8.RuneCountInString(req.Name) > maxNameLen {
		fields = append(fields, domain.FieldError{Field: "name", Message: "Name cannot be more than 50 characters"})
	}
	if !emailPattern.MatchString(req.Email) {
		fields = append(fields, domain.FieldError{Field: "email", Message: "Please provide a valid email"})
	}
	if len(req.Password) < 6 {
		fields = append(fields, domain.FieldError{Field: "password", Message: "Password must be at least 6 characters"})
	}
	if req.Role != "" && !domain.Role(req.Role).Valid() {
		fields = append(fields, domain.FieldError{Field: "role", Message: "Role must be either user or admin"})
	}

	if len(fields) == 0 {
		return nil
	}
	return &domain.ValidationError{Fields: fields}
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if verr := req.validate(); verr != nil {
		writeValidationError(w, verr)
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to hash password", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	role := domain.RoleUser
	if req.Role != "" {
		role = domain.Role(req.Role)
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
	}

	if err := h.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, "Email already registered")
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to create user", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to issue token", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.InfoContext(r.Context(), "user registered", "user_id", user.ID, "role", user.Role)
	writeJSON(w, http.StatusCreated, map[string]any{
		"token": token,
		"user":  user,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *loginRequest) validate() *domain.ValidationError {
	var fields []domain.FieldError

	if !emailPattern.MatchString(req.Email) {
		fields = append(fields, domain.FieldError{Field: "email", Message: "Please provide a valid email"})
	}
	if req.Password == "" {
		fields = append(fields, domain.FieldError{Field: "password", Message: "Password is required"})
	}

	if len(fields) == 0 {
		return nil
	}
	return &domain.ValidationError{Fields: fields}
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, false)
}

// HandleAdminLogin is the dashboard's admin entry point; it additionally
// rejects non-admin accounts.
func (h *Handler) HandleAdminLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, true)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request, adminOnly bool) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if verr := req.validate(); verr != nil {
		writeValidationError(w, verr)
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to load user", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if user == nil || !CheckPassword(user.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if adminOnly && user.Role != domain.RoleAdmin {
		writeError(w, http.StatusForbidden, "Not authorized to access admin login")
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to issue token", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.InfoContext(r.Context(), "user logged in", "user_id", user.ID, "role", user.Role)
	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeValidationError(w http.ResponseWriter, verr *domain.ValidationError) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error":  "validation failed",
		"fields": verr.Fields,
	})
}
