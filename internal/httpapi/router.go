package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/orderdesk/orderdesk/internal/auth"
	"github.com/orderdesk/orderdesk/internal/orders"
	"github.com/orderdesk/orderdesk/internal/users"
)

type RouterConfig struct {
	Auth    *auth.Handler
	AuthMW  *auth.Middleware
	Orders  *orders.Handler
	Users   *users.Handler
	Metrics http.Handler
}

// NewRouter wires the versioned API surface. Order and user routes sit
// behind bearer authentication; the users listing additionally requires the
// admin role.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"OK"}`))
	})

	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", cfg.Auth.HandleRegister)
			r.Post("/login", cfg.Auth.HandleLogin)
			r.Post("/admin/login", cfg.Auth.HandleAdminLogin)
			r.With(cfg.AuthMW.Authenticate).Get("/me", cfg.Auth.HandleMe)
		})

		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthMW.Authenticate)

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", cfg.Orders.HandleList)
				r.Post("/", cfg.Orders.HandleCreate)
				r.Get("/{id}", cfg.Orders.HandleGet)
				r.Put("/{id}", cfg.Orders.HandleUpdate)
				r.Delete("/{id}", cfg.Orders.HandleDelete)
			})

			r.With(cfg.AuthMW.RequireAdmin).Get("/users", cfg.Users.HandleList)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Route not found"}`))
	})

	return r
}
