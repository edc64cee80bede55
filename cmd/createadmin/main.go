package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"strings"

	_ "github.com/lib/pq"

	"github.com/orderdesk/orderdesk/internal/auth"
	"github.com/orderdesk/orderdesk/internal/domain"
	"github.com/orderdesk/orderdesk/internal/users"
)

// Bootstraps (or resets) the dashboard's default admin account.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	postgresURL := os.Getenv("POSTGRES_URL")
	if postgresURL == "" {
		logger.Error("POSTGRES_URL environment variable is required")
		os.Exit(1)
	}

	email := normalizeEmail(os.Getenv("ADMIN_EMAIL"))
	if email == "" {
		email = "admin@example.com"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	db, err := sql.Open("postgres", postgresURL)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		logger.Error("failed to hash password", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	repo := users.NewRepository(db)

	existing, err := repo.GetByEmail(ctx, email)
	if err != nil {
		logger.Error("failed to look up admin", "error", err)
		os.Exit(1)
	}

	if existing != nil {
		existing.Name = "Admin User"
		existing.Role = domain.RoleAdmin
		existing.PasswordHash = hash
		if err := repo.Update(ctx, existing); err != nil {
			logger.Error("failed to update admin", "error", err)
			os.Exit(1)
		}
		logger.Info("existing account promoted to admin", "email", email)
	} else {
		admin := &domain.User{
			Name:         "Admin User",
			Email:        email,
			PasswordHash: hash,
			Role:         domain.RoleAdmin,
		}
		if err := repo.Create(ctx, admin); err != nil {
			logger.Error("failed to create admin", "error", err)
			os.Exit(1)
		}
		logger.Info("admin user created", "email", email)
	}

	logger.Warn("change the admin password after first login", "email", email)
}

// normalizeEmail applies the same folding as the register handler; login
// looks accounts up by lowercased email, so the bootstrapped admin must be
// stored that way too.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
