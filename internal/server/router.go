// Package server assembles the HTTP surface: routing and the middleware
// chain. Response encoding lives in the respond sub-package so the domain
// handlers can share it without importing the router.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	authhandler "github.com/expense-exterminator/backend/internal/domain/auth/handler"
	"github.com/expense-exterminator/backend/internal/domain/categories"
	exthandler "github.com/expense-exterminator/backend/internal/domain/extraction/handler"
	"github.com/expense-exterminator/backend/internal/domain/preferences"
	txhandler "github.com/expense-exterminator/backend/internal/domain/transactions/handler"
	"github.com/expense-exterminator/backend/internal/server/respond"
	"github.com/expense-exterminator/backend/pkg/config"
)

// Handlers collects the domain handlers the router mounts.
type Handlers struct {
	Auth         *authhandler.AuthHandler
	Extraction   *exthandler.ExtractionHandler
	Transactions *txhandler.TransactionHandler
	Categories   *categories.Handler
	Preferences  *preferences.Handler
}

// NewRouter builds the full HTTP handler: routes plus the middleware chain.
func NewRouter(cfg *config.Config, log *slog.Logger, h Handlers) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	if cfg.Observability.MetricsEnabled {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	// Auth
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.Handle("POST /api/auth/logout", h.Auth.RequireAuth(http.HandlerFunc(h.Auth.Logout)))
	mux.Handle("GET /api/auth/profile", h.Auth.RequireAuth(http.HandlerFunc(h.Auth.Profile)))
	mux.Handle("POST /api/auth/password", h.Auth.RequireAuth(http.HandlerFunc(h.Auth.ChangePassword)))

	// Statement extraction. Extraction itself is open; importing the result
	// into transactions needs a logged-in user, which OptionalAuth surfaces.
	mux.HandleFunc("GET /api/statements/providers", h.Extraction.Providers)
	mux.Handle("POST /api/statements/spreadsheet", h.Auth.OptionalAuth(http.HandlerFunc(h.Extraction.ExtractSpreadsheet)))
	mux.Handle("POST /api/statements/{provider}", h.Auth.OptionalAuth(http.HandlerFunc(h.Extraction.Extract)))
	mux.HandleFunc("POST /api/statements/{provider}/text", h.Extraction.ExtractText)

	// Transactions
	mux.Handle("GET /api/transactions", h.Auth.RequireAuth(http.HandlerFunc(h.Transactions.List)))
	mux.Handle("POST /api/transactions", h.Auth.RequireAuth(http.HandlerFunc(h.Transactions.Create)))
	mux.Handle("POST /api/transactions/bulk", h.Auth.RequireAuth(http.HandlerFunc(h.Transactions.BulkCreate)))
	mux.Handle("GET /api/transactions/export", h.Auth.RequireAuth(http.HandlerFunc(h.Transactions.ExportCSV)))
	mux.Handle("DELETE /api/transactions/{id}", h.Auth.RequireAuth(http.HandlerFunc(h.Transactions.Delete)))

	// Categories
	mux.Handle("GET /api/categories", h.Auth.RequireAuth(http.HandlerFunc(h.Categories.List)))
	mux.Handle("POST /api/categories", h.Auth.RequireAuth(http.HandlerFunc(h.Categories.Create)))
	mux.Handle("PUT /api/categories/{id}", h.Auth.RequireAuth(http.HandlerFunc(h.Categories.Update)))
	mux.Handle("DELETE /api/categories/{id}", h.Auth.RequireAuth(http.HandlerFunc(h.Categories.Delete)))

	// Preferences
	mux.Handle("GET /api/preferences", h.Auth.RequireAuth(http.HandlerFunc(h.Preferences.Get)))
	mux.Handle("PUT /api/preferences", h.Auth.RequireAuth(http.HandlerFunc(h.Preferences.Update)))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         3600,
	})

	// RequestID sits outermost so Logger and Recovery see the id in the
	// request context.
	return RequestID(
		Recovery(log)(
			Logger(log)(
				RateLimit(cfg.Server.RateLimitPerSecond, cfg.Server.RateLimitBurst)(
					corsHandler.Handler(mux),
				),
			),
		),
	)
}
