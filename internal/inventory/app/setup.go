// Package app contains the application setup for the inventory service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/destore/inventory/internal/inventory/config"
	"github.com/destore/inventory/internal/inventory/service"
	"github.com/destore/inventory/internal/inventory/store"
	"github.com/destore/inventory/internal/inventory/transport/rest"
	"github.com/destore/inventory/pkg/messaging"
	"github.com/destore/inventory/pkg/server"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependencies struct {
	ProductService service.ProductService
	Logger         *slog.Logger
}

// SetupDependencies builds the service graph: store, low-stock notifier
// settings and the product service.
func SetupDependencies(dbPool *pgxpool.Pool, publisher messaging.Publisher, cfg *config.Config, logger *slog.Logger) *Dependencies {
	notifier := service.NotifierSettings{
		Threshold: cfg.Notifier.Threshold,
		Subject:   cfg.Notifier.Subject,
		Timeout:   cfg.Notifier.Timeout,
	}
	pService := service.NewService(store.NewPgStore(dbPool), publisher, notifier, logger)

	return &Dependencies{
		ProductService: pService,
		Logger:         logger,
	}
}

// SetupHttpHandler initializes the HTTP router and routes for the inventory
// service. Used by E2E tests to set up the HTTP server with the necessary
// routes and middleware.
func SetupHttpHandler(deps *Dependencies, allowedOrigins []string) http.Handler {
	mux := server.NewChiRouter(deps.Logger, allowedOrigins)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the inventory service.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	productHandler := rest.NewHandler(deps.ProductService, deps.Logger)
	productHandler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the inventory service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {

	mux := SetupHttpHandler(deps, cfg.CORS.AllowedOrigins)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
