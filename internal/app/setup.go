// Package app contains the application setup for the product service.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/productcrud/internal/config"
	"github.com/abgdnv/productcrud/internal/service"
	"github.com/abgdnv/productcrud/internal/store"
	"github.com/abgdnv/productcrud/internal/transport/rest"
	"github.com/abgdnv/productcrud/pkg/bootstrap"
	pkgconfig "github.com/abgdnv/productcrud/pkg/config"
	"github.com/abgdnv/productcrud/pkg/messaging"
	pkgnats "github.com/abgdnv/productcrud/pkg/nats"
	"github.com/abgdnv/productcrud/pkg/server"
	"github.com/go-chi/chi/v5"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

// ServiceName names the service in configuration, traces and gRPC health checks.
const ServiceName = "product"

type Dependencies struct {
	ProductService service.ProductService
	Logger         *slog.Logger
}

// CloseFunc releases a resource opened during setup.
type CloseFunc func()

// NewProductStore applies migrations and opens the store backend selected by the database URL.
func NewProductStore(ctx context.Context, cfg pkgconfig.DatabaseConfig, logger *slog.Logger) (store.ProductStore, CloseFunc, error) {
	driver, err := store.DriverFromURL(cfg.URL)
	if err != nil {
		return nil, nil, err
	}
	if err = store.Migrate(cfg.URL); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate %s database: %w", driver, err)
	}
	logger.InfoContext(ctx, "Database migrations applied", "driver", driver)

	switch driver {
	case store.DriverMemory:
		return store.NewMemoryStore(), func() {}, nil
	case store.DriverPostgres:
		dbPool, err := bootstrap.NewDbPool(ctx, cfg.URL, cfg.Timeout)
		if err != nil {
			return nil, nil, err
		}
		return store.NewPgStore(dbPool), dbPool.Close, nil
	default:
		db, err := bootstrap.NewSQLiteDB(ctx, store.SQLitePath(cfg.URL), cfg.Timeout)
		if err != nil {
			return nil, nil, err
		}
		return store.NewSQLiteStore(db), func() {
			if err := db.Close(); err != nil {
				logger.Warn("failed to close sqlite database", "error", err)
			}
		}, nil
	}
}

// NewEventPublisher connects to NATS and makes sure the product event stream exists.
// With events disabled it returns a publisher that drops every event.
func NewEventPublisher(ctx context.Context, cfg pkgconfig.EventsConfig, logger *slog.Logger) (messaging.Publisher, CloseFunc, error) {
	if !cfg.Enabled {
		return messaging.NopPublisher{}, func() {}, nil
	}
	nc, err := pkgnats.NewClient(cfg.Nats.Url, cfg.Nats.Timeout)
	if err != nil {
		return nil, nil, err
	}
	js, err := pkgnats.NewJetStreamContext(nc)
	if err != nil {
		return nil, nil, err
	}

	streamCtx, cancel := context.WithTimeout(ctx, cfg.Nats.Timeout)
	defer cancel()
	if err = pkgnats.EnsureStream(streamCtx, js, cfg.Stream, messaging.ProductsSubjectWildcard); err != nil {
		nc.Close()
		return nil, nil, err
	}
	logger.InfoContext(ctx, "Connected to NATS", "url", nc.ConnectedUrlRedacted(), "stream", cfg.Stream)

	return pkgnats.NewNatsPublisher(js), func() {
		if err := nc.Drain(); err != nil {
			logger.Warn("failed to drain NATS connection", "error", err)
		}
	}, nil
}

func SetupDependencies(productStore store.ProductStore, publisher messaging.Publisher, logger *slog.Logger) *Dependencies {
	return &Dependencies{
		ProductService: service.NewService(productStore, publisher, logger),
		Logger:         logger,
	}
}

// SetupHttpHandler builds the router with middleware and product routes.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the product service.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	productHandler := rest.NewHandler(deps.ProductService, deps.Logger)
	productHandler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the product service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, ServiceName+"-http", mux)
}

// SetupGrpcServer initializes the gRPC server exposing the health service.
// The returned health server is used to flip the status to NOT_SERVING on shutdown.
func SetupGrpcServer(cfg *config.Config) (*grpc.Server, *health.Server) {
	hs := health.NewServer()
	return server.NewGRPCServer(cfg.GRPC.ReflectionEnabled, server.WithHealth(hs, ServiceName)), hs
}
