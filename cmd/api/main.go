package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/rewear-app/rewear-backend/api/routes"
	"github.com/rewear-app/rewear-backend/internal/catalog"
	"github.com/rewear-app/rewear-backend/internal/identity"
	"github.com/rewear-app/rewear-backend/pkg/config"
	"github.com/rewear-app/rewear-backend/pkg/logger"
	"github.com/rewear-app/rewear-backend/pkg/metrics"
	"github.com/rewear-app/rewear-backend/pkg/redis"
	"github.com/rewear-app/rewear-backend/pkg/storage"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	snapshotStore, err := newSnapshotStore(context.Background(), cfg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap snapshot storage", err)
		os.Exit(1)
	}
	defer func() {
		if err := snapshotStore.Close(); err != nil {
			logg.Error(context.Background(), "error closing snapshot storage", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	store := catalog.NewStore(catalog.WithMetrics(metrics.NewStoreMetrics(registry)))
	if cfg.App.SeedDemo {
		store.SeedDemo()
	}

	identityService, err := identity.NewService(identity.ServiceParams{
		Config: cfg,
		Store:  snapshotStore,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create identity service", err)
		os.Exit(1)
	}
	if err := identityService.Hydrate(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to hydrate session snapshot", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.ServiceParams{
		Store:  store,
		Wallet: identity.NewWallet(identityService),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"storage": cfg.Storage.Backend,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, store, catalogService, identityService, registry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

// newSnapshotStore builds the configured session snapshot backend.
func newSnapshotStore(ctx context.Context, cfg *config.Config) (storage.Adapter, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendMemory:
		return storage.NewMemoryAdapter(), nil
	case config.StorageBackendFile:
		return storage.NewFileAdapter(cfg.Storage.FilePath)
	case config.StorageBackendSQLite:
		return storage.NewSQLiteAdapter(cfg.Storage.SQLitePath)
	case config.StorageBackendRedis:
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		if err := client.Ping(ctx); err != nil {
			return nil, multierr.Append(err, client.Close())
		}
		return storage.NewRedisAdapter(client), nil
	}
	return storage.NewMemoryAdapter(), nil
}
