package main

import (
	"context"
	"fmt"
	"io"

	"github.com/bothellselect/select-client/api"
	"github.com/bothellselect/select-client/config"
	dbredis "github.com/bothellselect/select-client/db/redis"
	"github.com/bothellselect/select-client/db/sqlite"
	"github.com/bothellselect/select-client/otel"
	"github.com/bothellselect/select-client/session"
	"github.com/bothellselect/select-client/storage"
	"github.com/bothellselect/select-client/utils/logger"
	"go.uber.org/zap"
)

// app is the wiring shared by every command that talks to the backend.
type app struct {
	cfg     *config.Config
	store   storage.Store
	api     *api.Client
	manager *session.Manager
	out     io.Writer

	closers []func()
}

func newApp(ctx context.Context, envFile string, out io.Writer) (*app, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}

	logger.Init(&logger.Config{
		Level:       cfg.LogLevel,
		Env:         cfg.Env,
		ServiceName: cfg.ServiceName,
		Development: !cfg.IsProduction(),
	})

	a := &app{cfg: cfg, out: out}

	shutdownOtel, err := otel.InitOpenTelemetry(ctx, otel.OtelConfig{
		Enabled:     cfg.OtelEnabled,
		Endpoint:    cfg.OtelEndpoint,
		ServiceName: cfg.ServiceName,
		Environment: cfg.Env,
		SampleRate:  cfg.OtelSampleRate,
	})
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, shutdownOtel)

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.store = store
	a.closers = append(a.closers, closeStore)

	a.api = api.New(api.Config{
		BaseURL:     cfg.APIBaseURL,
		Timeout:     cfg.HTTPTimeout,
		ServiceName: cfg.ServiceName,
	}).WithTokenSource(storage.TokenSource(store))

	a.manager = session.NewManager(a.api, store,
		session.WithCheckInterval(cfg.SessionCheckInterval),
		session.WithNavigator(session.NavigatorFunc(func(_ context.Context, path string) {
			logger.LogDebug("navigate", zap.String("path", path))
		})),
	)
	return a, nil
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case config.StoreRedis:
		client, err := dbredis.NewRedisClient(ctx, dbredis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		s := dbredis.NewStore(client, 0)
		return s, func() { _ = s.Close() }, nil
	case config.StoreMemory:
		return storage.NewMemoryStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	logger.Sync()
}
