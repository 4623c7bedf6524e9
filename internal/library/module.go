package library

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"gopher-gateway/internal/config"
)

var Module = fx.Options(
	fx.Provide(NewStore),
	fx.Provide(func(store Store, cfg *config.Config, logger *zap.Logger) *Library {
		return New(store, cfg.Library.MaxHistory, logger)
	}),
)

// NewStore opens the configured backend and closes it on shutdown.
func NewStore(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (Store, error) {
	store, err := OpenStore(context.Background(), cfg.Library)
	if err != nil {
		return nil, err
	}

	logger.Info("library store opened",
		zap.String("backend", cfg.Library.Backend),
		zap.String("path", cfg.Library.Path))

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return store.Close()
		},
	})

	return store, nil
}

// OpenStore builds a Store for the configured backend.
func OpenStore(ctx context.Context, cfg config.LibraryConfig) (Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemoryStore(), nil
	case config.BackendFile:
		return NewFileStore(cfg.Path)
	case config.BackendSQLite:
		return OpenSQLite(ctx, cfg.Path)
	default:
		return nil, fmt.Errorf("unknown library backend: %s", cfg.Backend)
	}
}
