package app

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gopher-gateway/internal/common"
	"gopher-gateway/internal/config"
	"gopher-gateway/internal/gopher"
	"gopher-gateway/internal/httpapi"
	"gopher-gateway/internal/interfaces"
	"gopher-gateway/internal/library"
	"gopher-gateway/internal/metrics"
	"gopher-gateway/internal/worker"
)

type Application struct {
	app    *fx.App
	logger *zap.Logger
}

func NewApplication(opts ...common.Option) *Application {
	options := resolveOptions(opts)

	app := &Application{
		logger: options.Logger,
	}

	app.app = fx.New(
		append(modules(options),
			// Set timeouts
			fx.StopTimeout(30*time.Second),
			fx.StartTimeout(30*time.Second),
		)...,
	)

	return app
}

func (a *Application) Start(ctx context.Context) error {
	return a.app.Start(ctx)
}

func (a *Application) Stop(ctx context.Context) error {
	return a.app.Stop(ctx)
}

func resolveOptions(opts []common.Option) *common.ServiceOptions {
	options := &common.ServiceOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Ensure required options are set
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}

	return options
}

// modules assembles the container shared by the binary and tests.
func modules(options *common.ServiceOptions) []fx.Option {
	result := []fx.Option{
		metrics.Module,
		worker.Module,
		library.Module,
		httpapi.Module,

		// Provide base dependencies
		fx.Provide(
			func() *zap.Logger { return options.Logger },
			func() string { return options.Env },
		),

		// Apply the configured log level
		fx.Decorate(withLogLevel),

		// Configure fx
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),

		// Register lifecycle hooks
		fx.Invoke(registerHooks),
	}

	if options.Config != nil {
		result = append(result, fx.Supply(options.Config))
	} else {
		result = append(result, config.Module)
	}

	if options.Fetcher != nil {
		result = append(result, fx.Provide(func() interfaces.Fetcher { return options.Fetcher }))
	} else {
		result = append(result, gopher.Module)
	}

	return result
}

// withLogLevel raises the injected logger to the configured level. It never
// lowers the level the binary chose.
func withLogLevel(logger *zap.Logger, cfg *config.Config) *zap.Logger {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil || !logger.Core().Enabled(level-1) {
		return logger
	}
	return logger.WithOptions(zap.IncreaseLevel(level))
}
