package app

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"gopher-gateway/internal/config"
)

type hookParams struct {
	fx.In

	Logger    *zap.Logger
	Lifecycle fx.Lifecycle
	Config    *config.Config
	Env       string
}

func registerHooks(p hookParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting gopher gateway",
				zap.String("env", p.Env),
				zap.String("listen_addr", p.Config.Server.ListenAddr),
				zap.Int("workers", p.Config.Workers.Count),
				zap.String("library_backend", p.Config.Library.Backend))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Logger.Info("stopping gopher gateway")
			return nil
		},
	})
}
