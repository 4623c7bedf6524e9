package worker

import (
	"context"

	"go.uber.org/fx"

	"gopher-gateway/internal/interfaces"
)

var Module = fx.Options(
	fx.Provide(NewPool),
	fx.Provide(func(p *Pool) interfaces.WorkerPool { return p }),
	fx.Provide(func(p *Pool) interfaces.Browser { return p }),
	fx.Invoke(registerHooks),
)

func registerHooks(lc fx.Lifecycle, pool interfaces.WorkerPool) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return pool.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return pool.Stop()
		},
	})
}
