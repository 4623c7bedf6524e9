package httpapi

import (
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(NewServer),
	fx.Invoke(registerHooks),
)

func registerHooks(lc fx.Lifecycle, s *Server) {
	lc.Append(fx.Hook{
		OnStart: s.Start,
		OnStop:  s.Stop,
	})
}
