package gopher

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"gopher-gateway/internal/config"
	"gopher-gateway/internal/interfaces"
)

var Module = fx.Options(
	fx.Provide(New),
	fx.Provide(func(c *Client) interfaces.Fetcher { return c }),
)

// New builds a Client from configuration.
func New(cfg *config.Config, logger *zap.Logger) *Client {
	timeout := cfg.Gopher.Timeout()
	return NewClient(&TCPDialer{Timeout: timeout}, timeout, logger)
}
