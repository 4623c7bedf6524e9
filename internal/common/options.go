package common

import (
	"go.uber.org/zap"

	"gopher-gateway/internal/config"
	"gopher-gateway/internal/interfaces"
)

// ServiceOptions defines common options for the application container
type ServiceOptions struct {
	Logger  *zap.Logger
	Env     string
	Config  *config.Config
	Fetcher interfaces.Fetcher
}

// Option defines a service option modifier
type Option func(*ServiceOptions)

func WithLogger(logger *zap.Logger) Option {
	return func(o *ServiceOptions) {
		o.Logger = logger
	}
}

func WithEnv(env string) Option {
	return func(o *ServiceOptions) {
		o.Env = env
	}
}

// WithConfig replaces the configuration normally loaded from CONFIG_PATH.
func WithConfig(cfg *config.Config) Option {
	return func(o *ServiceOptions) {
		o.Config = cfg
	}
}

// WithFetcher replaces the TCP Gopher client.
func WithFetcher(f interfaces.Fetcher) Option {
	return func(o *ServiceOptions) {
		o.Fetcher = f
	}
}
