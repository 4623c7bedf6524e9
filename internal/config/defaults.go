package config

import "gopher-gateway/internal/domain"

const (
	DefaultListenAddr     = ":3001"
	DefaultTimeoutSeconds = 10
	DefaultWorkerCount    = 8
	DefaultQueueSize      = 64
	DefaultLibraryPath    = "gopher-library.json"
	DefaultMaxHistory     = 50
)

// Default returns a Config populated with the built-in defaults.
func Default() *Config {
	return &Config{
		Server: Server{
			ListenAddr:    DefaultListenAddr,
			AllowedOrigin: "*",
		},
		Gopher: Gopher{
			TimeoutSeconds: DefaultTimeoutSeconds,
			DefaultPort:    domain.DefaultPort,
		},
		Workers: Workers{
			Count:     DefaultWorkerCount,
			QueueSize: DefaultQueueSize,
		},
		Library: LibraryConfig{
			Backend:    BackendFile,
			Path:       DefaultLibraryPath,
			MaxHistory: DefaultMaxHistory,
		},
		LogLevel: "info",
	}
}
