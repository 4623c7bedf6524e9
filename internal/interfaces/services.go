package interfaces

import (
	"context"

	"gopher-gateway/internal/domain"
)

// Fetcher performs one Gopher round trip.
type Fetcher interface {
	Fetch(ctx context.Context, req domain.Request) (string, error)
}

// Browser fetches and parses a Gopher resource.
type Browser interface {
	Browse(ctx context.Context, req domain.Request) (domain.ParsedContent, error)
}

// WorkerPool defines the interface for worker pool management
type WorkerPool interface {
	Browser
	Start(context.Context) error
	Stop() error
}
