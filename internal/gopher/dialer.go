package gopher

import (
	"context"
	"net"
	"time"
)

// Dialer opens outbound connections to Gopher servers.
type Dialer interface {
	Dial(ctx context.Context, network, address string) (net.Conn, error)
}

// TCPDialer establishes plain TCP connections.
type TCPDialer struct {
	Timeout time.Duration
}

func (d *TCPDialer) Dial(ctx context.Context, network, address string) (net.Conn, error) {
	dialer := net.Dialer{Timeout: d.Timeout}
	return dialer.DialContext(ctx, network, address)
}
