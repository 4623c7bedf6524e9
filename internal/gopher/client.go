// Package gopher implements the client side of the RFC 1436 Gopher
// protocol: one request line out, everything until close back.
package gopher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"gopher-gateway/internal/domain"
)

// DefaultTimeout bounds both connection setup and every idle gap between reads.
const DefaultTimeout = 10 * time.Second

const readChunkSize = 32 * 1024

var validate = validator.New()

// Client performs Gopher round trips. It holds no per-request state and is
// safe for concurrent use.
type Client struct {
	dialer  Dialer
	timeout time.Duration
	logger  *zap.Logger
}

func NewClient(dialer Dialer, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if dialer == nil {
		dialer = &TCPDialer{Timeout: timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		dialer:  dialer,
		timeout: timeout,
		logger:  logger.With(zap.String("component", "gopher")),
	}
}

// RequestLine builds the wire request: selector, an optional TAB and
// search query, then CRLF.
func RequestLine(req domain.Request) string {
	line := req.Selector
	if req.HasSearch() {
		line += "\t" + req.SearchQuery
	}
	return line + "\r\n"
}

// ValidateRequest checks host and port before any connection is attempted.
func ValidateRequest(req domain.Request) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("invalid gopher request: %w", err)
	}
	return nil
}

// Fetch opens a new connection, sends the request line and returns every
// byte received until the server closes the connection. Partial data is
// never returned alongside an error.
func (c *Client) Fetch(ctx context.Context, req domain.Request) (string, error) {
	if err := ValidateRequest(req); err != nil {
		return "", err
	}

	addr := net.JoinHostPort(req.Host, strconv.Itoa(req.Port))
	start := time.Now()

	content, err := c.roundTrip(ctx, addr, RequestLine(req))
	if err != nil {
		c.logger.Warn("gopher fetch failed",
			zap.String("addr", addr),
			zap.String("selector", req.Selector),
			zap.Stringer("error_kind", KindOf(err)),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return "", err
	}

	c.logger.Debug("gopher fetch completed",
		zap.String("addr", addr),
		zap.String("selector", req.Selector),
		zap.Int("bytes", len(content)),
		zap.Duration("duration", time.Since(start)))

	return content, nil
}

func (c *Client) roundTrip(ctx context.Context, addr, line string) (string, error) {
	dialCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	conn, err := c.dialer.Dial(dialCtx, "tcp", addr)
	if err != nil {
		return "", c.classify(ctx, addr, err)
	}
	defer conn.Close()

	// Cancelling ctx unblocks any pending I/O; the first error observed
	// after that is reported as the context's error.
	stop := context.AfterFunc(ctx, func() {
		conn.SetDeadline(time.Unix(1, 0)) //nolint:errcheck
	})
	defer stop()

	if err := conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		return "", c.classify(ctx, addr, err)
	}
	if _, err := io.WriteString(conn, line); err != nil {
		return "", c.classify(ctx, addr, err)
	}

	var buf bytes.Buffer
	chunk := make([]byte, readChunkSize)
	for {
		if err := conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
			return "", c.classify(ctx, addr, err)
		}
		n, err := conn.Read(chunk)
		buf.Write(chunk[:n])
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", c.classify(ctx, addr, err)
		}
	}

	if buf.Len() == 0 {
		return "", &FetchError{Kind: KindEmpty, Addr: addr}
	}
	return strings.ToValidUTF8(buf.String(), "\uFFFD"), nil
}

func (c *Client) classify(ctx context.Context, addr string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return classify(addr, ctxErr)
	}
	return classify(addr, err)
}
