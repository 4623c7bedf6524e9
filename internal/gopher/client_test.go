package gopher

import (
	"bufio"
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gopher-gateway/internal/domain"
)

// serveOnce accepts a single connection, reports the request line it read
// and hands the connection to respond.
func serveOnce(t *testing.T, respond func(net.Conn)) (domain.Request, <-chan string) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	lines := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		line, err := bufio.NewReader(conn).ReadString('\n')
		if err != nil {
			return
		}
		lines <- line
		respond(conn)
	}()

	port := ln.Addr().(*net.TCPAddr).Port
	return domain.NewRequest("127.0.0.1", port, "", ""), lines
}

type fakeDialer struct {
	err error
}

func (d *fakeDialer) Dial(ctx context.Context, network, address string) (net.Conn, error) {
	return nil, d.err
}

func TestRequestLine(t *testing.T) {
	tests := []struct {
		name     string
		req      domain.Request
		expected string
	}{
		{
			name:     "Empty selector",
			req:      domain.NewRequest("example.com", 70, "", ""),
			expected: "\r\n",
		},
		{
			name:     "Selector only",
			req:      domain.NewRequest("example.com", 70, "/docs/readme.txt", ""),
			expected: "/docs/readme.txt\r\n",
		},
		{
			name:     "Selector with search",
			req:      domain.NewRequest("example.com", 70, "/v2/vs", "gopher clients"),
			expected: "/v2/vs\tgopher clients\r\n",
		},
		{
			name:     "Search with empty selector",
			req:      domain.NewRequest("example.com", 70, "", "query"),
			expected: "\tquery\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := RequestLine(tt.req)
			assert.Equal(t, tt.expected, line)
			assert.True(t, strings.HasSuffix(line, "\r\n"))
			if tt.req.HasSearch() {
				assert.Equal(t, 1, strings.Count(line, "\t"))
			}
		})
	}
}

func TestFetchSuccess(t *testing.T) {
	payload := "1Menu One\t/one\texample.com\t70\r\n0Text File\t/file.txt\texample.com\t70\r\n.\r\n"
	req, lines := serveOnce(t, func(conn net.Conn) {
		conn.Write([]byte(payload[:10])) //nolint:errcheck
		time.Sleep(20 * time.Millisecond)
		conn.Write([]byte(payload[10:])) //nolint:errcheck
	})
	req.Selector = "/menu"
	req.SearchQuery = "term"

	client := NewClient(nil, 2*time.Second, zap.NewNop())
	content, err := client.Fetch(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, payload, content)
	assert.Equal(t, "/menu\tterm\r\n", <-lines)
}

func TestFetchEmptyClose(t *testing.T) {
	req, _ := serveOnce(t, func(net.Conn) {})

	client := NewClient(nil, 2*time.Second, zap.NewNop())
	content, err := client.Fetch(context.Background(), req)

	require.Error(t, err)
	assert.Empty(t, content)
	assert.ErrorIs(t, err, ErrEmpty)
	assert.Equal(t, "connection closed: no data received", err.Error())
}

func TestFetchTimeout(t *testing.T) {
	tests := []struct {
		name    string
		partial string
	}{
		{name: "Silent server"},
		{name: "Server stalls after partial data", partial: "1Partial\t/p\thost\t70\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			release := make(chan struct{})
			defer close(release)

			req, _ := serveOnce(t, func(conn net.Conn) {
				if tt.partial != "" {
					conn.Write([]byte(tt.partial)) //nolint:errcheck
				}
				<-release
			})

			client := NewClient(nil, 150*time.Millisecond, zap.NewNop())
			start := time.Now()
			content, err := client.Fetch(context.Background(), req)

			require.Error(t, err)
			assert.Empty(t, content)
			assert.ErrorIs(t, err, ErrTimeout)
			assert.Equal(t, KindTimeout, KindOf(err))
			assert.Equal(t, "connection timed out, server did not respond within the configured window", err.Error())
			assert.Less(t, time.Since(start), 2*time.Second)
		})
	}
}

func TestFetchRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	client := NewClient(nil, 2*time.Second, zap.NewNop())
	_, err = client.Fetch(context.Background(), domain.NewRequest("127.0.0.1", port, "", ""))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRefused)
	assert.Equal(t, "connection refused: server is not accepting connections", err.Error())
}

func TestFetchDialErrors(t *testing.T) {
	tests := []struct {
		name        string
		dialErr     error
		expectKind  Kind
		expectedMsg string
	}{
		{
			name: "Host not found",
			dialErr: &net.OpError{Op: "dial", Net: "tcp", Err: &net.DNSError{
				Err: "no such host", Name: "nowhere.invalid", IsNotFound: true,
			}},
			expectKind:  KindDNS,
			expectedMsg: "server not found: could not resolve hostname",
		},
		{
			name: "DNS timeout",
			dialErr: &net.OpError{Op: "dial", Net: "tcp", Err: &net.DNSError{
				Err: "i/o timeout", Name: "slow.example", IsTimeout: true,
			}},
			expectKind:  KindTimeout,
			expectedMsg: "connection timed out, server did not respond within the configured window",
		},
		{
			name:        "Generic socket failure",
			dialErr:     errors.New("network is unreachable"),
			expectKind:  KindGeneric,
			expectedMsg: "connection error: network is unreachable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(&fakeDialer{err: tt.dialErr}, time.Second, zap.NewNop())
			content, err := client.Fetch(context.Background(), domain.NewRequest("example.com", 70, "", ""))

			require.Error(t, err)
			assert.Empty(t, content)
			assert.Equal(t, tt.expectKind, KindOf(err))
			assert.Equal(t, tt.expectedMsg, err.Error())
			assert.ErrorIs(t, err, tt.dialErr)
		})
	}
}

func TestFetchCancelledContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	req, _ := serveOnce(t, func(net.Conn) { <-release })

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	client := NewClient(nil, 5*time.Second, zap.NewNop())
	_, err := client.Fetch(ctx, req)

	require.Error(t, err)
	assert.Equal(t, KindGeneric, KindOf(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchInvalidRequest(t *testing.T) {
	client := NewClient(&fakeDialer{err: errors.New("must not dial")}, time.Second, zap.NewNop())

	_, err := client.Fetch(context.Background(), domain.Request{Host: "", Port: 70})
	assert.Error(t, err)

	_, err = client.Fetch(context.Background(), domain.Request{Host: "example.com", Port: 70000})
	assert.Error(t, err)

	var fe *FetchError
	assert.False(t, errors.As(err, &fe))
}

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, domain.OutcomeSuccess, OutcomeOf(nil))
	assert.Equal(t, domain.OutcomeTimeout, OutcomeOf(&FetchError{Kind: KindTimeout}))
	assert.Equal(t, domain.OutcomeDNS, OutcomeOf(&FetchError{Kind: KindDNS}))
	assert.Equal(t, domain.OutcomeRefused, OutcomeOf(&FetchError{Kind: KindRefused}))
	assert.Equal(t, domain.OutcomeEmpty, OutcomeOf(&FetchError{Kind: KindEmpty}))
	assert.Equal(t, domain.OutcomeGeneric, OutcomeOf(errors.New("boom")))
}
