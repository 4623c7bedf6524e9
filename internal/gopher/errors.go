package gopher

import (
	"context"
	"errors"
	"net"
	"os"
	"syscall"

	"gopher-gateway/internal/domain"
)

// Kind classifies a failed fetch.
type Kind int

const (
	KindGeneric Kind = iota
	KindTimeout
	KindDNS
	KindRefused
	KindEmpty
)

func (k Kind) String() string {
	return string(k.Outcome())
}

// Outcome maps the kind onto the metrics label set.
func (k Kind) Outcome() domain.FetchOutcome {
	switch k {
	case KindTimeout:
		return domain.OutcomeTimeout
	case KindDNS:
		return domain.OutcomeDNS
	case KindRefused:
		return domain.OutcomeRefused
	case KindEmpty:
		return domain.OutcomeEmpty
	default:
		return domain.OutcomeGeneric
	}
}

// FetchError is the single failure reported by a fetch.
type FetchError struct {
	Kind Kind
	Addr string // host:port of the remote server
	Err  error  // underlying error, nil for KindEmpty
}

var (
	ErrTimeout = &FetchError{Kind: KindTimeout}
	ErrDNS     = &FetchError{Kind: KindDNS}
	ErrRefused = &FetchError{Kind: KindRefused}
	ErrEmpty   = &FetchError{Kind: KindEmpty}
)

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindTimeout:
		return "connection timed out, server did not respond within the configured window"
	case KindDNS:
		return "server not found: could not resolve hostname"
	case KindRefused:
		return "connection refused: server is not accepting connections"
	case KindEmpty:
		return "connection closed: no data received"
	default:
		if e.Err == nil {
			return "connection error"
		}
		return "connection error: " + e.Err.Error()
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is matches any FetchError of the same kind, so errors.Is(err, ErrTimeout)
// works regardless of address or cause.
func (e *FetchError) Is(target error) bool {
	t, ok := target.(*FetchError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Err == nil && t.Addr == ""
}

// KindOf returns the kind of err. Errors that are not FetchErrors are generic.
func KindOf(err error) Kind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindGeneric
}

// OutcomeOf labels the result of a fetch that returned err.
func OutcomeOf(err error) domain.FetchOutcome {
	if err == nil {
		return domain.OutcomeSuccess
	}
	return KindOf(err).Outcome()
}

// classify inspects standard library error types.
func classify(addr string, err error) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}

	kind := KindGeneric
	var dnsErr *net.DNSError
	var netErr net.Error
	switch {
	case errors.As(err, &dnsErr):
		if dnsErr.IsTimeout {
			kind = KindTimeout
		} else {
			kind = KindDNS
		}
	case errors.Is(err, syscall.ECONNREFUSED):
		kind = KindRefused
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, os.ErrDeadlineExceeded):
		kind = KindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = KindTimeout
	}

	return &FetchError{Kind: kind, Addr: addr, Err: err}
}
