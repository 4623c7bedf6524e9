package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gopher-gateway/internal/config"
	"gopher-gateway/internal/domain"
	"gopher-gateway/internal/gopher"
)

type fetchFunc func(ctx context.Context, req domain.Request) (string, error)

func (f fetchFunc) Fetch(ctx context.Context, req domain.Request) (string, error) {
	return f(ctx, req)
}

type mockMetrics struct {
	mu       sync.Mutex
	fetches  []domain.FetchResult
	parsed   []domain.ParsedContent
	started  int
	stopped  int
	enqueued int
}

func (m *mockMetrics) RecordFetch(r domain.FetchResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetches = append(m.fetches, r)
}

func (m *mockMetrics) RecordParse(c domain.ParsedContent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.parsed = append(m.parsed, c)
}

func (m *mockMetrics) RecordWorkerStart(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started++
}

func (m *mockMetrics) RecordWorkerStop(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped++
}

func (m *mockMetrics) RecordJobQueued() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enqueued++
}

func startPool(t *testing.T, workers, queue int, fetcher fetchFunc, metrics *mockMetrics) *Pool {
	t.Helper()
	pool, err := newPool(PoolConfig{
		WorkerCount:     workers,
		JobBufferSize:   queue,
		ShutdownTimeout: 5 * time.Second,
	}, fetcher, metrics, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, pool.Start(context.Background()))
	t.Cleanup(func() { pool.Stop() })
	return pool
}

func TestPoolBrowse(t *testing.T) {
	menuPayload := "1Menu One\t/one\texample.com\t70\r\n0Text File\t/file.txt\texample.com\t70\r\n.\r\n"

	tests := []struct {
		name     string
		fetch    fetchFunc
		validate func(*testing.T, domain.ParsedContent, error, *mockMetrics)
	}{
		{
			name: "Menu response",
			fetch: func(ctx context.Context, req domain.Request) (string, error) {
				return menuPayload, nil
			},
			validate: func(t *testing.T, c domain.ParsedContent, err error, m *mockMetrics) {
				require.NoError(t, err)
				require.True(t, c.IsMenu)
				assert.Len(t, c.Items, 2)
				require.Len(t, m.fetches, 1)
				assert.Equal(t, domain.OutcomeSuccess, m.fetches[0].Outcome)
				assert.Equal(t, len(menuPayload), m.fetches[0].Bytes)
				assert.Len(t, m.parsed, 1)
			},
		},
		{
			name: "Text response",
			fetch: func(ctx context.Context, req domain.Request) (string, error) {
				return "just text\n", nil
			},
			validate: func(t *testing.T, c domain.ParsedContent, err error, m *mockMetrics) {
				require.NoError(t, err)
				assert.False(t, c.IsMenu)
				assert.Equal(t, "just text\n", c.Text)
			},
		},
		{
			name: "Transport error",
			fetch: func(ctx context.Context, req domain.Request) (string, error) {
				return "", &gopher.FetchError{Kind: gopher.KindRefused, Addr: "example.com:70"}
			},
			validate: func(t *testing.T, c domain.ParsedContent, err error, m *mockMetrics) {
				require.Error(t, err)
				assert.ErrorIs(t, err, gopher.ErrRefused)

				var jobErr *JobError
				require.True(t, errors.As(err, &jobErr))
				assert.Equal(t, "fetch", jobErr.Stage)

				require.Len(t, m.fetches, 1)
				assert.Equal(t, domain.OutcomeRefused, m.fetches[0].Outcome)
				assert.Empty(t, m.parsed)
			},
		},
		{
			name: "Panic is reported as internal error",
			fetch: func(ctx context.Context, req domain.Request) (string, error) {
				panic("boom")
			},
			validate: func(t *testing.T, c domain.ParsedContent, err error, m *mockMetrics) {
				var jobErr *JobError
				require.True(t, errors.As(err, &jobErr))
				assert.Equal(t, "internal", jobErr.Stage)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := &mockMetrics{}
			pool := startPool(t, 2, 4, tt.fetch, metrics)

			content, err := pool.Browse(context.Background(), domain.NewRequest("example.com", 70, "", ""))

			metrics.mu.Lock()
			defer metrics.mu.Unlock()
			tt.validate(t, content, err, metrics)
		})
	}
}

func TestPoolQueueFull(t *testing.T) {
	started := make(chan struct{}, 1)
	release := make(chan struct{})

	pool := startPool(t, 1, 1, func(ctx context.Context, req domain.Request) (string, error) {
		started <- struct{}{}
		<-release
		return "text", nil
	}, &mockMetrics{})

	req := domain.NewRequest("example.com", 70, "", "")
	var wg sync.WaitGroup
	errs := make(chan error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := pool.Browse(context.Background(), req)
		errs <- err
	}()
	<-started

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := pool.Browse(context.Background(), req)
		errs <- err
	}()

	require.Eventually(t, func() bool { return len(pool.jobs) == 1 }, time.Second, 5*time.Millisecond)

	_, err := pool.Browse(context.Background(), req)
	assert.ErrorIs(t, err, ErrQueueFull)

	close(release)
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestPoolNotStarted(t *testing.T) {
	pool, err := newPool(PoolConfig{WorkerCount: 1, JobBufferSize: 1, ShutdownTimeout: time.Second},
		fetchFunc(func(ctx context.Context, req domain.Request) (string, error) { return "x", nil }),
		&mockMetrics{}, zap.NewNop())
	require.NoError(t, err)

	_, err = pool.Browse(context.Background(), domain.NewRequest("example.com", 70, "", ""))
	assert.ErrorIs(t, err, ErrPoolStopped)
}

func TestPoolCallerCancellation(t *testing.T) {
	pool := startPool(t, 1, 1, func(ctx context.Context, req domain.Request) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}, &mockMetrics{})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := pool.Browse(ctx, domain.NewRequest("example.com", 70, "", ""))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPoolConcurrentBrowse(t *testing.T) {
	metrics := &mockMetrics{}
	pool := startPool(t, 4, 32, func(ctx context.Context, req domain.Request) (string, error) {
		time.Sleep(5 * time.Millisecond)
		return "0" + req.Selector + "\t" + req.Selector + "\thost\t70", nil
	}, metrics)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			selector := string(rune('a' + i))
			content, err := pool.Browse(context.Background(), domain.NewRequest("example.com", 70, selector, ""))
			if assert.NoError(t, err) && assert.True(t, content.IsMenu) {
				assert.Equal(t, selector, content.Items[0].Selector)
			}
		}(i)
	}
	wg.Wait()

	metrics.mu.Lock()
	defer metrics.mu.Unlock()
	assert.Len(t, metrics.fetches, 16)
	assert.Equal(t, 16, metrics.enqueued)
}

func TestPoolStartStop(t *testing.T) {
	metrics := &mockMetrics{}
	cfg := config.Default()
	cfg.Workers.Count = 3

	pool, err := NewPool(cfg, fetchFunc(func(ctx context.Context, req domain.Request) (string, error) {
		return "x", nil
	}), metrics, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, pool.Start(context.Background()))
	assert.Error(t, pool.Start(context.Background()))

	require.Eventually(t, func() bool {
		metrics.mu.Lock()
		defer metrics.mu.Unlock()
		return metrics.started == 3
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, pool.Stop())
	require.NoError(t, pool.Stop())

	metrics.mu.Lock()
	defer metrics.mu.Unlock()
	assert.Equal(t, 3, metrics.stopped)
}

func TestNewPoolRejectsZeroWorkers(t *testing.T) {
	_, err := newPool(PoolConfig{WorkerCount: 0}, nil, &mockMetrics{}, zap.NewNop())
	assert.Error(t, err)
}
