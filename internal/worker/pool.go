package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"gopher-gateway/internal/config"
	"gopher-gateway/internal/domain"
	"gopher-gateway/internal/interfaces"
)

// Pool bounds the number of Gopher round trips in flight. Each fetch is
// still an independent connection; the pool only limits how many run at once.
type Pool struct {
	workers   []Worker
	jobs      chan job
	logger    *zap.Logger
	wg        sync.WaitGroup
	cancel    context.CancelFunc
	mu        sync.RWMutex
	metrics   domain.MetricsCollector
	isStarted bool
	shutdown  time.Duration
}

type PoolConfig struct {
	WorkerCount     int
	JobBufferSize   int
	ShutdownTimeout time.Duration
}

func NewPool(
	cfg *config.Config,
	fetcher interfaces.Fetcher,
	metrics domain.MetricsCollector,
	logger *zap.Logger,
) (*Pool, error) {
	return newPool(PoolConfig{
		WorkerCount:     cfg.Workers.Count,
		JobBufferSize:   cfg.Workers.QueueSize,
		ShutdownTimeout: 30 * time.Second,
	}, fetcher, metrics, logger)
}

func newPool(
	poolConfig PoolConfig,
	fetcher interfaces.Fetcher,
	metrics domain.MetricsCollector,
	logger *zap.Logger,
) (*Pool, error) {
	if poolConfig.WorkerCount <= 0 {
		return nil, fmt.Errorf("invalid worker count: %d", poolConfig.WorkerCount)
	}

	jobs := make(chan job, poolConfig.JobBufferSize)
	logger = logger.With(zap.String("component", "worker_pool"))
	workers := make([]Worker, poolConfig.WorkerCount)

	for i := 0; i < poolConfig.WorkerCount; i++ {
		workers[i] = NewWorker(i, jobs, fetcher, metrics, logger)
	}

	return &Pool{
		workers:  workers,
		jobs:     jobs,
		logger:   logger,
		metrics:  metrics,
		shutdown: poolConfig.ShutdownTimeout,
	}, nil
}

func (p *Pool) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.isStarted {
		return fmt.Errorf("worker pool already started")
	}
	p.isStarted = true

	// The fx start context expires once startup completes, so workers get
	// their own lifetime.
	poolCtx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel

	for _, w := range p.workers {
		p.wg.Add(1)
		go func(worker Worker) {
			defer p.wg.Done()
			worker.Start(poolCtx)
		}(w)
	}

	p.logger.Info("worker pool started",
		zap.Int("worker_count", len(p.workers)),
		zap.Int("job_buffer_size", cap(p.jobs)))

	return nil
}

func (p *Pool) Stop() error {
	p.mu.Lock()
	if !p.isStarted {
		p.mu.Unlock()
		return nil
	}
	p.isStarted = false
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	p.logger.Debug("stopping worker pool")

	if cancel != nil {
		cancel()
	}
	for _, w := range p.workers {
		w.Stop()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Debug("worker pool stopped gracefully")
	case <-time.After(p.shutdown):
		return fmt.Errorf("worker pool shutdown timed out")
	}

	p.drain()
	return nil
}

// drain answers jobs that were queued but never picked up.
func (p *Pool) drain() {
	for {
		select {
		case j := <-p.jobs:
			j.result <- jobResult{err: NewJobError("queue", "pool stopped before fetch", ErrPoolStopped)}
		default:
			return
		}
	}
}

// Browse queues a fetch-and-parse job and waits for its result.
func (p *Pool) Browse(ctx context.Context, req domain.Request) (domain.ParsedContent, error) {
	result := make(chan jobResult, 1)

	if err := p.enqueue(ctx, job{ctx: ctx, req: req, result: result}); err != nil {
		return domain.ParsedContent{}, err
	}

	select {
	case r := <-result:
		return r.content, r.err
	case <-ctx.Done():
		return domain.ParsedContent{}, NewJobError("fetch", "caller gave up waiting", ctx.Err())
	}
}

func (p *Pool) enqueue(ctx context.Context, j job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.isStarted {
		return NewJobError("queue", "cannot accept job", ErrPoolStopped)
	}

	select {
	case p.jobs <- j:
		p.metrics.RecordJobQueued()
		return nil
	case <-ctx.Done():
		return NewJobError("queue", "cannot accept job", ctx.Err())
	default:
		p.logger.Warn("fetch queue full", zap.String("host", j.req.Host))
		return NewJobError("queue", "cannot accept job", ErrQueueFull)
	}
}
