package worker

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"gopher-gateway/internal/domain"
	"gopher-gateway/internal/gopher"
	"gopher-gateway/internal/interfaces"
	"gopher-gateway/internal/menu"
)

// Worker represents a single worker that serves fetch jobs
type Worker interface {
	Start(context.Context)
	Stop()
}

type job struct {
	ctx    context.Context
	req    domain.Request
	result chan<- jobResult
}

type jobResult struct {
	content domain.ParsedContent
	err     error
}

type worker struct {
	id       string
	jobs     <-chan job
	fetcher  interfaces.Fetcher
	logger   *zap.Logger
	stopOnce sync.Once
	stopChan chan struct{}
	metrics  domain.MetricsCollector
}

func NewWorker(
	id int,
	jobs <-chan job,
	fetcher interfaces.Fetcher,
	metrics domain.MetricsCollector,
	logger *zap.Logger,
) Worker {
	return &worker{
		id:       strconv.Itoa(id),
		jobs:     jobs,
		fetcher:  fetcher,
		logger:   logger.With(zap.Int("worker_id", id)),
		stopChan: make(chan struct{}),
		metrics:  metrics,
	}
}

func (w *worker) Start(ctx context.Context) {
	w.logger.Debug("worker started")
	w.metrics.RecordWorkerStart(w.id)
	defer func() {
		w.metrics.RecordWorkerStop(w.id)
		w.logger.Debug("worker stopped")
	}()

	for {
		select {
		case j, ok := <-w.jobs:
			if !ok {
				w.logger.Info("jobs channel closed")
				return
			}
			j.result <- w.process(j)
		case <-ctx.Done():
			return
		case <-w.stopChan:
			w.logger.Info("received stop signal")
			return
		}
	}
}

func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopChan)
	})
}

func (w *worker) process(j job) (res jobResult) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("job panic recovered",
				zap.String("host", j.req.Host),
				zap.Any("panic", r),
				zap.Stack("stack"))
			res = jobResult{err: NewJobError("internal", "job panicked", fmt.Errorf("%v", r))}
		}
	}()

	if err := j.ctx.Err(); err != nil {
		return jobResult{err: NewJobError("queue", "caller gave up before fetch", err)}
	}

	start := time.Now()
	raw, err := w.fetcher.Fetch(j.ctx, j.req)
	w.metrics.RecordFetch(domain.FetchResult{
		Request:  j.req,
		Outcome:  gopher.OutcomeOf(err),
		Bytes:    len(raw),
		Duration: time.Since(start),
	})
	if err != nil {
		return jobResult{err: NewJobError("fetch", "gopher fetch failed", err)}
	}

	content := menu.Parse(raw)
	w.metrics.RecordParse(content)

	return jobResult{content: content}
}
