// Package processor provides a backpressure-controlled worker pool for
// batch grievance intake. Submissions queue into a bounded channel; once
// the queue saturates, further submissions are rejected after a short wait
// instead of stalling the caller.
package processor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dhruva-pgrs/triage/internal/domain"
	"github.com/dhruva-pgrs/triage/internal/logging"
	"github.com/dhruva-pgrs/triage/internal/telemetry"
	"github.com/dhruva-pgrs/triage/internal/triage"
)

const (
	defaultWorkers       = 4
	defaultMaxQueueDepth = 200
	defaultSubmitTimeout = 2 * time.Second
	drainTimeout         = 30 * time.Second
)

// ErrSaturated indicates the pool queue is full and the submission was
// rejected.
var ErrSaturated = errors.New("intake pool saturated")

// ResultHandler is called for each processed grievance.
type ResultHandler func(ctx context.Context, result *domain.AggregateResult)

// Config holds pool sizing options.
type Config struct {
	Workers       int
	MaxQueueDepth int
	SubmitTimeout time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:       defaultWorkers,
		MaxQueueDepth: defaultMaxQueueDepth,
		SubmitTimeout: defaultSubmitTimeout,
	}
}

// Pool processes grievances concurrently through the pipeline with a
// bounded queue.
type Pool struct {
	pipeline      *triage.Pipeline
	workers       int
	submitTimeout time.Duration
	handler       ResultHandler
	telemetry     *telemetry.Provider
	logger        logging.Logger

	queue   chan triage.Input
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	started bool
	mu      sync.Mutex
}

// NewPool creates a pool over the pipeline. handler may be nil.
func NewPool(
	pipeline *triage.Pipeline,
	cfg Config,
	handler ResultHandler,
	tp *telemetry.Provider,
	logger logging.Logger,
) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.MaxQueueDepth <= 0 {
		cfg.MaxQueueDepth = defaultMaxQueueDepth
	}
	if cfg.SubmitTimeout <= 0 {
		cfg.SubmitTimeout = defaultSubmitTimeout
	}

	return &Pool{
		pipeline:      pipeline,
		workers:       cfg.Workers,
		submitTimeout: cfg.SubmitTimeout,
		handler:       handler,
		telemetry:     tp,
		logger:        logger,
		queue:         make(chan triage.Input, cfg.MaxQueueDepth),
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}

	ctx, p.cancel = context.WithCancel(ctx)
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
	p.started = true
	p.logger.Info("intake pool started",
		logging.Int("workers", p.workers),
		logging.Int("max_queue_depth", cap(p.queue)))
}

// Stop cancels the workers and waits up to the drain timeout for them to
// finish in-flight work.
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.started = false
	p.mu.Unlock()

	p.cancel()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(drainTimeout):
		p.logger.Warn("intake pool drain timed out",
			logging.Int("remaining", len(p.queue)))
	}
}

// Submit enqueues one grievance. It blocks up to the submit timeout when
// the queue is full, then rejects with ErrSaturated — explicit
// backpressure instead of unbounded queueing.
func (p *Pool) Submit(ctx context.Context, in triage.Input) error {
	select {
	case p.queue <- in:
		p.observeDepth()
		return nil
	default:
	}

	timer := time.NewTimer(p.submitTimeout)
	defer timer.Stop()
	select {
	case p.queue <- in:
		p.observeDepth()
		return nil
	case <-timer.C:
		if p.telemetry != nil {
			p.telemetry.Metrics.PoolRejected.Inc()
		}
		return ErrSaturated
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) worker(ctx context.Context, id int) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case in := <-p.queue:
			p.processOne(ctx, id, in)
			p.observeDepth()
		}
	}
}

func (p *Pool) processOne(ctx context.Context, workerID int, in triage.Input) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("worker recovered from panic",
				logging.Int("worker", workerID),
				logging.Any("panic", r))
		}
	}()

	if p.telemetry != nil {
		p.telemetry.Metrics.ActiveWorkers.Inc()
		defer p.telemetry.Metrics.ActiveWorkers.Dec()
	}

	result := p.pipeline.Process(ctx, in)
	if p.handler != nil {
		p.handler(ctx, result)
	}
}

func (p *Pool) observeDepth() {
	if p.telemetry != nil {
		p.telemetry.Metrics.QueueDepth.Set(float64(len(p.queue)))
	}
}
