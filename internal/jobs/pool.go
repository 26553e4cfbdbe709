// Package jobs runs background tasks on a fixed set of workers and hands
// their results back through a single non-blocking completion queue.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrEmpty is returned by TryRecv when no completion is ready.
	ErrEmpty = errors.New("jobs: no completion ready")
	// ErrClosed is returned by TryRecv once the pool is closed and drained.
	ErrClosed = errors.New("jobs: pool closed")
)

// DefaultBacklog bounds the number of queued tasks. Undelivered completions
// are never dropped.
const DefaultBacklog = 1 << 16

// ID identifies a submitted task.
type ID uuid.UUID

func (id ID) String() string { return uuid.UUID(id).String() }

// Task is the unit of background work. The context is cancelled when the
// pool is closed.
type Task func(ctx context.Context) (any, error)

// Completion is the outcome of one task. A failed task may still carry the
// payload it returned alongside Err.
type Completion struct {
	ID      ID
	Kind    string
	Payload any
	Err     error
}

type job struct {
	id   ID
	kind string
	task Task
}

// Pool executes tasks concurrently. Submit and TryRecv never block, so a
// single-threaded event loop can drive it.
type Pool struct {
	ctx    context.Context
	cancel context.CancelFunc
	tracer trace.Tracer

	mu     sync.RWMutex
	closed bool
	tasks  chan<- job

	results <-chan Completion
	wg      sync.WaitGroup
}

// Option configures a Pool.
type Option func(*poolConfig)

type poolConfig struct {
	tracer  trace.Tracer
	backlog int
}

// WithTracer sets the tracer used for job spans. Defaults to the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(c *poolConfig) { c.tracer = t }
}

// WithBacklog bounds the task queue.
func WithBacklog(n int) Option {
	return func(c *poolConfig) { c.backlog = n }
}

// NewPool starts workers goroutines. workers below 1 is treated as 1.
func NewPool(workers int, opts ...Option) *Pool {
	cfg := poolConfig{backlog: DefaultBacklog}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.tracer == nil {
		cfg.tracer = otel.Tracer("panedeck/jobs")
	}
	if workers < 1 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	tasksIn, tasksOut := unbounded[job](cfg.backlog)
	doneIn, doneOut := unbounded[Completion](0)

	p := &Pool{
		ctx:     ctx,
		cancel:  cancel,
		tracer:  cfg.tracer,
		tasks:   tasksIn,
		results: doneOut,
	}
	p.wg.Add(workers)
	for range workers {
		go func() {
			defer p.wg.Done()
			for j := range tasksOut {
				doneIn <- p.run(j)
			}
		}()
	}
	go func() {
		p.wg.Wait()
		close(doneIn)
	}()
	return p
}

// Submit queues task and returns its id immediately. kind tags the
// completion and names the job's span. Tasks submitted after Close are dropped.
func (p *Pool) Submit(kind string, task Task) ID {
	id := ID(uuid.New())
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		log.Printf("jobs.Submit: pool closed, dropping %s job %s", kind, id)
		return id
	}
	p.tasks <- job{id: id, kind: kind, task: task}
	return id
}

// TryRecv returns the next completion without blocking. It returns ErrEmpty
// when nothing is ready and ErrClosed once the pool is closed and every
// completion has been received.
func (p *Pool) TryRecv() (Completion, error) {
	select {
	case c, ok := <-p.results:
		if !ok {
			return Completion{}, ErrClosed
		}
		return c, nil
	default:
		return Completion{}, ErrEmpty
	}
}

// Close stops accepting tasks and cancels the context of running ones.
// Queued tasks still run and report completions.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.cancel()
	close(p.tasks)
}

// Wait blocks until every worker has exited. Call after Close.
func (p *Pool) Wait() {
	p.wg.Wait()
}

func (p *Pool) run(j job) (c Completion) {
	ctx, span := p.tracer.Start(p.ctx, "job."+j.kind,
		trace.WithAttributes(
			attribute.String("panedeck.job.id", j.id.String()),
			attribute.String("panedeck.job.kind", j.kind),
		),
	)
	defer span.End()

	c = Completion{ID: j.id, Kind: j.kind}
	defer func() {
		if r := recover(); r != nil {
			c.Payload = nil
			c.Err = fmt.Errorf("jobs: %s job %s panicked: %v", j.kind, j.id, r)
		}
		if c.Err != nil {
			span.RecordError(c.Err)
			span.SetStatus(codes.Error, c.Err.Error())
		}
	}()
	c.Payload, c.Err = j.task(ctx)
	return c
}
