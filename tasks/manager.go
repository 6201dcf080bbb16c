package tasks

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Handler interface {
	Handle(ctx context.Context, task Task) error
}

type HandlerFunc func(ctx context.Context, task Task) error

func (f HandlerFunc) Handle(ctx context.Context, task Task) error { return f(ctx, task) }

// Manager runs a fixed pool of workers over a Queue. A task whose handler
// fails is retried until it has been attempted maxAttempts times.
type Manager struct {
	q           *Queue
	handler     Handler
	log         *zap.Logger
	workers     int
	maxAttempts int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewManager(q *Queue, handler Handler, log *zap.Logger, workers, maxAttempts int) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	if workers <= 0 {
		workers = 1
	}
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &Manager{q: q, handler: handler, log: log, workers: workers, maxAttempts: maxAttempts}
}

// Start begins processing in the background.
func (m *Manager) Start(parent context.Context) {
	m.ctx, m.cancel = context.WithCancel(parent)
	m.q.Start(m.ctx)
	for i := 0; i < m.workers; i++ {
		m.wg.Add(1)
		go m.worker(m.ctx)
	}
	m.log.Info("task workers started", zap.Int("workerCount", m.workers))
}

// Stop cancels the workers and waits for them to return.
func (m *Manager) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
}

func (m *Manager) worker(ctx context.Context) {
	defer m.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case task := <-m.q.Out():
			m.process(ctx, task)
		}
	}
}

func (m *Manager) process(ctx context.Context, task Task) {
	defer m.q.MarkProcessed()

	task.Attempts++
	start := time.Now()
	err := m.handler.Handle(ctx, task)
	fields := []zap.Field{
		zap.String("taskID", task.Id),
		zap.String("kind", string(task.Kind)),
		zap.Int("attempt", task.Attempts),
		zap.Duration("duration", time.Since(start)),
	}
	if err == nil {
		m.log.Debug("task done", fields...)
		return
	}

	fields = append(fields, zap.Error(err))
	if task.Attempts < m.maxAttempts && ctx.Err() == nil {
		m.log.Warn("task failed, retrying", fields...)
		m.q.requeue(task)
		return
	}
	m.log.Error("task failed", fields...)
}

func (m *Manager) Enqueue(task Task) bool {
	if !m.q.Enqueue(task) {
		m.log.Warn("task rejected, intake closed", zap.String("kind", string(task.Kind)))
		return false
	}
	return true
}

func (m *Manager) CloseIntake() { m.q.CloseIntake() }

// DrainUntil blocks until every accepted task has been processed or ctx is done.
func (m *Manager) DrainUntil(ctx context.Context) bool {
	for {
		enq, proc, backlog, depth := m.q.Metrics()
		if backlog == 0 && depth == 0 && enq == proc {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(50 * time.Millisecond):
		}
	}
}
