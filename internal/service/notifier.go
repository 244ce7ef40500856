package service

import (
	"context"
	"sync"

	"dues-tracker-backend/internal/logger"
)

// Notifier decouples notification dispatch from request handling. Services
// enqueue a task after a successful mutation; workers run it on their own
// goroutines with no completion signal back to the caller. Delivery is
// at-most-once: a full queue drops the task, and a failed send is logged and
// never retried.
type Notifier struct {
	tasks   chan func(context.Context)
	workers int
	once    sync.Once
	cancel  context.CancelFunc
}

func NewNotifier(workers, queueSize int) *Notifier {
	if workers <= 0 {
		workers = 2
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Notifier{
		tasks:   make(chan func(context.Context), queueSize),
		workers: workers,
	}
}

// Start launches the worker goroutines. Subsequent calls are no-ops.
func (n *Notifier) Start(ctx context.Context) {
	n.once.Do(func() {
		ctx, n.cancel = context.WithCancel(ctx)
		for i := 0; i < n.workers; i++ {
			go n.worker(ctx, i)
		}
	})
}

// Stop cancels the worker context. In-flight sends finish on their own HTTP
// timeouts; queued tasks are abandoned.
func (n *Notifier) Stop() {
	if n.cancel != nil {
		n.cancel()
	}
}

// Enqueue submits a dispatch task. It never blocks the caller: when the
// queue is full the task is dropped with a log line.
func (n *Notifier) Enqueue(task func(context.Context)) {
	select {
	case n.tasks <- task:
	default:
		logger.Warn("Notification queue full, dropping task")
	}
}

func (n *Notifier) worker(ctx context.Context, id int) {
	logger.Debug("Notification worker started", "worker", id)
	for {
		select {
		case <-ctx.Done():
			logger.Debug("Notification worker stopping", "worker", id)
			return
		case task := <-n.tasks:
			task(ctx)
		}
	}
}
