// Package workers provides the background goroutines of the autolot server.
// It defines the Worker interface and a Workers aggregate that starts and
// stops multiple workers in a unified way.
package workers

import "context"

// Worker is the interface implemented by every background worker.
//
// Start launches the worker's goroutine and returns immediately; the worker
// runs until ctx is cancelled. Stop blocks until in-flight work has drained.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}

// Workers is an aggregate of background workers managed as one unit.
type Workers struct {
	workers []Worker
}

// NewWorkers builds an aggregate over the given workers.
func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Start launches every worker.
func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
}

// Stop stops every worker in reverse start order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}
