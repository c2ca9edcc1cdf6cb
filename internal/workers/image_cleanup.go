// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/autolot/internal/adapter"
	"github.com/MKhiriev/autolot/internal/logger"
)

// deleteTimeout bounds one background batch against a hung image host.
const deleteTimeout = 30 * time.Second

// ImageCleanupWorker drains deletion handles queued by the vehicle service
// and removes the corresponding images from the host best-effort. Failures
// are logged and never retried: a leaked hosted image is harmless, and the
// row that referenced it is already gone.
type ImageCleanupWorker struct {
	images adapter.ImageStore
	queue  chan []string

	wg     sync.WaitGroup
	cancel context.CancelFunc

	logger *logger.Logger
}

// NewImageCleanupWorker builds a worker over the given image store. The
// queue is buffered; Enqueue never blocks the mutation path.
func NewImageCleanupWorker(images adapter.ImageStore, logger *logger.Logger) *ImageCleanupWorker {
	return &ImageCleanupWorker{
		images: images,
		queue:  make(chan []string, 256),
		logger: logger,
	}
}

// Enqueue schedules the given handles for deletion. Safe for concurrent
// use. When the queue is full the batch is dropped with a log entry rather
// than stalling the caller.
func (w *ImageCleanupWorker) Enqueue(handles ...string) {
	if len(handles) == 0 {
		return
	}

	batch := append([]string(nil), handles...)
	select {
	case w.queue <- batch:
	default:
		w.logger.Warn().Strs("handles", batch).Msg("cleanup queue full; dropping batch")
	}
}

// Start implements [Worker].
func (w *ImageCleanupWorker) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.run(ctx)
	}()
}

// Stop implements [Worker]. Batches already queued are drained before Stop
// returns.
func (w *ImageCleanupWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

func (w *ImageCleanupWorker) run(ctx context.Context) {
	for {
		select {
		case batch := <-w.queue:
			w.deleteBatch(batch)
		case <-ctx.Done():
			// drain what is already queued, then exit
			for {
				select {
				case batch := <-w.queue:
					w.deleteBatch(batch)
				default:
					return
				}
			}
		}
	}
}

func (w *ImageCleanupWorker) deleteBatch(handles []string) {
	ctx, cancel := context.WithTimeout(context.Background(), deleteTimeout)
	defer cancel()

	if err := w.images.DeleteMany(ctx, handles); err != nil {
		w.logger.Err(err).Strs("handles", handles).Msg("error: background image cleanup")
	}
}
