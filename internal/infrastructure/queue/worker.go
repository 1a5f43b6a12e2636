package queue

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Handler processes one job. Errors are the handler's to report.
type Handler func(ctx context.Context, job Job)

type Worker struct {
	ID      int
	JobChan <-chan Job
	Wg      *sync.WaitGroup
	Handle  Handler
	Log     *zap.SugaredLogger
}

// Start runs jobs until JobChan is closed. Jobs still queued when ctx is
// cancelled are drained without being handled.
func (w *Worker) Start(ctx context.Context) {
	go func() {
		defer w.Wg.Done()
		for job := range w.JobChan {
			select {
			case <-ctx.Done():
				w.Log.Debugw("job cancelled", "worker", w.ID, "type", job.Type, "session", job.SessionID)
				continue
			default:
			}
			w.process(ctx, job)
		}
		w.Log.Debugw("job channel closed", "worker", w.ID)
	}()
}

func (w *Worker) process(ctx context.Context, job Job) {
	defer func() {
		if r := recover(); r != nil {
			w.Log.Errorw("job panicked", "worker", w.ID, "type", job.Type, "session", job.SessionID, "panic", r)
		}
	}()
	w.Handle(ctx, job)
}
