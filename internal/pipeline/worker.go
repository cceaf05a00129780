package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/screenlex/platform/internal/ocr"
	"github.com/screenlex/platform/internal/trace"
)

// cancelWait bounds how long Cancel blocks for the running job to stop.
const cancelWait = 2 * time.Second

// job tracks one in-flight recognition.
type job struct {
	id       string
	cancel   context.CancelFunc
	done     chan struct{}
	canceled bool
}

// Worker runs at most one OCR job at a time. Dispatch attempts while a
// job is running are refused, not queued.
type Worker struct {
	engine ocr.Engine

	mu      sync.Mutex
	current *job
}

func NewWorker(engine ocr.Engine) *Worker {
	return &Worker{engine: engine}
}

// Busy reports whether a job is in flight.
func (w *Worker) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current != nil
}

// TryDispatch starts recognition of image if the worker is idle. It
// returns the job ID and true when the job was accepted, or "" and
// false when a job is already running. The callback fires exactly once
// per accepted job unless the job is canceled first.
func (w *Worker) TryDispatch(ctx context.Context, image []byte, cb func(jobID string, res ocr.Result, err error)) (string, bool) {
	w.mu.Lock()
	if w.current != nil {
		w.mu.Unlock()
		return "", false
	}
	jobCtx, cancel := context.WithCancel(ctx)
	j := &job{
		id:     uuid.NewString(),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	w.current = j
	w.mu.Unlock()

	go w.run(jobCtx, j, image, cb)
	return j.id, true
}

func (w *Worker) run(ctx context.Context, j *job, image []byte, cb func(string, ocr.Result, error)) {
	defer close(j.done)

	ctx, span := trace.StartSpan(ctx, "ocr.recognize")
	res, err := w.engine.Recognize(ctx, image)
	span.End(ctx)

	w.mu.Lock()
	suppressed := j.canceled
	w.current = nil
	w.mu.Unlock()
	j.cancel()

	if !suppressed && cb != nil {
		cb(j.id, res, err)
	}
}

// Cancel stops the in-flight job, if any, and waits up to cancelWait
// for it to finish. The job's callback will not fire. Returns false if
// the job did not stop within the wait window.
func (w *Worker) Cancel() bool {
	w.mu.Lock()
	j := w.current
	if j == nil {
		w.mu.Unlock()
		return true
	}
	j.canceled = true
	w.mu.Unlock()
	j.cancel()

	select {
	case <-j.done:
		return true
	case <-time.After(cancelWait):
		return false
	}
}
