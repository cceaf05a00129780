package pipeline

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/screenlex/platform/internal/ocr"
)

// blockingEngine recognizes only after release is closed, or the context
// is canceled.
type blockingEngine struct {
	release chan struct{}
	text    string
	err     error
}

func (e *blockingEngine) Name() string { return "fake" }

func (e *blockingEngine) Recognize(ctx context.Context, _ []byte) (ocr.Result, error) {
	if e.release != nil {
		select {
		case <-e.release:
		case <-ctx.Done():
			return ocr.Result{}, ctx.Err()
		}
	}
	if e.err != nil {
		return ocr.Result{}, e.err
	}
	return ocr.Result{Text: e.text, Confidence: 90}, nil
}

func TestWorkerDispatchDeliversResult(t *testing.T) {
	w := NewWorker(&blockingEngine{text: "hello screen"})

	type outcome struct {
		jobID string
		res   ocr.Result
		err   error
	}
	done := make(chan outcome, 1)

	id, ok := w.TryDispatch(context.Background(), []byte{0x01}, func(jobID string, res ocr.Result, err error) {
		done <- outcome{jobID, res, err}
	})
	if !ok {
		t.Fatal("idle worker refused dispatch")
	}
	if id == "" {
		t.Fatal("accepted job has empty ID")
	}

	select {
	case out := <-done:
		if out.jobID != id {
			t.Errorf("callback job ID = %q, want %q", out.jobID, id)
		}
		if out.err != nil || out.res.Text != "hello screen" {
			t.Errorf("callback = (%+v, %v)", out.res, out.err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("callback never fired")
	}
}

func TestWorkerRefusesSecondDispatch(t *testing.T) {
	engine := &blockingEngine{release: make(chan struct{}), text: "slow"}
	w := NewWorker(engine)

	done := make(chan struct{}, 1)
	_, ok := w.TryDispatch(context.Background(), []byte{0x01}, func(string, ocr.Result, error) {
		done <- struct{}{}
	})
	if !ok {
		t.Fatal("first dispatch refused")
	}
	if !w.Busy() {
		t.Error("worker not busy with a job in flight")
	}

	// Second attempt while busy: refused, not queued.
	if id, ok := w.TryDispatch(context.Background(), []byte{0x02}, nil); ok || id != "" {
		t.Errorf("busy worker accepted dispatch: id=%q ok=%v", id, ok)
	}

	close(engine.release)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job never finished")
	}

	// Idle again: next dispatch is accepted.
	if _, ok := w.TryDispatch(context.Background(), []byte{0x03}, nil); !ok {
		t.Error("idle worker refused dispatch after previous job finished")
	}
}

func TestWorkerCallbackFiresExactlyOnce(t *testing.T) {
	w := NewWorker(&blockingEngine{text: "once"})

	var calls atomic.Int32
	done := make(chan struct{}, 1)
	_, ok := w.TryDispatch(context.Background(), []byte{0x01}, func(string, ocr.Result, error) {
		calls.Add(1)
		done <- struct{}{}
	})
	if !ok {
		t.Fatal("dispatch refused")
	}

	<-done
	time.Sleep(50 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("callback fired %d times, want 1", got)
	}
}

func TestWorkerCancelSuppressesCallback(t *testing.T) {
	engine := &blockingEngine{release: make(chan struct{})}
	w := NewWorker(engine)

	var calls atomic.Int32
	_, ok := w.TryDispatch(context.Background(), []byte{0x01}, func(string, ocr.Result, error) {
		calls.Add(1)
	})
	if !ok {
		t.Fatal("dispatch refused")
	}

	if !w.Cancel() {
		t.Error("cancel did not complete within the wait window")
	}
	time.Sleep(50 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("canceled job fired its callback %d times", got)
	}
	if w.Busy() {
		t.Error("worker still busy after cancel")
	}
}

func TestWorkerCancelIdle(t *testing.T) {
	w := NewWorker(&blockingEngine{})
	if !w.Cancel() {
		t.Error("canceling an idle worker should succeed")
	}
}

func TestWorkerErrorPropagated(t *testing.T) {
	wantErr := errors.New("recognition failed")
	w := NewWorker(&blockingEngine{err: wantErr})

	errCh := make(chan error, 1)
	_, ok := w.TryDispatch(context.Background(), []byte{0x01}, func(_ string, _ ocr.Result, err error) {
		errCh <- err
	})
	if !ok {
		t.Fatal("dispatch refused")
	}

	select {
	case err := <-errCh:
		if !errors.Is(err, wantErr) {
			t.Errorf("err = %v, want %v", err, wantErr)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("callback never fired")
	}
}
