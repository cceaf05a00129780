package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastRetryConfig(attempts int) RetryConfig {
	return RetryConfig{MaxAttempts: attempts, BaseDelay: time.Millisecond, MaxDelay: 10 * time.Millisecond}
}

func TestRetrySucceedsFirst(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetryConfig(3), func() error {
		calls++
		return nil
	})

	if err != nil {
		t.Errorf("Retry() = %v, want nil", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetrySucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetryConfig(3), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	if err != nil {
		t.Errorf("Retry() = %v, want nil", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	retryErr := errors.New("always fail")

	err := Retry(context.Background(), fastRetryConfig(3), func() error {
		calls++
		return retryErr
	})

	if !errors.Is(err, retryErr) {
		t.Errorf("Retry() = %v, want %v", err, retryErr)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryNonRetryableError(t *testing.T) {
	permanent := errors.New("bad request")
	cfg := fastRetryConfig(5)
	cfg.IsRetryable = func(err error) bool { return !errors.Is(err, permanent) }

	calls := 0
	err := Retry(context.Background(), cfg, func() error {
		calls++
		return permanent
	})

	if !errors.Is(err, permanent) {
		t.Errorf("Retry() = %v, want %v", err, permanent)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := RetryConfig{MaxAttempts: 10, BaseDelay: 100 * time.Millisecond, MaxDelay: time.Second}

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	err := Retry(ctx, cfg, func() error {
		return errors.New("fail")
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Retry() = %v, want context.Canceled", err)
	}
}

func TestProbeConfig(t *testing.T) {
	cfg := ProbeConfig()
	if cfg.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", cfg.MaxAttempts)
	}
	if cfg.BaseDelay != 300*time.Millisecond {
		t.Errorf("BaseDelay = %v, want 300ms", cfg.BaseDelay)
	}
}

func TestBackoffDelay(t *testing.T) {
	cfg := RetryConfig{BaseDelay: 100 * time.Millisecond, MaxDelay: time.Second, JitterFactor: 0}

	d1 := backoffDelay(cfg, 1)
	d2 := backoffDelay(cfg, 2)
	d3 := backoffDelay(cfg, 3)

	if d1 != 100*time.Millisecond {
		t.Errorf("attempt 1 delay = %v, want 100ms", d1)
	}
	if d2 != 200*time.Millisecond {
		t.Errorf("attempt 2 delay = %v, want 200ms", d2)
	}
	if d3 != 400*time.Millisecond {
		t.Errorf("attempt 3 delay = %v, want 400ms", d3)
	}
}

func TestBackoffDelayCapped(t *testing.T) {
	cfg := RetryConfig{BaseDelay: 100 * time.Millisecond, MaxDelay: 300 * time.Millisecond, JitterFactor: 0}

	d6 := backoffDelay(cfg, 6)
	if d6 != 300*time.Millisecond {
		t.Errorf("attempt 6 delay = %v, want 300ms (capped)", d6)
	}
}
