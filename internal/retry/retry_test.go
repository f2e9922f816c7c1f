package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func noSleep(recorded *[]time.Duration) func(context.Context, time.Duration) error {
	return func(_ context.Context, d time.Duration) error {
		*recorded = append(*recorded, d)
		return nil
	}
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	var slept []time.Duration
	calls := 0
	err := Do(context.Background(), Policy{MaxAttempts: 3, Sleep: noSleep(&slept)}, func(ctx context.Context, attempt int) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if len(slept) != 0 {
		t.Errorf("slept = %v, want none", slept)
	}
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	var slept []time.Duration
	p := Policy{
		MaxAttempts: 3,
		Backoff:     func(attempt int, err error) time.Duration { return time.Duration(attempt) * 100 * time.Millisecond },
		Sleep:       noSleep(&slept),
	}
	calls := 0
	err := Do(context.Background(), p, func(ctx context.Context, attempt int) error {
		calls++
		if attempt < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if len(slept) != 2 || slept[0] != 100*time.Millisecond || slept[1] != 200*time.Millisecond {
		t.Errorf("slept = %v, want [100ms 200ms]", slept)
	}
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	var slept []time.Duration
	last := errors.New("attempt 3 failed")
	p := Policy{
		MaxAttempts: 3,
		Backoff:     func(int, error) time.Duration { return time.Millisecond },
		Sleep:       noSleep(&slept),
	}
	calls := 0
	err := Do(context.Background(), p, func(ctx context.Context, attempt int) error {
		calls++
		if attempt == 3 {
			return last
		}
		return errors.New("earlier failure")
	})
	if !errors.Is(err, last) {
		t.Fatalf("Do = %v, want last error", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	// No backoff after the final attempt.
	if len(slept) != 2 {
		t.Errorf("sleeps = %d, want 2", len(slept))
	}
}

func TestDo_BackoffSeesFailureClass(t *testing.T) {
	rateLimited := errors.New("rate limited")
	var seen []error
	p := Policy{
		MaxAttempts: 2,
		Backoff: func(attempt int, err error) time.Duration {
			seen = append(seen, err)
			return 0
		},
	}
	_ = Do(context.Background(), p, func(ctx context.Context, attempt int) error {
		return rateLimited
	})
	if len(seen) != 1 || !errors.Is(seen[0], rateLimited) {
		t.Errorf("backoff errors = %v, want [rate limited]", seen)
	}
}

func TestDo_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := Policy{
		MaxAttempts: 3,
		Backoff:     func(int, error) time.Duration { return time.Minute },
	}
	calls := 0
	started := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- Do(ctx, p, func(ctx context.Context, attempt int) error {
			calls++
			started <- struct{}{}
			return errors.New("fail")
		})
	}()
	<-started
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Do = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Do did not return after cancellation")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDo_ZeroMaxAttemptsRunsOnce(t *testing.T) {
	calls := 0
	_ = Do(context.Background(), Policy{}, func(ctx context.Context, attempt int) error {
		calls++
		return errors.New("fail")
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
