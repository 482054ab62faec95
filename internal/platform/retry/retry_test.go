package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestDelayGrowsAndCaps(t *testing.T) {
	t.Parallel()

	p := Policy{Start: 100 * time.Millisecond, Factor: 2, Border: time.Second}
	cases := []struct {
		n    int
		want time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{2, 400 * time.Millisecond},
		{3, 800 * time.Millisecond},
		{4, time.Second},  // 1.6s capped
		{50, time.Second}, // way past any float precision
	}
	for _, c := range cases {
		if got := p.Delay(c.n); got != c.want {
			t.Fatalf("Delay(%d) = %v, want %v", c.n, got, c.want)
		}
	}
}

func TestDelayZeroPolicyUsesDefaults(t *testing.T) {
	t.Parallel()

	var p Policy
	if got := p.Delay(0); got != 100*time.Millisecond {
		t.Fatalf("Delay(0) = %v, want 100ms", got)
	}
	if got := p.Delay(1000); got != 10*time.Second {
		t.Fatalf("Delay(1000) = %v, want border 10s", got)
	}
}

func TestDoSucceedsAfterTransientFailures(t *testing.T) {
	t.Parallel()

	p := Policy{Start: time.Millisecond, Factor: 2, Border: 2 * time.Millisecond}
	attempts := 0
	err := Do(context.Background(), p, "flaky", func(context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("boom")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if attempts != 3 {
		t.Fatalf("attempts = %d, want 3", attempts)
	}
}

func TestDoStopsOnNonRetryable(t *testing.T) {
	t.Parallel()

	fatal := errors.New("schema is gone")
	p := Policy{
		Start:     time.Millisecond,
		Factor:    2,
		Border:    time.Millisecond,
		Retryable: func(error) bool { return false },
	}
	attempts := 0
	err := Do(context.Background(), p, "doomed", func(context.Context) error {
		attempts++
		return fatal
	})
	if !errors.Is(err, fatal) {
		t.Fatalf("Do = %v, want %v", err, fatal)
	}
	if attempts != 1 {
		t.Fatalf("attempts = %d, want 1", attempts)
	}
}

func TestDoReturnsWhenContextDies(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	p := Policy{Start: 5 * time.Millisecond, Factor: 2, Border: 5 * time.Millisecond}
	attempts := 0
	err := Do(ctx, p, "stuck", func(context.Context) error {
		attempts++
		if attempts == 2 {
			cancel()
		}
		return errors.New("still down")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Do = %v, want context.Canceled", err)
	}
}

func TestDefaultRetryable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", context.DeadlineExceeded, false},
		{"wrapped cancel", fmt.Errorf("stage: %w", context.Canceled), false},
		{"anything else", errors.New("connection reset"), true},
	}
	for _, c := range cases {
		if got := DefaultRetryable(c.err); got != c.want {
			t.Fatalf("%s: DefaultRetryable = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestSleepHonorsCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := Sleep(ctx, time.Minute)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Sleep = %v, want context.Canceled", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Fatalf("Sleep did not return promptly on cancel")
	}
}
