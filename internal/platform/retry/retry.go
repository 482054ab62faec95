// Package retry implements capped exponential backoff for operations against
// flaky backends. Sleep grows as start*factor^n and never exceeds border.
// There is no attempt cap: callers bound the loop with their context
package retry

import (
	"context"
	stderrs "errors"
	"math"
	"time"

	"cinedex/internal/platform/logger"
)

// Policy describes one backoff schedule
type Policy struct {
	// Start is the first sleep
	Start time.Duration
	// Factor multiplies the sleep after every failed attempt
	Factor float64
	// Border caps the sleep
	Border time.Duration
	// Retryable decides whether an error is worth another attempt.
	// Nil means DefaultRetryable
	Retryable func(error) bool
}

// DefaultPolicy mirrors the stock pipeline schedule: 100ms doubling up to 10s
func DefaultPolicy() Policy {
	return Policy{Start: 100 * time.Millisecond, Factor: 2, Border: 10 * time.Second}
}

// DefaultRetryable treats everything as transient except context teardown.
// Backend-aware callers narrow this with perr.Retryable
func DefaultRetryable(err error) bool {
	if err == nil {
		return false
	}
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}

// Delay returns the sleep before retry n (0-based)
func (p Policy) Delay(n int) time.Duration {
	start := p.Start
	if start <= 0 {
		start = 100 * time.Millisecond
	}
	factor := p.Factor
	if factor <= 0 {
		factor = 2
	}
	border := p.Border
	if border <= 0 {
		border = 10 * time.Second
	}

	d := float64(start) * math.Pow(factor, float64(n))
	if math.IsInf(d, 1) || d > float64(border) {
		return border
	}
	return time.Duration(d)
}

// Do runs fn until it succeeds, the error is not retryable, or ctx is done.
// Each failed attempt is logged at warn with the upcoming sleep
func Do(ctx context.Context, p Policy, name string, fn func(context.Context) error) error {
	retryable := p.Retryable
	if retryable == nil {
		retryable = DefaultRetryable
	}

	for n := 0; ; n++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !retryable(err) {
			return err
		}

		d := p.Delay(n)
		logger.C(ctx).Warn().
			Str("op", name).
			Int("attempt", n+1).
			Dur("sleep", d).
			Err(err).
			Msg("retrying")

		if err := Sleep(ctx, d); err != nil {
			return err
		}
	}
}

// Sleep blocks for d or until ctx is done, returning ctx.Err in that case
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
