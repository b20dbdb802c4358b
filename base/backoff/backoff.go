package backoff

import (
	"context"
	"time"
)

// Strategy returns the wait before retry n, n starts at 0
type Strategy func(n int, start time.Duration) time.Duration

func Exponential(n int, start time.Duration) time.Duration {
	return start << uint(n)
}

func Linear(n int, start time.Duration) time.Duration {
	return time.Duration(n+1) * start
}

// Backoff hands out growing waits, capped at limit when limit > 0
type Backoff struct {
	strategy Strategy
	start    time.Duration
	limit    time.Duration
	count    int
}

func New(strategy Strategy, start, limit time.Duration) *Backoff {
	return &Backoff{strategy: strategy, start: start, limit: limit}
}

func NewExponential(start, limit time.Duration) *Backoff {
	return New(Exponential, start, limit)
}

func NewLinear(start, limit time.Duration) *Backoff {
	return New(Linear, start, limit)
}

func (b *Backoff) Reset() {
	b.count = 0
}

// Next returns the wait of the upcoming retry without sleeping
func (b *Backoff) Next() time.Duration {
	d := b.strategy(b.count, b.start)
	if b.limit > 0 && (d > b.limit || d <= 0) {
		d = b.limit
	}
	return d
}

// Wait sleeps for Next, it returns ctx.Err() when ctx is done first
func (b *Backoff) Wait(ctx context.Context) error {
	t := time.NewTimer(b.Next())
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		b.count++
		return nil
	}
}
