package backoff

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExponential(t *testing.T) {
	req := require.New(t)
	b := NewExponential(time.Millisecond, 4*time.Millisecond)
	want := []time.Duration{1, 2, 4, 4}
	for _, w := range want {
		req.Equal(w*time.Millisecond, b.Next())
		req.NoError(b.Wait(context.Background()))
	}
	b.Reset()
	req.Equal(time.Millisecond, b.Next())
}

func TestLinear(t *testing.T) {
	req := require.New(t)
	b := NewLinear(time.Millisecond, 0)
	for i := 1; i <= 3; i++ {
		req.Equal(time.Duration(i)*time.Millisecond, b.Next())
		req.NoError(b.Wait(context.Background()))
	}
}

func TestWaitCancelled(t *testing.T) {
	b := NewLinear(time.Hour, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, b.Wait(ctx), context.Canceled)
	require.Equal(t, time.Hour, b.Next())
}
