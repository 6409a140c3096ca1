package services

import (
	"context"
	"time"
)

// latency simulates the round trip of a remote call. A zero scale returns
// immediately, which is what tests use.
type latency struct {
	scale float64
}

// wait blocks for base scaled, or until ctx is done. Callers touch no state
// until wait returns nil.
func (l latency) wait(ctx context.Context, base time.Duration) error {
	d := time.Duration(float64(base) * l.scale)
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
