package resilience

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// ErrGateRefused is returned when the limiter cannot grant a slot.
var ErrGateRefused = eris.New("resilience: interval gate refused reservation")

// Clock abstracts time for the interval gate.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
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

// RealClock returns a Clock backed by the wall clock.
func RealClock() Clock { return realClock{} }

// IntervalGate enforces a minimum spacing between outbound calls. One gate
// is shared by every worker hitting the same external quota; callers are
// assigned consecutive slots in arrival order.
type IntervalGate struct {
	limiter  *rate.Limiter
	clock    Clock
	interval time.Duration
}

// NewIntervalGate creates a gate allowing one call per interval. A nil clock
// uses the wall clock.
func NewIntervalGate(interval time.Duration, clock Clock) *IntervalGate {
	if clock == nil {
		clock = RealClock()
	}
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &IntervalGate{
		limiter:  rate.NewLimiter(limit, 1),
		clock:    clock,
		interval: interval,
	}
}

// Interval returns the configured minimum spacing.
func (g *IntervalGate) Interval() time.Duration { return g.interval }

// Wait blocks until the caller's slot arrives. If ctx ends first the slot is
// released back to the limiter.
func (g *IntervalGate) Wait(ctx context.Context) error {
	now := g.clock.Now()
	r := g.limiter.ReserveN(now, 1)
	if !r.OK() {
		return ErrGateRefused
	}
	delay := r.DelayFrom(now)
	if delay <= 0 {
		return nil
	}
	if err := g.clock.Sleep(ctx, delay); err != nil {
		r.CancelAt(g.clock.Now())
		return err
	}
	return nil
}
