package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	ErrCircuitOpen     = errors.New("circuit breaker is open")
	ErrTooManyRequests = errors.New("too many requests")
)

// State is the breaker position
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Settings tunes a Breaker. Zero values take the defaults in New.
type Settings struct {
	// Probes is how many calls a half-open breaker admits, and how many
	// must succeed before it closes again
	Probes uint32
	// Window clears the closed-state counts each time it elapses
	Window time.Duration
	// Cooldown is how long the breaker stays open
	Cooldown time.Duration
	// Trip decides, after a failed call while closed, whether to open
	Trip func(counts Counts) bool
	// Healthy reports whether a call's error leaves the upstream in good
	// standing. Defaults to err == nil.
	Healthy func(err error) bool
	// OnTransition observes every state change
	OnTransition func(from, to State)
}

// Counts are the call statistics of the current state. They reset on every
// transition and when the closed-state window elapses.
type Counts struct {
	Requests             uint32
	Successes            uint32
	Failures             uint32
	ConsecutiveSuccesses uint32
	ConsecutiveFailures  uint32
}

// Breaker guards calls to an upstream that can go away
type Breaker struct {
	settings Settings

	mu       sync.Mutex
	state    State
	counts   Counts
	deadline time.Time
	// epoch advances on every reset so late results of an earlier
	// period are dropped
	epoch uint64
}

// New creates a closed breaker
func New(settings Settings) *Breaker {
	if settings.Probes == 0 {
		settings.Probes = 1
	}
	if settings.Window == 0 {
		settings.Window = time.Minute
	}
	if settings.Cooldown == 0 {
		settings.Cooldown = time.Minute
	}
	if settings.Trip == nil {
		settings.Trip = func(counts Counts) bool {
			return counts.ConsecutiveFailures > 5
		}
	}
	if settings.Healthy == nil {
		settings.Healthy = func(err error) bool { return err == nil }
	}

	return &Breaker{
		settings: settings,
		deadline: time.Now().Add(settings.Window),
	}
}

// State returns the position the breaker is in now, applying any expired
// cooldown or window first.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.advance(time.Now())
	return b.state
}

// Counts returns a copy of the current counts
func (b *Breaker) Counts() Counts {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.counts
}

// Do runs fn through the breaker. A context that is already done is
// rejected without touching the counts; a panic in fn counts as a failure
// and is re-raised.
func Do[T any](ctx context.Context, b *Breaker, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	epoch, err := b.admit()
	if err != nil {
		return zero, err
	}

	healthy := false
	defer func() {
		b.record(epoch, healthy)
	}()

	result, err := fn(ctx)
	healthy = b.settings.Healthy(err)
	return result, err
}

func (b *Breaker) admit() (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.advance(time.Now())
	switch {
	case b.state == StateOpen:
		return 0, ErrCircuitOpen
	case b.state == StateHalfOpen && b.counts.Requests >= b.settings.Probes:
		return 0, ErrTooManyRequests
	}

	b.counts.Requests++
	return b.epoch, nil
}

func (b *Breaker) record(epoch uint64, healthy bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.advance(now)
	if epoch != b.epoch {
		return
	}

	if healthy {
		b.counts.Successes++
		b.counts.ConsecutiveSuccesses++
		b.counts.ConsecutiveFailures = 0
		if b.state == StateHalfOpen && b.counts.ConsecutiveSuccesses >= b.settings.Probes {
			b.transition(StateClosed, now)
		}
		return
	}

	b.counts.Failures++
	b.counts.ConsecutiveFailures++
	b.counts.ConsecutiveSuccesses = 0
	if b.state == StateHalfOpen || b.settings.Trip(b.counts) {
		b.transition(StateOpen, now)
	}
}

// advance applies time-driven changes. Must hold mu.
func (b *Breaker) advance(now time.Time) {
	switch b.state {
	case StateClosed:
		if now.After(b.deadline) {
			b.reset()
			b.deadline = now.Add(b.settings.Window)
		}
	case StateOpen:
		if now.After(b.deadline) {
			b.transition(StateHalfOpen, now)
		}
	}
}

// transition moves to state and starts a fresh period. Must hold mu.
func (b *Breaker) transition(state State, now time.Time) {
	if b.state == state {
		return
	}

	from := b.state
	b.state = state
	b.reset()

	switch state {
	case StateClosed:
		b.deadline = now.Add(b.settings.Window)
	case StateOpen:
		b.deadline = now.Add(b.settings.Cooldown)
	case StateHalfOpen:
		b.deadline = time.Time{}
	}

	if b.settings.OnTransition != nil {
		b.settings.OnTransition(from, state)
	}
}

func (b *Breaker) reset() {
	b.counts = Counts{}
	b.epoch++
}
