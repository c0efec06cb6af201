// Package circuit provides a small failure-count circuit breaker used to guard
// calls against an unreliable upstream. When enough consecutive failures
// accumulate the circuit opens and callers should serve from a fallback; after
// a cooldown the circuit goes half-open to let trial calls through, and a run
// of successes closes it again.
package circuit

import (
	"sync"
	"time"
)

// State is the breaker's coarse position.
type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half-open"
)

// StateChange reports a transition caused by a recorded outcome. Callers log
// transitions; steady-state outcomes produce a zero StateChange.
type StateChange struct {
	Opened bool
	Closed bool
}

// Breaker counts consecutive failures and successes. Safe for concurrent use.
type Breaker struct {
	mu               sync.Mutex
	name             string
	state            State
	failureThreshold int
	successThreshold int
	cooldown         time.Duration
	openUntil        time.Time
	failures         int
	successes        int
	now              func() time.Time
}

type Option func(*Breaker)

// WithFailureThreshold sets how many consecutive failures open the circuit.
func WithFailureThreshold(n int) Option {
	return func(b *Breaker) { b.failureThreshold = n }
}

// WithSuccessThreshold sets how many consecutive successes close an open
// circuit.
func WithSuccessThreshold(n int) Option {
	return func(b *Breaker) { b.successThreshold = n }
}

// WithCooldown sets how long the circuit stays open before going half-open.
func WithCooldown(d time.Duration) Option {
	return func(b *Breaker) { b.cooldown = d }
}

// WithClock overrides the cooldown clock. Tests pin it to drive the
// open to half-open transition without sleeping.
func WithClock(now func() time.Time) Option {
	return func(b *Breaker) { b.now = now }
}

// New constructs a closed Breaker. Defaults: 5 failures to open, 1 success to
// close, 30s cooldown before half-open.
func New(name string, opts ...Option) *Breaker {
	b := &Breaker{
		name:             name,
		state:            StateClosed,
		failureThreshold: 5,
		successThreshold: 1,
		cooldown:         30 * time.Second,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Breaker) Name() string { return b.name }

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stateLocked()
}

// IsOpen reports whether callers should fail fast. Once the cooldown expires
// the circuit is half-open and callers should try the upstream again.
func (b *Breaker) IsOpen() bool {
	return b.State() == StateOpen
}

// stateLocked applies the lazy open to half-open transition. Callers hold mu.
func (b *Breaker) stateLocked() State {
	if b.state == StateOpen && !b.now().Before(b.openUntil) {
		b.state = StateHalfOpen
		b.successes = 0
	}
	return b.state
}

// RecordFailure notes a failed call. It returns whether the caller should use
// its fallback, and whether this call transitioned the breaker.
func (b *Breaker) RecordFailure() (useFallback bool, change StateChange) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.successes = 0
	switch b.stateLocked() {
	case StateOpen:
		return true, StateChange{}
	case StateHalfOpen:
		// The trial call failed; back off for another cooldown.
		b.state = StateOpen
		b.openUntil = b.now().Add(b.cooldown)
		return true, StateChange{Opened: true}
	}

	b.failures++
	if b.failures >= b.failureThreshold {
		b.state = StateOpen
		b.openUntil = b.now().Add(b.cooldown)
		b.failures = 0
		return true, StateChange{Opened: true}
	}
	return false, StateChange{}
}

// RecordSuccess notes a successful call. It returns whether the caller should
// (resume) using the primary, and whether this call transitioned the breaker.
func (b *Breaker) RecordSuccess() (usePrimary bool, change StateChange) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures = 0
	if b.stateLocked() == StateClosed {
		return true, StateChange{}
	}

	b.successes++
	if b.successes >= b.successThreshold {
		b.state = StateClosed
		b.successes = 0
		return true, StateChange{Closed: true}
	}
	return false, StateChange{}
}

// Reset forces the breaker closed and clears all counters.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateClosed
	b.failures = 0
	b.successes = 0
	b.openUntil = time.Time{}
}
