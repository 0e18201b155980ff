// Package circuitbreaker guards calls to a dependency, failing fast while it
// is down and letting a single trial call through once the cool-down has passed.
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/guttosm/flock-service/internal/logger"
)

// ErrCircuitOpen is returned without calling the dependency while the
// breaker is open or a half-open trial call is already in flight.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State is the breaker position.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

var stateNames = [...]string{
	StateClosed:   "closed",
	StateOpen:     "open",
	StateHalfOpen: "half-open",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Config tunes a CircuitBreaker. Zero thresholds and timeout take the
// DefaultConfig values.
type Config struct {
	// FailureThreshold consecutive failures open the circuit.
	FailureThreshold int
	// SuccessThreshold consecutive half-open successes close it again.
	SuccessThreshold int
	// Timeout is how long the circuit stays open before a trial call.
	Timeout time.Duration
	Name    string
	// IsFailure decides which errors count against the circuit. Errors it
	// rejects are still returned to the caller. Nil counts every error.
	IsFailure func(error) bool
	// OnStateChange runs after every transition, under the breaker lock.
	OnStateChange func(name string, from, to State)
}

// DefaultConfig returns the thresholds used for the MongoDB repositories.
func DefaultConfig() Config {
	return Config{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Timeout:          30 * time.Second,
		Name:             "circuit-breaker",
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.FailureThreshold <= 0 {
		c.FailureThreshold = def.FailureThreshold
	}
	if c.SuccessThreshold <= 0 {
		c.SuccessThreshold = def.SuccessThreshold
	}
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	if c.Name == "" {
		c.Name = def.Name
	}
	return c
}

// CircuitBreaker is safe for concurrent use.
type CircuitBreaker struct {
	cfg Config
	now func() time.Time

	mu          sync.RWMutex
	state       State
	failures    int
	successes   int
	lastFailure time.Time
	openedAt    time.Time
	trialing    bool
}

// New returns a closed breaker.
func New(cfg Config) *CircuitBreaker {
	return &CircuitBreaker{cfg: cfg.withDefaults(), now: time.Now}
}

// Name returns the configured breaker name.
func (cb *CircuitBreaker) Name() string {
	return cb.cfg.Name
}

// Execute runs fn unless the circuit is open. A context that is already done
// short-circuits with its error and leaves the counters untouched.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	trial, err := cb.admit()
	if err != nil {
		return err
	}

	err = fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if trial {
		cb.trialing = false
	}
	if err != nil && cb.countsAsFailure(err) {
		cb.recordFailure()
	} else {
		cb.recordSuccess()
	}
	return err
}

// Do runs fn under cb and returns its result.
func Do[T any](ctx context.Context, cb *CircuitBreaker, fn func() (T, error)) (T, error) {
	var result T
	err := cb.Execute(ctx, func() error {
		var fnErr error
		result, fnErr = fn()
		return fnErr
	})
	return result, err
}

// admit reports whether the call is the half-open trial call, or ErrCircuitOpen
// when the call must not reach the dependency.
func (cb *CircuitBreaker) admit() (bool, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateOpen:
		if cb.now().Sub(cb.openedAt) < cb.cfg.Timeout {
			return false, ErrCircuitOpen
		}
		cb.transition(StateHalfOpen)
		fallthrough
	case StateHalfOpen:
		if cb.trialing {
			return false, ErrCircuitOpen
		}
		cb.trialing = true
		return true, nil
	default:
		return false, nil
	}
}

func (cb *CircuitBreaker) countsAsFailure(err error) bool {
	if cb.cfg.IsFailure == nil {
		return true
	}
	return cb.cfg.IsFailure(err)
}

// recordFailure must be called with cb.mu held.
func (cb *CircuitBreaker) recordFailure() {
	cb.failures++
	cb.lastFailure = cb.now()

	if cb.state == StateHalfOpen || cb.failures >= cb.cfg.FailureThreshold {
		cb.transition(StateOpen)
	}
}

// recordSuccess must be called with cb.mu held.
func (cb *CircuitBreaker) recordSuccess() {
	cb.failures = 0
	if cb.state != StateHalfOpen {
		return
	}
	cb.successes++
	if cb.successes >= cb.cfg.SuccessThreshold {
		cb.transition(StateClosed)
	}
}

// transition must be called with cb.mu held.
func (cb *CircuitBreaker) transition(to State) {
	from := cb.state
	if from == to {
		return
	}
	cb.state = to
	cb.successes = 0
	if to == StateOpen {
		cb.openedAt = cb.now()
	}

	l := logger.Component("circuitbreaker")
	event := l.Info()
	if to == StateOpen {
		event = l.Warn().Int("failures", cb.failures)
	}
	event.Str("circuit_breaker", cb.cfg.Name).Stringer("from", from).Stringer("to", to).Msg("Circuit breaker state changed")

	if cb.cfg.OnStateChange != nil {
		cb.cfg.OnStateChange(cb.cfg.Name, from, to)
	}
}

// State returns the current position. An open circuit past its timeout still
// reports open until the next call tries it.
func (cb *CircuitBreaker) State() State {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// IsOpen reports whether calls are currently rejected.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.State() == StateOpen
}

// Stats is a point-in-time snapshot for health reporting.
type Stats struct {
	State        string
	FailureCount int
	SuccessCount int
	LastFailure  time.Time
	IsHealthy    bool
}

// GetStats returns a snapshot of the breaker.
func (cb *CircuitBreaker) GetStats() Stats {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	return Stats{
		State:        cb.state.String(),
		FailureCount: cb.failures,
		SuccessCount: cb.successes,
		LastFailure:  cb.lastFailure,
		IsHealthy:    cb.state == StateClosed,
	}
}
