//go:build !integration

package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDown = errors.New("connection refused")

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestBreaker(cfg Config) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}
	cb := New(cfg)
	cb.now = clock.now
	return cb, clock
}

func fail() error    { return errDown }
func succeed() error { return nil }

func run(cb *CircuitBreaker, fn func() error) error {
	return cb.Execute(context.Background(), fn)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "unknown", State(7).String())
}

func TestNew_FillsZeroConfig(t *testing.T) {
	cb := New(Config{FailureThreshold: 3})

	assert.Equal(t, 3, cb.cfg.FailureThreshold)
	assert.Equal(t, DefaultConfig().SuccessThreshold, cb.cfg.SuccessThreshold)
	assert.Equal(t, DefaultConfig().Timeout, cb.cfg.Timeout)
	assert.Equal(t, "circuit-breaker", cb.Name())
}

func TestExecute_OpensAfterConsecutiveFailures(t *testing.T) {
	cb, _ := newTestBreaker(Config{FailureThreshold: 3, SuccessThreshold: 1, Timeout: time.Minute, Name: "batches"})

	require.ErrorIs(t, run(cb, fail), errDown)
	require.ErrorIs(t, run(cb, fail), errDown)
	require.NoError(t, run(cb, succeed), "a success resets the streak")
	require.ErrorIs(t, run(cb, fail), errDown)
	require.ErrorIs(t, run(cb, fail), errDown)
	assert.Equal(t, StateClosed, cb.State())

	require.ErrorIs(t, run(cb, fail), errDown)
	assert.True(t, cb.IsOpen())

	called := false
	err := run(cb, func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestExecute_HalfOpenProbe(t *testing.T) {
	tests := []struct {
		name     string
		trial    func() error
		expected State
	}{
		{name: "success closes", trial: succeed, expected: StateClosed},
		{name: "failure reopens", trial: fail, expected: StateOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb, clock := newTestBreaker(Config{FailureThreshold: 1, SuccessThreshold: 1, Timeout: 30 * time.Second})
			_ = run(cb, fail)
			require.Equal(t, StateOpen, cb.State())

			clock.advance(29 * time.Second)
			require.ErrorIs(t, run(cb, succeed), ErrCircuitOpen)

			clock.advance(time.Second)
			_ = run(cb, tt.trial)
			assert.Equal(t, tt.expected, cb.State())
		})
	}
}

func TestExecute_ReopenRestartsTimeout(t *testing.T) {
	cb, clock := newTestBreaker(Config{FailureThreshold: 1, SuccessThreshold: 1, Timeout: 10 * time.Second})
	_ = run(cb, fail)

	clock.advance(10 * time.Second)
	_ = run(cb, fail)

	clock.advance(5 * time.Second)
	assert.ErrorIs(t, run(cb, succeed), ErrCircuitOpen)
}

func TestExecute_HalfOpenNeedsSuccessThreshold(t *testing.T) {
	cb, clock := newTestBreaker(Config{FailureThreshold: 1, SuccessThreshold: 2, Timeout: time.Second})
	_ = run(cb, fail)
	clock.advance(time.Second)

	require.NoError(t, run(cb, succeed))
	assert.Equal(t, StateHalfOpen, cb.State())
	assert.Equal(t, 1, cb.GetStats().SuccessCount)

	require.NoError(t, run(cb, succeed))
	assert.Equal(t, StateClosed, cb.State())
}

func TestExecute_SingleProbeInFlight(t *testing.T) {
	cb, clock := newTestBreaker(Config{FailureThreshold: 1, SuccessThreshold: 1, Timeout: time.Second})
	_ = run(cb, fail)
	clock.advance(time.Second)

	var concurrent error
	err := run(cb, func() error {
		concurrent = run(cb, succeed)
		return nil
	})

	require.NoError(t, err)
	assert.ErrorIs(t, concurrent, ErrCircuitOpen)
	assert.Equal(t, StateClosed, cb.State())
}

func TestExecute_DoneContextSkipsCall(t *testing.T) {
	cb, _ := newTestBreaker(Config{FailureThreshold: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := cb.Execute(ctx, func() error { called = true; return nil })

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
	assert.Equal(t, StateClosed, cb.State())
}

func TestExecute_IsFailureIgnoresBusinessErrors(t *testing.T) {
	errRejected := errors.New("capacity exceeded")
	cb, _ := newTestBreaker(Config{
		FailureThreshold: 1,
		IsFailure:        func(err error) bool { return !errors.Is(err, errRejected) },
	})

	for i := 0; i < 5; i++ {
		assert.ErrorIs(t, run(cb, func() error { return errRejected }), errRejected)
	}
	assert.Equal(t, StateClosed, cb.State())

	_ = run(cb, fail)
	assert.Equal(t, StateOpen, cb.State())
}

func TestOnStateChange(t *testing.T) {
	var transitions []string
	cb, clock := newTestBreaker(Config{
		FailureThreshold: 1,
		SuccessThreshold: 1,
		Timeout:          time.Second,
		Name:             "houses",
		OnStateChange: func(name string, from, to State) {
			assert.Equal(t, "houses", name)
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	_ = run(cb, fail)
	clock.advance(time.Second)
	_ = run(cb, succeed)

	assert.Equal(t, []string{"closed->open", "open->half-open", "half-open->closed"}, transitions)
}

func TestGetStats(t *testing.T) {
	cb, clock := newTestBreaker(Config{FailureThreshold: 2})

	stats := cb.GetStats()
	assert.Equal(t, "closed", stats.State)
	assert.True(t, stats.IsHealthy)
	assert.True(t, stats.LastFailure.IsZero())

	_ = run(cb, fail)
	stats = cb.GetStats()
	assert.Equal(t, 1, stats.FailureCount)
	assert.Equal(t, clock.t, stats.LastFailure)
	assert.True(t, stats.IsHealthy)

	_ = run(cb, fail)
	stats = cb.GetStats()
	assert.Equal(t, "open", stats.State)
	assert.False(t, stats.IsHealthy)
}

func TestDo(t *testing.T) {
	cb := New(DefaultConfig())

	v, err := Do(context.Background(), cb, func() (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	_, err = Do(context.Background(), cb, func() (string, error) { return "", errDown })
	assert.ErrorIs(t, err, errDown)
}
