package util

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// CircuitState represents the state of the circuit breaker
type CircuitState string

const (
	CircuitStateClosed   CircuitState = "CLOSED"
	CircuitStateOpen     CircuitState = "OPEN"
	CircuitStateHalfOpen CircuitState = "HALF_OPEN"
)

// String implements Stringer interface
func (s CircuitState) String() string {
	return string(s)
}

// CircuitBreaker counts consecutive failures and, once the threshold is hit,
// rejects calls until resetTimeout has elapsed. A single probe is then let
// through (HALF_OPEN); its outcome closes or reopens the circuit.
//
// A nil *CircuitBreaker or a threshold of 0 never opens.
type CircuitBreaker struct {
	state            CircuitState
	failureCount     int
	failureThreshold int
	resetTimeout     time.Duration
	openUntil        time.Time
	probing          bool
	now              func() time.Time
	logger           *zap.Logger
	mu               sync.Mutex
}

// NewCircuitBreaker creates a new circuit breaker
func NewCircuitBreaker(failureThreshold int, resetTimeout time.Duration, logger *zap.Logger) *CircuitBreaker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CircuitBreaker{
		state:            CircuitStateClosed,
		failureThreshold: failureThreshold,
		resetTimeout:     resetTimeout,
		now:              time.Now,
		logger:           logger,
	}
}

// Allow reports whether a call may proceed. It returns the remaining open
// duration when the call is rejected.
func (cb *CircuitBreaker) Allow() (bool, time.Duration) {
	if cb == nil || cb.failureThreshold <= 0 {
		return true, 0
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitStateOpen:
		now := cb.now()
		if now.Before(cb.openUntil) {
			return false, cb.openUntil.Sub(now)
		}
		cb.transitionTo(CircuitStateHalfOpen)
		cb.probing = true
		return true, 0
	case CircuitStateHalfOpen:
		if cb.probing {
			return false, 0
		}
		cb.probing = true
		return true, 0
	default:
		return true, 0
	}
}

// RecordSuccess records a successful request
func (cb *CircuitBreaker) RecordSuccess() {
	if cb == nil || cb.failureThreshold <= 0 {
		return
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.probing = false
	cb.failureCount = 0
	if cb.state != CircuitStateClosed {
		cb.transitionTo(CircuitStateClosed)
	}
}

// RecordFailure records a failed request
func (cb *CircuitBreaker) RecordFailure() {
	if cb == nil || cb.failureThreshold <= 0 {
		return
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount++
	cb.probing = false

	if cb.state == CircuitStateHalfOpen || cb.failureCount >= cb.failureThreshold {
		cb.openUntil = cb.now().Add(cb.resetTimeout)
		if cb.state != CircuitStateOpen {
			cb.transitionTo(CircuitStateOpen)
		}
	}
}

// Abandon releases a half-open probe whose outcome is unknown, e.g. because
// the caller cancelled it.
func (cb *CircuitBreaker) Abandon() {
	if cb == nil || cb.failureThreshold <= 0 {
		return
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.probing = false
}

// State returns the current circuit state without side effects.
func (cb *CircuitBreaker) State() CircuitState {
	if cb == nil {
		return CircuitStateClosed
	}
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// must be called with lock held
func (cb *CircuitBreaker) transitionTo(newState CircuitState) {
	oldState := cb.state
	cb.state = newState

	fields := []zap.Field{
		zap.String("from", oldState.String()),
		zap.String("to", newState.String()),
		zap.Int("failure_count", cb.failureCount),
	}
	if newState == CircuitStateOpen {
		cb.logger.Warn("Circuit breaker opened", append(fields, zap.Time("open_until", cb.openUntil))...)
		return
	}
	cb.logger.Info("Circuit breaker state transition", fields...)
}
