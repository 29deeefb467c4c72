// Package resilience wraps outbound calls in circuit breakers that report
// their state to the metrics package.
package resilience

import (
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"

	"movie-discovery-llm-recommender/internal/metrics"
)

// BreakerSettings tunes a breaker. Zero values take the defaults below.
type BreakerSettings struct {
	MinRequests  uint32
	FailureRatio float64
	Interval     time.Duration
	OpenTimeout  time.Duration
}

func (s BreakerSettings) withDefaults() BreakerSettings {
	if s.MinRequests == 0 {
		s.MinRequests = 5
	}
	if s.FailureRatio == 0 {
		s.FailureRatio = 0.6
	}
	if s.Interval == 0 {
		s.Interval = time.Minute
	}
	if s.OpenTimeout == 0 {
		s.OpenTimeout = 30 * time.Second
	}
	return s
}

// NewBreaker returns a circuit breaker that opens once the failure ratio
// over at least MinRequests calls reaches FailureRatio.
func NewBreaker[T any](name string, s BreakerSettings) *gobreaker.CircuitBreaker[T] {
	s = s.withDefaults()
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    s.Interval,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= s.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})
}

// IsOpen reports whether err was returned because the breaker rejected the call.
func IsOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func stateValue(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
