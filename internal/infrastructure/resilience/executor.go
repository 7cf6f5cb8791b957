package resilience

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
)

type ErrorClassification struct {
	Retryable     bool
	RecordFailure bool
}

type ErrorClassifier func(err error) ErrorClassification

// Executor runs remote calls under a retry policy and, when enabled, one
// circuit breaker per endpoint.
type Executor struct {
	policy Policy
	logger *slog.Logger

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker[struct{}]
}

func NewExecutor(policy Policy, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		policy:   policy.withDefaults(),
		logger:   logger,
		breakers: make(map[string]*gobreaker.CircuitBreaker[struct{}]),
	}
}

func (e *Executor) Execute(
	ctx context.Context,
	endpoint string,
	fn func(context.Context) error,
	classifier ErrorClassifier,
) error {
	if fn == nil {
		return fmt.Errorf("resilience: call for %q is nil", endpoint)
	}
	name := strings.TrimSpace(endpoint)
	if name == "" {
		name = "unknown"
	}
	if classifier == nil {
		classifier = failFast
	}

	if !e.policy.Breaker.Enabled {
		return e.withRetry(ctx, name, fn, classifier)
	}
	_, err := e.breaker(name, classifier).Execute(func() (struct{}, error) {
		return struct{}{}, e.withRetry(ctx, name, fn, classifier)
	})
	return err
}

func (e *Executor) withRetry(
	ctx context.Context,
	endpoint string,
	fn func(context.Context) error,
	classifier ErrorClassifier,
) error {
	var err error
	for attempt := 1; attempt <= e.policy.Attempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			if err != nil {
				return err
			}
			return ctxErr
		}

		err = fn(ctx)
		if err == nil {
			return nil
		}
		if attempt == e.policy.Attempts || !classifier(err).Retryable {
			return err
		}

		wait := e.policy.Backoff.Delay(attempt)
		e.logger.Warn("retry_attempt",
			"endpoint", endpoint,
			"attempt", attempt,
			"max_attempts", e.policy.Attempts,
			"backoff_ms", float64(wait.Microseconds())/1000.0,
			"error", err,
		)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
	}
	return err
}

func (e *Executor) breaker(endpoint string, classifier ErrorClassifier) *gobreaker.CircuitBreaker[struct{}] {
	e.mu.Lock()
	defer e.mu.Unlock()

	if cb, ok := e.breakers[endpoint]; ok {
		return cb
	}
	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        endpoint,
		MaxRequests: e.policy.Breaker.HalfOpenCalls,
		Timeout:     e.policy.Breaker.OpenTimeout,
		ReadyToTrip: e.policy.Breaker.trips,
		IsSuccessful: func(err error) bool {
			return err == nil || !classifier(err).RecordFailure
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			e.logger.Warn("circuit_breaker_state_change", "endpoint", name, "from", from.String(), "to", to.String())
		},
	})
	e.breakers[endpoint] = cb
	return cb
}

func IsCircuitOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func failFast(error) ErrorClassification {
	return ErrorClassification{Retryable: false, RecordFailure: true}
}
