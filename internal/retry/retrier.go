package retry

import (
	"context"
	"time"

	"github.com/AgentBurgundy/better-shopify-app-template/pkg/shopkit"
)

// Retrier runs an operation until it succeeds, fails permanently, or runs
// out of attempts. It is safe for concurrent use.
type Retrier struct {
	classifier shopkit.ErrorClassifier
	backoff    shopkit.BackoffStrategy
	onRetry    func(attempt int, err error, delay time.Duration)
}

// New creates a Retrier. Panics if classifier or backoff is nil.
func New(classifier shopkit.ErrorClassifier, backoff shopkit.BackoffStrategy) *Retrier {
	if classifier == nil || backoff == nil {
		panic("retry: classifier and backoff are required")
	}
	return &Retrier{classifier: classifier, backoff: backoff}
}

// OnRetry returns a copy of r that calls fn before each wait.
func (r *Retrier) OnRetry(fn func(attempt int, err error, delay time.Duration)) *Retrier {
	clone := *r
	clone.onRetry = fn
	return &clone
}

// Do calls op and retries transient failures. It returns nil on success,
// the first permanent error, the last transient error once attempts run
// out, or ctx.Err() if the context ends while waiting.
func (r *Retrier) Do(ctx context.Context, op func(ctx context.Context) error) error {
	err := op(ctx)
	limit := r.backoff.MaxAttempts()

	for attempt := 0; err != nil && r.classifier.IsTransient(err); attempt++ {
		if limit >= 0 && attempt >= limit {
			break
		}

		delay := r.backoff.NextDelay(attempt)
		if r.onRetry != nil {
			r.onRetry(attempt, err, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		err = op(ctx)
	}
	return err
}
