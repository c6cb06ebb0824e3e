package retry

import (
	"math/rand"
	"time"

	"github.com/AgentBurgundy/better-shopify-app-template/pkg/shopkit"
)

// Backoff doubles the delay after every attempt up to a ceiling, spreading
// each delay by up to ±Jitter of its value.
type Backoff struct {
	initial  time.Duration
	max      time.Duration
	factor   float64
	jitter   float64
	attempts int
	random   func() float64
}

// BackoffOption configures a Backoff.
type BackoffOption func(*Backoff)

// WithDelays sets the first delay and the ceiling.
func WithDelays(initial, max time.Duration) BackoffOption {
	return func(b *Backoff) {
		b.initial = initial
		b.max = max
	}
}

// WithFactor sets the growth factor between attempts.
func WithFactor(f float64) BackoffOption {
	return func(b *Backoff) { b.factor = f }
}

// WithJitter sets the spread as a fraction of the delay (0 disables it).
// random must return values in [0, 1); nil keeps math/rand.
func WithJitter(fraction float64, random func() float64) BackoffOption {
	return func(b *Backoff) {
		b.jitter = fraction
		if random != nil {
			b.random = random
		}
	}
}

// NewBackoff creates a Backoff allowing attempts retries after the first try.
// A negative value retries until the context ends.
func NewBackoff(attempts int, opts ...BackoffOption) *Backoff {
	b := &Backoff{
		initial:  shopkit.DefaultRetryInitialDelay,
		max:      shopkit.DefaultRetryMaxDelay,
		factor:   2,
		jitter:   0.1,
		attempts: attempts,
		random:   rand.Float64,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NextDelay returns the wait before retry number attempt (zero-indexed).
func (b *Backoff) NextDelay(attempt int) time.Duration {
	delay := float64(b.initial)
	for i := 0; i < attempt && delay < float64(b.max); i++ {
		delay *= b.factor
	}
	if delay > float64(b.max) {
		delay = float64(b.max)
	}

	if b.jitter > 0 {
		delay += delay * b.jitter * (2*b.random() - 1)
	}
	if delay < 0 {
		delay = 0
	}
	return time.Duration(delay)
}

// MaxAttempts returns the number of retries allowed.
func (b *Backoff) MaxAttempts() int {
	return b.attempts
}

var _ shopkit.BackoffStrategy = (*Backoff)(nil)
