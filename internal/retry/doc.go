// Package retry retries database operations that fail for transient reasons.
//
// A Retrier combines a shopkit.ErrorClassifier, which decides whether an
// error is worth another attempt, with a shopkit.BackoffStrategy, which
// decides how long to wait before it:
//
//	r := retry.New(retry.PostgresClassifier{}, retry.NewBackoff(shopkit.DefaultRetryMaxAttempts))
//	err := r.Do(ctx, func(ctx context.Context) error {
//	    return pool.Ping(ctx)
//	})
//
// Waiting between attempts stops as soon as ctx is cancelled.
package retry
