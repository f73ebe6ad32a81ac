package database

import (
	"context"
	"database/sql/driver"
	"errors"

	retry "github.com/avast/retry-go/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"crmapi/internal/config"
)

// ReadRetrier retries read-only queries on transient connection errors with
// exponential backoff. It must never wrap a write: a statement that may have
// reached the server is past its point of no return.
type ReadRetrier struct {
	cfg config.RetryConfig
}

// NewReadRetrier returns a retrier bounded by cfg. Attempts <= 1 disables retries.
func NewReadRetrier(cfg config.RetryConfig) *ReadRetrier {
	return &ReadRetrier{cfg: cfg}
}

// Do runs fn, retrying while the returned error is transient and ctx is live.
// Cancelling ctx interrupts a pending backoff and returns the context error.
func (r *ReadRetrier) Do(ctx context.Context, fn func() error) error {
	if r == nil || r.cfg.Attempts <= 1 {
		return fn()
	}

	return retry.New(
		retry.Context(ctx),
		retry.RetryIf(func(err error) bool {
			return ctx.Err() == nil && IsTransient(err)
		}),
		retry.Delay(r.cfg.Delay),
		retry.MaxDelay(r.cfg.MaxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.Attempts(r.cfg.Attempts),
		retry.LastErrorOnly(true),
	).Do(fn)
}

// IsTransient reports whether err is a connection-level failure that happened
// before the server could act on the statement.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, driver.ErrBadConn) || pgconn.SafeToRetry(err)
}
