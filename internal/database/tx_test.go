package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmapi/internal/config"
)

func TestWithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commit on success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO clients").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err = WithTx(ctx, db, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, "INSERT INTO clients DEFAULT VALUES")
			return err
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback on error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		boom := errors.New("boom")
		err = WithTx(ctx, db, func(tx *sql.Tx) error { return boom })

		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback on panic", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		assert.Panics(t, func() {
			_ = WithTx(ctx, db, func(tx *sql.Tx) error { panic("boom") })
		})
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

		called := false
		err = WithTx(ctx, db, func(tx *sql.Tx) error { called = true; return nil })

		assert.Error(t, err)
		assert.False(t, called)
	})
}

func TestReadRetrier(t *testing.T) {
	ctx := context.Background()
	cfg := config.RetryConfig{Attempts: 3}

	t.Run("retries transient errors up to the bound", func(t *testing.T) {
		calls := 0
		err := NewReadRetrier(cfg).Do(ctx, func() error {
			calls++
			return driver.ErrBadConn
		})
		assert.ErrorIs(t, err, driver.ErrBadConn)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops once the call succeeds", func(t *testing.T) {
		calls := 0
		err := NewReadRetrier(cfg).Do(ctx, func() error {
			calls++
			if calls == 1 {
				return driver.ErrBadConn
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("does not retry other errors", func(t *testing.T) {
		calls := 0
		err := NewReadRetrier(cfg).Do(ctx, func() error {
			calls++
			return sql.ErrNoRows
		})
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Equal(t, 1, calls)
	})

	t.Run("disabled with a single attempt", func(t *testing.T) {
		calls := 0
		_ = NewReadRetrier(config.RetryConfig{Attempts: 1}).Do(ctx, func() error {
			calls++
			return driver.ErrBadConn
		})
		assert.Equal(t, 1, calls)
	})

	t.Run("cancellation interrupts the backoff", func(t *testing.T) {
		slow := config.RetryConfig{Attempts: 3, Delay: time.Hour, MaxDelay: time.Hour}
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		calls := 0
		start := time.Now()
		err := NewReadRetrier(slow).Do(ctx, func() error {
			calls++
			return driver.ErrBadConn
		})

		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, 1, calls)
		assert.Less(t, time.Since(start), 5*time.Second)
	})
}
