// Package postgres implements the repository contracts on PostgreSQL using
// database/sql. Every statement is parameterised; dynamic statements are
// assembled with squirrel using $n placeholders.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"crmapi/internal/database"
	"crmapi/internal/errs"
	"crmapi/internal/model"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// base carries the shared pool and the read retrier.
type base struct {
	db    *sql.DB
	reads *database.ReadRetrier
}

// read runs a read-only query function under the bounded retry.
func (b base) read(ctx context.Context, fn func() error) error {
	return b.reads.Do(ctx, fn)
}

// clientOwnedStmt locks the parent client row so it cannot be deleted or move
// tenants before the dependent write commits.
const clientOwnedStmt = `SELECT company_name FROM clients WHERE id = $1 AND tenant_id = $2 FOR SHARE`

// ensureClientOwned returns the client's company name, or
// ErrForeignOwnershipViolation when the client is missing or owned by another tenant.
func ensureClientOwned(ctx context.Context, q querier, tenantID model.TenantID, clientID int64) (string, error) {
	var name string
	err := q.QueryRowContext(ctx, clientOwnedStmt, clientID, tenantID).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: client %d", errs.ErrForeignOwnershipViolation, clientID)
	}
	if err != nil {
		return "", errs.Storage(err)
	}
	return name, nil
}

// deleted runs a tenant-checked DELETE and reports whether a row went away.
func deleted(ctx context.Context, q querier, stmt string, args ...any) (bool, error) {
	res, err := q.ExecContext(ctx, stmt, args...)
	if err != nil {
		return false, errs.Storage(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errs.Storage(err)
	}
	return n > 0, nil
}

func count(ctx context.Context, q querier, stmt string, args ...any) (int, error) {
	var total int
	if err := q.QueryRowContext(ctx, stmt, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func nullDate(t sql.NullTime) *model.Date {
	if !t.Valid {
		return nil
	}
	d := model.DateOf(t.Time)
	return &d
}

func nullInt64(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}
