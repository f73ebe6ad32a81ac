// Package errs defines the error kinds surfaced by the tenant-isolation and
// data-access layer. Callers classify with errors.Is; the HTTP layer maps
// each kind to a status code and never echoes the wrapped cause.
package errs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrMissingIdentifier         = errors.New("tenant identifier is missing")
	ErrMalformedIdentifier       = errors.New("tenant identifier is malformed")
	ErrInvalidCredential         = errors.New("credential failed verification")
	ErrTenantNotFound            = errors.New("tenant not found")
	ErrTenantInactive            = errors.New("tenant is inactive")
	ErrForeignOwnershipViolation = errors.New("referenced record is not owned by the tenant")
	ErrValueOutOfRange           = errors.New("value out of range")
	ErrStorageUnavailable        = errors.New("storage unavailable")

	// ErrNotFound covers both a missing row and a row owned by another tenant.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned for request payloads failing field validation.
	ErrInvalidInput = errors.New("invalid input")
)

// see https://www.postgresql.org/docs/14/errcodes-appendix.html
const (
	pgNumericOutOfRangeErrCode   = "22003"
	pgForeignKeyViolationErrCode = "23503"
)

var kinds = []struct {
	err  error
	code string
}{
	{ErrMissingIdentifier, "MISSING_IDENTIFIER"},
	{ErrMalformedIdentifier, "MALFORMED_IDENTIFIER"},
	{ErrInvalidCredential, "INVALID_CREDENTIAL"},
	{ErrTenantNotFound, "TENANT_NOT_FOUND"},
	{ErrTenantInactive, "TENANT_INACTIVE"},
	{ErrForeignOwnershipViolation, "FOREIGN_OWNERSHIP_VIOLATION"},
	{ErrValueOutOfRange, "VALUE_OUT_OF_RANGE"},
	{ErrStorageUnavailable, "STORAGE_UNAVAILABLE"},
	{ErrNotFound, "NOT_FOUND"},
	{ErrInvalidInput, "INVALID_INPUT"},
}

// Kind returns the machine-readable code of the first known kind in err's chain,
// or "INTERNAL_ERROR".
func Kind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.code
		}
	}
	return "INTERNAL_ERROR"
}

// Storage classifies a raw error returned by the database driver.
// sql.ErrNoRows becomes ErrNotFound, a numeric overflow becomes ErrValueOutOfRange,
// a dangling reference (e.g. an unknown stage) becomes ErrInvalidInput, errors
// already carrying a kind pass through, and everything else is wrapped as
// ErrStorageUnavailable.
func Storage(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if Kind(err) != "INTERNAL_ERROR" {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case pgNumericOutOfRangeErrCode:
			return fmt.Errorf("%w: %s", ErrValueOutOfRange, pgError.ColumnName)
		case pgForeignKeyViolationErrCode:
			return fmt.Errorf("%w: unknown reference %s", ErrInvalidInput, pgError.ConstraintName)
		}
	}
	return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
}

// Invalid wraps ErrInvalidInput with the offending field name.
func Invalid(field string) error {
	return fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
}

// OutOfRange wraps ErrValueOutOfRange with the offending field and its bounds.
func OutOfRange(field string, lo, hi any) error {
	return fmt.Errorf("%w: %s must be between %v and %v", ErrValueOutOfRange, field, lo, hi)
}
