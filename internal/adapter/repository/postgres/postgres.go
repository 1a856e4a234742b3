// Package postgres implements the account, URL and access event repositories
// on top of PostgreSQL. Quota consumption and short code reservation are
// enforced by the database: a conditional update of the account row and a
// unique constraint on short codes, both inside one transaction.
package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/shortenit/internal/entity"
)

const uniqueViolationErrCode = "23505"

func isUniqueViolationError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.SQLState() == uniqueViolationErrCode
}

// isUnavailableError reports whether err is a transient storage failure.
func isUnavailableError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) {
		return true
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}

	return pgconn.Timeout(err)
}

var domainErrors = []error{
	entity.ErrShortCodeExists,
	entity.ErrURLNotFound,
	entity.ErrForbidden,
	entity.ErrAccountNotFound,
	entity.ErrAccountExists,
	entity.ErrQuotaExceeded,
}

func wrapError(op, msg string, err error) error {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if isUnavailableError(err) {
		return fmt.Errorf("%s: %w: %w", op, entity.ErrStorageUnavailable, err)
	}

	return fmt.Errorf("%s: %s: %w", op, msg, err)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}

// Option configures a repository.
type Option func(*repository)

// WithQueryTimeout bounds every repository call. Zero disables the bound.
func WithQueryTimeout(d time.Duration) Option {
	return func(r *repository) {
		r.queryTimeout = d
	}
}

type repository struct {
	db           *sqlx.DB
	queryTimeout time.Duration
}

func newRepository(db *sqlx.DB, opts ...Option) repository {
	r := repository{db: db}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r *repository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

// inTx runs fn inside a transaction that is committed only if fn succeeds.
func (r *repository) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
