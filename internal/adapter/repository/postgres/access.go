package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/shortenit/internal/entity"
)

type accessEventDB struct {
	ID         int64          `db:"id"`
	URLID      int64          `db:"short_url_id"`
	ShortCode  string         `db:"short_code"`
	AccessedAt time.Time      `db:"accessed_at"`
	IP         sql.NullString `db:"ip_address"`
	UserAgent  sql.NullString `db:"user_agent"`
	Referer    sql.NullString `db:"referer"`
}

func (e *accessEventDB) toEntity() entity.AccessEvent {
	return entity.AccessEvent{
		ID:         e.ID,
		URLID:      e.URLID,
		ShortCode:  e.ShortCode,
		AccessedAt: e.AccessedAt,
		Visit: entity.Visit{
			IP:        e.IP.String,
			UserAgent: e.UserAgent.String,
			Referer:   e.Referer.String,
		},
	}
}

type AccessRepository struct {
	repository
}

func NewAccessRepository(db *sqlx.DB, opts ...Option) *AccessRepository {
	return &AccessRepository{repository: newRepository(db, opts...)}
}

// Save appends an access event for the short code and bumps the URL stats
// in one transaction.
func (r *AccessRepository) Save(ctx context.Context, shortCode string, accessedAt time.Time, visit entity.Visit) error {
	const op = "adapter.repository.postgres.AccessRepository.Save"
	const insertQuery = `INSERT INTO access_events (short_url_id, accessed_at, ip_address, user_agent, referer)
		SELECT id, $2, $3, $4, $5 FROM short_urls WHERE short_code = $1
		RETURNING short_url_id`
	const statsQuery = `UPDATE short_urls
		SET access_count = access_count + 1,
			last_accessed_at = GREATEST(COALESCE(last_accessed_at, $2), $2)
		WHERE id = $1`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		var urlID int64

		err := tx.GetContext(ctx, &urlID, insertQuery,
			shortCode,
			accessedAt,
			nullString(visit.IP),
			nullString(visit.UserAgent),
			nullString(visit.Referer),
		)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return entity.ErrURLNotFound
			}
			return err
		}

		_, err = tx.ExecContext(ctx, statsQuery, urlID, accessedAt)
		return err
	})
	if err != nil {
		return wrapError(op, "failed to insert into access_events table", err)
	}

	return nil
}

// ListByAccount returns access events of the account's URLs, newest first.
// An empty shortCode selects events of all the account's URLs.
func (r *AccessRepository) ListByAccount(ctx context.Context, accountID int64, shortCode string, page entity.Page) ([]entity.AccessEvent, error) {
	const op = "adapter.repository.postgres.AccessRepository.ListByAccount"
	const baseQuery = `SELECT e.id, e.short_url_id, u.short_code, e.accessed_at, e.ip_address, e.user_agent, e.referer
		FROM access_events e
		JOIN short_urls u ON u.id = e.short_url_id
		WHERE u.account_id = $1`
	const orderBy = ` ORDER BY e.accessed_at DESC, e.id DESC`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	page = page.Normalize()

	var (
		rows []accessEventDB
		err  error
	)

	if shortCode == "" {
		err = r.db.SelectContext(ctx, &rows, baseQuery+orderBy+` LIMIT $2 OFFSET $3`,
			accountID, page.Limit, page.Offset)
	} else {
		err = r.db.SelectContext(ctx, &rows, baseQuery+` AND u.short_code = $2`+orderBy+` LIMIT $3 OFFSET $4`,
			accountID, shortCode, page.Limit, page.Offset)
	}
	if err != nil {
		return nil, wrapError(op, "failed to select from access_events table", err)
	}

	events := make([]entity.AccessEvent, 0, len(rows))
	for i := range rows {
		events = append(events, rows[i].toEntity())
	}

	return events, nil
}
