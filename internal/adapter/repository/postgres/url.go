package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/shortenit/internal/entity"
)

const urlColumns = `id, account_id, short_code, original_url, access_count, last_accessed_at, created_at`

type urlDB struct {
	ID             int64        `db:"id"`
	AccountID      int64        `db:"account_id"`
	ShortCode      string       `db:"short_code"`
	OriginalURL    string       `db:"original_url"`
	AccessCount    int64        `db:"access_count"`
	LastAccessedAt sql.NullTime `db:"last_accessed_at"`
	CreatedAt      time.Time    `db:"created_at"`
}

func (u *urlDB) toEntity() *entity.URL {
	return &entity.URL{
		ID:          u.ID,
		AccountID:   u.AccountID,
		ShortCode:   u.ShortCode,
		OriginalURL: u.OriginalURL,
		URLStats: entity.URLStats{
			AccessCount:    u.AccessCount,
			LastAccessedAt: nullTimePtr(u.LastAccessedAt),
		},
		CreatedAt: u.CreatedAt,
	}
}

type URLRepository struct {
	repository
}

func NewURLRepository(db *sqlx.DB, opts ...Option) *URLRepository {
	return &URLRepository{repository: newRepository(db, opts...)}
}

// Save consumes one unit of the account's quota for day and inserts the URL
// in the same transaction. A taken short code rolls the quota back and
// returns entity.ErrShortCodeExists so the caller can retry with a new code.
func (r *URLRepository) Save(ctx context.Context, accountID int64, day time.Time, shortCode, originalURL string) (*entity.URL, error) {
	const op = "adapter.repository.postgres.URLRepository.Save"
	const query = `INSERT INTO short_urls (account_id, short_code, original_url)
		VALUES ($1, $2, $3)
		ON CONFLICT (short_code) DO NOTHING
		RETURNING ` + urlColumns

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var url urlDB

	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := consumeQuota(ctx, tx, accountID, day); err != nil {
			return err
		}

		if err := tx.GetContext(ctx, &url, query, accountID, shortCode, originalURL); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return entity.ErrShortCodeExists
			}
			return err
		}

		return nil
	})
	if err != nil {
		return nil, wrapError(op, "failed to insert into short_urls table", err)
	}

	return url.toEntity(), nil
}

// consumeQuota increments the account usage for day unless the daily limit
// is reached. A counter stamped with an earlier day restarts at one.
func consumeQuota(ctx context.Context, tx *sqlx.Tx, accountID int64, day time.Time) error {
	const query = `UPDATE accounts
		SET daily_usage = CASE WHEN last_usage_date = $2 THEN daily_usage + 1 ELSE 1 END,
			last_usage_date = $2,
			updated_at = NOW()
		WHERE id = $1
			AND daily_limit > CASE WHEN last_usage_date = $2 THEN daily_usage ELSE 0 END
		RETURNING daily_usage`
	const limitQuery = `SELECT daily_limit FROM accounts WHERE id = $1`

	var usage int

	err := tx.GetContext(ctx, &usage, query, accountID, day)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	var limit int

	if err := tx.GetContext(ctx, &limit, limitQuery, accountID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.ErrAccountNotFound
		}
		return err
	}

	return &entity.QuotaExceededError{
		DailyLimit: limit,
		ResetAt:    entity.QuotaResetAt(day),
	}
}

func (r *URLRepository) RetrieveByShortCode(ctx context.Context, shortCode string) (*entity.URL, error) {
	const op = "adapter.repository.postgres.URLRepository.RetrieveByShortCode"
	const query = `SELECT ` + urlColumns + ` FROM short_urls WHERE short_code = $1`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var url urlDB

	if err := r.db.GetContext(ctx, &url, query, shortCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, wrapError(op, "", entity.ErrURLNotFound)
		}

		return nil, wrapError(op, "failed to get row from short_urls table", err)
	}

	return url.toEntity(), nil
}

// ListByAccount returns the account's URLs, newest first.
func (r *URLRepository) ListByAccount(ctx context.Context, accountID int64) ([]entity.URL, error) {
	const op = "adapter.repository.postgres.URLRepository.ListByAccount"
	const query = `SELECT ` + urlColumns + ` FROM short_urls
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var rows []urlDB

	if err := r.db.SelectContext(ctx, &rows, query, accountID); err != nil {
		return nil, wrapError(op, "failed to select from short_urls table", err)
	}

	urls := make([]entity.URL, 0, len(rows))
	for i := range rows {
		urls = append(urls, *rows[i].toEntity())
	}

	return urls, nil
}

// RemoveOwned deletes the URL and its access events if it belongs to accountID.
func (r *URLRepository) RemoveOwned(ctx context.Context, accountID int64, shortCode string) error {
	const op = "adapter.repository.postgres.URLRepository.RemoveOwned"
	const lockQuery = `SELECT id, account_id FROM short_urls WHERE short_code = $1 FOR UPDATE`
	const deleteEventsQuery = `DELETE FROM access_events WHERE short_url_id = $1`
	const deleteURLQuery = `DELETE FROM short_urls WHERE id = $1`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		var owner struct {
			ID        int64 `db:"id"`
			AccountID int64 `db:"account_id"`
		}

		if err := tx.GetContext(ctx, &owner, lockQuery, shortCode); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return entity.ErrURLNotFound
			}
			return err
		}

		if owner.AccountID != accountID {
			return entity.ErrForbidden
		}

		if _, err := tx.ExecContext(ctx, deleteEventsQuery, owner.ID); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx, deleteURLQuery, owner.ID)
		return err
	})
	if err != nil {
		return wrapError(op, "failed to delete from short_urls table", err)
	}

	return nil
}
