package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/shortenit/internal/entity"
)

const accountColumns = `id, name, api_key, daily_limit, daily_usage, last_usage_date, created_at, updated_at`

type accountDB struct {
	ID            int64        `db:"id"`
	Name          string       `db:"name"`
	APIKey        uuid.UUID    `db:"api_key"`
	DailyLimit    int          `db:"daily_limit"`
	DailyUsage    int          `db:"daily_usage"`
	LastUsageDate sql.NullTime `db:"last_usage_date"`
	CreatedAt     time.Time    `db:"created_at"`
	UpdatedAt     time.Time    `db:"updated_at"`
}

func (a *accountDB) toEntity() *entity.Account {
	return &entity.Account{
		ID:            a.ID,
		Name:          a.Name,
		APIKey:        a.APIKey,
		DailyLimit:    a.DailyLimit,
		DailyUsage:    a.DailyUsage,
		LastUsageDate: a.LastUsageDate.Time,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

type AccountRepository struct {
	repository
}

func NewAccountRepository(db *sqlx.DB, opts ...Option) *AccountRepository {
	return &AccountRepository{repository: newRepository(db, opts...)}
}

func (r *AccountRepository) Save(ctx context.Context, name string, apiKey uuid.UUID, dailyLimit int) (*entity.Account, error) {
	const op = "adapter.repository.postgres.AccountRepository.Save"
	const query = `INSERT INTO accounts (name, api_key, daily_limit)
		VALUES ($1, $2, $3)
		RETURNING ` + accountColumns

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var account accountDB

	if err := r.db.GetContext(ctx, &account, query, name, apiKey.String(), dailyLimit); err != nil {
		if isUniqueViolationError(err) {
			return nil, wrapError(op, "", entity.ErrAccountExists)
		}

		return nil, wrapError(op, "failed to insert into accounts table", err)
	}

	return account.toEntity(), nil
}

func (r *AccountRepository) RetrieveByID(ctx context.Context, id int64) (*entity.Account, error) {
	const op = "adapter.repository.postgres.AccountRepository.RetrieveByID"
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	return r.retrieve(ctx, op, query, id)
}

func (r *AccountRepository) RetrieveByAPIKey(ctx context.Context, apiKey uuid.UUID) (*entity.Account, error) {
	const op = "adapter.repository.postgres.AccountRepository.RetrieveByAPIKey"
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE api_key = $1`

	return r.retrieve(ctx, op, query, apiKey.String())
}

func (r *AccountRepository) retrieve(ctx context.Context, op, query string, arg any) (*entity.Account, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var account accountDB

	if err := r.db.GetContext(ctx, &account, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, wrapError(op, "", entity.ErrAccountNotFound)
		}

		return nil, wrapError(op, "failed to get row from accounts table", err)
	}

	return account.toEntity(), nil
}

func (r *AccountRepository) UpdateDailyLimit(ctx context.Context, id int64, dailyLimit int) (*entity.Account, error) {
	const op = "adapter.repository.postgres.AccountRepository.UpdateDailyLimit"
	const query = `UPDATE accounts SET daily_limit = $1, updated_at = NOW() WHERE id = $2 RETURNING ` + accountColumns

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var account accountDB

	if err := r.db.GetContext(ctx, &account, query, dailyLimit, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, wrapError(op, "", entity.ErrAccountNotFound)
		}

		return nil, wrapError(op, "failed to update accounts table row", err)
	}

	return account.toEntity(), nil
}

// Remove deletes the account with its URLs and their access events.
func (r *AccountRepository) Remove(ctx context.Context, id int64) error {
	const op = "adapter.repository.postgres.AccountRepository.Remove"
	const lockAccountQuery = `SELECT id FROM accounts WHERE id = $1 FOR UPDATE`
	const lockURLsQuery = `SELECT id FROM short_urls WHERE account_id = $1 FOR UPDATE`
	const deleteEventsQuery = `DELETE FROM access_events
		WHERE short_url_id IN (SELECT id FROM short_urls WHERE account_id = $1)`
	const deleteURLsQuery = `DELETE FROM short_urls WHERE account_id = $1`
	const deleteAccountQuery = `DELETE FROM accounts WHERE id = $1`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		// Locking the account waits out in-flight creations and blocks new
		// ones; locking its URLs blocks access events written meanwhile.
		var lockedID int64
		if err := tx.GetContext(ctx, &lockedID, lockAccountQuery, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return entity.ErrAccountNotFound
			}
			return err
		}

		if _, err := tx.ExecContext(ctx, lockURLsQuery, id); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, deleteEventsQuery, id); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, deleteURLsQuery, id); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, deleteAccountQuery, id)
		if err != nil {
			return err
		}

		rowsAffected, err := res.RowsAffected()
		if err != nil {
			return err
		}

		if rowsAffected != 1 {
			return entity.ErrAccountNotFound
		}

		return nil
	})
	if err != nil {
		return wrapError(op, "failed to delete from accounts table", err)
	}

	return nil
}
