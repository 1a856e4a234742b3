package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vadimbarashkov/shortenit/internal/entity"
)

type accountRepository interface {
	Save(ctx context.Context, name string, apiKey uuid.UUID, dailyLimit int) (*entity.Account, error)
	RetrieveByID(ctx context.Context, id int64) (*entity.Account, error)
	RetrieveByAPIKey(ctx context.Context, apiKey uuid.UUID) (*entity.Account, error)
	UpdateDailyLimit(ctx context.Context, id int64, dailyLimit int) (*entity.Account, error)
	Remove(ctx context.Context, id int64) error
}

// UseDefaultDailyLimit asks CreateAccount for the configured default limit.
const UseDefaultDailyLimit = -1

type AccountUseCase struct {
	accountRepo       accountRepository
	defaultDailyLimit int
}

func NewAccountUseCase(accountRepo accountRepository, defaultDailyLimit int) *AccountUseCase {
	if defaultDailyLimit < 0 {
		defaultDailyLimit = entity.DefaultDailyLimit
	}

	return &AccountUseCase{
		accountRepo:       accountRepo,
		defaultDailyLimit: defaultDailyLimit,
	}
}

// Authenticate resolves an API key to its account. Malformed and unknown
// keys are both reported as entity.ErrUnauthenticated.
func (uc *AccountUseCase) Authenticate(ctx context.Context, apiKey string) (*entity.Account, error) {
	const op = "usecase.AccountUseCase.Authenticate"

	key, err := uuid.Parse(strings.TrimSpace(apiKey))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrUnauthenticated)
	}

	account, err := uc.accountRepo.RetrieveByAPIKey(ctx, key)
	if err != nil {
		if errors.Is(err, entity.ErrAccountNotFound) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrUnauthenticated)
		}

		return nil, fmt.Errorf("%s: failed to authenticate: %w", op, err)
	}

	return account, nil
}

func (uc *AccountUseCase) GetAccount(ctx context.Context, id int64) (*entity.Account, error) {
	const op = "usecase.AccountUseCase.GetAccount"

	account, err := uc.accountRepo.RetrieveByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get account: %w", op, err)
	}

	return account, nil
}

// CreateAccount registers an account with a fresh API key. Passing
// UseDefaultDailyLimit selects the configured default; any other negative
// limit is rejected.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, name string, dailyLimit int) (*entity.Account, error) {
	const op = "usecase.AccountUseCase.CreateAccount"

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%s: %w: empty name", op, entity.ErrInvalidAccount)
	}

	switch {
	case dailyLimit == UseDefaultDailyLimit:
		dailyLimit = uc.defaultDailyLimit
	case dailyLimit < 0:
		return nil, fmt.Errorf("%s: %w: negative daily limit", op, entity.ErrInvalidAccount)
	}

	apiKey, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to generate api key: %w", op, err)
	}

	account, err := uc.accountRepo.Save(ctx, name, apiKey, dailyLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create account: %w", op, err)
	}

	return account, nil
}

// SetDailyLimit changes the quota. Usage already counted today is kept.
func (uc *AccountUseCase) SetDailyLimit(ctx context.Context, id int64, dailyLimit int) (*entity.Account, error) {
	const op = "usecase.AccountUseCase.SetDailyLimit"

	if dailyLimit < 0 {
		return nil, fmt.Errorf("%s: %w: negative daily limit", op, entity.ErrInvalidAccount)
	}

	account, err := uc.accountRepo.UpdateDailyLimit(ctx, id, dailyLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to update daily limit: %w", op, err)
	}

	return account, nil
}

// DeleteAccount removes the account together with its URLs and access log.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, id int64) error {
	const op = "usecase.AccountUseCase.DeleteAccount"

	if err := uc.accountRepo.Remove(ctx, id); err != nil {
		return fmt.Errorf("%s: failed to delete account: %w", op, err)
	}

	return nil
}
