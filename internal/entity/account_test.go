package entity

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDay(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	ts := time.Date(2024, 3, 10, 1, 30, 0, 0, loc)

	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), Day(ts))
}

func TestAccount_EffectiveUsage(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		account       Account
		wantUsage     int
		wantRemaining int
		wantHasQuota  bool
	}{
		{
			name:          "never used",
			account:       Account{DailyLimit: 2},
			wantUsage:     0,
			wantRemaining: 2,
			wantHasQuota:  true,
		},
		{
			name:          "used today",
			account:       Account{DailyLimit: 2, DailyUsage: 1, LastUsageDate: Day(now)},
			wantUsage:     1,
			wantRemaining: 1,
			wantHasQuota:  true,
		},
		{
			name:          "exhausted today",
			account:       Account{DailyLimit: 2, DailyUsage: 2, LastUsageDate: Day(now)},
			wantUsage:     2,
			wantRemaining: 0,
			wantHasQuota:  false,
		},
		{
			name:          "exhausted yesterday",
			account:       Account{DailyLimit: 2, DailyUsage: 2, LastUsageDate: Day(now).AddDate(0, 0, -1)},
			wantUsage:     0,
			wantRemaining: 2,
			wantHasQuota:  true,
		},
		{
			name:          "limit lowered below usage",
			account:       Account{DailyLimit: 1, DailyUsage: 3, LastUsageDate: Day(now)},
			wantUsage:     3,
			wantRemaining: 0,
			wantHasQuota:  false,
		},
		{
			name:          "zero limit",
			account:       Account{DailyLimit: 0},
			wantUsage:     0,
			wantRemaining: 0,
			wantHasQuota:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantUsage, tt.account.EffectiveUsage(now))
			assert.Equal(t, tt.wantRemaining, tt.account.RemainingQuota(now))
			assert.Equal(t, tt.wantHasQuota, tt.account.HasQuota(now))
		})
	}
}

func TestQuotaResetAt(t *testing.T) {
	now := time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), QuotaResetAt(now))
}

func TestQuotaExceededError(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &QuotaExceededError{DailyLimit: 2})

	assert.ErrorIs(t, err, ErrQuotaExceeded)

	var qErr *QuotaExceededError
	assert.True(t, errors.As(err, &qErr))
	assert.Equal(t, 2, qErr.DailyLimit)
}
