package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultDailyLimit is the number of short URLs a new account may create per day.
const DefaultDailyLimit = 50

// Account is a registered API consumer with a daily creation quota.
//
// DailyUsage counts creations made on LastUsageDate. It is only meaningful
// while LastUsageDate is today; a counter left over from an earlier day
// reads as zero.
type Account struct {
	ID            int64
	Name          string
	APIKey        uuid.UUID
	DailyLimit    int
	DailyUsage    int
	LastUsageDate time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Day truncates t to the start of its UTC calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EffectiveUsage returns the usage counted against the quota of the day containing now.
func (a *Account) EffectiveUsage(now time.Time) int {
	if a.LastUsageDate.IsZero() || !Day(a.LastUsageDate).Equal(Day(now)) {
		return 0
	}
	return a.DailyUsage
}

// RemainingQuota returns how many more URLs may be created today.
func (a *Account) RemainingQuota(now time.Time) int {
	remaining := a.DailyLimit - a.EffectiveUsage(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// HasQuota reports whether at least one creation is still allowed today.
func (a *Account) HasQuota(now time.Time) bool {
	return a.RemainingQuota(now) > 0
}

// QuotaResetAt returns the moment the quota of the day containing now resets.
func QuotaResetAt(now time.Time) time.Time {
	return Day(now).AddDate(0, 0, 1)
}
