package entity

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrShortCodeExists is returned when attempting to create a URL with a short code that already exists.
	ErrShortCodeExists = errors.New("short code exists")
	// ErrURLNotFound is returned when a URL with the specified short code cannot be found.
	ErrURLNotFound = errors.New("url not found")
	// ErrInvalidURL is returned when the original URL is not a well-formed absolute URL.
	ErrInvalidURL = errors.New("invalid url")
	// ErrQuotaExceeded is returned when an account has used up its daily quota.
	ErrQuotaExceeded = errors.New("daily quota exceeded")
	// ErrForbidden is returned when an account acts on a URL it does not own.
	ErrForbidden = errors.New("forbidden")
	// ErrCodeSpaceExhausted is returned when no unique short code could be reserved
	// within the configured number of attempts. The code length needs to grow.
	ErrCodeSpaceExhausted = errors.New("short code space exhausted")
	// ErrStorageUnavailable is returned for transient storage failures such as
	// timeouts and lost connections.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrUnauthenticated is returned when an API key is missing or unknown.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrAccountNotFound is returned when an account with the specified id cannot be found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidAccount is returned for an empty account name or a negative daily limit.
	ErrInvalidAccount = errors.New("invalid account")
	// ErrAccountExists is returned when an account name is already taken.
	ErrAccountExists = errors.New("account exists")
	// ErrCacheMiss is returned by redirect caches when a code is not cached.
	ErrCacheMiss = errors.New("cache miss")
)

// QuotaExceededError carries the details of a rejected creation.
// It matches ErrQuotaExceeded with errors.Is.
type QuotaExceededError struct {
	DailyLimit int
	ResetAt    time.Time
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("%s: limit %d, resets at %s", ErrQuotaExceeded, e.DailyLimit, e.ResetAt.Format(time.RFC3339))
}

func (e *QuotaExceededError) Is(target error) bool {
	return target == ErrQuotaExceeded
}
