// Package entity defines the entities and errors used in the application.
// It includes the Account, URL and AccessEvent structs together with the
// daily quota rules and the error values shared across layers.
package entity

import "time"

// URL represents a shortened URL owned by an account.
type URL struct {
	ID          int64     // ID is the unique identifier of the URL in the database.
	AccountID   int64     // AccountID references the owning account.
	ShortCode   string    // ShortCode is the generated code used to shorten the original URL.
	OriginalURL string    // OriginalURL is the full URL that the short code resolves to.
	URLStats              // URLStats contains statistics about the URL.
	CreatedAt   time.Time // CreatedAt is the timestamp when the URL was created.
}

// URLStats contains statistics related to a shortened URL.
type URLStats struct {
	AccessCount    int64      // AccessCount is the number of times the shortened URL has been accessed.
	LastAccessedAt *time.Time // LastAccessedAt is nil until the first redirect.
}

// OwnedBy reports whether the URL belongs to the account.
func (u *URL) OwnedBy(accountID int64) bool {
	return u.AccountID == accountID
}
