package entity

import "time"

const (
	DefaultPageLimit = 100
	MaxPageLimit     = 1000
)

// Visit describes the client that followed a short link.
// Empty fields are stored as NULL.
type Visit struct {
	IP        string
	UserAgent string
	Referer   string
}

// AccessEvent is an append-only record of one redirect.
type AccessEvent struct {
	ID         int64
	URLID      int64
	ShortCode  string
	AccessedAt time.Time
	Visit
}

// Page limits list results.
type Page struct {
	Limit  int
	Offset int
}

// Normalize fills in the default limit and clamps out of range values.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
