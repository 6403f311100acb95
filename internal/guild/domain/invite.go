package domain

import "time"

type Invite struct {
	ID        string
	Code      string
	ServerID  string
	CreatedBy string
	MaxUses   *int // nil means unbounded
	Uses      int
	ExpiresAt *time.Time
	Revoked   bool
	CreatedAt time.Time
}

// Expired reports whether the invite expiry has passed at now.
func (i Invite) Expired(now time.Time) bool {
	return i.ExpiresAt != nil && !now.Before(*i.ExpiresAt)
}

// Exhausted reports whether every use has been consumed.
func (i Invite) Exhausted() bool {
	return i.MaxUses != nil && i.Uses >= *i.MaxUses
}

// Usable reports whether the invite may still be redeemed at now.
func (i Invite) Usable(now time.Time) bool {
	return !i.Revoked && !i.Expired(now) && !i.Exhausted()
}
