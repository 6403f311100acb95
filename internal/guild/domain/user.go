package domain

import "time"

type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string // argon2id PHC string, never leaves the service layer
	AvatarURL    *string
	CreatedAt    time.Time
}

// Public returns the user without credential material.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}

// PublicUser is the outward view of a User.
type PublicUser struct {
	ID        string
	Email     string
	Username  string
	AvatarURL *string
	CreatedAt time.Time
}
