package service

import "errors"

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")

	ErrServerNotFound = errors.New("server not found")
	ErrNotMember      = errors.New("not a member of this server")
	ErrNotPermitted   = errors.New("not permitted")

	ErrInviteNotFound       = errors.New("invite not found")
	ErrInviteInvalid        = errors.New("invite is revoked, expired or exhausted")
	ErrInvalidInviteRequest = errors.New("invalid invite request")
)
