package cryptox

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// InviteCodeAlphabet is the set of characters invite codes are drawn from.
	InviteCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// InviteCodeLength is the fixed length of every invite code.
	InviteCodeLength = 10
)

// GenerateInviteCode draws InviteCodeLength characters uniformly from
// InviteCodeAlphabet using crypto/rand.
func GenerateInviteCode() (string, error) {
	return gonanoid.Generate(InviteCodeAlphabet, InviteCodeLength)
}

// IsInviteCode reports whether s has the shape of an invite code.
func IsInviteCode(s string) bool {
	if len(s) != InviteCodeLength {
		return false
	}
	for i := range len(s) {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z':
		default:
			return false
		}
	}
	return true
}
