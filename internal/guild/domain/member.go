package domain

import (
	"fmt"
	"time"
)

// Role is a member's standing within a server.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleMember Role = "member"
)

// ParseRole maps stored text onto a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleOwner, RoleMember:
		return Role(s), nil
	default:
		return "", fmt.Errorf("domain: unknown role %q", s)
	}
}

func (r Role) String() string { return string(r) }

// Membership links a user to a server. (ServerID, UserID) is unique.
type Membership struct {
	ServerID string
	UserID   string
	Role     Role
	JoinedAt time.Time
}
