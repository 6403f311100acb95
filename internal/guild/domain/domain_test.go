package domain_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/guildhall/internal/guild/domain"
	"github.com/stretchr/testify/require"
)

func TestInviteUsable(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)
	one, two := 1, 2

	tests := []struct {
		name   string
		invite domain.Invite
		want   bool
	}{
		{"unbounded", domain.Invite{}, true},
		{"uses left", domain.Invite{MaxUses: &two, Uses: 1}, true},
		{"exhausted", domain.Invite{MaxUses: &one, Uses: 1}, false},
		{"expires later", domain.Invite{ExpiresAt: &future}, true},
		{"expired", domain.Invite{ExpiresAt: &past}, false},
		{"expires exactly now", domain.Invite{ExpiresAt: &now}, false},
		{"revoked", domain.Invite{Revoked: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.invite.Usable(now))
		})
	}
}

func TestParseRole(t *testing.T) {
	r, err := domain.ParseRole("owner")
	require.NoError(t, err)
	require.Equal(t, domain.RoleOwner, r)

	r, err = domain.ParseRole("member")
	require.NoError(t, err)
	require.Equal(t, domain.RoleMember, r)

	_, err = domain.ParseRole("admin")
	require.Error(t, err)
}

func TestUserPublicDropsHash(t *testing.T) {
	u := domain.User{ID: "u1", Email: "a@example.com", Username: "a", PasswordHash: "$argon2id$..."}
	pub := u.Public()
	require.Equal(t, "u1", pub.ID)
	require.Equal(t, "a@example.com", pub.Email)
}
