package jwtx_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/guildhall/pkg/jwtx"
)

func TestNewSessionClaims(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	c := jwtx.NewSessionClaims("01JB3Z8Y7K2M4N6P8Q0R2S4T6V", "alice@example.com", "guildhall", time.Hour, now)

	require.Equal(t, "01JB3Z8Y7K2M4N6P8Q0R2S4T6V", c.UserID())
	require.Equal(t, "alice@example.com", c.Email)
	require.Equal(t, "guildhall", c.Issuer)
	require.Equal(t, now, c.IssuedAt.Time)
	require.Equal(t, now.Add(time.Hour), c.Expiry())
	require.NotEmpty(t, c.ID)
}

func TestClaimsExpiryAbsent(t *testing.T) {
	require.True(t, jwtx.Claims{}.Expiry().IsZero())
}

func TestNewJTIUnique(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for range 100 {
		id := jwtx.NewJTI()
		_, dup := seen[id]
		require.False(t, dup, "duplicate jti %q", id)
		seen[id] = struct{}{}
	}
}
