package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	for _, size := range []int{TokenSize128, TokenSize256, 24} {
		token, err := GenerateToken(size)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		other, err := GenerateToken(size)
		require.NoError(t, err)
		require.NotEqual(t, token, other)
	}
}

func TestGenerateSecret_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		secret, err := GenerateSecret(size)
		require.Error(t, err)
		require.Nil(t, secret)
	}
}

func TestGenerateInviteCode(t *testing.T) {
	seen := make(map[string]struct{}, 200)
	for range 200 {
		code, err := GenerateInviteCode()
		require.NoError(t, err)
		require.Len(t, code, InviteCodeLength)
		require.True(t, IsInviteCode(code), code)
		for _, c := range code {
			require.Contains(t, InviteCodeAlphabet, string(c))
		}
		seen[code] = struct{}{}
	}
	require.Len(t, seen, 200, "codes should not repeat in a small sample")
}

func TestIsInviteCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"aB3dE5gH7j", true},
		{"0000000000", true},
		{"short", false},
		{"aB3dE5gH7jk", false},
		{"aB3dE5gH7-", false},
		{"aB3dE5gH7 ", false},
		{"", false},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, IsInviteCode(tt.code), tt.code)
	}
}
