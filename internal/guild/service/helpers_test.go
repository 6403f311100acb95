package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/guildhall/internal/guild/domain"
	"github.com/aussiebroadwan/guildhall/internal/guild/service"
	"github.com/aussiebroadwan/guildhall/internal/guild/store"
	"github.com/aussiebroadwan/guildhall/internal/guild/store/drivers/sqlite"
	"github.com/aussiebroadwan/guildhall/pkg/jwtx"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type env struct {
	store   store.Store
	issuer  *jwtx.Issuer
	auth    *service.AuthService
	servers *service.ServerService
	invites *service.InviteService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	issuer, err := jwtx.NewIssuer(testSecret, jwtx.IssuerOptions{Issuer: "guild-test"})
	require.NoError(t, err)

	return &env{
		store:   st,
		issuer:  issuer,
		auth:    &service.AuthService{Store: st, Issuer: issuer},
		servers: &service.ServerService{Store: st},
		invites: &service.InviteService{Store: st},
	}
}

// signup registers a user and returns its id.
func (e *env) signup(t *testing.T, email string) string {
	t.Helper()
	res, err := e.auth.Signup(context.Background(), email, "user", "correct horse battery")
	require.NoError(t, err)
	return res.User.ID
}

// guild creates a server owned by a fresh user and returns both.
func (e *env) guild(t *testing.T) (ownerID string, server domain.Server) {
	t.Helper()
	ownerID = e.signup(t, "owner@example.com")
	server, err := e.servers.CreateServer(context.Background(), ownerID, "the guild")
	require.NoError(t, err)
	return ownerID, server
}

func (e *env) invite(t *testing.T, serverID, creatorID string, maxUses *int) domain.Invite {
	t.Helper()
	expires := time.Now().Add(time.Hour)
	inv, err := e.invites.CreateInvite(context.Background(), service.CreateInviteParams{
		ServerID:  serverID,
		CreatorID: creatorID,
		MaxUses:   maxUses,
		ExpiresAt: &expires,
	})
	require.NoError(t, err)
	return inv
}

func intPtr(n int) *int { return &n }
