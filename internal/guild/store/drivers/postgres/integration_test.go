//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aussiebroadwan/guildhall/internal/guild/domain"
	"github.com/aussiebroadwan/guildhall/internal/guild/store"
	"github.com/aussiebroadwan/guildhall/internal/guild/store/drivers/postgres"
	"github.com/aussiebroadwan/guildhall/pkg/idx"
)

func startPostgres(t *testing.T) *postgres.Store {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("guild"),
		tcpostgres.WithUsername("guild"),
		tcpostgres.WithPassword("guild"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := postgres.Connect(ctx, connStr, 8)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.ApplyMigrations(), "migrations are idempotent")
	return s
}

func TestPostgresStore(t *testing.T) {
	ctx := context.Background()
	s := startPostgres(t)
	require.NoError(t, s.Ping(ctx))

	owner := domain.User{ID: idx.New().String(), Email: "owner@example.com", Username: "owner", PasswordHash: "h"}
	require.NoError(t, s.Users().CreateUser(ctx, owner))
	dup := owner
	dup.ID = idx.New().String()
	require.ErrorIs(t, s.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)

	server := domain.Server{ID: idx.New().String(), Name: "guild", OwnerID: owner.ID}
	require.NoError(t, s.Servers().CreateServer(ctx, server))
	require.NoError(t, s.Members().AddMember(ctx, domain.Membership{ServerID: server.ID, UserID: owner.ID, Role: domain.RoleOwner}))
	require.ErrorIs(t,
		s.Members().AddMember(ctx, domain.Membership{ServerID: server.ID, UserID: owner.ID, Role: domain.RoleMember}),
		store.ErrAlreadyExists)

	five := 5
	expires := time.Now().Add(time.Hour)
	inv := domain.Invite{
		ID: idx.New().String(), Code: "pgConcur01", ServerID: server.ID, CreatedBy: owner.ID,
		MaxUses: &five, ExpiresAt: &expires,
	}
	require.NoError(t, s.Invites().CreateInvite(ctx, inv))

	t.Run("increment is atomic under contention", func(t *testing.T) {
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			ok        int
			exhausted int
		)
		for range 25 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := s.WithTx(ctx, func(tx store.Tx) error {
					return tx.Invites().IncrementUses(ctx, inv.ID, time.Now())
				})
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					ok++
				case errors.Is(err, store.ErrInviteExhausted):
					exhausted++
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}
		wg.Wait()

		require.Equal(t, 5, ok)
		require.Equal(t, 20, exhausted)

		got, err := s.Invites().GetInviteByCode(ctx, inv.Code)
		require.NoError(t, err)
		require.Equal(t, 5, got.Uses)
		require.WithinDuration(t, expires, *got.ExpiresAt, time.Millisecond)
	})

	t.Run("revoke and list", func(t *testing.T) {
		require.NoError(t, s.Invites().RevokeInvite(ctx, inv.ID))
		require.NoError(t, s.Invites().RevokeInvite(ctx, inv.ID))

		list, err := s.Invites().ListInvitesByServer(ctx, server.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.True(t, list[0].Revoked)
	})
}
