package guild_test

import (
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/guildhall/pkg/guildsdk"
	"github.com/stretchr/testify/require"
)

// TestInviteSingleUse walks the single use scenario: the first redeemer
// joins, the second is turned away.
func TestInviteSingleUse(t *testing.T) {
	client := setupGuildContainer(t)
	ctx := t.Context()

	owner := signupUser(t, client, "owner")
	alice := signupUser(t, client, "alice")
	bob := signupUser(t, client, "bob")
	server := createServer(t, owner, "the guild")

	one := 1
	invite, err := owner.CreateInvite(ctx, server.ID, guildsdk.CreateInviteRequest{MaxUses: &one})
	require.NoError(t, err)
	require.Len(t, invite.Code, 10)

	members, err := alice.AcceptInvite(ctx, invite.Code)
	require.NoError(t, err)
	require.Len(t, members.Members, 2)

	_, err = bob.AcceptInvite(ctx, invite.Code)
	assertAPIError(t, err, http.StatusGone, guildsdk.ErrorCodeInviteInvalid)

	preview, err := client.GetInvite(ctx, invite.Code)
	require.NoError(t, err)
	require.Equal(t, 1, preview.Uses)
}

// TestInviteRepeatRedemption verifies a member accepting again keeps a
// single membership.
func TestInviteRepeatRedemption(t *testing.T) {
	client := setupGuildContainer(t)
	ctx := t.Context()

	owner := signupUser(t, client, "owner")
	alice := signupUser(t, client, "alice")
	server := createServer(t, owner, "the guild")

	invite, err := owner.CreateInvite(ctx, server.ID, guildsdk.CreateInviteRequest{})
	require.NoError(t, err)

	_, err = alice.AcceptInvite(ctx, invite.Code)
	require.NoError(t, err)
	members, err := alice.AcceptInvite(ctx, invite.Code)
	require.NoError(t, err)
	require.Len(t, members.Members, 2)

	// The default policy counts every successful redemption.
	preview, err := client.GetInvite(ctx, invite.Code)
	require.NoError(t, err)
	require.Equal(t, 2, preview.Uses)
}

// TestInviteConcurrentRedemption verifies the use limit holds under racing
// redemptions from distinct users.
func TestInviteConcurrentRedemption(t *testing.T) {
	client := setupGuildContainer(t)
	ctx := t.Context()

	owner := signupUser(t, client, "owner")
	server := createServer(t, owner, "the guild")

	const maxUses = 2
	limit := maxUses
	invite, err := owner.CreateInvite(ctx, server.ID, guildsdk.CreateInviteRequest{MaxUses: &limit})
	require.NoError(t, err)

	const racers = 5
	sessions := make([]*guildsdk.Session, racers)
	for i := range racers {
		sessions[i] = signupUser(t, client, "racer"+string(rune('a'+i)))
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		rejected int
	)
	for _, s := range sessions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.AcceptInvite(ctx, invite.Code)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted++
			case errors.Is(err, guildsdk.ErrInviteInvalid):
				rejected++
			default:
				t.Errorf("unexpected accept error: %v", err)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, maxUses, accepted)
	require.Equal(t, racers-maxUses, rejected)

	members, err := owner.ListMembers(ctx, server.ID)
	require.NoError(t, err)
	require.Len(t, members.Members, 1+maxUses)
}

// TestInviteRevokedAndExpired verifies unusable invites are refused but
// still previewable.
func TestInviteRevokedAndExpired(t *testing.T) {
	client := setupGuildContainer(t)
	ctx := t.Context()

	owner := signupUser(t, client, "owner")
	alice := signupUser(t, client, "alice")
	server := createServer(t, owner, "the guild")

	revoked, err := owner.CreateInvite(ctx, server.ID, guildsdk.CreateInviteRequest{})
	require.NoError(t, err)
	require.NoError(t, owner.RevokeInvite(ctx, revoked.Code))

	_, err = alice.AcceptInvite(ctx, revoked.Code)
	assertAPIError(t, err, http.StatusGone, guildsdk.ErrorCodeInviteInvalid)

	preview, err := client.GetInvite(ctx, revoked.Code)
	require.NoError(t, err)
	require.True(t, preview.Revoked)

	soon := time.Now().Add(2 * time.Second)
	expiring, err := owner.CreateInvite(ctx, server.ID, guildsdk.CreateInviteRequest{ExpiresAt: &soon})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		_, err := alice.AcceptInvite(ctx, expiring.Code)
		return errors.Is(err, guildsdk.ErrInviteInvalid)
	}, 10*time.Second, 500*time.Millisecond)
}

// TestInvitePermissions verifies only members create invites and only the
// creator or owner revokes them.
func TestInvitePermissions(t *testing.T) {
	client := setupGuildContainer(t)
	ctx := t.Context()

	owner := signupUser(t, client, "owner")
	member := signupUser(t, client, "member")
	outsider := signupUser(t, client, "outsider")
	server := createServer(t, owner, "the guild")

	_, err := outsider.CreateInvite(ctx, server.ID, guildsdk.CreateInviteRequest{})
	assertAPIError(t, err, http.StatusForbidden, guildsdk.ErrorCodeNotMember)

	ownerInvite, err := owner.CreateInvite(ctx, server.ID, guildsdk.CreateInviteRequest{})
	require.NoError(t, err)
	_, err = member.AcceptInvite(ctx, ownerInvite.Code)
	require.NoError(t, err)

	err = member.RevokeInvite(ctx, ownerInvite.Code)
	assertAPIError(t, err, http.StatusForbidden, guildsdk.ErrorCodeNotPermitted)

	memberInvite, err := member.CreateInvite(ctx, server.ID, guildsdk.CreateInviteRequest{})
	require.NoError(t, err)
	require.NoError(t, owner.RevokeInvite(ctx, memberInvite.Code))

	invites, err := owner.ListInvites(ctx, server.ID)
	require.NoError(t, err)
	require.Len(t, invites.Invites, 2)

	_, err = client.GetInvite(ctx, "0000000000")
	assertAPIError(t, err, http.StatusNotFound, guildsdk.ErrorCodeInviteNotFound)
}
