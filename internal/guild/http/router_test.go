package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	guildhttp "github.com/aussiebroadwan/guildhall/internal/guild/http"
	"github.com/aussiebroadwan/guildhall/internal/guild/metrics"
	"github.com/aussiebroadwan/guildhall/internal/guild/service"
	"github.com/aussiebroadwan/guildhall/internal/guild/store/drivers/sqlite"
	"github.com/aussiebroadwan/guildhall/pkg/guildsdk"
	"github.com/aussiebroadwan/guildhall/pkg/jwtx"
)

const password = "correct horse battery"

func newTestServer(t *testing.T) (*httptest.Server, *guildsdk.Client) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	issuer, err := jwtx.NewIssuer([]byte("0123456789abcdef0123456789abcdef"), jwtx.IssuerOptions{Issuer: "guild-test"})
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	metrics.RegisterMetrics(reg)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := guildhttp.NewRouter(issuer, "test", st, logger)
	router.Metrics = reg
	router.AuthService = &service.AuthService{Store: st, Issuer: issuer}
	router.ServerService = &service.ServerService{Store: st}
	router.InviteService = &service.InviteService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, guildsdk.NewClient(srv.URL)
}

func signup(t *testing.T, c *guildsdk.Client, email string) *guildsdk.Session {
	t.Helper()
	sess, err := c.Signup(context.Background(), guildsdk.SignupRequest{
		Email:    email,
		Username: strings.Split(email, "@")[0],
		Password: password,
	})
	require.NoError(t, err)
	return sess
}

func requireAPIError(t *testing.T, err error, status int, code string) *guildsdk.APIError {
	t.Helper()
	var apiErr *guildsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
	return apiErr
}

func TestSignupLoginMe(t *testing.T) {
	ctx := context.Background()
	_, c := newTestServer(t)

	sess := signup(t, c, "alice@example.com")
	require.NotEmpty(t, sess.Token())
	require.Equal(t, "alice@example.com", sess.User().Email)
	require.WithinDuration(t, time.Now().Add(24*time.Hour), sess.ExpiresAt(), time.Minute)

	login, err := c.Login(ctx, guildsdk.LoginRequest{Email: "alice@example.com", Password: password})
	require.NoError(t, err)
	require.Equal(t, sess.User().ID, login.User().ID)

	me, err := login.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "alice", me.Username)

	require.NoError(t, login.Logout(ctx))
}

func TestSignupDuplicateEmail(t *testing.T) {
	_, c := newTestServer(t)
	signup(t, c, "alice@example.com")

	_, err := c.Signup(context.Background(), guildsdk.SignupRequest{
		Email: "alice@example.com", Username: "other", Password: password,
	})
	require.ErrorIs(t, err, guildsdk.ErrEmailExists)
}

func TestSignupValidation(t *testing.T) {
	_, c := newTestServer(t)

	_, err := c.Signup(context.Background(), guildsdk.SignupRequest{
		Email: "not-an-email", Username: "a", Password: "short",
	})
	apiErr := requireAPIError(t, err, http.StatusBadRequest, guildsdk.ErrorCodeValidation)
	require.Contains(t, apiErr.Fields, "email")
	require.Contains(t, apiErr.Fields, "username")
	require.Contains(t, apiErr.Fields, "password")
}

func TestUnknownFieldsRejected(t *testing.T) {
	srv, _ := newTestServer(t)

	body := `{"email":"a@example.com","username":"a1","password":"correct horse battery","admin":true}`
	resp, err := http.Post(srv.URL+"/v1/auth/signup", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var e guildsdk.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	require.Equal(t, guildsdk.ErrorCodeInvalidRequest, e.Error)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	srv, c := newTestServer(t)
	signup(t, c, "alice@example.com")

	post := func(email, pw string) (int, []byte) {
		b, _ := json.Marshal(guildsdk.LoginRequest{Email: email, Password: pw})
		resp, err := http.Post(srv.URL+"/v1/auth/login", "application/json", bytes.NewReader(b))
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, body
	}

	wrongStatus, wrongBody := post("alice@example.com", "wrong password")
	unknownStatus, unknownBody := post("nobody@example.com", password)

	require.Equal(t, http.StatusUnauthorized, wrongStatus)
	require.Equal(t, wrongStatus, unknownStatus)
	require.Equal(t, string(wrongBody), string(unknownBody))
}

func TestMissingToken(t *testing.T) {
	ctx := context.Background()
	_, c := newTestServer(t)

	_, err := c.NewSessionFromToken("").Me(ctx)
	requireAPIError(t, err, http.StatusUnauthorized, guildsdk.ErrorCodeInvalidToken)

	_, err = c.NewSessionFromToken("garbage").Me(ctx)
	requireAPIError(t, err, http.StatusUnauthorized, guildsdk.ErrorCodeInvalidToken)
}

func TestInviteFlow(t *testing.T) {
	ctx := context.Background()
	_, c := newTestServer(t)

	owner := signup(t, c, "owner@example.com")
	joiner := signup(t, c, "joiner@example.com")
	late := signup(t, c, "late@example.com")

	server, err := owner.CreateServer(ctx, guildsdk.CreateServerRequest{Name: "the guild"})
	require.NoError(t, err)

	one := 1
	inv, err := owner.CreateInvite(ctx, server.ID, guildsdk.CreateInviteRequest{MaxUses: &one})
	require.NoError(t, err)
	require.Len(t, inv.Code, 10)
	require.Equal(t, 0, inv.Uses)

	preview, err := c.GetInvite(ctx, inv.Code)
	require.NoError(t, err)
	require.Equal(t, server.ID, preview.ServerID)

	members, err := joiner.AcceptInvite(ctx, inv.Code)
	require.NoError(t, err)
	require.Equal(t, server.ID, members.ServerID)
	require.Len(t, members.Members, 2)

	_, err = late.AcceptInvite(ctx, inv.Code)
	require.ErrorIs(t, err, guildsdk.ErrInviteInvalid)

	_, err = late.ListMembers(ctx, server.ID)
	require.ErrorIs(t, err, guildsdk.ErrNotMember)

	preview, err = c.GetInvite(ctx, inv.Code)
	require.NoError(t, err)
	require.Equal(t, 1, preview.Uses)
}

func TestInviteCreateErrors(t *testing.T) {
	ctx := context.Background()
	_, c := newTestServer(t)

	owner := signup(t, c, "owner@example.com")
	outsider := signup(t, c, "outsider@example.com")
	server, err := owner.CreateServer(ctx, guildsdk.CreateServerRequest{Name: "the guild"})
	require.NoError(t, err)

	zero := 0
	_, err = owner.CreateInvite(ctx, server.ID, guildsdk.CreateInviteRequest{MaxUses: &zero})
	requireAPIError(t, err, http.StatusBadRequest, guildsdk.ErrorCodeValidation)

	past := time.Now().Add(-time.Hour)
	_, err = owner.CreateInvite(ctx, server.ID, guildsdk.CreateInviteRequest{ExpiresAt: &past})
	requireAPIError(t, err, http.StatusBadRequest, guildsdk.ErrorCodeInvalidRequest)

	_, err = outsider.CreateInvite(ctx, server.ID, guildsdk.CreateInviteRequest{})
	require.ErrorIs(t, err, guildsdk.ErrNotMember)

	_, err = owner.CreateInvite(ctx, "no-such-server", guildsdk.CreateInviteRequest{})
	require.ErrorIs(t, err, guildsdk.ErrServerNotFound)
}

func TestRevokeInvite(t *testing.T) {
	ctx := context.Background()
	_, c := newTestServer(t)

	owner := signup(t, c, "owner@example.com")
	member := signup(t, c, "member@example.com")
	newcomer := signup(t, c, "newcomer@example.com")

	server, err := owner.CreateServer(ctx, guildsdk.CreateServerRequest{Name: "the guild"})
	require.NoError(t, err)
	inv, err := owner.CreateInvite(ctx, server.ID, guildsdk.CreateInviteRequest{})
	require.NoError(t, err)
	_, err = member.AcceptInvite(ctx, inv.Code)
	require.NoError(t, err)

	err = member.RevokeInvite(ctx, inv.Code)
	require.ErrorIs(t, err, guildsdk.ErrNotPermitted)

	require.NoError(t, owner.RevokeInvite(ctx, inv.Code))
	require.NoError(t, owner.RevokeInvite(ctx, inv.Code))

	preview, err := c.GetInvite(ctx, inv.Code)
	require.NoError(t, err)
	require.True(t, preview.Revoked)

	_, err = newcomer.AcceptInvite(ctx, inv.Code)
	require.ErrorIs(t, err, guildsdk.ErrInviteInvalid)

	list, err := owner.ListInvites(ctx, server.ID)
	require.NoError(t, err)
	require.Len(t, list.Invites, 1)
}

func TestUnknownInvite(t *testing.T) {
	ctx := context.Background()
	_, c := newTestServer(t)
	sess := signup(t, c, "alice@example.com")

	_, err := c.GetInvite(ctx, "AAAAAAAAAA")
	require.ErrorIs(t, err, guildsdk.ErrInviteNotFound)

	_, err = sess.AcceptInvite(ctx, "not-a-code")
	require.ErrorIs(t, err, guildsdk.ErrInviteNotFound)

	err = sess.RevokeInvite(ctx, "AAAAAAAAAA")
	require.ErrorIs(t, err, guildsdk.ErrInviteNotFound)
}

func TestHealthAndMetrics(t *testing.T) {
	ctx := context.Background()
	srv, c := newTestServer(t)

	live, err := c.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := c.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Checks.Database)

	signup(t, c, "alice@example.com")

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), `guild_auth_attempts_total{operation="signup",outcome="success"}`)
}
