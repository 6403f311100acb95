package guildsdk

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Session performs requests as one signed-in user. Tokens are not refreshed;
// sign in again once ExpiresAt has passed.
type Session struct {
	client    *Client
	token     string
	user      User
	expiresAt time.Time
}

func newSession(c *Client, auth *AuthResponse) *Session {
	return &Session{
		client:    c,
		token:     auth.AccessToken,
		user:      auth.User,
		expiresAt: auth.ExpiresAt,
	}
}

// Token is the bearer token of the session.
func (s *Session) Token() string { return s.token }

// User is the account returned at sign in. Zero for sessions built from a token.
func (s *Session) User() User { return s.user }

func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

// Me fetches the signed-in user.
func (s *Session) Me(ctx context.Context) (*User, error) {
	resp, err := s.client.doRequest(ctx, http.MethodGet, "/v1/users/me", s.token, nil)
	if err != nil {
		return nil, err
	}

	var u User
	if err := decodeJSON(resp, &u, http.StatusOK); err != nil {
		return nil, err
	}
	return &u, nil
}

// Logout ends the session on the client. The token stays valid on the
// server until it expires.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.client.doRequest(ctx, http.MethodPost, "/v1/auth/logout", s.token, nil)
	if err != nil {
		return err
	}
	if err := checkStatusNoContent(resp); err != nil {
		return err
	}
	s.token = ""
	return nil
}

// CreateServer creates a server owned by the signed-in user.
func (s *Session) CreateServer(ctx context.Context, req CreateServerRequest) (*Server, error) {
	resp, err := s.client.doRequest(ctx, http.MethodPost, "/v1/servers", s.token, req)
	if err != nil {
		return nil, err
	}

	var srv Server
	if err := decodeJSON(resp, &srv, http.StatusCreated); err != nil {
		return nil, err
	}
	return &srv, nil
}

// ListMembers lists the members of a server the user belongs to.
func (s *Session) ListMembers(ctx context.Context, serverID string) (*MembersResponse, error) {
	resp, err := s.client.doRequest(ctx, http.MethodGet, "/v1/servers/"+url.PathEscape(serverID)+"/members", s.token, nil)
	if err != nil {
		return nil, err
	}

	var members MembersResponse
	if err := decodeJSON(resp, &members, http.StatusOK); err != nil {
		return nil, err
	}
	return &members, nil
}

// CreateInvite mints an invite for a server the user belongs to.
func (s *Session) CreateInvite(ctx context.Context, serverID string, req CreateInviteRequest) (*Invite, error) {
	resp, err := s.client.doRequest(ctx, http.MethodPost, "/v1/servers/"+url.PathEscape(serverID)+"/invites", s.token, req)
	if err != nil {
		return nil, err
	}

	var inv Invite
	if err := decodeJSON(resp, &inv, http.StatusCreated); err != nil {
		return nil, err
	}
	return &inv, nil
}

// ListInvites lists every invite of a server, usable or not.
func (s *Session) ListInvites(ctx context.Context, serverID string) (*InvitesResponse, error) {
	resp, err := s.client.doRequest(ctx, http.MethodGet, "/v1/servers/"+url.PathEscape(serverID)+"/invites", s.token, nil)
	if err != nil {
		return nil, err
	}

	var invites InvitesResponse
	if err := decodeJSON(resp, &invites, http.StatusOK); err != nil {
		return nil, err
	}
	return &invites, nil
}

// AcceptInvite joins the invite's server and returns its members. Accepting
// an invite to a server the user already belongs to succeeds.
func (s *Session) AcceptInvite(ctx context.Context, code string) (*MembersResponse, error) {
	resp, err := s.client.doRequest(ctx, http.MethodPost, "/v1/invites/"+url.PathEscape(code)+"/accept", s.token, nil)
	if err != nil {
		return nil, err
	}

	var members MembersResponse
	if err := decodeJSON(resp, &members, http.StatusOK); err != nil {
		return nil, err
	}
	return &members, nil
}

// RevokeInvite revokes an invite created by the user or belonging to a
// server the user owns.
func (s *Session) RevokeInvite(ctx context.Context, code string) error {
	resp, err := s.client.doRequest(ctx, http.MethodDelete, "/v1/invites/"+url.PathEscape(code), s.token, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
