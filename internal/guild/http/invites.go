package http

import (
	"net/http"

	"github.com/aussiebroadwan/guildhall/internal/guild/domain"
	"github.com/aussiebroadwan/guildhall/internal/guild/service"
	"github.com/aussiebroadwan/guildhall/pkg/guildsdk"
	"github.com/aussiebroadwan/guildhall/pkg/httpx"
)

type InvitesHandler struct {
	InviteService *service.InviteService
	Validator     *httpx.Validator
}

// HandleCreate godoc
//
//	@Summary		Create Invite
//	@Description	Mint an invite code for a server the caller belongs to. Send {} for an invite without limits.
//	@Tags			Invites
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string						true	"Server ID"
//	@Param			request	body		guildsdk.CreateInviteRequest	true	"max_uses, expires_at"
//	@Success		201		{object}	guildsdk.Invite				"code, uses, max_uses, expires_at"
//	@Failure		400		{object}	guildsdk.ErrorResponse		"invalid_request, validation_error"
//	@Failure		401		{object}	guildsdk.ErrorResponse		"invalid_token"
//	@Failure		403		{object}	guildsdk.ErrorResponse		"not_member"
//	@Failure		404		{object}	guildsdk.ErrorResponse		"server_not_found"
//	@Failure		500		{object}	guildsdk.ErrorResponse		"server_error"
//	@Router			/v1/servers/{id}/invites [post].
func (h *InvitesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req guildsdk.CreateInviteRequest
	if !decodeRequest(w, r, h.Validator, &req) {
		return
	}

	inv, err := h.InviteService.CreateInvite(r.Context(), service.CreateInviteParams{
		ServerID:  r.PathValue("id"),
		CreatorID: userID,
		MaxUses:   req.MaxUses,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		writeServiceError(w, r, err, "failed to create invite")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toInvite(inv))
}

// HandleList godoc
//
//	@Summary		List Invites
//	@Description	List every invite of a server, including revoked, expired and exhausted ones
//	@Tags			Invites
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string						true	"Server ID"
//	@Success		200	{object}	guildsdk.InvitesResponse	"server_id, invites"
//	@Failure		401	{object}	guildsdk.ErrorResponse		"invalid_token"
//	@Failure		403	{object}	guildsdk.ErrorResponse		"not_member"
//	@Failure		404	{object}	guildsdk.ErrorResponse		"server_not_found"
//	@Router			/v1/servers/{id}/invites [get].
func (h *InvitesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	serverID := r.PathValue("id")

	invites, err := h.InviteService.ListServerInvites(r.Context(), serverID, userID)
	if err != nil {
		writeServiceError(w, r, err, "failed to list invites")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toInvites(serverID, invites))
}

// HandlePreview godoc
//
//	@Summary		Preview Invite
//	@Description	Public lookup of an invite by code. Unusable invites are returned too.
//	@Tags			Invites
//	@Produce		json
//	@Param			code	path		string					true	"Invite code"
//	@Success		200		{object}	guildsdk.Invite			"code, server_id, uses, revoked"
//	@Failure		404		{object}	guildsdk.ErrorResponse	"invite_not_found"
//	@Failure		429		{object}	guildsdk.ErrorResponse	"rate_limit_exceeded"
//	@Router			/v1/invites/{code} [get].
func (h *InvitesHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	inv, err := h.InviteService.GetInviteByCode(r.Context(), r.PathValue("code"))
	if err != nil {
		writeServiceError(w, r, err, "failed to fetch invite")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toInvite(inv))
}

// HandleAccept godoc
//
//	@Summary		Accept Invite
//	@Description	Join the invite's server and return its members. Accepting again as a member succeeds.
//	@Tags			Invites
//	@Produce		json
//	@Security		BearerAuth
//	@Param			code	path		string						true	"Invite code"
//	@Success		200		{object}	guildsdk.MembersResponse	"server_id, members"
//	@Failure		401		{object}	guildsdk.ErrorResponse		"invalid_token"
//	@Failure		404		{object}	guildsdk.ErrorResponse		"invite_not_found"
//	@Failure		410		{object}	guildsdk.ErrorResponse		"invite_invalid"
//	@Failure		500		{object}	guildsdk.ErrorResponse		"server_error"
//	@Router			/v1/invites/{code}/accept [post].
func (h *InvitesHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	members, err := h.InviteService.AcceptInvite(r.Context(), userID, r.PathValue("code"))
	if err != nil {
		writeServiceError(w, r, err, "failed to accept invite")
		return
	}

	serverID := ""
	if len(members) > 0 {
		serverID = members[0].ServerID
	}
	httpx.WriteJSON(w, http.StatusOK, toMembers(serverID, members))
}

// HandleRevoke godoc
//
//	@Summary		Revoke Invite
//	@Description	Revoke an invite. Allowed for its creator and the server owner. Revoking twice succeeds.
//	@Tags			Invites
//	@Security		BearerAuth
//	@Param			code	path	string	true	"Invite code"
//	@Success		204		"No Content"
//	@Failure		401		{object}	guildsdk.ErrorResponse	"invalid_token"
//	@Failure		403		{object}	guildsdk.ErrorResponse	"not_permitted"
//	@Failure		404		{object}	guildsdk.ErrorResponse	"invite_not_found"
//	@Router			/v1/invites/{code} [delete].
func (h *InvitesHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := h.InviteService.RevokeInvite(r.Context(), r.PathValue("code"), userID); err != nil {
		writeServiceError(w, r, err, "failed to revoke invite")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toInvites(serverID string, invs []domain.Invite) guildsdk.InvitesResponse {
	out := guildsdk.InvitesResponse{ServerID: serverID, Invites: make([]guildsdk.Invite, 0, len(invs))}
	for _, inv := range invs {
		out.Invites = append(out.Invites, toInvite(inv))
	}
	return out
}
