package http

import (
	"net/http"

	"github.com/aussiebroadwan/guildhall/internal/guild/service"
	"github.com/aussiebroadwan/guildhall/pkg/guildsdk"
	"github.com/aussiebroadwan/guildhall/pkg/httpx"
)

type ServersHandler struct {
	ServerService *service.ServerService
	Validator     *httpx.Validator
}

// HandleCreate godoc
//
//	@Summary		Create Server
//	@Description	Create a server owned by the caller. The caller becomes its first member with the owner role.
//	@Tags			Servers
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		guildsdk.CreateServerRequest	true	"name"
//	@Success		201		{object}	guildsdk.Server					"id, name, owner_id"
//	@Failure		400		{object}	guildsdk.ErrorResponse			"invalid_request, validation_error"
//	@Failure		401		{object}	guildsdk.ErrorResponse			"invalid_token"
//	@Failure		500		{object}	guildsdk.ErrorResponse			"server_error"
//	@Router			/v1/servers [post].
func (h *ServersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req guildsdk.CreateServerRequest
	if !decodeRequest(w, r, h.Validator, &req) {
		return
	}

	server, err := h.ServerService.CreateServer(r.Context(), userID, req.Name)
	if err != nil {
		writeServiceError(w, r, err, "failed to create server")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toServer(server))
}

// HandleListMembers godoc
//
//	@Summary		List Members
//	@Description	List the members of a server. Only members may list.
//	@Tags			Servers
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string					true	"Server ID"
//	@Success		200	{object}	guildsdk.MembersResponse	"server_id, members"
//	@Failure		401	{object}	guildsdk.ErrorResponse	"invalid_token"
//	@Failure		403	{object}	guildsdk.ErrorResponse	"not_member"
//	@Failure		404	{object}	guildsdk.ErrorResponse	"server_not_found"
//	@Router			/v1/servers/{id}/members [get].
func (h *ServersHandler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	serverID := r.PathValue("id")

	members, err := h.ServerService.ListMembers(r.Context(), serverID, userID)
	if err != nil {
		writeServiceError(w, r, err, "failed to list members")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toMembers(serverID, members))
}
