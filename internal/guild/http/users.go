package http

import (
	"net/http"

	"github.com/aussiebroadwan/guildhall/internal/guild/service"
	"github.com/aussiebroadwan/guildhall/pkg/httpx"
)

type UsersHandler struct {
	AuthService *service.AuthService
}

// HandleMe godoc
//
//	@Summary		Current User
//	@Description	Return the account of the session token holder
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	guildsdk.User			"id, email, username"
//	@Failure		401	{object}	guildsdk.ErrorResponse	"invalid_token"
//	@Failure		404	{object}	guildsdk.ErrorResponse	"user_not_found"
//	@Router			/v1/users/me [get].
func (h *UsersHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	user, err := h.AuthService.GetByID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "failed to fetch user")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUser(user))
}
