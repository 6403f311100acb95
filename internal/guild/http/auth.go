package http

import (
	"net/http"

	"github.com/aussiebroadwan/guildhall/internal/guild/service"
	"github.com/aussiebroadwan/guildhall/pkg/guildsdk"
	"github.com/aussiebroadwan/guildhall/pkg/httpx"
)

type AuthHandler struct {
	AuthService *service.AuthService
	Validator   *httpx.Validator
}

// HandleSignup godoc
//
//	@Summary		Sign Up
//	@Description	Create an account and return a session token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		guildsdk.SignupRequest	true	"email, username, password"
//	@Success		201		{object}	guildsdk.AuthResponse	"user, access_token"
//	@Failure		400		{object}	guildsdk.ErrorResponse	"invalid_request, validation_error"
//	@Failure		409		{object}	guildsdk.ErrorResponse	"email_exists"
//	@Failure		429		{object}	guildsdk.ErrorResponse	"rate_limit_exceeded"
//	@Failure		500		{object}	guildsdk.ErrorResponse	"server_error"
//	@Router			/v1/auth/signup [post].
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req guildsdk.SignupRequest
	if !decodeRequest(w, r, h.Validator, &req) {
		return
	}

	res, err := h.AuthService.Signup(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err, "signup failed")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toAuthResponse(res))
}

// HandleLogin godoc
//
//	@Summary		Log In
//	@Description	Exchange email and password for a session token. A wrong password and an unknown email get the same response.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		guildsdk.LoginRequest	true	"email, password"
//	@Success		200		{object}	guildsdk.AuthResponse	"user, access_token"
//	@Failure		400		{object}	guildsdk.ErrorResponse	"invalid_request, validation_error"
//	@Failure		401		{object}	guildsdk.ErrorResponse	"invalid_credentials"
//	@Failure		429		{object}	guildsdk.ErrorResponse	"rate_limit_exceeded"
//	@Failure		500		{object}	guildsdk.ErrorResponse	"server_error"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req guildsdk.LoginRequest
	if !decodeRequest(w, r, h.Validator, &req) {
		return
	}

	res, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err, "login failed")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAuthResponse(res))
}

// HandleLogout godoc
//
//	@Summary		Log Out
//	@Description	End the session. Tokens are stateless and stay valid until they expire; clients discard them.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Success		204	"No Content"
//	@Failure		401	{object}	guildsdk.ErrorResponse	"invalid_token"
//	@Router			/v1/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := h.AuthService.Logout(r.Context(), userID); err != nil {
		writeServiceError(w, r, err, "logout failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
