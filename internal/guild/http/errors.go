package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/guildhall/internal/guild/service"
	"github.com/aussiebroadwan/guildhall/pkg/guildsdk"
	"github.com/aussiebroadwan/guildhall/pkg/httpx"
	"github.com/aussiebroadwan/guildhall/pkg/slogx"
)

func writeError(w http.ResponseWriter, e *guildsdk.APIError) {
	httpx.WriteJSON(w, e.StatusCode, guildsdk.ErrorResponse{
		Error:            e.Code,
		ErrorDescription: e.Description,
		Fields:           e.Fields,
	})
}

// writeServiceError maps service errors onto API errors. Anything unknown is
// logged with msg and answered with a bare server_error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	var apiErr *guildsdk.APIError
	switch {
	case errors.Is(err, service.ErrEmailExists):
		apiErr = guildsdk.ErrEmailExists
	case errors.Is(err, service.ErrInvalidCredentials):
		apiErr = guildsdk.ErrInvalidCredentials
	case errors.Is(err, service.ErrUserNotFound):
		apiErr = guildsdk.ErrUserNotFound
	case errors.Is(err, service.ErrServerNotFound):
		apiErr = guildsdk.ErrServerNotFound
	case errors.Is(err, service.ErrNotMember):
		apiErr = guildsdk.ErrNotMember
	case errors.Is(err, service.ErrNotPermitted):
		apiErr = guildsdk.ErrNotPermitted
	case errors.Is(err, service.ErrInviteNotFound):
		apiErr = guildsdk.ErrInviteNotFound
	case errors.Is(err, service.ErrInviteInvalid):
		apiErr = guildsdk.ErrInviteInvalid
	case errors.Is(err, service.ErrInvalidInviteRequest):
		apiErr = guildsdk.ErrInvalidRequest.WithDescription("max_uses must be at least 1 and expires_at must be in the future")
	default:
		slogx.Error(slogx.FromContext(r.Context()), msg, err)
		apiErr = guildsdk.ErrServerError
	}
	writeError(w, apiErr)
}

// decodeRequest decodes and validates a JSON body into dst, writing the
// error response itself when it returns false.
func decodeRequest(w http.ResponseWriter, r *http.Request, v *httpx.Validator, dst any) bool {
	if err := httpx.DecodeJSON(w, r, dst); err != nil {
		writeError(w, guildsdk.ErrInvalidRequest.WithDescription("request body must be a single JSON object with known fields"))
		return false
	}

	if err := v.Validate(dst); err != nil {
		var verr *httpx.ValidationError
		if errors.As(err, &verr) {
			writeError(w, &guildsdk.APIError{
				StatusCode:  http.StatusBadRequest,
				Code:        guildsdk.ErrorCodeValidation,
				Description: verr.Error(),
				Fields:      verr.Fields,
			})
			return false
		}
		writeError(w, guildsdk.ErrInvalidRequest)
		return false
	}
	return true
}

// callerID returns the authenticated user. Routes behind AuthnMiddleware
// always have one.
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := httpx.UserID(r.Context())
	if !ok {
		writeError(w, guildsdk.ErrInvalidToken)
	}
	return id, ok
}
