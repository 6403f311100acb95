package guildsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeValidation         = "validation_error"
	ErrorCodeInvalidToken       = "invalid_token"
	ErrorCodeEmailExists        = "email_exists"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeUserNotFound       = "user_not_found"
	ErrorCodeServerNotFound     = "server_not_found"
	ErrorCodeNotMember          = "not_member"
	ErrorCodeNotPermitted       = "not_permitted"
	ErrorCodeInviteNotFound     = "invite_not_found"
	ErrorCodeInviteInvalid      = "invite_invalid"
	ErrorCodeRateLimited        = "rate_limit_exceeded"
	ErrorCodeServerError        = "server_error"
)

// APIError is a non-success response. Handlers write it, the SDK returns it.
type APIError struct {
	StatusCode  int               `json:"-"`
	Code        string            `json:"error"`
	Description string            `json:"error_description"`
	Fields      map[string]string `json:"fields,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches another *APIError with the same status and code, so the
// predefined errors work with errors.Is whatever the description says.
func (e *APIError) Is(target error) bool {
	var t *APIError
	if !errors.As(target, &t) {
		return false
	}
	return e.StatusCode == t.StatusCode && e.Code == t.Code
}

// WithDescription returns a copy of e carrying desc.
func (e *APIError) WithDescription(desc string) *APIError {
	c := *e
	c.Description = desc
	return &c
}

var (
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed",
	}

	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the session token is missing, invalid or expired",
	}

	ErrEmailExists = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeEmailExists,
		Description: "an account with this email already exists",
	}

	// ErrInvalidCredentials is returned for a wrong password and for an
	// unknown email alike.
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid email or password",
	}

	ErrUserNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeUserNotFound,
		Description: "user not found",
	}

	ErrServerNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeServerNotFound,
		Description: "server not found",
	}

	ErrNotMember = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeNotMember,
		Description: "you are not a member of this server",
	}

	ErrNotPermitted = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeNotPermitted,
		Description: "you are not allowed to do this",
	}

	ErrInviteNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeInviteNotFound,
		Description: "invite not found",
	}

	// ErrInviteInvalid is returned for revoked, expired and exhausted invites.
	ErrInviteInvalid = &APIError{
		StatusCode:  http.StatusGone,
		Code:        ErrorCodeInviteInvalid,
		Description: "invite is no longer valid",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// parseErrorResponse turns an error body into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
			Fields:      errResp.Fields,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
