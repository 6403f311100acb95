package guildsdk

import "time"

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	// Error is the machine readable code (e.g. "email_exists", "invite_invalid")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`

	// Fields maps request fields to validation messages, set for validation_error only
	Fields map[string]string `json:"fields,omitempty"`
}

// ============================================================================
// Auth Types
// ============================================================================

// SignupRequest is the body of POST /v1/auth/signup.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email,max=254" example:"alice@example.com"`
	Username string `json:"username" validate:"required,min=2,max=32" example:"alice"`
	Password string `json:"password" validate:"required,min=8,max=1024" example:"correct horse battery"`
}

// LoginRequest is the body of POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=254" example:"alice@example.com"`
	Password string `json:"password" validate:"required,max=1024" example:"correct horse battery"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	User User `json:"user"`

	// AccessToken is the HS256 session token to send as "Bearer {token}"
	AccessToken string `json:"access_token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the lifetime of the token in seconds
	ExpiresIn int `json:"expires_in"`

	ExpiresAt time.Time `json:"expires_at"`
}

// User is the public view of an account. It never carries credential material.
type User struct {
	ID        string    `json:"id" example:"01JB3Z8Y7K2M4N6P8Q0R2S4T6V"`
	Email     string    `json:"email" example:"alice@example.com"`
	Username  string    `json:"username" example:"alice"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ============================================================================
// Server Types
// ============================================================================

// CreateServerRequest is the body of POST /v1/servers.
type CreateServerRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100" example:"the guild"`
}

type Server struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Member is one membership of a server.
type Member struct {
	UserID   string    `json:"user_id"`
	Role     string    `json:"role" enums:"owner,member"`
	JoinedAt time.Time `json:"joined_at"`
}

// MembersResponse lists the members of a server.
type MembersResponse struct {
	ServerID string   `json:"server_id"`
	Members  []Member `json:"members"`
}

// ============================================================================
// Invite Types
// ============================================================================

// CreateInviteRequest is the body of POST /v1/servers/{id}/invites. Both
// limits are optional; omitted means unbounded.
type CreateInviteRequest struct {
	MaxUses   *int       `json:"max_uses,omitempty" validate:"omitempty,min=1" example:"5"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Invite describes an invite, usable or not.
type Invite struct {
	Code      string     `json:"code" example:"aZ3kP9qW1x"`
	ServerID  string     `json:"server_id"`
	CreatedBy string     `json:"created_by"`
	MaxUses   *int       `json:"max_uses,omitempty"`
	Uses      int        `json:"uses"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Revoked   bool       `json:"revoked"`
	CreatedAt time.Time  `json:"created_at"`
}

// InvitesResponse lists the invites of a server.
type InvitesResponse struct {
	ServerID string   `json:"server_id"`
	Invites  []Invite `json:"invites"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status" example:"ok"`
	Uptime  string        `json:"uptime" example:"1h2m3s"`
	Version string        `json:"version" example:"0.1.0"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of each dependency.
type HealthChecks struct {
	Database string `json:"database"`
}
