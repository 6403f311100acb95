package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/guildhall/internal/guild/domain"
	"github.com/aussiebroadwan/guildhall/internal/guild/metrics"
	"github.com/aussiebroadwan/guildhall/internal/guild/store"
	"github.com/aussiebroadwan/guildhall/pkg/cryptox"
	"github.com/aussiebroadwan/guildhall/pkg/idx"
	"github.com/aussiebroadwan/guildhall/pkg/jwtx"
	"github.com/aussiebroadwan/guildhall/pkg/slogx"
)

// TokenIssuer mints session tokens. *jwtx.Issuer implements it.
type TokenIssuer interface {
	Issue(userID, email string) (string, jwtx.Claims, error)
}

type AuthService struct {
	Store  store.Store
	Issuer TokenIssuer
}

// AuthResult is returned by Signup and Login.
type AuthResult struct {
	User      domain.PublicUser
	Token     string
	ExpiresAt time.Time
}

// Signup registers a new account and issues a session token for it.
// It performs the following steps:
// 1. Rejects an email that is already registered
// 2. Hashes the password with Argon2id
// 3. Inserts the user; losing an insert race is also ErrEmailExists
// 4. Issues a session token
func (s *AuthService) Signup(ctx context.Context, email, username, password string) (AuthResult, error) {
	log := slogx.FromContext(ctx)

	// 1. Fast path for the common duplicate case
	exists, err := s.Store.Users().EmailExists(ctx, email)
	if err != nil {
		slogx.Error(log, "failed to check email", err)
		metrics.RecordAuth("signup", metrics.OutcomeError)
		return AuthResult{}, err
	}
	if exists {
		log.Debug("signup with registered email")
		metrics.RecordAuth("signup", metrics.OutcomeRejected)
		return AuthResult{}, ErrEmailExists
	}

	// 2. Hash the password
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		slogx.Error(log, "failed to hash password", err)
		metrics.RecordAuth("signup", metrics.OutcomeError)
		return AuthResult{}, err
	}

	// 3. Insert; the unique constraint settles concurrent signups
	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Debug("signup lost email race")
			metrics.RecordAuth("signup", metrics.OutcomeRejected)
			return AuthResult{}, ErrEmailExists
		}
		slogx.Error(log, "failed to create user", err)
		metrics.RecordAuth("signup", metrics.OutcomeError)
		return AuthResult{}, err
	}

	// 4. Issue the session token
	res, err := s.issue(user)
	if err != nil {
		slogx.Error(log, "failed to issue token", err, slog.String("user_id", user.ID))
		metrics.RecordAuth("signup", metrics.OutcomeError)
		return AuthResult{}, err
	}

	log.Info("user signed up", slog.String("user_id", user.ID))
	metrics.RecordAuth("signup", metrics.OutcomeSuccess)
	return res, nil
}

// Login verifies the credentials and issues a session token. An unknown
// email and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slogx.Error(log, "failed to fetch user", err)
			metrics.RecordAuth("login", metrics.OutcomeError)
			return AuthResult{}, err
		}
		// Burn the same hashing work as a real verification.
		_, _ = cryptox.VerifyPassword(password, cryptox.DummyHash())
		log.Debug("login for unknown email")
		metrics.RecordAuth("login", metrics.OutcomeRejected)
		return AuthResult{}, ErrInvalidCredentials
	}

	ok, err := cryptox.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		slogx.Error(log, "stored password hash is unreadable", err, slog.String("user_id", user.ID))
		metrics.RecordAuth("login", metrics.OutcomeError)
		return AuthResult{}, err
	}
	if !ok {
		log.Debug("login with wrong password", slog.String("user_id", user.ID))
		metrics.RecordAuth("login", metrics.OutcomeRejected)
		return AuthResult{}, ErrInvalidCredentials
	}

	res, err := s.issue(user)
	if err != nil {
		slogx.Error(log, "failed to issue token", err, slog.String("user_id", user.ID))
		metrics.RecordAuth("login", metrics.OutcomeError)
		return AuthResult{}, err
	}

	log.Info("user logged in", slog.String("user_id", user.ID))
	metrics.RecordAuth("login", metrics.OutcomeSuccess)
	return res, nil
}

// GetByID fetches the public view of a user.
func (s *AuthService) GetByID(ctx context.Context, userID string) (domain.PublicUser, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.PublicUser{}, ErrUserNotFound
		}
		slogx.Error(slogx.FromContext(ctx), "failed to fetch user", err, slog.String("user_id", userID))
		return domain.PublicUser{}, err
	}
	return user.Public(), nil
}

// Logout always succeeds. Tokens are stateless and stay valid until they expire.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	slogx.FromContext(ctx).Debug("logout", slog.String("user_id", userID))
	return nil
}

func (s *AuthService) issue(user domain.User) (AuthResult, error) {
	token, claims, err := s.Issuer.Issue(user.ID, user.Email)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user.Public(), Token: token, ExpiresAt: claims.Expiry()}, nil
}
