package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretSize is the shortest HMAC secret NewIssuer accepts, in bytes.
const MinSecretSize = 32

var (
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
	ErrWeakSecret   = errors.New("jwtx: signing secret too short")
)

// Verifier validates a token and returns its claims.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// IssuerOptions tunes an Issuer. Zero values pick the defaults.
type IssuerOptions struct {
	// TTL of issued tokens, DefaultSessionTTL when zero.
	TTL time.Duration

	// Issuer written to and required in the "iss" claim. Empty disables the check.
	Issuer string

	// Leeway tolerated on exp for clock skew between replicas.
	Leeway time.Duration

	// Now overrides the clock, mostly for tests.
	Now func() time.Time
}

// Issuer signs and verifies HS256 session tokens with one server-wide secret.
type Issuer struct {
	secret []byte
	opts   IssuerOptions
}

// NewIssuer returns an Issuer for secret.
func NewIssuer(secret []byte, opts IssuerOptions) (*Issuer, error) {
	if len(secret) < MinSecretSize {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrWeakSecret, MinSecretSize, len(secret))
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultSessionTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	key := make([]byte, len(secret))
	copy(key, secret)

	return &Issuer{secret: key, opts: opts}, nil
}

// TTL is the lifetime of tokens minted by Issue.
func (i *Issuer) TTL() time.Duration { return i.opts.TTL }

// Issue mints a token for the user and returns it along with its claims.
func (i *Issuer) Issue(userID, email string) (string, Claims, error) {
	claims := NewSessionClaims(userID, email, i.opts.Issuer, i.opts.TTL, i.opts.Now())

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", Claims{}, fmt.Errorf("jwtx: sign: %w", err)
	}
	return token, claims, nil
}

// Verify checks the signature and expiry of raw and returns its claims.
// Failures map onto ErrMalformed, ErrInvalidSig, ErrExpired or ErrInvalidClaim.
func (i *Issuer) Verify(raw string) (Claims, error) {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithStrictDecoding(),
		jwt.WithLeeway(i.opts.Leeway),
		jwt.WithTimeFunc(i.opts.Now),
	}
	if i.opts.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(i.opts.Issuer))
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	}, parserOpts...)
	if err != nil {
		return Claims{}, classify(err)
	}

	if claims.Subject == "" {
		return Claims{}, fmt.Errorf("%w: missing subject", ErrInvalidClaim)
	}
	return claims, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable),
		errors.Is(err, jwt.ErrSignatureInvalid):
		return fmt.Errorf("%w: %v", ErrInvalidSig, err)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidClaim, err)
	}
}
