package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/guildhall/pkg/cryptox"
	"github.com/aussiebroadwan/guildhall/pkg/jwtx"
)

// InitIssuer builds the session token issuer from the configured secret.
//
// Without GUILD_JWT_SECRET a random secret is generated on startup and kept
// only in memory. Every restart then invalidates all issued tokens, and
// replicas cannot verify each other's tokens.
func InitIssuer(cfg Config, logger *slog.Logger) (*jwtx.Issuer, error) {
	secret := []byte(cfg.JWTSecret)

	if len(secret) == 0 {
		generated, err := cryptox.GenerateSecret(jwtx.MinSecretSize)
		if err != nil {
			return nil, fmt.Errorf("failed to generate ephemeral secret: %w", err)
		}
		secret = generated

		logger.Warn("no JWT secret configured, using an ephemeral one",
			"hint", "set GUILD_JWT_SECRET to keep sessions valid across restarts",
		)
	}

	issuer, err := jwtx.NewIssuer(secret, jwtx.IssuerOptions{
		TTL:    cfg.TokenTTL,
		Issuer: cfg.Issuer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token issuer: %w", err)
	}

	logger.Info("session token issuer ready",
		"issuer", cfg.Issuer,
		"ttl", issuer.TTL(),
	)
	return issuer, nil
}
