package app

import (
	"fmt"
	"os"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

type Config struct {
	DatabaseDriver   string        // sqlite or postgres (default: sqlite)
	DatabaseFile     string        // SQLite database file (default: ./guild.db)
	DatabaseURL      string        // Postgres connection URL, required for the postgres driver
	DatabaseMaxConns int           // Pool bound; 0 picks the driver default (sqlite: 1)
	JWTSecret        string        // Optional: HS256 secret, at least 32 bytes. Ephemeral when unset
	TokenTTL         time.Duration // Session token lifetime (default: 24h)
	Issuer           string        // "iss" claim of session tokens (default: guildhall)
	PepperFile       string        // File holding the password pepper (default: ./pepper)
	InviteUsePolicy  string        // redemption_attempts or new_members (default: redemption_attempts)
	Env              string        // Environment (dev, staging, prod) (default: dev)
	LogLevel         string        // Log level (debug, info, warn, error) (default: info)
	LogFormat        string        // Log format (json, text) (default: json)
	Port             int           // HTTP server port (default: 8080)
	ShutdownGrace    time.Duration // Graceful shutdown timeout (default: 10s)
}

// Config keys, shared by the YAML file and the command-line flags.
const (
	keyDatabaseDriver   = "database-driver"
	keyDatabaseFile     = "database-file"
	keyDatabaseURL      = "database-url"
	keyDatabaseMaxConns = "database-max-conns"
	keyJWTSecret        = "jwt-secret"
	keyTokenTTL         = "token-ttl"
	keyIssuer           = "issuer"
	keyPepperFile       = "pepper-file"
	keyInviteUsePolicy  = "invite-use-policy"
	keyEnv              = "env"
	keyLogLevel         = "log-level"
	keyLogFormat        = "log-format"
	keyPort             = "port"
	keyShutdownGrace    = "shutdown-grace-period"
)

// envKeys maps environment variables onto config keys.
var envKeys = map[string]string{
	"GUILD_DATABASE_DRIVER":    keyDatabaseDriver,
	"GUILD_DATABASE_FILE":      keyDatabaseFile,
	"GUILD_DATABASE_URL":       keyDatabaseURL,
	"GUILD_DATABASE_MAX_CONNS": keyDatabaseMaxConns,
	"GUILD_JWT_SECRET":         keyJWTSecret,
	"GUILD_TOKEN_TTL":          keyTokenTTL,
	"GUILD_ISSUER":             keyIssuer,
	"GUILD_PEPPER_FILE":        keyPepperFile,
	"GUILD_INVITE_USE_POLICY":  keyInviteUsePolicy,
	"ENV":                      keyEnv,
	"LOG_LEVEL":                keyLogLevel,
	"LOG_FORMAT":               keyLogFormat,
	"PORT":                     keyPort,
	"SHUTDOWN_GRACE_PERIOD":    keyShutdownGrace,
}

func DefaultConfig() Config {
	return Config{
		DatabaseDriver:  "sqlite",
		DatabaseFile:    "guild.db",
		TokenTTL:        24 * time.Hour,
		Issuer:          "guildhall",
		PepperFile:      "pepper",
		InviteUsePolicy: "redemption_attempts",
		Env:             "dev",
		LogLevel:        "info",
		LogFormat:       "json",
		Port:            8080,
		ShutdownGrace:   10 * time.Second,
	}
}

// RegisterFlags adds the config flags to fs with the defaults as flag
// defaults. The JWT secret has no flag so it never shows up in ps output.
func RegisterFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()
	fs.String(keyDatabaseDriver, d.DatabaseDriver, "database driver (sqlite, postgres)")
	fs.String(keyDatabaseFile, d.DatabaseFile, "sqlite database file")
	fs.String(keyDatabaseURL, d.DatabaseURL, "postgres connection URL")
	fs.Int(keyDatabaseMaxConns, d.DatabaseMaxConns, "maximum open database connections (0: driver default)")
	fs.Duration(keyTokenTTL, d.TokenTTL, "session token lifetime")
	fs.String(keyIssuer, d.Issuer, "issuer claim of session tokens")
	fs.String(keyPepperFile, d.PepperFile, "file holding the password pepper")
	fs.String(keyInviteUsePolicy, d.InviteUsePolicy, "invite use counting (redemption_attempts, new_members)")
	fs.String(keyEnv, d.Env, "environment (dev, staging, prod)")
	fs.String(keyLogLevel, d.LogLevel, "log level (debug, info, warn, error)")
	fs.String(keyLogFormat, d.LogFormat, "log format (json, text)")
	fs.Int(keyPort, d.Port, "HTTP server port")
	fs.Duration(keyShutdownGrace, d.ShutdownGrace, "graceful shutdown timeout")
}

// LoadConfig layers defaults, the optional YAML file at path, environment
// variables and explicitly set flags, later layers winning. fs may be nil.
func LoadConfig(path string, fs *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	for env, key := range envKeys {
		if value := os.Getenv(env); value != "" {
			if err := k.Set(key, value); err != nil {
				return Config{}, fmt.Errorf("failed to apply %s: %w", env, err)
			}
		}
	}

	// Flags left at their default only fill keys no other layer set.
	if fs != nil {
		if err := k.Load(posflag.Provider(fs, ".", k), nil); err != nil {
			return Config{}, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	d := DefaultConfig()
	cfg := Config{
		DatabaseDriver:   stringOrDefault(k, keyDatabaseDriver, d.DatabaseDriver),
		DatabaseFile:     stringOrDefault(k, keyDatabaseFile, d.DatabaseFile),
		DatabaseURL:      k.String(keyDatabaseURL),
		DatabaseMaxConns: k.Int(keyDatabaseMaxConns),
		JWTSecret:        k.String(keyJWTSecret),
		TokenTTL:         durationOrDefault(k, keyTokenTTL, d.TokenTTL),
		Issuer:           stringOrDefault(k, keyIssuer, d.Issuer),
		PepperFile:       stringOrDefault(k, keyPepperFile, d.PepperFile),
		InviteUsePolicy:  stringOrDefault(k, keyInviteUsePolicy, d.InviteUsePolicy),
		Env:              stringOrDefault(k, keyEnv, d.Env),
		LogLevel:         stringOrDefault(k, keyLogLevel, d.LogLevel),
		LogFormat:        stringOrDefault(k, keyLogFormat, d.LogFormat),
		Port:             intOrDefault(k, keyPort, d.Port),
		ShutdownGrace:    durationOrDefault(k, keyShutdownGrace, d.ShutdownGrace),
	}

	return cfg, cfg.Validate()
}

// Validate rejects configurations the application cannot start with.
func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case "sqlite":
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: %s is required for the postgres driver", keyDatabaseURL)
		}
	default:
		return fmt.Errorf("config: unknown %s %q", keyDatabaseDriver, c.DatabaseDriver)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config: %s %d out of range", keyPort, c.Port)
	}
	if c.DatabaseMaxConns < 0 {
		return fmt.Errorf("config: %s must not be negative", keyDatabaseMaxConns)
	}
	return nil
}

func stringOrDefault(k *koanf.Koanf, key, defaultValue string) string {
	if value := k.String(key); value != "" {
		return value
	}
	return defaultValue
}

func intOrDefault(k *koanf.Koanf, key string, defaultValue int) int {
	if !k.Exists(key) {
		return defaultValue
	}
	if value := k.Int(key); value != 0 {
		return value
	}
	return defaultValue
}

func durationOrDefault(k *koanf.Koanf, key string, defaultValue time.Duration) time.Duration {
	if value := k.Duration(key); value > 0 {
		return value
	}
	return defaultValue
}
