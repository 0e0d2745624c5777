// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// eagle-pass server. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds the vault key material, token parameters and the application
	// version.
	App App `envPrefix:"APP_"`

	// Storage selects and configures the persistence backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the HTTP listener, timeout, CORS and rate-limit settings.
	Server Server `envPrefix:"SERVER_"`

	// OAuth holds the Discord application credentials used for login.
	OAuth OAuth `envPrefix:"OAUTH_"`

	// Workers holds settings for background workers.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control security,
// token lifecycle, and versioning.
type App struct {
	// SecretKey is the key material the vault key is derived from.
	// Losing it makes every stored credential unreadable.
	// Env: APP_SECRET_KEY
	SecretKey string `env:"SECRET_KEY"`

	// VaultKDF selects how SecretKey is stretched: "hkdf" (default) for
	// random keys or "argon2id" for passphrases.
	// Env: APP_VAULT_KDF
	VaultKDF string `env:"VAULT_KDF"`

	// VaultStrictEnvelopes disables the legacy plaintext fallback.
	// Env: APP_VAULT_STRICT_ENVELOPES
	VaultStrictEnvelopes bool `env:"VAULT_STRICT_ENVELOPES"`

	// TokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT remains valid (e.g. "24h").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is the minimum zerolog level ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// Driver is one of "postgres", "sqlite" or "mongo".
	// Env: STORAGE_DRIVER
	Driver string `env:"DRIVER"`

	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Mongo holds the MongoDB connection settings.
	Mongo Mongo `envPrefix:"MONGO_"`

	// RetryMaxElapsed bounds how long transient database errors are retried.
	// Env: STORAGE_RETRY_MAX_ELAPSED
	RetryMaxElapsed time.Duration `env:"RETRY_MAX_ELAPSED"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the PostgreSQL connection string or the SQLite file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Mongo holds connection settings for the MongoDB backend.
type Mongo struct {
	// URI is the MongoDB connection string.
	// Env: STORAGE_MONGO_URI
	URI string `env:"URI"`

	// Database is the database holding the users and passwords collections.
	// Env: STORAGE_MONGO_DATABASE
	Database string `env:"DATABASE"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ClientURL is the frontend origin the OAuth callback redirects to.
	// Env: SERVER_CLIENT_URL
	ClientURL string `env:"CLIENT_URL"`

	// AllowedOrigins lists CORS origins. Defaults to ClientURL.
	// Env: SERVER_ALLOWED_ORIGINS (comma separated)
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// RateLimit is the sustained number of requests per second per client IP.
	// Env: SERVER_RATE_LIMIT
	RateLimit float64 `env:"RATE_LIMIT"`

	// RateBurst is the burst size per client IP.
	// Env: SERVER_RATE_BURST
	RateBurst int `env:"RATE_BURST"`
}

// OAuth holds external identity provider settings.
type OAuth struct {
	Discord Discord `envPrefix:"DISCORD_"`
}

// Discord holds the Discord OAuth2 application credentials.
type Discord struct {
	// Env: OAUTH_DISCORD_CLIENT_ID
	ClientID string `env:"CLIENT_ID"`
	// Env: OAUTH_DISCORD_CLIENT_SECRET
	ClientSecret string `env:"CLIENT_SECRET"`
	// Env: OAUTH_DISCORD_REDIRECT_URI
	RedirectURI string `env:"REDIRECT_URI"`
	// APIURL is the Discord API base URL.
	// Env: OAUTH_DISCORD_API_URL
	APIURL string `env:"API_URL"`
	// Timeout bounds every call to the Discord API.
	// Env: OAUTH_DISCORD_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// LegacySealInterval is how often stored legacy plaintext is sealed.
	// Zero disables the worker.
	// Env: WORKERS_LEGACY_SEAL_INTERVAL
	LegacySealInterval time.Duration `env:"LEGACY_SEAL_INTERVAL"`

	// LegacySealBatchSize is the page size used when scanning passwords.
	// Env: WORKERS_LEGACY_SEAL_BATCH_SIZE
	LegacySealBatchSize int `env:"LEGACY_SEAL_BATCH_SIZE"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (later sources override non-zero fields of earlier ones):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Defaults fill whatever is still unset before validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}

// Redacted returns a copy of the config that is safe to log.
func (cfg StructuredConfig) Redacted() StructuredConfig {
	const mask = "***"

	redact := func(s string) string {
		if s == "" {
			return ""
		}
		return mask
	}

	cfg.App.SecretKey = redact(cfg.App.SecretKey)
	cfg.App.TokenSignKey = redact(cfg.App.TokenSignKey)
	cfg.OAuth.Discord.ClientSecret = redact(cfg.OAuth.Discord.ClientSecret)
	cfg.Storage.DB.DSN = redact(cfg.Storage.DB.DSN)
	cfg.Storage.Mongo.URI = redact(cfg.Storage.Mongo.URI)

	return cfg
}
