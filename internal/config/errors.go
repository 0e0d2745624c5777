package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates missing or invalid application settings
	// (for example, no vault secret key or token sign key).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidStorageConfigs indicates an unknown driver or a missing
	// connection string for the selected driver.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates invalid listener or limiter settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidOAuthConfigs indicates incomplete Discord OAuth credentials.
	ErrInvalidOAuthConfigs = errors.New("invalid oauth configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
