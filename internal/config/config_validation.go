// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/eagle-pass/internal/crypto"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// startup invariants. All violations are reported at once.
func (cfg *StructuredConfig) validate() error {
	return errors.Join(
		cfg.App.validate(),
		cfg.Storage.validate(),
		cfg.Server.validate(),
		cfg.OAuth.validate(),
		cfg.Workers.validate(),
	)
}

func (a App) validate() error {
	if strings.TrimSpace(a.SecretKey) == "" {
		return fmt.Errorf("%w: secret key is required", ErrInvalidAppConfigs)
	}
	if a.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}
	if a.TokenDuration <= 0 {
		return fmt.Errorf("%w: token duration must be positive", ErrInvalidAppConfigs)
	}
	if _, err := crypto.ParseKDF(a.VaultKDF); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAppConfigs, err)
	}
	return nil
}

func (s Storage) validate() error {
	switch s.Driver {
	case DriverPostgres, DriverSQLite:
		if s.DB.DSN == "" {
			return fmt.Errorf("%w: database DSN is required for %s", ErrInvalidStorageConfigs, s.Driver)
		}
	case DriverMongo:
		if s.Mongo.URI == "" || s.Mongo.Database == "" {
			return fmt.Errorf("%w: mongo URI and database are required", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, s.Driver)
	}
	return nil
}

func (s Server) validate() error {
	if s.HTTPAddress == "" {
		return fmt.Errorf("%w: http address is required", ErrInvalidServerConfigs)
	}
	if s.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidServerConfigs)
	}
	if s.RateLimit <= 0 || s.RateBurst <= 0 {
		return fmt.Errorf("%w: rate limit and burst must be positive", ErrInvalidServerConfigs)
	}
	return nil
}

func (o OAuth) validate() error {
	d := o.Discord
	if d.ClientID == "" || d.ClientSecret == "" || d.RedirectURI == "" {
		return fmt.Errorf("%w: discord client id, secret and redirect uri are required", ErrInvalidOAuthConfigs)
	}
	return nil
}

func (w Workers) validate() error {
	if w.LegacySealInterval < 0 {
		return fmt.Errorf("%w: legacy seal interval must not be negative", ErrInvalidWorkerConfigs)
	}
	if w.LegacySealBatchSize <= 0 {
		return fmt.Errorf("%w: legacy seal batch size must be positive", ErrInvalidWorkerConfigs)
	}
	return nil
}
