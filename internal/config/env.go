// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from environment variables. Names come from the `env`
// and `envPrefix` tags, so App.SecretKey is read from APP_SECRET_KEY and
// OAuth.Discord.ClientID from OAUTH_DISCORD_CLIENT_ID.
//
// A nil environ means the process environment.
func parseEnv(cfg *StructuredConfig, environ map[string]string) error {
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
