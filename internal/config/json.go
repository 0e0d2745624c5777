package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON files. Durations
// are accepted as strings ("30s") or nanosecond numbers.
type StructuredJSONConfig struct {
	App struct {
		SecretKey            string   `json:"secret_key"`
		VaultKDF             string   `json:"vault_kdf"`
		VaultStrictEnvelopes bool     `json:"vault_strict_envelopes"`
		TokenSignKey         string   `json:"token_sign_key"`
		TokenIssuer          string   `json:"token_issuer"`
		TokenDuration        Duration `json:"token_duration"`
		Version              string   `json:"version"`
		LogLevel             string   `json:"log_level"`
	} `json:"app,omitempty"`

	Storage struct {
		Driver string `json:"driver"`
		DB     struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
		Mongo struct {
			URI      string `json:"uri"`
			Database string `json:"database"`
		} `json:"mongo,omitempty"`
		RetryMaxElapsed Duration `json:"retry_max_elapsed"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		ClientURL      string   `json:"client_url"`
		AllowedOrigins []string `json:"allowed_origins"`
		RateLimit      float64  `json:"rate_limit"`
		RateBurst      int      `json:"rate_burst"`
	} `json:"server,omitempty"`

	OAuth struct {
		Discord struct {
			ClientID     string   `json:"client_id"`
			ClientSecret string   `json:"client_secret"`
			RedirectURI  string   `json:"redirect_uri"`
			APIURL       string   `json:"api_url"`
			Timeout      Duration `json:"timeout"`
		} `json:"discord,omitempty"`
	} `json:"oauth,omitempty"`

	Workers struct {
		LegacySealInterval  Duration `json:"legacy_seal_interval"`
		LegacySealBatchSize int      `json:"legacy_seal_batch_size"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var j StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&j); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			SecretKey:            j.App.SecretKey,
			VaultKDF:             j.App.VaultKDF,
			VaultStrictEnvelopes: j.App.VaultStrictEnvelopes,
			TokenSignKey:         j.App.TokenSignKey,
			TokenIssuer:          j.App.TokenIssuer,
			TokenDuration:        time.Duration(j.App.TokenDuration),
			Version:              j.App.Version,
			LogLevel:             j.App.LogLevel,
		},
		Storage: Storage{
			Driver:          j.Storage.Driver,
			DB:              DB{DSN: j.Storage.DB.DSN},
			Mongo:           Mongo{URI: j.Storage.Mongo.URI, Database: j.Storage.Mongo.Database},
			RetryMaxElapsed: time.Duration(j.Storage.RetryMaxElapsed),
		},
		Server: Server{
			HTTPAddress:    j.Server.HTTPAddress,
			RequestTimeout: time.Duration(j.Server.RequestTimeout),
			ClientURL:      j.Server.ClientURL,
			AllowedOrigins: j.Server.AllowedOrigins,
			RateLimit:      j.Server.RateLimit,
			RateBurst:      j.Server.RateBurst,
		},
		OAuth: OAuth{
			Discord: Discord{
				ClientID:     j.OAuth.Discord.ClientID,
				ClientSecret: j.OAuth.Discord.ClientSecret,
				RedirectURI:  j.OAuth.Discord.RedirectURI,
				APIURL:       j.OAuth.Discord.APIURL,
				Timeout:      time.Duration(j.OAuth.Discord.Timeout),
			},
		},
		Workers: Workers{
			LegacySealInterval:  time.Duration(j.Workers.LegacySealInterval),
			LegacySealBatchSize: j.Workers.LegacySealBatchSize,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
