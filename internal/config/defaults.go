package config

import "time"

// Storage drivers accepted by [Storage.Driver].
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			VaultKDF:      "hkdf",
			TokenIssuer:   "eagle-pass",
			TokenDuration: 24 * time.Hour,
			LogLevel:      "info",
		},
		Storage: Storage{
			Driver: DriverPostgres,
			Mongo: Mongo{
				Database: "EaglePasswords",
			},
			RetryMaxElapsed: 10 * time.Second,
		},
		Server: Server{
			HTTPAddress:    "0.0.0.0:8080",
			RequestTimeout: 30 * time.Second,
			ClientURL:      "http://localhost:3000",
			RateLimit:      10,
			RateBurst:      20,
		},
		OAuth: OAuth{
			Discord: Discord{
				APIURL:  "https://discord.com/api",
				Timeout: 10 * time.Second,
			},
		},
		Workers: Workers{
			LegacySealBatchSize: 100,
		},
	}
}
