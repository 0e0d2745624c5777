package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses all configuration flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-driver storage driver (postgres, sqlite, mongo)
//	-mongo-uri MongoDB connection string
//	-c/-config json file path with configs
//	-secret-key vault key material
//	-kdf vault key derivation function (hkdf, argon2id)
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "24h")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-client-url frontend URL for OAuth redirects
//	-legacy-seal-interval legacy plaintext sealing interval (e.g., "1h")
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("eagle-pass", flag.ContinueOnError)

	var serverAddress NetAddress
	var databaseDSN, driver, mongoURI string
	var jsonConfigPath string
	var secretKey, kdf string
	var tokenSignKey, tokenIssuer string
	var tokenDuration, requestTimeout, legacySealInterval time.Duration
	var clientURL string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&driver, "driver", "", "Storage driver: postgres, sqlite or mongo")
	fs.StringVar(&mongoURI, "mongo-uri", "", "MongoDB connection string")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&secretKey, "secret-key", "", "Vault key material")
	fs.StringVar(&kdf, "kdf", "", "Vault key derivation function: hkdf or argon2id")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 24h)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&clientURL, "client-url", "", "Frontend URL for OAuth redirects")
	fs.DurationVar(&legacySealInterval, "legacy-seal-interval", 0, "Legacy plaintext sealing interval (e.g., 1h)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			SecretKey:     secretKey,
			VaultKDF:      kdf,
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
		},
		Storage: Storage{
			Driver: driver,
			DB:     DB{DSN: databaseDSN},
			Mongo:  Mongo{URI: mongoURI},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
			ClientURL:      clientURL,
		},
		Workers: Workers{
			LegacySealInterval: legacySealInterval,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
