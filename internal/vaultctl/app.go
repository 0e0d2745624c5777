// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vaultctl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MKhiriev/eagle-pass/internal/crypto"
	"github.com/MKhiriev/eagle-pass/internal/logger"
	"github.com/MKhiriev/eagle-pass/models"
	"github.com/atotto/clipboard"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

const (
	flagKey    = "key"
	flagKDF    = "kdf"
	flagCopy   = "copy"
	flagStrict = "strict"
	flagBytes  = "bytes"

	defaultKeygenBytes = 32
)

// deps holds the side effects of the tool so tests can replace them.
type deps struct {
	out    io.Writer
	errOut io.Writer

	promptKey func(errOut io.Writer) (string, error)
	copy      func(text string) error

	logger *logger.Logger
}

// NewApp builds the vaultctl application writing to stdout and stderr.
func NewApp(info models.AppBuildInfo, logger *logger.Logger) *cli.App {
	return newApp(info, deps{
		out:       os.Stdout,
		errOut:    os.Stderr,
		promptKey: promptKey,
		copy:      clipboard.WriteAll,
		logger:    logger,
	})
}

func newApp(info models.AppBuildInfo, d deps) *cli.App {
	return &cli.App{
		Name:            "vaultctl",
		Usage:           "seal, open and inspect eagle-pass vault envelopes",
		Version:         info.String(),
		Writer:          d.out,
		ErrWriter:       d.errOut,
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagKey,
				Aliases: []string{"k"},
				Usage:   "vault key material; prompted for when missing and stdin is a terminal",
				EnvVars: []string{"APP_SECRET_KEY"},
			},
			&cli.StringFlag{
				Name:    flagKDF,
				Usage:   "key derivation function: hkdf or argon2id",
				Value:   crypto.KDFHKDF,
				EnvVars: []string{"APP_VAULT_KDF"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "seal",
				Usage:     "encrypt a value into an envelope",
				ArgsUsage: "<plaintext>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: flagCopy, Aliases: []string{"c"}, Usage: "copy the envelope to the clipboard instead of printing it"},
				},
				Action: d.seal,
			},
			{
				Name:      "open",
				Usage:     "decrypt an envelope",
				ArgsUsage: "<envelope>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: flagCopy, Aliases: []string{"c"}, Usage: "copy the plaintext to the clipboard instead of printing it"},
					&cli.BoolFlag{Name: flagStrict, Usage: "reject values that are not envelopes"},
				},
				Action: d.open,
			},
			{
				Name:      "inspect",
				Usage:     "print the field sizes of an envelope without decrypting it",
				ArgsUsage: "<envelope>",
				Action:    d.inspect,
			},
			{
				Name:  "keygen",
				Usage: "print random key material as hex",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: flagBytes, Usage: "number of random bytes", Value: defaultKeygenBytes},
				},
				Action: d.keygen,
			},
		},
	}
}

func (d deps) seal(c *cli.Context) error {
	plaintext, err := singleArg(c)
	if err != nil {
		return err
	}

	cipher, err := d.cipher(c)
	if err != nil {
		return err
	}

	sealed, err := cipher.Seal(plaintext)
	if err != nil {
		return err
	}

	return d.emit(c, sealed)
}

func (d deps) open(c *cli.Context) error {
	value, err := singleArg(c)
	if err != nil {
		return err
	}

	var opts []crypto.Option
	if c.Bool(flagStrict) {
		opts = append(opts, crypto.WithStrictEnvelopes())
	}

	cipher, err := d.cipher(c, opts...)
	if err != nil {
		return err
	}

	if !crypto.IsSealed(value) && !c.Bool(flagStrict) {
		d.logger.Warn().Msg("value is not an envelope, printing it unchanged")
	}

	plaintext, err := cipher.Open(value)
	if err != nil {
		return err
	}

	return d.emit(c, plaintext)
}

func (d deps) inspect(c *cli.Context) error {
	value, err := singleArg(c)
	if err != nil {
		return err
	}

	envelope, err := crypto.ParseEnvelope(value)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(d.out, "nonce:      %d bytes\nciphertext: %d bytes\ntag:        %d bytes\n",
		len(envelope.Nonce), len(envelope.Ciphertext), len(envelope.Tag))
	return err
}

func (d deps) keygen(c *cli.Context) error {
	if c.NArg() != 0 {
		return fmt.Errorf("%w: keygen takes no arguments", ErrWrongArguments)
	}

	key, err := crypto.NewKeyMaterial(c.Int(flagBytes))
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(d.out, key)
	return err
}

// cipher builds a VaultCipher from --key and --kdf, prompting for the key
// when neither the flag nor APP_SECRET_KEY is set.
func (d deps) cipher(c *cli.Context, opts ...crypto.Option) (*crypto.VaultCipher, error) {
	key := c.String(flagKey)
	if strings.TrimSpace(key) == "" {
		var err error
		if key, err = d.promptKey(d.errOut); err != nil {
			return nil, err
		}
	}

	deriver, err := crypto.ParseKDF(c.String(flagKDF))
	if err != nil {
		return nil, err
	}

	d.logger.Debug().Str("kdf", c.String(flagKDF)).Msg("deriving vault key")
	return crypto.NewVaultCipher(key, append([]crypto.Option{crypto.WithKeyDeriver(deriver)}, opts...)...)
}

func (d deps) emit(c *cli.Context, value string) error {
	if c.Bool(flagCopy) {
		if err := d.copy(value); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		d.logger.Info().Msg("copied to clipboard")
		return nil
	}

	_, err := fmt.Fprintln(d.out, value)
	return err
}

func singleArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", fmt.Errorf("%w: %s expects %s", ErrWrongArguments, c.Command.Name, c.Command.ArgsUsage)
	}
	return c.Args().First(), nil
}

// promptKey reads the key from the terminal without echo.
func promptKey(errOut io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", ErrNoKey
	}

	fmt.Fprint(errOut, "Vault key: ")
	key, err := term.ReadPassword(fd)
	fmt.Fprintln(errOut)
	if err != nil {
		return "", fmt.Errorf("reading key: %w", err)
	}
	if strings.TrimSpace(string(key)) == "" {
		return "", ErrNoKey
	}

	return string(key), nil
}
