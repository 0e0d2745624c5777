// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
)

// VaultCipher is the production [Cipher]. It owns a single AES-256-GCM key
// derived once at construction and never exposes it.
//
// A VaultCipher is immutable after [NewVaultCipher] returns and is safe for
// concurrent use by any number of goroutines.
type VaultCipher struct {
	aead   cipher.AEAD
	random io.Reader
	strict bool
}

type vaultOptions struct {
	deriver KeyDeriver
	random  io.Reader
	strict  bool
}

// Option customizes a [VaultCipher] at construction time.
type Option func(*vaultOptions)

// WithKeyDeriver replaces the default HKDF-SHA256 deriver.
func WithKeyDeriver(deriver KeyDeriver) Option {
	return func(o *vaultOptions) {
		if deriver != nil {
			o.deriver = deriver
		}
	}
}

// WithStrictEnvelopes makes Open reject values that are not three-field
// envelopes instead of returning them unchanged as legacy plaintext.
func WithStrictEnvelopes() Option {
	return func(o *vaultOptions) {
		o.strict = true
	}
}

// WithRandom overrides the nonce source. Only tests should need it.
func WithRandom(r io.Reader) Option {
	return func(o *vaultOptions) {
		if r != nil {
			o.random = r
		}
	}
}

// NewVaultCipher derives the vault key from keyMaterial and prepares the AEAD.
//
// keyMaterial may have any length; it is stretched by the configured
// [KeyDeriver] and never truncated. Empty or whitespace-only material returns
// an error wrapping [ErrConfiguration].
func NewVaultCipher(keyMaterial string, opts ...Option) (*VaultCipher, error) {
	if strings.TrimSpace(keyMaterial) == "" {
		return nil, fmt.Errorf("%w: secret key is not set", ErrConfiguration)
	}

	o := vaultOptions{
		deriver: NewHKDFDeriver(),
		random:  rand.Reader,
	}
	for _, opt := range opts {
		opt(&o)
	}

	key, err := o.deriver.DeriveKey([]byte(keyMaterial))
	if err != nil {
		return nil, fmt.Errorf("%w: deriving vault key: %w", ErrConfiguration, err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: derived key is %d bytes, want %d", ErrConfiguration, len(key), KeySize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: aes.NewCipher: %w", ErrConfiguration, err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: cipher.NewGCM: %w", ErrConfiguration, err)
	}

	return &VaultCipher{
		aead:   aead,
		random: o.random,
		strict: o.strict,
	}, nil
}

// Seal implements [Cipher].
func (v *VaultCipher) Seal(plaintext string) (string, error) {
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(v.random, nonce); err != nil {
		return "", fmt.Errorf("%w: generating nonce: %w", ErrEncryption, err)
	}

	// GCM appends the tag to the ciphertext.
	sealed := v.aead.Seal(nil, nonce, []byte(plaintext), nil)
	split := len(sealed) - TagSize

	return Envelope{
		Nonce:      nonce,
		Ciphertext: sealed[:split],
		Tag:        sealed[split:],
	}.String(), nil
}

// Open implements [Cipher].
func (v *VaultCipher) Open(value string) (string, error) {
	envelope, err := ParseEnvelope(value)
	if err != nil {
		if errors.Is(err, ErrNotEnvelope) && !v.strict {
			return value, nil
		}
		return "", err
	}

	sealed := make([]byte, 0, len(envelope.Ciphertext)+len(envelope.Tag))
	sealed = append(sealed, envelope.Ciphertext...)
	sealed = append(sealed, envelope.Tag...)

	plaintext, err := v.aead.Open(nil, envelope.Nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: authentication failed", ErrDecryption)
	}

	return string(plaintext), nil
}

// Strict reports whether the legacy plaintext fallback is disabled.
func (v *VaultCipher) Strict() bool {
	return v.strict
}
