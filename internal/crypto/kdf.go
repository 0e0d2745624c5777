// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"
)

// Names accepted by [ParseKDF].
const (
	KDFHKDF     = "hkdf"
	KDFArgon2id = "argon2id"
)

var (
	// vaultSalt is fixed so that the same key material always yields the same
	// vault key across restarts and instances.
	vaultSalt = []byte("eagle-pass/vault/v1")
	vaultInfo = []byte("field-encryption")
)

// hkdfDeriver expands high-entropy key material with HKDF-SHA256.
type hkdfDeriver struct {
	salt []byte
	info []byte
}

// NewHKDFDeriver returns the default [KeyDeriver]. It suits random secrets
// such as the 64-hex-character keys printed by "vaultctl keygen".
func NewHKDFDeriver() KeyDeriver {
	return &hkdfDeriver{salt: vaultSalt, info: vaultInfo}
}

// DeriveKey implements [KeyDeriver].
func (d *hkdfDeriver) DeriveKey(material []byte) ([]byte, error) {
	if len(material) == 0 {
		return nil, fmt.Errorf("%w: empty key material", ErrConfiguration)
	}

	key := make([]byte, KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, material, d.salt, d.info), key); err != nil {
		return nil, fmt.Errorf("%w: hkdf expand: %w", ErrConfiguration, err)
	}

	return key, nil
}

// argon2idDeriver stretches low-entropy passphrases with Argon2id.
type argon2idDeriver struct {
	salt    []byte
	time    uint32
	memory  uint32
	threads uint8
}

// NewArgon2idDeriver returns a [KeyDeriver] for operators who configure a
// human-chosen passphrase instead of a random key. Parameters:
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//
// Derivation runs once per process, so the memory cost is paid at startup only.
func NewArgon2idDeriver() KeyDeriver {
	return &argon2idDeriver{
		salt:    vaultSalt,
		time:    1,
		memory:  64 * 1024,
		threads: 4,
	}
}

// DeriveKey implements [KeyDeriver].
func (d *argon2idDeriver) DeriveKey(material []byte) ([]byte, error) {
	if len(material) == 0 {
		return nil, fmt.Errorf("%w: empty key material", ErrConfiguration)
	}

	return argon2.IDKey(material, d.salt, d.time, d.memory, d.threads, KeySize), nil
}

// ParseKDF maps a configuration name to a [KeyDeriver]. An empty name selects
// HKDF.
func ParseKDF(name string) (KeyDeriver, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", KDFHKDF:
		return NewHKDFDeriver(), nil
	case KDFArgon2id:
		return NewArgon2idDeriver(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKDF, name)
	}
}

// NewKeyMaterial returns size random bytes encoded as lowercase hex, suitable
// for the APP_SECRET_KEY setting.
func NewKeyMaterial(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("%w: key size must be positive, got %d", ErrConfiguration, size)
	}

	buf := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
