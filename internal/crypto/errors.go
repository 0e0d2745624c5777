// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

// Sentinel errors returned by the vault primitive. Callers should match them
// with [errors.Is]; the wrapped message carries the concrete cause.
var (
	// ErrConfiguration is returned by [NewVaultCipher] when the key material
	// is empty or the key deriver cannot produce a usable key. It is fatal at
	// startup.
	ErrConfiguration = errors.New("vault configuration error")

	// ErrEncryption is returned by Seal when the underlying primitive fails,
	// for example when the random source cannot supply a nonce.
	ErrEncryption = errors.New("vault encryption error")

	// ErrDecryption is returned by Open for malformed envelopes, wrong field
	// lengths, tampered data or a key mismatch. The cases are intentionally
	// indistinguishable to callers.
	ErrDecryption = errors.New("vault decryption error")

	// ErrNotEnvelope marks a value that does not have three colon-separated
	// fields. It is always wrapped together with [ErrDecryption].
	ErrNotEnvelope = errors.New("value is not a sealed envelope")

	// ErrUnknownKDF is returned by [ParseKDF] for an unsupported name.
	ErrUnknownKDF = errors.New("unknown key derivation function")
)
