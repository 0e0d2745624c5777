// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	// NonceSize is the AES-GCM nonce length in bytes.
	NonceSize = 12
	// TagSize is the AES-GCM authentication tag length in bytes.
	TagSize = 16
	// KeySize is the AES-256 key length in bytes.
	KeySize = 32

	envelopeSeparator = ":"
	envelopeFields    = 3
)

// Envelope is the decoded form of a sealed value.
//
// Its wire representation is three lowercase hex fields joined by ':':
//
//	<nonce_hex>:<ciphertext_hex>:<tag_hex>
//
// The ciphertext has the same length as the plaintext, so an empty plaintext
// produces an empty middle field.
type Envelope struct {
	Nonce      []byte
	Ciphertext []byte
	Tag        []byte
}

// String encodes the envelope into its wire form.
func (e Envelope) String() string {
	return hex.EncodeToString(e.Nonce) + envelopeSeparator +
		hex.EncodeToString(e.Ciphertext) + envelopeSeparator +
		hex.EncodeToString(e.Tag)
}

// ParseEnvelope decodes the wire form produced by [Envelope.String].
//
// Hex digits are accepted in either case. The nonce must decode to
// [NonceSize] bytes and the tag to [TagSize] bytes. A value without exactly
// three fields returns an error wrapping both [ErrDecryption] and
// [ErrNotEnvelope]; every other failure wraps [ErrDecryption] only.
func ParseEnvelope(value string) (Envelope, error) {
	fields := strings.Split(value, envelopeSeparator)
	if len(fields) != envelopeFields {
		return Envelope{}, fmt.Errorf("%w: %w: got %d fields", ErrDecryption, ErrNotEnvelope, len(fields))
	}

	nonce, err := hex.DecodeString(fields[0])
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: malformed nonce: %w", ErrDecryption, err)
	}
	if len(nonce) != NonceSize {
		return Envelope{}, fmt.Errorf("%w: nonce is %d bytes, want %d", ErrDecryption, len(nonce), NonceSize)
	}

	ciphertext, err := hex.DecodeString(fields[1])
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: malformed ciphertext: %w", ErrDecryption, err)
	}

	tag, err := hex.DecodeString(fields[2])
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: malformed tag: %w", ErrDecryption, err)
	}
	if len(tag) != TagSize {
		return Envelope{}, fmt.Errorf("%w: tag is %d bytes, want %d", ErrDecryption, len(tag), TagSize)
	}

	return Envelope{Nonce: nonce, Ciphertext: ciphertext, Tag: tag}, nil
}

// IsSealed reports whether value is a structurally valid envelope. It does
// not verify the tag, so a true result says nothing about which key sealed
// the value.
func IsSealed(value string) bool {
	_, err := ParseEnvelope(value)
	return err == nil
}
