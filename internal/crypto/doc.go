// Package crypto implements field-level authenticated encryption for values
// stored at rest.
//
// A [VaultCipher] turns a plaintext string into an envelope of the form
//
//	<nonce_hex>:<ciphertext_hex>:<tag_hex>
//
// using AES-256-GCM with a 12-byte random nonce and a 16-byte tag. The key is
// derived once from operator-supplied material by a [KeyDeriver]: HKDF-SHA256
// by default, or Argon2id for passphrases.
//
// Values without three colon-separated fields are treated as legacy plaintext
// written before encryption was introduced and are returned unchanged by Open.
// [WithStrictEnvelopes] turns that fallback off once all stored data has been
// sealed.
//
// The package has no knowledge of HTTP, storage or users.
package crypto
