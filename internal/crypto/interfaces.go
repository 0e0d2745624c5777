package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// Cipher seals plaintext credential fields into tamper-evident envelopes and
// opens them back. It is the only contract the rest of the application knows
// about field-level encryption; [*VaultCipher] is the production
// implementation.
type Cipher interface {
	// Seal encrypts plaintext under the process-wide vault key and returns the
	// wire form "<nonce_hex>:<ciphertext_hex>:<tag_hex>". Every call uses a
	// fresh random nonce, so sealing the same value twice yields different
	// strings.
	Seal(plaintext string) (string, error)

	// Open reverses Seal. Values that do not have the three-field envelope
	// shape are treated as legacy plaintext and returned unchanged unless the
	// implementation runs in strict mode. Any envelope that fails hex decoding,
	// length checks or tag verification yields an error wrapping
	// [ErrDecryption].
	Open(envelope string) (string, error)
}

// KeyDeriver stretches operator-supplied key material into the fixed-size
// AES-256 key used by [VaultCipher]. Implementations must be deterministic:
// the same material always yields the same key, otherwise previously sealed
// envelopes become unreadable.
type KeyDeriver interface {
	// DeriveKey returns a [KeySize]-byte key derived from material.
	DeriveKey(material []byte) ([]byte, error)
}
