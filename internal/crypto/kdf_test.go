package crypto

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
)

func TestHKDFDeriver_DeterministicForSameInput(t *testing.T) {
	d := NewHKDFDeriver()

	k1, err := d.DeriveKey([]byte("material"))
	if err != nil {
		t.Fatalf("DeriveKey error: %v", err)
	}
	k2, err := d.DeriveKey([]byte("material"))
	if err != nil {
		t.Fatalf("DeriveKey error: %v", err)
	}

	if len(k1) != KeySize {
		t.Fatalf("key length = %d, want %d", len(k1), KeySize)
	}
	if !bytes.Equal(k1, k2) {
		t.Fatal("expected identical keys for identical material")
	}
}

func TestHKDFDeriver_DifferentMaterialDifferentKeys(t *testing.T) {
	d := NewHKDFDeriver()

	k1, _ := d.DeriveKey([]byte("material-1"))
	k2, _ := d.DeriveKey([]byte("material-2"))
	if bytes.Equal(k1, k2) {
		t.Fatal("expected different keys for different material")
	}
}

func TestHKDFDeriver_EmptyMaterial(t *testing.T) {
	if _, err := NewHKDFDeriver().DeriveKey(nil); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestArgon2idDeriver_DeterministicAndSized(t *testing.T) {
	d := NewArgon2idDeriver()

	k1, err := d.DeriveKey([]byte("correct horse battery staple"))
	if err != nil {
		t.Fatalf("DeriveKey error: %v", err)
	}
	k2, _ := d.DeriveKey([]byte("correct horse battery staple"))

	if len(k1) != KeySize {
		t.Fatalf("key length = %d, want %d", len(k1), KeySize)
	}
	if !bytes.Equal(k1, k2) {
		t.Fatal("expected identical keys for identical passphrase")
	}
}

func TestArgon2idDeriver_EmptyMaterial(t *testing.T) {
	if _, err := NewArgon2idDeriver().DeriveKey([]byte{}); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestParseKDF(t *testing.T) {
	cases := []struct {
		name    string
		want    any
		wantErr bool
	}{
		{"", &hkdfDeriver{}, false},
		{"hkdf", &hkdfDeriver{}, false},
		{" HKDF ", &hkdfDeriver{}, false},
		{"argon2id", &argon2idDeriver{}, false},
		{"pbkdf2", nil, true},
	}

	for _, tc := range cases {
		d, err := ParseKDF(tc.name)
		if tc.wantErr {
			if !errors.Is(err, ErrUnknownKDF) {
				t.Errorf("ParseKDF(%q): expected ErrUnknownKDF, got %v", tc.name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseKDF(%q): unexpected error %v", tc.name, err)
			continue
		}
		switch tc.want.(type) {
		case *hkdfDeriver:
			if _, ok := d.(*hkdfDeriver); !ok {
				t.Errorf("ParseKDF(%q) = %T, want *hkdfDeriver", tc.name, d)
			}
		case *argon2idDeriver:
			if _, ok := d.(*argon2idDeriver); !ok {
				t.Errorf("ParseKDF(%q) = %T, want *argon2idDeriver", tc.name, d)
			}
		}
	}
}

func TestNewKeyMaterial(t *testing.T) {
	k1, err := NewKeyMaterial(32)
	if err != nil {
		t.Fatalf("NewKeyMaterial error: %v", err)
	}
	k2, _ := NewKeyMaterial(32)

	raw, err := hex.DecodeString(k1)
	if err != nil {
		t.Fatalf("key material is not hex: %v", err)
	}
	if len(raw) != 32 {
		t.Fatalf("decoded length = %d, want 32", len(raw))
	}
	if k1 == k2 {
		t.Fatal("expected random key material to differ")
	}

	if _, err := NewKeyMaterial(0); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration for zero size, got %v", err)
	}
}
