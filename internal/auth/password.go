package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// saltBytes is the number of random salt bytes per account.
const saltBytes = 16

// NewSalt generates a random hex-encoded salt.
func NewSalt() (string, error) {
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashPassword computes the stored credential hash for a password and its
// hex-encoded salt: hex(SHA256(salt || password)).
//
// This is the app's durable on-disk format: databases written by earlier
// releases must keep verifying, so the scheme cannot change without a
// data migration.
func HashPassword(salt, password string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword checks a candidate password against the stored salt and
// hash. The comparison is constant-time so verification timing leaks
// nothing about how much of the hash matched.
func VerifyPassword(password, salt, storedHash string) bool {
	candidate := HashPassword(salt, password)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(storedHash)) == 1
}
