package auth

import (
	"errors"
	"strings"
)

// minPasswordLength is the minimum accepted password length at sign-up.
const minPasswordLength = 6

// User is the internal row shape of the users table.
// PasswordHash and Salt never leave this package.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Salt         string
	CreatedAt    int64 // epoch ms
}

// Account is the public view of a user returned by SignUp, Login and
// CurrentUser. It deliberately carries no credential material.
type Account struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// Sentinel errors for auth operations.
var (
	// ErrInvalidCredentials covers both "no such user" and "wrong
	// password"; the two must not be distinguishable by the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrEmailAlreadyUsed = errors.New("email already used")
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
)

// NormalizeEmail canonicalises an email address for storage and lookup:
// surrounding whitespace is trimmed and the address is lowercased, making
// email matching case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateCredentials checks sign-up input at the caller boundary.
// The repositories trust well-typed input and do not re-validate.
func ValidateCredentials(email, password string) error {
	email = NormalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
