package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/bookreviews/internal/apperrors"
)

// MaxPasswordBytes is bcrypt's input limit; longer inputs would be silently truncated.
const MaxPasswordBytes = 72

var (
	// ErrInvalidPassword is returned by CheckPassword on a mismatch.
	ErrInvalidPassword = apperrors.ErrInvalidPassword
	ErrPasswordTooLong = apperrors.Validation("Password exceeds maximum length of 72 bytes")
)

// HashPassword creates a salted bcrypt hash of the password.
// A cost outside bcrypt's range falls back to bcrypt.DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a password with its hash.
func CheckPassword(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidPassword
		}
		return err
	}
	return nil
}

// VerifyPassword reports whether plaintext matches hash. Malformed hashes never match.
func VerifyPassword(hash, plaintext string) bool {
	return CheckPassword(plaintext, hash) == nil
}

// GenerateSessionSecret creates a random 32-byte secret for CSRF token signing.
func GenerateSessionSecret() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
