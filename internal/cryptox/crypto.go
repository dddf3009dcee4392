// Package cryptox wraps password hashing for stored credentials.
//
// Hashes are bcrypt strings: salted, one-way, and self-describing (cost and
// salt are embedded), so verification needs only the stored bytes.
package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword is returned when attempting to hash an empty password.
var ErrEmptyPassword = errors.New("password cannot be empty")

// PasswordHasher produces and verifies salted password hashes.
type PasswordHasher interface {
	// Hash returns a freshly salted hash of password.
	Hash(password []byte) ([]byte, error)

	// Verify reports whether password matches hash.
	// Returns (true, nil) on match, (false, nil) on mismatch, or an error if
	// hash is malformed.
	Verify(password, hash []byte) (bool, error)
}

// BcryptHasher implements PasswordHasher using bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given cost. A cost outside the
// range accepted by bcrypt falls back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns the bcrypt hash of password.
func (h *BcryptHasher) Hash(password []byte) ([]byte, error) {
	if len(password) == 0 {
		return nil, ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword(password, h.cost)
	if err != nil {
		return nil, fmt.Errorf("bcrypt hash: %w", err)
	}
	return hash, nil
}

// Verify compares password against hash in constant time.
func (h *BcryptHasher) Verify(password, hash []byte) (bool, error) {
	err := bcrypt.CompareHashAndPassword(hash, password)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("bcrypt verify: %w", err)
	}
}
