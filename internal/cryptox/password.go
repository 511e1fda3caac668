// Package cryptox holds the credential primitives of the identity layer:
// password hashing, stamp generation, recovery codes and authenticator keys.
package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/identitystore/internal/common"
)

// DefaultCost is used when the configured cost is outside bcrypt's range.
const DefaultCost = bcrypt.DefaultCost

// HashPassword returns the bcrypt hash of password.
//
// bcrypt only looks at the first 72 bytes; longer passwords are rejected
// with common.ErrorValidation rather than silently truncated.
func HashPassword(password []byte, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword(password, cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("hash password: %w", common.ErrorValidation)
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// VerifyPassword reports whether password matches hash. An empty or malformed
// hash never matches.
func VerifyPassword(hash string, password []byte) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), password) == nil
}
