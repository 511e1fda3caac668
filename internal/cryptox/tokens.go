package cryptox

import (
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/identitystore/internal/common"
)

// NewSecurityStamp returns a fresh random stamp. Any change of it invalidates
// tokens issued against the previous one.
func NewSecurityStamp() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// NewConcurrencyStamp returns a fresh version marker for a record.
func NewConcurrencyStamp() string {
	return uuid.NewString()
}

// GenerateRecoveryCode returns a code of the form "xxxxx-xxxxx" (lowercase hex).
func GenerateRecoveryCode() (string, error) {
	raw, err := common.MakeRandHexString(common.RecoveryCodeHalfSize * 2)
	if err != nil {
		return "", fmt.Errorf("recovery code: %w", err)
	}
	return raw[:5] + "-" + raw[5:10], nil
}

// GenerateRecoveryCodes returns n distinct recovery codes. n below zero
// yields none.
func GenerateRecoveryCodes(n int) ([]string, error) {
	n = max(n, 0)
	seen := make(map[string]struct{}, n)
	codes := make([]string, 0, n)
	for len(codes) < n {
		c, err := GenerateRecoveryCode()
		if err != nil {
			return nil, err
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		codes = append(codes, c)
	}
	return codes, nil
}

// GenerateAuthenticatorKey returns a base32 (RFC 4648, unpadded) shared
// secret suitable for TOTP authenticator apps.
func GenerateAuthenticatorKey() string {
	b := common.GenerateRandByteArray(common.AuthenticatorKeySize)
	defer common.WipeByteArray(b)
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(b)
}
