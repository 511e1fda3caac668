package common

// RecoveryCodeHalfSize is the number of random bytes encoded into each half
// of a recovery code ("xxxxx-xxxxx" after hex encoding and trimming).
const RecoveryCodeHalfSize = 3

// AuthenticatorKeySize is the number of random bytes in a fresh
// authenticator key before base32 encoding.
const AuthenticatorKeySize = 20
