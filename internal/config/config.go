// Package config handles configuration for the identity console, including
// defaults, environment variables, a JSON or YAML file overlay, and
// command-line flags.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings.
//
// Fields:
//   - LogLevel / LogFormat: slog level ("debug".."error") and handler ("text" or "json").
//   - SecretKey: HMAC secret for signing access tokens (HS256). Do not use the default in prod.
//   - TokenValidityDuration: access token lifetime.
//   - BcryptCost: password hashing cost.
//   - MaxFailedAccessAttempts / LockoutDuration: sign-in lockout policy.
//   - LockoutOnNewUsers: LockoutEnabled value for registered users.
//   - PasswordMinLength: shortest password Register accepts.
//   - RecoveryCodeCount: number of codes GenerateRecoveryCodes issues.
//   - RetainSideTablesOnDelete: keep claims, roles, logins, keys and codes of deleted users.
//   - SeedFile: optional YAML fixture loaded at start-up.
type Config struct {
	LogLevel                 string        `env:"LOG_LEVEL"`
	LogFormat                string        `env:"LOG_FORMAT"`
	SecretKey                string        `env:"SECRET_KEY"`
	TokenValidityDuration    time.Duration `env:"TOKEN_VALIDITY"`
	BcryptCost               int           `env:"BCRYPT_COST"`
	MaxFailedAccessAttempts  int           `env:"MAX_FAILED_ACCESS_ATTEMPTS"`
	LockoutDuration          time.Duration `env:"LOCKOUT_DURATION"`
	LockoutOnNewUsers        bool          `env:"LOCKOUT_ON_NEW_USERS"`
	PasswordMinLength        int           `env:"PASSWORD_MIN_LENGTH"`
	RecoveryCodeCount        int           `env:"RECOVERY_CODE_COUNT"`
	RetainSideTablesOnDelete bool          `env:"RETAIN_SIDE_TABLES_ON_DELETE"`
	SeedFile                 string        `env:"SEED_FILE"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey must be overridden outside of local use.
func (c *Config) LoadDefaults() {
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.SecretKey = "secretKey"
	c.TokenValidityDuration = 15 * time.Minute
	c.BcryptCost = 10
	c.MaxFailedAccessAttempts = 5
	c.LockoutDuration = 5 * time.Minute
	c.LockoutOnNewUsers = true
	c.PasswordMinLength = 6
	c.RecoveryCodeCount = 10
	c.RetainSideTablesOnDelete = false
	c.SeedFile = ""
}

// LoadConfig builds a Config by applying defaults, then overlaying IDENTITY_*
// environment variables, an optional config file and finally command-line
// flags. Invalid input in any source panics.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, nil)
	parseFile(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}
