package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/identitystore/internal/flagx"
	"github.com/dmitrijs2005/identitystore/internal/timex"
)

// FileConfig is the DTO read from a config file. Durations use timex.Duration
// so both "15m" and integer nanoseconds are accepted. Absent keys keep the
// value from the earlier sources; pointers distinguish "false" from absent.
type FileConfig struct {
	LogLevel                 string         `json:"log_level" yaml:"log_level"`
	LogFormat                string         `json:"log_format" yaml:"log_format"`
	SecretKey                string         `json:"secret_key" yaml:"secret_key"`
	TokenValidityDuration    timex.Duration `json:"token_validity_duration" yaml:"token_validity_duration"`
	BcryptCost               int            `json:"bcrypt_cost" yaml:"bcrypt_cost"`
	MaxFailedAccessAttempts  int            `json:"max_failed_access_attempts" yaml:"max_failed_access_attempts"`
	LockoutDuration          timex.Duration `json:"lockout_duration" yaml:"lockout_duration"`
	LockoutOnNewUsers        *bool          `json:"lockout_on_new_users" yaml:"lockout_on_new_users"`
	PasswordMinLength        int            `json:"password_min_length" yaml:"password_min_length"`
	RecoveryCodeCount        int            `json:"recovery_code_count" yaml:"recovery_code_count"`
	RetainSideTablesOnDelete *bool          `json:"retain_side_tables_on_delete" yaml:"retain_side_tables_on_delete"`
	SeedFile                 string         `json:"seed_file" yaml:"seed_file"`
}

// parseFile loads the file named by -c/-config in args into cfg. Files ending
// in .yaml or .yml are decoded as YAML, everything else as JSON. Without the
// flag nothing happens; an unreadable or invalid file panics.
func parseFile(cfg *Config, args []string) {
	path := flagx.ConfigFileFlag(args)

	// nothing to load
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		panic(err)
	}

	c.apply(cfg)
}

func (c *FileConfig) apply(cfg *Config) {
	setString(&cfg.LogLevel, c.LogLevel)
	setString(&cfg.LogFormat, c.LogFormat)
	setString(&cfg.SecretKey, c.SecretKey)
	setString(&cfg.SeedFile, c.SeedFile)

	if c.TokenValidityDuration.Duration != 0 {
		cfg.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.LockoutDuration.Duration != 0 {
		cfg.LockoutDuration = c.LockoutDuration.Duration
	}

	setInt(&cfg.BcryptCost, c.BcryptCost)
	setInt(&cfg.MaxFailedAccessAttempts, c.MaxFailedAccessAttempts)
	setInt(&cfg.PasswordMinLength, c.PasswordMinLength)
	setInt(&cfg.RecoveryCodeCount, c.RecoveryCodeCount)

	if c.LockoutOnNewUsers != nil {
		cfg.LockoutOnNewUsers = *c.LockoutOnNewUsers
	}
	if c.RetainSideTablesOnDelete != nil {
		cfg.RetainSideTablesOnDelete = *c.RetainSideTablesOnDelete
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}
