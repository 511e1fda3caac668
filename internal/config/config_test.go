package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
	assert.Equal(t, "secretKey", c.SecretKey)
	assert.Equal(t, 15*time.Minute, c.TokenValidityDuration)
	assert.Equal(t, 10, c.BcryptCost)
	assert.Equal(t, 5, c.MaxFailedAccessAttempts)
	assert.Equal(t, 5*time.Minute, c.LockoutDuration)
	assert.True(t, c.LockoutOnNewUsers)
	assert.Equal(t, 6, c.PasswordMinLength)
	assert.Equal(t, 10, c.RecoveryCodeCount)
	assert.False(t, c.RetainSideTablesOnDelete)
	assert.Empty(t, c.SeedFile)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	c := LoadConfig()
	require.NotNil(t, c, "LoadConfig must not return nil")

	var want Config
	want.LoadDefaults()
	parseEnv(&want, nil)
	assert.Equal(t, want, *c)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempFile(t, "cfg.json", `{"secret_key": "from-file", "log_level": "warn"}`)

	t.Setenv("IDENTITY_SECRET_KEY", "from-env")
	t.Setenv("IDENTITY_LOG_LEVEL", "debug")
	t.Setenv("IDENTITY_RECOVERY_CODE_COUNT", "4")
	os.Args = []string{"testbin", "-c", path, "-l", "error"}

	c := LoadConfig()

	assert.Equal(t, "from-file", c.SecretKey, "file overrides env")
	assert.Equal(t, "error", c.LogLevel, "flag overrides file")
	assert.Equal(t, 4, c.RecoveryCodeCount, "env overrides defaults")
}
