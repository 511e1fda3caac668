package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseFlags(t *testing.T) {
	t.Run("all flags", func(t *testing.T) {
		var c Config
		c.LoadDefaults()

		parseFlags(&c, []string{
			"-c", "ignored.json",
			"-l", "debug",
			"-s", "flag-secret",
			"-t", "60",
			"-m", "2",
			"-k", "10",
			"-p", "8",
			"-f", "seed.yml",
			"-unknown", "value",
		})

		assert.Equal(t, "debug", c.LogLevel)
		assert.Equal(t, "flag-secret", c.SecretKey)
		assert.Equal(t, time.Hour, c.TokenValidityDuration)
		assert.Equal(t, 2, c.MaxFailedAccessAttempts)
		assert.Equal(t, 10*time.Minute, c.LockoutDuration)
		assert.Equal(t, 8, c.PasswordMinLength)
		assert.Equal(t, "seed.yml", c.SeedFile)
	})

	t.Run("durations untouched without their flags", func(t *testing.T) {
		c := Config{TokenValidityDuration: 90 * time.Second, LockoutDuration: 30 * time.Second}

		parseFlags(&c, []string{"-l", "warn"})

		assert.Equal(t, 90*time.Second, c.TokenValidityDuration)
		assert.Equal(t, 30*time.Second, c.LockoutDuration)
	})

	t.Run("bad value → panics", func(t *testing.T) {
		var c Config
		require.Panics(t, func() { parseFlags(&c, []string{"-m", "many"}) })
	})
}
