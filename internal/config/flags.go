package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/identitystore/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-l string   log level
//	-s string   token HMAC secret key
//	-t int      token validity, minutes
//	-m int      failed sign-ins before lockout
//	-k int      lockout duration, minutes
//	-p int      minimum password length
//	-f string   seed fixture file
//
// args is filtered with flagx.FilterArgs first, so flags owned by other
// components (-c) do not trip the parser. Duration flags are whole minutes.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-l", "-s", "-t", "-m", "-k", "-p", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token_validity_duration (in minutes)")
	lockoutDuration := fs.Int("k", int(config.LockoutDuration.Minutes()), "lockout_duration (in minutes)")

	fs.IntVar(&config.MaxFailedAccessAttempts, "m", config.MaxFailedAccessAttempts, "max failed access attempts")
	fs.IntVar(&config.PasswordMinLength, "p", config.PasswordMinLength, "minimum password length")
	fs.StringVar(&config.SeedFile, "f", config.SeedFile, "seed file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// durations change only when given; the minute form is lossy
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
		case "k":
			config.LockoutDuration = time.Duration(*lockoutDuration) * time.Minute
		}
	})
}
