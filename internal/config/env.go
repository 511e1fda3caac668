package config

import "github.com/caarlos0/env/v11"

// EnvPrefix is prepended to every variable name in the Config env tags.
const EnvPrefix = "IDENTITY_"

// parseEnv overlays cfg with IDENTITY_* variables. Unset variables leave the
// current value alone. environ replaces the process environment when not nil.
func parseEnv(cfg *Config, environ map[string]string) {
	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		panic(err)
	}
}
