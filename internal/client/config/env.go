package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	envPrefix  = "NESTIFY_"
	dotEnvFile = ".env"
)

// parseEnv loads dotenv (if the file exists) into the process environment
// and overlays cfg with NESTIFY_* variables. Variables already set in the
// environment win over the file; unset variables leave cfg alone.
func parseEnv(cfg *Config, dotenv string) error {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil {
			var pathErr *os.PathError
			if !errors.As(err, &pathErr) {
				return fmt.Errorf("load %s: %w", dotenv, err)
			}
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}
