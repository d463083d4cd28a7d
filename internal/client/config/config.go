package config

import "time"

// Config holds runtime settings for the Nestify console.
//
// Fields:
//   - APIBaseURL: root of the backend API, e.g. "http://localhost:8000/api".
//   - StorePath: SQLite file holding the session and theme.
//   - StorageKeyPrefix: prefix of the persisted keys ("nestify_token", ...).
//   - OTPLength: digits a one-time code must have before it can be verified.
//   - PreferDark: system theme preference used when none is persisted.
//   - LogLevel, LogFormat: slog level name and "text" or "json".
//   - HTTPTimeout: per-request timeout; 0 disables it.
type Config struct {
	APIBaseURL       string        `env:"API_BASE_URL"`
	StorePath        string        `env:"STORE_PATH"`
	StorageKeyPrefix string        `env:"STORAGE_KEY_PREFIX"`
	OTPLength        int           `env:"OTP_LENGTH"`
	PreferDark       bool          `env:"PREFER_DARK"`
	LogLevel         string        `env:"LOG_LEVEL"`
	LogFormat        string        `env:"LOG_FORMAT"`
	HTTPTimeout      time.Duration `env:"HTTP_TIMEOUT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000/api"
	c.StorePath = "nestify.db"
	c.StorageKeyPrefix = "nestify_"
	c.OTPLength = 6
	c.PreferDark = false
	c.LogLevel = "warn"
	c.LogFormat = "text"
	c.HTTPTimeout = 0
}

// LoadConfig constructs a Config from args (without the program name):
// defaults, then the JSON file, then .env and the environment, then flags.
// Later sources take precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, dotEnvFile); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
