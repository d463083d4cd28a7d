package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/nestify/internal/flagx"
	"github.com/dmitrijs2005/nestify/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent
// fields leave the current value alone.
type JsonConfig struct {
	APIBaseURL       *string         `json:"api_base_url"`
	StorePath        *string         `json:"store_path"`
	StorageKeyPrefix *string         `json:"storage_key_prefix"`
	OTPLength        *int            `json:"otp_length"`
	PreferDark       *bool           `json:"prefer_dark"`
	LogLevel         *string         `json:"log_level"`
	LogFormat        *string         `json:"log_format"`
	HTTPTimeout      *timex.Duration `json:"http_timeout"`
}

// parseJson overlays cfg with the file named by -c or -config, if any.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setIf(&cfg.APIBaseURL, jc.APIBaseURL)
	setIf(&cfg.StorePath, jc.StorePath)
	setIf(&cfg.StorageKeyPrefix, jc.StorageKeyPrefix)
	setIf(&cfg.OTPLength, jc.OTPLength)
	setIf(&cfg.PreferDark, jc.PreferDark)
	setIf(&cfg.LogLevel, jc.LogLevel)
	setIf(&cfg.LogFormat, jc.LogFormat)
	if jc.HTTPTimeout != nil {
		cfg.HTTPTimeout = jc.HTTPTimeout.Duration
	}
	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
