// Package config loads runtime configuration for the Nestify console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. A .env file in the working directory, then NESTIFY_* environment
//     variables (variables already in the environment win over .env).
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string    backend API base URL
//	-s string    path of the local SQLite store
//	-l string    log level
//	-t duration  HTTP request timeout
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "10s"
// or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8000/api",
//	  "store_path": "nestify.db",
//	  "storage_key_prefix": "nestify_",
//	  "otp_length": 6,
//	  "prefer_dark": true,
//	  "log_level": "info",
//	  "log_format": "json",
//	  "http_timeout": "10s"
//	}
//
// # Environment
//
//	NESTIFY_API_BASE_URL, NESTIFY_STORE_PATH, NESTIFY_STORAGE_KEY_PREFIX,
//	NESTIFY_OTP_LENGTH, NESTIFY_PREFER_DARK, NESTIFY_LOG_LEVEL,
//	NESTIFY_LOG_FORMAT, NESTIFY_HTTP_TIMEOUT
package config
