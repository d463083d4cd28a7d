package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() Config {
	var c Config
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://localhost:8000/api", c.APIBaseURL)
	assert.Equal(t, "nestify.db", c.StorePath)
	assert.Equal(t, "nestify_", c.StorageKeyPrefix)
	assert.Equal(t, 6, c.OTPLength)
	assert.Equal(t, "text", c.LogFormat)
	assert.Zero(t, c.HTTPTimeout)
}

func TestLoadConfig_DefaultsWhenNothingSet(t *testing.T) {
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), *cfg))
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeTempJSON(t, "", "", map[string]any{
		"api_base_url": "http://json:1/api",
		"store_path":   "json.db",
		"log_level":    "info",
		"http_timeout": "5s",
	})
	t.Setenv("NESTIFY_STORE_PATH", "env.db")
	t.Setenv("NESTIFY_OTP_LENGTH", "4")

	cfg, err := LoadConfig([]string{"-c", path, "-a", "http://flag:2/api"})
	require.NoError(t, err)

	want := defaults()
	want.APIBaseURL = "http://flag:2/api" // flag over json
	want.StorePath = "env.db"             // env over json
	want.LogLevel = "info"                // json over default
	want.OTPLength = 4
	want.HTTPTimeout = 5 * time.Second
	assert.Empty(t, cmp.Diff(want, *cfg))
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig([]string{"-c", filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)

	t.Setenv("NESTIFY_OTP_LENGTH", "six")
	_, err = LoadConfig(nil)
	require.Error(t, err)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    Config
		wantErr bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "https://api.example/api", "-s", "/tmp/n.db", "-l", "debug", "-t", "3s"},
			want: Config{APIBaseURL: "https://api.example/api", StorePath: "/tmp/n.db", LogLevel: "debug", HTTPTimeout: 3 * time.Second},
		},
		{
			name: "foreign flags ignored",
			args: []string{"-c", "cfg.json", "-x", "-s=other.db"},
			want: Config{StorePath: "other.db"},
		},
		{name: "bad duration", args: []string{"-t", "soon"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			err := parseFlags(cfg, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.want, *cfg))
		})
	}
}

func TestParseEnv(t *testing.T) {
	t.Run("environment overlays", func(t *testing.T) {
		t.Setenv("NESTIFY_API_BASE_URL", "http://env/api")
		t.Setenv("NESTIFY_PREFER_DARK", "true")
		t.Setenv("NESTIFY_HTTP_TIMEOUT", "250ms")

		cfg := defaults()
		require.NoError(t, parseEnv(&cfg, ""))

		want := defaults()
		want.APIBaseURL = "http://env/api"
		want.PreferDark = true
		want.HTTPTimeout = 250 * time.Millisecond
		assert.Empty(t, cmp.Diff(want, cfg))
	})

	t.Run("dotenv file, environment wins", func(t *testing.T) {
		dotenv := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(dotenv, []byte("NESTIFY_LOG_FORMAT=json\nNESTIFY_STORAGE_KEY_PREFIX=file_\n"), 0o600))
		t.Setenv("NESTIFY_STORAGE_KEY_PREFIX", "env_")
		t.Cleanup(func() { _ = os.Unsetenv("NESTIFY_LOG_FORMAT") })

		cfg := defaults()
		require.NoError(t, parseEnv(&cfg, dotenv))
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "env_", cfg.StorageKeyPrefix)
	})

	t.Run("missing dotenv is fine", func(t *testing.T) {
		cfg := defaults()
		require.NoError(t, parseEnv(&cfg, filepath.Join(t.TempDir(), ".env")))
		assert.Empty(t, cmp.Diff(defaults(), cfg))
	})
}
