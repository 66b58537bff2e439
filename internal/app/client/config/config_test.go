package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("SERVER_URL", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "")
	t.Setenv("ASSUME_YES", "")
	t.Setenv("CONFIG_DIR", "/tmp/fitclub_test")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, EnvLocal, cfg.Env)
	assert.Equal(t, "http://localhost:3000", cfg.ServerURL)
	assert.Empty(t, cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.AssumeYes)
	assert.Equal(t, "/tmp/fitclub_test", cfg.ConfigDir)
	assert.True(t, cfg.IsLocal())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("SERVER_URL", "https://gym.example.com/")
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "5")
	t.Setenv("ASSUME_YES", "true")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.True(t, cfg.IsProd())
	assert.Equal(t, "https://gym.example.com", cfg.ServerURL)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.AssumeYes)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_url: http://10.0.0.5:3000\napp_env: dev\n"), 0o600))
	t.Setenv("APP_ENV", "")
	t.Setenv("SERVER_URL", "")

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:3000", cfg.ServerURL)
	assert.True(t, cfg.IsDev())
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{Env: EnvLocal, ServerURL: "http://localhost:3000", LogLevel: "info", RequestTimeout: time.Second}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "bad env", mutate: func(c *Config) { c.Env = "staging" }, wantErr: true},
		{name: "bad url", mutate: func(c *Config) { c.ServerURL = "localhost" }, wantErr: true},
		{name: "empty url", mutate: func(c *Config) { c.ServerURL = "" }, wantErr: true},
		{name: "bad level", mutate: func(c *Config) { c.LogLevel = "trace" }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.RequestTimeout = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
