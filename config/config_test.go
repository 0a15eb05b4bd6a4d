package config

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultListenAddress, cfg.ListenAddress)
	assert.Equal(t, DefaultIAAPIURL, cfg.IAAPIURL)
	assert.Equal(t, "http://localhost:8000/diagnostico", cfg.TargetURL())
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, int64(DefaultMaxResponseBytes), cfg.MaxResponseBytes)
	assert.Equal(t, http.StatusBadGateway, cfg.FailureStatus)
	assert.Equal(t, "/api/prueba-ia", cfg.APIURL)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
	assert.Empty(t, cfg.Auth.JWTSecret)
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("IA_API_URL", "http://ia-diagnostico:8000///")
	t.Setenv("TIMEOUT", "5s")
	t.Setenv("FAILURE_STATUS", "200")
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://localhost:5173,http://localhost:8080")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "http://ia-diagnostico:8000/diagnostico", cfg.TargetURL())
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, http.StatusOK, cfg.FailureStatus)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:8080"}, cfg.CORS.AllowOrigins)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeFile(t, "relay.yaml", `
listen_address: 127.0.0.1:9000
ia_api_url: http://inference.internal:8000/
timeout: 12s
log:
  level: debug
  format: json
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddress)
	assert.Equal(t, "http://inference.internal:8000/diagnostico", cfg.TargetURL())
	assert.Equal(t, 12*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfigLiteralAddress(t *testing.T) {
	t.Setenv("DIAGNOSTICO_URL", "http://fixed.example:8000/diagnostico/")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://fixed.example:8000/diagnostico/", cfg.TargetURL())
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoadConfigInvalidURL(t *testing.T) {
	t.Setenv("IA_API_URL", "ia-diagnostico:8000")

	_, err := LoadConfig("", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidURL)
}

func TestLoadConfigInvalidFailureStatus(t *testing.T) {
	t.Setenv("FAILURE_STATUS", "42")

	_, err := LoadConfig("", nil)
	require.Error(t, err)
}

func TestLoadConfigListenFlag(t *testing.T) {
	var cli CliConfig
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cli.BindFlags(fs)
	require.NoError(t, fs.Parse([]string{"--listen", "127.0.0.1:7000", "-d"}))

	cfg, err := LoadConfig("", fs)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", cfg.ListenAddress)
	assert.True(t, cli.Debug)
}

func TestLoadDotEnv(t *testing.T) {
	path := writeFile(t, ".env", "IA_API_URL=http://from-dotenv:8000\n")
	t.Setenv("IA_API_URL", "")
	os.Unsetenv("IA_API_URL")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "http://from-dotenv:8000", os.Getenv("IA_API_URL"))

	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
	require.NoError(t, LoadDotEnv(""))
}
