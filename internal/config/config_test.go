package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, 1500*time.Millisecond, cfg.Gemini.MockLatency)
	assert.True(t, cfg.Gemini.Offline())
	assert.Equal(t, "matchmaking_events", cfg.RabbitMQ.Exchange)
	assert.False(t, cfg.R2.Enabled())
	assert.Equal(t, 120, cfg.API.RateLimit)
	assert.Equal(t, []string{"*"}, cfg.API.CORSOrigins)
	assert.Equal(t, 30*time.Minute, cfg.API.SessionIdleTimeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GOOGLE_API_KEY", "key")
	t.Setenv("MOCK_LATENCY", "250ms")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SESSION_IDLE_TIMEOUT", "5m")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.False(t, cfg.Gemini.Offline())
	assert.Equal(t, 250*time.Millisecond, cfg.Gemini.MockLatency)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.API.CORSOrigins)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 5*time.Minute, cfg.API.SessionIdleTimeout)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 7000
gemini:
  model: gemini-2.5-pro
rabbitmq:
  exchange: file_exchange
`), 0o600))
	t.Setenv("RABBITMQ_EXCHANGE", "env_exchange")

	cfg, err := load(path)
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "gemini-2.5-pro", cfg.Gemini.Model)
	assert.Equal(t, "env_exchange", cfg.RabbitMQ.Exchange)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"port out of range": {"PORT": "70000"},
		"partial r2":        {"R2_BUCKET": "cvs"},
		"negative rate":     {"API_RATE_LIMIT": "-1"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := load("")
			assert.Error(t, err)
		})
	}
}

func TestLoad_FullR2(t *testing.T) {
	t.Setenv("R2_ACCOUNT_ID", "acct")
	t.Setenv("R2_BUCKET", "cvs")
	t.Setenv("R2_ACCESS_KEY", "ak")
	t.Setenv("R2_SECRET_KEY", "sk")

	cfg, err := load("")
	require.NoError(t, err)
	assert.True(t, cfg.R2.Enabled())
	assert.Equal(t, "cvs", cfg.R2.Bucket)
}
