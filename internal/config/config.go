// Package config loads service configuration from defaults, an optional
// YAML file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

var DefaultConfigPaths = []string{"config.yaml", "config.yml"}

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Gemini   GeminiConfig   `koanf:"gemini"`
	RabbitMQ RabbitMQConfig `koanf:"rabbitmq"`
	R2       R2Config       `koanf:"r2"`
	Logging  LoggingConfig  `koanf:"logging"`
	API      APIConfig      `koanf:"api"`
}

type ServerConfig struct {
	Port            int           `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// GeminiConfig leaves APIKey empty to run offline on canned responses.
type GeminiConfig struct {
	APIKey      string        `koanf:"api_key"`
	Model       string        `koanf:"model"`
	AgentModel  string        `koanf:"agent_model"`
	MockLatency time.Duration `koanf:"mock_latency"`
}

func (g GeminiConfig) Offline() bool { return g.APIKey == "" }

type RabbitMQConfig struct {
	URL      string `koanf:"url"`
	Exchange string `koanf:"exchange"`
}

type R2Config struct {
	AccountID string `koanf:"account_id"`
	Bucket    string `koanf:"bucket"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
}

// Enabled reports whether any R2 setting is present.
func (r R2Config) Enabled() bool {
	return r.AccountID != "" || r.Bucket != "" || r.AccessKey != "" || r.SecretKey != ""
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type APIConfig struct {
	// RateLimit is requests per minute per client IP. Zero disables it.
	RateLimit   int      `koanf:"rate_limit"`
	CORSOrigins []string `koanf:"cors_origins"`
	// WaitTimeout bounds how long a ?wait=true read blocks on a load.
	WaitTimeout time.Duration `koanf:"wait_timeout"`
	// SessionIdleTimeout expires matchmaking sessions nobody has touched
	// for this long. Zero keeps them until deleted.
	SessionIdleTimeout time.Duration `koanf:"session_idle_timeout"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ShutdownTimeout: 10 * time.Second,
		},
		Gemini: GeminiConfig{
			Model:       "gemini-2.5-flash",
			AgentModel:  "gemini-2.5-pro",
			MockLatency: 1500 * time.Millisecond,
		},
		RabbitMQ: RabbitMQConfig{
			Exchange: "matchmaking_events",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		API: APIConfig{
			RateLimit:   120,
			CORSOrigins: []string{"*"},
			WaitTimeout: 10 * time.Second,

			SessionIdleTimeout: 30 * time.Minute,
		},
	}
}

var envMappings = map[string]string{
	"port":                     "server.port",
	"shutdown_timeout":         "server.shutdown_timeout",
	"google_api_key":           "gemini.api_key",
	"gemini_model":             "gemini.model",
	"gemini_agent_model":       "gemini.agent_model",
	"mock_latency":             "gemini.mock_latency",
	"rabbitmq_url":             "rabbitmq.url",
	"rabbitmq_exchange":        "rabbitmq.exchange",
	"r2_account_id":            "r2.account_id",
	"r2_bucket":                "r2.bucket",
	"r2_access_key":            "r2.access_key",
	"r2_secret_key":            "r2.secret_key",
	"log_level":                "logging.level",
	"log_format":               "logging.format",
	"api_rate_limit":           "api.rate_limit",
	"cors_origins":             "api.cors_origins",
	"matchmaking_wait_timeout": "api.wait_timeout",
	"session_idle_timeout":     "api.session_idle_timeout",
}

// envTransformFunc maps an environment variable to its config path. Unknown
// variables map to "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

var sliceConfigPaths = []string{"api.cors_origins"}

// Load reads .env (if present) into the environment and builds the config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return load(findConfigFile())
}

func load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := splitSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// splitSliceFields turns comma separated env values into lists.
func splitSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		var parts []string
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must be positive"))
	}
	if c.Gemini.Model == "" {
		errs = append(errs, errors.New("gemini.model is required"))
	}
	if c.Gemini.MockLatency < 0 {
		errs = append(errs, errors.New("gemini.mock_latency must not be negative"))
	}
	if c.R2.Enabled() {
		if c.R2.AccountID == "" || c.R2.Bucket == "" || c.R2.AccessKey == "" || c.R2.SecretKey == "" {
			errs = append(errs, errors.New("r2 requires account_id, bucket, access_key and secret_key together"))
		}
	}
	if c.API.RateLimit < 0 {
		errs = append(errs, errors.New("api.rate_limit must not be negative"))
	}
	if c.API.WaitTimeout <= 0 {
		errs = append(errs, errors.New("api.wait_timeout must be positive"))
	}
	if c.API.SessionIdleTimeout < 0 {
		errs = append(errs, errors.New("api.session_idle_timeout must not be negative"))
	}

	return errors.Join(errs...)
}
