// Package config loads application configuration with Viper. Layering is
// built-in defaults < optional YAML config file < environment variables with
// the OPSCC_ prefix (OPSCC_DATABASE_PATH overrides database.path). The
// OPENROUTER_* variables are bound without the prefix because they are
// shared secrets injected by tooling that does not know the app name.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	Seed      SeedConfig      `mapstructure:"seed"`
	Server    ServerConfig    `mapstructure:"server"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Assistant AssistantConfig `mapstructure:"assistant"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// DatabaseConfig contains storage settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"` // SQLite database file path
}

// SeedConfig locates the seed folder (users.txt + entity CSVs).
type SeedConfig struct {
	Dir string `mapstructure:"dir"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Address string `mapstructure:"address"` // listen address (e.g., ":8080")
}

// AuthConfig contains session settings.
type AuthConfig struct {
	SessionSecret string        `mapstructure:"session_secret"`
	SessionTTL    time.Duration `mapstructure:"session_ttl"`
}

// AssistantConfig contains the chat-completion endpoint settings.
type AssistantConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Format string `mapstructure:"format"` // "text" | "json"
	Level  string `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
}

func newViper(configFile string) (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault("database.path", "seed/ops_command_center.sqlite3")
	v.SetDefault("seed.dir", "seed")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("auth.session_secret", "")
	v.SetDefault("auth.session_ttl", 12*time.Hour)
	v.SetDefault("assistant.api_key", "")
	v.SetDefault("assistant.model", "deepseek/deepseek-chat")
	v.SetDefault("assistant.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.level", "info")

	v.SetEnvPrefix("OPSCC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unprefixed passthroughs, matching what deployment tooling exports.
	_ = v.BindEnv("assistant.api_key", "OPENROUTER_API_KEY", "OPSCC_ASSISTANT_API_KEY")
	_ = v.BindEnv("assistant.model", "OPENROUTER_MODEL", "OPSCC_ASSISTANT_MODEL")
	_ = v.BindEnv("assistant.base_url", "OPENROUTER_BASE_URL", "OPSCC_ASSISTANT_BASE_URL")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}
	return v, nil
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Assistant.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Assistant.BaseURL), "/")
	cfg.Assistant.APIKey = strings.TrimSpace(cfg.Assistant.APIKey)
	return &cfg, nil
}

// Load loads configuration from the optional config file and environment.
// A session secret is required; use LoadWithDefaults in development.
func Load(configFile string) (*Config, error) {
	v, err := newViper(configFile)
	if err != nil {
		return nil, err
	}
	cfg, err := unmarshal(v)
	if err != nil {
		return nil, err
	}
	if cfg.Auth.SessionSecret == "" {
		return nil, fmt.Errorf("OPSCC_AUTH_SESSION_SECRET is not set; required for production")
	}
	return cfg, nil
}

// LoadWithDefaults is like Load but falls back to a development session
// secret. WARNING: Only use in development! Use Load() in production.
func LoadWithDefaults(configFile string) (*Config, error) {
	v, err := newViper(configFile)
	if err != nil {
		return nil, err
	}
	cfg, err := unmarshal(v)
	if err != nil {
		return nil, err
	}
	if cfg.Auth.SessionSecret == "" {
		cfg.Auth.SessionSecret = "dev-secret-change-me"
	}
	return cfg, nil
}

// String returns a string representation of the config (secrets are masked).
func (c *Config) String() string {
	key := "unset"
	if c.Assistant.APIKey != "" {
		key = "*** (masked) ***"
	}
	return fmt.Sprintf("Config{DB: %s, Seed: %s, HTTP: %s, Session: *** (masked) ***, Assistant: %s @ %s key=%s}",
		c.Database.Path, c.Seed.Dir, c.Server.Address, c.Assistant.Model, c.Assistant.BaseURL, key)
}
