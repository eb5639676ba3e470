// Package config loads and validates the service configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

const (
	defaultServerPort     = 8070
	defaultServerTimeout  = 30
	defaultLLMBaseURL     = "https://api.openai.com/v1"
	defaultLLMModel       = "gpt-4o"
	defaultLLMTimeout     = 5 * time.Minute
	defaultRetention      = 30 * 24 * time.Hour
	placeholderStoreAddr  = "localhost:6379"
	defaultPreviewPrefix  = "landing:preview:"
	defaultDynamicPrefix  = "landing:dynamic:"
)

// Config is the top-level service configuration.
type Config struct {
	Debug   bool         `env:"APP_DEBUG" yaml:"debug"`
	Server  ServerConfig `yaml:"server"`
	LLM     LLMConfig    `yaml:"llm"`
	Store   StoreConfig  `yaml:"store"`
	Logging LogConfig    `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `env:"SERVER_HOST" yaml:"host"`
	Port         int           `env:"SERVER_PORT" yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	CORSOrigins  []string      `env:"CORS_ORIGINS" yaml:"cors_origins"`
}

// LLMConfig holds chat-completion API settings.
type LLMConfig struct {
	BaseURL string        `env:"LLM_BASE_URL" yaml:"base_url"`
	APIKey  string        `env:"LLM_API_KEY"  yaml:"api_key"`
	Model   string        `env:"LLM_MODEL"    yaml:"model"`
	Timeout time.Duration `env:"LLM_TIMEOUT"  yaml:"timeout"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `env:"LOG_LEVEL" yaml:"level"`
}

// StoreConfig holds the resolved key-value store backend. Resolution happens
// exactly once at load time; nothing else in the service inspects the
// environment to pick a backend.
type StoreConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `env:"STORE_DB" yaml:"db"`
	// Placeholder is true when neither credential set was present and the
	// service fell back to a non-persistent local address.
	Placeholder bool `yaml:"-"`
	// Retention is the record expiry window.
	Retention time.Duration `env:"STORE_RETENTION" yaml:"retention"`
	// PreviewPrefix and DynamicPrefix namespace the two store variants.
	PreviewPrefix string `yaml:"preview_prefix"`
	DynamicPrefix string `yaml:"dynamic_prefix"`
}

// Load reads the config file (if present), applies env overrides, resolves
// the store backend, fills defaults and validates.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := loadFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg.resolveStoreBackend()
	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// resolveStoreBackend selects the key-value backend from one of two credential
// sets: the hosted KV service (KV_ADDRESS/KV_PASSWORD) wins over a plain Redis
// deployment (REDIS_ADDRESS/REDIS_PASSWORD). With neither present the service
// runs against a local placeholder address; callers log a warning because
// nothing will survive a restart in that mode.
func (c *Config) resolveStoreBackend() {
	if addr := os.Getenv("KV_ADDRESS"); addr != "" {
		c.Store.Address = addr
		c.Store.Password = os.Getenv("KV_PASSWORD")
		return
	}
	if addr := os.Getenv("REDIS_ADDRESS"); addr != "" {
		c.Store.Address = addr
		c.Store.Password = os.Getenv("REDIS_PASSWORD")
		return
	}
	if c.Store.Address == "" {
		c.Store.Address = placeholderStoreAddr
		c.Store.Placeholder = true
	}
}

func (c *Config) setDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaultServerPort
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = defaultServerTimeout * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		// Generation streams stay open for the full upstream call
		c.Server.WriteTimeout = defaultLLMTimeout + time.Minute
	}
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	if c.LLM.Model == "" {
		c.LLM.Model = defaultLLMModel
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = defaultLLMTimeout
	}
	if c.Store.Retention == 0 {
		c.Store.Retention = defaultRetention
	}
	if c.Store.PreviewPrefix == "" {
		c.Store.PreviewPrefix = defaultPreviewPrefix
	}
	if c.Store.DynamicPrefix == "" {
		c.Store.DynamicPrefix = defaultDynamicPrefix
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 {
		return errors.New("server.port must be positive")
	}
	if c.LLM.BaseURL == "" {
		return errors.New("llm.base_url is required")
	}
	if c.LLM.APIKey == "" {
		return errors.New("llm.api_key is required (set LLM_API_KEY)")
	}
	if c.Store.Address == "" {
		return errors.New("store.address is required")
	}
	if c.Store.Retention <= 0 {
		return errors.New("store.retention must be positive")
	}
	return nil
}
