package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logger struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logger"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Market struct {
		BaseURL      string        `yaml:"base_url"`
		LookbackDays int           `yaml:"lookback_days"`
		Timeout      time.Duration `yaml:"timeout"`
	} `yaml:"market"`
	Advice struct {
		APIKey          string        `yaml:"api_key"`
		Model           string        `yaml:"model"`
		MaxOutputTokens int           `yaml:"max_output_tokens"`
		Quota           int           `yaml:"quota"`
		Cooldown        time.Duration `yaml:"cooldown"`
	} `yaml:"advice"`
	Session struct {
		Store string        `yaml:"store"`
		TTL   time.Duration `yaml:"ttl"`
		Redis struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"session"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
// The Gemini credential is deliberately not validated at startup: its absence
// is reported per request, not as a boot failure.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Advice.APIKey = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Session.Redis.Addr = v
	}
	if v := os.Getenv("SESSION_STORE"); v != "" {
		c.Session.Store = v
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Market.BaseURL == "" {
		return fmt.Errorf("market.base_url is required")
	}
	if c.Market.LookbackDays <= 0 {
		return fmt.Errorf("market.lookback_days must be positive")
	}
	if c.Advice.Model == "" {
		return fmt.Errorf("advice.model is required")
	}
	if c.Advice.Quota <= 0 {
		return fmt.Errorf("advice.quota must be positive")
	}
	if c.Advice.Cooldown <= 0 {
		return fmt.Errorf("advice.cooldown must be positive")
	}
	if c.Session.Store != "memory" && c.Session.Store != "redis" {
		return fmt.Errorf("session.store must be 'memory' or 'redis', got '%s'", c.Session.Store)
	}
	if c.Session.Store == "redis" && c.Session.Redis.Addr == "" {
		return fmt.Errorf("session.redis.addr is required for redis store")
	}
	return nil
}
