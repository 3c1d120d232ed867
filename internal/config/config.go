package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	MaxConns int32  `yaml:"max_conns"`
}

type RedisConfig struct {
	URL       string        `yaml:"url"`
	Password  string        `yaml:"password"`
	DB        int           `yaml:"db"`
	ResultTTL time.Duration `yaml:"result_ttl"` // result cache expiry
}

type AIConfig struct {
	Provider        string `yaml:"provider"` // gemini | openai | noop (dev only)
	OpenAIKey       string `yaml:"openai_key"`
	GeminiKey       string `yaml:"gemini_key"`
	GeminiURL       string `yaml:"gemini_url"`
	Model           string `yaml:"model"`
	MaxOutputTokens int    `yaml:"max_output_tokens"`
}

type ResilienceConfig struct {
	RetryAttempts      int           `yaml:"retry_attempts"`
	RetryMinBackoff    time.Duration `yaml:"retry_min_backoff"`
	RetryMaxBackoff    time.Duration `yaml:"retry_max_backoff"`
	AttemptTimeout     time.Duration `yaml:"attempt_timeout"`
	BreakerMaxFailures uint32        `yaml:"breaker_max_failures"`
	BreakerCooldown    time.Duration `yaml:"breaker_cooldown"`
}

type WorkerConfig struct {
	Workers      int           `yaml:"workers"`
	QueueSize    int           `yaml:"queue_size"`
	ResultExpiry time.Duration `yaml:"result_expiry"` // scheduler registry eviction
}

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	AI         AIConfig         `yaml:"ai"`
	Resilience ResilienceConfig `yaml:"resilience"`
	Worker     WorkerConfig     `yaml:"worker"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Database.MaxConns <= 0 {
		cfg.Database.MaxConns = 10
	}
	if cfg.Redis.ResultTTL <= 0 {
		cfg.Redis.ResultTTL = 24 * time.Hour
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = defaultModel(cfg.AI.Provider)
	}
	if cfg.AI.MaxOutputTokens <= 0 {
		cfg.AI.MaxOutputTokens = 4096
	}
	if cfg.Resilience.RetryAttempts <= 0 {
		cfg.Resilience.RetryAttempts = 3
	}
	if cfg.Resilience.RetryMinBackoff <= 0 {
		cfg.Resilience.RetryMinBackoff = time.Second
	}
	if cfg.Resilience.RetryMaxBackoff <= 0 {
		cfg.Resilience.RetryMaxBackoff = 10 * time.Second
	}
	if cfg.Resilience.AttemptTimeout <= 0 {
		cfg.Resilience.AttemptTimeout = 30 * time.Second
	}
	if cfg.Resilience.BreakerMaxFailures == 0 {
		cfg.Resilience.BreakerMaxFailures = 5
	}
	if cfg.Resilience.BreakerCooldown <= 0 {
		cfg.Resilience.BreakerCooldown = 60 * time.Second
	}
	if cfg.Worker.Workers <= 0 {
		cfg.Worker.Workers = 8
	}
	if cfg.Worker.QueueSize <= 0 {
		cfg.Worker.QueueSize = cfg.Worker.Workers * 4
	}
	if cfg.Worker.ResultExpiry <= 0 {
		cfg.Worker.ResultExpiry = time.Hour
	}

	// Minimal validation
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func defaultModel(provider string) string {
	if provider == "gemini" {
		return "gemini-2.0-flash"
	}
	return "gpt-4o-mini"
}
