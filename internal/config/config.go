// Package config loads service configuration from an optional YAML file
// with environment overrides, validated once at startup.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	defaultServiceName    = "triage"
	defaultServiceVersion = "1.0.0"
	defaultServicePort    = 8090
	defaultLogLevel       = "info"
	defaultModelURL       = "http://triage-ml:8096"
	defaultStorePath      = "triage.db"
	defaultPoolWorkers    = 4
	defaultPoolQueueDepth = 200
	defaultSubmitTimeout  = 2 * time.Second
	defaultRateLimitRPS   = 50
	defaultRateLimitBurst = 100
)

// Config holds all configuration for the triage service.
type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	Logging   LoggingConfig   `yaml:"logging"`
	Models    ModelsConfig    `yaml:"models"`
	Store     StoreConfig     `yaml:"store"`
	Pool      PoolConfig      `yaml:"pool"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Knowledge KnowledgeConfig `yaml:"knowledge"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Port    int    `yaml:"port"`
	Debug   bool   `yaml:"debug"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ModelsConfig holds model sidecar configuration.
type ModelsConfig struct {
	URL     string `yaml:"url"`
	Enabled bool   `yaml:"enabled"`
}

// StoreConfig holds case store persistence configuration.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// PoolConfig holds intake pool sizing.
type PoolConfig struct {
	Workers       int           `yaml:"workers"`
	MaxQueueDepth int           `yaml:"max_queue_depth"`
	SubmitTimeout time.Duration `yaml:"submit_timeout"`
}

// RateLimitConfig holds API rate limiting configuration.
type RateLimitConfig struct {
	RPS   int `yaml:"rps"`
	Burst int `yaml:"burst"`
}

// KnowledgeConfig points at an optional YAML overlay replacing the
// built-in tables.
type KnowledgeConfig struct {
	Path string `yaml:"path"`
}

// Load reads configuration from path (skipped when empty or missing) and
// applies environment overrides on top of defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults + env only.
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	applyEnv(cfg)
	if cfg.Service.Port <= 0 || cfg.Service.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Service.Port)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Service: ServiceConfig{
			Name:    defaultServiceName,
			Version: defaultServiceVersion,
			Port:    defaultServicePort,
		},
		Logging: LoggingConfig{Level: defaultLogLevel},
		Models:  ModelsConfig{URL: defaultModelURL, Enabled: true},
		Store:   StoreConfig{Path: defaultStorePath},
		Pool: PoolConfig{
			Workers:       defaultPoolWorkers,
			MaxQueueDepth: defaultPoolQueueDepth,
			SubmitTimeout: defaultSubmitTimeout,
		},
		RateLimit: RateLimitConfig{
			RPS:   defaultRateLimitRPS,
			Burst: defaultRateLimitBurst,
		},
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TRIAGE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Service.Port = port
		}
	}
	if v := os.Getenv("APP_DEBUG"); v != "" {
		cfg.Service.Debug = v == "true"
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("TRIAGE_ML_URL"); v != "" {
		cfg.Models.URL = v
	}
	if v := os.Getenv("TRIAGE_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("TRIAGE_KNOWLEDGE_PATH"); v != "" {
		cfg.Knowledge.Path = v
	}
}
