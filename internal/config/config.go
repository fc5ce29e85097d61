// Package config loads application configuration from a YAML file and
// environment variables with a predictable priority.
package config

import (
	"fmt"
	"net"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root application configuration. Source priority:
//  1. explicit path passed to MustLoad/Load;
//  2. the CONFIG_PATH environment variable;
//  3. ./local.yaml in the working directory;
//  4. environment variables alone.
type Config struct {
	Env      string        `yaml:"env"       env:"ENV"       env-default:"local"`
	HTTP     HTTPConfig    `yaml:"http"`
	Metrics  MetricsConfig `yaml:"metrics"`
	Store    StoreConfig   `yaml:"store"`
	Gemini   GeminiConfig  `yaml:"gemini"`
	LogLevel string        `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
}

// HTTPConfig holds the main API listener settings.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"127.0.0.1"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

// Addr returns the listener address in host:port form.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// MetricsConfig holds the Prometheus listener settings.
type MetricsConfig struct {
	Host string `yaml:"host" env:"METRICS_HOST" env-default:"127.0.0.1"`
	Port string `yaml:"port" env:"METRICS_PORT" env-default:"9090"`
}

// Addr returns the listener address in host:port form.
func (m MetricsConfig) Addr() string {
	return net.JoinHostPort(m.Host, m.Port)
}

// StoreConfig holds the persistent key-value store settings.
type StoreConfig struct {
	DatabasePath string `yaml:"database_path" env:"DATABASE_PATH" env-default:"./data/techtimes.db"`
	QuotaBytes   int64  `yaml:"quota_bytes"   env:"STORE_QUOTA_BYTES" env-default:"5242880"`
}

// GeminiConfig holds the generation API settings. An empty key disables the
// assistant rather than failing startup.
type GeminiConfig struct {
	APIKey string `yaml:"api_key" env:"GEMINI_API_KEY"`
	Model  string `yaml:"model"   env:"GEMINI_MODEL" env-default:"gemini-2.5-flash"`
}

// MustLoad wraps Load and panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load resolves the configuration source in priority order and reads it.
func Load(path string) (*Config, error) {
	var cfg Config

	readFile := func(p string) (*Config, error) {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", p)
		}
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", p, err)
		}
		return &cfg, nil
	}

	if path != "" {
		return readFile(path)
	}
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return readFile(envPath)
	}
	if _, err := os.Stat("local.yaml"); err == nil {
		return readFile("local.yaml")
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read config from environment: %w", err)
	}
	return &cfg, nil
}
