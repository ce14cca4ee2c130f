// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/leseb/pdfrag/pkg/chunking"
	"github.com/leseb/pdfrag/pkg/observability/logging"
	"gopkg.in/yaml.v3"
)

// Config represents the main configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Engine   EngineConfig   `yaml:"engine"`
	Chunking ChunkingConfig `yaml:"chunking"`
	Source   SourceConfig   `yaml:"source"`
	Logging  logging.Config `yaml:"logging"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host    string        `yaml:"host"`
	Port    int           `yaml:"port"`
	Timeout time.Duration `yaml:"timeout"`
}

// EngineConfig contains answer generation configuration
type EngineConfig struct {
	ModelEndpoint string        `yaml:"model_endpoint"`
	APIKey        string        `yaml:"api_key"`
	Model         string        `yaml:"model"`
	MaxTokens     int           `yaml:"max_tokens"`
	Timeout       time.Duration `yaml:"timeout"`
}

// ChunkingConfig selects the default strategy and its window sizes
type ChunkingConfig struct {
	Strategy string           `yaml:"strategy"` // "fixed" or "recursive"
	Options  chunking.Options `yaml:",inline"`
}

// SourceConfig contains document source configuration
type SourceConfig struct {
	// BaseDir confines file imports to one directory. HTTP file imports are
	// refused while it is empty.
	BaseDir    string `yaml:"base_dir"`
	S3Region   string `yaml:"s3_region"`
	S3Endpoint string `yaml:"s3_endpoint"` // e.g. "http://localhost:9000" for MinIO
	MaxBytes   int64  `yaml:"max_bytes"`
}

const (
	defaultPort      = 8080
	defaultTimeout   = 60 * time.Second
	defaultModel     = "gpt-4o-mini"
	defaultMaxTokens = 1024
	defaultMaxBytes  = 32 << 20
)

// Load loads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Keys missing from the file keep these values, so an explicit zero
	// overlap survives.
	cfg := Config{Chunking: ChunkingConfig{Options: chunking.DefaultOptions()}}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Load from environment variables (override file config)
	applyEnv(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns default configuration
func Default() *Config {
	cfg := &Config{Chunking: ChunkingConfig{Options: chunking.DefaultOptions()}}
	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg
}

// Validate reports configuration values the service cannot run with.
func (c *Config) Validate() error {
	if _, err := chunking.ParseStrategy(c.Chunking.Strategy); err != nil {
		return fmt.Errorf("invalid chunking config: %w", err)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	o := c.Chunking.Options
	if o.FixedOverlap < 0 || o.RecursiveOverlap < 0 {
		return fmt.Errorf("invalid chunking config: overlap must not be negative")
	}
	if c.Source.MaxBytes < 0 {
		return fmt.Errorf("invalid source max_bytes: %d", c.Source.MaxBytes)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Engine.APIKey = v
	}
	if v := os.Getenv("OPENAI_API_ENDPOINT"); v != "" {
		cfg.Engine.ModelEndpoint = v
	}
	if v := os.Getenv("RAG_MODEL"); v != "" {
		cfg.Engine.Model = v
	}
	if v := os.Getenv("CHUNKING_STRATEGY"); v != "" {
		cfg.Chunking.Strategy = v
	}
	if v := os.Getenv("DOCUMENT_BASE_DIR"); v != "" {
		cfg.Source.BaseDir = v
	}
	if v := os.Getenv("S3_ENDPOINT"); v != "" {
		cfg.Source.S3Endpoint = v
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		cfg.Source.S3Region = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v, err := strconv.Atoi(os.Getenv("PORT")); err == nil && v > 0 {
		cfg.Server.Port = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = defaultTimeout
	}

	if cfg.Engine.Model == "" {
		cfg.Engine.Model = defaultModel
	}
	if cfg.Engine.MaxTokens == 0 {
		cfg.Engine.MaxTokens = defaultMaxTokens
	}
	if cfg.Engine.Timeout == 0 {
		cfg.Engine.Timeout = defaultTimeout
	}

	if cfg.Chunking.Strategy == "" {
		cfg.Chunking.Strategy = string(chunking.DefaultStrategy)
	}
	def, opts := chunking.DefaultOptions(), &cfg.Chunking.Options
	if opts.FixedSize == 0 {
		opts.FixedSize = def.FixedSize
	}
	if opts.RecursiveSize == 0 {
		opts.RecursiveSize = def.RecursiveSize
	}

	if cfg.Source.MaxBytes == 0 {
		cfg.Source.MaxBytes = defaultMaxBytes
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}
