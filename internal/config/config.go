// Package config loads the assistant's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Backend names.
const (
	BackendNone   = "none"
	BackendValkey = "valkey"
	BackendOpenAI = "openai"
	BackendCodec  = "codec"
)

// #region types

// Config holds the assistant configuration.
type Config struct {
	App        AppConfig        `yaml:"app"`
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	Index      IndexConfig      `yaml:"index"`
	Generation GenerationConfig `yaml:"generation"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Codec      CodecConfig      `yaml:"codec"`
	Store      StoreConfig      `yaml:"store"`
	HTTP       HTTPConfig       `yaml:"http"`
}

// AppConfig holds process-wide settings.
type AppConfig struct {
	Env      string `yaml:"env"`       // local, dev, docker, prod
	LogLevel string `yaml:"log_level"` // debug, info, warn, error (default: determined by env)
}

// PipelineConfig tunes the answer pipeline.
type PipelineConfig struct {
	Variant             string   `yaml:"variant"` // basic, similarity, final
	TopK                int      `yaml:"top_k"`
	ConfidenceThreshold *float64 `yaml:"confidence_threshold"` // 0-100, nil = default
	Seed                uint64   `yaml:"seed"`                 // 0 = nondeterministic
	LexiconPath         string   `yaml:"lexicon_path"`         // optional YAML overlay
}

// DefaultConfidenceThreshold applies when confidence_threshold is absent.
const DefaultConfidenceThreshold = 25.0

// Threshold returns the retrieval confidence cutoff. An explicit 0 keeps
// every hit.
func (p PipelineConfig) Threshold() float64 {
	if p.ConfidenceThreshold == nil {
		return DefaultConfidenceThreshold
	}
	return *p.ConfidenceThreshold
}

// IndexConfig selects and configures the passage index.
type IndexConfig struct {
	Backend    string   `yaml:"backend"` // valkey, codec, none
	Addrs      []string `yaml:"addrs"`
	Username   string   `yaml:"username"`
	Password   string   `yaml:"password"`
	Name       string   `yaml:"name"`
	Prefix     string   `yaml:"prefix"`
	Dimensions int      `yaml:"dimensions"`
}

// GenerationConfig selects and configures the generative model.
type GenerationConfig struct {
	Backend      string  `yaml:"backend"` // openai, codec, none
	APIKey       string  `yaml:"api_key"`
	BaseURL      string  `yaml:"base_url"`
	Model        string  `yaml:"model"`
	Temperature  float32 `yaml:"temperature"`
	SystemPrompt string  `yaml:"system_prompt"`
	TimeoutSec   int     `yaml:"timeout_sec"`
}

// EmbeddingConfig configures query and passage embeddings. Empty APIKey and
// BaseURL fall back to the generation settings.
type EmbeddingConfig struct {
	Backend    string `yaml:"backend"` // openai, codec, none
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
}

// CodecConfig points at the inference sidecar.
type CodecConfig struct {
	Addr string `yaml:"addr"`
}

// StoreConfig configures conversation memory and the run log.
type StoreConfig struct {
	Path         string `yaml:"path"`
	HistoryLimit int    `yaml:"history_limit"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// ReadTimeout returns the read timeout as a Duration.
func (h HTTPConfig) ReadTimeout() time.Duration { return time.Duration(h.ReadTimeoutSec) * time.Second }

// WriteTimeout returns the write timeout as a Duration.
func (h HTTPConfig) WriteTimeout() time.Duration { return time.Duration(h.WriteTimeoutSec) * time.Second }

// ShutdownTimeout returns the graceful shutdown timeout as a Duration.
func (h HTTPConfig) ShutdownTimeout() time.Duration { return time.Duration(h.ShutdownSec) * time.Second }

// #endregion

// #region load

// Load reads configuration from a YAML file. An empty path yields the
// defaults.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		data = expandEnvVars(data)
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FindPath returns config/<env>.yaml when it exists, else "".
func FindPath(env string) string {
	path := filepath.Join("config", env+".yaml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// #endregion

// #region defaults

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.App.Env == "" {
		c.App.Env = GetEnv()
	}
	if c.Pipeline.Variant == "" {
		c.Pipeline.Variant = "final"
	}
	if c.Pipeline.TopK <= 0 {
		c.Pipeline.TopK = 5
	}
	if c.Pipeline.ConfidenceThreshold == nil {
		t := DefaultConfidenceThreshold
		c.Pipeline.ConfidenceThreshold = &t
	}
	if c.Index.Backend == "" {
		c.Index.Backend = BackendValkey
	}
	if c.Index.Name == "" {
		c.Index.Name = "hr:idx"
	}
	if c.Index.Prefix == "" {
		c.Index.Prefix = "hr:doc:"
	}
	if c.Generation.Backend == "" {
		c.Generation.Backend = BackendOpenAI
	}
	if c.Generation.Model == "" {
		c.Generation.Model = "gpt-4o-mini"
	}
	if c.Generation.TimeoutSec <= 0 {
		c.Generation.TimeoutSec = 60
	}
	if c.Embedding.Backend == "" {
		c.Embedding.Backend = c.Generation.Backend
	}
	if c.Embedding.APIKey == "" {
		c.Embedding.APIKey = c.Generation.APIKey
	}
	if c.Embedding.BaseURL == "" {
		c.Embedding.BaseURL = c.Generation.BaseURL
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = "text-embedding-3-small"
	}
	if c.Embedding.Dimensions <= 0 {
		c.Embedding.Dimensions = 1536
	}
	if c.Index.Dimensions <= 0 {
		c.Index.Dimensions = c.Embedding.Dimensions
	}
	if c.Codec.Addr == "" {
		c.Codec.Addr = "localhost:50051"
	}
	if c.Store.Path == "" {
		c.Store.Path = "hr_assistant.db"
	}
	if c.Store.HistoryLimit <= 0 {
		c.Store.HistoryLimit = 10
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 90
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
}

// #endregion

// #region validate

// Validate checks the configuration for correctness. Every problem is
// reported, joined under ErrInvalid.
func (c *Config) Validate() error {
	var errs []error
	switch c.Pipeline.Variant {
	case "basic", "similarity", "final":
	default:
		errs = append(errs, fmt.Errorf("pipeline.variant must be basic, similarity or final, got %q", c.Pipeline.Variant))
	}
	if t := c.Pipeline.Threshold(); t < 0 || t > 100 {
		errs = append(errs, fmt.Errorf("pipeline.confidence_threshold must be within [0,100], got %g", t))
	}
	switch c.Index.Backend {
	case BackendValkey:
		if len(c.Index.Addrs) == 0 {
			errs = append(errs, fmt.Errorf("index.addrs is required for the valkey backend"))
		}
	case BackendCodec, BackendNone:
	default:
		errs = append(errs, fmt.Errorf("index.backend must be valkey, codec or none, got %q", c.Index.Backend))
	}
	for name, b := range map[string]string{"generation": c.Generation.Backend, "embedding": c.Embedding.Backend} {
		switch b {
		case BackendOpenAI, BackendCodec, BackendNone:
		default:
			errs = append(errs, fmt.Errorf("%s.backend must be openai, codec or none, got %q", name, b))
		}
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// #endregion

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
