package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file picked up from the working
// directory when no --config flag is given.
const DefaultPath = "bundlefile.yaml"

// Config represents the structure parsed from bundlefile.yaml.
type Config struct {
	// Gen contains settings for code generation.
	Gen GenConfig `yaml:"gen"`
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`
}

// GenConfig controls how files are bundled.
type GenConfig struct {
	// ChunkSize is the input read buffer size in bytes. 0 selects the default.
	ChunkSize int `yaml:"chunk_size"`
	// Atomic writes to a temporary file and renames it over the output.
	// Defaults to true.
	Atomic *bool `yaml:"atomic"`
	// Header emits a "Code generated ... DO NOT EDIT." comment.
	Header bool `yaml:"header"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	// Level is the log level (debug, info, warn, error).
	Level string `yaml:"level"`
	// Path is the log file path. Empty logs to stderr.
	Path string `yaml:"path"`
}

// Load reads and parses the configuration at path, then applies
// defaults and validates it.
//
// When optional is true a missing file is not an error and yields the
// default configuration.
func Load(path string, optional bool) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case optional && errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	ApplyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for errors.
func Validate(config *Config) error {
	if config.Gen.ChunkSize < 0 {
		return fmt.Errorf("invalid chunk_size: %d (must not be negative)", config.Gen.ChunkSize)
	}

	if config.Logging.Level != "" {
		switch strings.ToLower(config.Logging.Level) {
		case "debug", "info", "warn", "error":
			// ok
		default:
			return fmt.Errorf("invalid logging level: %s (allowed: debug, info, warn, error)", config.Logging.Level)
		}
	}

	return nil
}

// ApplyDefaults sets default values for configuration fields that are missing.
func ApplyDefaults(config *Config) {
	if config.Gen.Atomic == nil {
		t := true
		config.Gen.Atomic = &t
	}

	if config.Logging.Level == "" {
		config.Logging.Level = "warn"
	}
}
