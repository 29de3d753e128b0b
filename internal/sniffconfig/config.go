// Package sniffconfig loads csv-qsniffer's runtime settings from an
// optional .env file plus the process environment, the way the
// original invoice tooling loaded its business configuration.
package sniffconfig

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultMaxRows      = 1000
	defaultMinRows      = 2
	defaultOutputFormat = "human"
	defaultEnvFilePath  = ".env.csv-qsniffer"
	minAllowedMinRows   = 2
)

// Logger interface defined at point of use (consumer-driven design).
type Logger interface {
	Info(msg string, fields ...any)
	Error(msg string, fields ...any)
	Debug(msg string, fields ...any)
}

// Validator interface defined at point of use.
type Validator interface {
	ValidateConfig(ctx context.Context, config *Config) error
}

// ConfigService loads and validates Config, with logger and validator
// injected by the caller.
type ConfigService struct {
	logger    Logger
	validator Validator
}

// NewConfigService creates a new ConfigService with injected
// dependencies.
func NewConfigService(logger Logger, validator Validator) *ConfigService {
	return &ConfigService{
		logger:    logger,
		validator: validator,
	}
}

// LoadConfig loads configuration from an optional .env file at path
// (defaultEnvFilePath if path is empty), overlaid with the process
// environment, then overlaid with the non-zero overrides passed in by
// the caller (typically parsed command-line flags). Flags beat env
// vars, which beat the built-in defaults.
func (s *ConfigService) LoadConfig(ctx context.Context, path string, overrides Config) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.logger.Info("loading configuration", "path", path)

	if err := s.loadEnvFile(ctx, path); err != nil {
		return nil, fmt.Errorf("failed to load env file from %s: %w", path, err)
	}

	config := s.buildConfigFromEnv()
	applyOverrides(config, overrides)

	if s.validator != nil {
		if err := s.validator.ValidateConfig(ctx, config); err != nil {
			return nil, fmt.Errorf("config validation failed: %w", err)
		}
	}

	s.logger.Info("configuration loaded successfully",
		"max_rows", config.MaxRows, "min_rows", config.MinRows, "format", config.DefaultFormat)
	return config, nil
}

// loadEnvFile loads environment variables from the specified file. A
// missing file is not an error — the process environment and built-in
// defaults are used instead.
func (s *ConfigService) loadEnvFile(ctx context.Context, path string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if path == "" {
		path = defaultEnvFilePath
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		s.logger.Debug("env file not found, using system environment", "path", path)
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load environment file: %w", err)
	}

	s.logger.Debug("loaded environment file", "path", path)
	return nil
}

// buildConfigFromEnv constructs a Config from environment variables,
// falling back to the documented defaults.
func (s *ConfigService) buildConfigFromEnv() *Config {
	return &Config{
		MaxRows:       getEnvInt("CLI_MAX_ROWS", defaultMaxRows),
		MinRows:       getEnvInt("CLI_MIN_ROWS", defaultMinRows),
		DefaultFormat: getEnv("CLI_DEFAULT_FORMAT", defaultOutputFormat),
	}
}

// applyOverrides copies any non-zero field from overrides onto
// config, implementing flags > env > default precedence.
func applyOverrides(config *Config, overrides Config) {
	if overrides.MaxRows > 0 {
		config.MaxRows = overrides.MaxRows
	}
	if overrides.MinRows > 0 {
		config.MinRows = overrides.MinRows
	}
	if overrides.DefaultFormat != "" {
		config.DefaultFormat = overrides.DefaultFormat
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// SimpleValidator enforces the row-count and format invariants
// spec.md §6 requires of a Config.
type SimpleValidator struct {
	logger Logger
}

// NewSimpleValidator creates a new SimpleValidator.
func NewSimpleValidator(logger Logger) *SimpleValidator {
	return &SimpleValidator{logger: logger}
}

// ValidateConfig performs basic validation on the configuration.
func (v *SimpleValidator) ValidateConfig(ctx context.Context, config *Config) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	var errs []string

	if config.MinRows < minAllowedMinRows {
		errs = append(errs, fmt.Sprintf("min_rows must be >= %d", minAllowedMinRows))
	}
	if config.MaxRows < config.MinRows {
		errs = append(errs, "max_rows must be >= min_rows")
	}
	switch config.DefaultFormat {
	case "human", "json", "csv":
	default:
		errs = append(errs, fmt.Sprintf("default format %q is not one of human, json, csv", config.DefaultFormat))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	v.logger.Debug("configuration validation passed")
	return nil
}
