package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "SEEDMOCK_"

// Common errors for configuration loading.
var (
	ErrFileNotFound     = errors.New("configuration file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidYAML      = errors.New("invalid YAML syntax")
	ErrEmptyFile        = errors.New("configuration file is empty")
	ErrInvalidConfig    = errors.New("invalid configuration")
)

// Load builds a Config from defaults, an optional YAML file and the
// environment, in that order of precedence (later wins).
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := mergeFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads a YAML (or JSON) file over the defaults without
// consulting the environment.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if err := mergeFile(&cfg, path); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes YAML (JSON is valid YAML) over the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		if os.IsPermission(err) {
			return fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if len(data) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%w in %s: %v", ErrInvalidYAML, path, err)
	}
	return nil
}

// ApplyEnv overlays SEEDMOCK_* environment variables onto cfg.
// Unset variables leave the existing values untouched.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// Validate checks value ranges and ID formats.
func (c Config) Validate() error {
	var errs []error

	if c.ID.Format != "" && !c.ID.Format.Valid() {
		errs = append(errs, fmt.Errorf("id.format: unknown format %q", c.ID.Format))
	}
	for field, f := range c.ID.FieldOverrides {
		if !f.Valid() {
			errs = append(errs, fmt.Errorf("id.fieldOverrides.%s: unknown format %q", field, f))
		}
	}
	if c.Pagination.CacheTTL < 0 {
		errs = append(errs, errors.New("pagination.cacheTTL must not be negative"))
	}
	if c.Pagination.DefaultTotal < 0 {
		errs = append(errs, errors.New("pagination.defaultTotal must not be negative"))
	}
	if c.Pagination.DefaultLimit < 0 {
		errs = append(errs, errors.New("pagination.defaultLimit must not be negative"))
	}
	if c.Cursor.CursorTTL < 0 {
		errs = append(errs, errors.New("cursor.cursorTTL must not be negative"))
	}
	for name, rate := range map[string]float64{
		"synth.openapiOmitRate": c.Synth.OpenAPIOmitRate,
		"synth.modelOmitRate":   c.Synth.ModelOmitRate,
	} {
		if rate < 0 || rate > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0,1], got %v", name, rate))
		}
	}
	if c.Synth.ArrayMin > c.Synth.ArrayMax {
		errs = append(errs, errors.New("synth.arrayMin must not exceed synth.arrayMax"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
