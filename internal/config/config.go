// Package config loads the command line configuration from defaults, an
// optional YAML file, ENTITY_BINDER_* environment variables and flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"

	"entity-binder/internal/metamodel"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "ENTITY_BINDER_"

const delim = "."

// Output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Formats lists the supported output formats.
var Formats = []string{FormatText, FormatYAML, FormatJSON}

// ErrInvalid is returned for configuration values out of range.
var ErrInvalid = errors.New("invalid configuration")

// Config is the command line configuration.
type Config struct {
	// Dir is the directory Go packages are loaded from.
	Dir string `koanf:"dir"`
	// Patterns are Go package patterns to analyze.
	Patterns []string `koanf:"patterns"`
	// Descriptors are YAML descriptor files to read instead of, or in
	// addition to, Go packages.
	Descriptors []string `koanf:"descriptors"`
	// Format is the report format.
	Format string `koanf:"format"`
	// Strict turns ignored access overrides into errors.
	Strict bool `koanf:"strict"`
	// Concurrency is the number of hierarchies built in parallel. Zero
	// means one per CPU.
	Concurrency int `koanf:"concurrency"`
	Log         Log `koanf:"log"`
}

// Log configures logging.
type Log struct {
	Level string `koanf:"level"`
	Color bool   `koanf:"color"`
	JSON  bool   `koanf:"json"`
}

func defaults() map[string]any {
	return map[string]any{
		"format":      FormatText,
		"concurrency": 1,
		"log.level":   "info",
		"log.color":   true,
	}
}

// Load merges the configuration sources. path may be empty; overrides are
// keyed like the koanf tags ("log.level") and win over everything else.
func Load(path string, overrides map[string]any) (*Config, error) {
	k := koanf.New(delim)

	if err := k.Load(confmap.Provider(defaults(), delim), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(EnvPrefix, delim, func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", delim)
	})

	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, delim), nil); err != nil {
			return nil, fmt.Errorf("failed to load overrides: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("%w: format %q, want one of %s", ErrInvalid, c.Format, strings.Join(Formats, ", "))
	}

	if c.Concurrency < 0 {
		return fmt.Errorf("%w: concurrency %d is negative", ErrInvalid, c.Concurrency)
	}

	if len(c.Patterns) == 0 && len(c.Descriptors) == 0 {
		return fmt.Errorf("%w: no packages or descriptor files given", ErrInvalid)
	}

	return nil
}

// Metamodel returns the builder configuration.
func (c *Config) Metamodel(log zerolog.Logger) metamodel.Config {
	cfg := metamodel.DefaultConfig()
	cfg.StrictAccessOverrides = c.Strict
	cfg.Logger = log

	cfg.Concurrency = c.Concurrency
	if cfg.Concurrency == 0 {
		cfg.Concurrency = runtime.NumCPU()
	}

	return cfg
}
