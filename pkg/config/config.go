package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/haystack/pkg/format"
	"github.com/Veraticus/haystack/pkg/pattern"
)

// Config holds all configuration for haystack
type Config struct {
	// Output settings
	OutputFormat string `yaml:"output_format" env:"HAYSTACK_FORMAT"`
	Instant      bool   `yaml:"instant" env:"HAYSTACK_INSTANT"`
	NoColor      bool   `yaml:"no_color" env:"HAYSTACK_NO_COLOR"`

	// Search behavior
	Forwards   bool `yaml:"forwards" env:"HAYSTACK_FORWARDS"`
	MaxResults int  `yaml:"max_results" env:"HAYSTACK_MAX_RESULTS"`
	Context    bool `yaml:"context" env:"HAYSTACK_CONTEXT"`

	// Flags applied to every pattern
	IgnoreCase bool `yaml:"ignore_case"`
	Whole      bool `yaml:"whole"`
	Typos      bool `yaml:"typos"`

	Jobs  int  `yaml:"jobs" env:"HAYSTACK_JOBS"`
	Debug bool `yaml:"debug" env:"HAYSTACK_DEBUG"`

	// Named patterns usable as @name on the command line
	Patterns []Preset `yaml:"patterns"`
}

// Preset is a named pattern specification.
type Preset struct {
	Name        string          `yaml:"name"`
	Spec        string          `yaml:"spec"`
	Description string          `yaml:"description"`
	compiled    pattern.Pattern `yaml:"-"`
}

// Compiled returns the pattern compiled from Spec
func (p *Preset) Compiled() pattern.Pattern {
	return p.compiled
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		OutputFormat: format.DefaultFormat,
		MaxResults:   -1,
		Context:      true,
		Jobs:         1,
		Patterns: []Preset{
			{
				Name:        "error",
				Spec:        `/.*\b(error|failed|fatal)\b/i`,
				Description: "lines reporting a failure",
			},
			{
				Name:        "traceback",
				Spec:        "Traceback (most recent call last)",
				Description: "start of a Python traceback",
			},
			{
				Name:        "exception",
				Spec:        `/(?P<exception>[\w.]+(Error|Exception)): (?P<message>.*)/`,
				Description: "exception line with type and message captures",
			},
		},
	}
}

// Load loads configuration from the default file location and environment
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from path, or from the default location when
// path is empty. An explicit path must exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = getConfigPath()
	}
	if path != "" {
		err := loadFromFile(cfg, path)
		if err != nil && (explicit || !errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// Override with environment variables
	if err := loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := compilePatterns(cfg); err != nil {
		return nil, fmt.Errorf("failed to compile patterns: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Lookup returns the preset with the given name
func (c *Config) Lookup(name string) (*Preset, bool) {
	for i := range c.Patterns {
		if c.Patterns[i].Name == name {
			return &c.Patterns[i], true
		}
	}
	return nil, false
}

// BaseFlags returns the pattern flags every pattern starts from
func (c *Config) BaseFlags() pattern.Flags {
	var f pattern.Flags
	if c.IgnoreCase {
		f |= pattern.CaseInsensitive
	}
	if c.Whole {
		f |= pattern.Whole
	}
	return f
}

// getConfigPath returns the config file path
func getConfigPath() string {
	// Check for explicit config path
	if path := os.Getenv("HAYSTACK_CONFIG"); path != "" {
		return path
	}

	// Check XDG config directory
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "haystack", "config.yaml")
	}

	// Fall back to home directory
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "haystack", "config.yaml")
	}

	return ""
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(cfg *Config, path string) error {
	// #nosec G304 - The config file path comes from trusted sources (flag, env var or standard locations)
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// loadFromEnv loads configuration from environment variables
func loadFromEnv(cfg *Config) error {
	if f := os.Getenv("HAYSTACK_FORMAT"); f != "" {
		cfg.OutputFormat = f
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{"HAYSTACK_FORWARDS", &cfg.Forwards},
		{"HAYSTACK_INSTANT", &cfg.Instant},
		{"HAYSTACK_NO_COLOR", &cfg.NoColor},
		{"HAYSTACK_CONTEXT", &cfg.Context},
		{"HAYSTACK_DEBUG", &cfg.Debug},
	}
	for _, b := range bools {
		if err := envBool(b.name, b.dst); err != nil {
			return err
		}
	}

	if err := envInt("HAYSTACK_MAX_RESULTS", &cfg.MaxResults); err != nil {
		return err
	}
	return envInt("HAYSTACK_JOBS", &cfg.Jobs)
}

func envBool(name string, dst *bool) error {
	v := os.Getenv(name)
	switch v {
	case "":
	case "true", "1", "yes":
		*dst = true
	case "false", "0", "no":
		*dst = false
	default:
		return fmt.Errorf("invalid %s value: %q (use true/false)", name, v)
	}
	return nil
}

func envInt(name string, dst *int) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	*dst = n
	return nil
}

// compilePatterns compiles all preset patterns
func compilePatterns(cfg *Config) error {
	base := cfg.BaseFlags()
	for i := range cfg.Patterns {
		preset := &cfg.Patterns[i]
		if preset.Spec == "" {
			continue
		}
		p, err := pattern.Parse(preset.Spec, base)
		if err != nil {
			return fmt.Errorf("failed to compile pattern %q: %w", preset.Name, err)
		}
		preset.compiled = p
	}
	return nil
}

// validate validates the configuration
func validate(cfg *Config) error {
	if cfg.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1")
	}

	seen := make(map[string]bool, len(cfg.Patterns))
	for _, p := range cfg.Patterns {
		if p.Name == "" {
			return fmt.Errorf("pattern with spec %q has no name", p.Spec)
		}
		if p.Spec == "" {
			return fmt.Errorf("pattern %q has no spec", p.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate pattern name %q", p.Name)
		}
		seen[p.Name] = true
	}

	return nil
}
