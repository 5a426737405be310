package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/haystack/pkg/format"
	"github.com/Veraticus/haystack/pkg/pattern"
)

// isolate points every config lookup at an empty directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HAYSTACK_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	for _, name := range []string{
		"HAYSTACK_FORMAT", "HAYSTACK_FORWARDS", "HAYSTACK_INSTANT", "HAYSTACK_NO_COLOR",
		"HAYSTACK_MAX_RESULTS", "HAYSTACK_CONTEXT", "HAYSTACK_JOBS", "HAYSTACK_DEBUG",
	} {
		t.Setenv(name, "")
	}
	return dir
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.OutputFormat != format.DefaultFormat {
		t.Errorf("expected OutputFormat to be the default format but got %q", cfg.OutputFormat)
	}
	if cfg.MaxResults != -1 {
		t.Errorf("expected MaxResults to be -1 but got %d", cfg.MaxResults)
	}
	if !cfg.Context {
		t.Error("expected Context to be true by default")
	}
	if cfg.Jobs != 1 {
		t.Errorf("expected Jobs to be 1 but got %d", cfg.Jobs)
	}
	if cfg.Forwards || cfg.Instant || cfg.NoColor {
		t.Error("expected boolean output flags to be false by default")
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, p := range cfg.Patterns {
		if p.Compiled() == nil {
			t.Errorf("expected preset %q to be compiled", p.Name)
		}
	}
}

func TestLoadFromEnv(t *testing.T) {
	tests := []struct {
		name      string
		envVars   map[string]string
		checkFunc func(*testing.T, *Config)
		wantErr   bool
	}{
		{
			name: "valid environment variables",
			envVars: map[string]string{
				"HAYSTACK_FORMAT":      "{first_line}",
				"HAYSTACK_FORWARDS":    "true",
				"HAYSTACK_INSTANT":     "1",
				"HAYSTACK_NO_COLOR":    "yes",
				"HAYSTACK_MAX_RESULTS": "5",
				"HAYSTACK_CONTEXT":     "no",
				"HAYSTACK_JOBS":        "4",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				if cfg.OutputFormat != "{first_line}" {
					t.Errorf("expected OutputFormat to be {first_line} but got %s", cfg.OutputFormat)
				}
				if !cfg.Forwards || !cfg.Instant || !cfg.NoColor {
					t.Error("expected Forwards, Instant and NoColor to be true")
				}
				if cfg.MaxResults != 5 {
					t.Errorf("expected MaxResults to be 5 but got %d", cfg.MaxResults)
				}
				if cfg.Context {
					t.Error("expected Context to be false")
				}
				if cfg.Jobs != 4 {
					t.Errorf("expected Jobs to be 4 but got %d", cfg.Jobs)
				}
			},
		},
		{
			name:    "invalid boolean",
			envVars: map[string]string{"HAYSTACK_FORWARDS": "maybe"},
			wantErr: true,
		},
		{
			name:    "invalid integer",
			envVars: map[string]string{"HAYSTACK_MAX_RESULTS": "many"},
			wantErr: true,
		},
		{
			name:    "jobs below one",
			envVars: map[string]string{"HAYSTACK_JOBS": "0"},
			wantErr: true,
		},
		{
			name:    "negative max results",
			envVars: map[string]string{"HAYSTACK_MAX_RESULTS": "-3"},
			checkFunc: func(t *testing.T, cfg *Config) {
				if cfg.MaxResults != -3 {
					t.Errorf("expected MaxResults to be -3 but got %d", cfg.MaxResults)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		checkFunc func(*testing.T, *Config)
		wantErr   string
	}{
		{
			name: "valid config file",
			content: `
output_format: "{file} {first_line}"
forwards: true
max_results: 10
ignore_case: true
patterns:
  - name: deploy
    spec: "/deploy (?P<version>\\S+)/"
    description: deploy start
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				if cfg.OutputFormat != "{file} {first_line}" {
					t.Errorf("expected OutputFormat from file but got %q", cfg.OutputFormat)
				}
				if !cfg.Forwards {
					t.Error("expected Forwards to be true")
				}
				if cfg.MaxResults != 10 {
					t.Errorf("expected MaxResults to be 10 but got %d", cfg.MaxResults)
				}
				if len(cfg.Patterns) != 1 {
					t.Fatalf("expected file patterns to replace defaults but got %d", len(cfg.Patterns))
				}
				p, ok := cfg.Lookup("deploy")
				if !ok {
					t.Fatal("expected deploy preset")
				}
				if !p.Compiled().Flags().Has(pattern.CaseInsensitive) {
					t.Error("expected ignore_case to apply to presets")
				}
				if ok, _ := p.Compiled().Matches("DEPLOY v1.2"); !ok {
					t.Error("expected preset to match case-insensitively")
				}
			},
		},
		{
			name:    "invalid yaml",
			content: "invalid: yaml: content:\n  bad indentation",
			wantErr: "failed to load config file",
		},
		{
			name: "bad preset regex",
			content: `
patterns:
  - name: broken
    spec: "/(unclosed/"
`,
			wantErr: "failed to compile patterns",
		},
		{
			name: "duplicate preset",
			content: `
patterns:
  - name: a
    spec: x
  - name: a
    spec: y
`,
			wantErr: "duplicate pattern name",
		},
		{
			name: "preset without spec",
			content: `
patterns:
  - name: a
`,
			wantErr: "has no spec",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			configPath := filepath.Join(dir, "config.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0600); err != nil {
				t.Fatalf("failed to write config file: %v", err)
			}
			t.Setenv("HAYSTACK_CONFIG", configPath)

			cfg, err := Load()
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("expected error containing %q but got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.checkFunc(t, cfg)
		})
	}
}

func TestLoadFrom_ExplicitPath(t *testing.T) {
	dir := isolate(t)

	_, err := LoadFrom(filepath.Join(dir, "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped not-exist error but got %v", err)
	}

	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("instant: true\n"), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Instant {
		t.Error("expected Instant from explicit config")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "haystack", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte("max_results: 2\n"), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("HAYSTACK_MAX_RESULTS", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxResults != 7 {
		t.Errorf("expected env to override file but got %d", cfg.MaxResults)
	}
}

func TestGetConfigPath(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		expected string
	}{
		{
			name:     "explicit config path",
			envVars:  map[string]string{"HAYSTACK_CONFIG": "/custom/config.yaml", "XDG_CONFIG_HOME": "/xdg"},
			expected: "/custom/config.yaml",
		},
		{
			name:     "XDG config home",
			envVars:  map[string]string{"HAYSTACK_CONFIG": "", "XDG_CONFIG_HOME": "/xdg"},
			expected: filepath.Join("/xdg", "haystack", "config.yaml"),
		},
		{
			name:     "home directory fallback",
			envVars:  map[string]string{"HAYSTACK_CONFIG": "", "XDG_CONFIG_HOME": "", "HOME": "/home/test"},
			expected: filepath.Join("/home/test", ".config", "haystack", "config.yaml"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}
			if got := getConfigPath(); got != tt.expected {
				t.Errorf("expected %s but got %s", tt.expected, got)
			}
		})
	}
}

func TestBaseFlags(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.BaseFlags() != 0 {
		t.Errorf("expected no base flags but got %v", cfg.BaseFlags())
	}

	cfg.IgnoreCase = true
	cfg.Whole = true
	if got := cfg.BaseFlags(); !got.Has(pattern.CaseInsensitive) || !got.Has(pattern.Whole) {
		t.Errorf("expected i and w flags but got %v", got)
	}
}
