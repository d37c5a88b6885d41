package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v2"
)

// ProviderConfig names the review backend. Kind selects one of the supported
// providers; each kind requires its own credential environment variable
// (ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY; ollama needs none).
type ProviderConfig struct {
	Kind  string `yaml:"kind" json:"kind"`
	Model string `yaml:"model" json:"model"`
}

// CacheConfig controls the per-chunk result cache.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled" json:"enabled"`
	Dir        string `yaml:"dir,omitempty" json:"dir,omitempty"`
	TTLSeconds int    `yaml:"ttl_seconds" json:"ttlSeconds"`
}

// Config is the effective scry configuration.
type Config struct {
	Provider      ProviderConfig `yaml:"provider" json:"provider"`
	Ignore        []string       `yaml:"ignore" json:"ignore"`
	IncludeOnly   []string       `yaml:"include_only,omitempty" json:"includeOnly,omitempty"`
	MaxFiles      int            `yaml:"max_files" json:"maxFiles"`
	MaxDiffSize   int            `yaml:"max_diff_size" json:"maxDiffSize"`
	Format        string         `yaml:"format" json:"format"`
	Focus         []string       `yaml:"focus,omitempty" json:"focus,omitempty"`
	RedactSecrets bool           `yaml:"redact_secrets" json:"redactSecrets"`
	Cache         CacheConfig    `yaml:"cache" json:"cache"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Provider: ProviderConfig{
			Kind:  "anthropic",
			Model: "claude-sonnet-4-20250514",
		},
		Ignore: []string{
			"*.min.js",
			"**/node_modules/**",
			"package-lock.json",
			"vendor/**",
			"*.lock",
			"**/dist/**",
		},
		MaxFiles:      25,
		MaxDiffSize:   4000,
		Format:        "text",
		RedactSecrets: true,
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: 86400,
		},
	}
}

// Dir returns the platform-appropriate config directory for scry.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "scry"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "scry"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "scry"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "scry"), nil
	default:
		return filepath.Join(home, ".config", "scry"), nil
	}
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// fileConfig mirrors Config for unmarshaling; pointer booleans distinguish
// "unset" from "false" so the file can disable defaults.
type fileConfig struct {
	Provider      ProviderConfig `yaml:"provider"`
	Ignore        []string       `yaml:"ignore"`
	IncludeOnly   []string       `yaml:"include_only"`
	MaxFiles      int            `yaml:"max_files"`
	MaxDiffSize   int            `yaml:"max_diff_size"`
	Format        string         `yaml:"format"`
	Focus         []string       `yaml:"focus"`
	RedactSecrets *bool          `yaml:"redact_secrets"`
	Cache         struct {
		Enabled    *bool  `yaml:"enabled"`
		Dir        string `yaml:"dir"`
		TTLSeconds int    `yaml:"ttl_seconds"`
	} `yaml:"cache"`
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags; only non-zero values should be set.
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return Config{}, err
	}
	if err := mergeFile(&cfg, path); err != nil {
		return Config{}, err
	}
	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	return cfg, nil
}

func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	if fc.Provider.Kind != "" {
		cfg.Provider.Kind = fc.Provider.Kind
	}
	if fc.Provider.Model != "" {
		cfg.Provider.Model = fc.Provider.Model
	}
	if len(fc.Ignore) > 0 {
		cfg.Ignore = fc.Ignore
	}
	if len(fc.IncludeOnly) > 0 {
		cfg.IncludeOnly = fc.IncludeOnly
	}
	if fc.MaxFiles > 0 {
		cfg.MaxFiles = fc.MaxFiles
	}
	if fc.MaxDiffSize > 0 {
		cfg.MaxDiffSize = fc.MaxDiffSize
	}
	if fc.Format != "" {
		cfg.Format = fc.Format
	}
	if len(fc.Focus) > 0 {
		cfg.Focus = fc.Focus
	}
	if fc.RedactSecrets != nil {
		cfg.RedactSecrets = *fc.RedactSecrets
	}
	if fc.Cache.Enabled != nil {
		cfg.Cache.Enabled = *fc.Cache.Enabled
	}
	if fc.Cache.Dir != "" {
		cfg.Cache.Dir = fc.Cache.Dir
	}
	if fc.Cache.TTLSeconds > 0 {
		cfg.Cache.TTLSeconds = fc.Cache.TTLSeconds
	}
	return nil
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("SCRY_PROVIDER"); v != "" {
		cfg.Provider.Kind = v
	}
	if v := os.Getenv("SCRY_MODEL"); v != "" {
		cfg.Provider.Model = v
	}
	if v := os.Getenv("SCRY_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("SCRY_MAX_FILES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxFiles = n
		}
	}
	if v := os.Getenv("SCRY_MAX_DIFF_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxDiffSize = n
		}
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	for key, value := range overrides {
		if value == "" {
			continue
		}
		// Unknown flag keys were already rejected at flag-parse time.
		_ = SetField(cfg, key, value)
	}
}

// Save writes the config to the config file, creating the directory if needed.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// SetField sets a single config field by key name.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "provider":
		cfg.Provider.Kind = value
	case "model":
		cfg.Provider.Model = value
	case "format":
		cfg.Format = value
	case "ignore":
		cfg.Ignore = splitList(value)
	case "include_only":
		cfg.IncludeOnly = splitList(value)
	case "focus":
		cfg.Focus = splitList(value)
	case "max_files":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("max_files must be an integer: %w", err)
		}
		cfg.MaxFiles = n
	case "max_diff_size":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("max_diff_size must be an integer: %w", err)
		}
		cfg.MaxDiffSize = n
	case "redact_secrets":
		cfg.RedactSecrets = value == "true"
	case "cache":
		cfg.Cache.Enabled = value == "true"
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
