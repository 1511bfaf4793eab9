package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/dshills/autoreview/internal/review"
)

// Config is the effective autoreview configuration.
//
// Token is never written to the config file; it comes from the environment
// (GITHUB_TOKEN), optionally seeded from a .env file.
type Config struct {
	Token          string       `json:"-"`
	APIURL         string       `json:"apiURL,omitempty"`
	TimeoutSeconds int          `json:"timeoutSeconds"`
	Format         string       `json:"format"`
	AutoMerge      bool         `json:"autoMerge"`
	MergeMethod    string       `json:"mergeMethod"`
	Listen         string       `json:"listen"`
	Export         ExportConfig `json:"export"`
}

// ExportConfig controls the document export sink. When Endpoint is set the
// sink POSTs documents there; otherwise documents are written under Dir.
type ExportConfig struct {
	Dir      string `json:"dir"`
	Endpoint string `json:"endpoint,omitempty"`
	Redact   bool   `json:"redact"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		TimeoutSeconds: 60,
		Format:         "text",
		MergeMethod:    "merge",
		Listen:         ":8080",
		Export: ExportConfig{
			Dir:    "autoreview-docs",
			Redact: true,
		},
	}
}

// Validate checks the fields with a closed value set.
func (c Config) Validate() error {
	if !review.ValidMergeMethod(c.MergeMethod) {
		return fmt.Errorf("invalid merge method %q: must be merge, squash, or rebase", c.MergeMethod)
	}
	switch c.Format {
	case "text", "json", "markdown":
	default:
		return fmt.Errorf("unsupported output format: %s", c.Format)
	}
	return nil
}

// ConfigDir returns the platform-appropriate config directory.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "autoreview"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "autoreview"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "autoreview"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "autoreview"), nil
	default:
		return filepath.Join(home, ".config", "autoreview"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads config from the config file, applied over the defaults
// so keys absent from the file keep their default values. A missing file
// yields the defaults.
func LoadFile() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file. The token is excluded.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <-
// overrides. A .env file in the working directory seeds the environment
// first; already-set variables win. The overrides map comes from CLI flags.
func Load(overrides map[string]string) (Config, error) {
	_ = godotenv.Load()

	cfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("GITHUB_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("AUTOREVIEW_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("AUTOREVIEW_MERGE_METHOD"); v != "" {
		cfg.MergeMethod = v
	}
	if v := os.Getenv("AUTOREVIEW_AUTO_MERGE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.AutoMerge = b
		}
	}
	if v := os.Getenv("AUTOREVIEW_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("AUTOREVIEW_EXPORT_DIR"); v != "" {
		cfg.Export.Dir = v
	}
	if v := os.Getenv("AUTOREVIEW_EXPORT_ENDPOINT"); v != "" {
		cfg.Export.Endpoint = v
	}
	if v := os.Getenv("AUTOREVIEW_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TimeoutSeconds = n
		}
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	if overrides == nil {
		return
	}
	if v, ok := overrides["format"]; ok && v != "" {
		cfg.Format = v
	}
	if v, ok := overrides["mergeMethod"]; ok && v != "" {
		cfg.MergeMethod = v
	}
	if v, ok := overrides["autoMerge"]; ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.AutoMerge = b
		}
	}
	if v, ok := overrides["listen"]; ok && v != "" {
		cfg.Listen = v
	}
	if v, ok := overrides["exportDir"]; ok && v != "" {
		cfg.Export.Dir = v
	}
	if v, ok := overrides["exportEndpoint"]; ok && v != "" {
		cfg.Export.Endpoint = v
	}
}

// SetField sets a single config field by key name. Returns error if key is
// unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "apiURL":
		cfg.APIURL = value
	case "timeoutSeconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("timeoutSeconds must be an integer: %w", err)
		}
		cfg.TimeoutSeconds = n
	case "format":
		cfg.Format = value
	case "mergeMethod":
		cfg.MergeMethod = value
	case "autoMerge":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("autoMerge must be a boolean: %w", err)
		}
		cfg.AutoMerge = b
	case "listen":
		cfg.Listen = value
	case "export.dir":
		cfg.Export.Dir = value
	case "export.endpoint":
		cfg.Export.Endpoint = value
	case "export.redact":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("export.redact must be a boolean: %w", err)
		}
		cfg.Export.Redact = b
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
