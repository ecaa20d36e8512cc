package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type Config struct {
	API     APIConfig     `toml:"api"`
	Sync    SyncConfig    `toml:"sync"`
	Session SessionConfig `toml:"session"`
	Export  ExportConfig  `toml:"export"`
	Theme   ThemeConfig   `toml:"theme"`
}

type APIConfig struct {
	BaseURL string `toml:"base_url"`
	Token   string `toml:"token"`
}

type SyncConfig struct {
	DebounceMS int `toml:"debounce_ms"`
}

type SessionConfig struct {
	CachePath string `toml:"cache_path"`
}

type ExportConfig struct {
	Dir string `toml:"dir"`
}

type ThemeConfig struct {
	Accent      string `toml:"accent,omitempty"`
	Muted       string `toml:"muted,omitempty"`
	Dim         string `toml:"dim,omitempty"`
	Error       string `toml:"error,omitempty"`
	Success     string `toml:"success,omitempty"`
	Warning     string `toml:"warning,omitempty"`
	Required    string `toml:"required,omitempty"`
	StatusBarBG string `toml:"status_bar_bg,omitempty"`
	StatusBarFG string `toml:"status_bar_fg,omitempty"`
	ChipBG      string `toml:"chip_bg,omitempty"`
	ChipActive  string `toml:"chip_active,omitempty"`
}

// Validate rejects configs the rest of the program cannot work with.
func (c Config) Validate() error {
	if err := validation.ValidateStruct(&c.API,
		validation.Field(&c.API.BaseURL, is.URL),
	); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := validation.ValidateStruct(&c.Sync,
		validation.Field(&c.Sync.DebounceMS, validation.Min(0), validation.Max(60_000)),
	); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	return nil
}

// DefaultConfigPath returns ~/.config/greenplate/config.toml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "greenplate", "config.toml")
}

func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ResolvedBaseURL returns the server URL: GREENPLATE_API_URL, the config
// file, then the local dev default.
func (c Config) ResolvedBaseURL() string {
	if v := os.Getenv("GREENPLATE_API_URL"); v != "" {
		return v
	}
	if c.API.BaseURL != "" {
		return c.API.BaseURL
	}
	return "http://localhost:8000"
}

// ResolvedToken returns the bearer token, GREENPLATE_API_TOKEN taking
// precedence over the config file. Empty means no authentication.
func (c Config) ResolvedToken() string {
	if v := os.Getenv("GREENPLATE_API_TOKEN"); v != "" {
		return v
	}
	return c.API.Token
}

// ResolvedDebounce returns the autosave quiet period (default 700ms).
func (c Config) ResolvedDebounce() time.Duration {
	if c.Sync.DebounceMS > 0 {
		return time.Duration(c.Sync.DebounceMS) * time.Millisecond
	}
	return 700 * time.Millisecond
}

// ResolvedCachePath returns where the local session database lives.
func (c Config) ResolvedCachePath() string {
	if c.Session.CachePath != "" {
		return expandHome(c.Session.CachePath)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "session.db"
	}
	return filepath.Join(home, ".config", "greenplate", "session.db")
}

// ResolvedExportDir returns where downloaded export packages are written.
func (c Config) ResolvedExportDir() string {
	if c.Export.Dir != "" {
		return expandHome(c.Export.Dir)
	}
	return "."
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
