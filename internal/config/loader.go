package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	appDir         = "dcleaner"
	configFileName = "config.json"
	journalFile    = "journal.db"
)

var testConfigPath string

// SetTestConfigPath points ConfigPath at path. Tests only.
func SetTestConfigPath(path string) { testConfigPath = path }

// ResetTestConfigPath restores the default ConfigPath.
func ResetTestConfigPath() { testConfigPath = "" }

// rawConfig mirrors Config on disk. Pointers distinguish "absent" from
// zero values so a partial file only overrides what it names.
type rawConfig struct {
	Scan    *rawScan    `json:"scan,omitempty"`
	Cleanup *rawCleanup `json:"cleanup,omitempty"`
	Journal *rawJournal `json:"journal,omitempty"`
	UI      *rawUI      `json:"ui,omitempty"`
}

type rawScan struct {
	Root        *string  `json:"root,omitempty"`
	SkipDirs    []string `json:"skipDirs"`
	MaxDepth    *int     `json:"maxDepth,omitempty"`
	Concurrency *int     `json:"concurrency,omitempty"`
	Timeout     *string  `json:"timeout,omitempty"`
}

type rawCleanup struct {
	NoticeDuration *string `json:"noticeDuration,omitempty"`
	Timeout        *string `json:"timeout,omitempty"`
}

type rawJournal struct {
	Enabled *bool   `json:"enabled,omitempty"`
	Path    *string `json:"path,omitempty"`
}

type rawUI struct {
	ShowFooter *bool `json:"showFooter,omitempty"`
	ShowClock  *bool `json:"showClock,omitempty"`
}

// Load reads the config from the default location.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the config at path, layering it over the defaults.
// A missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := raw.apply(cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (r *rawConfig) apply(cfg *Config) error {
	if s := r.Scan; s != nil {
		if s.Root != nil {
			cfg.Scan.Root = *s.Root
		}
		if s.SkipDirs != nil {
			cfg.Scan.SkipDirs = s.SkipDirs
		}
		if s.MaxDepth != nil {
			cfg.Scan.MaxDepth = *s.MaxDepth
		}
		if s.Concurrency != nil {
			cfg.Scan.Concurrency = *s.Concurrency
		}
		if err := parseDuration("scan.timeout", s.Timeout, &cfg.Scan.Timeout); err != nil {
			return err
		}
	}
	if c := r.Cleanup; c != nil {
		if err := parseDuration("cleanup.noticeDuration", c.NoticeDuration, &cfg.Cleanup.NoticeDuration); err != nil {
			return err
		}
		if err := parseDuration("cleanup.timeout", c.Timeout, &cfg.Cleanup.Timeout); err != nil {
			return err
		}
	}
	if j := r.Journal; j != nil {
		if j.Enabled != nil {
			cfg.Journal.Enabled = *j.Enabled
		}
		if j.Path != nil {
			cfg.Journal.Path = *j.Path
		}
	}
	if u := r.UI; u != nil {
		if u.ShowFooter != nil {
			cfg.UI.ShowFooter = *u.ShowFooter
		}
		if u.ShowClock != nil {
			cfg.UI.ShowClock = *u.ShowClock
		}
	}
	return nil
}

func parseDuration(key string, s *string, dst *time.Duration) error {
	if s == nil {
		return nil
	}
	d, err := time.ParseDuration(*s)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

// ConfigPath returns $XDG_CONFIG_HOME/dcleaner/config.json
// (~/.config/dcleaner/config.json by default).
func ConfigPath() string {
	if testConfigPath != "" {
		return testConfigPath
	}
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".config", appDir, configFileName)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, appDir, configFileName)
}

// StateDir returns $XDG_STATE_HOME/dcleaner (~/.local/state/dcleaner by
// default). It holds the log file and the cleanup journal.
func StateDir() string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".local", "state", appDir)
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, appDir)
}

// JournalPath returns the configured journal location.
func (c *Config) JournalPath() string {
	if c.Journal.Path != "" {
		return ExpandPath(c.Journal.Path)
	}
	return filepath.Join(StateDir(), journalFile)
}

// ScanRoot returns the expanded discovery root.
func (c *Config) ScanRoot() string {
	return ExpandPath(c.Scan.Root)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
