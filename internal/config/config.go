package config

import "time"

// Config is the root configuration structure.
type Config struct {
	Scan    ScanConfig    `json:"scan"`
	Cleanup CleanupConfig `json:"cleanup"`
	Journal JournalConfig `json:"journal"`
	UI      UIConfig      `json:"ui"`
}

// ScanConfig configures project discovery.
type ScanConfig struct {
	Root        string        `json:"root"`     // "~" default
	SkipDirs    []string      `json:"skipDirs"` // directory names never entered
	MaxDepth    int           `json:"maxDepth"` // 0 = unlimited
	Concurrency int           `json:"concurrency"`
	Timeout     time.Duration `json:"timeout"` // 0 = no timeout
}

// CleanupConfig configures the cleanup flow.
type CleanupConfig struct {
	NoticeDuration time.Duration `json:"noticeDuration"`
	Timeout        time.Duration `json:"timeout"`
}

// JournalConfig configures the cleanup journal.
type JournalConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"` // empty = <state dir>/journal.db
}

// UIConfig configures UI appearance.
type UIConfig struct {
	ShowFooter bool `json:"showFooter"`
	ShowClock  bool `json:"showClock"`
}

const (
	defaultMaxDepth       = 8
	defaultConcurrency    = 4
	defaultScanTimeout    = 10 * time.Minute
	defaultCleanupTimeout = 10 * time.Minute

	// DefaultNoticeDuration is how long the cleaned notice stays visible.
	DefaultNoticeDuration = 3 * time.Second
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			Root: "~",
			SkipDirs: []string{
				"Library", "Applications", "AppData",
				"snap", "go", ".cargo", ".rustup", ".npm", ".cache",
			},
			MaxDepth:    defaultMaxDepth,
			Concurrency: defaultConcurrency,
			Timeout:     defaultScanTimeout,
		},
		Cleanup: CleanupConfig{
			NoticeDuration: DefaultNoticeDuration,
			Timeout:        defaultCleanupTimeout,
		},
		Journal: JournalConfig{
			Enabled: true,
		},
		UI: UIConfig{
			ShowFooter: true,
			ShowClock:  true,
		},
	}
}

// Validate checks the configuration for errors, correcting values that
// have a safe default.
func (c *Config) Validate() error {
	if c.Scan.Root == "" {
		c.Scan.Root = "~"
	}
	if c.Scan.MaxDepth < 0 {
		c.Scan.MaxDepth = defaultMaxDepth
	}
	if c.Scan.Concurrency <= 0 {
		c.Scan.Concurrency = defaultConcurrency
	}
	if c.Scan.Timeout < 0 {
		c.Scan.Timeout = defaultScanTimeout
	}
	if c.Cleanup.NoticeDuration <= 0 {
		c.Cleanup.NoticeDuration = DefaultNoticeDuration
	}
	if c.Cleanup.Timeout < 0 {
		c.Cleanup.Timeout = defaultCleanupTimeout
	}
	return nil
}
