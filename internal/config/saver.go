package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Save writes cfg to ConfigPath.
func Save(cfg *Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes cfg to path. Keys in an existing file that Config does not
// manage are preserved.
func SaveTo(path string, cfg *Config) error {
	merged := make(map[string]json.RawMessage)
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, &merged); err != nil {
			return fmt.Errorf("parse existing config: %w", err)
		}
	}

	managed, err := json.Marshal(toRaw(cfg))
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(managed, &fields); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	for k, v := range fields {
		merged[k] = v
	}

	out, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(out, '\n'), 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return os.Rename(tmp, path)
}

// toRaw converts cfg to its on-disk form with every field present.
func toRaw(cfg *Config) rawConfig {
	str := func(s string) *string { return &s }
	num := func(n int) *int { return &n }
	flag := func(b bool) *bool { return &b }

	skip := cfg.Scan.SkipDirs
	if skip == nil {
		skip = []string{}
	}
	return rawConfig{
		Scan: &rawScan{
			Root:        str(cfg.Scan.Root),
			SkipDirs:    skip,
			MaxDepth:    num(cfg.Scan.MaxDepth),
			Concurrency: num(cfg.Scan.Concurrency),
			Timeout:     str(cfg.Scan.Timeout.String()),
		},
		Cleanup: &rawCleanup{
			NoticeDuration: str(cfg.Cleanup.NoticeDuration.String()),
			Timeout:        str(cfg.Cleanup.Timeout.String()),
		},
		Journal: &rawJournal{
			Enabled: flag(cfg.Journal.Enabled),
			Path:    str(cfg.Journal.Path),
		},
		UI: &rawUI{
			ShowFooter: flag(cfg.UI.ShowFooter),
			ShowClock:  flag(cfg.UI.ShowClock),
		},
	}
}
