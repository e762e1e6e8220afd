package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/dcleaner/internal/app"
	"github.com/marcus/dcleaner/internal/backend"
	"github.com/marcus/dcleaner/internal/config"
	"github.com/marcus/dcleaner/internal/discovery"
	"github.com/marcus/dcleaner/internal/journal"
	"github.com/marcus/dcleaner/internal/plugin"
	"github.com/marcus/dcleaner/internal/plugins/cleaner"
	"github.com/marcus/dcleaner/internal/plugins/history"
	"github.com/marcus/dcleaner/internal/project"
	"golang.org/x/term"
)

// Version is set via ldflags at build time.
var Version = ""

var (
	configPath  = flag.String("config", "", "path to config file")
	rootDir     = flag.String("root", "", "directory to explore (overrides scan.root)")
	debugLog    = flag.Bool("debug", false, "enable debug logging")
	listOnly    = flag.Bool("list", false, "print discovered projects as JSON and exit")
	showVersion = flag.Bool("version", false, "print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println("dcleaner", effectiveVersion(Version))
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "dcleaner: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *rootDir != "" {
		cfg.Scan.Root = *rootDir
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logLevel := slog.LevelInfo
	if *debugLog {
		logLevel = slog.LevelDebug
	}
	logOut, closeLog := openLogFile()
	defer closeLog()
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: logLevel}))

	local := backend.NewLocal(backend.Options{
		Root:        cfg.ScanRoot(),
		SkipDirs:    cfg.Scan.SkipDirs,
		MaxDepth:    cfg.Scan.MaxDepth,
		Concurrency: cfg.Scan.Concurrency,
		Logger:      logger,
	})

	if *listOnly {
		return listProjects(os.Stdout, local, cfg)
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("not a terminal; use -list for non-interactive output")
	}

	var j *journal.Journal
	if cfg.Journal.Enabled {
		j, err = journal.Open(cfg.JournalPath())
		if err != nil {
			// Continue without history.
			logger.Warn("journal unavailable", "path", cfg.JournalPath(), "error", err)
			j = nil
		} else {
			defer j.Close()
		}
	}

	registry := plugin.NewRegistry(&plugin.Context{
		Config:  cfg,
		Backend: local,
		Journal: j,
		Logger:  logger,
	})
	for _, p := range []plugin.Plugin{cleaner.New(), history.New()} {
		if err := registry.Register(p); err != nil {
			logger.Warn("plugin registration failed", "error", err)
		}
	}

	logger.Info("starting", "version", effectiveVersion(Version), "root", cfg.ScanRoot())
	model := app.New(registry, cfg, *configPath, logger, effectiveVersion(Version))
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// listProjects runs one discovery and writes the result as JSON.
func listProjects(w io.Writer, ex discovery.Explorer, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if cfg.Scan.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Scan.Timeout)
		defer cancel()
	}

	projects, err := ex.GetHomeProjects(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", discovery.ErrFailure, err)
	}
	if err := project.Validate(projects); err != nil {
		return fmt.Errorf("%w: %w", discovery.ErrMalformed, err)
	}
	if projects == nil {
		projects = []project.Project{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(projects)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// openLogFile opens <state dir>/dcleaner.log for appending. Logging is
// discarded when the file cannot be opened since the TUI owns the terminal.
func openLogFile() (io.Writer, func()) {
	dir := config.StateDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return io.Discard, func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "dcleaner.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return io.Discard, func() {}
	}
	return f, func() { _ = f.Close() }
}

// effectiveVersion returns v, or the module version from build info.
func effectiveVersion(v string) string {
	if v != "" {
		return v
	}
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" {
		return "unknown"
	}
	if info.Main.Version == "(devel)" {
		return "devel"
	}
	return info.Main.Version
}
