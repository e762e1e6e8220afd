// Package plugin defines the contract between the app shell and the
// feature plugins it hosts.
package plugin

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/dcleaner/internal/backend"
	"github.com/marcus/dcleaner/internal/config"
	"github.com/marcus/dcleaner/internal/journal"
)

// Plugin is a tab in the app shell.
type Plugin interface {
	ID() string
	Name() string
	Icon() string
	Init(ctx *Context) error
	Start() tea.Cmd
	Stop()
	Update(msg tea.Msg) (Plugin, tea.Cmd)
	View(width, height int) string
	IsFocused() bool
	SetFocused(bool)
	Commands() []Command
	FocusContext() string
	Diagnostics() []Diagnostic
}

// Context carries shared dependencies into plugins.
type Context struct {
	Config  *config.Config
	Backend backend.Backend
	Journal *journal.Journal // nil when the journal is disabled
	Logger  *slog.Logger
}

// Category groups commands in the help overlay.
type Category string

const (
	CategoryNavigation Category = "Navigation"
	CategoryActions    Category = "Actions"
	CategoryView       Category = "View"
)

// Command is a key binding advertised in the footer and help overlay.
type Command struct {
	ID          string
	Name        string
	Key         string
	Description string
	Context     string
	Priority    int
	Category    Category
}

// Diagnostic reports plugin health.
type Diagnostic struct {
	ID     string
	Status string // "ok", "warn", "error", "disabled"
	Detail string
}

// PluginFocusedMsg is sent to a plugin when it becomes the active tab.
type PluginFocusedMsg struct{}
