// Package app hosts the plugins in a tabbed bubbletea shell with a header,
// footer, toasts and help and diagnostics overlays.
package app

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/dcleaner/internal/config"
	"github.com/marcus/dcleaner/internal/msg"
	"github.com/marcus/dcleaner/internal/plugin"
)

// ModalKind identifies the overlay drawn over the content.
type ModalKind int

const (
	ModalNone ModalKind = iota
	ModalQuitConfirm
	ModalHelp
	ModalDiagnostics
)

// busyReporter is implemented by plugins with work that quitting would
// abandon.
type busyReporter interface {
	Busy() bool
}

// Model is the root bubbletea model.
type Model struct {
	registry   *plugin.Registry
	configPath string
	logger     *slog.Logger
	version    string
	keys       KeyMap
	help       help.Model

	width        int
	height       int
	ready        bool
	activePlugin int

	showHelp        bool
	showDiagnostics bool
	showQuitConfirm bool
	showFooter      bool
	showClock       bool

	clock     time.Time
	toast     msg.ToastMsg
	toastGen  uint64
	hasToast  bool
	lastError error
}

// New creates the root model. configPath is the file settings changed in the
// UI are written back to; empty means the default location.
func New(registry *plugin.Registry, cfg *config.Config, configPath string, logger *slog.Logger, version string) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	m := Model{
		registry:   registry,
		configPath: configPath,
		logger:     logger,
		version:    version,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		showFooter: cfg.UI.ShowFooter,
		showClock:  cfg.UI.ShowClock,
		clock:      time.Now(),
	}
	if p := m.ActivePlugin(); p != nil {
		p.SetFocused(true)
	}
	return m
}

// Init starts the plugins and the clock.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.registry.Start()}
	if m.showClock {
		cmds = append(cmds, tickCmd())
	}
	return tea.Batch(cmds...)
}

// ActivePlugin returns the plugin shown in the content area.
func (m Model) ActivePlugin() plugin.Plugin {
	plugins := m.registry.Plugins()
	if m.activePlugin < 0 || m.activePlugin >= len(plugins) {
		return nil
	}
	return plugins[m.activePlugin]
}

// activeModal returns the overlay to draw. Quit confirmation wins over help,
// help wins over diagnostics.
func (m Model) activeModal() ModalKind {
	switch {
	case m.showQuitConfirm:
		return ModalQuitConfirm
	case m.showHelp:
		return ModalHelp
	case m.showDiagnostics:
		return ModalDiagnostics
	}
	return ModalNone
}

// busy reports whether any plugin has work in flight.
func (m Model) busy() bool {
	for _, p := range m.registry.Plugins() {
		if b, ok := p.(busyReporter); ok && b.Busy() {
			return true
		}
	}
	return false
}

// focusPlugin switches the active tab to idx.
func (m *Model) focusPlugin(idx int) tea.Cmd {
	plugins := m.registry.Plugins()
	if len(plugins) == 0 {
		return nil
	}
	idx = (idx%len(plugins) + len(plugins)) % len(plugins)
	if idx == m.activePlugin {
		return nil
	}
	if cur := m.ActivePlugin(); cur != nil {
		cur.SetFocused(false)
	}
	m.activePlugin = idx
	next := plugins[idx]
	next.SetFocused(true)
	return m.updatePlugin(next, plugin.PluginFocusedMsg{})
}

// updatePlugin forwards msg to p and stores the returned instance.
func (m *Model) updatePlugin(p plugin.Plugin, msg tea.Msg) tea.Cmd {
	updated, cmd := p.Update(msg)
	if updated != nil && updated != p {
		m.registry.Replace(updated)
	}
	return cmd
}

// contentHeight returns the height available to plugins.
func (m Model) contentHeight() int {
	h := m.height - headerHeight
	if m.showFooter {
		h -= footerHeight
	}
	return max(h, 1)
}
