// Package cleaner is the main DCleaner view: it explores the home
// directory for projects and drives the per-project cleanup workflow.
package cleaner

import (
	"context"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/dcleaner/internal/cleanup"
	"github.com/marcus/dcleaner/internal/config"
	"github.com/marcus/dcleaner/internal/discovery"
	"github.com/marcus/dcleaner/internal/plugin"
	"github.com/marcus/dcleaner/internal/project"
)

const (
	pluginID   = "cleaner"
	pluginName = "projects"
	pluginIcon = "D"

	focusList    = "cleaner-list"
	focusConfirm = "cleaner-confirm"
)

// Plugin implements the project list and cleanup workflow.
type Plugin struct {
	ctx     *plugin.Context
	focused bool
	width   int
	height  int

	discovery *discovery.Session
	sessions  *cleanup.Set
	cursor    int
	scroll    int

	spinner  spinner.Model
	lastScan time.Duration

	// background context for collaborator calls; cancelled on Stop
	base   context.Context
	cancel context.CancelFunc

	copyToClipboard func(string) error
}

// New creates a new cleaner plugin.
func New() *Plugin {
	return &Plugin{
		discovery:       discovery.New(),
		sessions:        cleanup.NewSet(),
		spinner:         spinner.New(spinner.WithSpinner(spinner.Dot)),
		copyToClipboard: clipboard.WriteAll,
	}
}

// ID returns the plugin identifier.
func (p *Plugin) ID() string { return pluginID }

// Name returns the plugin display name.
func (p *Plugin) Name() string { return pluginName }

// Icon returns the plugin icon.
func (p *Plugin) Icon() string { return pluginIcon }

// IsFocused returns whether the plugin is focused.
func (p *Plugin) IsFocused() bool { return p.focused }

// SetFocused sets the focus state.
func (p *Plugin) SetFocused(f bool) { p.focused = f }

// Init initializes the plugin with context. Every launch starts idle.
func (p *Plugin) Init(ctx *plugin.Context) error {
	p.ctx = ctx
	if p.ctx.Config == nil {
		p.ctx.Config = config.Default()
	}
	if p.ctx.Logger == nil {
		p.ctx.Logger = slog.New(slog.DiscardHandler)
	}
	p.discovery = discovery.New()
	p.sessions = cleanup.NewSet()
	p.cursor = 0
	p.scroll = 0
	p.base, p.cancel = context.WithCancel(context.Background())
	return nil
}

// Start begins async operations. Discovery only runs on user request.
func (p *Plugin) Start() tea.Cmd {
	return nil
}

// Stop tears down notice timers and abandons in-flight calls.
func (p *Plugin) Stop() {
	p.sessions.Reset()
	if p.cancel != nil {
		p.cancel()
	}
}

// entry pairs a discovered project with its cleanup session.
type entry struct {
	project project.Project
	session *cleanup.Session
}

// selected returns the entry under the cursor.
func (p *Plugin) selected() (entry, bool) {
	results := p.discovery.Results()
	if p.cursor < 0 || p.cursor >= len(results) {
		return entry{}, false
	}
	proj := results[p.cursor]
	return entry{project: proj, session: p.sessions.Get(proj.Path)}, true
}
