// Package history lists the cleanups recorded in the journal.
package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/dcleaner/internal/journal"
	"github.com/marcus/dcleaner/internal/plugin"
	"github.com/marcus/dcleaner/internal/project"
	"github.com/marcus/dcleaner/internal/styles"
	"github.com/mattn/go-runewidth"
)

const (
	pluginID   = "history"
	pluginName = "history"
	pluginIcon = "H"

	recentLimit  = 200
	queryTimeout = 5 * time.Second
	nameColumn   = 24
	panelChrome  = 4 // border and padding on both sides
)

// loadedMsg carries a journal snapshot.
type loadedMsg struct {
	entries []journal.Entry
	count   int
	bytes   int64
	err     error
}

// Plugin displays the cleanup journal.
type Plugin struct {
	ctx     *plugin.Context
	focused bool
	width   int
	height  int

	entries []journal.Entry
	count   int
	bytes   int64
	err     error
	cursor  int
	scroll  int
}

// New creates a new history plugin.
func New() *Plugin {
	return &Plugin{}
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

// Init initializes the plugin with context.
func (p *Plugin) Init(ctx *plugin.Context) error {
	p.ctx = ctx
	p.entries = nil
	p.cursor = 0
	p.scroll = 0
	return nil
}

// Start loads the journal.
func (p *Plugin) Start() tea.Cmd {
	return p.load()
}

// Stop cleans up plugin resources.
func (p *Plugin) Stop() {}

// Update handles messages.
func (p *Plugin) Update(msg tea.Msg) (plugin.Plugin, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height

	case plugin.PluginFocusedMsg:
		return p, p.load()

	case journal.RecordedMsg:
		if msg.Err == nil {
			return p, p.load()
		}

	case loadedMsg:
		p.err = msg.err
		if msg.err != nil {
			p.ctx.Logger.Error("load journal", "error", msg.err)
			return p, nil
		}
		p.entries = msg.entries
		p.count = msg.count
		p.bytes = msg.bytes
		if p.cursor >= len(p.entries) {
			p.cursor = max(len(p.entries)-1, 0)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if p.cursor < len(p.entries)-1 {
				p.cursor++
			}
		case "k", "up":
			if p.cursor > 0 {
				p.cursor--
			}
		case "r":
			return p, p.load()
		}
	}
	return p, nil
}

func (p *Plugin) load() tea.Cmd {
	j := p.ctx.Journal
	if j == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()
		entries, err := j.Recent(ctx, recentLimit)
		if err != nil {
			return loadedMsg{err: err}
		}
		count, bytes, err := j.Total(ctx)
		return loadedMsg{entries: entries, count: count, bytes: bytes, err: err}
	}
}

// View renders the plugin.
func (p *Plugin) View(width, height int) string {
	p.width = width
	p.height = height

	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Cleanup history"))
	sb.WriteString("\n")

	switch {
	case p.ctx.Journal == nil:
		sb.WriteString(styles.Muted.Render("The journal is disabled. Set journal.enabled in the config file to keep a history."))
	case p.err != nil:
		sb.WriteString(styles.StatusFailed.Render("Failed to read journal: " + p.err.Error()))
	case len(p.entries) == 0:
		sb.WriteString(styles.Muted.Render("No cleanups recorded yet."))
	default:
		sb.WriteString(styles.Muted.Render(fmt.Sprintf("%d cleanups · %s reclaimed", p.count, project.FormatBytes(p.bytes))))
		panelHeight := max(height-styles.ContentHeight(sb.String()), 3)
		sb.WriteString("\n")
		sb.WriteString(styles.RenderPanel(p.renderRows(panelHeight-2), width, panelHeight, p.focused))
	}

	return lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height).Render(sb.String())
}

func (p *Plugin) renderRows(visible int) string {
	visible = max(visible, 1)
	if p.cursor < p.scroll {
		p.scroll = p.cursor
	}
	if p.cursor >= p.scroll+visible {
		p.scroll = p.cursor - visible + 1
	}

	end := min(p.scroll+visible, len(p.entries))
	rows := make([]string, 0, end-p.scroll)
	for i := p.scroll; i < end; i++ {
		rows = append(rows, p.renderRow(p.entries[i], i == p.cursor))
	}
	return strings.Join(rows, "\n")
}

func (p *Plugin) renderRow(e journal.Entry, selected bool) string {
	name := runewidth.FillRight(runewidth.Truncate(e.Name(), nameColumn, "…"), nameColumn)
	when := e.CleanedAt.Local().Format("2006-01-02 15:04")
	size := runewidth.FillLeft(project.FormatBytes(e.Bytes), 10)

	line := fmt.Sprintf("%s  %s  %s  %s", name, size, when, e.Path)
	if w := p.width - panelChrome; w > 0 {
		line = runewidth.Truncate(line, w, "…")
	}
	if selected {
		return styles.ListItemSelected.Render(line)
	}
	return styles.Body.Render(line)
}

// Commands returns the available commands for the footer.
func (p *Plugin) Commands() []plugin.Command {
	return []plugin.Command{
		{ID: "refresh", Name: "Refresh", Key: "r", Description: "Reload the journal", Context: pluginID, Priority: 1, Category: plugin.CategoryActions},
	}
}

// FocusContext returns the current focus context.
func (p *Plugin) FocusContext() string { return pluginID }

// Diagnostics returns plugin health info.
func (p *Plugin) Diagnostics() []plugin.Diagnostic {
	if p.ctx.Journal == nil {
		return []plugin.Diagnostic{{ID: pluginID, Status: "disabled", Detail: "journal disabled"}}
	}
	if p.err != nil {
		return []plugin.Diagnostic{{ID: pluginID, Status: "error", Detail: p.err.Error()}}
	}
	return []plugin.Diagnostic{{ID: pluginID, Status: "ok", Detail: fmt.Sprintf("%d cleanups", p.count)}}
}
