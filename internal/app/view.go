package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/dcleaner/internal/plugin"
	"github.com/marcus/dcleaner/internal/styles"
)

const (
	headerHeight = 1
	footerHeight = 1
)

// View renders the entire application UI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderContent(m.width, m.contentHeight()))
	if m.showFooter {
		b.WriteString("\n")
		b.WriteString(m.renderFooter())
	}

	switch m.activeModal() {
	case ModalQuitConfirm:
		return m.renderOverlay(m.buildQuitConfirmContent())
	case ModalHelp:
		return m.renderOverlay(m.buildHelpContent())
	case ModalDiagnostics:
		return m.renderOverlay(m.buildDiagnosticsContent())
	}
	return b.String()
}

// renderHeader renders the top bar with title, tabs, and clock.
func (m Model) renderHeader() string {
	title := styles.AppTitle.Render("DCleaner")

	plugins := m.registry.Plugins()
	tabs := make([]string, 0, len(plugins))
	for i, p := range plugins {
		label := fmt.Sprintf(" %s %s ", p.Icon(), p.Name())
		if i == m.activePlugin {
			tabs = append(tabs, styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, styles.TabInactive.Render(label))
		}
	}
	tabBar := strings.Join(tabs, "")

	var clock string
	if m.showClock {
		clock = styles.Muted.Render(m.clock.Format("15:04") + " ")
	}

	spacing := max(m.width-lipgloss.Width(title)-lipgloss.Width(tabBar)-lipgloss.Width(clock), 0)
	header := title + strings.Repeat(" ", spacing/2) + tabBar + strings.Repeat(" ", spacing-spacing/2) + clock
	return styles.Header.Width(m.width).Render(header)
}

// renderContent renders the main content area.
func (m Model) renderContent(width, height int) string {
	p := m.ActivePlugin()
	if p == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, styles.Muted.Render("No plugins loaded"))
	}
	return p.View(width, height)
}

// renderFooter renders key hints, the toast and the version.
func (m Model) renderFooter() string {
	hints := styles.KeyHint.Render(m.contextHints())

	var status string
	if m.hasToast {
		if m.toast.IsError {
			status = styles.ToastError.Render(m.toast.Message)
		} else {
			status = styles.ToastInfo.Render(m.toast.Message)
		}
	}

	version := styles.Subtle.Render(m.version + " ")

	spacing := max(m.width-lipgloss.Width(hints)-lipgloss.Width(status)-lipgloss.Width(version), 0)
	footer := hints + strings.Repeat(" ", spacing/2) + status + strings.Repeat(" ", spacing-spacing/2) + version
	return styles.Footer.Width(m.width).Render(footer)
}

// contextHints lists the active plugin's commands, then the global ones.
func (m Model) contextHints() string {
	var parts []string
	if p := m.ActivePlugin(); p != nil {
		cmds := p.Commands()
		sort.SliceStable(cmds, func(i, j int) bool { return cmds[i].Priority < cmds[j].Priority })
		for _, c := range cmds {
			if c.Key != "" {
				parts = append(parts, c.Key+" "+strings.ToLower(c.Name))
			}
		}
	}
	parts = append(parts, m.help.ShortHelpView(m.keys.ShortHelp()))
	return " " + strings.Join(parts, "  ")
}

// renderOverlay centers a modal over the screen.
func (m Model) renderOverlay(content string) string {
	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalBox.Render(content),
		lipgloss.WithWhitespaceChars(" "),
	)
}

func (m Model) buildQuitConfirmContent() string {
	var b strings.Builder
	b.WriteString(styles.ModalTitle.Render("Quit DCleaner?"))
	b.WriteString("\n\n")
	b.WriteString("A cleanup or exploration is still running.\n")
	b.WriteString("Its result will not be shown.\n\n")
	b.WriteString(styles.Subtle.Render("y quit  n stay"))
	return b.String()
}

// buildHelpContent creates the help modal content.
func (m Model) buildHelpContent() string {
	var b strings.Builder
	b.WriteString(styles.ModalTitle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(styles.Title.Render("Global"))
	b.WriteString("\n")
	b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	b.WriteString("\n")

	if p := m.ActivePlugin(); p != nil {
		byCategory := make(map[plugin.Category][]plugin.Command)
		for _, c := range p.Commands() {
			byCategory[c.Category] = append(byCategory[c.Category], c)
		}
		for _, cat := range []plugin.Category{plugin.CategoryNavigation, plugin.CategoryActions, plugin.CategoryView} {
			cmds := byCategory[cat]
			if len(cmds) == 0 {
				continue
			}
			b.WriteString("\n")
			b.WriteString(styles.Title.Render(string(cat)))
			b.WriteString("\n")
			for _, c := range cmds {
				b.WriteString(styles.Muted.Render(fmt.Sprintf("  %-9s", c.Key)) + "  " + c.Description + "\n")
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.Subtle.Render("Press esc to close"))
	return b.String()
}

// buildDiagnosticsContent creates the diagnostics modal content.
func (m Model) buildDiagnosticsContent() string {
	var b strings.Builder
	b.WriteString(styles.ModalTitle.Render("Diagnostics"))
	b.WriteString("\n\n")

	b.WriteString(styles.Title.Render("Plugins"))
	b.WriteString("\n")

	plugins := m.registry.Plugins()
	for _, p := range plugins {
		for _, d := range p.Diagnostics() {
			b.WriteString(fmt.Sprintf("  %s %s: %s\n", statusIcon(d.Status), d.ID, d.Detail))
		}
	}

	unavail := m.registry.Unavailable()
	ids := make([]string, 0, len(unavail))
	for id := range unavail {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		b.WriteString(fmt.Sprintf("  %s %s: %s\n", statusIcon("error"), id, unavail[id]))
	}

	if len(plugins) == 0 && len(unavail) == 0 {
		b.WriteString(styles.Muted.Render("  No plugins registered"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.lastError != nil {
		b.WriteString(styles.Title.Render("Last Error"))
		b.WriteString("\n")
		b.WriteString(styles.StatusFailed.Render("  " + m.lastError.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.Subtle.Render("Press esc to close"))
	return b.String()
}

func statusIcon(status string) string {
	switch status {
	case "ok":
		return styles.StatusCleaned.Render("✓")
	case "error":
		return styles.StatusFailed.Render("✗")
	case "warn":
		return styles.StatusWorking.Render("!")
	default:
		return styles.Subtle.Render("-")
	}
}
