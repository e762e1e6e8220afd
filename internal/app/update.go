package app

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/dcleaner/internal/msg"
)

// Update handles messages. Keys go to the active plugin unless the shell
// consumes them; every other message is broadcast to all plugins.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		m.ready = true
		m.help.Width = message.Width
		return m, m.broadcast(tea.WindowSizeMsg{Width: message.Width, Height: m.contentHeight()})

	case TickMsg:
		m.clock = time.Time(message)
		return m, tickCmd()

	case msg.ToastMsg:
		m.toast = message
		m.hasToast = true
		m.toastGen++
		return m, expireToast(m.toastGen, message.Lifetime())

	case toastExpiredMsg:
		if message.gen == m.toastGen {
			m.hasToast = false
		}
		return m, nil

	case msg.ErrorMsg:
		if message.Err != nil {
			m.lastError = message.Err
			m.logger.Error("reported error", "error", message.Err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(message)
	}

	return m, m.broadcast(message)
}

func (m Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(k, m.keys.ForceQuit) {
		return m.quit()
	}

	switch m.activeModal() {
	case ModalQuitConfirm:
		switch k.String() {
		case "y", "enter":
			return m.quit()
		case "n", "esc", "q":
			m.showQuitConfirm = false
		}
		return m, nil
	case ModalHelp:
		if key.Matches(k, m.keys.Help, m.keys.Close, m.keys.Quit) {
			m.showHelp = false
		}
		return m, nil
	case ModalDiagnostics:
		if key.Matches(k, m.keys.Diagnostics, m.keys.Close, m.keys.Quit) {
			m.showDiagnostics = false
		}
		return m, nil
	}

	switch {
	case key.Matches(k, m.keys.Quit):
		if m.busy() {
			m.showQuitConfirm = true
			return m, nil
		}
		return m.quit()
	case key.Matches(k, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(k, m.keys.Diagnostics):
		m.showDiagnostics = true
		return m, nil
	case key.Matches(k, m.keys.Footer):
		m.showFooter = !m.showFooter
		return m, tea.Batch(
			m.broadcast(tea.WindowSizeMsg{Width: m.width, Height: m.contentHeight()}),
			saveFooter(m.configPath, m.showFooter),
		)
	case key.Matches(k, m.keys.NextTab):
		return m, m.focusPlugin(m.activePlugin + 1)
	case key.Matches(k, m.keys.PrevTab):
		return m, m.focusPlugin(m.activePlugin - 1)
	}

	if s := k.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		if idx := int(s[0] - '1'); idx < len(m.registry.Plugins()) {
			return m, m.focusPlugin(idx)
		}
	}

	p := m.ActivePlugin()
	if p == nil {
		return m, nil
	}
	return m, m.updatePlugin(p, k)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.registry.Stop()
	return m, tea.Quit
}

// broadcast forwards message to every plugin.
func (m *Model) broadcast(message tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for _, p := range m.registry.Plugins() {
		if cmd := m.updatePlugin(p, message); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}
