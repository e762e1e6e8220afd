package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/dcleaner/internal/config"
	"github.com/marcus/dcleaner/internal/msg"
)

// Message types for tea.Cmd
type (
	// TickMsg is sent on each clock tick.
	TickMsg time.Time

	// toastExpiredMsg clears the toast identified by gen.
	toastExpiredMsg struct {
		gen uint64
	}
)

// tickCmd returns a command that ticks every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// expireToast schedules removal of the current toast.
func expireToast(gen uint64, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return toastExpiredMsg{gen: gen}
	})
}

// saveFooter persists the footer visibility to the config file at path, or
// the default location when path is empty. Only ui.showFooter changes;
// every other key keeps its on-disk value.
func saveFooter(path string, show bool) tea.Cmd {
	if path == "" {
		path = config.ConfigPath()
	}
	return func() tea.Msg {
		cfg, err := config.LoadFrom(path)
		if err != nil {
			return msg.ErrorMsg{Err: fmt.Errorf("save footer setting: %w", err)}
		}
		cfg.UI.ShowFooter = show
		if err := config.SaveTo(path, cfg); err != nil {
			return msg.ErrorMsg{Err: fmt.Errorf("save footer setting: %w", err)}
		}
		return nil
	}
}
