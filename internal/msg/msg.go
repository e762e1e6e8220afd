// Package msg defines messages shared between the app shell and plugins.
package msg

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultToastDuration is used when a toast does not specify one.
const DefaultToastDuration = 3 * time.Second

// ToastMsg displays a temporary message in the footer.
type ToastMsg struct {
	Message  string
	Duration time.Duration
	IsError  bool
}

// Lifetime returns how long the toast stays up, falling back to
// DefaultToastDuration when Duration is not positive.
func (t ToastMsg) Lifetime() time.Duration {
	if t.Duration <= 0 {
		return DefaultToastDuration
	}
	return t.Duration
}

// ShowToast returns a command that shows a success toast.
func ShowToast(message string, duration time.Duration) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{
			Message:  message,
			Duration: duration,
		}
	}
}

// ShowError returns a command that shows an error toast.
func ShowError(message string, duration time.Duration) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{
			Message:  message,
			Duration: duration,
			IsError:  true,
		}
	}
}

// ErrorMsg reports an error to the app shell for diagnostics.
type ErrorMsg struct {
	Err error
}

// ReportError returns a command that records err as the last error.
func ReportError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}
