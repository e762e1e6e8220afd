package journal

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/dcleaner/internal/project"
)

// RecordedMsg reports the outcome of an asynchronous Record.
type RecordedMsg struct {
	Entry Entry
	Err   error
}

// RecordCmd records a cleanup in the background. It returns nil when j is
// nil so callers can batch it unconditionally.
func RecordCmd(ctx context.Context, j *Journal, p project.Project, bytes int64) tea.Cmd {
	if j == nil {
		return nil
	}
	return func() tea.Msg {
		e, err := j.Record(ctx, p, bytes)
		return RecordedMsg{Entry: e, Err: err}
	}
}
