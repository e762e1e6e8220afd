package cleanup

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/dcleaner/internal/project"
)

// Cleaner is the cleanup collaborator.
type Cleaner interface {
	CleanProject(ctx context.Context, p project.Project) (int64, error)
}

// DoneMsg carries the outcome of one cleanup call. Token is the value
// returned by Set.Confirm for that call.
type DoneMsg struct {
	Project   project.Project
	Token     uint64
	Reclaimed int64
	Err       error
}

// NoticeExpiredMsg hides the success notice of the session at Path if Gen
// is still current.
type NoticeExpiredMsg struct {
	Path string
	Gen  uint64
}

// Clean returns a command that performs exactly one cleanup call for p,
// passing the record exactly as discovered.
func Clean(ctx context.Context, c Cleaner, p project.Project, token uint64, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		callCtx := ctx
		if timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		n, err := c.CleanProject(callCtx, p)
		return DoneMsg{Project: p, Token: token, Reclaimed: n, Err: err}
	}
}

// NoticeTimer schedules the expiry of the success notice.
func NoticeTimer(path string, gen uint64, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return NoticeExpiredMsg{Path: path, Gen: gen}
	})
}
