package discovery

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/dcleaner/internal/project"
)

// Explorer is the discovery collaborator.
type Explorer interface {
	GetHomeProjects(ctx context.Context) ([]project.Project, error)
}

// ResultMsg carries the outcome of one discovery call.
type ResultMsg struct {
	Seq      uint64
	Projects []project.Project
	Err      error
	Elapsed  time.Duration
}

// Fetch returns a command that performs exactly one discovery call.
// A positive timeout bounds the call; it has no other cancellation.
func Fetch(ctx context.Context, ex Explorer, seq uint64, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		callCtx := ctx
		if timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		start := time.Now()
		projects, err := ex.GetHomeProjects(callCtx)
		return ResultMsg{
			Seq:      seq,
			Projects: projects,
			Err:      err,
			Elapsed:  time.Since(start),
		}
	}
}
