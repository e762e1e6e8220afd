package cleaner

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/dcleaner/internal/cleanup"
	"github.com/marcus/dcleaner/internal/discovery"
	"github.com/marcus/dcleaner/internal/journal"
	"github.com/marcus/dcleaner/internal/msg"
	"github.com/marcus/dcleaner/internal/plugin"
	"github.com/marcus/dcleaner/internal/project"
)

// Update handles messages.
func (p *Plugin) Update(m tea.Msg) (plugin.Plugin, tea.Cmd) {
	switch m := m.(type) {
	case tea.WindowSizeMsg:
		p.width = m.Width
		p.height = m.Height

	case discovery.ResultMsg:
		return p, p.handleResult(m)

	case cleanup.DoneMsg:
		return p, p.handleDone(m)

	case cleanup.NoticeExpiredMsg:
		if sess, ok := p.sessions.Lookup(m.Path); ok {
			sess.HideNotice(m.Gen)
		}

	case journal.RecordedMsg:
		if m.Err != nil {
			p.ctx.Logger.Error("journal record failed", "error", m.Err)
		}

	case spinner.TickMsg:
		if !p.Busy() {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(m)
		return p, cmd

	case tea.KeyMsg:
		return p.handleKey(m)
	}
	return p, nil
}

// Busy reports whether any collaborator call is in flight.
func (p *Plugin) Busy() bool {
	return p.discovery.Loading() || p.sessions.Cleaning() > 0
}

func (p *Plugin) handleKey(m tea.KeyMsg) (plugin.Plugin, tea.Cmd) {
	switch m.String() {
	case "e":
		return p, p.explore()
	case "j", "down":
		if p.cursor < len(p.discovery.Results())-1 {
			p.cursor++
		}
	case "k", "up":
		if p.cursor > 0 {
			p.cursor--
		}
	case "g", "home":
		p.cursor = 0
	case "G", "end":
		if n := len(p.discovery.Results()); n > 0 {
			p.cursor = n - 1
		}
	case "d", "x":
		e, ok := p.selected()
		if !ok {
			return p, nil
		}
		if p.sessions.InFlight(e.project.Path) {
			return p, p.stillCleaning(e)
		}
		_ = e.session.RequestClean()
	case "y", "enter":
		return p, p.confirm()
	case "n", "esc":
		if e, ok := p.selected(); ok {
			_ = e.session.Cancel()
		}
	case "c":
		return p, p.copyPath()
	}
	return p, nil
}

// explore starts a discovery call. It does nothing while one is pending.
func (p *Plugin) explore() tea.Cmd {
	seq, err := p.discovery.Explore()
	if err != nil {
		return nil
	}
	p.sessions.Reset()
	p.cursor = 0
	p.scroll = 0
	p.ctx.Logger.Info("exploring", "root", p.ctx.Config.ScanRoot(), "seq", seq)
	return tea.Batch(
		discovery.Fetch(p.base, p.ctx.Backend, seq, p.ctx.Config.Scan.Timeout),
		p.spinner.Tick,
	)
}

func (p *Plugin) handleResult(m discovery.ResultMsg) tea.Cmd {
	if !p.discovery.Resolve(m.Seq, m.Projects, m.Err) {
		p.ctx.Logger.Debug("discarding stale discovery result", "seq", m.Seq)
		return nil
	}
	p.lastScan = m.Elapsed

	switch p.discovery.State() {
	case discovery.StateLoaded:
		results := p.discovery.Results()
		p.sessions.Replace(results)
		p.ctx.Logger.Info("discovery complete",
			"projects", len(results),
			"bytes", project.TotalSize(results),
			"elapsed", m.Elapsed)
		return nil

	case discovery.StateFailed:
		err := p.discovery.Err()
		if errors.Is(err, discovery.ErrMalformed) {
			for _, v := range p.discovery.Violations() {
				p.ctx.Logger.Error("malformed project", "violation", v)
			}
		} else {
			p.ctx.Logger.Error("discovery failed", "error", err)
		}
		return msg.ReportError(err)
	}
	return nil
}

// confirm starts the single cleanup call for the selected project.
func (p *Plugin) confirm() tea.Cmd {
	e, ok := p.selected()
	if !ok {
		return nil
	}
	token, err := p.sessions.Confirm(e.project.Path)
	if errors.Is(err, cleanup.ErrInFlight) {
		_ = e.session.Cancel()
		return p.stillCleaning(e)
	}
	if err != nil {
		return nil
	}
	p.ctx.Logger.Info("cleaning", "path", e.project.Path, "attempt", e.session.Attempts(), "token", token)
	return tea.Batch(
		cleanup.Clean(p.base, p.ctx.Backend, e.project, token, p.ctx.Config.Cleanup.Timeout),
		p.spinner.Tick,
	)
}

func (p *Plugin) stillCleaning(e entry) tea.Cmd {
	return msg.ShowError(fmt.Sprintf("%s is still being cleaned", e.project.Name()), msg.DefaultToastDuration)
}

func (p *Plugin) handleDone(m cleanup.DoneMsg) tea.Cmd {
	sess, ok := p.sessions.Finish(m.Project.Path, m.Token)
	if !ok {
		// The result set was replaced while the call was in flight.
		p.ctx.Logger.Info("cleanup finished for replaced session", "path", m.Project.Path, "token", m.Token, "error", m.Err)
		if m.Err == nil {
			return journal.RecordCmd(p.base, p.ctx.Journal, m.Project, m.Reclaimed)
		}
		return nil
	}

	gen, err := sess.Complete(m.Reclaimed, m.Err)
	if err != nil {
		p.ctx.Logger.Error("cleanup completion rejected", "path", m.Project.Path, "error", err)
		return nil
	}
	if m.Err != nil {
		p.ctx.Logger.Error("cleanup failed", "path", m.Project.Path, "error", m.Err)
		return tea.Batch(
			msg.ShowError(fmt.Sprintf("Cleaning %s failed", m.Project.Name()), msg.DefaultToastDuration),
			msg.ReportError(sess.Err()),
		)
	}

	p.ctx.Logger.Info("cleaned", "path", m.Project.Path, "bytes", m.Reclaimed)
	return tea.Batch(
		cleanup.NoticeTimer(m.Project.Path, gen, p.ctx.Config.Cleanup.NoticeDuration),
		journal.RecordCmd(p.base, p.ctx.Journal, m.Project, m.Reclaimed),
	)
}

func (p *Plugin) copyPath() tea.Cmd {
	e, ok := p.selected()
	if !ok {
		return nil
	}
	if err := p.copyToClipboard(e.project.Path); err != nil {
		p.ctx.Logger.Warn("clipboard copy failed", "error", err)
		return msg.ShowError("Copy failed: "+err.Error(), msg.DefaultToastDuration)
	}
	return msg.ShowToast("Copied "+e.project.Path, msg.DefaultToastDuration)
}
