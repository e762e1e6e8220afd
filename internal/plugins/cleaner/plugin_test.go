package cleaner

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/dcleaner/internal/cleanup"
	"github.com/marcus/dcleaner/internal/config"
	"github.com/marcus/dcleaner/internal/discovery"
	"github.com/marcus/dcleaner/internal/journal"
	"github.com/marcus/dcleaner/internal/msg"
	"github.com/marcus/dcleaner/internal/plugin"
	"github.com/marcus/dcleaner/internal/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	projects    []project.Project
	discoverErr error
	reclaimed   int64
	cleanErr    error

	discoverCalls atomic.Int32
	cleanCalls    atomic.Int32
}

func (f *fakeBackend) GetHomeProjects(context.Context) ([]project.Project, error) {
	f.discoverCalls.Add(1)
	return f.projects, f.discoverErr
}

func (f *fakeBackend) CleanProject(context.Context, project.Project) (int64, error) {
	f.cleanCalls.Add(1)
	return f.reclaimed, f.cleanErr
}

var app1 = project.Project{
	Path:     "/home/u/app1",
	BaseType: project.NPM,
	Variants: []project.Variant{project.NextJS},
	Size:     1048576,
}

func newTestPlugin(t *testing.T, fb *fakeBackend) *Plugin {
	t.Helper()
	cfg := config.Default()
	cfg.Cleanup.NoticeDuration = time.Millisecond
	p := New()
	require.NoError(t, p.Init(&plugin.Context{
		Config:  cfg,
		Backend: fb,
		Logger:  slog.New(slog.DiscardHandler),
	}))
	t.Cleanup(p.Stop)
	p.width = 120
	p.height = 40
	return p
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// drain runs cmd and every command it batches, returning the messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	m := cmd()
	if batch, ok := m.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{m}
}

func find[T tea.Msg](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func press(p *Plugin, k string) tea.Cmd {
	_, cmd := p.Update(keyMsg(k))
	return cmd
}

// explore presses e and feeds the discovery result back.
func explore(t *testing.T, p *Plugin) {
	t.Helper()
	msgs := drain(press(p, "e"))
	res, ok := find[discovery.ResultMsg](msgs)
	require.True(t, ok)
	p.Update(res)
}

func TestInitialStateIsIdle(t *testing.T) {
	fb := &fakeBackend{}
	p := newTestPlugin(t, fb)

	assert.Nil(t, p.Start(), "discovery only runs on request")
	assert.Equal(t, discovery.StateIdle, p.discovery.State())

	view := p.View(120, 40)
	assert.Contains(t, view, "DCleaner")
	assert.Contains(t, view, "Clean your dependencies and cache folders")
	assert.Contains(t, view, "Explore home directory")
	assert.Zero(t, fb.discoverCalls.Load())
}

func TestExplore_ShowsSkeletonWhileLoading(t *testing.T) {
	p := newTestPlugin(t, &fakeBackend{projects: []project.Project{app1}})

	cmd := press(p, "e")
	require.NotNil(t, cmd)
	assert.True(t, p.discovery.Loading())

	view := p.View(120, 40)
	assert.Contains(t, view, "Exploring...")
	assert.NotContains(t, view, "Explore home directory")
	assert.Equal(t, discovery.PlaceholderCount, strings.Count(view, strings.Repeat("▇", 24)))
	assert.NotContains(t, view, "app1")
}

func TestExplore_IgnoredWhileLoading(t *testing.T) {
	fb := &fakeBackend{projects: []project.Project{app1}}
	p := newTestPlugin(t, fb)

	first := press(p, "e")
	assert.Nil(t, press(p, "e"))

	drain(first)
	assert.Equal(t, int32(1), fb.discoverCalls.Load())
}

func TestExplore_LoadedScenario(t *testing.T) {
	p := newTestPlugin(t, &fakeBackend{projects: []project.Project{app1}})
	explore(t, p)

	require.Equal(t, discovery.StateLoaded, p.discovery.State())
	view := p.View(120, 40)
	assert.Contains(t, view, "app1")
	assert.Contains(t, view, "1.0 MiB")
	assert.Contains(t, view, "NPM")
	assert.Contains(t, view, "Next")
	assert.Contains(t, view, "1 projects · 1.0 MiB reclaimable")
	assert.NotContains(t, view, "Exploring...")
}

func TestExplore_Failure(t *testing.T) {
	p := newTestPlugin(t, &fakeBackend{discoverErr: errors.New("permission denied")})

	msgs := drain(press(p, "e"))
	res, ok := find[discovery.ResultMsg](msgs)
	require.True(t, ok)
	_, cmd := p.Update(res)

	assert.Equal(t, discovery.StateFailed, p.discovery.State())
	reported, ok := find[msg.ErrorMsg](drain(cmd))
	require.True(t, ok)
	assert.ErrorIs(t, reported.Err, discovery.ErrFailure)

	view := p.View(120, 40)
	assert.Contains(t, view, "permission denied")
	assert.NotContains(t, view, strings.Repeat("▇", 24))
	assert.Equal(t, "error", p.Diagnostics()[0].Status)
}

func TestExplore_MalformedResult(t *testing.T) {
	p := newTestPlugin(t, &fakeBackend{projects: []project.Project{app1, app1}})
	explore(t, p)

	assert.Equal(t, discovery.StateFailed, p.discovery.State())
	assert.Contains(t, p.View(120, 40), "malformed discovery result")

	var malformed int
	for _, d := range p.Diagnostics() {
		if d.ID == "malformed" {
			malformed++
		}
	}
	assert.Equal(t, 1, malformed)
}

func TestCancelMakesNoCall(t *testing.T) {
	fb := &fakeBackend{projects: []project.Project{app1}, reclaimed: 1048576}
	p := newTestPlugin(t, fb)
	explore(t, p)

	assert.Nil(t, press(p, "d"))
	assert.Equal(t, focusConfirm, p.FocusContext())
	assert.Contains(t, p.View(120, 40), "Delete artifacts? y/n")

	assert.Nil(t, press(p, "esc"))
	assert.Equal(t, focusList, p.FocusContext())
	assert.Zero(t, fb.cleanCalls.Load())
}

func TestCleanSuccess(t *testing.T) {
	fb := &fakeBackend{projects: []project.Project{app1}, reclaimed: 1048576}
	p := newTestPlugin(t, fb)
	explore(t, p)

	press(p, "x")
	cmd := press(p, "y")
	require.NotNil(t, cmd)
	assert.Nil(t, press(p, "y"), "confirming twice makes no second call")

	sess := p.sessions.Get(app1.Path)
	assert.Equal(t, cleanup.StateCleaning, sess.State())
	assert.Contains(t, p.View(120, 40), "Cleaning...")

	done, ok := find[cleanup.DoneMsg](drain(cmd))
	require.True(t, ok)
	assert.Equal(t, int32(1), fb.cleanCalls.Load())

	_, cmd = p.Update(done)
	assert.Equal(t, cleanup.StateCleaned, sess.State())
	assert.Equal(t, int64(1048576), sess.Reclaimed())
	view := p.View(120, 40)
	assert.Contains(t, view, "Cleaned 1.0 MiB")
	assert.Contains(t, view, "1.0 MiB reclaimed from 1")

	expired, ok := find[cleanup.NoticeExpiredMsg](drain(cmd))
	require.True(t, ok)
	p.Update(expired)
	assert.False(t, sess.NoticeVisible())
	view = p.View(120, 40)
	assert.NotContains(t, view, "Cleaned 1.0 MiB")
	assert.Contains(t, view, iconCleaned)
}

func TestCleanFailureReturnsToIdle(t *testing.T) {
	fb := &fakeBackend{projects: []project.Project{app1}, cleanErr: errors.New("disk on fire")}
	p := newTestPlugin(t, fb)
	explore(t, p)

	press(p, "d")
	done, ok := find[cleanup.DoneMsg](drain(press(p, "enter")))
	require.True(t, ok)

	_, cmd := p.Update(done)
	sess := p.sessions.Get(app1.Path)
	assert.Equal(t, cleanup.StateIdle, sess.State())
	assert.ErrorIs(t, sess.Err(), cleanup.ErrFailure)

	msgs := drain(cmd)
	toast, ok := find[msg.ToastMsg](msgs)
	require.True(t, ok)
	assert.True(t, toast.IsError)
	_, ok = find[msg.ErrorMsg](msgs)
	assert.True(t, ok)
	assert.Contains(t, p.View(120, 40), "disk on fire")

	// The user may try again.
	press(p, "d")
	assert.Equal(t, cleanup.StateConfirming, sess.State())
}

func TestCleanResultAfterReexploreIsDropped(t *testing.T) {
	fb := &fakeBackend{projects: []project.Project{app1}, reclaimed: 10}
	p := newTestPlugin(t, fb)
	explore(t, p)

	press(p, "d")
	cleanCmd := press(p, "y")
	explore(t, p)

	done, ok := find[cleanup.DoneMsg](drain(cleanCmd))
	require.True(t, ok)
	p.Update(done)
	assert.Equal(t, cleanup.StateIdle, p.sessions.Get(app1.Path).State())
}

func TestReexploreKeepsCleanCallInFlight(t *testing.T) {
	fb := &fakeBackend{projects: []project.Project{app1}, reclaimed: 10}
	p := newTestPlugin(t, fb)
	explore(t, p)

	press(p, "d")
	firstCmd := press(p, "y")
	require.NotNil(t, firstCmd)
	explore(t, p)

	assert.True(t, p.Busy(), "quitting still needs confirmation")
	assert.Contains(t, p.View(120, 40), "Cleaning...")

	sess := p.sessions.Get(app1.Path)
	toast, ok := find[msg.ToastMsg](drain(press(p, "d")))
	require.True(t, ok)
	assert.True(t, toast.IsError)
	assert.Equal(t, cleanup.StateIdle, sess.State())
	_, ok = find[cleanup.DoneMsg](drain(press(p, "y")))
	assert.False(t, ok, "no second call for the same path")

	first, ok := find[cleanup.DoneMsg](drain(firstCmd))
	require.True(t, ok)
	p.Update(first)
	assert.Equal(t, cleanup.StateIdle, sess.State(), "the earlier call does not complete the fresh session")
	assert.False(t, p.Busy())
	assert.Equal(t, int32(1), fb.cleanCalls.Load())

	press(p, "d")
	second, ok := find[cleanup.DoneMsg](drain(press(p, "y")))
	require.True(t, ok)
	assert.NotEqual(t, first.Token, second.Token)
	p.Update(second)
	assert.Equal(t, cleanup.StateCleaned, sess.State())
	assert.Equal(t, int32(2), fb.cleanCalls.Load())
}

func TestCleanRecordsJournal(t *testing.T) {
	j, err := journal.Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	defer j.Close()

	fb := &fakeBackend{projects: []project.Project{app1}, reclaimed: 2048}
	p := newTestPlugin(t, fb)
	p.ctx.Journal = j
	explore(t, p)

	press(p, "d")
	done, ok := find[cleanup.DoneMsg](drain(press(p, "y")))
	require.True(t, ok)
	_, cmd := p.Update(done)

	rec, ok := find[journal.RecordedMsg](drain(cmd))
	require.True(t, ok)
	require.NoError(t, rec.Err)

	count, bytes, err := j.Total(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, int64(2048), bytes)
}

func TestCopyPath(t *testing.T) {
	p := newTestPlugin(t, &fakeBackend{projects: []project.Project{app1}})
	var copied string
	p.copyToClipboard = func(s string) error {
		copied = s
		return nil
	}

	assert.Nil(t, press(p, "c"), "nothing selected before exploring")
	explore(t, p)

	toast, ok := find[msg.ToastMsg](drain(press(p, "c")))
	require.True(t, ok)
	assert.False(t, toast.IsError)
	assert.Equal(t, app1.Path, copied)

	p.copyToClipboard = func(string) error { return errors.New("no clipboard") }
	toast, ok = find[msg.ToastMsg](drain(press(p, "c")))
	require.True(t, ok)
	assert.True(t, toast.IsError)
}

func TestCursorNavigation(t *testing.T) {
	app2 := project.Project{Path: "/home/u/app2", BaseType: project.Cargo, Size: 1}
	app3 := project.Project{Path: "/home/u/app3", BaseType: project.Composer, Size: 2}
	p := newTestPlugin(t, &fakeBackend{projects: []project.Project{app1, app2, app3}})
	explore(t, p)

	press(p, "j")
	press(p, "j")
	press(p, "j")
	assert.Equal(t, 2, p.cursor)
	press(p, "k")
	assert.Equal(t, 1, p.cursor)
	press(p, "g")
	assert.Equal(t, 0, p.cursor)
	press(p, "G")
	assert.Equal(t, 2, p.cursor)

	press(p, "d")
	assert.Equal(t, cleanup.StateConfirming, p.sessions.Get(app3.Path).State())
	assert.Equal(t, cleanup.StateIdle, p.sessions.Get(app1.Path).State())

	// Cargo has no badge and renders its raw identifier.
	assert.Contains(t, p.View(120, 40), "Cargo")
}

func TestCommandsFollowFocus(t *testing.T) {
	p := newTestPlugin(t, &fakeBackend{projects: []project.Project{app1}})
	explore(t, p)
	assert.Equal(t, "explore", p.Commands()[0].ID)

	press(p, "d")
	assert.Equal(t, "confirm", p.Commands()[0].ID)
}
