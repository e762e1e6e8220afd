package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/dcleaner/internal/config"
	"github.com/marcus/dcleaner/internal/msg"
	"github.com/marcus/dcleaner/internal/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPlugin struct {
	id       string
	focused  bool
	busy     bool
	stopped  bool
	received []tea.Msg
}

func (s *stubPlugin) ID() string { return s.id }
func (s *stubPlugin) Name() string { return s.id }
func (s *stubPlugin) Icon() string { return "S" }
func (s *stubPlugin) Init(*plugin.Context) error { return nil }
func (s *stubPlugin) Start() tea.Cmd { return nil }
func (s *stubPlugin) Stop() { s.stopped = true }
func (s *stubPlugin) View(int, int) string { return "view of " + s.id }
func (s *stubPlugin) IsFocused() bool { return s.focused }
func (s *stubPlugin) SetFocused(f bool) { s.focused = f }
func (s *stubPlugin) FocusContext() string { return s.id }
func (s *stubPlugin) Busy() bool { return s.busy }
func (s *stubPlugin) Diagnostics() []plugin.Diagnostic {
	return []plugin.Diagnostic{{ID: s.id, Status: "ok", Detail: "fine"}}
}
func (s *stubPlugin) Commands() []plugin.Command {
	return []plugin.Command{{ID: "do", Name: "Do", Key: "d", Description: "Do it", Category: plugin.CategoryActions}}
}
func (s *stubPlugin) Update(m tea.Msg) (plugin.Plugin, tea.Cmd) {
	s.received = append(s.received, m)
	return s, nil
}

func newTestModel(t *testing.T, plugins ...*stubPlugin) Model {
	t.Helper()
	reg := plugin.NewRegistry(&plugin.Context{})
	for _, p := range plugins {
		require.NoError(t, reg.Register(p))
	}
	cfg := config.Default()
	cfg.UI.ShowClock = false
	m := New(reg, cfg, "", nil, "v1.2.3")
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestActiveModal_Priority(t *testing.T) {
	tests := []struct {
		name string
		m    Model
		want ModalKind
	}{
		{"none", Model{}, ModalNone},
		{"diagnostics", Model{showDiagnostics: true}, ModalDiagnostics},
		{"help over diagnostics", Model{showHelp: true, showDiagnostics: true}, ModalHelp},
		{"quit confirm over all", Model{showQuitConfirm: true, showHelp: true, showDiagnostics: true}, ModalQuitConfirm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.m.activeModal())
		})
	}
}

func TestWindowSizeIsBroadcastWithContentHeight(t *testing.T) {
	a, b := &stubPlugin{id: "a"}, &stubPlugin{id: "b"}
	newTestModel(t, a, b)

	for _, p := range []*stubPlugin{a, b} {
		require.Len(t, p.received, 1)
		assert.Equal(t, tea.WindowSizeMsg{Width: 100, Height: 28}, p.received[0])
	}
}

func TestKeysGoToActivePluginOnly(t *testing.T) {
	a, b := &stubPlugin{id: "a"}, &stubPlugin{id: "b"}
	m := newTestModel(t, a, b)

	m.Update(runes("d"))
	assert.Len(t, a.received, 2)
	assert.Len(t, b.received, 1)
	assert.True(t, a.focused)
}

func TestTabSwitching(t *testing.T) {
	a, b := &stubPlugin{id: "a"}, &stubPlugin{id: "b"}
	m := newTestModel(t, a, b)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	assert.Equal(t, 1, m.activePlugin)
	assert.False(t, a.focused)
	assert.True(t, b.focused)
	assert.IsType(t, plugin.PluginFocusedMsg{}, b.received[len(b.received)-1])

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	assert.Equal(t, 0, m.activePlugin, "wraps around")

	updated, _ = m.Update(runes("2"))
	m = updated.(Model)
	assert.Equal(t, 1, m.activePlugin)
}

func TestToastExpiresByGeneration(t *testing.T) {
	m := newTestModel(t, &stubPlugin{id: "a"})

	updated, cmd := m.Update(msg.ToastMsg{Message: "first", Duration: time.Millisecond})
	m = updated.(Model)
	require.NotNil(t, cmd)
	stale := cmd()

	updated, _ = m.Update(msg.ToastMsg{Message: "second", Duration: time.Hour})
	m = updated.(Model)

	updated, _ = m.Update(stale)
	m = updated.(Model)
	assert.True(t, m.hasToast, "an older timer does not clear a newer toast")
	assert.Contains(t, m.View(), "second")

	updated, _ = m.Update(toastExpiredMsg{gen: m.toastGen})
	m = updated.(Model)
	assert.False(t, m.hasToast)
}

func TestErrorMsgShowsInDiagnostics(t *testing.T) {
	m := newTestModel(t, &stubPlugin{id: "a"})

	updated, _ := m.Update(msg.ErrorMsg{Err: errors.New("discovery failed: boom")})
	m = updated.(Model)
	updated, _ = m.Update(runes("!"))
	m = updated.(Model)

	require.Equal(t, ModalDiagnostics, m.activeModal())
	view := m.View()
	assert.Contains(t, view, "discovery failed: boom")
	assert.Contains(t, view, "a: fine")

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModalNone, updated.(Model).activeModal())
}

func TestHelpOverlayListsPluginCommands(t *testing.T) {
	m := newTestModel(t, &stubPlugin{id: "a"})
	updated, _ := m.Update(runes("?"))
	m = updated.(Model)

	view := m.View()
	assert.Contains(t, view, "Keyboard Shortcuts")
	assert.Contains(t, view, "Do it")
}

func TestQuit(t *testing.T) {
	a := &stubPlugin{id: "a"}
	m := newTestModel(t, a)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.True(t, a.stopped)
}

func TestQuitConfirmWhileBusy(t *testing.T) {
	a := &stubPlugin{id: "a", busy: true}
	m := newTestModel(t, a)

	updated, cmd := m.Update(runes("q"))
	m = updated.(Model)
	assert.Nil(t, cmd)
	assert.Equal(t, ModalQuitConfirm, m.activeModal())
	assert.Contains(t, m.View(), "Quit DCleaner?")

	updated, _ = m.Update(runes("n"))
	m = updated.(Model)
	assert.Equal(t, ModalNone, m.activeModal())
	assert.False(t, a.stopped)

	updated, _ = m.Update(runes("q"))
	m = updated.(Model)
	_, cmd = m.Update(runes("y"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestView(t *testing.T) {
	reg := plugin.NewRegistry(&plugin.Context{})
	m := New(reg, nil, "", nil, "dev")
	assert.Equal(t, "Loading...", m.View())

	m = newTestModel(t, &stubPlugin{id: "alpha"})
	view := m.View()
	assert.Contains(t, view, "DCleaner")
	assert.Contains(t, view, "alpha")
	assert.Contains(t, view, "view of alpha")
	assert.Contains(t, view, "v1.2.3")
}

func TestFooterToggleIsSaved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"scan":{"root":"/srv"},"custom":1}`), 0o644))
	config.SetTestConfigPath(path)
	t.Cleanup(config.ResetTestConfigPath)

	a := &stubPlugin{id: "a"}
	m := newTestModel(t, a)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlH})
	m = updated.(Model)
	assert.False(t, m.showFooter)
	assert.Equal(t, tea.WindowSizeMsg{Width: 100, Height: 29}, a.received[len(a.received)-1])

	require.NotNil(t, cmd)
	result := cmd()
	if batch, ok := result.(tea.BatchMsg); ok {
		for _, c := range batch {
			assert.Nil(t, c())
		}
	} else {
		assert.Nil(t, result)
	}

	cfg, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.False(t, cfg.UI.ShowFooter)
	assert.Equal(t, "/srv", cfg.Scan.Root)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"custom"`)
}

func TestFooterToggleSavesToActiveConfig(t *testing.T) {
	dir := t.TempDir()
	fallback := filepath.Join(dir, "default.json")
	config.SetTestConfigPath(fallback)
	t.Cleanup(config.ResetTestConfigPath)

	active := filepath.Join(dir, "custom", "dcleaner.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(active), 0o755))
	require.NoError(t, os.WriteFile(active, []byte(`{"ui":{"showFooter":true}}`), 0o644))

	reg := plugin.NewRegistry(&plugin.Context{})
	cfg := config.Default()
	cfg.UI.ShowClock = false
	m := New(reg, cfg, active, nil, "dev")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlH})
	require.NotNil(t, cmd)
	result := cmd()
	if batch, ok := result.(tea.BatchMsg); ok {
		for _, c := range batch {
			assert.Nil(t, c())
		}
	} else {
		assert.Nil(t, result)
	}

	got, err := config.LoadFrom(active)
	require.NoError(t, err)
	assert.False(t, got.UI.ShowFooter)
	_, err = os.Stat(fallback)
	assert.ErrorIs(t, err, os.ErrNotExist, "default config must not be written")
}
