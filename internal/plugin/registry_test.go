package plugin

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPlugin struct {
	id      string
	initErr error
	started bool
	stopped bool
}

func (t *testPlugin) ID() string { return t.id }
func (t *testPlugin) Name() string { return t.id }
func (t *testPlugin) Icon() string { return "T" }
func (t *testPlugin) Init(*Context) error { return t.initErr }
func (t *testPlugin) Stop() { t.stopped = true }
func (t *testPlugin) Update(tea.Msg) (Plugin, tea.Cmd) { return t, nil }
func (t *testPlugin) View(int, int) string { return "" }
func (t *testPlugin) IsFocused() bool { return false }
func (t *testPlugin) SetFocused(bool) {}
func (t *testPlugin) Commands() []Command { return nil }
func (t *testPlugin) FocusContext() string { return t.id }
func (t *testPlugin) Diagnostics() []Diagnostic { return nil }
func (t *testPlugin) Start() tea.Cmd {
	t.started = true
	return func() tea.Msg { return t.id }
}

func TestRegister_InitFailureMarksUnavailable(t *testing.T) {
	r := NewRegistry(&Context{})
	ok := &testPlugin{id: "ok"}
	bad := &testPlugin{id: "bad", initErr: errors.New("no journal")}

	require.NoError(t, r.Register(ok))
	err := r.Register(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "init bad")

	require.Len(t, r.Plugins(), 1)
	assert.Equal(t, "ok", r.Plugins()[0].ID())
	assert.Equal(t, map[string]string{"bad": "no journal"}, r.Unavailable())
}

func TestStartStop(t *testing.T) {
	r := NewRegistry(nil)
	a, b := &testPlugin{id: "a"}, &testPlugin{id: "b"}
	require.NoError(t, r.Register(a))
	require.NoError(t, r.Register(b))

	cmd := r.Start()
	require.NotNil(t, cmd)
	assert.True(t, a.started)
	assert.True(t, b.started)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	assert.Len(t, batch, 2)

	r.Stop()
	assert.True(t, a.stopped)
	assert.True(t, b.stopped)
}

func TestReplace(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register(&testPlugin{id: "a"}))

	replacement := &testPlugin{id: "a"}
	r.Replace(replacement)
	assert.Same(t, replacement, r.Plugins()[0])

	r.Replace(&testPlugin{id: "unknown"})
	assert.Len(t, r.Plugins(), 1)
}
