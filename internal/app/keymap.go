package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the global key bindings. Plugin keys are advertised through
// plugin.Command instead.
type KeyMap struct {
	Quit        key.Binding
	ForceQuit   key.Binding
	NextTab     key.Binding
	PrevTab     key.Binding
	Help        key.Binding
	Diagnostics key.Binding
	Footer      key.Binding
	Close       key.Binding
}

// DefaultKeyMap returns the global bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "force quit")),
		NextTab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Diagnostics: key.NewBinding(key.WithKeys("!"), key.WithHelp("!", "diagnostics")),
		Footer:      key.NewBinding(key.WithKeys("ctrl+h"), key.WithHelp("ctrl+h", "toggle footer")),
		Close:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Footer},
		{k.Help, k.Diagnostics, k.Close},
		{k.Quit, k.ForceQuit},
	}
}
