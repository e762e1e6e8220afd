package plugin

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Registry holds the plugins the app shell can display.
type Registry struct {
	ctx         *Context
	mu          sync.RWMutex
	plugins     []Plugin
	unavailable map[string]string
}

// NewRegistry creates a registry that initializes plugins with ctx.
func NewRegistry(ctx *Context) *Registry {
	return &Registry{
		ctx:         ctx,
		unavailable: make(map[string]string),
	}
}

// Register initializes p and adds it. A plugin whose Init fails is recorded
// as unavailable instead of aborting startup.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := p.Init(r.ctx); err != nil {
		r.unavailable[p.ID()] = err.Error()
		if r.ctx != nil && r.ctx.Logger != nil {
			r.ctx.Logger.Warn("plugin unavailable", "plugin", p.ID(), "error", err)
		}
		return fmt.Errorf("init %s: %w", p.ID(), err)
	}
	r.plugins = append(r.plugins, p)
	return nil
}

// Plugins returns the registered plugins in registration order.
func (r *Registry) Plugins() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Plugin, len(r.plugins))
	copy(out, r.plugins)
	return out
}

// Unavailable returns plugin IDs that failed to initialize, with reasons.
func (r *Registry) Unavailable() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.unavailable))
	for k, v := range r.unavailable {
		out[k] = v
	}
	return out
}

// Start starts every plugin and batches their commands.
func (r *Registry) Start() tea.Cmd {
	var cmds []tea.Cmd
	for _, p := range r.Plugins() {
		if cmd := p.Start(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// Stop stops every plugin.
func (r *Registry) Stop() {
	for _, p := range r.Plugins() {
		p.Stop()
	}
}

// Replace swaps the stored instance of a plugin after Update returned a
// new value.
func (r *Registry) Replace(p Plugin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.plugins {
		if existing.ID() == p.ID() {
			r.plugins[i] = p
			return
		}
	}
}
