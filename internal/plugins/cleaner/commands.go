package cleaner

import (
	"errors"
	"fmt"
	"time"

	"github.com/marcus/dcleaner/internal/cleanup"
	"github.com/marcus/dcleaner/internal/discovery"
	"github.com/marcus/dcleaner/internal/plugin"
)

// Commands returns the available commands for the footer.
func (p *Plugin) Commands() []plugin.Command {
	if p.FocusContext() == focusConfirm {
		return []plugin.Command{
			{ID: "confirm", Name: "Confirm", Key: "y", Description: "Delete artifact folders", Context: focusConfirm, Priority: 1, Category: plugin.CategoryActions},
			{ID: "cancel", Name: "Cancel", Key: "n", Description: "Keep the project as is", Context: focusConfirm, Priority: 2, Category: plugin.CategoryActions},
		}
	}
	return []plugin.Command{
		{ID: "explore", Name: "Explore", Key: "e", Description: "Explore home directory", Context: focusList, Priority: 1, Category: plugin.CategoryActions},
		{ID: "clean", Name: "Clean", Key: "d", Description: "Clean selected project", Context: focusList, Priority: 2, Category: plugin.CategoryActions},
		{ID: "copy-path", Name: "Copy", Key: "c", Description: "Copy project path", Context: focusList, Priority: 3, Category: plugin.CategoryActions},
		{ID: "cursor-down", Name: "Down", Key: "j", Description: "Next project", Context: focusList, Priority: 4, Category: plugin.CategoryNavigation},
		{ID: "cursor-up", Name: "Up", Key: "k", Description: "Previous project", Context: focusList, Priority: 5, Category: plugin.CategoryNavigation},
	}
}

// FocusContext returns the current focus context for keybinding dispatch.
func (p *Plugin) FocusContext() string {
	if e, ok := p.selected(); ok && e.session.State() == cleanup.StateConfirming {
		return focusConfirm
	}
	return focusList
}

// Diagnostics returns plugin health info.
func (p *Plugin) Diagnostics() []plugin.Diagnostic {
	d := plugin.Diagnostic{ID: pluginID, Status: "ok"}
	switch p.discovery.State() {
	case discovery.StateIdle:
		d.Detail = "not explored yet"
	case discovery.StateLoading:
		d.Detail = "exploring " + p.ctx.Config.ScanRoot()
	case discovery.StateLoaded:
		d.Detail = fmt.Sprintf("%d projects in %s, %d cleaned, %d cleaning",
			len(p.discovery.Results()), p.lastScan.Round(time.Millisecond), p.sessions.CleanedCount(), p.sessions.Cleaning())
	case discovery.StateFailed:
		d.Status = "error"
		d.Detail = p.discovery.Err().Error()
	}
	diags := []plugin.Diagnostic{d}

	if errors.Is(p.discovery.Err(), discovery.ErrMalformed) {
		for _, v := range p.discovery.Violations() {
			diags = append(diags, plugin.Diagnostic{ID: "malformed", Status: "error", Detail: v})
		}
	}

	journal := plugin.Diagnostic{ID: "journal", Status: "disabled", Detail: "off"}
	if p.ctx.Journal != nil {
		journal.Status = "ok"
		journal.Detail = p.ctx.Journal.Path()
	}
	return append(diags, journal)
}
