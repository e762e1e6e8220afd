package badge

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/dcleaner/internal/project"
	"github.com/marcus/dcleaner/internal/styles"
)

// Render draws the badge for v, or a neutral label with the raw identifier
// when v has no descriptor.
func Render[T project.Classification](v T) string {
	d, ok := Resolve(v)
	if !ok {
		return styles.NeutralBadge.Render(string(v))
	}
	return d.Style().Render(d.Label())
}

// Style returns the lipgloss style for a resolved badge.
func (d Descriptor) Style() lipgloss.Style {
	if d.ColorRef == "" {
		return styles.NeutralBadge
	}
	fg := lipgloss.Color("#FFFFFF")
	if !styles.HexToRGB(d.ColorRef).IsDark() {
		fg = lipgloss.Color("#000000")
	}
	return lipgloss.NewStyle().
		Foreground(fg).
		Background(lipgloss.Color(d.ColorRef)).
		Padding(0, 1)
}

// RenderProject draws the base type badge followed by every variant badge,
// in discovery order.
func RenderProject(p project.Project) string {
	parts := make([]string, 0, 1+len(p.Variants))
	parts = append(parts, Render(p.BaseType))
	for _, v := range p.Variants {
		parts = append(parts, Render(v))
	}
	return strings.Join(parts, " ")
}
