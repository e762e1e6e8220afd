package cleaner

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/dcleaner/internal/badge"
	"github.com/marcus/dcleaner/internal/cleanup"
	"github.com/marcus/dcleaner/internal/discovery"
	"github.com/marcus/dcleaner/internal/project"
	"github.com/marcus/dcleaner/internal/styles"
)

const (
	title    = "DCleaner"
	subtitle = "Clean your dependencies and cache folders"

	exploreLabel   = "Explore home directory"
	exploringLabel = "Exploring..."

	// header: title, subtitle, blank, button, blank
	headerLines = 5
	// name/badges line, path/status line, spacer
	cardLines = 3
)

// Status symbols.
const (
	iconCursor  = ">"
	iconCleaned = "✓"
	iconFailed  = "✗"
)

// View renders the plugin.
func (p *Plugin) View(width, height int) string {
	p.width = width
	p.height = height

	var sb strings.Builder
	sb.WriteString(p.renderHeader())
	sb.WriteString("\n")

	bodyHeight := height - headerLines - 1
	if bodyHeight < cardLines {
		bodyHeight = cardLines
	}

	switch p.discovery.State() {
	case discovery.StateIdle:
		sb.WriteString(p.renderIdle())
	case discovery.StateLoading:
		sb.WriteString(p.renderSkeleton())
	case discovery.StateFailed:
		sb.WriteString(p.renderFailed())
	case discovery.StateLoaded:
		sb.WriteString(p.renderList(bodyHeight))
		sb.WriteString("\n")
		sb.WriteString(p.renderTotals())
	}

	return lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height).Render(sb.String())
}

func (p *Plugin) renderHeader() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(title))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render(subtitle))
	sb.WriteString("\n\n")
	if p.discovery.Loading() {
		sb.WriteString(styles.ButtonDisabled.Render(p.spinner.View() + " " + exploringLabel))
	} else {
		sb.WriteString(styles.ExploreButton.Render(exploreLabel))
		sb.WriteString(styles.Subtle.Render("  e"))
	}
	sb.WriteString("\n")
	return sb.String()
}

func (p *Plugin) renderIdle() string {
	var sb strings.Builder
	sb.WriteString(styles.Muted.Render("Press "))
	sb.WriteString(styles.Code.Render("e"))
	sb.WriteString(styles.Muted.Render(" to look for projects under "))
	sb.WriteString(styles.Code.Render(p.ctx.Config.ScanRoot()))
	return sb.String()
}

// renderSkeleton draws one placeholder card per loading slot.
func (p *Plugin) renderSkeleton() string {
	w := p.contentWidth()
	nameW := min(24, w)
	pathW := min(48, w)
	n := p.discovery.Placeholders()
	rows := make([]string, 0, n)
	for range n {
		rows = append(rows,
			styles.Skeleton.Render(strings.Repeat("▇", nameW))+"\n"+
				styles.Skeleton.Render(strings.Repeat("▁", pathW))+"\n")
	}
	return strings.Join(rows, "\n")
}

func (p *Plugin) renderFailed() string {
	text := p.discovery.Err().Error()
	violations := p.discovery.Violations()
	if len(violations) > 0 {
		text = discovery.ErrMalformed.Error()
	}
	var sb strings.Builder
	sb.WriteString(styles.StatusFailed.Render(iconFailed + " " + text))
	if n := len(violations); n > 0 {
		sb.WriteString("\n")
		sb.WriteString(styles.Muted.Render(fmt.Sprintf("%d invalid records, press ! for details", n)))
	}
	sb.WriteString("\n\n")
	sb.WriteString(styles.Subtle.Render("Press e to try again"))
	return sb.String()
}

func (p *Plugin) renderList(height int) string {
	results := p.discovery.Results()
	if len(results) == 0 {
		return styles.Muted.Render("No projects found under " + p.ctx.Config.ScanRoot())
	}

	visible := max(height/cardLines, 1)
	p.ensureCursorVisible(visible)

	end := min(p.scroll+visible, len(results))
	cards := make([]string, 0, end-p.scroll)
	for i := p.scroll; i < end; i++ {
		proj := results[i]
		cards = append(cards, p.renderCard(proj, p.sessions.Get(proj.Path), i == p.cursor))
	}
	return strings.Join(cards, "\n\n")
}

func (p *Plugin) renderCard(proj project.Project, sess *cleanup.Session, selected bool) string {
	w := p.contentWidth()

	prefix := "  "
	name := styles.Body.Render(proj.Name())
	if selected {
		prefix = styles.Code.Render(iconCursor) + " "
		name = styles.ListItemSelected.Render(proj.Name())
	}
	top := prefix + name + "  " + styles.SizeBadge.Render(proj.HumanSize()) + "  " + badge.RenderProject(proj)

	bottom := "  " + styles.Subtle.Render(proj.Path)
	if status := renderStatus(sess, p.sessions.InFlight(proj.Path), p.spinner.View()); status != "" {
		bottom += "  " + status
	}

	return ansi.Truncate(top, w, "…") + "\n" + ansi.Truncate(bottom, w, "…")
}

// renderStatus draws the cleanup state of a card. inFlight is true while a
// call for the path runs, including one issued before the last explore.
func renderStatus(sess *cleanup.Session, inFlight bool, spin string) string {
	if inFlight && sess.State() != cleanup.StateCleaned {
		return styles.StatusWorking.Render(spin + " Cleaning...")
	}
	switch sess.State() {
	case cleanup.StateConfirming:
		return styles.StatusConfirm.Render("Delete artifacts? y/n")
	case cleanup.StateCleaning:
		return styles.StatusWorking.Render(spin + " Cleaning...")
	case cleanup.StateCleaned:
		out := styles.StatusCleaned.Render(iconCleaned)
		if sess.NoticeVisible() {
			out += " " + styles.StatusCleaned.Render("Cleaned "+project.FormatBytes(sess.Reclaimed()))
		}
		return out
	}
	if err := sess.Err(); err != nil {
		return styles.StatusFailed.Render(iconFailed + " " + err.Error())
	}
	return ""
}

func (p *Plugin) renderTotals() string {
	results := p.discovery.Results()
	line := fmt.Sprintf("%d projects · %s reclaimable",
		len(results), project.FormatBytes(project.TotalSize(results)))
	if n := p.sessions.CleanedCount(); n > 0 {
		line += fmt.Sprintf(" · %s reclaimed from %d", project.FormatBytes(p.sessions.Reclaimed()), n)
	}
	return styles.Muted.Render(line)
}

func (p *Plugin) ensureCursorVisible(visible int) {
	if p.cursor < p.scroll {
		p.scroll = p.cursor
	}
	if p.cursor >= p.scroll+visible {
		p.scroll = p.cursor - visible + 1
	}
	if p.scroll < 0 {
		p.scroll = 0
	}
}

func (p *Plugin) contentWidth() int {
	if p.width <= 0 {
		return 80
	}
	return p.width
}
