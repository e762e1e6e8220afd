package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Border characters for rounded borders (matching lipgloss.RoundedBorder)
const (
	borderCornerTL   = "╭"
	borderCornerTR   = "╮"
	borderCornerBL   = "╰"
	borderCornerBR   = "╯"
	borderHorizontal = "─"
	borderVertical   = "│"
)

// colorChar wraps a character with ANSI foreground color.
func colorChar(char string, color RGB) string {
	return color.ToANSI() + char + ANSIReset
}

// RenderBorder renders content inside a rounded box drawn in a single color.
// width and height are the outer dimensions including borders.
func RenderBorder(content string, width, height int, color RGB, padding int) string {
	if width < 3 || height < 3 {
		return content
	}

	innerWidth := width - 2
	innerHeight := height - 2

	lines := strings.Split(content, "\n")

	paddingStr := strings.Repeat(" ", padding)
	contentWidth := innerWidth - (padding * 2)
	if contentWidth < 0 {
		contentWidth = 0
	}

	var result strings.Builder

	result.WriteString(colorChar(borderCornerTL+strings.Repeat(borderHorizontal, innerWidth)+borderCornerTR, color))
	result.WriteString("\n")

	for i := 0; i < innerHeight; i++ {
		var line string
		if i < len(lines) {
			line = lines[i]
		}

		lineWidth := lipgloss.Width(line)
		if lineWidth > contentWidth {
			line = ansi.Truncate(line, contentWidth, "")
			lineWidth = lipgloss.Width(line)
		}
		rightPad := contentWidth - lineWidth
		if rightPad < 0 {
			rightPad = 0
		}

		result.WriteString(colorChar(borderVertical, color))
		result.WriteString(paddingStr + line + strings.Repeat(" ", rightPad) + paddingStr)
		result.WriteString(colorChar(borderVertical, color))
		result.WriteString("\n")
	}

	result.WriteString(colorChar(borderCornerBL+strings.Repeat(borderHorizontal, innerWidth)+borderCornerBR, color))

	return result.String()
}

// RenderPanel renders content in a bordered panel.
// active selects the focused border color.
func RenderPanel(content string, width, height int, active bool) string {
	color := HexToRGB(string(BorderNormal))
	if active {
		color = HexToRGB(string(BorderActive))
	}
	return RenderBorder(content, width, height, color, 1)
}

// ContentHeight returns the number of lines content occupies.
func ContentHeight(content string) int {
	if content == "" {
		return 0
	}
	return strings.Count(content, "\n") + 1
}
