// Package styles holds the palette and shared lipgloss styles.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	Primary   = lipgloss.Color("#0EA5E9")
	Secondary = lipgloss.Color("#4338CA")
	Danger    = lipgloss.Color("#DC2626")

	Success = lipgloss.Color("#10B981")
	Warning = lipgloss.Color("#F59E0B")
	Error   = lipgloss.Color("#EF4444")

	TextPrimary = lipgloss.Color("#F9FAFB")
	TextMuted   = lipgloss.Color("#9CA3AF")
	TextSubtle  = lipgloss.Color("#6B7280")

	BgPrimary   = lipgloss.Color("#111827")
	BgSecondary = lipgloss.Color("#1F2937")
	BgSkeleton  = lipgloss.Color("#374151")

	BorderNormal = lipgloss.Color("#4B5563")
	BorderActive = lipgloss.Color("#0EA5E9")
)

// Text styles
var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary)
	Subtitle = lipgloss.NewStyle().Foreground(TextMuted)
	Body     = lipgloss.NewStyle().Foreground(TextPrimary)
	Muted    = lipgloss.NewStyle().Foreground(TextMuted)
	Subtle   = lipgloss.NewStyle().Foreground(TextSubtle)
	Code     = lipgloss.NewStyle().Foreground(Primary)
	KeyHint  = lipgloss.NewStyle().Foreground(TextMuted)
)

// Status styles
var (
	StatusCleaned  = lipgloss.NewStyle().Foreground(Success).Bold(true)
	StatusWorking  = lipgloss.NewStyle().Foreground(Warning)
	StatusFailed   = lipgloss.NewStyle().Foreground(Error)
	StatusConfirm  = lipgloss.NewStyle().Foreground(Danger).Bold(true)
	SizeBadge      = lipgloss.NewStyle().Foreground(TextPrimary).Background(Secondary).Padding(0, 1)
	NeutralBadge   = lipgloss.NewStyle().Foreground(TextPrimary).Background(BorderNormal).Padding(0, 1)
	Skeleton       = lipgloss.NewStyle().Foreground(BgSkeleton)
	ExploreButton  = lipgloss.NewStyle().Foreground(TextPrimary).Background(lipgloss.Color("#075985")).Padding(0, 2)
	ButtonDisabled = lipgloss.NewStyle().Foreground(TextSubtle).Background(BgSecondary).Padding(0, 2)
)

// Chrome
var (
	Header = lipgloss.NewStyle().Foreground(TextPrimary).Background(BgSecondary)
	Footer = lipgloss.NewStyle().Foreground(TextMuted).Background(BgSecondary)

	AppTitle = lipgloss.NewStyle().Bold(true).Foreground(Primary).Padding(0, 1)

	TabActive   = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary).Background(Secondary)
	TabInactive = lipgloss.NewStyle().Foreground(TextMuted)

	ListItemSelected = lipgloss.NewStyle().Foreground(TextPrimary).Background(BgSecondary).Bold(true)

	ToastInfo  = lipgloss.NewStyle().Foreground(Success)
	ToastError = lipgloss.NewStyle().Foreground(Error).Bold(true)

	ModalBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderActive).
		Padding(1, 2)
	ModalTitle = lipgloss.NewStyle().Bold(true).Foreground(Primary)
)
