package ui

import (
	"iconview/internal/models"

	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	Primary    = lipgloss.Color("#7C3AED") // Purple
	Secondary  = lipgloss.Color("#06B6D4") // Cyan
	Success    = lipgloss.Color("#10B981") // Green
	Warning    = lipgloss.Color("#F59E0B") // Amber
	Error      = lipgloss.Color("#EF4444") // Red
	Muted      = lipgloss.Color("#6B7280") // Gray
	Background = lipgloss.Color("#1F2937") // Dark gray
	Foreground = lipgloss.Color("#F9FAFB") // Light
	Border     = lipgloss.Color("#374151") // Border gray
	Highlight  = lipgloss.Color("#8B5CF6") // Light purple
	Selected   = lipgloss.Color("#4F46E5") // Indigo
)

// Styles
var (
	// App container
	AppStyle = lipgloss.NewStyle().
			Padding(0, 1)

	// Header
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Foreground)

	VersionStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Panels
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary).
			Padding(0, 1)

	ActivePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Primary).
				Padding(0, 1)

	// List items
	ItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	SelectedItemStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Selected).
				Foreground(Foreground)

	CursorStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	// Checkbox
	CheckboxChecked   = lipgloss.NewStyle().Foreground(Success).Render("[✓]")
	CheckboxUnchecked = lipgloss.NewStyle().Foreground(Muted).Render("[ ]")

	// Search box
	SearchPromptStyle = lipgloss.NewStyle().
				Foreground(Secondary).
				Bold(true)

	CountStyle = lipgloss.NewStyle().
			Foreground(Highlight).
			Bold(true)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1)

	// Help bar
	HelpBarStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// Category header
	CategoryStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true).
			Padding(0, 1)

	// Icon specific
	IconNameStyle = lipgloss.NewStyle().
			Foreground(Foreground)

	IconPathStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	RasterStyle = lipgloss.NewStyle().
			Foreground(Success)

	SymbolicStyle = lipgloss.NewStyle().
			Foreground(Secondary)

	AliasStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60A5FA")) // Light blue for aliases

	DanglingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F472B6")). // Pink for broken links
			Bold(true)

	MissingStyle = lipgloss.NewStyle().
			Foreground(Error)

	// Tags
	TagStyle = lipgloss.NewStyle().
			Foreground(Foreground).
			Background(Border).
			Padding(0, 1)

	RequiredTagStyle = lipgloss.NewStyle().
				Foreground(Foreground).
				Background(Primary).
				Padding(0, 1).
				Bold(true)

	// Muted text
	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// Label/value pairs
	LabelStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Width(10)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Foreground)

	// Progress
	ProgressStyle = lipgloss.NewStyle().
			Foreground(Primary)

	// Divider
	DividerStyle = lipgloss.NewStyle().
			Foreground(Border)

	// Notification/Toast styles
	SuccessNotifyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#10B981")).
				Background(lipgloss.Color("#064E3B")).
				Padding(0, 1).
				Bold(true)

	ErrorNotifyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FCA5A5")).
				Background(lipgloss.Color("#7F1D1D")).
				Padding(0, 1).
				Bold(true)

	WarningNotifyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FCD34D")).
				Background(lipgloss.Color("#78350F")).
				Padding(0, 1).
				Bold(true)

	InfoNotifyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#93C5FD")).
			Background(lipgloss.Color("#1E3A5F")).
			Padding(0, 1).
			Bold(true)

	// Toggle styles
	ToggleOnStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	ToggleOffStyle = lipgloss.NewStyle().
			Foreground(Muted)
)

// RenderCheckbox returns a styled checkbox
func RenderCheckbox(checked bool) string {
	if checked {
		return CheckboxChecked
	}
	return CheckboxUnchecked
}

// RenderHelpItem renders a help key-description pair
func RenderHelpItem(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

// KindStyle returns the style used for an icon's kind marker
func KindStyle(icon *models.Icon) lipgloss.Style {
	switch {
	case !icon.Found:
		return MissingStyle
	case icon.Dangling():
		return DanglingStyle
	case icon.Symlink:
		return AliasStyle
	case icon.Symbolic:
		return SymbolicStyle
	default:
		return RasterStyle
	}
}

// RenderKind renders the kind marker of an icon
func RenderKind(icon *models.Icon) string {
	return KindStyle(icon).Render(icon.KindIcon())
}

// RenderTag renders a tag chip, highlighted when the tag is required
func RenderTag(tag string, required bool) string {
	if required {
		return RequiredTagStyle.Render(tag)
	}
	return TagStyle.Render(tag)
}

// RenderToggle renders a labelled on/off indicator
func RenderToggle(label string, on bool) string {
	if on {
		return ToggleOnStyle.Render(label + ":on")
	}
	return ToggleOffStyle.Render(label + ":off")
}

// RenderFilterMode renders a labelled three-valued filter
func RenderFilterMode(label string, mode models.FilterMode) string {
	text := label + ":" + mode.Short()
	if mode == models.FilterEither {
		return ToggleOffStyle.Render(text)
	}
	return ToggleOnStyle.Render(text)
}

// RenderField renders a label/value row for detail views
func RenderField(label, value string) string {
	return LabelStyle.Render(label) + ValueStyle.Render(value)
}

// RenderNotification renders a styled notification message
func RenderNotification(msgType string, message string) string {
	var icon string
	var style lipgloss.Style

	switch msgType {
	case "success":
		icon = "✓"
		style = SuccessNotifyStyle
	case "error":
		icon = "✗"
		style = ErrorNotifyStyle
	case "warning":
		icon = "⚠"
		style = WarningNotifyStyle
	case "info":
		icon = "ℹ"
		style = InfoNotifyStyle
	default:
		icon = "•"
		style = MutedStyle
	}

	return style.Render(icon + " " + message)
}
