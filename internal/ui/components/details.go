package components

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"iconview/internal/catalog"
	"iconview/internal/models"
	"iconview/internal/ui"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// maxPreviewSize caps the icon source loaded into the preview
const maxPreviewSize = 256 * 1024

// IconDetails shows one record with its tags, aliases and source preview
type IconDetails struct {
	Icon       models.Icon
	Index      int
	TargetName string   // Name of the record a symlink resolves to
	Required   []string // Required tags, highlighted in the tag row
	TagCursor  int

	// Preview info
	FileSize     int64
	PreviewLines int

	// Dimensions
	Width  int
	Height int

	viewport    viewport.Model
	highlighter *ui.Highlighter

	lineNumStyle lipgloss.Style
}

// NewIconDetails creates a new detail view
func NewIconDetails() *IconDetails {
	vp := viewport.New(80, 10)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return &IconDetails{
		Index:       -1,
		Width:       80,
		Height:      24,
		viewport:    vp,
		highlighter: ui.NewHighlighter(),
		lineNumStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6c7086")).
			Width(5).
			Align(lipgloss.Right),
	}
}

// SetSize updates the dimensions
func (d *IconDetails) SetSize(width, height int) {
	d.Width = width
	d.Height = height

	// Header block is fields, tags, aliases and borders
	d.viewport.Width = max(20, width-4)
	d.viewport.Height = max(3, height-d.headerHeight()-4)
}

// SetIcon shows record i of c
func (d *IconDetails) SetIcon(c *catalog.Catalog, i int, required []string) {
	d.Icon = c.Icon(i)
	d.Index = i
	d.Required = required
	d.TargetName = ""
	if d.Icon.HasTarget() {
		d.TargetName = c.Get(d.Icon.AliasTarget).Name
	}
	if d.TagCursor >= len(d.Icon.Tags) {
		d.TagCursor = 0
	}
	d.SetSize(d.Width, d.Height)
	d.loadPreview()
}

// SetRequired updates the highlighted required tags
func (d *IconDetails) SetRequired(required []string) {
	d.Required = required
}

// NextTag moves the tag cursor right
func (d *IconDetails) NextTag() {
	if d.TagCursor < len(d.Icon.Tags)-1 {
		d.TagCursor++
	}
}

// PrevTag moves the tag cursor left
func (d *IconDetails) PrevTag() {
	if d.TagCursor > 0 {
		d.TagCursor--
	}
}

// CurrentTag returns the tag under the cursor
func (d *IconDetails) CurrentTag() (string, bool) {
	if d.TagCursor >= 0 && d.TagCursor < len(d.Icon.Tags) {
		return d.Icon.Tags[d.TagCursor], true
	}
	return "", false
}

// loadPreview fills the viewport with the icon file source
func (d *IconDetails) loadPreview() {
	d.FileSize = 0
	d.PreviewLines = 0

	if !d.Icon.Found {
		d.setMessage("No file found for this icon in the current theme")
		return
	}

	info, err := os.Stat(d.Icon.Path)
	if err != nil {
		d.setMessage(fmt.Sprintf("Cannot read file: %v", err))
		return
	}
	d.FileSize = info.Size()

	if !ui.IsTextIcon(d.Icon.Path) {
		d.setMessage(fmt.Sprintf("%s image, %s", ui.GetFileType(d.Icon.Path), formatBytes(info.Size())))
		return
	}
	if info.Size() > maxPreviewSize {
		d.setMessage(fmt.Sprintf("File is too large to preview (%s)", formatBytes(info.Size())))
		return
	}

	data, err := os.ReadFile(d.Icon.Path)
	if err != nil {
		d.setMessage(fmt.Sprintf("Cannot read file: %v", err))
		return
	}
	if isBinaryContent(data) {
		d.setMessage("Binary file - cannot preview")
		return
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	maxWidth := max(40, d.viewport.Width-10)

	var b strings.Builder
	for i, line := range lines {
		if len(line) > maxWidth {
			line = line[:maxWidth-3] + "..."
		}
		b.WriteString(d.lineNumStyle.Render(fmt.Sprintf("%d", i+1)))
		b.WriteString(" │ ")
		b.WriteString(d.highlighter.HighlightLine(line, d.Icon.Path))
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}

	d.PreviewLines = len(lines)
	d.viewport.SetContent(b.String())
	d.viewport.GotoTop()
}

func (d *IconDetails) setMessage(message string) {
	d.viewport.SetContent("\n  " + ui.MutedStyle.Render(message))
	d.viewport.GotoTop()
}

// Update handles messages for viewport scrolling
func (d *IconDetails) Update(msg tea.Msg) (*IconDetails, tea.Cmd) {
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd
}

// ScrollUp scrolls the preview up
func (d *IconDetails) ScrollUp() {
	d.viewport.LineUp(1)
}

// ScrollDown scrolls the preview down
func (d *IconDetails) ScrollDown() {
	d.viewport.LineDown(1)
}

// PageUp scrolls the preview up by a page
func (d *IconDetails) PageUp() {
	d.viewport.ViewUp()
}

// PageDown scrolls the preview down by a page
func (d *IconDetails) PageDown() {
	d.viewport.ViewDown()
}

func (d *IconDetails) headerHeight() int {
	// title, divider, six fields, tags, aliases, divider
	return 11
}

// View renders the detail view
func (d *IconDetails) View() string {
	var b strings.Builder

	icon := &d.Icon
	b.WriteString(ui.RenderKind(icon) + " " + ui.TitleStyle.Render(icon.Name))
	b.WriteString("  " + ui.MutedStyle.Render(icon.KindString()))
	b.WriteString("\n")
	b.WriteString(ui.DividerStyle.Render(strings.Repeat("─", max(0, d.Width-4))))
	b.WriteString("\n")

	path := icon.Path
	if !icon.Found {
		path = "-"
	}
	b.WriteString(ui.RenderField("Path", path) + "\n")
	b.WriteString(ui.RenderField("Type", ui.GetFileType(icon.Path)) + "\n")
	b.WriteString(ui.RenderField("Size", fmt.Sprintf("%dpx", icon.Size)) + "\n")
	b.WriteString(ui.RenderField("Symbolic", yesNo(icon.Symbolic)) + "\n")
	b.WriteString(ui.RenderField("Symlink", d.symlinkText()) + "\n")
	b.WriteString(ui.RenderField("Target", d.targetText()) + "\n")

	b.WriteString(ui.LabelStyle.Render("Tags") + d.renderTags() + "\n")

	aliases := "-"
	if len(icon.Aliases) > 0 {
		aliases = ui.AliasStyle.Render(strings.Join(icon.Aliases, ", "))
	}
	b.WriteString(ui.LabelStyle.Render("Aliases") + aliases + "\n")

	b.WriteString(ui.DividerStyle.Render(strings.Repeat("─", max(0, d.Width-4))))
	b.WriteString("\n")
	b.WriteString(d.viewport.View())

	if d.PreviewLines > d.viewport.Height {
		scrollInfo := fmt.Sprintf("─── %.0f%% ───", d.viewport.ScrollPercent()*100)
		b.WriteString("\n" + ui.MutedStyle.Render(scrollInfo))
	}

	return ui.ActivePanelStyle.Width(d.Width).Height(d.Height).Render(b.String())
}

func (d *IconDetails) symlinkText() string {
	if !d.Icon.Symlink {
		return "no"
	}
	return "→ " + d.Icon.SymlinkTarget
}

func (d *IconDetails) targetText() string {
	switch {
	case !d.Icon.Symlink:
		return "-"
	case d.TargetName != "":
		return ui.AliasStyle.Render(d.TargetName)
	default:
		return ui.DanglingStyle.Render("unresolved")
	}
}

func (d *IconDetails) renderTags() string {
	if len(d.Icon.Tags) == 0 {
		return "-"
	}

	chips := make([]string, len(d.Icon.Tags))
	for i, tag := range d.Icon.Tags {
		chip := ui.RenderTag(tag, slices.Contains(d.Required, tag))
		if i == d.TagCursor {
			chip = ui.CursorStyle.Render("›") + chip
		} else {
			chip = " " + chip
		}
		chips[i] = chip
	}
	return strings.Join(chips, "")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// isBinaryContent checks if content appears to be binary
func isBinaryContent(data []byte) bool {
	checkLen := min(512, len(data))
	if checkLen == 0 {
		return false
	}

	nonPrintable := 0
	for i := 0; i < checkLen; i++ {
		if data[i] == 0 {
			return true
		}
		if data[i] < 32 && data[i] != '\n' && data[i] != '\r' && data[i] != '\t' {
			nonPrintable++
		}
	}

	// If more than 30% non-printable, consider binary
	return float64(nonPrintable)/float64(checkLen) > 0.3
}

// formatBytes formats bytes to human readable string
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
