package components

import (
	"fmt"
	"slices"
	"strings"

	"iconview/internal/catalog"
	"iconview/internal/models"
	"iconview/internal/query"
	"iconview/internal/ui"

	"github.com/charmbracelet/lipgloss"
)

// IconList is the scrolling list of visible icons
type IconList struct {
	Visible []int // Record indices in display order
	Total   int
	Cursor  int
	Width   int
	Height  int
	Focused bool
	Title   string

	catalog *catalog.Catalog
}

// NewIconList creates a new icon list
func NewIconList() *IconList {
	return &IconList{
		Visible: []int{},
		Cursor:  0,
		Width:   60,
		Height:  20,
		Focused: true,
		Title:   "Icons",
	}
}

// SetResult replaces the visible records. The cursor stays on the same
// record when it is still visible.
func (l *IconList) SetResult(c *catalog.Catalog, r query.Result) {
	current, hadCurrent := l.Current()
	sameCatalog := l.catalog == c

	l.catalog = c
	l.Visible = r.Visible
	l.Total = r.Total

	if hadCurrent && sameCatalog {
		if pos := slices.Index(l.Visible, current); pos >= 0 {
			l.Cursor = pos
			return
		}
	}
	l.clampCursor()
}

// Label returns the "(visible/total) Icons" count label
func (l *IconList) Label() string {
	return query.Result{Matched: len(l.Visible), Total: l.Total}.Label()
}

// MoveUp moves cursor up
func (l *IconList) MoveUp() {
	if l.Cursor > 0 {
		l.Cursor--
	}
}

// MoveDown moves cursor down
func (l *IconList) MoveDown() {
	if l.Cursor < len(l.Visible)-1 {
		l.Cursor++
	}
}

// PageUp moves cursor up by a page
func (l *IconList) PageUp() {
	l.Cursor -= l.pageSize()
	if l.Cursor < 0 {
		l.Cursor = 0
	}
}

// PageDown moves cursor down by a page
func (l *IconList) PageDown() {
	l.Cursor += l.pageSize()
	l.clampCursor()
}

// GoToFirst moves cursor to the first item
func (l *IconList) GoToFirst() {
	l.Cursor = 0
}

// GoToLast moves cursor to the last item
func (l *IconList) GoToLast() {
	if len(l.Visible) > 0 {
		l.Cursor = len(l.Visible) - 1
	}
}

// Current returns the record index under the cursor
func (l *IconList) Current() (int, bool) {
	if l.Cursor >= 0 && l.Cursor < len(l.Visible) {
		return l.Visible[l.Cursor], true
	}
	return 0, false
}

// CurrentIcon returns the record under the cursor
func (l *IconList) CurrentIcon() *models.Icon {
	i, ok := l.Current()
	if !ok || l.catalog == nil {
		return nil
	}
	return l.catalog.Get(i)
}

func (l *IconList) pageSize() int {
	pageSize := l.Height - 3
	if pageSize < 1 {
		pageSize = 10
	}
	return pageSize
}

func (l *IconList) clampCursor() {
	if l.Cursor >= len(l.Visible) {
		l.Cursor = max(0, len(l.Visible)-1)
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
}

// View renders the icon list
func (l *IconList) View() string {
	var b strings.Builder

	b.WriteString(ui.PanelTitleStyle.Render(l.Title) + " " + ui.CountStyle.Render(l.Label()))
	b.WriteString("\n")
	b.WriteString(ui.DividerStyle.Render(strings.Repeat("─", max(0, l.Width-2))))
	b.WriteString("\n")

	if len(l.Visible) == 0 || l.catalog == nil {
		b.WriteString(ui.ItemStyle.Render(ui.MutedStyle.Render("No matching icons")))
		return l.wrapInPanel(b.String())
	}

	// Calculate visible range
	visibleHeight := max(1, l.Height-3)
	startIdx := 0
	if l.Cursor >= visibleHeight {
		startIdx = l.Cursor - visibleHeight + 1
	}
	endIdx := min(startIdx+visibleHeight, len(l.Visible))

	if startIdx > 0 {
		b.WriteString(ui.MutedStyle.Render("  ↑ more"))
		b.WriteString("\n")
	}

	for i := startIdx; i < endIdx; i++ {
		icon := l.catalog.Get(l.Visible[i])
		b.WriteString(l.renderItem(icon, i == l.Cursor))
		if i < endIdx-1 {
			b.WriteString("\n")
		}
	}

	if endIdx < len(l.Visible) {
		b.WriteString("\n")
		b.WriteString(ui.MutedStyle.Render("  ↓ more"))
	}

	// Add position indicator when scrolling
	if len(l.Visible) > visibleHeight {
		position := fmt.Sprintf(" %d/%d ", l.Cursor+1, len(l.Visible))
		b.WriteString("\n")
		b.WriteString(ui.MutedStyle.Render(strings.Repeat(" ", max(0, (l.Width-len(position)-4)/2)) + position))
	}

	return l.wrapInPanel(b.String())
}

// renderItem renders a single icon row
func (l *IconList) renderItem(icon *models.Icon, isCursor bool) string {
	name := icon.Name
	maxNameLen := max(8, l.Width/2)
	if len(name) > maxNameLen {
		name = name[:maxNameLen-3] + "..."
	}

	detail := ""
	switch {
	case icon.HasTarget():
		detail = ui.AliasStyle.Render("→ " + l.catalog.Get(icon.AliasTarget).Name)
	case len(icon.Tags) > 1:
		detail = ui.MutedStyle.Render(strings.Join(icon.Tags[1:], " "))
	}

	content := fmt.Sprintf("%s %s", ui.RenderKind(icon), ui.IconNameStyle.Render(name))
	if detail != "" {
		pad := max(1, maxNameLen-lipgloss.Width(name)+1)
		content += strings.Repeat(" ", pad) + detail
	}

	if isCursor && l.Focused {
		return ui.SelectedItemStyle.Width(max(0, l.Width-4)).Render(content)
	}
	return ui.ItemStyle.Render(content)
}

// wrapInPanel wraps content in a panel border
func (l *IconList) wrapInPanel(content string) string {
	style := ui.PanelStyle
	if l.Focused {
		style = ui.ActivePanelStyle
	}
	return style.Width(l.Width).Height(l.Height).Render(content)
}
