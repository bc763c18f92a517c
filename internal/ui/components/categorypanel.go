package components

import (
	"fmt"
	"slices"
	"strings"

	"iconview/internal/category"
	"iconview/internal/ui"
)

// CategoryItem is one row of the category panel
type CategoryItem struct {
	ID       string
	Name     string
	Selected bool
}

// CategoryPanel is a checkbox list of category IDs
type CategoryPanel struct {
	Items   []CategoryItem
	Cursor  int
	Width   int
	Height  int
	Focused bool
	Title   string
}

// NewCategoryPanel creates a panel listing defs followed by "unknown"
func NewCategoryPanel(defs []category.Definition) *CategoryPanel {
	items := make([]CategoryItem, 0, len(defs)+1)
	for _, def := range defs {
		items = append(items, CategoryItem{ID: def.ID, Name: def.Name})
	}
	items = append(items, CategoryItem{ID: category.Unknown, Name: "Unknown"})

	return &CategoryPanel{
		Items:  items,
		Width:  28,
		Height: 20,
		Title:  "Categories",
	}
}

// SetSelected marks the items whose ID is in ids
func (p *CategoryPanel) SetSelected(ids []string) {
	for i := range p.Items {
		p.Items[i].Selected = slices.Contains(ids, p.Items[i].ID)
	}
}

// MoveUp moves cursor up
func (p *CategoryPanel) MoveUp() {
	if p.Cursor > 0 {
		p.Cursor--
	}
}

// MoveDown moves cursor down
func (p *CategoryPanel) MoveDown() {
	if p.Cursor < len(p.Items)-1 {
		p.Cursor++
	}
}

// GoToFirst moves cursor to the first item
func (p *CategoryPanel) GoToFirst() {
	p.Cursor = 0
}

// GoToLast moves cursor to the last item
func (p *CategoryPanel) GoToLast() {
	if len(p.Items) > 0 {
		p.Cursor = len(p.Items) - 1
	}
}

// Current returns the ID under the cursor
func (p *CategoryPanel) Current() (string, bool) {
	if p.Cursor >= 0 && p.Cursor < len(p.Items) {
		return p.Items[p.Cursor].ID, true
	}
	return "", false
}

// SelectedIDs returns the IDs of all selected items
func (p *CategoryPanel) SelectedIDs() []string {
	ids := []string{}
	for _, item := range p.Items {
		if item.Selected {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

// AllIDs returns every ID in the panel
func (p *CategoryPanel) AllIDs() []string {
	ids := make([]string, len(p.Items))
	for i, item := range p.Items {
		ids[i] = item.ID
	}
	return ids
}

// View renders the category panel
func (p *CategoryPanel) View() string {
	var b strings.Builder

	selected := len(p.SelectedIDs())
	title := fmt.Sprintf("%s (%d/%d)", p.Title, selected, len(p.Items))
	b.WriteString(ui.PanelTitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(ui.DividerStyle.Render(strings.Repeat("─", max(0, p.Width-2))))
	b.WriteString("\n")

	visibleHeight := max(1, p.Height-3)
	startIdx := 0
	if p.Cursor >= visibleHeight {
		startIdx = p.Cursor - visibleHeight + 1
	}
	endIdx := min(startIdx+visibleHeight, len(p.Items))

	for i := startIdx; i < endIdx; i++ {
		item := p.Items[i]
		content := ui.RenderCheckbox(item.Selected) + " " + ui.CategoryStyle.Render(item.ID)
		if item.Name != "" && item.Name != item.ID {
			content += " " + ui.MutedStyle.Render(item.Name)
		}

		if i == p.Cursor && p.Focused {
			b.WriteString(ui.SelectedItemStyle.Width(max(0, p.Width-4)).Render(content))
		} else {
			b.WriteString(ui.ItemStyle.Render(content))
		}
		if i < endIdx-1 {
			b.WriteString("\n")
		}
	}

	style := ui.PanelStyle
	if p.Focused {
		style = ui.ActivePanelStyle
	}
	return style.Width(p.Width).Height(p.Height).Render(b.String())
}
