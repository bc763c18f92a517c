package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the app
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Tab      key.Binding
	Space    key.Binding
	Enter    key.Binding
	Help     key.Binding
	Quit     key.Binding
	Escape   key.Binding

	// Search & filters
	Search        key.Binding // Focus the search box
	SymlinkMode   key.Binding // Cycle symlink filter
	SymbolicMode  key.Binding // Cycle symbolic filter
	Dangling      key.Binding // Toggle dangling symlink visibility
	SearchTags    key.Binding // Toggle searching tags
	Categories    key.Binding // Open category panel
	AllCategories key.Binding // Include every category
	ClearTags     key.Binding // Clear required tags

	// Catalog
	SizeUp   key.Binding // Larger icon size
	SizeDown key.Binding // Smaller icon size
	Reload   key.Binding // Rebuild the catalog

	// Icon actions
	Copy key.Binding // Copy icon name
	Edit key.Binding // Open icon file in an editor
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev tag"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next tag"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("Home/g", "first"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("End/G", "last"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch panel"),
		),
		Space: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),

		// Search & filters
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		SymlinkMode: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "symlinks"),
		),
		SymbolicMode: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "symbolic"),
		),
		Dangling: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "broken links"),
		),
		SearchTags: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "search tags"),
		),
		Categories: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "categories"),
		),
		AllCategories: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "all categories"),
		),
		ClearTags: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear tags"),
		),

		// Catalog
		SizeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "bigger"),
		),
		SizeDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "smaller"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),

		// Icon actions
		Copy: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "copy name"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "open in editor"),
		),
	}
}

// ShortHelp returns keybindings to show in short help
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.SymlinkMode, k.SymbolicMode, k.Categories, k.Enter, k.Help, k.Quit}
}

// FullHelp returns all keybindings for full help
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Navigation
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		// Panels
		{k.Tab, k.Space, k.Enter, k.Left, k.Right, k.Escape},
		// Filters
		{k.Search, k.SymlinkMode, k.SymbolicMode, k.Dangling, k.SearchTags},
		// Tags & categories
		{k.Categories, k.AllCategories, k.ClearTags},
		// Catalog & general
		{k.SizeUp, k.SizeDown, k.Reload, k.Copy, k.Edit, k.Help, k.Quit},
	}
}
