package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"iconview/internal/catalog"
	"iconview/internal/category"
	"iconview/internal/config"
	"iconview/internal/editor"
	"iconview/internal/query"
	"iconview/internal/ui"
	"iconview/internal/ui/components"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Screen represents different screens in the app
type Screen int

const (
	ScreenLoading Screen = iota // Catalog is being built
	ScreenMain
	ScreenDetails // Single icon details
	ScreenHelp
)

// Panel represents which panel is focused
type Panel int

const (
	PanelIcons Panel = iota
	PanelCategories
)

// iconSizes are the sizes the size keys step through
var iconSizes = []int{16, 22, 24, 32, 48, 64, 96, 128, 256}

// Model is the main application model
type Model struct {
	cfg       *config.Config
	defs      []category.Definition
	themeName string
	builder   *catalog.Builder
	resolver  *catalog.Resolver

	engine *query.Engine
	stats  catalog.Stats

	// Background work
	ctx        context.Context
	cancel     context.CancelFunc
	buildSeq   int
	aliases    <-chan catalog.AliasBatch
	resolving  bool
	aliasDone  int
	aliasTotal int
	watchCtx   context.Context
	watchStop  context.CancelFunc

	// Icon actions
	copyName   func(string) error
	openEditor func(name string) (editor.Editor, error)

	// UI Components
	iconList      *components.IconList
	categoryPanel *components.CategoryPanel
	details       *components.IconDetails
	spinner       spinner.Model
	progress      progress.Model
	help          help.Model
	helpVP        viewport.Model
	keys          ui.KeyMap
	textInput     textinput.Model

	// State
	screen         Screen
	focusedPanel   Panel
	showCategories bool
	searchMode     bool
	size           int
	status         string
	err            error
	width          int
	height         int
}

// catalogBuiltMsg carries a finished catalog build
type catalogBuiltMsg struct {
	seq     int
	catalog *catalog.Catalog
	err     error
	elapsed time.Duration
}

// aliasBatchMsg carries one batch read from a resolver run
type aliasBatchMsg struct {
	aliases <-chan catalog.AliasBatch
	batch   catalog.AliasBatch
	ok      bool
}

// resizeMsg asks for the catalog to be looked up again at size
type resizeMsg struct {
	size int
}

// iconChangedMsg reports that a file opened in an editor was written
type iconChangedMsg struct {
	ctx    context.Context
	index  int
	result editor.WatchResult
}

// editorClosedMsg reports that an editor process exited
type editorClosedMsg struct {
	name string
	err  error
}

// NewModel creates the interactive browser over builder's icon source
func NewModel(cfg *config.Config, defs []category.Definition, themeName string, builder *catalog.Builder) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = ui.ProgressStyle

	prog := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(24),
		progress.WithoutPercentage(),
	)

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "icon name or tag"
	ti.CharLimit = 128
	ti.Width = 40

	ctx, cancel := context.WithCancel(context.Background())

	m := &Model{
		cfg:           cfg,
		defs:          defs,
		themeName:     themeName,
		builder:       builder,
		resolver:      catalog.NewResolver(cfg.AliasBatchSize),
		ctx:           ctx,
		cancel:        cancel,
		copyName:      clipboard.WriteAll,
		openEditor:    editor.Detect,
		iconList:      components.NewIconList(),
		categoryPanel: components.NewCategoryPanel(defs),
		details:       components.NewIconDetails(),
		spinner:       s,
		progress:      prog,
		help:          help.New(),
		keys:          ui.DefaultKeyMap(),
		textInput:     ti,
		screen:        ScreenLoading,
		focusedPanel:  PanelIcons,
		size:          cfg.IconSize,
		status:        "Loading...",
		width:         80,
		height:        24,
	}
	m.categoryPanel.SetSelected(optionsFromConfig(cfg, defs).Categories)
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.buildCatalog())
}

// buildCatalog builds a new catalog generation in the background
func (m *Model) buildCatalog() tea.Cmd {
	ctx, seq, size := m.ctx, m.buildSeq, m.size
	builder := m.builder
	return func() tea.Msg {
		start := time.Now()
		c, err := builder.Build(ctx, size)
		return catalogBuiltMsg{seq: seq, catalog: c, err: err, elapsed: time.Since(start)}
	}
}

// waitForAliases reads the next batch of a resolver run
func waitForAliases(aliases <-chan catalog.AliasBatch) tea.Cmd {
	return func() tea.Msg {
		batch, ok := <-aliases
		return aliasBatchMsg{aliases: aliases, batch: batch, ok: ok}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updatePanelSizes()
		if m.screen == ScreenHelp {
			m.helpVP.Width = m.width - 4
			m.helpVP.Height = m.height - 4
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		// Forward mouse events to the source preview
		if m.screen == ScreenDetails {
			var cmd tea.Cmd
			m.details, cmd = m.details.Update(msg)
			return m, cmd
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case catalogBuiltMsg:
		return m.handleCatalogBuilt(msg)

	case aliasBatchMsg:
		return m.handleAliasBatch(msg)

	case resizeMsg:
		return m.handleResize(msg.size)

	case iconChangedMsg:
		return m.handleIconChanged(msg)

	case editorClosedMsg:
		if msg.err != nil {
			log.Debug().Err(msg.err).Str("editor", msg.name).Msg("editor exited")
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleCatalogBuilt(msg catalogBuiltMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.buildSeq {
		// Superseded by a reload
		return m, nil
	}

	if msg.err != nil {
		m.screen = ScreenMain
		if errors.Is(msg.err, context.Canceled) {
			m.status = "Loading cancelled"
			return m, nil
		}
		m.err = msg.err
		m.status = fmt.Sprintf("Error: %v", msg.err)
		return m, nil
	}

	c := msg.catalog
	if m.engine == nil {
		m.engine = query.New(c, m.defs, optionsFromConfig(m.cfg, m.defs))
		m.engine.Subscribe(func(r query.Result) {
			m.iconList.SetResult(m.engine.Catalog(), r)
		})
		m.iconList.SetResult(c, m.engine.Result())
	} else {
		m.engine.SetCatalog(c)
	}
	m.categoryPanel.SetSelected(m.engine.Options().Categories)

	m.stats = c.Stats()
	m.screen = ScreenMain
	m.err = nil
	m.status = fmt.Sprintf("✓ Loaded %d icons from %s in %s", c.Len(), m.themeName, msg.elapsed.Round(time.Millisecond))

	m.aliases = m.resolver.Start(m.ctx, c)
	m.resolving = true
	m.aliasDone, m.aliasTotal = 0, 0

	log.Info().
		Str("generation", c.Generation().String()).
		Int("icons", c.Len()).
		Int("size", c.Size()).
		Msg("catalog loaded")
	return m, waitForAliases(m.aliases)
}

func (m *Model) handleAliasBatch(msg aliasBatchMsg) (tea.Model, tea.Cmd) {
	if msg.aliases != m.aliases {
		// Batch from a cancelled run
		return m, nil
	}
	if !msg.ok {
		m.resolving = false
		return m, nil
	}

	changed := m.engine.ApplyAliases(msg.batch)
	m.aliasDone, m.aliasTotal = msg.batch.Done, msg.batch.Total

	if m.screen == ScreenDetails && slices.Contains(changed, m.details.Index) {
		m.details.SetIcon(m.engine.Catalog(), m.details.Index, m.engine.Options().RequiredTags)
	}

	if msg.batch.Final {
		m.resolving = false
		m.stats = m.engine.Catalog().Stats()
		m.status = fmt.Sprintf("✓ Resolved %d aliases, %d broken symlinks", m.stats.Aliased, m.stats.Dangling)
		return m, nil
	}
	return m, waitForAliases(m.aliases)
}

func (m *Model) handleResize(size int) (tea.Model, tea.Cmd) {
	if m.engine == nil || size == m.size {
		return m, nil
	}

	c := m.engine.Catalog()
	changed, err := m.builder.Refresh(m.ctx, c, size)
	if err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
		return m, nil
	}

	m.size = size
	m.engine.Refreshed(changed)
	m.stats = c.Stats()
	if m.screen == ScreenDetails {
		m.details.SetIcon(c, m.details.Index, m.engine.Options().RequiredTags)
	}
	m.status = fmt.Sprintf("✓ Size %dpx: %d icons changed file", size, len(changed))
	return m, nil
}

// reload cancels background work and builds a new catalog generation
func (m *Model) reload() (tea.Model, tea.Cmd) {
	m.cancel()
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.buildSeq++
	m.aliases = nil
	m.resolving = false
	m.screen = ScreenLoading
	m.status = "Reloading..."
	return m, m.buildCatalog()
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case ScreenLoading:
		if key.Matches(msg, m.keys.Quit) {
			m.cancel()
			return m, tea.Quit
		}
		return m, nil
	case ScreenHelp:
		if key.Matches(msg, m.keys.Escape, m.keys.Help, m.keys.Quit) {
			m.screen = ScreenMain
			return m, nil
		}
		// Forward to viewport for scrolling
		var cmd tea.Cmd
		m.helpVP, cmd = m.helpVP.Update(msg)
		return m, cmd
	case ScreenDetails:
		return m.handleDetailsKeys(msg)
	}

	if m.searchMode {
		return m.handleSearchKeys(msg)
	}
	return m.handleMainKeys(msg)
}

func (m *Model) handleMainKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.screen = ScreenHelp
		m.helpVP = viewport.New(m.width-4, m.height-4)
		m.helpVP.SetContent(m.renderHelp())
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		return m.reload()
	}

	// Everything below needs a catalog
	if m.engine == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.focusedPanel = PanelIcons
		m.updateFocus()
		m.textInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Escape):
		switch {
		case m.focusedPanel == PanelCategories:
			m.focusedPanel = PanelIcons
			m.updateFocus()
		case m.engine.Options().SearchText != "":
			m.textInput.SetValue("")
			m.engine.SetSearchText("")
			m.status = "Search cleared"
		}

	case key.Matches(msg, m.keys.Tab):
		if m.showCategories {
			if m.focusedPanel == PanelIcons {
				m.focusedPanel = PanelCategories
			} else {
				m.focusedPanel = PanelIcons
			}
			m.updateFocus()
		}

	case key.Matches(msg, m.keys.Categories):
		m.showCategories = !m.showCategories
		if m.showCategories {
			m.focusedPanel = PanelCategories
		} else {
			m.focusedPanel = PanelIcons
		}
		m.updateFocus()
		m.updatePanelSizes()

	case key.Matches(msg, m.keys.SymlinkMode):
		mode := m.engine.CycleSymlinkMode()
		m.status = "Symlinks: " + mode.String()

	case key.Matches(msg, m.keys.SymbolicMode):
		mode := m.engine.CycleSymbolicMode()
		m.status = "Symbolic icons: " + mode.String()

	case key.Matches(msg, m.keys.Dangling):
		on := !m.engine.Options().ShowDangling
		m.engine.SetShowDangling(on)
		m.status = "Broken symlinks: " + onOff(on)

	case key.Matches(msg, m.keys.SearchTags):
		on := !m.engine.Options().SearchTags
		m.engine.SetSearchTags(on)
		m.status = "Search tags: " + onOff(on)

	case key.Matches(msg, m.keys.AllCategories):
		m.engine.SetCategories(m.categoryPanel.AllIDs())
		m.categoryPanel.SetSelected(m.engine.Options().Categories)
		m.status = "All categories included"

	case key.Matches(msg, m.keys.ClearTags):
		m.engine.SetRequiredTags(nil)
		m.status = "Required tags cleared"

	case key.Matches(msg, m.keys.Copy):
		if i, ok := m.iconList.Current(); ok {
			m.copyIconName(i)
		}

	case key.Matches(msg, m.keys.Edit):
		if i, ok := m.iconList.Current(); ok {
			return m, m.editIcon(i)
		}

	case key.Matches(msg, m.keys.SizeUp):
		return m.requestResize(nextSize(m.size, true))

	case key.Matches(msg, m.keys.SizeDown):
		return m.requestResize(nextSize(m.size, false))

	case key.Matches(msg, m.keys.Up):
		m.handleNavigation(true)

	case key.Matches(msg, m.keys.Down):
		m.handleNavigation(false)

	case key.Matches(msg, m.keys.PageUp):
		m.handlePageNavigation(true)

	case key.Matches(msg, m.keys.PageDown):
		m.handlePageNavigation(false)

	case key.Matches(msg, m.keys.Home):
		m.handleHomeEnd(true)

	case key.Matches(msg, m.keys.End):
		m.handleHomeEnd(false)

	case key.Matches(msg, m.keys.Space):
		if m.focusedPanel == PanelCategories {
			m.toggleCategory()
		}

	case key.Matches(msg, m.keys.Enter):
		if m.focusedPanel == PanelCategories {
			m.toggleCategory()
			return m, nil
		}
		m.openDetails()
	}

	return m, nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		// Cancel search, show everything again
		m.searchMode = false
		m.textInput.Blur()
		m.textInput.SetValue("")
		m.engine.SetSearchText("")
		m.status = "Search cancelled"
		return m, nil

	case tea.KeyEnter:
		// Confirm search
		m.searchMode = false
		m.textInput.Blur()
		m.status = fmt.Sprintf("Showing %d matching icons", len(m.iconList.Visible))
		return m, nil

	case tea.KeyUp:
		m.iconList.MoveUp()
		return m, nil

	case tea.KeyDown:
		m.iconList.MoveDown()
		return m, nil

	default:
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		if text := m.textInput.Value(); text != m.engine.Options().SearchText {
			m.engine.SetSearchText(text)
		}
		return m, cmd
	}
}

func (m *Model) handleDetailsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape, m.keys.Quit, m.keys.Enter):
		m.screen = ScreenMain
		m.stopWatch()
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		m.copyIconName(m.details.Index)

	case key.Matches(msg, m.keys.Edit):
		return m, m.editIcon(m.details.Index)

	case key.Matches(msg, m.keys.Left):
		m.details.PrevTag()

	case key.Matches(msg, m.keys.Right):
		m.details.NextTag()

	case key.Matches(msg, m.keys.Space):
		tag, ok := m.details.CurrentTag()
		if !ok {
			return m, nil
		}
		required := m.engine.ToggleRequiredTag(tag)
		m.details.SetRequired(m.engine.Options().RequiredTags)
		if required {
			m.status = fmt.Sprintf("Requiring tag %q", tag)
		} else {
			m.status = fmt.Sprintf("No longer requiring tag %q", tag)
		}

	case key.Matches(msg, m.keys.Up):
		m.details.ScrollUp()

	case key.Matches(msg, m.keys.Down):
		m.details.ScrollDown()

	case key.Matches(msg, m.keys.PageUp):
		m.details.PageUp()

	case key.Matches(msg, m.keys.PageDown):
		m.details.PageDown()

	default:
		var cmd tea.Cmd
		m.details, cmd = m.details.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleNavigation(up bool) {
	switch {
	case m.focusedPanel == PanelCategories && up:
		m.categoryPanel.MoveUp()
	case m.focusedPanel == PanelCategories:
		m.categoryPanel.MoveDown()
	case up:
		m.iconList.MoveUp()
	default:
		m.iconList.MoveDown()
	}
}

func (m *Model) handlePageNavigation(up bool) {
	if m.focusedPanel == PanelCategories {
		return
	}
	if up {
		m.iconList.PageUp()
	} else {
		m.iconList.PageDown()
	}
}

func (m *Model) handleHomeEnd(home bool) {
	switch {
	case m.focusedPanel == PanelCategories && home:
		m.categoryPanel.GoToFirst()
	case m.focusedPanel == PanelCategories:
		m.categoryPanel.GoToLast()
	case home:
		m.iconList.GoToFirst()
	default:
		m.iconList.GoToLast()
	}
}

func (m *Model) toggleCategory() {
	id, ok := m.categoryPanel.Current()
	if !ok {
		return
	}
	included := m.engine.ToggleCategory(id)
	m.categoryPanel.SetSelected(m.engine.Options().Categories)
	if included {
		m.status = fmt.Sprintf("Including %s", id)
	} else {
		m.status = fmt.Sprintf("Excluding %s", id)
	}
}

func (m *Model) openDetails() {
	i, ok := m.iconList.Current()
	if !ok {
		return
	}
	m.details.SetIcon(m.engine.Catalog(), i, m.engine.Options().RequiredTags)
	m.screen = ScreenDetails
}

func (m *Model) copyIconName(i int) {
	name := m.engine.Catalog().Get(i).Name
	if err := m.copyName(name); err != nil {
		m.status = fmt.Sprintf("Error: clipboard: %v", err)
		return
	}
	m.status = fmt.Sprintf("✓ Copied %q", name)
	log.Debug().Str("name", name).Msg("copied icon name")
}

// editIcon opens the file of record i in the configured editor and watches
// it for changes
func (m *Model) editIcon(i int) tea.Cmd {
	icon := m.engine.Catalog().Get(i)
	if !icon.Found || icon.Path == "" {
		m.status = fmt.Sprintf("Error: %s has no file in this theme", icon.Name)
		return nil
	}

	ed, err := m.openEditor(m.cfg.Editor)
	if err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
		return nil
	}
	if err := ed.Open(icon.Path); err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
		return nil
	}
	m.status = fmt.Sprintf("✓ Opened %s in %s", icon.Name, ed.Name())
	log.Info().Str("path", icon.Path).Str("editor", ed.Name()).Msg("opened icon")

	m.stopWatch()
	m.watchCtx, m.watchStop = context.WithCancel(m.ctx)

	name := ed.Name()
	return tea.Batch(
		watchIcon(m.watchCtx, i, icon.Path),
		func() tea.Msg { return editorClosedMsg{name: name, err: ed.Wait()} },
	)
}

// watchIcon waits for the next write to path
func watchIcon(ctx context.Context, i int, path string) tea.Cmd {
	return func() tea.Msg {
		result := editor.NewFileWatcher(path).WaitForChange(ctx)
		return iconChangedMsg{ctx: ctx, index: i, result: result}
	}
}

func (m *Model) stopWatch() {
	if m.watchStop != nil {
		m.watchStop()
		m.watchStop = nil
	}
}

func (m *Model) handleIconChanged(msg iconChangedMsg) (tea.Model, tea.Cmd) {
	if msg.ctx != m.watchCtx || msg.ctx.Err() != nil {
		return m, nil
	}
	if msg.result.Error != nil {
		log.Debug().Err(msg.result.Error).Str("path", msg.result.Path).Msg("stopped watching icon")
		return m, nil
	}

	if m.screen == ScreenDetails && m.details.Index == msg.index {
		m.details.SetIcon(m.engine.Catalog(), msg.index, m.engine.Options().RequiredTags)
		m.status = fmt.Sprintf("✓ Reloaded %s", m.details.Icon.Name)
	}
	return m, watchIcon(msg.ctx, msg.index, msg.result.Path)
}

func (m *Model) requestResize(size int) (tea.Model, tea.Cmd) {
	if size == m.size {
		return m, nil
	}
	m.status = fmt.Sprintf("Looking up icons at %dpx...", size)
	return m, func() tea.Msg { return resizeMsg{size: size} }
}

// nextSize returns the next larger or smaller entry of iconSizes
func nextSize(current int, up bool) int {
	if up {
		for _, s := range iconSizes {
			if s > current {
				return s
			}
		}
		return current
	}
	for i := len(iconSizes) - 1; i >= 0; i-- {
		if iconSizes[i] < current {
			return iconSizes[i]
		}
	}
	return current
}

func (m *Model) updateFocus() {
	m.iconList.Focused = m.focusedPanel == PanelIcons
	m.categoryPanel.Focused = m.focusedPanel == PanelCategories
}

func (m *Model) updatePanelSizes() {
	// header, search bar, status, help and newlines
	panelHeight := max(5, m.height-8)
	listWidth := max(20, m.width-6)

	if m.showCategories {
		m.categoryPanel.Width = 32
		m.categoryPanel.Height = panelHeight
		listWidth = max(20, listWidth-m.categoryPanel.Width-4)
	}
	m.iconList.Width = listWidth
	m.iconList.Height = panelHeight

	m.details.SetSize(max(40, m.width-6), max(10, m.height-6))
	m.progress.Width = min(24, max(10, m.width/5))
}

func (m *Model) View() string {
	if m.screen == ScreenDetails {
		return m.renderDetails()
	}
	return m.renderMain()
}

func (m *Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	switch m.screen {
	case ScreenLoading:
		var lines []string
		lines = append(lines, m.spinner.View()+" Indexing icons...")
		lines = append(lines, "")
		lines = append(lines, "Theme: "+m.themeName)
		lines = append(lines, fmt.Sprintf("Size:  %dpx", m.size))

		content := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.Primary).
			Padding(1, 3).
			Render(strings.Join(lines, "\n"))

		b.WriteString(lipgloss.NewStyle().
			Width(m.width-2).
			Height(max(1, m.height-6)).
			Align(lipgloss.Center, lipgloss.Center).
			Render(content))

	case ScreenHelp:
		b.WriteString(m.helpVP.View())

	default:
		b.WriteString(m.renderSearchBar())
		b.WriteString("\n")
		if m.showCategories {
			b.WriteString(lipgloss.JoinHorizontal(
				lipgloss.Top,
				m.iconList.View(),
				"  ",
				m.categoryPanel.View(),
			))
		} else {
			b.WriteString(m.iconList.View())
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())

	return ui.AppStyle.Render(b.String())
}

func (m *Model) renderDetails() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.details.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())
	return ui.AppStyle.Render(b.String())
}

func (m *Model) renderHeader() string {
	title := ui.TitleStyle.Render("◆ IconView")
	ver := ui.VersionStyle.Render("v" + version)
	info := ui.MutedStyle.Render(fmt.Sprintf("  %s  %dpx", m.themeName, m.size))
	return ui.HeaderStyle.Render(title + "  " + ver + info)
}

func (m *Model) renderSearchBar() string {
	var search string
	switch {
	case m.searchMode:
		search = m.textInput.View()
	case m.engine != nil && m.engine.Options().SearchText != "":
		search = ui.SearchPromptStyle.Render("/ ") + m.engine.Options().SearchText
	default:
		search = ui.MutedStyle.Render("/ to search")
	}

	if m.engine == nil {
		return search
	}

	opts := m.engine.Options()
	parts := []string{
		search,
		ui.RenderFilterMode("links", opts.Symlink),
		ui.RenderFilterMode("symbolic", opts.Symbolic),
		ui.RenderToggle("broken", opts.ShowDangling),
		ui.RenderToggle("tags", opts.SearchTags),
	}
	for _, tag := range opts.RequiredTags {
		parts = append(parts, ui.RenderTag(tag, true))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) renderStatusBar() string {
	styledStatus := ui.MutedStyle.Render(m.status)
	switch {
	case strings.HasPrefix(m.status, "✓"):
		styledStatus = ui.RenderNotification("success", strings.TrimPrefix(m.status, "✓ "))
	case strings.HasPrefix(m.status, "Error"):
		styledStatus = ui.RenderNotification("error", m.status)
	case strings.Contains(m.status, "cancelled"):
		styledStatus = ui.RenderNotification("warning", m.status)
	}

	var stats []string
	if m.engine != nil {
		stats = append(stats,
			fmt.Sprintf("Found: %d", m.stats.Found),
			fmt.Sprintf("Symlinks: %d", m.stats.Symlinks),
		)
		if m.resolving {
			var percent float64
			if m.aliasTotal > 0 {
				percent = float64(m.aliasDone) / float64(m.aliasTotal)
			}
			stats = append(stats, "Aliases "+m.progress.ViewAs(percent))
		} else {
			stats = append(stats, fmt.Sprintf("Aliased: %d", m.stats.Aliased))
		}
	}

	return ui.StatusBarStyle.Render(strings.Join(append([]string{styledStatus}, stats...), "  •  "))
}

func (m *Model) renderHelpBar() string {
	switch m.screen {
	case ScreenLoading:
		return ui.HelpBarStyle.Render("⏳ Loading... " + ui.RenderHelpItem("q", "quit"))

	case ScreenHelp:
		scrollPct := fmt.Sprintf("%d%%", int(m.helpVP.ScrollPercent()*100))
		items := []string{
			ui.RenderHelpItem("↑↓/j/k", "scroll"),
			ui.RenderHelpItem("PgUp/PgDn", "page"),
			ui.RenderHelpItem("esc/?", "close"),
			ui.RenderHelpItem(scrollPct, ""),
		}
		return ui.HelpBarStyle.Render(strings.Join(items, "  "))

	case ScreenDetails:
		items := []string{
			ui.RenderHelpItem("←→", "select tag"),
			ui.RenderHelpItem("space", "require tag"),
			ui.RenderHelpItem("Y", "copy"),
			ui.RenderHelpItem("e", "edit"),
			ui.RenderHelpItem("↑↓", "scroll"),
			ui.RenderHelpItem("esc", "back"),
		}
		return ui.HelpBarStyle.Render(strings.Join(items, "  "))
	}

	if m.searchMode {
		items := []string{
			ui.RenderHelpItem("↑↓", "navigate"),
			ui.RenderHelpItem("enter", "confirm"),
			ui.RenderHelpItem("esc", "cancel"),
		}
		return ui.HelpBarStyle.Render(strings.Join(items, "  "))
	}

	if m.focusedPanel == PanelCategories {
		items := []string{
			ui.RenderHelpItem("space", "toggle"),
			ui.RenderHelpItem("a", "all"),
			ui.RenderHelpItem("tab", "icons"),
			ui.RenderHelpItem("c", "close"),
		}
		return ui.HelpBarStyle.Render(strings.Join(items, "  "))
	}

	return ui.HelpBarStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

func (m *Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(ui.PanelTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []string{"Navigation", "Panels", "Filters", "Tags & Categories", "Catalog"}
	for i, group := range m.keys.FullHelp() {
		b.WriteString(ui.MutedStyle.Render("  ─── " + sections[i] + " ───"))
		b.WriteString("\n")
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %s  %s\n",
				ui.HelpKeyStyle.Width(14).Render(h.Key),
				ui.HelpDescStyle.Render(h.Desc),
			))
		}
		b.WriteString("\n")
	}

	b.WriteString(ui.MutedStyle.Render("  ─── Markers ───"))
	b.WriteString("\n")
	markers := []struct {
		marker string
		desc   string
	}{
		{"■", "Raster or scalable icon"},
		{"◇", "Symbolic icon"},
		{"→", "Symlink aliasing another icon"},
		{"✗", "Symlink no icon claims"},
		{"?", "Not found in the theme"},
	}
	for _, mk := range markers {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			ui.HelpKeyStyle.Width(14).Render(mk.marker),
			ui.HelpDescStyle.Render(mk.desc),
		))
	}

	return b.String()
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func runTUI(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	if s.cfg.FirstRun {
		writeDefaults(s.cfg)
	}

	m := NewModel(s.cfg, s.defs, s.themeName(), s.builder)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	m.cancel()
	return err
}

// writeDefaults creates the config and category files on first run so they
// can be edited
func writeDefaults(cfg *config.Config) {
	if err := config.Default().Save(); err != nil {
		log.Warn().Err(err).Msg("could not write default config")
	}

	path := cfg.CategoriesPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := category.NewStore(path).Save(category.Builtin()); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("could not write category definitions")
		}
	}
}
