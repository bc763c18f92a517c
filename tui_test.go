package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"iconview/internal/catalog"
	"iconview/internal/category"
	"iconview/internal/config"
	"iconview/internal/editor"

	tea "github.com/charmbracelet/bubbletea"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// newTestModel returns a model whose first catalog build has been delivered
// and whose alias resolution has run to completion
func newTestModel(t *testing.T) *Model {
	t.Helper()

	m := NewModel(config.Default(), category.Builtin(), "Adwaita", catalog.NewBuilder(setupSource(t), 1))
	t.Cleanup(m.cancel)

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	drain(t, m, m.buildCatalog())
	return m
}

// drain runs cmd and feeds its messages back into m until no command is left
func drain(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	for i := 0; cmd != nil; i++ {
		if i > 1000 {
			t.Fatal("Too many commands")
		}
		_, cmd = m.Update(cmd())
	}
}

func TestNextSize(t *testing.T) {
	tests := []struct {
		current int
		up      bool
		want    int
	}{
		{48, true, 64},
		{48, false, 32},
		{16, false, 16},
		{256, true, 256},
		{40, true, 48},
		{40, false, 32},
		{1000, false, 256},
	}

	for _, tt := range tests {
		if got := nextSize(tt.current, tt.up); got != tt.want {
			t.Errorf("nextSize(%d, %v) = %d, want %d", tt.current, tt.up, got, tt.want)
		}
	}
}

func TestModel_CatalogLoaded(t *testing.T) {
	m := newTestModel(t)

	if m.screen != ScreenMain {
		t.Errorf("Expected main screen, got %v", m.screen)
	}
	if m.engine == nil {
		t.Fatal("Expected an engine after the catalog is built")
	}
	if len(m.iconList.Visible) != 3 {
		t.Errorf("Expected 3 visible icons, got %d", len(m.iconList.Visible))
	}
	if m.iconList.Total != 6 {
		t.Errorf("Expected 6 icons in total, got %d", m.iconList.Total)
	}
	if m.resolving {
		t.Error("Alias resolution should be finished")
	}
	if m.stats.Aliased != 1 || m.stats.Dangling != 1 {
		t.Errorf("Expected 1 aliased and 1 dangling icon, got %+v", m.stats)
	}
	if !strings.HasPrefix(m.status, "✓ Resolved") {
		t.Errorf("Unexpected status %q", m.status)
	}
}

func TestModel_IgnoresStaleMessages(t *testing.T) {
	m := NewModel(config.Default(), category.Builtin(), "Adwaita", catalog.NewBuilder(setupSource(t), 1))
	t.Cleanup(m.cancel)

	m.Update(catalogBuiltMsg{seq: m.buildSeq - 1, catalog: catalog.New(nil, catalog.DefaultSize)})
	if m.engine != nil || m.screen != ScreenLoading {
		t.Error("Stale catalog should be ignored")
	}

	m = newTestModel(t)
	done := m.aliasDone
	stale := make(chan catalog.AliasBatch)
	_, cmd := m.Update(aliasBatchMsg{aliases: stale, batch: catalog.AliasBatch{Done: 99, Total: 100}, ok: true})
	if cmd != nil {
		t.Error("Batch from another run should not re-arm")
	}
	if m.aliasDone != done {
		t.Error("Batch from another run should not update progress")
	}
}

func TestModel_Reload(t *testing.T) {
	m := newTestModel(t)
	seq := m.buildSeq
	old := m.ctx

	_, cmd := m.Update(runeKey("r"))

	if m.buildSeq != seq+1 {
		t.Errorf("Expected build sequence %d, got %d", seq+1, m.buildSeq)
	}
	if old.Err() == nil {
		t.Error("Reload should cancel the previous context")
	}
	if m.screen != ScreenLoading {
		t.Errorf("Expected loading screen, got %v", m.screen)
	}

	drain(t, m, cmd)
	if m.screen != ScreenMain || len(m.iconList.Visible) != 3 {
		t.Errorf("Expected reloaded catalog, got screen %v with %d icons", m.screen, len(m.iconList.Visible))
	}
}

func TestModel_FilterKeys(t *testing.T) {
	m := newTestModel(t)

	// Not -> Either shows every record
	m.Update(runeKey("s"))
	if len(m.iconList.Visible) != 6 {
		t.Errorf("Expected 6 icons with symlinks shown, got %d", len(m.iconList.Visible))
	}
	if m.status != "Symlinks: "+m.engine.Options().Symlink.String() {
		t.Errorf("Unexpected status %q", m.status)
	}

	// Either -> Is shows symlinks only
	m.Update(runeKey("s"))
	if len(m.iconList.Visible) != 3 {
		t.Errorf("Expected 3 symlinks, got %d", len(m.iconList.Visible))
	}

	// Is -> Not, then let the broken link through
	m.Update(runeKey("s"))
	m.Update(runeKey("i"))
	if !m.engine.Options().ShowDangling {
		t.Error("Expected dangling symlinks to be shown")
	}
	if len(m.iconList.Visible) != 4 {
		t.Errorf("Expected 4 icons with the broken link, got %d", len(m.iconList.Visible))
	}
}

func TestModel_Search(t *testing.T) {
	m := newTestModel(t)

	m.Update(runeKey("/"))
	if !m.searchMode {
		t.Fatal("Expected search mode")
	}

	for _, r := range "symbolic" {
		m.Update(runeKey(string(r)))
	}
	if m.engine.Options().SearchText != "symbolic" {
		t.Errorf("Expected search text to follow input, got %q", m.engine.Options().SearchText)
	}
	if len(m.iconList.Visible) != 1 {
		t.Errorf("Expected 1 matching icon, got %d", len(m.iconList.Visible))
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.searchMode {
		t.Error("Enter should leave search mode")
	}
	if m.engine.Options().SearchText != "symbolic" {
		t.Error("Enter should keep the search")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.engine.Options().SearchText != "" {
		t.Error("Escape should clear the search")
	}
	if len(m.iconList.Visible) != 3 {
		t.Errorf("Expected 3 icons after clearing, got %d", len(m.iconList.Visible))
	}
}

func TestModel_Details(t *testing.T) {
	m := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != ScreenDetails {
		t.Fatalf("Expected details screen, got %v", m.screen)
	}
	if m.details.Icon.Name != "folder" {
		t.Errorf("Expected details for folder, got %q", m.details.Icon.Name)
	}

	tag, ok := m.details.CurrentTag()
	if !ok {
		t.Fatal("Expected a tag under the cursor")
	}

	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if got := m.engine.Options().RequiredTags; len(got) != 1 || got[0] != tag {
		t.Errorf("Expected required tags [%s], got %v", tag, got)
	}

	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if got := m.engine.Options().RequiredTags; len(got) != 0 {
		t.Errorf("Expected tag to be toggled off, got %v", got)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != ScreenMain {
		t.Errorf("Escape should return to the list, got %v", m.screen)
	}
}

func TestModel_Categories(t *testing.T) {
	m := newTestModel(t)

	m.Update(runeKey("c"))
	if !m.showCategories || m.focusedPanel != PanelCategories {
		t.Fatal("Expected focused category panel")
	}

	// The first category is excluded by toggling it
	first, _ := m.categoryPanel.Current()
	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if m.engine.Options().HasCategory(first) {
		t.Errorf("Expected %s to be excluded", first)
	}

	m.Update(runeKey("a"))
	if !m.engine.Options().HasCategory(first) {
		t.Errorf("Expected %s to be included again", first)
	}

	m.Update(runeKey("c"))
	if m.showCategories || m.focusedPanel != PanelIcons {
		t.Error("Expected the category panel to close")
	}
}

func TestModel_Resize(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(runeKey("+"))
	if cmd == nil {
		t.Fatal("Expected a resize command")
	}
	drain(t, m, cmd)

	if m.size != 64 {
		t.Errorf("Expected size 64, got %d", m.size)
	}
	if m.engine.Catalog().Size() != 64 {
		t.Errorf("Expected catalog size 64, got %d", m.engine.Catalog().Size())
	}
	if !strings.HasPrefix(m.status, "✓ Size 64px") {
		t.Errorf("Unexpected status %q", m.status)
	}
}

func TestModel_View(t *testing.T) {
	m := NewModel(config.Default(), category.Builtin(), "Adwaita", catalog.NewBuilder(setupSource(t), 1))
	t.Cleanup(m.cancel)

	if !strings.Contains(m.View(), "Indexing icons") {
		t.Error("Expected loading view before the catalog is built")
	}

	m = newTestModel(t)
	view := m.View()
	for _, want := range []string{"IconView", "Adwaita", "folder"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected %q in view", want)
		}
	}

	m.Update(runeKey("?"))
	if m.screen != ScreenHelp {
		t.Fatalf("Expected help screen, got %v", m.screen)
	}
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("Expected help content")
	}
}

// fakeEditor records opened paths instead of starting a process
type fakeEditor struct {
	opened []string
}

func (e *fakeEditor) Name() string      { return "Fake" }
func (e *fakeEditor) IsInstalled() bool { return true }
func (e *fakeEditor) Wait() error       { return nil }
func (e *fakeEditor) Open(path string) error {
	e.opened = append(e.opened, path)
	return nil
}

func TestModel_CopyName(t *testing.T) {
	m := newTestModel(t)

	var copied string
	m.copyName = func(s string) error {
		copied = s
		return nil
	}

	m.Update(runeKey("Y"))
	if copied != "folder" {
		t.Errorf("Expected folder to be copied, got %q", copied)
	}
	if !strings.HasPrefix(m.status, "✓ Copied") {
		t.Errorf("Unexpected status %q", m.status)
	}

	m.copyName = func(string) error { return errors.New("no clipboard") }
	m.Update(runeKey("Y"))
	if !strings.HasPrefix(m.status, "Error: clipboard") {
		t.Errorf("Expected clipboard error, got %q", m.status)
	}
}

func TestModel_EditIcon(t *testing.T) {
	m := newTestModel(t)

	fake := &fakeEditor{}
	var requested string
	m.openEditor = func(name string) (editor.Editor, error) {
		requested = name
		return fake, nil
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, cmd := m.Update(runeKey("e"))
	if cmd == nil {
		t.Fatal("Expected watch commands")
	}
	if requested != "auto" {
		t.Errorf("Expected configured editor, got %q", requested)
	}
	if len(fake.opened) != 1 || fake.opened[0] != m.details.Icon.Path {
		t.Errorf("Expected %s to be opened, got %v", m.details.Icon.Path, fake.opened)
	}
	if m.watchCtx == nil || m.watchCtx.Err() != nil {
		t.Fatal("Expected an active watch")
	}

	// A write reloads the details and re-arms the watch
	watch := m.watchCtx
	_, cmd = m.Update(iconChangedMsg{
		ctx:    watch,
		index:  m.details.Index,
		result: editor.WatchResult{Path: m.details.Icon.Path, Modified: true},
	})
	if cmd == nil {
		t.Error("Expected the watch to be re-armed")
	}
	if m.status != "✓ Reloaded folder" {
		t.Errorf("Unexpected status %q", m.status)
	}

	// Leaving the details stops watching
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if watch.Err() == nil {
		t.Error("Expected the watch to stop when leaving details")
	}
	_, cmd = m.Update(iconChangedMsg{ctx: watch, index: 0, result: editor.WatchResult{Modified: true}})
	if cmd != nil {
		t.Error("Stopped watch should not re-arm")
	}
}

func TestModel_EditIconErrors(t *testing.T) {
	m := newTestModel(t)
	m.openEditor = func(string) (editor.Editor, error) {
		return nil, errors.New("no supported editor found")
	}

	m.Update(runeKey("e"))
	if m.status != "Error: no supported editor found" {
		t.Errorf("Unexpected status %q", m.status)
	}

	// nowhere is last and has no file
	m.Update(runeKey("G"))
	_, cmd := m.Update(runeKey("e"))
	if cmd != nil {
		t.Error("Missing icon should not start an editor")
	}
	if !strings.Contains(m.status, "nowhere has no file") {
		t.Errorf("Unexpected status %q", m.status)
	}
}

func TestModel_EditorClosed(t *testing.T) {
	m := newTestModel(t)
	if _, cmd := m.Update(editorClosedMsg{name: "Fake", err: context.Canceled}); cmd != nil {
		t.Error("Editor exit should not produce commands")
	}
}
