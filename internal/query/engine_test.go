package query

import (
	"bytes"
	"slices"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"iconview/internal/catalog"
	"iconview/internal/category"
	"iconview/internal/models"
)

func newIcon(name string, tags ...string) models.Icon {
	icon := models.NewIcon(name)
	icon.Found = true
	icon.Path = "/icons/" + name + ".svg"
	icon.Tags = append([]string{}, tags...)
	return icon
}

func symlinkIcon(name, target string, tags ...string) models.Icon {
	icon := newIcon(name, tags...)
	icon.Symlink = true
	icon.SymlinkTarget = target
	return icon
}

// names maps visible indices back to record names
func names(e *Engine, visible []int) []string {
	out := make([]string, 0, len(visible))
	for _, i := range visible {
		out = append(out, e.Icon(i).Name)
	}
	return out
}

func newEngine(icons ...models.Icon) *Engine {
	defs := category.Builtin()
	return New(catalog.New(icons, catalog.DefaultSize), defs, DefaultOptions(defs))
}

func sampleEngine() *Engine {
	symbolic := newIcon("folder-symbolic", "Adwaita", "symbolic", "places")
	symbolic.Symbolic = true

	return newEngine(
		newIcon("folder", "Adwaita", "scalable", "places"),
		symbolic,
		newIcon("user-trash", "Adwaita", "scalable", "places"),
		newIcon("firefox", "hicolor", "48x48", "apps"),
		newIcon("new-folder", "Adwaita", "scalable", "actions"),
		newIcon("logo", "Custom"),
	)
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions(category.Builtin())

	if !opts.SearchTags {
		t.Error("Searching tags should be on by default")
	}
	if opts.Symlink != models.FilterNot || opts.Symbolic != models.FilterEither {
		t.Errorf("Unexpected default modes: %s %s", opts.Symlink, opts.Symbolic)
	}
	if !opts.HasCategory(category.Unknown) || !opts.HasCategory("places") {
		t.Errorf("Every category should be included by default, got %v", opts.Categories)
	}
}

func TestEngine_EmptyTextSortsByName(t *testing.T) {
	e := sampleEngine()

	want := []string{"firefox", "folder", "folder-symbolic", "logo", "new-folder", "user-trash"}
	if got := names(e, e.Visible()); !slices.Equal(got, want) {
		t.Errorf("Visible = %v, want %v", got, want)
	}

	res := e.Result()
	if res.Total != 6 || res.Matched != 6 {
		t.Errorf("Unexpected counts: %+v", res)
	}
	if res.Label() != "(6/6) Icons" {
		t.Errorf("Unexpected label %q", res.Label())
	}
}

func TestEngine_Idempotent(t *testing.T) {
	e := sampleEngine()
	e.SetSearchText("fol")
	first := e.Visible()

	e.SetOptions(e.Options())
	second := e.Visible()

	if !slices.Equal(first, second) {
		t.Errorf("Re-running with unchanged options changed order: %v vs %v", first, second)
	}
}

func TestEngine_SearchRanksByScore(t *testing.T) {
	e := sampleEngine()
	e.SetSearchText("folder")

	got := names(e, e.Visible())
	if len(got) != 3 {
		t.Fatalf("Expected 3 matches, got %v", got)
	}
	if got[0] != "folder" {
		t.Errorf("Expected exact prefix match first, got %v", got)
	}

	vis := e.Visible()
	for i := 1; i < len(vis); i++ {
		if e.Score(vis[i-1]) < e.Score(vis[i]) {
			t.Errorf("Visible set not ordered by descending score: %v", got)
		}
	}
}

func TestEngine_TieBrokenByName(t *testing.T) {
	e := newEngine(newIcon("ab2"), newIcon("ab1"), newIcon("zz"))
	e.SetSearchText("ab")

	vis := e.Visible()
	if len(vis) != 2 {
		t.Fatalf("Expected 2 matches, got %v", names(e, vis))
	}
	if e.Score(vis[0]) != e.Score(vis[1]) {
		t.Fatalf("Expected equal scores, got %d and %d", e.Score(vis[0]), e.Score(vis[1]))
	}
	if got := names(e, vis); !slices.Equal(got, []string{"ab1", "ab2"}) {
		t.Errorf("Expected name order on equal score, got %v", got)
	}
}

func TestEngine_NameHitAheadOfTagHit(t *testing.T) {
	// The long name scores below zero in fuzzy, the tag-only record has no
	// name score at all
	e := newEngine(
		newIcon("application-x-executable-q", "Adwaita", "mimetypes"),
		newIcon("bbb", "Adwaita", "quirks"),
	)
	e.SetSearchText("q")

	vis := e.Visible()
	if got := names(e, vis); !slices.Equal(got, []string{"application-x-executable-q", "bbb"}) {
		t.Fatalf("Expected name match before tag match, got %v", got)
	}
	if e.Score(vis[0]) < 0 {
		t.Errorf("Name match score should not be negative, got %d", e.Score(vis[0]))
	}
	if e.Score(vis[1]) != 0 {
		t.Errorf("Tag-only match should score 0, got %d", e.Score(vis[1]))
	}
}

func TestEngine_NameHitsKeepFuzzyOrder(t *testing.T) {
	e := newEngine(
		newIcon("zz-very-long-prefix-before-the-query-q"),
		newIcon("zq"),
		newIcon("tagged", "quirks"),
	)
	e.SetSearchText("q")

	got := names(e, e.Visible())
	if !slices.Equal(got, []string{"zq", "zz-very-long-prefix-before-the-query-q", "tagged"}) {
		t.Errorf("Expected closer name match first and tag match last, got %v", got)
	}
}

func TestEngine_SearchTags(t *testing.T) {
	e := sampleEngine()
	e.SetSearchText("hicolor")

	if got := names(e, e.Visible()); !slices.Equal(got, []string{"firefox"}) {
		t.Errorf("Expected tag search to find firefox, got %v", got)
	}

	e.SetSearchTags(false)
	if got := e.Visible(); len(got) != 0 {
		t.Errorf("Expected no name matches with tag search off, got %v", names(e, got))
	}
}

func TestEngine_NarrowingMatchesFullRecompute(t *testing.T) {
	incremental := sampleEngine()
	for _, text := range []string{"f", "fo", "fol", "fold"} {
		incremental.SetSearchText(text)
	}

	full := sampleEngine()
	full.SetSearchText("fold")

	if !slices.Equal(incremental.Visible(), full.Visible()) {
		t.Errorf("Narrowed %v differs from full %v",
			names(incremental, incremental.Visible()), names(full, full.Visible()))
	}

	// Deleting characters recomputes from the cache
	incremental.SetSearchText("f")
	fresh := sampleEngine()
	fresh.SetSearchText("f")
	if !slices.Equal(incremental.Visible(), fresh.Visible()) {
		t.Errorf("Widened %v differs from fresh %v",
			names(incremental, incremental.Visible()), names(fresh, fresh.Visible()))
	}
}

func TestOptions_Narrows(t *testing.T) {
	base := DefaultOptions(category.Builtin())
	base.SearchText = "fo"

	tests := []struct {
		name   string
		modify func(o *Options)
		want   bool
	}{
		{"extended text", func(o *Options) { o.SearchText = "fol" }, true},
		{"same text", func(o *Options) {}, false},
		{"shorter text", func(o *Options) { o.SearchText = "f" }, false},
		{"different text", func(o *Options) { o.SearchText = "bar" }, false},
		{"extended with other change", func(o *Options) { o.SearchText = "fol"; o.ShowDangling = true }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := base.Clone()
			tt.modify(&next)
			if got := base.narrows(next); got != tt.want {
				t.Errorf("narrows() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEngine_RequiredTags(t *testing.T) {
	e := sampleEngine()

	e.SetRequiredTags([]string{"Adwaita", "places"})
	want := []string{"folder", "folder-symbolic", "user-trash"}
	if got := names(e, e.Visible()); !slices.Equal(got, want) {
		t.Errorf("Visible = %v, want %v", got, want)
	}

	if required := e.ToggleRequiredTag("symbolic"); !required {
		t.Error("Expected symbolic to become required")
	}
	if got := names(e, e.Visible()); !slices.Equal(got, []string{"folder-symbolic"}) {
		t.Errorf("Visible = %v", got)
	}

	e.ToggleRequiredTag("symbolic")
	e.SetRequiredTags(nil)
	if e.Result().Matched != 6 {
		t.Errorf("Empty required set should pass everything, got %d", e.Result().Matched)
	}
}

func TestEngine_Categories(t *testing.T) {
	e := newEngine(
		newIcon("folder", "Adwaita", "scalable", "places"),
		newIcon("firefox", "hicolor", "48x48", "apps"),
		newIcon("logo", "Custom"),
		newIcon("leading", "Places"),
		models.NewIcon("missing"),
	)

	e.SetCategories([]string{"places"})
	if got := names(e, e.Visible()); !slices.Equal(got, []string{"folder"}) {
		t.Errorf("places only: got %v", got)
	}

	e.SetCategories([]string{category.Unknown})
	if got := names(e, e.Visible()); !slices.Equal(got, []string{"logo", "missing"}) {
		t.Errorf("unknown only: got %v", got)
	}

	e.SetCategories(nil)
	if e.Result().Matched != 0 {
		t.Errorf("No categories should match nothing, got %v", names(e, e.Visible()))
	}

	if included := e.ToggleCategory("apps"); !included {
		t.Error("Expected apps to become included")
	}
	if got := names(e, e.Visible()); !slices.Equal(got, []string{"firefox"}) {
		t.Errorf("apps only: got %v", got)
	}
}

func TestEngine_CategoryIgnoresCase(t *testing.T) {
	e := newEngine(newIcon("folder", "Adwaita", "Places"))
	e.SetCategories([]string{"places"})

	if e.Result().Matched != 1 {
		t.Error("Expected case-insensitive category match")
	}
}

func TestEngine_SymbolicMode(t *testing.T) {
	e := sampleEngine()

	if mode := e.CycleSymbolicMode(); mode != models.FilterIs {
		t.Fatalf("Expected is after either, got %s", mode)
	}
	if got := names(e, e.Visible()); !slices.Equal(got, []string{"folder-symbolic"}) {
		t.Errorf("Symbolic only: got %v", got)
	}

	e.CycleSymbolicMode()
	if got := names(e, e.Visible()); slices.Contains(got, "folder-symbolic") {
		t.Errorf("Not symbolic should hide folder-symbolic, got %v", got)
	}
}

func TestEngine_DanglingEndToEnd(t *testing.T) {
	folder := newIcon("folder", "Adwaita", "places")
	symbolic := newIcon("folder-symbolic", "Adwaita", "places")
	symbolic.Symbolic = true
	broken := symlinkIcon("broken-link", "missing.svg", "Adwaita", "places")

	e := newEngine(folder, symbolic, broken)

	if got := names(e, e.Visible()); slices.Contains(got, "broken-link") {
		t.Errorf("Not mode without dangling should hide broken-link, got %v", got)
	}

	e.SetShowDangling(true)
	if got := names(e, e.Visible()); !slices.Contains(got, "broken-link") {
		t.Errorf("Dangling visibility should show broken-link, got %v", got)
	}

	e.SetSymlinkMode(models.FilterIs)
	if got := names(e, e.Visible()); !slices.Equal(got, []string{"broken-link"}) {
		t.Errorf("Is mode should show only symlinks, got %v", got)
	}

	e.SetSymlinkMode(models.FilterEither)
	if e.Result().Matched != 3 {
		t.Errorf("Either mode should show everything, got %v", names(e, e.Visible()))
	}
}

func TestEngine_ApplyAliasesInvalidates(t *testing.T) {
	target := newIcon("folder", "Adwaita", "places")
	link := symlinkIcon("inode-directory", "folder.svg", "Adwaita", "places")
	c := catalog.New([]models.Icon{target, link}, catalog.DefaultSize)

	defs := category.Builtin()
	opts := DefaultOptions(defs)
	opts.ShowDangling = true
	e := New(c, defs, opts)

	if got := names(e, e.Visible()); !slices.Equal(got, []string{"folder", "inode-directory"}) {
		t.Fatalf("Unresolved symlink should show as dangling, got %v", got)
	}

	var results []Result
	unsubscribe := e.Subscribe(func(r Result) { results = append(results, r) })
	defer unsubscribe()

	changed := e.ApplyAliases(catalog.AliasBatch{
		Generation: c.Generation(),
		Aliases:    []catalog.Alias{{Target: 0, Sources: []int{1}}},
	})
	if !slices.Equal(changed, []int{0, 1}) {
		t.Errorf("Expected both records changed, got %v", changed)
	}

	if got := names(e, e.Visible()); !slices.Equal(got, []string{"folder"}) {
		t.Errorf("Resolved symlink should be hidden again, got %v", got)
	}
	if len(results) != 1 || results[0].Matched != 1 {
		t.Errorf("Expected one notification with 1 match, got %+v", results)
	}
	if aliases := e.Icon(0).Aliases; !slices.Equal(aliases, []string{"inode-directory"}) {
		t.Errorf("Expected alias attached, got %v", aliases)
	}
}

func TestEngine_InvalidateKeepsOrder(t *testing.T) {
	e := sampleEngine()
	before := e.Visible()

	e.Invalidate(before[0], before[len(before)-1], 99)

	if !slices.Equal(e.Visible(), before) {
		t.Errorf("Invalidating unchanged records changed the order: %v", names(e, e.Visible()))
	}
}

func TestEngine_Subscribe(t *testing.T) {
	e := sampleEngine()

	calls := 0
	var last Result
	unsubscribe := e.Subscribe(func(r Result) {
		calls++
		last = r
	})

	e.SetSearchText("trash")
	if calls != 1 {
		t.Fatalf("Expected 1 notification, got %d", calls)
	}
	if last.Matched != 1 || last.Total != 6 {
		t.Errorf("Unexpected result %+v", last)
	}

	unsubscribe()
	e.SetSearchText("")
	if calls != 1 {
		t.Errorf("Expected no notification after unsubscribe, got %d", calls)
	}
}

func TestEngine_ResultIsACopy(t *testing.T) {
	e := sampleEngine()
	res := e.Result()
	res.Visible[0] = -1

	if e.Visible()[0] == -1 {
		t.Error("Result should not share the visible slice")
	}
}

func TestEngine_SetCatalog(t *testing.T) {
	e := sampleEngine()
	e.SetSearchText("fire")

	e.SetCatalog(catalog.New([]models.Icon{newIcon("firewall", "Custom", "apps"), newIcon("zip")}, catalog.DefaultSize))

	if got := names(e, e.Visible()); !slices.Equal(got, []string{"firewall"}) {
		t.Errorf("Expected search re-run on the new catalog, got %v", got)
	}
	if e.Len() != 2 {
		t.Errorf("Expected 2 records, got %d", e.Len())
	}
}

func TestEngine_FastRecomputeIsQuiet(t *testing.T) {
	var buf bytes.Buffer
	prev, prevLevel := log.Logger, zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})

	e := sampleEngine()
	for _, text := range []string{"f", "fo", "fol", "folder", ""} {
		e.SetSearchText(text)
	}

	if buf.Len() != 0 {
		t.Errorf("Expected no log output for fast recomputes, got %q", buf.String())
	}
}
