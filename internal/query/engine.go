// Package query filters, ranks and orders catalog records and notifies
// subscribers whenever the visible set changes.
package query

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"iconview/internal/catalog"
	"iconview/internal/category"
	"iconview/internal/models"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"
)

// slowRecompute is the recompute time above which a query is logged
const slowRecompute = 50 * time.Millisecond

// Result is the outcome of one evaluation
type Result struct {
	Visible []int // Record indices in display order
	Total   int   // Records in the catalog
	Matched int   // Records passing every filter
}

// Label returns the count label shown above the icon list
func (r Result) Label() string {
	return fmt.Sprintf("(%d/%d) Icons", r.Matched, r.Total)
}

// Engine owns a catalog and keeps the ordered subset of records passing the
// current Options. It is not safe for concurrent use; background work hands
// its results to the owning goroutine.
type Engine struct {
	catalog *catalog.Catalog
	defs    []category.Definition
	opts    Options

	included []category.Definition // Definitions selected by opts.Categories
	unknown  bool                  // category.Unknown selected

	visible []int
	text    *textMatch
	scores  *lru.Cache[string, *textMatch]
	folded  [][]string // Case-folded tags per record, filled on demand

	subscribers map[int]func(Result)
	nextSub     int
}

// New creates an engine over c with the given category definitions and
// initial options, and evaluates it
func New(c *catalog.Catalog, defs []category.Definition, opts Options) *Engine {
	scores, _ := lru.New[string, *textMatch](scoreCacheSize)

	e := &Engine{
		catalog:     c,
		defs:        defs,
		scores:      scores,
		subscribers: make(map[int]func(Result)),
	}
	e.setOptions(opts.normalize())
	e.reset()
	e.recompute()
	return e
}

// Subscribe registers fn to receive every new Result. The returned function
// removes the subscription.
func (e *Engine) Subscribe(fn func(Result)) func() {
	id := e.nextSub
	e.nextSub++
	e.subscribers[id] = fn
	return func() {
		delete(e.subscribers, id)
	}
}

// Result returns the current evaluation
func (e *Engine) Result() Result {
	return Result{
		Visible: slices.Clone(e.visible),
		Total:   e.catalog.Len(),
		Matched: len(e.visible),
	}
}

// Visible returns the indices of the visible records in display order
func (e *Engine) Visible() []int {
	return slices.Clone(e.visible)
}

// Icon returns a copy of record i
func (e *Engine) Icon(i int) models.Icon {
	return e.catalog.Icon(i)
}

// Len returns the number of records in the catalog
func (e *Engine) Len() int {
	return e.catalog.Len()
}

// Catalog returns the catalog the engine evaluates
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Definitions returns the known category definitions
func (e *Engine) Definitions() []category.Definition {
	return e.defs
}

// Options returns a copy of the current options
func (e *Engine) Options() Options {
	return e.opts.Clone()
}

// Score returns the name score of record i for the current search text
func (e *Engine) Score(i int) int {
	if e.opts.SearchText == "" {
		return 0
	}
	return e.text.get(e.catalog, i).score
}

// SetCatalog replaces the catalog with a new generation and re-evaluates
func (e *Engine) SetCatalog(c *catalog.Catalog) {
	e.catalog = c
	e.reset()
	e.recompute()
}

// Refreshed re-evaluates after the records in changed got new paths and tags
func (e *Engine) Refreshed(changed []int) {
	for _, i := range changed {
		if i >= 0 && i < len(e.folded) {
			e.folded[i] = nil
		}
	}
	e.scores.Purge()
	e.text = nil
	e.recompute()
}

// ApplyAliases applies an alias batch to the catalog and re-evaluates the
// records it changed
func (e *Engine) ApplyAliases(batch catalog.AliasBatch) []int {
	changed := e.catalog.ApplyAliases(batch)
	if len(changed) > 0 {
		e.Invalidate(changed...)
	}
	return changed
}

// SetOptions replaces the whole filter state
func (e *Engine) SetOptions(opts Options) {
	opts = opts.normalize()
	narrow := e.opts.narrows(opts)
	e.setOptions(opts)
	if narrow {
		e.narrow()
		return
	}
	e.recompute()
}

// SetSearchText updates the search text
func (e *Engine) SetSearchText(text string) {
	opts := e.Options()
	opts.SearchText = text
	e.SetOptions(opts)
}

// SetSearchTags sets whether tags are searched too
func (e *Engine) SetSearchTags(on bool) {
	opts := e.Options()
	opts.SearchTags = on
	e.SetOptions(opts)
}

// SetSymlinkMode sets the symlink policy
func (e *Engine) SetSymlinkMode(mode models.FilterMode) {
	opts := e.Options()
	opts.Symlink = mode
	e.SetOptions(opts)
}

// CycleSymlinkMode advances the symlink policy and returns the new mode
func (e *Engine) CycleSymlinkMode() models.FilterMode {
	e.SetSymlinkMode(e.opts.Symlink.Next())
	return e.opts.Symlink
}

// SetSymbolicMode sets the symbolic policy
func (e *Engine) SetSymbolicMode(mode models.FilterMode) {
	opts := e.Options()
	opts.Symbolic = mode
	e.SetOptions(opts)
}

// CycleSymbolicMode advances the symbolic policy and returns the new mode
func (e *Engine) CycleSymbolicMode() models.FilterMode {
	e.SetSymbolicMode(e.opts.Symbolic.Next())
	return e.opts.Symbolic
}

// SetShowDangling sets whether unresolved symlinks pass a Not symlink filter
func (e *Engine) SetShowDangling(on bool) {
	opts := e.Options()
	opts.ShowDangling = on
	e.SetOptions(opts)
}

// SetRequiredTags replaces the required tag set
func (e *Engine) SetRequiredTags(tags []string) {
	opts := e.Options()
	opts.RequiredTags = tags
	e.SetOptions(opts)
}

// ToggleRequiredTag adds tag to or removes it from the required tag set and
// reports whether it is now required
func (e *Engine) ToggleRequiredTag(tag string) bool {
	opts := e.Options()
	required := !opts.HasRequiredTag(tag)
	if required {
		opts.RequiredTags = append(opts.RequiredTags, tag)
	} else {
		opts.RequiredTags = slices.DeleteFunc(opts.RequiredTags, func(t string) bool { return t == tag })
	}
	e.SetOptions(opts)
	return required
}

// SetCategories replaces the included category set
func (e *Engine) SetCategories(ids []string) {
	opts := e.Options()
	opts.Categories = ids
	e.SetOptions(opts)
}

// ToggleCategory includes or excludes category id and reports whether it is
// now included
func (e *Engine) ToggleCategory(id string) bool {
	opts := e.Options()
	included := !opts.HasCategory(id)
	if included {
		opts.Categories = append(opts.Categories, id)
	} else {
		opts.Categories = slices.DeleteFunc(opts.Categories, func(c string) bool { return c == id })
	}
	e.SetOptions(opts)
	return included
}

// Invalidate re-evaluates the given records only and merges them into the
// ordered visible set
func (e *Engine) Invalidate(indices ...int) {
	if len(indices) == 0 {
		return
	}

	dirty := make(map[int]bool, len(indices))
	for _, i := range indices {
		if i >= 0 && i < e.catalog.Len() {
			dirty[i] = true
		}
	}
	e.visible = slices.DeleteFunc(e.visible, func(i int) bool { return dirty[i] })

	for i := range dirty {
		if !e.accepts(i) {
			continue
		}
		pos, _ := slices.BinarySearchFunc(e.visible, i, e.compare)
		e.visible = slices.Insert(e.visible, pos, i)
	}

	e.notify()
}

// Accepts reports whether record i passes the current filters
func (e *Engine) Accepts(i int) bool {
	return e.accepts(i)
}

func (e *Engine) setOptions(opts Options) {
	e.opts = opts
	e.included = e.included[:0]
	for _, d := range e.defs {
		if opts.HasCategory(d.ID) {
			e.included = append(e.included, d)
		}
	}
	e.unknown = opts.HasCategory(category.Unknown)
}

// reset drops every per-catalog cache
func (e *Engine) reset() {
	e.scores.Purge()
	e.text = nil
	e.folded = make([][]string, e.catalog.Len())
	e.visible = nil
}

// prepareText makes e.text describe the current search text. A narrowed
// evaluation only needs matches for the records still visible.
func (e *Engine) prepareText(narrowing bool) {
	text := e.opts.SearchText
	if text == "" {
		e.text = nil
		return
	}
	if e.text != nil && e.text.text == text {
		return
	}
	if tm, ok := e.scores.Get(text); ok {
		e.text = tm
		return
	}
	if narrowing {
		e.text = matchText(e.catalog, text, e.visible)
		return
	}
	e.text = matchText(e.catalog, text, nil)
	e.scores.Add(text, e.text)
}

// recompute evaluates every record
func (e *Engine) recompute() {
	start := time.Now()
	e.prepareText(false)

	visible := make([]int, 0, len(e.visible))
	for i := 0; i < e.catalog.Len(); i++ {
		if e.accepts(i) {
			visible = append(visible, i)
		}
	}
	slices.SortFunc(visible, e.compare)
	e.visible = visible

	if elapsed := time.Since(start); elapsed > slowRecompute {
		log.Debug().
			Str("text", e.opts.SearchText).
			Int("matched", len(e.visible)).
			Int("total", e.catalog.Len()).
			Dur("elapsed", elapsed).
			Msg("slow query recompute")
	}
	e.notify()
}

// narrow re-evaluates only the visible records after the search text was
// extended
func (e *Engine) narrow() {
	e.prepareText(true)

	visible := slices.DeleteFunc(slices.Clone(e.visible), func(i int) bool { return !e.accepts(i) })
	slices.SortFunc(visible, e.compare)
	e.visible = visible
	e.notify()
}

func (e *Engine) notify() {
	if len(e.subscribers) == 0 {
		return
	}
	res := e.Result()
	for _, fn := range e.subscribers {
		fn(res)
	}
}

// accepts evaluates the filter predicate for record i
func (e *Engine) accepts(i int) bool {
	icon := e.catalog.Get(i)

	if e.opts.SearchText != "" {
		m := e.text.get(e.catalog, i)
		if !m.name && !(e.opts.SearchTags && m.tags) {
			return false
		}
	}

	if !e.symlinkAllows(icon) {
		return false
	}
	if !e.opts.Symbolic.Allows(icon.Symbolic) {
		return false
	}

	for _, tag := range e.opts.RequiredTags {
		if !icon.HasTag(tag) {
			return false
		}
	}

	return e.categoryAllows(i)
}

func (e *Engine) symlinkAllows(icon *models.Icon) bool {
	if e.opts.Symlink == models.FilterNot && e.opts.ShowDangling && icon.Dangling() {
		return true
	}
	return e.opts.Symlink.Allows(icon.Symlink)
}

// categoryAllows passes records with a tag past the leading one in an
// included category, or uncategorized records when Unknown is included
func (e *Engine) categoryAllows(i int) bool {
	tags := e.foldedTags(i)

	if len(tags) > 1 {
		for _, tag := range tags[1:] {
			for _, d := range e.included {
				if d.Matches(tag) {
					return true
				}
			}
		}
	}

	if !e.unknown {
		return false
	}
	for _, tag := range tags {
		if category.Known(e.defs, tag) {
			return false
		}
	}
	return true
}

func (e *Engine) foldedTags(i int) []string {
	if f := e.folded[i]; f != nil {
		return f
	}
	tags := e.catalog.Get(i).Tags
	f := make([]string, len(tags))
	for j, tag := range tags {
		f[j] = category.Fold(tag)
	}
	e.folded[i] = f
	return f
}

// compare orders records by descending name score when searching, with name
// hits ahead of tag-only hits, then by name, then by index
func (e *Engine) compare(a, b int) int {
	if e.opts.SearchText != "" {
		ma, mb := e.text.get(e.catalog, a), e.text.get(e.catalog, b)
		if ma.score != mb.score {
			return cmp.Compare(mb.score, ma.score)
		}
		if ma.name != mb.name {
			if ma.name {
				return -1
			}
			return 1
		}
		if ma.raw != mb.raw {
			return cmp.Compare(mb.raw, ma.raw)
		}
	}
	if c := strings.Compare(e.catalog.Get(a).Name, e.catalog.Get(b).Name); c != 0 {
		return c
	}
	return cmp.Compare(a, b)
}
