package query

import (
	"iconview/internal/catalog"

	"github.com/sahilm/fuzzy"
)

// scoreCacheSize bounds the number of search texts whose scores are kept
const scoreCacheSize = 32

// match is the fuzzy result of one search text against one record
type match struct {
	score int  // Name score clamped at 0, 0 when the name does not match
	raw   int  // Unclamped fuzzy score of a name hit
	name  bool // Name matches
	tags  bool // Space-joined tags match
}

// textMatch holds the matches of one search text. A complete textMatch
// covers the whole catalog and absent records do not match; a partial one
// covers a subset and absent records are matched on demand.
type textMatch struct {
	text     string
	entries  map[int]match
	complete bool
}

// recordSource adapts catalog records to fuzzy.Source
type recordSource struct {
	catalog *catalog.Catalog
	indices []int // nil means every record
	tags    bool  // Match joined tags instead of names
}

func (s recordSource) index(i int) int {
	if s.indices == nil {
		return i
	}
	return s.indices[i]
}

func (s recordSource) String(i int) string {
	icon := s.catalog.Get(s.index(i))
	if s.tags {
		return icon.TagString()
	}
	return icon.Name
}

func (s recordSource) Len() int {
	if s.indices == nil {
		return s.catalog.Len()
	}
	return len(s.indices)
}

// matchText matches text against the records listed in indices, or every
// record when indices is nil
func matchText(c *catalog.Catalog, text string, indices []int) *textMatch {
	tm := &textMatch{
		text:     text,
		entries:  make(map[int]match),
		complete: indices == nil,
	}
	for _, i := range indices {
		tm.entries[i] = match{}
	}

	names := recordSource{catalog: c, indices: indices}
	for _, m := range fuzzy.FindFrom(text, names) {
		i := names.index(m.Index)
		// fuzzy penalizes unmatched characters below zero; a name hit never
		// ranks below a record whose name does not match
		tm.entries[i] = match{score: max(m.Score, 0), raw: m.Score, name: true}
	}

	tags := recordSource{catalog: c, indices: indices, tags: true}
	for _, m := range fuzzy.FindFrom(text, tags) {
		i := tags.index(m.Index)
		entry := tm.entries[i]
		entry.tags = true
		tm.entries[i] = entry
	}

	return tm
}

// get returns the match of record i, matching it on demand when the record
// is not covered yet
func (tm *textMatch) get(c *catalog.Catalog, i int) match {
	if m, ok := tm.entries[i]; ok || tm.complete {
		return m
	}
	m := matchText(c, tm.text, []int{i}).entries[i]
	tm.entries[i] = m
	return m
}
