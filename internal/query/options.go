package query

import (
	"slices"

	"iconview/internal/category"
	"iconview/internal/models"
)

// Options is the complete filter state of an Engine
type Options struct {
	SearchText   string
	SearchTags   bool              // Also match the search text against joined tags
	Symlink      models.FilterMode // Symlink policy
	Symbolic     models.FilterMode // Symbolic policy
	ShowDangling bool              // Let unresolved symlinks through a Not symlink filter
	RequiredTags []string          // Every tag must be present
	Categories   []string          // Category IDs, any may match; category.Unknown for uncategorized
}

// DefaultOptions returns the initial filter state with every category of
// defs included
func DefaultOptions(defs []category.Definition) Options {
	return Options{
		SearchTags:   true,
		Symlink:      models.DefaultSymlinkMode,
		Symbolic:     models.DefaultSymbolicMode,
		RequiredTags: []string{},
		Categories:   category.IDs(defs),
	}
}

// Clone returns a copy that shares no slices with o
func (o Options) Clone() Options {
	o.RequiredTags = slices.Clone(o.RequiredTags)
	o.Categories = slices.Clone(o.Categories)
	return o
}

// HasCategory reports whether category id is included
func (o Options) HasCategory(id string) bool {
	return slices.Contains(o.Categories, id)
}

// HasRequiredTag reports whether tag is required
func (o Options) HasRequiredTag(tag string) bool {
	return slices.Contains(o.RequiredTags, tag)
}

// normalize removes empty and duplicate entries from the tag and category
// sets
func (o Options) normalize() Options {
	o = o.Clone()
	o.RequiredTags = uniqueNonEmpty(o.RequiredTags)
	o.Categories = uniqueNonEmpty(o.Categories)
	return o
}

// narrows reports whether next differs from o only by extending the search
// text, so every record next accepts is also accepted by o
func (o Options) narrows(next Options) bool {
	if next.SearchText == o.SearchText || len(next.SearchText) < len(o.SearchText) {
		return false
	}
	if next.SearchText[:len(o.SearchText)] != o.SearchText {
		return false
	}
	return o.SearchTags == next.SearchTags &&
		o.Symlink == next.Symlink &&
		o.Symbolic == next.Symbolic &&
		o.ShowDangling == next.ShowDangling &&
		slices.Equal(o.RequiredTags, next.RequiredTags) &&
		slices.Equal(o.Categories, next.Categories)
}

func uniqueNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || slices.Contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}
