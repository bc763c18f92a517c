package models

import (
	"path/filepath"
	"slices"
	"strings"
)

// NoTarget marks a symlink icon whose alias target has not been resolved
const NoTarget = -1

// Icon represents one entry of the icon catalog
type Icon struct {
	Name          string   // Icon name, unique within a catalog generation
	Path          string   // Resolved file path (empty when not found)
	Found         bool     // Whether the theme resolved a backing file
	Symbolic      bool     // Recolorable template icon
	Symlink       bool     // Path is a filesystem symlink
	SymlinkTarget string   // Literal link target as read from disk
	Tags          []string // Category tags derived from Path
	Aliases       []string // Names of symlink icons resolved to this icon
	AliasTarget   int      // Catalog index this symlink resolves to, or NoTarget
	Size          int      // Pixel size the current lookup was made at
}

// NewIcon creates an unresolved Icon
func NewIcon(name string) Icon {
	return Icon{
		Name:        name,
		Tags:        []string{},
		AliasTarget: NoTarget,
	}
}

// HasTarget reports whether a symlink icon has been resolved to another icon
func (i *Icon) HasTarget() bool {
	return i.Symlink && i.AliasTarget != NoTarget
}

// Dangling reports whether the icon is a symlink that no catalog icon claims
func (i *Icon) Dangling() bool {
	return i.Symlink && i.AliasTarget == NoTarget
}

// AddAliases adds alias names, ignoring duplicates and keeping them sorted.
// Symlink icons never carry aliases.
func (i *Icon) AddAliases(names ...string) {
	if i.Symlink {
		return
	}
	for _, name := range names {
		if name == "" || slices.Contains(i.Aliases, name) {
			continue
		}
		i.Aliases = append(i.Aliases, name)
	}
	slices.Sort(i.Aliases)
}

// HasTag reports whether tag is one of the icon's tags
func (i *Icon) HasTag(tag string) bool {
	return slices.Contains(i.Tags, tag)
}

// TagString returns the tags joined by a single space
func (i *Icon) TagString() string {
	return strings.Join(i.Tags, " ")
}

// Dir returns the directory holding the icon file
func (i *Icon) Dir() string {
	if !i.Found {
		return ""
	}
	return filepath.Dir(i.Path)
}

// Ext returns the lower-case file extension of the resolved path
func (i *Icon) Ext() string {
	return strings.ToLower(filepath.Ext(i.Path))
}

// Clone returns a deep copy safe to hand to consumers
func (i Icon) Clone() Icon {
	i.Tags = slices.Clone(i.Tags)
	i.Aliases = slices.Clone(i.Aliases)
	return i
}

// KindIcon returns a short marker for list rendering
func (i *Icon) KindIcon() string {
	switch {
	case !i.Found:
		return "?"
	case i.Dangling():
		return "✗"
	case i.Symlink:
		return "→"
	case i.Symbolic:
		return "◇"
	default:
		return "■"
	}
}

// KindString returns a description of the icon kind
func (i *Icon) KindString() string {
	switch {
	case !i.Found:
		return "Missing"
	case i.Dangling():
		return "Broken symlink"
	case i.Symlink:
		return "Alias"
	case i.Symbolic:
		return "Symbolic"
	default:
		return "Raster"
	}
}
