package catalog

import (
	"slices"

	"iconview/internal/models"

	"github.com/google/uuid"
)

// Catalog is one generation of icon records. It is owned by a single
// goroutine; background work only produces values that the owner applies.
type Catalog struct {
	generation uuid.UUID
	size       int
	icons      []models.Icon
	byName     map[string]int
}

// New creates a catalog generation from icons looked up at size
func New(icons []models.Icon, size int) *Catalog {
	c := &Catalog{
		generation: uuid.New(),
		size:       size,
		icons:      icons,
		byName:     make(map[string]int, len(icons)),
	}
	for i, icon := range icons {
		c.byName[icon.Name] = i
	}
	return c
}

// Generation identifies this build of the catalog
func (c *Catalog) Generation() uuid.UUID {
	return c.generation
}

// Size returns the pixel size of the current lookups
func (c *Catalog) Size() int {
	return c.size
}

// Len returns the number of records
func (c *Catalog) Len() int {
	return len(c.icons)
}

// Icon returns a copy of record i
func (c *Catalog) Icon(i int) models.Icon {
	return c.icons[i].Clone()
}

// Get returns record i without copying. Callers must not modify it.
func (c *Catalog) Get(i int) *models.Icon {
	return &c.icons[i]
}

// Index returns the position of the record named name
func (c *Catalog) Index(name string) (int, bool) {
	i, ok := c.byName[name]
	return i, ok
}

// Snapshot returns copies of every record
func (c *Catalog) Snapshot() []models.Icon {
	icons := make([]models.Icon, len(c.icons))
	for i := range c.icons {
		icons[i] = c.icons[i].Clone()
	}
	return icons
}

// ApplyAliases records the alias relationships of batch and returns the
// indices of every record it changed. Batches produced for another
// generation are ignored.
func (c *Catalog) ApplyAliases(batch AliasBatch) []int {
	if batch.Generation != c.generation {
		return nil
	}

	var changed []int
	for _, alias := range batch.Aliases {
		if alias.Target < 0 || alias.Target >= len(c.icons) || len(alias.Sources) == 0 {
			continue
		}

		target := &c.icons[alias.Target]
		for _, src := range alias.Sources {
			if src < 0 || src >= len(c.icons) || !c.icons[src].Symlink {
				continue
			}
			c.icons[src].AliasTarget = alias.Target
			target.AddAliases(c.icons[src].Name)
			changed = append(changed, src)
		}
		changed = append(changed, alias.Target)
	}

	slices.Sort(changed)
	return slices.Compact(changed)
}

// detach clears the symlink state of record i and removes it from both ends
// of every alias relationship. It returns the other records it changed.
func (c *Catalog) detach(i int) []int {
	icon := &c.icons[i]
	var changed []int

	if icon.AliasTarget != models.NoTarget {
		target := &c.icons[icon.AliasTarget]
		target.Aliases = slices.DeleteFunc(target.Aliases, func(name string) bool { return name == icon.Name })
		changed = append(changed, icon.AliasTarget)
	}
	for _, name := range icon.Aliases {
		if src, ok := c.byName[name]; ok && c.icons[src].AliasTarget == i {
			c.icons[src].AliasTarget = models.NoTarget
			changed = append(changed, src)
		}
	}

	icon.Symlink = false
	icon.SymlinkTarget = ""
	icon.AliasTarget = models.NoTarget
	icon.Aliases = nil
	return changed
}

// Stats summarizes the record kinds of a catalog
type Stats struct {
	Total    int
	Found    int
	Symbolic int
	Symlinks int
	Dangling int
	Aliased  int
}

// Stats counts records by kind
func (c *Catalog) Stats() Stats {
	s := Stats{Total: len(c.icons)}
	for i := range c.icons {
		icon := &c.icons[i]
		if icon.Found {
			s.Found++
		}
		if icon.Symbolic {
			s.Symbolic++
		}
		if icon.Symlink {
			s.Symlinks++
		}
		if icon.Dangling() {
			s.Dangling++
		}
		if len(icon.Aliases) > 0 {
			s.Aliased++
		}
	}
	return s
}
