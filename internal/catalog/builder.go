package catalog

import (
	"context"
	"os"
	"runtime"
	"slices"
	"sync"
	"time"

	"iconview/internal/category"
	"iconview/internal/models"

	"github.com/rs/zerolog/log"
)

// DefaultSize is the pixel size icons are looked up at unless configured
const DefaultSize = 48

// Builder creates catalog generations from a Source
type Builder struct {
	source  Source
	workers int
}

// NewBuilder creates a Builder. workers <= 0 picks a worker count from the
// number of CPUs.
func NewBuilder(source Source, workers int) *Builder {
	if workers <= 0 {
		workers = runtime.NumCPU() * 2 // IO-bound, so use more workers
		if workers > 16 {
			workers = 16
		}
	}
	return &Builder{source: source, workers: workers}
}

// Build looks up every icon name of the source at size and returns a new
// catalog generation. Records are in the order the source lists names;
// duplicate names are dropped.
func (b *Builder) Build(ctx context.Context, size int) (*Catalog, error) {
	start := time.Now()

	var names []string
	seen := make(map[string]bool)
	for _, name := range b.source.IconNames() {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}

	icons := make([]models.Icon, len(names))
	err := b.run(ctx, len(names), func(i int) {
		icons[i] = b.describe(names[i], size)
	})
	if err != nil {
		return nil, err
	}

	c := New(icons, size)
	log.Debug().
		Int("icons", c.Len()).
		Int("size", size).
		Int("workers", b.workers).
		Dur("elapsed", time.Since(start)).
		Msg("built catalog")
	return c, nil
}

// Refresh looks every record up again at a new size. Path, Found, Symbolic
// and Size are updated and tags are recomputed for records whose path
// changed. Symlink state and alias relationships belong to the name and are
// kept, except for records that no longer resolve: those lose their symlink
// state and every alias relationship. It returns the indices of records
// whose path or aliases changed.
func (b *Builder) Refresh(ctx context.Context, c *Catalog, size int) ([]int, error) {
	start := time.Now()

	lookups := make([]Lookup, c.Len())
	err := b.run(ctx, c.Len(), func(i int) {
		lookups[i] = b.source.Lookup(c.icons[i].Name, size)
	})
	if err != nil {
		return nil, err
	}

	var changed []int
	for i, res := range lookups {
		icon := &c.icons[i]
		icon.Size = size
		icon.Symbolic = res.Found && res.Symbolic
		if res.Path == icon.Path && res.Found == icon.Found {
			continue
		}

		icon.Path = res.Path
		icon.Found = res.Found
		if !res.Found {
			icon.Path = ""
			changed = append(changed, c.detach(i)...)
		}
		icon.Tags = category.Tags(icon.Name, icon.Path)
		changed = append(changed, i)
	}
	slices.Sort(changed)
	changed = slices.Compact(changed)
	c.size = size

	log.Debug().
		Int("size", size).
		Int("changed", len(changed)).
		Dur("elapsed", time.Since(start)).
		Msg("refreshed catalog")
	return changed, nil
}

// describe looks up one icon and derives its metadata
func (b *Builder) describe(name string, size int) models.Icon {
	icon := models.NewIcon(name)
	icon.Size = size

	res := b.source.Lookup(name, size)
	if !res.Found || res.Path == "" {
		return icon
	}

	icon.Path = res.Path
	icon.Found = true
	icon.Symbolic = res.Symbolic
	icon.Symlink, icon.SymlinkTarget = DetectSymlink(res.Path)
	icon.Tags = category.Tags(name, res.Path)
	return icon
}

// run calls fn for every index in [0, n) on the worker pool
func (b *Builder) run(ctx context.Context, n int, fn func(i int)) error {
	jobs := make(chan int, n)
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < b.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					return
				}
				fn(i)
			}
		}()
	}
	wg.Wait()

	return ctx.Err()
}

// DetectSymlink reports whether path is a symlink and returns its literal
// target. Any stat or readlink failure counts as not a symlink.
func DetectSymlink(path string) (bool, string) {
	if path == "" {
		return false, ""
	}
	info, err := os.Lstat(path)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return false, ""
	}
	target, err := os.Readlink(path)
	if err != nil || target == "" {
		return false, ""
	}
	return true, target
}
