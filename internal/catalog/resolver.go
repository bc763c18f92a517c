package catalog

import (
	"context"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultBatchSize is the number of targets covered by one AliasBatch
const DefaultBatchSize = 32

// Alias links symlink records to the record they point at
type Alias struct {
	Target  int   // Index of the non-symlink record
	Sources []int // Indices of the symlink records resolved to Target
}

// AliasBatch is one step of alias resolution
type AliasBatch struct {
	Generation uuid.UUID
	Aliases    []Alias
	Done       int // Targets examined so far
	Total      int // Targets to examine
	Final      bool
}

// Progress returns the fraction of targets examined
func (b AliasBatch) Progress() float64 {
	if b.Total == 0 {
		return 1
	}
	return float64(b.Done) / float64(b.Total)
}

// aliasRecord is the part of a record the resolver reads
type aliasRecord struct {
	index  int
	path   string
	target string
}

// Resolver discovers which symlink records are alternate names of which
// non-symlink records
type Resolver struct {
	batchSize int
}

// NewResolver creates a Resolver emitting batches of batchSize targets
func NewResolver(batchSize int) *Resolver {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Resolver{batchSize: batchSize}
}

// Start snapshots c and resolves aliases on a background goroutine. Batches
// are delivered in order on the returned channel, which is closed after the
// final batch or when ctx is cancelled. The resolver never touches c after
// Start returns; apply batches with Catalog.ApplyAliases.
func (r *Resolver) Start(ctx context.Context, c *Catalog) <-chan AliasBatch {
	var targets, links []aliasRecord
	for i := range c.icons {
		icon := &c.icons[i]
		if !icon.Found {
			continue
		}
		if icon.Symlink {
			links = append(links, aliasRecord{index: i, path: icon.Path, target: icon.SymlinkTarget})
		} else {
			targets = append(targets, aliasRecord{index: i, path: icon.Path})
		}
	}

	out := make(chan AliasBatch, 1)
	go r.resolve(ctx, c.generation, targets, links, out)
	return out
}

func (r *Resolver) resolve(ctx context.Context, gen uuid.UUID, targets, links []aliasRecord, out chan<- AliasBatch) {
	defer close(out)
	start := time.Now()

	// Any match of Resolves has a link target with the same base name as the
	// target record's path
	byBase := make(map[string][]aliasRecord)
	for _, link := range links {
		base := filepath.Base(filepath.Clean(link.target))
		byBase[base] = append(byBase[base], link)
	}

	claimed := make(map[int]bool)
	resolved := 0
	batch := AliasBatch{Generation: gen, Total: len(targets)}

	send := func() bool {
		if ctx.Err() != nil {
			return false
		}
		select {
		case out <- batch:
		case <-ctx.Done():
			return false
		}
		batch = AliasBatch{Generation: gen, Done: batch.Done, Total: len(targets)}
		return true
	}

	for i, t := range targets {
		var sources []int
		for _, link := range byBase[filepath.Base(t.path)] {
			if claimed[link.index] || !Resolves(link.target, t.path) {
				continue
			}
			claimed[link.index] = true
			sources = append(sources, link.index)
		}
		if len(sources) > 0 {
			batch.Aliases = append(batch.Aliases, Alias{Target: t.index, Sources: sources})
			resolved += len(sources)
		}

		batch.Done = i + 1
		if batch.Done == len(targets) {
			break
		}
		if batch.Done%r.batchSize == 0 && !send() {
			log.Debug().Str("generation", gen.String()).Int("done", batch.Done).Msg("alias resolution cancelled")
			return
		}
	}

	batch.Final = true
	if !send() {
		return
	}

	log.Debug().
		Str("generation", gen.String()).
		Int("targets", len(targets)).
		Int("symlinks", len(links)).
		Int("resolved", resolved).
		Dur("elapsed", time.Since(start)).
		Msg("resolved aliases")
}

// Resolves reports whether a symlink with literal target linkTarget points at
// the file at path: either the absolute target equals path, or the relative
// target joined to the directory of path equals path.
func Resolves(linkTarget, path string) bool {
	if filepath.IsAbs(linkTarget) {
		return linkTarget == path
	}
	return filepath.Join(filepath.Dir(path), linkTarget) == path
}
