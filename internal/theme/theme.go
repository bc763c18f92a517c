// Package theme implements freedesktop icon theme lookup over the local
// filesystem.
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"iconview/internal/catalog"

	"github.com/rs/zerolog/log"
)

// FallbackTheme is the theme every lookup chain ends with
const FallbackTheme = "hicolor"

// Extensions in lookup preference order
var Extensions = []string{".png", ".svg", ".xpm"}

// Options configures a Theme
type Options struct {
	Name        string   // Theme to open, detected from GTK settings when empty
	SearchPaths []string // Base directories, DefaultSearchPaths when empty
}

// file is one icon file found inside a theme directory
type file struct {
	dir  int // Index into Index.Directories
	path string
	ext  int // Index into Extensions
}

// loaded is a theme of the inheritance chain together with its icon files
type loaded struct {
	index *Index
	files map[string][]file
}

// Theme resolves icon names through a theme, its inherited themes and the
// fallback directories. It is read-only after Open and safe for concurrent
// lookups.
type Theme struct {
	name        string
	searchPaths []string
	chain       []*loaded
	fallback    map[string]file
	names       []string
}

var _ catalog.Source = (*Theme)(nil)

// Open locates the theme named in opts and indexes every icon file of its
// inheritance chain
func Open(opts Options) (*Theme, error) {
	start := time.Now()

	searchPaths := opts.SearchPaths
	if len(searchPaths) == 0 {
		searchPaths = DefaultSearchPaths()
	}

	name := opts.Name
	if name == "" {
		name = DetectName(searchPaths)
	}

	t := &Theme{
		name:        name,
		searchPaths: searchPaths,
		fallback:    make(map[string]file),
	}

	if _, ok := t.findIndex(name); !ok && name != FallbackTheme {
		return nil, fmt.Errorf("icon theme %q not found in %s", name, strings.Join(searchPaths, ":"))
	}

	visited := make(map[string]bool)
	queue := []string{name}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] || id == FallbackTheme {
			continue
		}
		visited[id] = true

		if l := t.load(id); l != nil {
			t.chain = append(t.chain, l)
			queue = append(queue, l.index.Inherits...)
		}
	}
	if l := t.load(FallbackTheme); l != nil {
		t.chain = append(t.chain, l)
	}

	t.scanFallback()
	t.names = t.collectNames()

	log.Debug().
		Str("theme", name).
		Strs("chain", t.Chain()).
		Int("icons", len(t.names)).
		Dur("elapsed", time.Since(start)).
		Msg("opened icon theme")

	return t, nil
}

// Name returns the name of the opened theme
func (t *Theme) Name() string {
	return t.name
}

// SearchPaths returns the base directories the theme was looked up in
func (t *Theme) SearchPaths() []string {
	return slices.Clone(t.searchPaths)
}

// Chain returns the IDs of the themes consulted by lookups, in order
func (t *Theme) Chain() []string {
	ids := make([]string, 0, len(t.chain))
	for _, l := range t.chain {
		ids = append(ids, l.index.ID)
	}
	return ids
}

// IconNames returns every icon name the theme can resolve, sorted
func (t *Theme) IconNames() []string {
	return slices.Clone(t.names)
}

// Lookup resolves name at size. The first theme of the chain that has the
// icon wins; within it an exact size match is preferred over the closest
// directory.
func (t *Theme) Lookup(name string, size int) catalog.Lookup {
	for _, l := range t.chain {
		files := l.files[name]
		if len(files) == 0 {
			continue
		}
		return newLookup(name, bestFile(l.index, files, size).path)
	}

	if f, ok := t.fallback[name]; ok {
		return newLookup(name, f.path)
	}
	return catalog.Lookup{}
}

// IsSymbolic reports whether an icon is a recolorable symbolic template
func IsSymbolic(name, path string) bool {
	return strings.HasSuffix(name, "-symbolic") || strings.HasSuffix(path, ".symbolic.png")
}

func newLookup(name, path string) catalog.Lookup {
	return catalog.Lookup{
		Path:     path,
		Found:    true,
		Symbolic: IsSymbolic(name, path),
	}
}

// bestFile picks the first file in the closest directory. files is sorted by
// directory and extension preference, so an exact match always wins.
func bestFile(idx *Index, files []file, size int) file {
	best := files[0]
	bestDist := idx.Directories[best.dir].SizeDistance(size)
	for _, f := range files[1:] {
		dist := idx.Directories[f.dir].SizeDistance(size)
		if dist < bestDist {
			best, bestDist = f, dist
		}
	}
	return best
}

// findIndex returns the path of the first index.theme of theme id
func (t *Theme) findIndex(id string) (string, bool) {
	for _, base := range t.searchPaths {
		p := filepath.Join(base, id, "index.theme")
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

// load parses the theme index and indexes its files across every base
// directory that contains the theme
func (t *Theme) load(id string) *loaded {
	indexPath, ok := t.findIndex(id)
	if !ok {
		log.Debug().Str("theme", id).Msg("theme not installed")
		return nil
	}

	idx, err := ParseIndex(id, indexPath)
	if err != nil {
		log.Warn().Err(err).Str("theme", id).Msg("skipping theme")
		return nil
	}

	l := &loaded{index: idx, files: make(map[string][]file)}
	for di, dir := range idx.Directories {
		if dir.Scale != 1 {
			continue
		}
		for _, base := range t.searchPaths {
			entries, err := os.ReadDir(filepath.Join(base, id, dir.Path))
			if err != nil {
				continue
			}
			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				name, ext, ok := splitIconFile(entry.Name())
				if !ok {
					continue
				}
				l.files[name] = append(l.files[name], file{
					dir:  di,
					path: filepath.Join(base, id, dir.Path, entry.Name()),
					ext:  ext,
				})
			}
		}
	}

	// Directory order first, then extension preference
	for name, files := range l.files {
		slices.SortStableFunc(files, func(a, b file) int {
			if a.dir != b.dir {
				return a.dir - b.dir
			}
			return a.ext - b.ext
		})
		l.files[name] = files
	}

	return l
}

// scanFallback indexes icon files lying directly in the base directories,
// such as /usr/share/pixmaps
func (t *Theme) scanFallback() {
	for _, base := range t.searchPaths {
		entries, err := os.ReadDir(base)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name, ext, ok := splitIconFile(entry.Name())
			if !ok {
				continue
			}
			if prev, exists := t.fallback[name]; exists && prev.ext <= ext {
				continue
			}
			t.fallback[name] = file{dir: -1, path: filepath.Join(base, entry.Name()), ext: ext}
		}
	}
}

func (t *Theme) collectNames() []string {
	set := make(map[string]bool)
	for _, l := range t.chain {
		for name := range l.files {
			set[name] = true
		}
	}
	for name := range t.fallback {
		set[name] = true
	}

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// splitIconFile splits an icon file name into icon name and extension index
func splitIconFile(filename string) (string, int, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	i := slices.Index(Extensions, ext)
	if i < 0 {
		return "", 0, false
	}
	name := strings.TrimSuffix(filename, filepath.Ext(filename))
	// foo-symbolic.symbolic.png is a pre-rendered foo-symbolic
	if ext == ".png" {
		name = strings.TrimSuffix(name, ".symbolic")
	}
	if name == "" {
		return "", 0, false
	}
	return name, i, true
}
