// Package catalog builds the icon catalog from an icon source and resolves
// symlink aliases between its records.
package catalog

// Lookup is the result of resolving one icon name at one pixel size
type Lookup struct {
	Path     string
	Found    bool
	Symbolic bool
}

// Source enumerates icon names and resolves them to files
type Source interface {
	IconNames() []string
	Lookup(name string, size int) Lookup
}
