package theme

import (
	"fmt"
	"path/filepath"

	"github.com/go-ini/ini"
)

// Directory size matching types from the icon theme specification
const (
	TypeFixed     = "Fixed"
	TypeScalable  = "Scalable"
	TypeThreshold = "Threshold"
)

// Directory is one icon directory declared in index.theme
type Directory struct {
	Path      string
	Size      int
	Scale     int
	MinSize   int
	MaxSize   int
	Threshold int
	Type      string
	Context   string
}

// MatchesSize reports whether icons in the directory are meant for size
func (d Directory) MatchesSize(size int) bool {
	switch d.Type {
	case TypeFixed:
		return d.Size == size
	case TypeScalable:
		return d.MinSize <= size && size <= d.MaxSize
	default:
		return d.Size-d.Threshold <= size && size <= d.Size+d.Threshold
	}
}

// SizeDistance returns how far the directory is from size, 0 when it matches
func (d Directory) SizeDistance(size int) int {
	switch d.Type {
	case TypeFixed:
		return abs(d.Size - size)
	case TypeScalable:
		if size < d.MinSize {
			return d.MinSize - size
		}
		if size > d.MaxSize {
			return size - d.MaxSize
		}
		return 0
	default:
		if size < d.Size-d.Threshold {
			return d.Size - d.Threshold - size
		}
		if size > d.Size+d.Threshold {
			return size - d.Size - d.Threshold
		}
		return 0
	}
}

// Index is the parsed index.theme of one icon theme
type Index struct {
	ID          string // Directory name of the theme
	Name        string
	Comment     string
	Inherits    []string
	Hidden      bool
	Directories []Directory
}

// ParseIndex reads an index.theme file
func ParseIndex(id, path string) (*Index, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
	}, path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	sec, err := cfg.GetSection("Icon Theme")
	if err != nil {
		return nil, fmt.Errorf("parse %s: missing [Icon Theme] section", path)
	}

	idx := &Index{
		ID:       id,
		Name:     sec.Key("Name").MustString(id),
		Comment:  sec.Key("Comment").String(),
		Inherits: sec.Key("Inherits").Strings(","),
		Hidden:   sec.Key("Hidden").MustBool(false),
	}

	dirs := append(sec.Key("Directories").Strings(","), sec.Key("ScaledDirectories").Strings(",")...)
	seen := make(map[string]bool)
	for _, name := range dirs {
		if seen[name] {
			continue
		}
		seen[name] = true

		ds, err := cfg.GetSection(name)
		if err != nil {
			continue
		}

		size := ds.Key("Size").MustInt(0)
		if size <= 0 {
			continue
		}
		idx.Directories = append(idx.Directories, Directory{
			Path:      filepath.FromSlash(name),
			Size:      size,
			Scale:     ds.Key("Scale").MustInt(1),
			MinSize:   ds.Key("MinSize").MustInt(size),
			MaxSize:   ds.Key("MaxSize").MustInt(size),
			Threshold: ds.Key("Threshold").MustInt(2),
			Type:      ds.Key("Type").In(TypeThreshold, []string{TypeFixed, TypeScalable, TypeThreshold}),
			Context:   ds.Key("Context").String(),
		})
	}

	return idx, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
