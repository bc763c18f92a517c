package category

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

// Unknown is the synthetic category of icons no definition matches
const Unknown = "unknown"

// Definition describes one icon category. A tag belongs to the category when
// it starts with Prefix, ignoring case.
type Definition struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Prefix string `yaml:"prefix"`
}

// File is the root YAML structure of a category definitions file
type File struct {
	Categories []Definition `yaml:"categories"`
}

// Builtin returns the freedesktop icon theme contexts
func Builtin() []Definition {
	return []Definition{
		{ID: "actions", Name: "Actions", Prefix: "action"},
		{ID: "animations", Name: "Animations", Prefix: "animation"},
		{ID: "apps", Name: "Applications", Prefix: "app"},
		{ID: "categories", Name: "Categories", Prefix: "categor"},
		{ID: "devices", Name: "Devices", Prefix: "device"},
		{ID: "emblems", Name: "Emblems", Prefix: "emblem"},
		{ID: "emotes", Name: "Emotes", Prefix: "emote"},
		{ID: "intl", Name: "International", Prefix: "intl"},
		{ID: "mimetypes", Name: "MIME Types", Prefix: "mimetype"},
		{ID: "places", Name: "Places", Prefix: "place"},
		{ID: "status", Name: "Status", Prefix: "status"},
		{ID: "legacy", Name: "Legacy", Prefix: "legacy"},
		{ID: "panel", Name: "Panel", Prefix: "panel"},
	}
}

// Fold case-folds s for case-insensitive tag comparison
func Fold(s string) string {
	return cases.Fold().String(s)
}

// Matches reports whether tag belongs to the category. foldedTag must already
// be case-folded with Fold.
func (d Definition) Matches(foldedTag string) bool {
	return d.Prefix != "" && strings.HasPrefix(foldedTag, d.Prefix)
}

// Known reports whether any definition matches the folded tag
func Known(defs []Definition, foldedTag string) bool {
	for _, d := range defs {
		if d.Matches(foldedTag) {
			return true
		}
	}
	return false
}

// Classify returns the IDs of the categories tags select, in definition
// order. The leading tag names the theme and never selects a category.
// Tags that no definition knows at all yield Unknown.
func Classify(defs []Definition, tags []string) []string {
	folded := make([]string, len(tags))
	known := false
	for i, tag := range tags {
		folded[i] = Fold(tag)
		known = known || Known(defs, folded[i])
	}
	if !known {
		return []string{Unknown}
	}

	ids := []string{}
	if len(folded) < 2 {
		return ids
	}
	for _, d := range defs {
		for _, tag := range folded[1:] {
			if d.Matches(tag) {
				ids = append(ids, d.ID)
				break
			}
		}
	}
	return ids
}

// IDs returns the IDs of defs followed by Unknown
func IDs(defs []Definition) []string {
	ids := make([]string, 0, len(defs)+1)
	for _, d := range defs {
		ids = append(ids, d.ID)
	}
	return append(ids, Unknown)
}

// Store reads and writes category definitions in a YAML file
type Store struct {
	path string
}

// NewStore creates a store for the definitions file at path
func NewStore(path string) *Store {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	return &Store{path: path}
}

// DefaultPath returns the default category definitions path
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "iconview", "categories.yaml")
}

// Path returns the file the store reads from
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored definitions, or the built-in ones when the file
// does not exist or lists no categories
func (s *Store) Load() ([]Definition, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Builtin(), nil
		}
		return nil, fmt.Errorf("read categories: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse categories %s: %w", s.path, err)
	}
	if len(file.Categories) == 0 {
		return Builtin(), nil
	}

	defs := make([]Definition, 0, len(file.Categories))
	seen := make(map[string]bool)
	for _, d := range file.Categories {
		d, err := sanitizeDefinition(d)
		if err != nil {
			return nil, fmt.Errorf("parse categories %s: %w", s.path, err)
		}
		if seen[d.ID] {
			return nil, fmt.Errorf("parse categories %s: duplicate id %q", s.path, d.ID)
		}
		seen[d.ID] = true
		defs = append(defs, d)
	}
	return defs, nil
}

// Save writes defs to the store file
func (s *Store) Save(defs []Definition) error {
	data, err := yaml.Marshal(File{Categories: defs})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

func sanitizeDefinition(def Definition) (Definition, error) {
	def.ID = strings.ToLower(strings.TrimSpace(def.ID))
	def.Name = strings.TrimSpace(def.Name)
	def.Prefix = Fold(strings.TrimSpace(def.Prefix))

	if def.ID == "" {
		return def, fmt.Errorf("id is required")
	}
	if def.ID == Unknown {
		return def, fmt.Errorf("id %q is reserved", Unknown)
	}
	if def.Name == "" {
		def.Name = def.ID
	}
	if def.Prefix == "" {
		def.Prefix = Fold(def.ID)
	}
	return def, nil
}
