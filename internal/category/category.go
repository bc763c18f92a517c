// Package category derives semantic tags for icons from their file paths
// and defines the icon categories those tags are matched against.
package category

import (
	"path/filepath"
	"slices"
	"strings"
)

// infrastructureDirs are path components that only locate an icon theme and
// never describe the icon itself
var infrastructureDirs = map[string]bool{
	"usr":    true,
	"share":  true,
	"icons":  true,
	".local": true,
	".icons": true,
}

// SplitPath splits a path into its non-root components
func SplitPath(path string) []string {
	parts := []string{}
	for _, p := range strings.Split(filepath.ToSlash(path), "/") {
		if p == "" || p == "." {
			continue
		}
		parts = append(parts, p)
	}
	return parts
}

// Categorize turns a path into an ordered list of category tags.
//
// Theme infrastructure directories are dropped. When the remaining path
// starts with "home", that component and every occurrence of the user name
// that follows it are dropped too, so local user names never become tags.
func Categorize(path string) []string {
	parts := slices.DeleteFunc(SplitPath(path), func(p string) bool {
		return infrastructureDirs[p]
	})

	if len(parts) > 0 && parts[0] == "home" {
		parts = parts[1:]
		if len(parts) > 0 {
			user := parts[0]
			parts = slices.DeleteFunc(parts, func(p string) bool { return p == user })
		}
	}

	return parts
}

// Tags returns the tags of icon name located at path. The trailing file name
// component is not a category and is stripped.
func Tags(name, path string) []string {
	if path == "" {
		return []string{}
	}

	tags := Categorize(path)
	if n := len(tags); n > 0 && name != "" && strings.HasPrefix(tags[n-1], name) {
		tags = tags[:n-1]
	}
	return tags
}
