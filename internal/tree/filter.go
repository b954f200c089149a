// Package tree finds the files of a source directory and maps them onto a
// destination directory with the same layout.
package tree

import (
	"path/filepath"
	"strings"
)

// Filter decides which files of a tree take part in a batch.
type Filter struct {
	IncludeHidden bool
	// Extensions limits the walk to these extensions (".txt" or "txt").
	// Empty means every file.
	Extensions []string
}

// NewFilter creates a new Filter with the given settings.
func NewFilter(includeHidden bool, extensions []string) Filter {
	return Filter{
		IncludeHidden: includeHidden,
		Extensions:    extensions,
	}
}

// Match checks the extension of a relative file path.
func (f Filter) Match(rel string) bool {
	if len(f.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(rel))
	for _, e := range f.Extensions {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if e == ext {
			return true
		}
	}
	return false
}
