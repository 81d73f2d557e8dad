package emitter

import (
	"fmt"
	"sort"
	"strings"
)

// RuntimeImportPath is the fixed import every output unit carries for the
// hash-combination and comparison helpers.
const RuntimeImportPath = "github.com/tobrun/data-compat/pkg/datacompat"

// ImportManager collects and deduplicates the imports of one output unit
type ImportManager struct {
	paths map[string]bool
}

// NewImportManager creates a new import manager
func NewImportManager() *ImportManager {
	return &ImportManager{
		paths: make(map[string]bool),
	}
}

// Add records an import path; empty paths are ignored
func (im *ImportManager) Add(path string) {
	if path != "" {
		im.paths[path] = true
	}
}

// AddAll records every path in the slice
func (im *ImportManager) AddAll(paths []string) {
	for _, path := range paths {
		im.Add(path)
	}
}

// Render generates the import block, standard library imports grouped before
// everything else, each group sorted.
func (im *ImportManager) Render() string {
	if len(im.paths) == 0 {
		return ""
	}

	var std, rest []string
	for path := range im.paths {
		if isStandardLibrary(path) {
			std = append(std, path)
		} else {
			rest = append(rest, path)
		}
	}
	sort.Strings(std)
	sort.Strings(rest)

	if len(std)+len(rest) == 1 {
		single := append(std, rest...)[0]
		return fmt.Sprintf("import %q\n", single)
	}

	var b strings.Builder
	b.WriteString("import (\n")
	for _, path := range std {
		fmt.Fprintf(&b, "\t%q\n", path)
	}
	if len(std) > 0 && len(rest) > 0 {
		b.WriteString("\n")
	}
	for _, path := range rest {
		fmt.Fprintf(&b, "\t%q\n", path)
	}
	b.WriteString(")\n")
	return b.String()
}

// isStandardLibrary reports whether a path names a standard library package.
// Module paths carry a dotted host in their first element; std paths do not.
func isStandardLibrary(path string) bool {
	first := path
	if idx := strings.Index(path, "/"); idx >= 0 {
		first = path[:idx]
	}
	return !strings.Contains(first, ".")
}
