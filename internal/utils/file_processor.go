package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// FileProcessor locates the package directories a synthesis run operates on
type FileProcessor struct{}

// NewFileProcessor creates a new file processor
func NewFileProcessor() *FileProcessor {
	return &FileProcessor{}
}

// ScanDirectoriesWithGoFiles walks the root directories and returns every
// directory that holds at least one Go source file. Hidden directories,
// vendor trees, testdata, and underscore-prefixed directories are skipped.
func (fp *FileProcessor) ScanDirectoriesWithGoFiles(rootDirs []string) ([]string, error) {
	var result []string
	visited := make(map[string]bool)

	for _, rootDir := range rootDirs {
		err := filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() {
				return nil
			}
			if skipDirectory(info.Name()) && path != rootDir {
				return filepath.SkipDir
			}
			if visited[path] {
				return nil
			}
			hasGo, err := fp.HasGoFiles(path)
			if err != nil {
				return err
			}
			if hasGo {
				visited[path] = true
				result = append(result, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// HasGoFiles reports whether a directory directly contains at least one
// non-test Go source file.
func (fp *FileProcessor) HasGoFiles(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go") {
			return true, nil
		}
	}
	return false, nil
}

func skipDirectory(name string) bool {
	switch {
	case strings.HasPrefix(name, "."):
		return true
	case strings.HasPrefix(name, "_"):
		return true
	case name == "vendor" || name == "testdata" || name == "node_modules":
		return true
	}
	return false
}
