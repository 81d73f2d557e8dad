package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tobrun/data-compat/internal/emitter"
)

// Cleaner removes previously generated output units
type Cleaner struct {
	scanner *DirectoryScanner
}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{
		scanner: NewDirectoryScanner(),
	}
}

// CleanGeneratedFiles removes every generated *_gen.go file under the given
// directory patterns. Only files that carry the generated-code header are
// touched; a hand-written file that happens to match the name pattern stays.
func (c *Cleaner) CleanGeneratedFiles(directories []string) ([]string, error) {
	dirs, err := c.scanner.ScanDirectories(directories)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, dir := range dirs {
		if err := c.cleanDirectory(dir, &removed); err != nil {
			return removed, fmt.Errorf("failed to clean directory %s: %w", dir, err)
		}
	}
	return removed, nil
}

func (c *Cleaner) cleanDirectory(dir string, removed *[]string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "_gen.go") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		generated, err := c.isGenerated(path)
		if err != nil {
			return err
		}
		if !generated {
			continue
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove file %s: %w", path, err)
		}
		*removed = append(*removed, path)
	}
	return nil
}

func (c *Cleaner) isGenerated(path string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(string(content), emitter.GeneratedHeader), nil
}
