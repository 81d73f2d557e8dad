package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoModParser_ParseModuleName(t *testing.T) {
	dir := t.TempDir()
	goMod := filepath.Join(dir, "go.mod")
	require.NoError(t, os.WriteFile(goMod, []byte("module github.com/acme/app\n\ngo 1.25\n"), 0644))

	name, err := NewGoModParser().ParseModuleName(goMod)
	require.NoError(t, err)
	assert.Equal(t, "github.com/acme/app", name)
}

func TestGoModParser_RejectsNonGoModPath(t *testing.T) {
	_, err := NewGoModParser().ParseModuleName("/tmp/notamodfile.txt")
	assert.Error(t, err)
}

func TestGoModParser_FindGoModFileWalksUp(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/m\n"), 0644))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	path, err := NewGoModParser().FindGoModFile(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "go.mod"), path)
}

func TestGoModParser_FindGoModFileMissing(t *testing.T) {
	_, err := NewGoModParser().FindGoModFile(t.TempDir())
	assert.Error(t, err)
}
