package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tobrun/data-compat/internal/utils"
)

// ModuleResolver handles resolving Go module information
type ModuleResolver struct {
	goMod *utils.GoModParser
}

// NewModuleResolver creates a new module resolver
func NewModuleResolver() *ModuleResolver {
	return &ModuleResolver{
		goMod: utils.NewGoModParser(),
	}
}

// ResolveModuleName resolves the module name for imports.
// If customModule is provided, it uses that; otherwise reads from go.mod.
func (r *ModuleResolver) ResolveModuleName(customModule string) (string, error) {
	if customModule != "" {
		return customModule, nil
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	goModPath, err := r.goMod.FindGoModFile(currentDir)
	if err != nil {
		return "", fmt.Errorf("failed to determine module name: %w (consider using --module flag)", err)
	}

	return r.goMod.ParseModuleName(goModPath)
}

// BuildPackagePath derives the canonical import path for a package
// directory: the enclosing module's path joined with the directory's
// position under the module root. The go.mod anchoring the path is found by
// walking up from the package directory itself; customModule, when set,
// overrides the module path it declares.
func (r *ModuleResolver) BuildPackagePath(customModule, packageDir string) (string, error) {
	absPackageDir, err := filepath.Abs(packageDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve package directory: %w", err)
	}

	goModPath, err := r.goMod.FindGoModFile(absPackageDir)
	if err != nil {
		return "", fmt.Errorf("no enclosing module for %s: %w", packageDir, err)
	}

	moduleName := customModule
	if moduleName == "" {
		if moduleName, err = r.goMod.ParseModuleName(goModPath); err != nil {
			return "", err
		}
	}

	relPath, err := filepath.Rel(filepath.Dir(goModPath), absPackageDir)
	if err != nil {
		return "", fmt.Errorf("failed to calculate relative path: %w", err)
	}

	importPath := filepath.ToSlash(relPath)
	if importPath == "." {
		return moduleName, nil
	}

	return fmt.Sprintf("%s/%s", moduleName, importPath), nil
}
