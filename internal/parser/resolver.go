package parser

import (
	"go/ast"
	"go/token"
	"strconv"
	"strings"
)

// DeclIndex indexes every type declaration visible in the current round,
// across all scanned packages. It is the narrow stand-in for the host's
// symbol table: descriptor construction asks it for the kind of a named
// type and defers the candidate when the index has no answer.
type DeclIndex struct {
	byPackage map[string]map[string]declInfo
}

type declInfo struct {
	kind typeKind
}

type typeKind int

const (
	kindStructDecl typeKind = iota
	kindInterfaceDecl
	kindOtherDecl
)

// BuildDeclIndex walks all scans and records each named type declaration
func BuildDeclIndex(scans []*PackageScan) *DeclIndex {
	index := &DeclIndex{
		byPackage: make(map[string]map[string]declInfo),
	}

	for _, scan := range scans {
		decls, ok := index.byPackage[scan.PackageName]
		if !ok {
			decls = make(map[string]declInfo)
			index.byPackage[scan.PackageName] = decls
		}
		for _, file := range scan.Files {
			for _, decl := range file.Decls {
				genDecl, ok := decl.(*ast.GenDecl)
				if !ok || genDecl.Tok != token.TYPE {
					continue
				}
				for _, spec := range genDecl.Specs {
					typeSpec, ok := spec.(*ast.TypeSpec)
					if !ok {
						continue
					}
					decls[typeSpec.Name.Name] = declInfo{kind: kindOf(typeSpec)}
				}
			}
		}
	}

	return index
}

func kindOf(spec *ast.TypeSpec) typeKind {
	switch spec.Type.(type) {
	case *ast.StructType:
		return kindStructDecl
	case *ast.InterfaceType:
		return kindInterfaceDecl
	default:
		return kindOtherDecl
	}
}

// lookup returns the kind of a named type declared in the given package
func (i *DeclIndex) lookup(packageName, typeName string) (typeKind, bool) {
	decls, ok := i.byPackage[packageName]
	if !ok {
		return kindOtherDecl, false
	}
	info, ok := decls[typeName]
	return info.kind, ok
}

// importPathFor resolves a package alias used in a file to its import path
func importPathFor(file *ast.File, alias string) (string, bool) {
	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		name := path
		if idx := strings.LastIndex(path, "/"); idx >= 0 {
			name = path[idx+1:]
		}
		if imp.Name != nil {
			name = imp.Name.Name
		}
		if name == alias {
			return path, true
		}
	}
	return "", false
}
