package parser

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/printer"
	"strings"

	"github.com/tobrun/data-compat/internal/errors"
	"github.com/tobrun/data-compat/internal/models"
)

// BuildDescriptor turns a raw candidate into a TypeDescriptor. The result
// still has to pass validation; this step only resolves what the syntax and
// the round's declaration index can answer. A deferral error means some
// embedded symbol is not resolvable this round and the candidate should be
// retried later.
func (p *Parser) BuildDescriptor(raw *RawCandidate, scan *PackageScan, index *DeclIndex) (*models.TypeDescriptor, error) {
	descriptor := &models.TypeDescriptor{
		SimpleName:   raw.Name,
		PackageName:  scan.PackageName,
		PackagePath:  scan.PackagePath,
		ImportPath:   scan.ImportPath,
		Kind:         declKindOf(raw.Spec),
		TypeParams:   raw.Spec.TypeParams != nil && len(raw.Spec.TypeParams.List) > 0,
		Doc:          docText(raw.Decl.Doc),
		PassThrough:  directiveLines(raw.Decl.Doc),
		GenerateHook: raw.Marker.HasFlag("Hook"),
		ExtraImports: raw.Marker.GetStringSlice("Import"),
		FileName:     raw.FileName,
		Line:         raw.Line,
	}

	for _, ref := range raw.Marker.GetStringSlice("Implements") {
		descriptor.Capabilities = append(descriptor.Capabilities, capabilityFromRef(ref))
	}

	structType, ok := raw.Spec.Type.(*ast.StructType)
	if !ok {
		// Kind mismatch is the validator's call to reject; there are no
		// properties to resolve.
		return descriptor, nil
	}

	file := scan.Files[raw.FileName]
	seen := make(map[string]bool)

	for _, field := range structType.Fields.List {
		if len(field.Names) == 0 {
			capability, skip, err := p.resolveEmbedded(raw, scan, file, index, field.Type)
			if err != nil {
				return nil, err
			}
			if !skip {
				descriptor.Capabilities = append(descriptor.Capabilities, capability)
			}
			continue
		}

		typeExpr := p.typeExprOf(scan, field.Type)
		doc := docText(field.Doc)
		for _, name := range field.Names {
			if seen[name.Name] {
				return nil, errors.EngineDefect(raw.Name, fmt.Sprintf("duplicate property name %q", name.Name)).
					WithLocation(errors.SourceLocation{File: raw.FileName, Line: raw.Line})
			}
			seen[name.Name] = true
			descriptor.Properties = append(descriptor.Properties, models.PropertyDescriptor{
				Name: name.Name,
				Type: typeExpr,
				Doc:  doc,
			})
		}
	}

	return descriptor, nil
}

func declKindOf(spec *ast.TypeSpec) models.DeclKind {
	switch spec.Type.(type) {
	case *ast.StructType:
		return models.KindStruct
	case *ast.InterfaceType:
		return models.KindInterface
	case *ast.Ident, *ast.SelectorExpr:
		return models.KindAlias
	default:
		return models.KindOther
	}
}

// typeExprOf renders a field type and classifies its nullability,
// floating-point width, and comparability.
func (p *Parser) typeExprOf(scan *PackageScan, expr ast.Expr) models.TypeExpr {
	typeExpr := models.TypeExpr{
		Code: renderType(scan, expr),
	}

	elem := expr
	if star, ok := expr.(*ast.StarExpr); ok {
		typeExpr.Nullable = true
		elem = star.X
	}
	if ident, ok := elem.(*ast.Ident); ok {
		switch ident.Name {
		case "float32":
			typeExpr.FloatBits = 32
		case "float64":
			typeExpr.FloatBits = 64
		}
	}
	typeExpr.NonComparable = nonComparableType(elem)

	return typeExpr
}

// nonComparableType reports whether the == operator is ruled out for a type
// expression on syntax alone. Named types are trusted as comparable; a named
// slice or map slips through here and fails at the output unit's compile.
func nonComparableType(expr ast.Expr) bool {
	switch t := expr.(type) {
	case *ast.ArrayType:
		if t.Len == nil {
			return true
		}
		return nonComparableType(t.Elt)
	case *ast.MapType, *ast.FuncType, *ast.ChanType:
		return true
	default:
		return false
	}
}

// renderType prints an AST type expression back to source form
func renderType(scan *PackageScan, expr ast.Expr) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, scan.FileSet, expr); err != nil {
		return ""
	}
	return buf.String()
}

// resolveEmbedded classifies an embedded field. Embedded interfaces become
// capability assertions on the output type; embedded structs are base types
// and are not propagated; an embedded name the round cannot resolve defers
// the whole candidate.
func (p *Parser) resolveEmbedded(raw *RawCandidate, scan *PackageScan, file *ast.File, index *DeclIndex, expr ast.Expr) (models.CapabilityRef, bool, error) {
	if _, ok := expr.(*ast.StarExpr); ok {
		// Pointer embeds are always concrete base types.
		return models.CapabilityRef{}, true, nil
	}

	switch t := expr.(type) {
	case *ast.Ident:
		kind, ok := index.lookup(scan.PackageName, t.Name)
		if !ok {
			return models.CapabilityRef{}, false, errors.Deferral(raw.Name, t.Name).
				WithLocation(errors.SourceLocation{File: raw.FileName, Line: raw.Line})
		}
		if kind != kindInterfaceDecl {
			return models.CapabilityRef{}, true, nil
		}
		return models.CapabilityRef{Expr: t.Name}, false, nil

	case *ast.SelectorExpr:
		pkgIdent, ok := t.X.(*ast.Ident)
		if !ok {
			return models.CapabilityRef{}, true, nil
		}
		kind, found := index.lookup(pkgIdent.Name, t.Sel.Name)
		if !found {
			return models.CapabilityRef{}, false, errors.Deferral(raw.Name, pkgIdent.Name+"."+t.Sel.Name).
				WithLocation(errors.SourceLocation{File: raw.FileName, Line: raw.Line})
		}
		if kind != kindInterfaceDecl {
			return models.CapabilityRef{}, true, nil
		}
		importPath, _ := importPathFor(file, pkgIdent.Name)
		return models.CapabilityRef{
			Expr:       pkgIdent.Name + "." + t.Sel.Name,
			ImportPath: importPath,
		}, false, nil

	default:
		return models.CapabilityRef{}, true, nil
	}
}

// capabilityFromRef builds a capability from a marker-declared qualified
// name. Marker-declared capabilities are trusted to be interfaces: the
// compile-time assertion in the generated file is the real check. The text
// before the last dot is the import path; its base segment is the package
// qualifier in the rendered expression.
func capabilityFromRef(ref string) models.CapabilityRef {
	dot := strings.LastIndex(ref, ".")
	if dot < 0 {
		return models.CapabilityRef{Expr: ref}
	}
	importPath := ref[:dot]
	typeName := ref[dot+1:]
	qualifier := importPath
	if idx := strings.LastIndex(importPath, "/"); idx >= 0 {
		qualifier = importPath[idx+1:]
	}
	return models.CapabilityRef{
		Expr:       qualifier + "." + typeName,
		ImportPath: importPath,
	}
}
