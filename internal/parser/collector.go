package parser

import (
	"go/ast"
	"go/token"

	"github.com/tobrun/data-compat/internal/annotations"
	"github.com/tobrun/data-compat/internal/errors"
	"github.com/tobrun/data-compat/internal/models"
)

// Collector gathers out-of-band default-value markers and indexes them by
// owning type. It runs as its own complete pass, strictly before any
// candidate is classified, so classification never depends on marker
// discovery order.
type Collector struct {
	markers *annotations.Parser
}

// NewCollector creates a new default-value collector
func NewCollector() *Collector {
	return &Collector{
		markers: annotations.NewParser(),
	}
}

// Collect builds a fresh DefaultValueIndex from every default marker in the
// scans. For each marker the syntactic owner is the nearest enclosing named
// type declaration; markers without one are silently omitted. A repeated
// (owner, property) pair is resolved last-write-wins and reported as a
// collision warning, never as a failure.
func (c *Collector) Collect(scans []*PackageScan) (*models.DefaultValueIndex, []*errors.BaseError) {
	index := models.NewDefaultValueIndex()
	var collisions []*errors.BaseError

	for _, scan := range scans {
		for _, fileName := range sortedFileNames(scan) {
			c.collectFile(scan, fileName, scan.Files[fileName], index, &collisions)
		}
	}

	return index, collisions
}

func (c *Collector) collectFile(scan *PackageScan, fileName string, file *ast.File, index *models.DefaultValueIndex, collisions *[]*errors.BaseError) {
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
			structType, ok := typeSpec.Type.(*ast.StructType)
			if !ok {
				// A default marker outside a struct has no owner to walk
				// up to; it is dropped without diagnostics.
				continue
			}
			owner := models.OwnerKey(scan.PackagePath, typeSpec.Name.Name)
			c.collectStruct(scan, fileName, owner, structType, index, collisions)
		}
	}
}

// collectStruct records default markers for every field of a struct,
// descending into anonymous nested structs: their fields still resolve to
// the nearest enclosing named type as owner.
func (c *Collector) collectStruct(scan *PackageScan, fileName, owner string, structType *ast.StructType, index *models.DefaultValueIndex, collisions *[]*errors.BaseError) {
	for _, field := range structType.Fields.List {
		if nested, ok := field.Type.(*ast.StructType); ok {
			c.collectStruct(scan, fileName, owner, nested, index, collisions)
		}
		expr, ok := c.defaultExprFrom(field.Doc, fileName, scan)
		if !ok {
			continue
		}
		for _, name := range field.Names {
			if replaced := index.Register(owner, name.Name, expr); replaced {
				pos := scan.FileSet.Position(field.Pos())
				collision := errors.Collision(owner, name.Name).WithLocation(errors.SourceLocation{
					File: fileName,
					Line: pos.Line,
				})
				*collisions = append(*collisions, collision)
			}
		}
	}
}

// defaultExprFrom parses a field doc comment group for a default marker.
// Malformed default markers are dropped: the collector emits no diagnostics
// of its own beyond collisions.
func (c *Collector) defaultExprFrom(doc *ast.CommentGroup, fileName string, scan *PackageScan) (string, bool) {
	if doc == nil {
		return "", false
	}
	for _, comment := range doc.List {
		if !annotations.IsMarker(comment.Text) {
			continue
		}
		pos := scan.FileSet.Position(comment.Pos())
		marker, err := c.markers.Parse(comment.Text, annotations.SourceLocation{
			File: fileName,
			Line: pos.Line,
		})
		if err != nil || marker.Type != annotations.DefaultMarker {
			continue
		}
		return marker.Expression, true
	}
	return "", false
}
