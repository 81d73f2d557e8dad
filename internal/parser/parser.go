package parser

import (
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/token"
	"sort"
	"strings"

	"github.com/tobrun/data-compat/internal/annotations"
)

// PackageScan is the syntactic view of one scanned package: every parsed
// file plus the shared token set. A scan carries no semantic judgement;
// candidate discovery, default collection, and resolution all run over it.
type PackageScan struct {
	PackageName string
	PackagePath string
	ImportPath  string // canonical import path; "" without module context
	FileSet     *token.FileSet
	Files       map[string]*ast.File
}

// RawCandidate is a marker-carrying type declaration before descriptor
// construction. It keeps the syntax nodes so later passes can resolve
// properties and embedded types.
type RawCandidate struct {
	Name     string
	Spec     *ast.TypeSpec
	Decl     *ast.GenDecl
	Marker   *annotations.ParsedMarker
	FileName string
	Line     int
}

// Parser scans Go source for datacompat candidates
type Parser struct {
	fileSet *token.FileSet
	markers *annotations.Parser
}

// NewParser creates a new source parser
func NewParser() *Parser {
	return &Parser{
		fileSet: token.NewFileSet(),
		markers: annotations.NewParser(),
	}
}

// ParseSource parses source code from a string for testing purposes
func (p *Parser) ParseSource(filename, source string) (*PackageScan, error) {
	file, err := goparser.ParseFile(p.fileSet, filename, source, goparser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}

	return &PackageScan{
		PackageName: file.Name.Name,
		PackagePath: "./",
		FileSet:     p.fileSet,
		Files:       map[string]*ast.File{filename: file},
	}, nil
}

// ParseDirectory parses every Go file in the directory into a PackageScan.
// Generated output units are included on purpose: a later round must be able
// to resolve symbols that an earlier round produced.
func (p *Parser) ParseDirectory(path string) (*PackageScan, error) {
	pkgs, err := goparser.ParseDir(p.fileSet, path, nil, goparser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse directory %s: %w", path, err)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no Go packages found in directory %s", path)
	}
	if len(pkgs) > 1 {
		return nil, fmt.Errorf("multiple packages found in directory %s", path)
	}

	var pkg *ast.Package
	var packageName string
	for name, astPkg := range pkgs {
		pkg = astPkg
		packageName = name
		break
	}

	scan := &PackageScan{
		PackageName: packageName,
		PackagePath: path,
		FileSet:     p.fileSet,
		Files:       make(map[string]*ast.File, len(pkg.Files)),
	}
	for fileName, file := range pkg.Files {
		scan.Files[fileName] = file
	}

	return scan, nil
}

// ExtractCandidates walks a scan and returns every type declaration whose
// doc comment carries a data marker. Malformed markers are returned as
// errors; declarations without markers are not candidates at all.
func (p *Parser) ExtractCandidates(scan *PackageScan) ([]*RawCandidate, []error) {
	var candidates []*RawCandidate
	var errs []error

	for _, fileName := range sortedFileNames(scan) {
		file := scan.Files[fileName]
		for _, decl := range file.Decls {
			genDecl, ok := decl.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.TYPE || genDecl.Doc == nil {
				continue
			}
			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				marker, err := p.dataMarkerFrom(genDecl.Doc, fileName, scan)
				if err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", fileName, err))
					continue
				}
				if marker == nil {
					continue
				}
				candidates = append(candidates, &RawCandidate{
					Name:     typeSpec.Name.Name,
					Spec:     typeSpec,
					Decl:     genDecl,
					Marker:   marker,
					FileName: fileName,
					Line:     scan.FileSet.Position(typeSpec.Pos()).Line,
				})
			}
		}
	}

	return candidates, errs
}

// dataMarkerFrom finds and parses the data marker in a doc comment group,
// returning nil when the group carries none.
func (p *Parser) dataMarkerFrom(doc *ast.CommentGroup, fileName string, scan *PackageScan) (*annotations.ParsedMarker, error) {
	for _, comment := range doc.List {
		if !annotations.IsMarker(comment.Text) {
			continue
		}
		pos := scan.FileSet.Position(comment.Pos())
		marker, err := p.markers.Parse(comment.Text, annotations.SourceLocation{
			File:   fileName,
			Line:   pos.Line,
			Column: pos.Column,
		})
		if err != nil {
			return nil, err
		}
		if marker.Type == annotations.DataMarker {
			return marker, nil
		}
	}
	return nil, nil
}

// docText extracts the plain documentation from a comment group, excluding
// marker lines and directive lines.
func docText(doc *ast.CommentGroup) string {
	if doc == nil {
		return ""
	}
	var lines []string
	for _, comment := range doc.List {
		if annotations.IsMarker(comment.Text) || isDirective(comment.Text) {
			continue
		}
		text := strings.TrimPrefix(comment.Text, "//")
		text = strings.TrimPrefix(text, " ")
		lines = append(lines, text)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// directiveLines extracts directive comments (written //directive with no
// space, like //nolint:foo) for verbatim pass-through to generated output.
func directiveLines(doc *ast.CommentGroup) []string {
	if doc == nil {
		return nil
	}
	var directives []string
	for _, comment := range doc.List {
		if isDirective(comment.Text) && !annotations.IsMarker(comment.Text) {
			directives = append(directives, comment.Text)
		}
	}
	return directives
}

// sortedFileNames returns a scan's file names in lexical order. Scans keep
// files in a map; every pass that cares about ordering walks them sorted so
// candidate order, collision resolution, and diagnostics stay deterministic.
func sortedFileNames(scan *PackageScan) []string {
	names := make([]string, 0, len(scan.Files))
	for name := range scan.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// isDirective reports whether a comment is a tool directive rather than
// prose. Directives have no space after the comment marker.
func isDirective(comment string) bool {
	if !strings.HasPrefix(comment, "//") {
		return false
	}
	rest := comment[2:]
	return rest != "" && rest[0] != ' ' && rest[0] != '\t' && rest[0] != '/'
}
