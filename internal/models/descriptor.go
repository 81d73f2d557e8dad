package models

import (
	"fmt"
	"strings"
	"unicode"
)

// TypeExpr is the resolved semantic type of one property, including its
// nullability. Pointer types are nullable; everything else is not.
type TypeExpr struct {
	Code      string // rendered Go type, e.g. "*string"
	Nullable  bool   // true for pointer types
	FloatBits int    // 32 or 64 when the element type is floating point, else 0

	// NonComparable marks element types the == operator does not accept
	// (slices, maps, functions, channels). No equality policy exists for
	// them, so validation rejects the candidate.
	NonComparable bool
}

// Elem returns the type code without the leading pointer marker.
func (t TypeExpr) Elem() string {
	return strings.TrimPrefix(t.Code, "*")
}

// IsFloat reports whether the element type is a floating-point type.
func (t TypeExpr) IsFloat() bool {
	return t.FloatBits != 0
}

// PropertyDescriptor describes one declared property of a candidate type.
// Property order is significant and preserved end-to-end: it fixes
// constructor parameter order, builder field order, and String() order.
type PropertyDescriptor struct {
	Name        string
	Type        TypeExpr
	Doc         string // free text from the source; may be empty
	DefaultExpr string // raw default expression text; "" means no explicit default
}

// Mandatory reports whether the property must appear in every constructor
// path. It is a pure function of default presence and nullability; it is
// never stored.
func (p PropertyDescriptor) Mandatory() bool {
	return p.DefaultExpr == "" && !p.Type.Nullable
}

// Documentation returns the property's documentation, falling back to a
// derived human-readable label when the source carries none.
func (p PropertyDescriptor) Documentation() string {
	if doc := strings.TrimSpace(p.Doc); doc != "" {
		return doc
	}
	return fmt.Sprintf("%s holds the %s property.", p.Name, camelToWords(p.Name))
}

// CapabilityRef names one interface the output type declares compliance
// with, either from an embedded interface or a marker parameter.
type CapabilityRef struct {
	Expr       string // rendered reference, e.g. "fmt.Stringer" or "Named"
	ImportPath string // import required for the reference; "" for same package
}

// TypeDescriptor describes one candidate type offered for synthesis.
type TypeDescriptor struct {
	SimpleName  string
	PackageName string
	PackagePath string // directory holding the package's source
	ImportPath  string // canonical import path; "" without module context

	Kind       DeclKind
	TypeParams bool // candidate declares generic type parameters

	Doc          string
	Properties   []PropertyDescriptor
	PassThrough  []string // directive comments propagated verbatim
	Capabilities []CapabilityRef
	GenerateHook bool
	ExtraImports []string

	FileName string
	Line     int
}

// QualifiedName returns the candidate's fully qualified name, or "" when
// identity is incomplete. The import path qualifies the name when the
// enclosing module is known; the bare package name is the fallback.
func (t *TypeDescriptor) QualifiedName() string {
	if t.SimpleName == "" || t.PackageName == "" {
		return ""
	}
	if t.ImportPath != "" {
		return t.ImportPath + "." + t.SimpleName
	}
	return t.PackageName + "." + t.SimpleName
}

// OutputName derives the output type's name: marker suffix stripped, first
// letter exported. Deterministic and not user-overridable.
func (t *TypeDescriptor) OutputName() string {
	name := strings.TrimSuffix(t.SimpleName, MarkerSuffix)
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// PropertyNames returns property names in declaration order.
func (t *TypeDescriptor) PropertyNames() []string {
	names := make([]string, len(t.Properties))
	for i, p := range t.Properties {
		names[i] = p.Name
	}
	return names
}

// camelToWords converts a camelCase identifier to lower-case words
func camelToWords(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) && i > 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
