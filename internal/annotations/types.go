package annotations

import "fmt"

// MarkerType represents the type of datacompat marker
type MarkerType int

const (
	DataMarker MarkerType = iota
	DefaultMarker
)

// String returns the string representation of the marker type
func (m MarkerType) String() string {
	switch m {
	case DataMarker:
		return "data"
	case DefaultMarker:
		return "default"
	default:
		return "unknown"
	}
}

// ParseMarkerType converts string to MarkerType
func ParseMarkerType(s string) (MarkerType, error) {
	switch s {
	case "data":
		return DataMarker, nil
	case "default":
		return DefaultMarker, nil
	default:
		return 0, fmt.Errorf("unknown marker type: %s", s)
	}
}

// SourceLocation represents the location of a marker in source code
type SourceLocation struct {
	File   string // File path
	Line   int    // Line number (1-based)
	Column int    // Column number (1-based)
}

// ParsedMarker represents a fully parsed marker with typed parameters
type ParsedMarker struct {
	Type       MarkerType
	Parameters map[string][]string // named parameters, comma values split
	Flags      map[string]bool     // boolean flags
	Expression string              // raw literal text, default markers only
	Location   SourceLocation
	Raw        string // original marker text
}

// HasFlag checks if a boolean flag was set
func (p *ParsedMarker) HasFlag(name string) bool {
	return p.Flags[name]
}

// GetStringSlice returns a named parameter's values, or nil when absent
func (p *ParsedMarker) GetStringSlice(name string) []string {
	return p.Parameters[name]
}

// ParameterSpec defines the specification for a marker parameter
type ParameterSpec struct {
	Description string
	Flag        bool // parameter is a bare flag with no value
}

// MarkerSchema defines the accepted surface for one marker type
type MarkerSchema struct {
	Type        MarkerType
	Description string
	Parameters  map[string]ParameterSpec
	TakesExpr   bool // marker consumes the rest of the line as a raw expression
	Examples    []string
}
