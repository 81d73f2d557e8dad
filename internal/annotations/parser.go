package annotations

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// MarkerPrefix is the comment prefix that introduces a datacompat marker
const MarkerPrefix = "datacompat::"

// markerArgs is the participle grammar for a data marker's argument list:
// a sequence of -Name or -Name=value items.
type markerArgs struct {
	Items []markerItem `parser:"@@*"`
}

type markerItem struct {
	Name  string  `parser:"Dash @Value"`
	Value *string `parser:"(Equals @Value)?"`
}

// Parser parses datacompat marker comments into ParsedMarker values
type Parser struct {
	args     *participle.Parser[markerArgs]
	registry MarkerRegistry
}

// NewParser creates a marker parser backed by the built-in schema registry
func NewParser() *Parser {
	return NewParserWithRegistry(NewMarkerRegistry())
}

// NewParserWithRegistry creates a marker parser with a custom registry
func NewParserWithRegistry(registry MarkerRegistry) *Parser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Dash", Pattern: `-`},
		{Name: "Equals", Pattern: `=`},
		{Name: "Value", Pattern: `[^\s=-][^=\s]*`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	args := participle.MustBuild[markerArgs](
		participle.Lexer(lex),
		participle.Elide("Whitespace"),
	)

	return &Parser{
		args:     args,
		registry: registry,
	}
}

// IsMarker reports whether a comment line carries a datacompat marker
func IsMarker(comment string) bool {
	text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(comment), "//"))
	return strings.HasPrefix(text, MarkerPrefix)
}

// Parse parses a single marker comment line. The comment must include the
// leading // prefix.
func (p *Parser) Parse(comment string, location SourceLocation) (*ParsedMarker, error) {
	text := strings.TrimSpace(comment)
	if !strings.HasPrefix(text, "//") {
		return nil, fmt.Errorf("marker must start with '//'")
	}
	text = strings.TrimSpace(strings.TrimPrefix(text, "//"))

	if !strings.HasPrefix(text, MarkerPrefix) {
		return nil, fmt.Errorf("marker must carry the '%s' prefix", MarkerPrefix)
	}
	text = strings.TrimPrefix(text, MarkerPrefix)

	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty marker")
	}

	markerType, err := ParseMarkerType(fields[0])
	if err != nil {
		return nil, err
	}

	schema, err := p.registry.GetSchema(markerType)
	if err != nil {
		return nil, err
	}

	parsed := &ParsedMarker{
		Type:       markerType,
		Parameters: make(map[string][]string),
		Flags:      make(map[string]bool),
		Location:   location,
		Raw:        comment,
	}

	remaining := strings.TrimSpace(strings.TrimPrefix(text, fields[0]))

	if schema.TakesExpr {
		if remaining == "" {
			return nil, fmt.Errorf("%s marker requires an expression", markerType)
		}
		parsed.Expression = remaining
		return parsed, nil
	}

	if remaining == "" {
		return parsed, nil
	}

	args, err := p.args.ParseString(location.File, remaining)
	if err != nil {
		return nil, fmt.Errorf("invalid %s marker arguments: %w", markerType, err)
	}

	for _, item := range args.Items {
		spec, ok := schema.Parameters[item.Name]
		if !ok {
			return nil, fmt.Errorf("unknown parameter '-%s' for %s marker", item.Name, markerType)
		}
		if spec.Flag {
			if item.Value != nil {
				return nil, fmt.Errorf("flag '-%s' does not take a value", item.Name)
			}
			parsed.Flags[item.Name] = true
			continue
		}
		if item.Value == nil {
			return nil, fmt.Errorf("parameter '-%s' requires a value", item.Name)
		}
		parsed.Parameters[item.Name] = splitCommaValues(*item.Value)
	}

	return parsed, nil
}

// splitCommaValues splits a comma-separated parameter value, dropping empty
// entries.
func splitCommaValues(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
