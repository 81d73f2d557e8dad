package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_DataMarker(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name           string
		comment        string
		wantFlags      map[string]bool
		wantParameters map[string][]string
		expectError    bool
	}{
		{
			name:    "bare data marker",
			comment: "//datacompat::data",
		},
		{
			name:      "hook flag",
			comment:   "//datacompat::data -Hook",
			wantFlags: map[string]bool{"Hook": true},
		},
		{
			name:    "imports parameter with comma values",
			comment: "//datacompat::data -Import=time,net/url",
			wantParameters: map[string][]string{
				"Import": {"time", "net/url"},
			},
		},
		{
			name:      "combined flags and parameters",
			comment:   "//datacompat::data -Hook -Implements=fmt.Stringer,io.Closer",
			wantFlags: map[string]bool{"Hook": true},
			wantParameters: map[string][]string{
				"Implements": {"fmt.Stringer", "io.Closer"},
			},
		},
		{
			name:    "leading whitespace tolerated",
			comment: "  // datacompat::data -Hook",
			wantFlags: map[string]bool{
				"Hook": true,
			},
		},
		{
			name:        "unknown parameter",
			comment:     "//datacompat::data -Frobnicate=1",
			expectError: true,
		},
		{
			name:        "flag with value",
			comment:     "//datacompat::data -Hook=yes",
			expectError: true,
		},
		{
			name:        "value parameter without value",
			comment:     "//datacompat::data -Import",
			expectError: true,
		},
		{
			name:        "unknown marker type",
			comment:     "//datacompat::widget",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := parser.Parse(tt.comment, SourceLocation{File: "test.go", Line: 1})
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, DataMarker, parsed.Type)
			for flag := range tt.wantFlags {
				assert.True(t, parsed.HasFlag(flag), flag)
			}
			for param, want := range tt.wantParameters {
				assert.Equal(t, want, parsed.GetStringSlice(param), param)
			}
		})
	}
}

func TestParser_DefaultMarker(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name        string
		comment     string
		wantExpr    string
		expectError bool
	}{
		{
			name:     "numeric literal",
			comment:  "//datacompat::default 42",
			wantExpr: "42",
		},
		{
			name:     "string literal",
			comment:  `//datacompat::default "unknown"`,
			wantExpr: `"unknown"`,
		},
		{
			name:     "expression with spaces survives verbatim",
			comment:  "//datacompat::default time.Duration(5) * time.Second",
			wantExpr: "time.Duration(5) * time.Second",
		},
		{
			name:        "missing expression",
			comment:     "//datacompat::default",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := parser.Parse(tt.comment, SourceLocation{File: "test.go", Line: 7})
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, DefaultMarker, parsed.Type)
			assert.Equal(t, tt.wantExpr, parsed.Expression)
		})
	}
}

func TestIsMarker(t *testing.T) {
	assert.True(t, IsMarker("//datacompat::data"))
	assert.True(t, IsMarker("// datacompat::default 1"))
	assert.False(t, IsMarker("// just a comment"))
	assert.False(t, IsMarker("//go:generate datacompat ./..."))
}

func TestMarkerRegistry(t *testing.T) {
	registry := NewMarkerRegistry()

	assert.True(t, registry.IsRegistered(DataMarker))
	assert.True(t, registry.IsRegistered(DefaultMarker))

	schema, err := registry.GetSchema(DataMarker)
	require.NoError(t, err)
	assert.Contains(t, schema.Parameters, "Hook")
	assert.Contains(t, schema.Parameters, "Import")
	assert.Contains(t, schema.Parameters, "Implements")
	assert.False(t, schema.TakesExpr)

	defSchema, err := registry.GetSchema(DefaultMarker)
	require.NoError(t, err)
	assert.True(t, defSchema.TakesExpr)
}
