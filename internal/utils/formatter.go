package utils

import (
	"fmt"
	"go/format"
	"go/parser"
	"go/token"

	"golang.org/x/tools/imports"
)

// FormatGeneratedSource formats a rendered output unit. It runs goimports
// processing first so imports the unit declares but never references (extra
// import directives feeding only default expressions, for instance) are
// pruned, and falls back to plain gofmt when import resolution is not
// possible. The filename is only used for relative import decisions.
func FormatGeneratedSource(filename, source string) (string, error) {
	processed, err := imports.Process(filename, []byte(source), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err == nil {
		return string(processed), nil
	}

	formatted, fmtErr := FormatGoCodeString(source)
	if fmtErr != nil {
		return "", fmt.Errorf("failed to format generated source %s: %w", filename, fmtErr)
	}
	return formatted, nil
}

// FormatGoCodeString formats Go source code from a string and returns a string
func FormatGoCodeString(source string) (string, error) {
	formatted, err := format.Source([]byte(source))
	if err != nil {
		// If formatting fails, try to parse to see if it's valid Go
		fset := token.NewFileSet()
		_, parseErr := parser.ParseFile(fset, "", source, parser.ParseComments)
		if parseErr != nil {
			return source, fmt.Errorf("invalid Go syntax: %w (format error: %v)", parseErr, err)
		}
		// If parsing works but formatting doesn't, return the original
		return source, err
	}
	return string(formatted), nil
}

// ValidateGoCode checks if the provided code is valid Go syntax
func ValidateGoCode(code string) error {
	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, "", code, parser.ParseComments)
	return err
}
