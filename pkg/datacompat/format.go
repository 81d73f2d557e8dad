package datacompat

import "fmt"

// FormatValue renders a property value for the generated String method.
func FormatValue(v any) string {
	return fmt.Sprintf("%v", v)
}

// FormatPtr renders a nullable property value, printing the pointee rather
// than the pointer so that structurally equal instances stringify
// identically. Absent values render as "null".
func FormatPtr[T any](p *T) string {
	if p == nil {
		return "null"
	}
	return fmt.Sprintf("%v", *p)
}
