package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/tobrun/data-compat/internal/errors"
)

// DiagnosticReporter provides user-friendly error reporting and diagnostics
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
}

// NewDiagnosticReporter creates a new diagnostic reporter
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		out:     os.Stderr,
	}
}

// ReportWarning provides user-friendly warning reporting
func (r *DiagnosticReporter) ReportWarning(message string) {
	yellow := color.New(color.FgYellow, color.Bold)
	yellow.Fprint(r.out, "! ")
	fmt.Fprintf(r.out, "%s\n", message)
}

// ReportError provides comprehensive error reporting with user-friendly output
func (r *DiagnosticReporter) ReportError(err error) {
	fmt.Fprintf(r.out, "\nERROR: Synthesis Failed\n")
	fmt.Fprintf(r.out, "=======================\n\n")

	if compatErr := r.findCompatError(err); compatErr != nil {
		r.reportCompatError(compatErr)
	} else {
		r.reportBasicError(err)
	}

	fmt.Fprintf(r.out, "\n")
}

// reportCompatError reports an error carrying the full taxonomy metadata
func (r *DiagnosticReporter) reportCompatError(compatErr errors.CompatError) {
	r.printErrorHeader(compatErr.ErrorCode())

	fmt.Fprintf(r.out, "Message: %s\n\n", compatErr.Error())

	if r.verbose && compatErr.Unwrap() != nil {
		fmt.Fprintf(r.out, "Underlying cause: %s\n\n", compatErr.Unwrap().Error())
	}

	if loc := compatErr.Location(); !loc.IsEmpty() {
		fmt.Fprintf(r.out, "Location: %s\n\n", loc.String())
	}

	if context := compatErr.Context(); len(context) > 0 {
		r.printContext(context)
	}

	if suggestions := compatErr.Suggestions(); len(suggestions) > 0 {
		r.printSuggestions(suggestions)
	}

	r.printAdditionalHelp(compatErr.ErrorCode())

	if r.verbose {
		r.printErrorChain(compatErr)
	}
}

// reportBasicError reports a basic error without rich context
func (r *DiagnosticReporter) reportBasicError(err error) {
	fmt.Fprintf(r.out, "Message: %s\n\n", err.Error())

	errorMsg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errorMsg, "marker"):
		fmt.Fprintf(r.out, "This appears to be a marker-related issue.\n")
		fmt.Fprintf(r.out, "Common solutions:\n")
		fmt.Fprintf(r.out, "  - Check your //datacompat:: marker syntax\n")
		fmt.Fprintf(r.out, "  - Ensure the data marker sits in the type's doc comment\n")
		fmt.Fprintf(r.out, "  - Ensure default markers sit directly above their field\n\n")
	case strings.Contains(errorMsg, "module"):
		fmt.Fprintf(r.out, "This appears to be a module-related issue.\n")
		fmt.Fprintf(r.out, "Common solutions:\n")
		fmt.Fprintf(r.out, "  - Check your go.mod file\n")
		fmt.Fprintf(r.out, "  - Try specifying --module flag explicitly\n\n")
	}
}

// printErrorHeader prints a formatted error header based on error code
func (r *DiagnosticReporter) printErrorHeader(code errors.ErrorCode) {
	var header string
	switch code {
	case errors.SyntaxErrorCode:
		header = "Marker Syntax Error"
	case errors.RejectionErrorCode:
		header = "Candidate Rejected"
	case errors.DeferralErrorCode:
		header = "Unresolved Symbol"
	case errors.CollisionErrorCode:
		header = "Default Marker Collision"
	case errors.EngineDefectErrorCode:
		header = "Engine Invariant Violation"
	case errors.EmissionErrorCode:
		header = "Emission Error"
	case errors.FileSystemErrorCode:
		header = "File System Error"
	case errors.ConfigurationErrorCode:
		header = "Configuration Error"
	default:
		header = "Unknown Error"
	}

	fmt.Fprintf(r.out, "Type: %s\n", header)
	fmt.Fprintf(r.out, "%s\n\n", strings.Repeat("-", len(header)+6))
}

// printContext prints context information in a readable format
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	fmt.Fprintf(r.out, "Context:\n")

	// Print important context items first
	importantKeys := []string{"candidate", "property", "symbol", "owner", "output_unit"}
	printed := make(map[string]bool)

	for _, key := range importantKeys {
		if value, exists := context[key]; exists {
			fmt.Fprintf(r.out, "   %s: %v\n", r.formatContextKey(key), value)
			printed[key] = true
		}
	}

	for key, value := range context {
		if !printed[key] {
			fmt.Fprintf(r.out, "   %s: %v\n", r.formatContextKey(key), value)
		}
	}

	fmt.Fprintf(r.out, "\n")
}

// formatContextKey formats context keys to be more readable
func (r *DiagnosticReporter) formatContextKey(key string) string {
	switch key {
	case "candidate":
		return "Candidate"
	case "property":
		return "Property"
	case "symbol":
		return "Symbol"
	case "owner":
		return "Owner"
	case "output_unit":
		return "Output Unit"
	default:
		// Convert snake_case to Title Case
		parts := strings.Split(key, "_")
		for i, part := range parts {
			if len(part) > 0 {
				parts[i] = strings.ToUpper(part[:1]) + part[1:]
			}
		}
		return strings.Join(parts, " ")
	}
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.out, "Suggestions:\n")
	for i, suggestion := range suggestions {
		lines := strings.Split(suggestion, "\n")
		fmt.Fprintf(r.out, "   %d. %s\n", i+1, lines[0])
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(r.out, "      %s\n", line)
			}
		}
	}
	fmt.Fprintf(r.out, "\n")
}

// printAdditionalHelp prints additional help based on error code
func (r *DiagnosticReporter) printAdditionalHelp(code errors.ErrorCode) {
	switch code {
	case errors.RejectionErrorCode:
		fmt.Fprintf(r.out, "Candidate Requirements:\n")
		fmt.Fprintf(r.out, "  - Must be an unexported plain struct type\n")
		fmt.Fprintf(r.out, "  - Must not declare type parameters\n")
		fmt.Fprintf(r.out, "  - Name must end in 'Data' with a non-empty stem\n\n")

	case errors.DeferralErrorCode:
		fmt.Fprintf(r.out, "Resolving Unresolved Symbols:\n")
		fmt.Fprintf(r.out, "  - Embedded types must be declared in a scanned package\n")
		fmt.Fprintf(r.out, "  - External interfaces belong in -Implements, not embeds\n")
		fmt.Fprintf(r.out, "  - Include the defining package in the scan patterns\n\n")

	case errors.SyntaxErrorCode:
		fmt.Fprintf(r.out, "Marker Syntax Help:\n")
		fmt.Fprintf(r.out, "  - Markers must start with //datacompat::\n")
		fmt.Fprintf(r.out, "  - Flags: -Hook; parameters: -Import=a,b -Implements=x.Y\n")
		fmt.Fprintf(r.out, "  - Default markers carry the expression to end of line\n\n")
	}

	fmt.Fprintf(r.out, "For more help:\n")
	fmt.Fprintf(r.out, "  - Run with --verbose for more detailed output\n")
	fmt.Fprintf(r.out, "  - Review example candidates in the examples/ directory\n")
}

// findCompatError walks the wrap chain for the first taxonomy error
func (r *DiagnosticReporter) findCompatError(err error) errors.CompatError {
	for err != nil {
		if compatErr, ok := err.(errors.CompatError); ok {
			return compatErr
		}
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			err = unwrapper.Unwrap()
			continue
		}
		return nil
	}
	return nil
}

// printErrorChain prints the full unwrap chain in verbose mode
func (r *DiagnosticReporter) printErrorChain(compatErr errors.CompatError) {
	cause := compatErr.Unwrap()
	if cause == nil {
		return
	}

	fmt.Fprintf(r.out, "Error Chain:\n")
	level := 1
	for cause != nil {
		fmt.Fprintf(r.out, "  %d. %s\n", level, cause.Error())
		if unwrapper, ok := cause.(interface{ Unwrap() error }); ok {
			cause = unwrapper.Unwrap()
			level++
		} else {
			break
		}
	}
	fmt.Fprintf(r.out, "\n")
}

// ReportSuccess reports a completed run with summary information
func (r *DiagnosticReporter) ReportSuccess(summary RunSummary) {
	fmt.Printf("\nSynthesis Completed Successfully!\n")
	fmt.Printf("=================================\n\n")

	if summary.PackagesProcessed > 0 {
		fmt.Printf("Processed %d packages\n", summary.PackagesProcessed)
	}
	if summary.TypesSynthesized > 0 {
		fmt.Printf("Synthesized %d types\n", summary.TypesSynthesized)
	}
	if summary.Rounds > 0 {
		fmt.Printf("Completed in %d round(s)\n", summary.Rounds)
	}
	if len(summary.GeneratedFiles) > 0 {
		fmt.Printf("\nGenerated files:\n")
		for _, file := range summary.GeneratedFiles {
			fmt.Printf("  - %s\n", file)
		}
	}
}

// RunSummary contains information about a synthesis run
type RunSummary struct {
	PackagesProcessed int
	TypesSynthesized  int
	Rounds            int
	GeneratedFiles    []string
}
