package errors

import (
	stderrors "errors"
	"fmt"
)

// Rejection creates a permanent, user-fixable input defect error. A rejected
// candidate is excluded from this and all future rounds.
func Rejection(candidate, reason string) *BaseError {
	return Newf(RejectionErrorCode, "candidate %s rejected: %s", candidate, reason).
		WithContext("candidate", candidate)
}

// Deferral creates a transient unresolvability error. Deferred candidates are
// re-queued for the next round without being reported.
func Deferral(candidate, symbol string) *BaseError {
	return Newf(DeferralErrorCode, "candidate %s deferred: unresolved symbol %s", candidate, symbol).
		WithContext("candidate", candidate).
		WithContext("symbol", symbol)
}

// Collision creates a duplicate default-marker error for one owner/property
// pair. Collisions are resolved last-write-wins and reported as warnings.
func Collision(owner, property string) *BaseError {
	return Newf(CollisionErrorCode, "duplicate default marker for %s.%s, keeping the later value", owner, property).
		WithContext("owner", owner).
		WithContext("property", property)
}

// EngineDefect creates an error for a violated engine invariant, such as a
// duplicate property name within one type. It aborts that type's synthesis.
func EngineDefect(candidate, invariant string) *BaseError {
	return Newf(EngineDefectErrorCode, "engine invariant violated for %s: %s", candidate, invariant).
		WithContext("candidate", candidate)
}

// WrapEmission wraps an I/O failure from the emission sink. Fatal for the
// single candidate, not for the round.
func WrapEmission(outputUnit string, cause error) *BaseError {
	return Wrapf(EmissionErrorCode, cause, "failed to emit output unit %s", outputUnit).
		WithContext("output_unit", outputUnit)
}

// WrapParse wraps an error with a "failed to parse" message
func WrapParse(item string, cause error) *BaseError {
	return Wrap(SyntaxErrorCode, fmt.Sprintf("failed to parse %s", item), cause)
}

// WrapFileSystem wraps file system related errors
func WrapFileSystem(operation, path string, cause error) *BaseError {
	return Wrap(FileSystemErrorCode, fmt.Sprintf("failed to %s file '%s'", operation, path), cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapConfiguration wraps configuration-related errors
func WrapConfiguration(item string, cause error) *BaseError {
	return Wrap(ConfigurationErrorCode, fmt.Sprintf("invalid configuration: %s", item), cause)
}

// IsDeferral reports whether err marks a candidate for retry in a later round.
func IsDeferral(err error) bool {
	return hasCode(err, DeferralErrorCode)
}

// IsRejection reports whether err marks a candidate as permanently rejected.
func IsRejection(err error) bool {
	return hasCode(err, RejectionErrorCode)
}

// IsEmissionFailure reports whether err came from the emission sink. Fatal
// for the candidate in the failing round, but not a permanent verdict.
func IsEmissionFailure(err error) bool {
	return hasCode(err, EmissionErrorCode)
}

func hasCode(err error, code ErrorCode) bool {
	for err != nil {
		if ce, ok := err.(CompatError); ok && ce.ErrorCode() == code {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}

// AddToMultiple adds an error to a MultipleErrors, creating it if nil
func AddToMultiple(multiple **MultipleErrors, err CompatError) {
	if *multiple == nil {
		*multiple = NewMultipleErrors()
	}
	(*multiple).Add(err)
}
