package engine

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/tobrun/data-compat/internal/errors"
	"github.com/tobrun/data-compat/internal/models"
)

// Validator decides whether a marked candidate is eligible for synthesis.
// Every violation is a permanent rejection: a rejected candidate is excluded
// from this and all later rounds, never deferred.
type Validator struct{}

// NewValidator creates a new candidate validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks a candidate against the eligibility rules and returns a
// rejection error for the first violated rule. The rules are checked in a
// fixed order so a candidate with several defects always reports the same
// one:
//
//  1. the candidate has a resolvable qualified name
//  2. the candidate is a plain struct declaration
//  3. the candidate's name is unexported
//  4. the candidate declares no type parameters
//  5. the candidate's name carries the marker suffix, with a non-empty stem
//  6. every property name is unexported
//  7. every property type supports the == operator
func (v *Validator) Validate(descriptor *models.TypeDescriptor) *errors.BaseError {
	name := descriptor.QualifiedName()
	if name == "" {
		return v.reject(descriptor, "candidate has no resolvable qualified name")
	}
	if descriptor.Kind != models.KindStruct {
		return v.reject(descriptor, fmt.Sprintf("candidate must be a struct, found %s", descriptor.Kind))
	}
	if v.isExported(descriptor.SimpleName) {
		return v.reject(descriptor,
			fmt.Sprintf("candidate %s must be unexported; the synthesized type takes the exported name", descriptor.SimpleName))
	}
	if descriptor.TypeParams {
		return v.reject(descriptor, "candidates with type parameters are not supported")
	}
	if !strings.HasSuffix(descriptor.SimpleName, models.MarkerSuffix) || descriptor.OutputName() == "" {
		return v.reject(descriptor,
			fmt.Sprintf("candidate name must end in %q with a non-empty stem", models.MarkerSuffix))
	}
	for _, property := range descriptor.Properties {
		if v.isExported(property.Name) {
			return v.reject(descriptor,
				fmt.Sprintf("property %s must be unexported; the exported name is taken by its accessor", property.Name))
		}
	}
	for _, property := range descriptor.Properties {
		if property.Type.NonComparable {
			return v.reject(descriptor,
				fmt.Sprintf("property %s has non-comparable type %s; equality cannot be synthesized", property.Name, property.Type.Code))
		}
	}
	return nil
}

func (v *Validator) reject(descriptor *models.TypeDescriptor, reason string) *errors.BaseError {
	subject := descriptor.QualifiedName()
	if subject == "" {
		subject = descriptor.SimpleName
	}
	return errors.Rejection(subject, reason).WithLocation(errors.SourceLocation{
		File: descriptor.FileName,
		Line: descriptor.Line,
	})
}

func (v *Validator) isExported(name string) bool {
	if name == "" {
		return false
	}
	return unicode.IsUpper(rune(name[0]))
}
