// Package engine turns validated candidate descriptors into structural
// plans. The engine is the semantic core: it owns eligibility, default
// classification, and the member layout of every synthesized type. It never
// renders text; that is the emitter's job.
package engine

import (
	"strings"
	"unicode"

	"github.com/tobrun/data-compat/internal/errors"
	"github.com/tobrun/data-compat/internal/models"
)

// Engine synthesizes a structural Plan from a candidate descriptor
type Engine struct {
	validator  *Validator
	classifier *Classifier
}

// NewEngine creates a new synthesis engine
func NewEngine() *Engine {
	return &Engine{
		validator:  NewValidator(),
		classifier: NewClassifier(),
	}
}

// Synthesize validates and classifies a candidate, then builds its Plan.
// The returned error is a rejection for ineligible candidates; plan
// construction itself cannot fail.
func (e *Engine) Synthesize(descriptor *models.TypeDescriptor, index *models.DefaultValueIndex) (*models.Plan, *errors.BaseError) {
	if err := e.validator.Validate(descriptor); err != nil {
		return nil, err
	}
	classified := e.classifier.Classify(descriptor, index)
	return e.buildPlan(classified), nil
}

// buildPlan lays out the output type's members. The same descriptor always
// produces a byte-identical plan: every derived name is a pure function of
// the input, and property order is the declaration order.
func (e *Engine) buildPlan(descriptor *models.TypeDescriptor) *models.Plan {
	outputName := descriptor.OutputName()

	plan := &models.Plan{
		PackageName: descriptor.PackageName,
		PackagePath: descriptor.PackagePath,
		ImportPath:  descriptor.ImportPath,
		SourceName:  descriptor.SimpleName,
		OutputName:  outputName,
		BuilderName: outputName + "Builder",
		FactoryName: "New" + outputName,
		OutputFile:  snakeCase(outputName) + "_gen.go",

		Doc:          descriptor.Doc,
		PassThrough:  append([]string(nil), descriptor.PassThrough...),
		Capabilities: append([]models.CapabilityRef(nil), descriptor.Capabilities...),
		ExtraImports: append([]string(nil), descriptor.ExtraImports...),
	}
	if descriptor.GenerateHook {
		plan.StaticsName = outputName + "Statics"
	}

	plan.Properties = make([]models.PropertyPlan, len(descriptor.Properties))
	for i, property := range descriptor.Properties {
		plan.Properties[i] = e.planProperty(property)
	}

	return plan
}

func (e *Engine) planProperty(property models.PropertyDescriptor) models.PropertyPlan {
	return models.PropertyPlan{
		Name:        property.Name,
		Type:        property.Type,
		Doc:         property.Documentation(),
		Mandatory:   property.Mandatory(),
		DefaultExpr: property.DefaultExpr,
		SetterName:  setterName(property.Name),
		Equality:    equalityKind(property.Type),
		Hashing:     hashKind(property.Type),
		Format:      formatKind(property.Type),
	}
}

// equalityKind selects the comparison policy. Floating-point properties use
// a total order so that NaN-bearing values still satisfy reflexivity, and
// nullable floats treat nil as the canonical zero.
func equalityKind(t models.TypeExpr) models.EqualKind {
	switch {
	case t.IsFloat() && t.Nullable:
		return models.EqualFloatNull
	case t.IsFloat():
		return models.EqualFloat
	case t.Nullable:
		return models.EqualNullable
	default:
		return models.EqualOp
	}
}

// hashKind mirrors equalityKind so equal values always hash equal
func hashKind(t models.TypeExpr) models.HashKind {
	switch {
	case t.IsFloat() && t.Nullable:
		return models.HashFloatingNull
	case t.IsFloat():
		return models.HashFloating
	case t.Nullable:
		return models.HashNullable
	default:
		return models.HashPlain
	}
}

func formatKind(t models.TypeExpr) models.FormatKind {
	if t.Nullable {
		return models.FormatNullable
	}
	return models.FormatPlain
}

// setterName derives the builder setter from a property name by a fixed
// capitalize-first transform, never by any locale-aware casing.
func setterName(property string) string {
	if property == "" {
		return "Set"
	}
	return "Set" + strings.ToUpper(property[:1]) + property[1:]
}

// snakeCase converts an exported type name to its snake_case file stem
func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
