package engine

import (
	"github.com/tobrun/data-compat/internal/models"
)

// Classifier joins a validated candidate with the round's default-value
// index. After classification every property carries its default expression
// inline and the descriptor no longer depends on the index.
type Classifier struct{}

// NewClassifier creates a new property classifier
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify fills each property's DefaultExpr from the index. The result is a
// copy; the input descriptor is not mutated. Index entries with no matching
// property are left behind without diagnostics, the same way defaults on
// unmarked types are.
//
// Mandatory status is not computed here: it is a derived judgement of the
// classified property (no default and non-nullable) and stays a method on
// PropertyDescriptor so it can never drift from its inputs.
func (c *Classifier) Classify(descriptor *models.TypeDescriptor, index *models.DefaultValueIndex) *models.TypeDescriptor {
	classified := *descriptor
	classified.Properties = make([]models.PropertyDescriptor, len(descriptor.Properties))
	owner := models.OwnerKey(descriptor.PackagePath, descriptor.SimpleName)

	for i, property := range descriptor.Properties {
		if expr, ok := index.Lookup(owner, property.Name); ok {
			property.DefaultExpr = expr
		}
		classified.Properties[i] = property
	}

	return &classified
}
