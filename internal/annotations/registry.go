package annotations

import "fmt"

// MarkerRegistry holds the schemas for every recognized marker type
type MarkerRegistry interface {
	GetSchema(markerType MarkerType) (MarkerSchema, error)
	IsRegistered(markerType MarkerType) bool
}

type markerRegistry struct {
	schemas map[MarkerType]MarkerSchema
}

// NewMarkerRegistry creates a registry pre-loaded with the built-in schemas
func NewMarkerRegistry() MarkerRegistry {
	return &markerRegistry{
		schemas: map[MarkerType]MarkerSchema{
			DataMarker: {
				Type:        DataMarker,
				Description: "marks an unexported *Data struct for value-type synthesis",
				Parameters: map[string]ParameterSpec{
					"Hook":       {Description: "emit an inert statics holder on the output type", Flag: true},
					"Import":     {Description: "extra import directives for the generated file"},
					"Implements": {Description: "interfaces asserted on the output type"},
				},
				Examples: []string{
					"//datacompat::data",
					"//datacompat::data -Hook",
					"//datacompat::data -Import=time,net/url -Implements=fmt.Stringer",
				},
			},
			DefaultMarker: {
				Type:        DefaultMarker,
				Description: "registers a default expression for the owning property",
				TakesExpr:   true,
				Examples: []string{
					"//datacompat::default 42",
					`//datacompat::default "unknown"`,
				},
			},
		},
	}
}

// GetSchema returns the schema for a marker type
func (r *markerRegistry) GetSchema(markerType MarkerType) (MarkerSchema, error) {
	schema, ok := r.schemas[markerType]
	if !ok {
		return MarkerSchema{}, fmt.Errorf("no schema registered for marker type %s", markerType)
	}
	return schema, nil
}

// IsRegistered checks whether a marker type has a schema
func (r *markerRegistry) IsRegistered(markerType MarkerType) bool {
	_, ok := r.schemas[markerType]
	return ok
}
