package models

// PropertyPlan is one property of a structural plan, carrying everything the
// emitter needs to render the property's field, constructor parameter,
// builder member, and its String/Equal/Hash treatment.
type PropertyPlan struct {
	Name        string
	Type        TypeExpr
	Doc         string
	Mandatory   bool
	DefaultExpr string // builder initializer; "" means zero value
	SetterName  string // fixed capitalize-first transform, name -> SetName

	Equality EqualKind
	Hashing  HashKind
	Format   FormatKind
}

// Plan is the engine's structural description of one output type. Building a
// Plan is a pure, total transformation of a validated, classified
// TypeDescriptor: it cannot fail, and building it twice from the same inputs
// yields an identical value. All textual concerns live in the emitter.
type Plan struct {
	PackageName string
	PackagePath string
	ImportPath  string // canonical import path; "" without module context
	SourceName  string // candidate's simple name
	OutputName  string
	BuilderName string
	StaticsName string // "" when the namespace hook is disabled
	FactoryName string
	OutputFile  string // file name of the output unit

	Doc          string
	PassThrough  []string
	Capabilities []CapabilityRef
	ExtraImports []string

	Properties []PropertyPlan // declaration order, preserved everywhere
}

// MandatoryProperties returns the constructor-mandatory properties in
// declaration order.
func (p *Plan) MandatoryProperties() []PropertyPlan {
	var out []PropertyPlan
	for _, prop := range p.Properties {
		if prop.Mandatory {
			out = append(out, prop)
		}
	}
	return out
}

// DefaultedProperties returns the builder-defaulted properties in
// declaration order.
func (p *Plan) DefaultedProperties() []PropertyPlan {
	var out []PropertyPlan
	for _, prop := range p.Properties {
		if !prop.Mandatory {
			out = append(out, prop)
		}
	}
	return out
}

// GeneratedUnit couples a rendered output unit with its destination.
type GeneratedUnit struct {
	PackageName string
	FilePath    string
	Content     string
}
