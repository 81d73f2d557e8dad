// Package emitter renders structural plans into Go source and writes the
// resulting output units. It is the only component that deals in text: the
// engine hands it a fully-resolved plan and never sees the rendering.
package emitter

import (
	"fmt"
	"strings"

	"github.com/tobrun/data-compat/internal/models"
	"github.com/tobrun/data-compat/internal/utils"
)

// GeneratedHeader marks every output unit. The cleaner and the skip-unchanged
// check both key on it, so it must stay byte-stable.
const GeneratedHeader = "// Code generated by datacompat. DO NOT EDIT."

// Renderer turns a Plan into the text of one output unit
type Renderer struct{}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the complete output unit for a plan. Members appear in a
// fixed order so regenerating an unchanged plan yields byte-identical text.
func (r *Renderer) Render(plan *models.Plan) (*models.GeneratedUnit, error) {
	var b strings.Builder

	b.WriteString(GeneratedHeader + "\n\n")
	fmt.Fprintf(&b, "package %s\n\n", plan.PackageName)

	if imports := r.renderImports(plan); imports != "" {
		b.WriteString(imports + "\n")
	}

	r.renderCapabilityAsserts(&b, plan)
	r.renderType(&b, plan)
	r.renderConstructor(&b, plan)
	r.renderGetters(&b, plan)
	r.renderString(&b, plan)
	r.renderEqual(&b, plan)
	r.renderHash(&b, plan)
	r.renderToBuilder(&b, plan)
	r.renderBuilder(&b, plan)
	r.renderStatics(&b, plan)
	r.renderFactory(&b, plan)

	formatted, err := utils.FormatGeneratedSource(plan.OutputFile, b.String())
	if err != nil {
		return nil, err
	}

	return &models.GeneratedUnit{
		PackageName: plan.PackageName,
		FilePath:    plan.OutputFile,
		Content:     formatted,
	}, nil
}

func (r *Renderer) renderImports(plan *models.Plan) string {
	im := NewImportManager()
	im.Add("strings")
	im.Add(RuntimeImportPath)
	im.AddAll(plan.ExtraImports)
	for _, capability := range plan.Capabilities {
		im.Add(capability.ImportPath)
	}
	return im.Render()
}

func (r *Renderer) renderCapabilityAsserts(b *strings.Builder, plan *models.Plan) {
	for _, capability := range plan.Capabilities {
		fmt.Fprintf(b, "var _ %s = (*%s)(nil)\n", capability.Expr, plan.OutputName)
	}
	if len(plan.Capabilities) > 0 {
		b.WriteString("\n")
	}
}

func (r *Renderer) renderType(b *strings.Builder, plan *models.Plan) {
	for _, directive := range plan.PassThrough {
		b.WriteString(directive + "\n")
	}
	writeDoc(b, "", r.typeDoc(plan))
	fmt.Fprintf(b, "type %s struct {\n", plan.OutputName)
	for i, property := range plan.Properties {
		if i > 0 {
			b.WriteString("\n")
		}
		writeDoc(b, "\t", property.Doc)
		fmt.Fprintf(b, "\t%s %s\n", property.Name, property.Type.Code)
	}
	b.WriteString("}\n\n")
}

// typeDoc carries the candidate's documentation over to the output type,
// renaming references to the candidate along the way.
func (r *Renderer) typeDoc(plan *models.Plan) string {
	doc := strings.ReplaceAll(plan.Doc, plan.SourceName, plan.OutputName)
	if doc == "" {
		doc = fmt.Sprintf("%s is an immutable value synthesized from %s.", plan.OutputName, plan.SourceName)
	}
	return doc
}

func (r *Renderer) renderConstructor(b *strings.Builder, plan *models.Plan) {
	ctor := constructorName(plan.OutputName)
	fmt.Fprintf(b, "// %s constructs a %s from every property in declaration order.\n", ctor, plan.OutputName)
	fmt.Fprintf(b, "func %s(%s) %s {\n", ctor, parameterList(plan.Properties), plan.OutputName)
	fmt.Fprintf(b, "\treturn %s{\n", plan.OutputName)
	for _, property := range plan.Properties {
		fmt.Fprintf(b, "\t\t%s: %s,\n", property.Name, property.Name)
	}
	b.WriteString("\t}\n}\n\n")
}

func (r *Renderer) renderGetters(b *strings.Builder, plan *models.Plan) {
	for _, property := range plan.Properties {
		getter := getterName(property)
		fmt.Fprintf(b, "// %s returns the %s property.\n", getter, property.Name)
		fmt.Fprintf(b, "func (v %s) %s() %s {\n", plan.OutputName, getter, property.Type.Code)
		fmt.Fprintf(b, "\treturn v.%s\n", property.Name)
		b.WriteString("}\n\n")
	}
}

func (r *Renderer) renderString(b *strings.Builder, plan *models.Plan) {
	fmt.Fprintf(b, "// String returns a stable multi-line representation of the value.\n")
	fmt.Fprintf(b, "func (v %s) String() string {\n", plan.OutputName)
	b.WriteString("\tvar b strings.Builder\n")
	fmt.Fprintf(b, "\tb.WriteString(%q)\n", plan.OutputName+"(\n")
	for _, property := range plan.Properties {
		helper := "datacompat.FormatValue"
		if property.Format == models.FormatNullable {
			helper = "datacompat.FormatPtr"
		}
		fmt.Fprintf(b, "\tb.WriteString(%q + %s(v.%s) + \"\\n\")\n", "  "+property.Name+"=", helper, property.Name)
	}
	b.WriteString("\tb.WriteString(\")\")\n")
	b.WriteString("\treturn b.String()\n}\n\n")
}

func (r *Renderer) renderEqual(b *strings.Builder, plan *models.Plan) {
	fmt.Fprintf(b, "// Equal reports whether other is a %s whose properties are pairwise equal.\n", plan.OutputName)
	fmt.Fprintf(b, "func (v %s) Equal(other any) bool {\n", plan.OutputName)
	fmt.Fprintf(b, "\to, ok := other.(%s)\n", plan.OutputName)
	b.WriteString("\tif !ok {\n\t\treturn false\n\t}\n")
	for _, property := range plan.Properties {
		fmt.Fprintf(b, "\tif %s {\n\t\treturn false\n\t}\n", inequalityExpr(property))
	}
	b.WriteString("\treturn true\n}\n\n")
}

// inequalityExpr renders the per-property mismatch test used by Equal
func inequalityExpr(property models.PropertyPlan) string {
	name := property.Name
	switch property.Equality {
	case models.EqualFloat:
		return fmt.Sprintf("datacompat.CompareFloat(v.%s, o.%s) != 0", name, name)
	case models.EqualFloatNull:
		return fmt.Sprintf("datacompat.CompareFloat(datacompat.ZeroIfNil(v.%s), datacompat.ZeroIfNil(o.%s)) != 0", name, name)
	case models.EqualNullable:
		return fmt.Sprintf("!datacompat.EqualPtr(v.%s, o.%s)", name, name)
	default:
		return fmt.Sprintf("v.%s != o.%s", name, name)
	}
}

func (r *Renderer) renderHash(b *strings.Builder, plan *models.Plan) {
	b.WriteString("// Hash combines every property's hash in declaration order.\n")
	fmt.Fprintf(b, "func (v %s) Hash() uint64 {\n", plan.OutputName)
	b.WriteString("\th := datacompat.HashSeed()\n")
	for _, property := range plan.Properties {
		fmt.Fprintf(b, "\th = datacompat.CombineHash(h, %s)\n", hashExpr(property))
	}
	b.WriteString("\treturn h\n}\n\n")
}

// hashExpr renders the per-property hash used by Hash. The helper choice
// mirrors the equality policy so equal values always hash equal.
func hashExpr(property models.PropertyPlan) string {
	name := property.Name
	switch property.Hashing {
	case models.HashFloating:
		return fmt.Sprintf("datacompat.HashFloat(v.%s)", name)
	case models.HashFloatingNull:
		return fmt.Sprintf("datacompat.HashFloatPtr(v.%s)", name)
	case models.HashNullable:
		return fmt.Sprintf("datacompat.HashPtr(v.%s)", name)
	default:
		return fmt.Sprintf("datacompat.HashValue(v.%s)", name)
	}
}

func (r *Renderer) renderToBuilder(b *strings.Builder, plan *models.Plan) {
	fmt.Fprintf(b, "// ToBuilder returns a %s seeded with the value's current properties.\n", plan.BuilderName)
	fmt.Fprintf(b, "func (v %s) ToBuilder() *%s {\n", plan.OutputName, plan.BuilderName)
	fmt.Fprintf(b, "\tb := New%s(%s)\n", plan.BuilderName, argumentList(plan.MandatoryProperties(), "v."))
	for _, property := range plan.DefaultedProperties() {
		fmt.Fprintf(b, "\tb.%s(v.%s)\n", property.SetterName, property.Name)
	}
	b.WriteString("\treturn b\n}\n\n")
}

func (r *Renderer) renderBuilder(b *strings.Builder, plan *models.Plan) {
	fmt.Fprintf(b, "// %s assembles a %s property by property. Every property is\n", plan.BuilderName, plan.OutputName)
	b.WriteString("// re-settable until Build is called.\n")
	fmt.Fprintf(b, "type %s struct {\n", plan.BuilderName)
	for _, property := range plan.Properties {
		fmt.Fprintf(b, "\t%s %s\n", property.Name, property.Type.Code)
	}
	b.WriteString("}\n\n")

	fmt.Fprintf(b, "// New%s creates a builder seeded with every mandatory property.\n", plan.BuilderName)
	fmt.Fprintf(b, "func New%s(%s) *%s {\n", plan.BuilderName, parameterList(plan.MandatoryProperties()), plan.BuilderName)
	fmt.Fprintf(b, "\treturn &%s{\n", plan.BuilderName)
	for _, property := range plan.Properties {
		switch {
		case property.Mandatory:
			fmt.Fprintf(b, "\t\t%s: %s,\n", property.Name, property.Name)
		case property.DefaultExpr != "":
			fmt.Fprintf(b, "\t\t%s: %s,\n", property.Name, property.DefaultExpr)
		}
	}
	b.WriteString("\t}\n}\n\n")

	for _, property := range plan.Properties {
		fmt.Fprintf(b, "// %s sets the %s property.\n", property.SetterName, property.Name)
		fmt.Fprintf(b, "func (b *%s) %s(%s %s) *%s {\n",
			plan.BuilderName, property.SetterName, property.Name, property.Type.Code, plan.BuilderName)
		fmt.Fprintf(b, "\tb.%s = %s\n", property.Name, property.Name)
		b.WriteString("\treturn b\n}\n\n")
	}

	fmt.Fprintf(b, "// Build constructs the %s from the builder's current properties.\n", plan.OutputName)
	fmt.Fprintf(b, "func (b *%s) Build() %s {\n", plan.BuilderName, plan.OutputName)
	fmt.Fprintf(b, "\treturn %s(%s)\n", constructorName(plan.OutputName), argumentList(plan.Properties, "b."))
	b.WriteString("}\n\n")
}

func (r *Renderer) renderStatics(b *strings.Builder, plan *models.Plan) {
	if plan.StaticsName == "" {
		return
	}
	fmt.Fprintf(b, "// %s is a namespace hook for future %s-scoped members.\n", plan.StaticsName, plan.OutputName)
	fmt.Fprintf(b, "type %s struct{}\n\n", plan.StaticsName)
}

func (r *Renderer) renderFactory(b *strings.Builder, plan *models.Plan) {
	mandatory := plan.MandatoryProperties()
	params := parameterList(mandatory)
	if params != "" {
		params += ", "
	}
	fmt.Fprintf(b, "// %s builds a %s from its mandatory properties, letting configure\n", plan.FactoryName, plan.OutputName)
	b.WriteString("// adjust the remaining ones. A nil configure applies no adjustments.\n")
	fmt.Fprintf(b, "func %s(%sconfigure func(*%s)) %s {\n", plan.FactoryName, params, plan.BuilderName, plan.OutputName)
	fmt.Fprintf(b, "\tb := New%s(%s)\n", plan.BuilderName, argumentList(mandatory, ""))
	b.WriteString("\tif configure != nil {\n\t\tconfigure(b)\n\t}\n")
	b.WriteString("\treturn b.Build()\n}\n")
}

// writeDoc writes a doc comment, one comment line per text line
func writeDoc(b *strings.Builder, indent, doc string) {
	for _, line := range strings.Split(doc, "\n") {
		if line == "" {
			fmt.Fprintf(b, "%s//\n", indent)
			continue
		}
		fmt.Fprintf(b, "%s// %s\n", indent, line)
	}
}

// constructorName derives the unexported constructor from the output name
func constructorName(outputName string) string {
	return "new" + outputName
}

// getterName derives the exported accessor from a property's setter name
func getterName(property models.PropertyPlan) string {
	return strings.TrimPrefix(property.SetterName, "Set")
}

func parameterList(properties []models.PropertyPlan) string {
	params := make([]string, len(properties))
	for i, property := range properties {
		params[i] = property.Name + " " + property.Type.Code
	}
	return strings.Join(params, ", ")
}

func argumentList(properties []models.PropertyPlan, receiver string) string {
	args := make([]string, len(properties))
	for i, property := range properties {
		args[i] = receiver + property.Name
	}
	return strings.Join(args, ", ")
}
