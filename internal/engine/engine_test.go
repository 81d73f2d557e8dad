package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobrun/data-compat/internal/models"
)

func personDescriptor() *models.TypeDescriptor {
	return &models.TypeDescriptor{
		SimpleName:  "personData",
		PackageName: "person",
		PackagePath: "./person",
		Kind:        models.KindStruct,
		Doc:         "personData describes a person record.",
		Properties: []models.PropertyDescriptor{
			{Name: "name", Type: models.TypeExpr{Code: "string"}},
			{Name: "nickname", Type: models.TypeExpr{Code: "*string", Nullable: true}},
			{Name: "age", Type: models.TypeExpr{Code: "int"}},
			{Name: "balance", Type: models.TypeExpr{Code: "float64", FloatBits: 64}},
		},
		GenerateHook: true,
		FileName:     "person.go",
		Line:         5,
	}
}

func TestEngine_SynthesizePlanLayout(t *testing.T) {
	engine := NewEngine()
	index := models.NewDefaultValueIndex()
	index.Register(models.OwnerKey("./person", "personData"), "age", "21")

	plan, err := engine.Synthesize(personDescriptor(), index)
	require.Nil(t, err)

	assert.Equal(t, "personData", plan.SourceName)
	assert.Equal(t, "Person", plan.OutputName)
	assert.Equal(t, "PersonBuilder", plan.BuilderName)
	assert.Equal(t, "PersonStatics", plan.StaticsName)
	assert.Equal(t, "NewPerson", plan.FactoryName)
	assert.Equal(t, "person_gen.go", plan.OutputFile)

	require.Len(t, plan.Properties, 4)
	assert.Equal(t, "SetName", plan.Properties[0].SetterName)
	assert.Equal(t, "SetNickname", plan.Properties[1].SetterName)
	assert.Equal(t, "21", plan.Properties[2].DefaultExpr)
}

func TestEngine_NoHookMeansNoStatics(t *testing.T) {
	engine := NewEngine()
	descriptor := personDescriptor()
	descriptor.GenerateHook = false

	plan, err := engine.Synthesize(descriptor, models.NewDefaultValueIndex())
	require.Nil(t, err)
	assert.Empty(t, plan.StaticsName)
}

func TestEngine_MandatoryClassification(t *testing.T) {
	tests := []struct {
		name      string
		typ       models.TypeExpr
		defaulted bool
		mandatory bool
	}{
		{"no default, non-nullable", models.TypeExpr{Code: "string"}, false, true},
		{"default, non-nullable", models.TypeExpr{Code: "string"}, true, false},
		{"no default, nullable", models.TypeExpr{Code: "*string", Nullable: true}, false, false},
		{"default, nullable", models.TypeExpr{Code: "*string", Nullable: true}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			descriptor := &models.TypeDescriptor{
				SimpleName:  "itemData",
				PackageName: "item",
				PackagePath: "./item",
				Kind:        models.KindStruct,
				Properties: []models.PropertyDescriptor{
					{Name: "value", Type: tt.typ},
				},
			}
			index := models.NewDefaultValueIndex()
			if tt.defaulted {
				index.Register(models.OwnerKey("./item", "itemData"), "value", `"fallback"`)
			}

			plan, err := NewEngine().Synthesize(descriptor, index)
			require.Nil(t, err)
			assert.Equal(t, tt.mandatory, plan.Properties[0].Mandatory)
		})
	}
}

func TestEngine_ComparisonPolicies(t *testing.T) {
	tests := []struct {
		name     string
		typ      models.TypeExpr
		equality models.EqualKind
		hashing  models.HashKind
		format   models.FormatKind
	}{
		{"plain", models.TypeExpr{Code: "int"}, models.EqualOp, models.HashPlain, models.FormatPlain},
		{"nullable", models.TypeExpr{Code: "*string", Nullable: true}, models.EqualNullable, models.HashNullable, models.FormatNullable},
		{"float", models.TypeExpr{Code: "float32", FloatBits: 32}, models.EqualFloat, models.HashFloating, models.FormatPlain},
		{"nullable float", models.TypeExpr{Code: "*float64", Nullable: true, FloatBits: 64}, models.EqualFloatNull, models.HashFloatingNull, models.FormatNullable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			property := NewEngine().planProperty(models.PropertyDescriptor{Name: "value", Type: tt.typ})
			assert.Equal(t, tt.equality, property.Equality)
			assert.Equal(t, tt.hashing, property.Hashing)
			assert.Equal(t, tt.format, property.Format)
		})
	}
}

func TestEngine_PlanIsDeterministic(t *testing.T) {
	engine := NewEngine()
	index := models.NewDefaultValueIndex()
	index.Register(models.OwnerKey("./person", "personData"), "age", "21")

	first, err := engine.Synthesize(personDescriptor(), index)
	require.Nil(t, err)
	second, err := engine.Synthesize(personDescriptor(), index)
	require.Nil(t, err)

	assert.Equal(t, first, second)
}

func TestEngine_ClassifyDoesNotMutateInput(t *testing.T) {
	descriptor := personDescriptor()
	index := models.NewDefaultValueIndex()
	index.Register(models.OwnerKey("./person", "personData"), "age", "21")

	_, err := NewEngine().Synthesize(descriptor, index)
	require.Nil(t, err)
	assert.Empty(t, descriptor.Properties[2].DefaultExpr)
}

func TestValidator_RejectionRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.TypeDescriptor)
		reason string
	}{
		{
			"missing identity",
			func(d *models.TypeDescriptor) { d.PackageName = "" },
			"no resolvable qualified name",
		},
		{
			"interface kind",
			func(d *models.TypeDescriptor) { d.Kind = models.KindInterface },
			"must be a struct",
		},
		{
			"exported name",
			func(d *models.TypeDescriptor) { d.SimpleName = "PersonData" },
			"must be unexported",
		},
		{
			"type parameters",
			func(d *models.TypeDescriptor) { d.TypeParams = true },
			"type parameters",
		},
		{
			"missing suffix",
			func(d *models.TypeDescriptor) { d.SimpleName = "person" },
			"must end in",
		},
		{
			"bare suffix",
			func(d *models.TypeDescriptor) { d.SimpleName = "data" },
			"must end in",
		},
		{
			"exported property",
			func(d *models.TypeDescriptor) { d.Properties[0].Name = "Name" },
			"property Name must be unexported",
		},
		{
			"slice property",
			func(d *models.TypeDescriptor) {
				d.Properties = append(d.Properties, models.PropertyDescriptor{
					Name: "tags",
					Type: models.TypeExpr{Code: "[]string", NonComparable: true},
				})
			},
			"non-comparable type []string",
		},
		{
			"map property",
			func(d *models.TypeDescriptor) {
				d.Properties = append(d.Properties, models.PropertyDescriptor{
					Name: "attrs",
					Type: models.TypeExpr{Code: "map[string]string", NonComparable: true},
				})
			},
			"non-comparable type map[string]string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			descriptor := personDescriptor()
			tt.mutate(descriptor)

			err := NewValidator().Validate(descriptor)
			require.NotNil(t, err)
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestValidator_ExportedKindDefectReportsKindFirst(t *testing.T) {
	// When several rules are violated the earliest applicable one wins.
	descriptor := personDescriptor()
	descriptor.Kind = models.KindAlias
	descriptor.SimpleName = "Person"

	err := NewValidator().Validate(descriptor)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "must be a struct")
}

func TestValidator_ExportedPropertyReportedBeforeComparability(t *testing.T) {
	descriptor := personDescriptor()
	descriptor.Properties[0].Name = "Tags"
	descriptor.Properties[0].Type = models.TypeExpr{Code: "[]string", NonComparable: true}

	err := NewValidator().Validate(descriptor)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "must be unexported")
}

func TestValidator_AcceptsWellFormedCandidate(t *testing.T) {
	assert.Nil(t, NewValidator().Validate(personDescriptor()))
}

func TestSnakeCase(t *testing.T) {
	assert.Equal(t, "person", snakeCase("Person"))
	assert.Equal(t, "http_config", snakeCase("HttpConfig"))
	assert.Equal(t, "inner_value", snakeCase("InnerValue"))
}
