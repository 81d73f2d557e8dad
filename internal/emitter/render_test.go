package emitter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobrun/data-compat/internal/models"
	"github.com/tobrun/data-compat/internal/utils"
)

func personPlan() *models.Plan {
	return &models.Plan{
		PackageName: "person",
		PackagePath: "./person",
		SourceName:  "personData",
		OutputName:  "Person",
		BuilderName: "PersonBuilder",
		StaticsName: "PersonStatics",
		FactoryName: "NewPerson",
		OutputFile:  "person_gen.go",
		Doc:         "personData describes a person record.",
		PassThrough: []string{"//nolint:unused"},
		Properties: []models.PropertyPlan{
			{
				Name: "name", Type: models.TypeExpr{Code: "string"},
				Doc: "Full legal name.", Mandatory: true, SetterName: "SetName",
				Equality: models.EqualOp, Hashing: models.HashPlain, Format: models.FormatPlain,
			},
			{
				Name: "nickname", Type: models.TypeExpr{Code: "*string", Nullable: true},
				Doc: "Preferred short name.", SetterName: "SetNickname",
				Equality: models.EqualNullable, Hashing: models.HashNullable, Format: models.FormatNullable,
			},
			{
				Name: "age", Type: models.TypeExpr{Code: "int"},
				Doc: "age holds the age property.", DefaultExpr: "21", SetterName: "SetAge",
				Equality: models.EqualOp, Hashing: models.HashPlain, Format: models.FormatPlain,
			},
			{
				Name: "balance", Type: models.TypeExpr{Code: "float64", FloatBits: 64},
				Doc: "balance holds the balance property.", Mandatory: true, SetterName: "SetBalance",
				Equality: models.EqualFloat, Hashing: models.HashFloating, Format: models.FormatPlain,
			},
		},
	}
}

func TestRenderer_CompleteUnit(t *testing.T) {
	unit, err := NewRenderer().Render(personPlan())
	require.NoError(t, err)

	assert.Equal(t, "person", unit.PackageName)
	assert.Equal(t, "person_gen.go", unit.FilePath)
	assert.True(t, strings.HasPrefix(unit.Content, GeneratedHeader))
	require.NoError(t, utils.ValidateGoCode(unit.Content))

	// Every member in its fixed position.
	members := []string{
		"//nolint:unused",
		"type Person struct {",
		"func newPerson(name string, nickname *string, age int, balance float64) Person {",
		"func (v Person) Name() string {",
		"func (v Person) String() string {",
		"func (v Person) Equal(other any) bool {",
		"func (v Person) Hash() uint64 {",
		"func (v Person) ToBuilder() *PersonBuilder {",
		"type PersonBuilder struct {",
		"func NewPersonBuilder(name string, balance float64) *PersonBuilder {",
		"func (b *PersonBuilder) SetNickname(nickname *string) *PersonBuilder {",
		"func (b *PersonBuilder) Build() Person {",
		"type PersonStatics struct{}",
		"func NewPerson(name string, balance float64, configure func(*PersonBuilder)) Person {",
	}
	last := -1
	for _, member := range members {
		idx := strings.Index(unit.Content, member)
		require.GreaterOrEqual(t, idx, 0, "missing member %q", member)
		assert.Greater(t, idx, last, "member %q out of order", member)
		last = idx
	}
}

func TestRenderer_EqualityPolicyPerProperty(t *testing.T) {
	unit, err := NewRenderer().Render(personPlan())
	require.NoError(t, err)

	assert.Contains(t, unit.Content, "v.name != o.name")
	assert.Contains(t, unit.Content, "!datacompat.EqualPtr(v.nickname, o.nickname)")
	assert.Contains(t, unit.Content, "datacompat.CompareFloat(v.balance, o.balance) != 0")
}

func TestRenderer_NullableFloatSubstitutesZero(t *testing.T) {
	plan := personPlan()
	plan.Properties = []models.PropertyPlan{{
		Name: "score", Type: models.TypeExpr{Code: "*float32", Nullable: true, FloatBits: 32},
		Doc: "score holds the score property.", SetterName: "SetScore",
		Equality: models.EqualFloatNull, Hashing: models.HashFloatingNull, Format: models.FormatNullable,
	}}

	unit, err := NewRenderer().Render(plan)
	require.NoError(t, err)

	assert.Contains(t, unit.Content,
		"datacompat.CompareFloat(datacompat.ZeroIfNil(v.score), datacompat.ZeroIfNil(o.score)) != 0")
	assert.Contains(t, unit.Content, "datacompat.HashFloatPtr(v.score)")
}

func TestRenderer_BuilderSeedsDefaults(t *testing.T) {
	unit, err := NewRenderer().Render(personPlan())
	require.NoError(t, err)

	assert.Regexp(t, `age:\s+21,`, unit.Content, "defaulted property initializes the builder")
	assert.NotRegexp(t, `nickname:\s+nil`, unit.Content, "absent properties rely on the zero value")
}

func TestRenderer_HashStructureFollowsDeclarationOrder(t *testing.T) {
	plan := personPlan()
	first, err := NewRenderer().Render(plan)
	require.NoError(t, err)

	plan.Properties[0], plan.Properties[3] = plan.Properties[3], plan.Properties[0]
	permuted, err := NewRenderer().Render(plan)
	require.NoError(t, err)

	hashBody := func(content string) string {
		start := strings.Index(content, "func (v Person) Hash()")
		end := strings.Index(content[start:], "}")
		return content[start : start+end]
	}
	assert.NotEqual(t, hashBody(first.Content), hashBody(permuted.Content))
}

func TestRenderer_Deterministic(t *testing.T) {
	first, err := NewRenderer().Render(personPlan())
	require.NoError(t, err)
	second, err := NewRenderer().Render(personPlan())
	require.NoError(t, err)

	assert.Equal(t, first.Content, second.Content)
}

func TestRenderer_NoHookNoStatics(t *testing.T) {
	plan := personPlan()
	plan.StaticsName = ""

	unit, err := NewRenderer().Render(plan)
	require.NoError(t, err)
	assert.NotContains(t, unit.Content, "PersonStatics")
}

func TestRenderer_CapabilityAssertions(t *testing.T) {
	plan := personPlan()
	plan.Capabilities = []models.CapabilityRef{
		{Expr: "fmt.Stringer", ImportPath: "fmt"},
		{Expr: "Named"},
	}

	unit, err := NewRenderer().Render(plan)
	require.NoError(t, err)

	assert.Contains(t, unit.Content, "var _ fmt.Stringer = (*Person)(nil)")
	assert.Contains(t, unit.Content, "var _ Named = (*Person)(nil)")
}

func TestRenderer_DocCarriesOverWithRename(t *testing.T) {
	unit, err := NewRenderer().Render(personPlan())
	require.NoError(t, err)

	assert.Contains(t, unit.Content, "// Person describes a person record.")
	assert.Contains(t, unit.Content, "// Full legal name.")
}

func TestImportManager_GroupsAndSorts(t *testing.T) {
	im := NewImportManager()
	im.Add("strings")
	im.Add(RuntimeImportPath)
	im.Add("fmt")
	im.Add("")

	rendered := im.Render()
	fmtIdx := strings.Index(rendered, `"fmt"`)
	stringsIdx := strings.Index(rendered, `"strings"`)
	runtimeIdx := strings.Index(rendered, RuntimeImportPath)
	require.GreaterOrEqual(t, fmtIdx, 0)
	assert.Less(t, fmtIdx, stringsIdx)
	assert.Less(t, stringsIdx, runtimeIdx, "module imports follow the standard library group")
}
