package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatGeneratedSource_PrunesUnusedImports(t *testing.T) {
	source := `package person

import (
	"fmt"
	"time"
)

func hello() string {
	return fmt.Sprintf("hi")
}
`
	formatted, err := FormatGeneratedSource("person_gen.go", source)
	require.NoError(t, err)
	assert.Contains(t, formatted, `"fmt"`)
	assert.NotContains(t, formatted, `"time"`)
}

func TestFormatGeneratedSource_NormalizesLayout(t *testing.T) {
	source := "package person\n\nfunc   hello()string{ return \"hi\" }\n"

	formatted, err := FormatGeneratedSource("person_gen.go", source)
	require.NoError(t, err)
	assert.Contains(t, formatted, "func hello() string { return \"hi\" }")
}

func TestFormatGeneratedSource_InvalidSyntaxFails(t *testing.T) {
	_, err := FormatGeneratedSource("broken_gen.go", "package person\n\nfunc {")
	assert.Error(t, err)
}

func TestValidateGoCode(t *testing.T) {
	assert.NoError(t, ValidateGoCode("package person\n\nvar x = 1\n"))
	assert.Error(t, ValidateGoCode("package person\n\nvar x = \n"))
}
