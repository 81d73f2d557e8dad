package emitter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobrun/data-compat/internal/utils"
)

func TestEmitter_WritesAndSkipsUnchanged(t *testing.T) {
	dir := t.TempDir()
	plan := personPlan()
	plan.PackagePath = dir

	emitter := NewEmitter(utils.NewDiagnosticSystem(utils.DiagnosticSilent))

	unit, emitErr := emitter.Emit(plan)
	require.Nil(t, emitErr)

	target := filepath.Join(dir, "person_gen.go")
	written, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, unit.Content, string(written))

	info, err := os.Stat(target)
	require.NoError(t, err)
	firstWrite := info.ModTime()

	// Second emission of the same plan must not rewrite the file.
	_, emitErr = emitter.Emit(plan)
	require.Nil(t, emitErr)

	info, err = os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, firstWrite, info.ModTime())
}

func TestEmitter_RewritesWhenPlanChanges(t *testing.T) {
	dir := t.TempDir()
	plan := personPlan()
	plan.PackagePath = dir

	emitter := NewEmitter(utils.NewDiagnosticSystem(utils.DiagnosticSilent))
	_, emitErr := emitter.Emit(plan)
	require.Nil(t, emitErr)

	plan.Doc = "personData is a person, revised."
	_, emitErr = emitter.Emit(plan)
	require.Nil(t, emitErr)

	written, err := os.ReadFile(filepath.Join(dir, "person_gen.go"))
	require.NoError(t, err)
	assert.Contains(t, string(written), "revised")
}

func TestEmitter_WriteFailureIsEmissionError(t *testing.T) {
	plan := personPlan()
	plan.PackagePath = filepath.Join(t.TempDir(), "missing", "nested")

	emitter := NewEmitter(utils.NewDiagnosticSystem(utils.DiagnosticSilent))
	_, emitErr := emitter.Emit(plan)
	require.NotNil(t, emitErr)
	assert.Contains(t, emitErr.Error(), "failed to emit")
}
