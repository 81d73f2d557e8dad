package emitter

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/tobrun/data-compat/internal/errors"
	"github.com/tobrun/data-compat/internal/models"
	"github.com/tobrun/data-compat/internal/utils"
)

// Emitter writes rendered output units into their package directories. It
// skips files whose content is already current, so repeated runs over an
// unchanged tree touch nothing.
type Emitter struct {
	renderer *Renderer
	diag     *utils.DiagnosticSystem
}

// NewEmitter creates a new emitter
func NewEmitter(diag *utils.DiagnosticSystem) *Emitter {
	return &Emitter{
		renderer: NewRenderer(),
		diag:     diag,
	}
}

// Emit renders a plan and writes its output unit into the plan's package
// directory. Write failures are fatal for this candidate only.
func (e *Emitter) Emit(plan *models.Plan) (*models.GeneratedUnit, *errors.BaseError) {
	unit, err := e.renderer.Render(plan)
	if err != nil {
		return nil, errors.WrapEmission(plan.OutputFile, err)
	}

	target := filepath.Join(plan.PackagePath, unit.FilePath)
	changed, err := e.writeIfChanged(target, unit.Content)
	if err != nil {
		return nil, errors.WrapEmission(unit.FilePath, err)
	}

	if changed {
		e.diag.Success("Generated %s", target)
	} else {
		e.diag.Verbose("Unchanged %s, skipping write", target)
	}
	return unit, nil
}

// writeIfChanged writes content to target unless the file already holds it.
// When the content differs the old/new diff is reported at verbose level.
func (e *Emitter) writeIfChanged(target, content string) (bool, error) {
	existing, err := os.ReadFile(target)
	switch {
	case err == nil:
		if string(existing) == content {
			return false, nil
		}
		e.reportDiff(target, string(existing), content)
	case !os.IsNotExist(err):
		return false, err
	}

	if err := os.WriteFile(target, []byte(content), 0644); err != nil {
		return false, err
	}
	return true, nil
}

func (e *Emitter) reportDiff(target, before, after string) {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: target,
		ToFile:   target + " (regenerated)",
		Context:  3,
	})
	if err != nil || strings.TrimSpace(diff) == "" {
		return
	}
	e.diag.Verbose("Regenerating %s:\n%s", target, diff)
}
