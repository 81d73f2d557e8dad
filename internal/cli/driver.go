package cli

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/tobrun/data-compat/internal/emitter"
	"github.com/tobrun/data-compat/internal/engine"
	"github.com/tobrun/data-compat/internal/errors"
	"github.com/tobrun/data-compat/internal/models"
	"github.com/tobrun/data-compat/internal/parser"
	"github.com/tobrun/data-compat/internal/utils"
)

// Driver orchestrates a full synthesis run: scan, collect defaults,
// validate, synthesize, emit, and retry deferred candidates in later
// rounds. Each round re-scans from scratch, so output emitted by an
// earlier round is visible to every later one.
type Driver struct {
	config   Config
	diag     *utils.DiagnosticSystem
	reporter *DiagnosticReporter
	scanner  *DirectoryScanner
	resolver *ModuleResolver
	engine   *engine.Engine
	emitter  *emitter.Emitter

	rejected    map[string]bool
	synthesized map[string]bool
	files       []string
}

// NewDriver creates a new synthesis driver
func NewDriver(config Config, diag *utils.DiagnosticSystem) *Driver {
	return &Driver{
		config:      config,
		diag:        diag,
		reporter:    NewDiagnosticReporter(config.Verbose),
		scanner:     NewDirectoryScanner(),
		resolver:    NewModuleResolver(),
		engine:      engine.NewEngine(),
		emitter:     emitter.NewEmitter(diag),
		rejected:    make(map[string]bool),
		synthesized: make(map[string]bool),
	}
}

// roundResult captures one round's outcome: how many candidates newly
// resolved and which ones must be carried to the next round.
type roundResult struct {
	resolved int
	deferred []error
	packages int
}

// Run executes the synthesis loop until a round produces zero deferrals,
// a round makes no progress, or the round budget runs out. Candidates
// still deferred when the loop stops are surfaced as errors.
func (d *Driver) Run() error {
	dirs, err := d.scanner.ScanDirectories(d.config.Directories)
	if err != nil {
		return err
	}
	if len(dirs) == 0 {
		d.diag.Warn("No Go packages found under %v", d.config.Directories)
		return nil
	}
	d.diag.Verbose("Scanning %d package directories", len(dirs))

	if moduleName, err := d.resolver.ResolveModuleName(d.config.ModuleName); err == nil {
		d.diag.Verbose("Module: %s", moduleName)
	} else {
		d.diag.Verbose("Module resolution skipped: %v", err)
	}

	var last roundResult
	rounds := 0
	for round := 1; round <= d.config.maxRounds(); round++ {
		rounds = round
		roundID := uuid.NewString()[:8]
		d.diag.RoundHeader(round, roundID)

		result, err := d.processRound(round, dirs)
		if err != nil {
			return err
		}

		if len(result.deferred) == 0 {
			last = result
			break
		}
		if round > 1 && result.resolved == 0 {
			// A round that resolves nothing cannot unblock the next one.
			last = result
			break
		}
		d.diag.Verbose("Round %d deferred %d candidate(s), retrying", round, len(result.deferred))
		last = result
	}

	if len(last.deferred) > 0 {
		var unresolved *errors.MultipleErrors
		for _, deferredErr := range last.deferred {
			d.reporter.ReportError(deferredErr)
			if compatErr, ok := deferredErr.(errors.CompatError); ok {
				errors.AddToMultiple(&unresolved, compatErr)
			}
		}
		return fmt.Errorf("%d candidate(s) have unresolvable symbols: %w", len(last.deferred), unresolved)
	}

	sort.Strings(d.files)
	d.reporter.ReportSuccess(RunSummary{
		PackagesProcessed: last.packages,
		TypesSynthesized:  len(d.synthesized),
		Rounds:            rounds,
		GeneratedFiles:    d.files,
	})
	return nil
}

// processRound runs one complete round over every package directory. The
// default-value index is rebuilt from scratch and fully populated before
// any candidate is classified.
func (d *Driver) processRound(round int, dirs []string) (roundResult, error) {
	p := parser.NewParser()

	var scans []*parser.PackageScan
	type pendingCandidate struct {
		raw  *parser.RawCandidate
		scan *parser.PackageScan
	}
	var pending []pendingCandidate

	for _, dir := range dirs {
		scan, err := p.ParseDirectory(dir)
		if err != nil {
			if round == 1 {
				d.reporter.ReportWarning(fmt.Sprintf("skipping %s: %v", dir, err))
			}
			continue
		}
		if importPath, pathErr := d.resolver.BuildPackagePath(d.config.ModuleName, dir); pathErr == nil {
			scan.ImportPath = importPath
		} else if round == 1 {
			d.diag.Verbose("No import path for %s: %v", dir, pathErr)
		}
		scans = append(scans, scan)

		candidates, extractErrs := p.ExtractCandidates(scan)
		if round == 1 {
			for _, extractErr := range extractErrs {
				d.reporter.ReportError(extractErr)
			}
		}
		for _, raw := range candidates {
			pending = append(pending, pendingCandidate{raw: raw, scan: scan})
		}
	}

	index, collisions := parser.NewCollector().Collect(scans)
	if round == 1 {
		for _, collision := range collisions {
			d.reporter.ReportWarning(collision.Error())
		}
	}
	declIndex := parser.BuildDeclIndex(scans)

	result := roundResult{packages: len(scans)}
	for _, candidate := range pending {
		key := models.OwnerKey(candidate.scan.PackagePath, candidate.raw.Name)
		if d.rejected[key] {
			continue
		}

		outcome := d.processCandidate(p, candidate.raw, candidate.scan, index, declIndex)
		switch {
		case outcome == nil:
			if !d.synthesized[key] {
				d.synthesized[key] = true
				result.resolved++
			}
		case errors.IsDeferral(outcome):
			result.deferred = append(result.deferred, outcome)
		default:
			d.reporter.ReportError(outcome)
			// Emission failures are fatal for the candidate this round but
			// not a verdict on the input; a later run may find the sink
			// writable again. Only input defects are remembered.
			if !errors.IsEmissionFailure(outcome) {
				d.rejected[key] = true
			}
		}
	}

	return result, nil
}

// processCandidate takes one candidate through descriptor construction,
// synthesis, and emission. A nil return means the candidate resolved.
func (d *Driver) processCandidate(p *parser.Parser, raw *parser.RawCandidate, scan *parser.PackageScan, index *models.DefaultValueIndex, declIndex *parser.DeclIndex) error {
	descriptor, err := p.BuildDescriptor(raw, scan, declIndex)
	if err != nil {
		return err
	}

	plan, synthErr := d.engine.Synthesize(descriptor, index)
	if synthErr != nil {
		return synthErr
	}

	if _, emitErr := d.emitter.Emit(plan); emitErr != nil {
		return emitErr
	}

	d.recordFile(plan)
	return nil
}

func (d *Driver) recordFile(plan *models.Plan) {
	location := plan.PackagePath
	if plan.ImportPath != "" {
		location = plan.ImportPath
	}
	target := location + "/" + plan.OutputFile
	for _, existing := range d.files {
		if existing == target {
			return
		}
	}
	d.files = append(d.files, target)
}
