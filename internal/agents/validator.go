package agents

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"benchgate/domain/findings"
	"benchgate/domain/run"
	"benchgate/internal/validation"
	"benchgate/ports"
)

// ValidatorConfig configures the validator agent.
type ValidatorConfig struct {
	MinValueThreshold float64
	MaxValueThreshold float64
	OutputDir         string
	Ledger            ports.RunLedger // optional; nil disables run bookkeeping
}

// Validator wraps the validation pipeline with agent bookkeeping:
// activity logging, report persistence, the run ledger, and handoff
// payloads for the cooperating agents.
type Validator struct {
	*Agent
	runner *validation.Runner
	opts   validation.Options
	outDir string
	ledger ports.RunLedger
}

// NewValidator creates the validator agent.
func NewValidator(cfg ValidatorConfig) *Validator {
	opts := validation.DefaultOptions()
	if cfg.MinValueThreshold != 0 || cfg.MaxValueThreshold != 0 {
		opts = validation.Options{
			MinValueThreshold: cfg.MinValueThreshold,
			MaxValueThreshold: cfg.MaxValueThreshold,
		}
	}
	outDir := cfg.OutputDir
	if outDir == "" {
		outDir = "."
	}
	return &Validator{
		Agent:  newAgent("validator"),
		runner: validation.NewRunner(),
		opts:   opts,
		outDir: outDir,
		ledger: cfg.Ledger,
	}
}

// Capabilities lists what this agent provides.
func (v *Validator) Capabilities() []string {
	return []string{
		"validate_utility_data",
		"validate_submission",
		"generate_validation_report",
		"detect_anomalies",
		"provide_feedback_to_process_engineer",
	}
}

// Status returns the agent status snapshot.
func (v *Validator) Status() StatusInfo {
	return v.statusSnapshot(v.Capabilities())
}

// Run validates one file, persists the JSON report, and records the run
// in the ledger. When outputFile is empty a timestamped name is placed
// in the configured output directory.
func (v *Validator) Run(ctx context.Context, inputFile, outputFile string) (findings.Report, error) {
	v.LogActivity("validation", StatusStarted, map[string]any{"input_file": inputFile}, "")

	if outputFile == "" {
		stamp := time.Now().Format("20060102_150405")
		outputFile = filepath.Join(v.outDir, fmt.Sprintf("validation_report_%s.json", stamp))
	}

	result, err := v.runner.Validate(inputFile, v.opts)
	if err != nil {
		v.LogActivity("validation", StatusFailed, map[string]any{"input_file": inputFile}, err.Error())
		v.setStatus("error")
		return findings.Report{}, err
	}
	report := result.Report

	if err := v.SaveJSON(report, outputFile); err != nil {
		v.LogActivity("validation", StatusFailed, map[string]any{"input_file": inputFile}, err.Error())
		v.setStatus("error")
		return findings.Report{}, err
	}

	if v.ledger != nil {
		if err := v.ledger.RecordRun(ctx, run.NewRecord(report)); err != nil {
			// Ledger trouble should not fail an otherwise finished run.
			v.logger.Warn("Failed to record run in ledger: %v", err)
		}
	}

	status := StatusCompleted
	if !report.Passed {
		status = StatusCompletedWithErrors
	}
	v.LogActivity("validation", status, map[string]any{
		"input_file": inputFile,
		"passed":     report.Passed,
		"errors":     report.Summary.TotalErrors,
		"warnings":   report.Summary.TotalWarnings,
	}, "")
	v.setStatus("ready")

	return report, nil
}

// FileResult pairs an input file with its validation outcome.
type FileResult struct {
	File   string
	Report findings.Report
	Err    error
}

// RunMany validates several files concurrently. Runs share no state, so
// the only coordination needed is the concurrency cap.
func (v *Validator) RunMany(ctx context.Context, files []string, concurrency int) []FileResult {
	if concurrency <= 0 {
		concurrency = 4
	}

	results := make([]FileResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			report, err := v.Run(ctx, file, "")
			results[i] = FileResult{File: file, Report: report, Err: err}
			return nil
		})
	}
	// Workers never return errors; failures land in their slot.
	_ = g.Wait()
	return results
}

// Summary aggregates the runs recorded so far.
func (v *Validator) Summary(ctx context.Context) (run.Summary, error) {
	if v.ledger == nil {
		return run.Summary{}, nil
	}
	return v.ledger.Summary(ctx)
}

// HandoffToProcessEngineer packages validation feedback for the process
// engineer agent.
func (v *Validator) HandoffToProcessEngineer(report findings.Report) Handoff {
	data := map[string]any{
		"validation_status":   report.ValidationStatus,
		"error_types_found":   report.ErrorTypes(),
		"warning_types_found": report.WarningTypes(),
		"recommendations":     ProcessRecommendations(report),
	}
	return v.PrepareHandoff("process_engineer", data, "Validation feedback for process documentation update")
}

// ProcessRecommendations maps finding types to data-collection process
// changes worth making.
func ProcessRecommendations(report findings.Report) []string {
	var recs []string
	for _, errType := range report.ErrorTypes() {
		switch errType {
		case findings.TypeMissingColumns:
			recs = append(recs, "Update data collection process to ensure all required columns are present")
		case findings.TypeMissingMonths:
			recs = append(recs, "Implement monthly data collection reminders to prevent gaps")
		case findings.TypeNegativeValues:
			recs = append(recs, "Add data entry validation to prevent negative utility values")
		case findings.TypeDuplicateRows:
			recs = append(recs, "Review data import process to prevent duplicate entries")
		}
	}
	return recs
}

// ScriptSuggestions maps finding types to automation improvements.
func ScriptSuggestions(report findings.Report) []string {
	var suggestions []string
	for _, errType := range report.ErrorTypes() {
		switch errType {
		case findings.TypeInvalidDates:
			suggestions = append(suggestions, "Enhance date parsing to handle additional date formats")
		case findings.TypeNonNumericValues:
			suggestions = append(suggestions, "Add data cleaning step to handle numeric values with units/symbols")
		}
	}
	for _, warnType := range report.WarningTypes() {
		if warnType == findings.TypePotentialUnitMismatch {
			suggestions = append(suggestions, "Implement unit conversion detection and normalization")
		}
	}
	return suggestions
}
