// Package pipeline orchestrates a full run: scan, verify, report, email.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tenderscan/internal/logger"
	"tenderscan/internal/report"
	"tenderscan/internal/scan"
	"tenderscan/internal/store"
	"tenderscan/internal/types"
	"tenderscan/internal/verify"
)

// Options tune a single pipeline run.
type Options struct {
	// DryRun scans sample data and skips filing verification.
	DryRun bool

	// SkipEmail suppresses the email step even when configured.
	SkipEmail bool
}

// Mailer sends a rendered report. Satisfied by notify.EmailSender.
type Mailer interface {
	SendReport(ctx context.Context, reportMD string) error
}

// Pipeline wires the scanning, verification, reporting, and notification
// stages together.
type Pipeline struct {
	cfg      *store.Config
	scanner  *scan.Scanner
	verifier *verify.Verifier
	reporter *report.Reporter
	mailer   Mailer
	now      func() time.Time
}

// New assembles a pipeline. verifier and mailer may be nil to disable their
// stages.
func New(cfg *store.Config, scanner *scan.Scanner, verifier *verify.Verifier, reporter *report.Reporter, mailer Mailer) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		scanner:  scanner,
		verifier: verifier,
		reporter: reporter,
		mailer:   mailer,
		now:      time.Now,
	}
}

// Run executes the full pipeline and writes scan.json, verified.json, and
// report.md under a dated results directory. Verification and email degrade
// gracefully; a failed scan or report aborts the run.
func (p *Pipeline) Run(ctx context.Context, opts Options) error {
	today := p.now().Format("2006-01-02")
	dailyDir := filepath.Join(p.cfg.Output.ResultsDir, today)
	if err := os.MkdirAll(dailyDir, 0755); err != nil {
		return fmt.Errorf("creating results dir: %w", err)
	}

	logger.Info(ctx, "Pipeline starting", "date", today, "dry_run", opts.DryRun)

	// Step 1: scan
	deals, err := p.scanner.Scan(ctx)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	scanResult := &types.ScanResult{
		ScanDate:           p.now().Format(time.RFC3339),
		TotalOpportunities: len(deals),
		Deals:              deals,
	}
	scanPath := filepath.Join(dailyDir, "scan.json")
	if err := writeJSON(scanPath, scanResult); err != nil {
		return fmt.Errorf("writing scan output: %w", err)
	}
	logger.Info(ctx, "Scan step complete", "opportunities", len(deals), "output", scanPath)

	if len(deals) == 0 {
		logger.Info(ctx, "No opportunities found, pipeline complete")
		return nil
	}

	// Step 2: verify
	result := scanResult
	if opts.DryRun || p.verifier == nil || !p.cfg.Verify.Enabled {
		logger.Info(ctx, "Skipping verification")
	} else {
		verified := p.verifier.VerifyAll(ctx, deals, "")
		result = &types.ScanResult{
			ScanDate:           scanResult.ScanDate,
			VerificationDate:   p.now().Format(time.RFC3339),
			TotalOpportunities: len(verified),
			Deals:              verified,
		}
		verifiedPath := filepath.Join(dailyDir, "verified.json")
		if err := writeJSON(verifiedPath, result); err != nil {
			logger.ErrorWithErr(ctx, "Writing verified output failed, continuing with in-memory data", err)
		} else {
			logger.Info(ctx, "Verification step complete", "output", verifiedPath)
		}
	}

	// Step 3: report
	reportMD, err := p.reporter.GenerateReport(result, report.FormatMarkdown)
	if err != nil {
		return fmt.Errorf("report generation failed: %w", err)
	}
	reportPath := filepath.Join(dailyDir, "report.md")
	if err := os.WriteFile(reportPath, []byte(reportMD), 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	logger.Info(ctx, "Report step complete", "output", reportPath)

	// Step 4: email
	if opts.SkipEmail || p.mailer == nil || !p.cfg.EmailEnabled() {
		logger.Info(ctx, "Email skipped")
	} else if err := p.mailer.SendReport(ctx, reportMD); err != nil {
		logger.ErrorWithErr(ctx, "Email step failed", err)
	}

	logger.Info(ctx, "Pipeline complete", "results_dir", dailyDir)
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
