package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"toggl-reports/internal/domain"
	"toggl-reports/internal/ports"
	"toggl-reports/internal/report"
)

// RunState tracks a report run through its lifecycle.
type RunState string

const (
	StateIdle           RunState = "idle"
	StatePeriodResolved RunState = "period_resolved"
	StateEntriesFetched RunState = "entries_fetched"
	StateValidated      RunState = "validated"
	StateAggregated     RunState = "aggregated"
	StateHandedOff      RunState = "handed_off"
	StateFailed         RunState = "failed"
)

// Result carries everything a report run produced. On failure State is
// StateFailed and the fields filled before the failing step remain set.
type Result struct {
	Period     domain.Period
	State      RunState
	EntryCount int
	Findings   report.Findings
	Summary    report.Summary
	Detailed   report.Detailed
	Artifacts  []string
}

// ReportUseCase coordinates one report run: fetch, validate, aggregate, then
// hand the shapes off to rendering, storage and the optional extras.
// Invoice and Archive may be nil; the other dependencies are required.
type ReportUseCase struct {
	Log      *slog.Logger
	Toggl    ports.TogglClient
	Renderer ports.ReportRenderer
	Store    ports.ArtifactStore
	Invoice  ports.InvoiceSource
	Archive  ports.RunArchive

	LongEntryThreshold time.Duration
	Now                func() time.Time
}

// Run executes the full pipeline for one period. Validation findings are
// advisory and never stop the run; a malformed entry, a fetch failure or any
// export failure does.
func (uc *ReportUseCase) Run(ctx context.Context, period domain.Period) (*Result, error) {
	if uc.Toggl == nil || uc.Renderer == nil || uc.Store == nil {
		return nil, errors.New("usecase not initialized: missing dependencies")
	}
	res := &Result{Period: period, State: StateIdle}

	res.State = StatePeriodResolved
	uc.Log.Info("report period resolved",
		slog.String("period", period.String()),
		slog.Time("start", period.Start),
		slog.Time("end", period.End),
	)

	entries, err := uc.Toggl.FetchEntries(ctx, period)
	if err != nil {
		return failRun(res, fmt.Errorf("fetching entries for %s: %w", period, err))
	}
	res.EntryCount = len(entries)
	res.State = StateEntriesFetched
	uc.Log.Info("fetched time entries", slog.Int("count", len(entries)))

	names := uc.projectNames(ctx)

	findings, err := report.Validate(entries, names, uc.LongEntryThreshold)
	if err != nil {
		return failRun(res, fmt.Errorf("validating entries for %s: %w", period, err))
	}
	res.Findings = findings
	res.State = StateValidated
	uc.Log.Info("validation completed",
		slog.Int("missing_description", len(findings.MissingDescription)),
		slog.Int("missing_project", len(findings.MissingProject)),
		slog.Int("long_entries", len(findings.LongEntries)),
		slog.Int("overlaps", len(findings.Overlaps)),
	)

	res.Summary = report.Summarize(period, entries, names)
	res.Detailed = report.Detail(period, entries, names)
	res.State = StateAggregated
	uc.Log.Info("aggregation completed",
		slog.Int("groups", len(res.Summary.Groups)),
		slog.Duration("total", res.Summary.Total),
	)

	artifacts, err := uc.export(ctx, res)
	if err != nil {
		return failRun(res, err)
	}
	res.Artifacts = artifacts

	if uc.Archive != nil {
		if err := uc.Archive.SaveRun(ctx, uc.record(res)); err != nil {
			return failRun(res, fmt.Errorf("archiving run for %s: %w", period, err))
		}
	}

	res.State = StateHandedOff
	uc.Log.Info("report run completed",
		slog.String("period", period.String()),
		slog.Int("artifacts", len(res.Artifacts)),
	)
	return res, nil
}

// Check fetches and validates one period without aggregating or exporting.
func (uc *ReportUseCase) Check(ctx context.Context, period domain.Period) (report.Findings, int, error) {
	if uc.Toggl == nil {
		return report.Findings{}, 0, errors.New("usecase not initialized: missing dependencies")
	}
	uc.Log.Info("report period resolved",
		slog.String("period", period.String()),
		slog.Time("start", period.Start),
		slog.Time("end", period.End),
	)

	entries, err := uc.Toggl.FetchEntries(ctx, period)
	if err != nil {
		return report.Findings{}, 0, fmt.Errorf("fetching entries for %s: %w", period, err)
	}
	uc.Log.Info("fetched time entries", slog.Int("count", len(entries)))

	findings, err := report.Validate(entries, uc.projectNames(ctx), uc.LongEntryThreshold)
	if err != nil {
		return report.Findings{}, 0, fmt.Errorf("validating entries for %s: %w", period, err)
	}
	return findings, len(entries), nil
}

func failRun(res *Result, err error) (*Result, error) {
	res.State = StateFailed
	return res, err
}

// projectNames resolves project labels for the report shapes. Failure is not
// fatal: groups fall back to numeric labels.
func (uc *ReportUseCase) projectNames(ctx context.Context) domain.ProjectIndex {
	projects, err := uc.Toggl.ListProjects(ctx)
	if err != nil {
		uc.Log.Warn("project lookup failed, falling back to numeric labels", slog.String("error", err.Error()))
		return domain.ProjectIndex{}
	}
	return domain.NewProjectIndex(projects)
}

// export renders and stores the three report artifacts, then the optional
// invoice. The shapes are immutable at this point, so the three renders run
// concurrently.
func (uc *ReportUseCase) export(ctx context.Context, res *Result) ([]string, error) {
	type job struct {
		kind   domain.ArtifactKind
		render func() ([]byte, error)
	}
	jobs := []job{
		{domain.ArtifactSummaryPDF, func() ([]byte, error) { return uc.Renderer.SummaryPDF(res.Summary) }},
		{domain.ArtifactDetailedPDF, func() ([]byte, error) { return uc.Renderer.DetailedPDF(res.Detailed) }},
		{domain.ArtifactDetailedCSV, func() ([]byte, error) { return uc.Renderer.DetailedCSV(res.Detailed) }},
	}

	paths := make([]string, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	for i, j := range jobs {
		g.Go(func() error {
			data, err := j.render()
			if err != nil {
				return fmt.Errorf("rendering %s: %w", j.kind, err)
			}
			path, err := uc.Store.Save(gctx, res.Period, j.kind, data)
			if err != nil {
				return fmt.Errorf("storing %s: %w", j.kind, err)
			}
			uc.Log.Info("artifact written", slog.String("kind", j.kind.String()), slog.String("path", path))
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if uc.Invoice == nil {
		uc.Log.Info("invoice export skipped: no spreadsheet configured")
		return paths, nil
	}
	data, err := uc.Invoice.FetchInvoice(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching invoice: %w", err)
	}
	path, err := uc.Store.Save(ctx, res.Period, domain.ArtifactInvoiceXLSX, data)
	if err != nil {
		return nil, fmt.Errorf("storing invoice: %w", err)
	}
	uc.Log.Info("artifact written", slog.String("kind", domain.ArtifactInvoiceXLSX.String()), slog.String("path", path))
	return append(paths, path), nil
}

func (uc *ReportUseCase) record(res *Result) domain.RunRecord {
	now := time.Now
	if uc.Now != nil {
		now = uc.Now
	}
	groups := make([]domain.RunGroup, 0, len(res.Summary.Groups))
	for _, g := range res.Summary.Groups {
		groups = append(groups, domain.RunGroup{Label: g.Label, Total: g.Total, EntryCount: g.EntryCount})
	}
	return domain.RunRecord{
		Period:      res.Period,
		GeneratedAt: now().UTC(),
		EntryCount:  res.EntryCount,
		Total:       res.Summary.Total,
		Warnings:    res.Findings.Counts(),
		Groups:      groups,
	}
}
