package app

import (
	"context"
	"log/slog"
	"time"

	gdrive "toggl-reports/internal/adapter/drive"
	msql "toggl-reports/internal/adapter/mysql"
	"toggl-reports/internal/adapter/store"
	tg "toggl-reports/internal/adapter/toggl"
	"toggl-reports/internal/config"
	"toggl-reports/internal/domain"
	"toggl-reports/internal/render"
	"toggl-reports/internal/report"
	"toggl-reports/internal/usecase"
)

// App wires adapters and the report use case.
type App struct {
	log     *slog.Logger
	loc     *time.Location
	uc      *usecase.ReportUseCase
	archive *msql.Archive
}

// New builds the full report pipeline. Invoice export and run archiving
// attach only when configured; the report path never depends on them.
func New(ctx context.Context, log *slog.Logger, cfg config.Config) (*App, error) {
	togglClient := tg.NewClient(cfg.Toggl.BaseURL, cfg.Toggl.APIToken, cfg.Toggl.WorkspaceID, log)

	uc := &usecase.ReportUseCase{
		Log:                log,
		Toggl:              togglClient,
		Renderer:           render.NewRenderer(cfg.Report.Company, cfg.Report.Handle),
		Store:              store.New(cfg.Report.OutputDir, cfg.Report.Company, cfg.Report.Handle, log),
		LongEntryThreshold: cfg.Report.LongEntryThreshold,
	}

	if cfg.InvoiceEnabled() {
		src, err := gdrive.NewClient(ctx, cfg.Invoice.SpreadsheetID, cfg.Invoice.CredentialsFile, []byte(cfg.Invoice.CredentialsJSON), log)
		if err != nil {
			return nil, err
		}
		uc.Invoice = src
	}

	a := &App{log: log, loc: cfg.Location(), uc: uc}
	if cfg.ArchiveEnabled() {
		// Run migrations before opening the archive for use
		if err := msql.Migrate(cfg.Archive.DSN); err != nil {
			return nil, err
		}
		archive, err := msql.NewArchive(ctx, cfg.Archive.DSN, log)
		if err != nil {
			return nil, err
		}
		uc.Archive = archive
		a.archive = archive
	}
	return a, nil
}

// NewCheck wires the validate-only path: Toggl access, nothing else.
func NewCheck(log *slog.Logger, cfg config.Config) *App {
	togglClient := tg.NewClient(cfg.Toggl.BaseURL, cfg.Toggl.APIToken, cfg.Toggl.WorkspaceID, log)
	return &App{
		log: log,
		loc: cfg.Location(),
		uc: &usecase.ReportUseCase{
			Log:                log,
			Toggl:              togglClient,
			LongEntryThreshold: cfg.Report.LongEntryThreshold,
		},
	}
}

// GenerateOnce produces the full artifact set for one period.
func (a *App) GenerateOnce(ctx context.Context, period domain.Period) (*usecase.Result, error) {
	return a.uc.Run(ctx, period)
}

// CheckOnce validates one period without exporting anything. The int is the
// entry count of the period.
func (a *App) CheckOnce(ctx context.Context, period domain.Period) (report.Findings, int, error) {
	return a.uc.Check(ctx, period)
}

// Close releases pooled resources.
func (a *App) Close() error {
	if a.archive != nil {
		return a.archive.Close()
	}
	return nil
}
