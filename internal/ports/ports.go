package ports

import (
	"context"

	"toggl-reports/internal/domain"
	"toggl-reports/internal/report"
)

// TogglClient fetches the raw material for one reporting period.
type TogglClient interface {
	FetchEntries(ctx context.Context, period domain.Period) ([]domain.TimeEntry, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
}

// ReportRenderer turns the aggregated shapes into artifact bytes. Renderers
// own all display formatting; the shapes carry exact durations.
type ReportRenderer interface {
	SummaryPDF(s report.Summary) ([]byte, error)
	DetailedPDF(d report.Detailed) ([]byte, error)
	DetailedCSV(d report.Detailed) ([]byte, error)
}

// ArtifactStore persists rendered artifacts and returns their location.
type ArtifactStore interface {
	Save(ctx context.Context, period domain.Period, kind domain.ArtifactKind, data []byte) (string, error)
}

// InvoiceSource fetches the latest version of the configured invoice
// spreadsheet, exported verbatim.
type InvoiceSource interface {
	FetchInvoice(ctx context.Context) ([]byte, error)
}

// RunArchive persists a snapshot of a completed report run.
type RunArchive interface {
	SaveRun(ctx context.Context, rec domain.RunRecord) error
}
