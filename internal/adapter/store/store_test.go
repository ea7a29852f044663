package store

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toggl-reports/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSave_WritesUnderPeriodDirectory(t *testing.T) {
	base := t.TempDir()
	s := New(base, "ACME", "jdoe", testLogger())
	period, err := domain.NewPeriod(2023, 6, time.UTC)
	require.NoError(t, err)

	path, err := s.Save(context.Background(), period, domain.ArtifactSummaryPDF, []byte("pdf-bytes"))

	require.NoError(t, err)
	want := filepath.Join(base, "6.2023", "ACME_jdoe_summary_report_2023-06-01_to_2023-06-30.pdf")
	assert.Equal(t, want, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf-bytes"), data)
}

func TestSave_ArtifactNames(t *testing.T) {
	base := t.TempDir()
	s := New(base, "ACME", "jdoe", testLogger())
	period, err := domain.NewPeriod(2023, 12, time.UTC)
	require.NoError(t, err)

	tests := []struct {
		kind domain.ArtifactKind
		want string
	}{
		{domain.ArtifactSummaryPDF, "ACME_jdoe_summary_report_2023-12-01_to_2023-12-31.pdf"},
		{domain.ArtifactDetailedPDF, "ACME_jdoe_time_entries_2023-12-01_to_2023-12-31.pdf"},
		{domain.ArtifactDetailedCSV, "ACME_jdoe_time_entries_2023-12-01_to_2023-12-31.csv"},
		{domain.ArtifactInvoiceXLSX, "ACME_jdoe_invoice_2023-12-01_to_2023-12-31.xlsx"},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			path, err := s.Save(context.Background(), period, tt.kind, []byte("x"))
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(base, "12.2023", tt.want), path)
		})
	}
}

func TestSave_OmitsEmptyNameSegments(t *testing.T) {
	base := t.TempDir()
	s := New(base, "", "", testLogger())
	period, err := domain.NewPeriod(2023, 6, time.UTC)
	require.NoError(t, err)

	path, err := s.Save(context.Background(), period, domain.ArtifactDetailedCSV, []byte("x"))

	require.NoError(t, err)
	assert.Equal(t, "time_entries_2023-06-01_to_2023-06-30.csv", filepath.Base(path))
}
