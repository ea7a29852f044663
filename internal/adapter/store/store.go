package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"toggl-reports/internal/domain"
	"toggl-reports/internal/ports"
)

var _ ports.ArtifactStore = (*Store)(nil)

// Store implements ports.ArtifactStore on the local filesystem. Artifacts
// land in {base}/{month}.{year}/ and are named
// {company}_{handle}_{basename}_{start}_to_{end}{ext} with inclusive dates.
// Empty company/handle segments are left out.
type Store struct {
	base    string
	company string
	handle  string
	log     *slog.Logger
}

func New(base, company, handle string, log *slog.Logger) *Store {
	if base == "" {
		base = "reports"
	}
	return &Store{base: base, company: company, handle: handle, log: log}
}

// Save writes the artifact and returns its path. The period directory is
// created on first use.
func (s *Store) Save(ctx context.Context, period domain.Period, kind domain.ArtifactKind, data []byte) (string, error) {
	dir := filepath.Join(s.base, fmt.Sprintf("%d.%d", int(period.Month), period.Year))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("store: creating %s: %w", dir, err)
	}
	path := filepath.Join(dir, s.fileName(period, kind))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("store: writing %s: %w", path, err)
	}
	s.log.Debug("artifact saved", slog.String("path", path), slog.Int("bytes", len(data)))
	return path, nil
}

func (s *Store) fileName(period domain.Period, kind domain.ArtifactKind) string {
	parts := make([]string, 0, 4)
	if s.company != "" {
		parts = append(parts, s.company)
	}
	if s.handle != "" {
		parts = append(parts, s.handle)
	}
	parts = append(parts,
		kind.BaseName(),
		fmt.Sprintf("%s_to_%s", period.Start.Format("2006-01-02"), period.LastDay().Format("2006-01-02")),
	)
	return strings.Join(parts, "_") + kind.Ext()
}
