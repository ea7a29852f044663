package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"toggl-reports/internal/domain"
	"toggl-reports/internal/ports"
)

var _ ports.RunArchive = (*Archive)(nil)

// Archive implements ports.RunArchive on MySQL. One row per period in
// report_runs; regenerating a month replaces that period's run and groups.
type Archive struct {
	db  *sql.DB
	log *slog.Logger
}

// NewArchive opens a MySQL connection using the provided DSN.
// Example DSN: user:pass@tcp(host:3306)/dbname?parseTime=true&multiStatements=true
func NewArchive(ctx context.Context, dsn string, log *slog.Logger) (*Archive, error) {
	if dsn == "" {
		return nil, errors.New("mysql: DSN is required")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(c); err != nil {
		db.Close()
		return nil, err
	}
	return &Archive{db: db, log: log}, nil
}

// SaveRun upserts the run keyed by (period_year, period_month) and replaces
// its group rows in one transaction. LAST_INSERT_ID(id) makes the duplicate
// branch report the existing row's id.
func (a *Archive) SaveRun(ctx context.Context, rec domain.RunRecord) error {
	tx, err := a.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	const runQ = `
INSERT INTO report_runs
  (period_year, period_month, generated_at, entry_count, total_seconds,
   missing_description, missing_project, long_entries, overlaps)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  id=LAST_INSERT_ID(id),
  generated_at=VALUES(generated_at),
  entry_count=VALUES(entry_count),
  total_seconds=VALUES(total_seconds),
  missing_description=VALUES(missing_description),
  missing_project=VALUES(missing_project),
  long_entries=VALUES(long_entries),
  overlaps=VALUES(overlaps);
`
	res, err := tx.ExecContext(
		ctx,
		runQ,
		rec.Period.Year,
		int(rec.Period.Month),
		rec.GeneratedAt.UTC(),
		rec.EntryCount,
		int64(rec.Total/time.Second),
		rec.Warnings.MissingDescription,
		rec.Warnings.MissingProject,
		rec.Warnings.LongEntries,
		rec.Warnings.Overlaps,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("mysql: upserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("mysql: resolving run id: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM report_groups WHERE run_id = ?", runID); err != nil {
		tx.Rollback()
		return fmt.Errorf("mysql: clearing groups: %w", err)
	}

	const groupQ = `
INSERT INTO report_groups (run_id, label, total_seconds, entry_count)
VALUES (?, ?, ?, ?);
`
	stmt, err := tx.PrepareContext(ctx, groupQ)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, g := range rec.Groups {
		if _, err := stmt.ExecContext(ctx, runID, g.Label, int64(g.Total/time.Second), g.EntryCount); err != nil {
			tx.Rollback()
			return fmt.Errorf("mysql: inserting group %q: %w", g.Label, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	a.log.Info("archived report run",
		slog.String("period", rec.Period.String()),
		slog.Int("groups", len(rec.Groups)))
	return nil
}

// Close closes the underlying DB. Not wired via interface to keep ports minimal.
func (a *Archive) Close() error { return a.db.Close() }
