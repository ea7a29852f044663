package render

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"toggl-reports/internal/report"
)

var csvHeader = []string{
	"start_date",
	"start_time",
	"end_date",
	"end_time",
	"description",
	"project",
	"duration_hours",
}

// DetailedCSV renders the detailed shape as CSV, one row per entry in start
// order, with fractional hours rounded to two decimals for spreadsheets.
func (r *Renderer) DetailedCSV(d report.Detailed) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("render: csv header: %w", err)
	}
	for _, row := range d.Rows {
		rec := []string{
			row.Start.Format("2006-01-02"),
			row.Start.Format("15:04:05"),
			row.Stop.Format("2006-01-02"),
			row.Stop.Format("15:04:05"),
			row.Description,
			row.Project,
			strconv.FormatFloat(row.Duration.Hours(), 'f', 2, 64),
		}
		if err := w.Write(rec); err != nil {
			return nil, fmt.Errorf("render: csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("render: csv flush: %w", err)
	}
	return buf.Bytes(), nil
}
