package report

import (
	"sort"
	"time"

	"toggl-reports/internal/domain"
)

// Group is one summary bucket: a project label with its duration total and
// entry count.
type Group struct {
	Label      string
	Total      time.Duration
	EntryCount int
}

// Summary is the grouped report shape: per-project totals plus the period
// total. Groups are sorted by label with the unassigned bucket last.
type Summary struct {
	Period domain.Period
	Groups []Group
	Total  time.Duration
}

// EntryCount returns the number of entries across all groups.
func (s Summary) EntryCount() int {
	n := 0
	for _, g := range s.Groups {
		n += g.EntryCount
	}
	return n
}

// Row is one detailed-report line.
type Row struct {
	Start       time.Time
	Stop        time.Time
	Duration    time.Duration
	Description string
	Project     string
}

// Detailed is the lossless report shape: every entry, sorted by start.
type Detailed struct {
	Period domain.Period
	Rows   []Row
}

// Summarize groups entries by project label and sums exact durations.
// Totals keep full precision; fractional-hour rounding belongs to renderers.
// Entries flagged by validation still contribute fully.
func Summarize(period domain.Period, entries []domain.TimeEntry, names domain.ProjectIndex) Summary {
	byLabel := make(map[string]*Group)
	labels := make([]string, 0)
	for _, e := range entries {
		label := names.Label(e.ProjectID)
		g, ok := byLabel[label]
		if !ok {
			g = &Group{Label: label}
			byLabel[label] = g
			labels = append(labels, label)
		}
		g.Total += e.Duration()
		g.EntryCount++
	}
	sort.Slice(labels, func(i, j int) bool {
		if labels[i] == domain.UnassignedLabel {
			return false
		}
		if labels[j] == domain.UnassignedLabel {
			return true
		}
		return labels[i] < labels[j]
	})

	s := Summary{Period: period, Groups: make([]Group, 0, len(labels))}
	for _, label := range labels {
		g := byLabel[label]
		s.Groups = append(s.Groups, *g)
		s.Total += g.Total
	}
	return s
}

// Detail projects every entry into a start-ordered row without dropping or
// altering anything.
func Detail(period domain.Period, entries []domain.TimeEntry, names domain.ProjectIndex) Detailed {
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, Row{
			Start:       e.Start,
			Stop:        e.Stop,
			Duration:    e.Duration(),
			Description: e.Description,
			Project:     names.Label(e.ProjectID),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Start.Before(rows[j].Start) })
	return Detailed{Period: period, Rows: rows}
}
