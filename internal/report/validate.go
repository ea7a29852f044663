package report

import (
	"fmt"
	"sort"
	"time"

	"toggl-reports/internal/domain"
)

// Validate runs the data-quality checks over one period's entries. Findings
// are advisory and never exclude entries from aggregation. The only fatal
// condition is a malformed entry (stop before start), reported as an error
// wrapping ErrMalformedEntry. A non-positive threshold selects the default.
func Validate(entries []domain.TimeEntry, names domain.ProjectIndex, longThreshold time.Duration) (Findings, error) {
	if longThreshold <= 0 {
		longThreshold = DefaultLongEntryThreshold
	}
	for _, e := range entries {
		if e.Stop.Before(e.Start) {
			return Findings{}, fmt.Errorf("%w: %q starting %s", ErrMalformedEntry, e.Description, e.Start.Format(time.RFC3339))
		}
	}

	var f Findings
	for _, e := range entries {
		ref := refOf(e, names)
		if e.Description == "" {
			f.MissingDescription = append(f.MissingDescription, ref)
		}
		if e.ProjectID == nil {
			f.MissingProject = append(f.MissingProject, ref)
		}
		if d := e.Duration(); d > longThreshold {
			f.LongEntries = append(f.LongEntries, LongEntry{Entry: ref, Duration: d})
		}
	}
	f.Overlaps = findOverlaps(entries, names)
	return f, nil
}

func refOf(e domain.TimeEntry, names domain.ProjectIndex) EntryRef {
	return EntryRef{
		Start:       e.Start,
		Stop:        e.Stop,
		Project:     names.Label(e.ProjectID),
		Description: e.Description,
	}
}

// findOverlaps flags every pair of entries whose [start, stop) intervals
// intersect. Entries are sorted by start into a scratch slice (the input is
// never reordered); each entry is then compared only against successors
// starting before it stops, so the sweep stays O(n log n) plus one step per
// overlapping pair. Zero-duration entries cannot intersect anything under
// half-open semantics and are skipped outright, which also keeps an empty
// interval sitting inside a longer entry from being flagged.
func findOverlaps(entries []domain.TimeEntry, names domain.ProjectIndex) []OverlapPair {
	sorted := make([]domain.TimeEntry, 0, len(entries))
	for _, e := range entries {
		if e.Stop.After(e.Start) {
			sorted = append(sorted, e)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].Stop.Before(sorted[j].Stop)
		}
		return sorted[i].Start.Before(sorted[j].Start)
	})

	var pairs []OverlapPair
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted) && sorted[j].Start.Before(sorted[i].Stop); j++ {
			pairs = append(pairs, OverlapPair{
				First:  refOf(sorted[i], names),
				Second: refOf(sorted[j], names),
			})
		}
	}
	return pairs
}
