package report

import (
	"errors"
	"time"

	"toggl-reports/internal/domain"
)

// ErrMalformedEntry reports an entry whose stop precedes its start. Duration
// math is undefined for such input, so the whole run is rejected instead of
// coercing the entry.
var ErrMalformedEntry = errors.New("malformed entry: stop before start")

// DefaultLongEntryThreshold is the duration above which an entry is flagged
// as suspiciously long.
const DefaultLongEntryThreshold = 8 * time.Hour

// EntryRef identifies an entry inside a finding.
type EntryRef struct {
	Start       time.Time
	Stop        time.Time
	Project     string
	Description string
}

// LongEntry flags an entry exceeding the duration threshold.
type LongEntry struct {
	Entry    EntryRef
	Duration time.Duration
}

// OverlapPair flags two entries whose half-open intervals intersect.
// First starts no later than Second.
type OverlapPair struct {
	First  EntryRef
	Second EntryRef
}

// Findings is the outcome of one validation pass: independent lists, all
// advisory. Empty lists mean every check passed.
type Findings struct {
	MissingDescription []EntryRef
	MissingProject     []EntryRef
	LongEntries        []LongEntry
	Overlaps           []OverlapPair
}

// Empty reports whether no check produced a finding.
func (f Findings) Empty() bool {
	return len(f.MissingDescription) == 0 &&
		len(f.MissingProject) == 0 &&
		len(f.LongEntries) == 0 &&
		len(f.Overlaps) == 0
}

// Count returns the total number of findings across all checks.
func (f Findings) Count() int {
	return len(f.MissingDescription) + len(f.MissingProject) + len(f.LongEntries) + len(f.Overlaps)
}

// Counts returns per-check totals in the archive's form.
func (f Findings) Counts() domain.WarningCounts {
	return domain.WarningCounts{
		MissingDescription: len(f.MissingDescription),
		MissingProject:     len(f.MissingProject),
		LongEntries:        len(f.LongEntries),
		Overlaps:           len(f.Overlaps),
	}
}
