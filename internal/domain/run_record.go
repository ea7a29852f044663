package domain

import "time"

// RunRecord is the snapshot of one completed report run kept by the archive.
type RunRecord struct {
	Period      Period
	GeneratedAt time.Time
	EntryCount  int
	Total       time.Duration
	Warnings    WarningCounts
	Groups      []RunGroup
}

// WarningCounts carries per-check finding totals.
type WarningCounts struct {
	MissingDescription int
	MissingProject     int
	LongEntries        int
	Overlaps           int
}

// RunGroup is one summary group as archived.
type RunGroup struct {
	Label      string
	Total      time.Duration
	EntryCount int
}
