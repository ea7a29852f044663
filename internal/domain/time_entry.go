package domain

import "time"

// TimeEntry represents one logged time interval in the domain.
type TimeEntry struct {
	Description string
	ProjectID   *int64
	Start       time.Time
	Stop        time.Time
}

// Duration is always derived from Start/Stop so the two can never drift.
// Negative only for malformed input, which the validation pass rejects.
func (e TimeEntry) Duration() time.Duration {
	return e.Stop.Sub(e.Start)
}
