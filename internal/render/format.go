package render

import (
	"fmt"
	"time"
)

// FormatDuration renders a duration as "82h 30m" for display. Rounding to
// whole minutes happens here only; the aggregated shapes keep full precision.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	switch {
	case h == 0 && m == 0:
		return "0m"
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}
