package presenter

import (
	"fmt"
	"time"
)

type timeUnits struct {
	minutes, hours, days string
}

var (
	verboseUnits = timeUnits{" minutes ago", " hours ago", " days ago"}
	compactUnits = timeUnits{"m ago", "h ago", "d ago"}
)

// FormatTimeSince formats the time elapsed since t, e.g. "5 minutes ago",
// "2.5 hours ago" or "3 days ago".
func FormatTimeSince(t time.Time) string {
	return formatSince(time.Since(t), verboseUnits)
}

// FormatTimeSinceCompact is FormatTimeSince for tables: "5m ago", "2.5h ago", "3d ago"
func FormatTimeSinceCompact(t time.Time) string {
	return formatSince(time.Since(t), compactUnits)
}

func formatSince(d time.Duration, units timeUnits) string {
	switch {
	case d < time.Hour:
		return fmt.Sprintf("%.0f%s", d.Minutes(), units.minutes)
	case d < 24*time.Hour:
		return fmt.Sprintf("%.1f%s", d.Hours(), units.hours)
	default:
		return fmt.Sprintf("%.0f%s", d.Hours()/24, units.days)
	}
}
