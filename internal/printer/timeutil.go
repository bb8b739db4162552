package printer

import (
	"fmt"

	"github.com/slok/planboard/internal/model"
)

// FormatDate returns the ISO date or "-" when the date is missing.
func FormatDate(d model.Date) string {
	if d.IsZero() {
		return "-"
	}
	return d.String()
}

// FormatDays returns a human-readable number of days.
// Examples: "1 day", "3 days", "0 days".
func FormatDays(days int) string {
	if days == 1 || days == -1 {
		return fmt.Sprintf("%d day", days)
	}
	return fmt.Sprintf("%d days", days)
}

// FormatRange returns a human-readable date range.
func FormatRange(start, end model.Date) string {
	return fmt.Sprintf("%s → %s", FormatDate(start), FormatDate(end))
}
