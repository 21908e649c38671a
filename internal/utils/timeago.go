package utils

import (
	"fmt"
	"time"
)

// TimeAgo renders the distance between t and now as a short human phrase,
// e.g. "less than a minute", "5 minutes", "about 2 hours", "3 days".  The
// detail view appends "ago" itself.
func TimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return "less than a minute"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return "about " + plural(int(d.Hours()), "hour")
	case d < 30*24*time.Hour:
		return plural(int(d.Hours()/24), "day")
	case d < 365*24*time.Hour:
		return "about " + plural(int(d.Hours()/(24*30)), "month")
	default:
		return "over " + plural(int(d.Hours()/(24*365)), "year")
	}
}

// FormatDateTime renders an absolute timestamp for display, matching the
// medium-date/short-time style used on the detail page.
func FormatDateTime(t time.Time) string {
	return t.Format("Jan 2, 2006, 3:04 PM")
}

func plural(n int, unit string) string {
	if n <= 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
