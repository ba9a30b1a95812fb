package utils

import (
	"time"

	"storepulse/api/models"
)

// ResolveReportRange turns a report period into concrete bounds. Custom
// periods return the caller's bounds verbatim when both are present; named
// periods end at now and start one calendar unit back (daily resets to
// midnight). Anything unrecognized, including custom without bounds, falls
// back to monthly.
func ResolveReportRange(period models.ReportPeriod, from, to *time.Time) (time.Time, time.Time) {
	now := time.Now().UTC()

	if period == models.PeriodCustom && from != nil && to != nil {
		return *from, *to
	}

	var start time.Time
	switch period {
	case models.PeriodDaily:
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	case models.PeriodWeekly:
		start = now.AddDate(0, 0, -7)
	case models.PeriodMonthly:
		start = now.AddDate(0, -1, 0)
	case models.PeriodQuarterly:
		start = now.AddDate(0, -3, 0)
	case models.PeriodAnnual:
		start = now.AddDate(-1, 0, 0)
	default:
		start = now.AddDate(0, -1, 0)
	}

	return start, now
}
