package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storepulse/api/models"
)

func TestResolveReportRangeMonthly(t *testing.T) {
	now := time.Now().UTC()

	from, to := ResolveReportRange(models.PeriodMonthly, nil, nil)

	assert.WithinDuration(t, now, to, 2*time.Second)
	assert.WithinDuration(t, now.AddDate(0, -1, 0), from, 2*time.Second)
}

func TestResolveReportRangeDailyResetsToMidnight(t *testing.T) {
	from, to := ResolveReportRange(models.PeriodDaily, nil, nil)

	assert.Equal(t, 0, from.Hour())
	assert.Equal(t, 0, from.Minute())
	assert.Equal(t, 0, from.Second())
	assert.Equal(t, to.Year(), from.Year())
	assert.Equal(t, to.YearDay(), from.YearDay())
	assert.WithinDuration(t, time.Now().UTC(), to, 2*time.Second)
}

func TestResolveReportRangeWeekly(t *testing.T) {
	now := time.Now().UTC()

	from, to := ResolveReportRange(models.PeriodWeekly, nil, nil)

	assert.WithinDuration(t, now.AddDate(0, 0, -7), from, 2*time.Second)
	assert.WithinDuration(t, now, to, 2*time.Second)
}

func TestResolveReportRangeQuarterlyAndAnnual(t *testing.T) {
	now := time.Now().UTC()

	from, _ := ResolveReportRange(models.PeriodQuarterly, nil, nil)
	assert.WithinDuration(t, now.AddDate(0, -3, 0), from, 2*time.Second)

	from, _ = ResolveReportRange(models.PeriodAnnual, nil, nil)
	assert.WithinDuration(t, now.AddDate(-1, 0, 0), from, 2*time.Second)
}

func TestResolveReportRangeCustomReturnsBoundsVerbatim(t *testing.T) {
	customFrom := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	customTo := time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC)

	from, to := ResolveReportRange(models.PeriodCustom, &customFrom, &customTo)

	require.Equal(t, customFrom, from)
	require.Equal(t, customTo, to)
}

func TestResolveReportRangeCustomWithoutBoundsFallsBackToMonthly(t *testing.T) {
	now := time.Now().UTC()

	from, to := ResolveReportRange(models.PeriodCustom, nil, nil)

	assert.WithinDuration(t, now.AddDate(0, -1, 0), from, 2*time.Second)
	assert.WithinDuration(t, now, to, 2*time.Second)
}

func TestResolveReportRangeUnknownPeriodBehavesAsMonthly(t *testing.T) {
	now := time.Now().UTC()

	from, to := ResolveReportRange(models.ReportPeriod("fortnightly"), nil, nil)

	assert.WithinDuration(t, now.AddDate(0, -1, 0), from, 2*time.Second)
	assert.WithinDuration(t, now, to, 2*time.Second)
}
