package utils

import "math"

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ConversionRate is the downstream/upstream funnel ratio as a percentage,
// rounded to two decimals. Zero upstream yields 0, never NaN.
func ConversionRate(downstream, upstream int64) float64 {
	if upstream == 0 {
		return 0
	}
	return Round2(float64(downstream) / float64(upstream) * 100)
}

// PercentChange returns (current-previous)/previous*100, or nil when the
// previous value is zero. The nil marshals as JSON null so the edge case is
// visible to callers instead of surfacing as Inf.
func PercentChange(current, previous float64) *float64 {
	if previous == 0 {
		return nil
	}
	pct := Round2((current - previous) / previous * 100)
	return &pct
}
