package utils

import (
	"fmt"
	"time"
)

var timeFormats = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimeParam parses a query-parameter timestamp, accepting RFC3339 and a
// couple of common date shapes clients actually send.
func ParseTimeParam(s string) (time.Time, error) {
	for _, format := range timeFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q, use RFC3339 (e.g. 2006-01-02T15:04:05Z)", s)
}
