package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeParamRFC3339(t *testing.T) {
	parsed, err := ParseTimeParam("2025-06-15T10:30:00Z")

	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC), parsed)
}

func TestParseTimeParamDateOnly(t *testing.T) {
	parsed, err := ParseTimeParam("2025-06-15")

	require.NoError(t, err)
	assert.Equal(t, 2025, parsed.Year())
	assert.Equal(t, time.June, parsed.Month())
	assert.Equal(t, 15, parsed.Day())
}

func TestParseTimeParamNoZone(t *testing.T) {
	_, err := ParseTimeParam("2025-06-15T10:30:00")

	require.NoError(t, err)
}

func TestParseTimeParamInvalid(t *testing.T) {
	_, err := ParseTimeParam("not-a-timestamp")

	assert.Error(t, err)
}
