package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2024-01-15T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, d.Hour())

	_, err = ParseDate("")
	assert.Error(t, err)
	_, err = ParseDate("January 15, 2024")
	assert.Error(t, err)
}

func TestParseProviderTime(t *testing.T) {
	assert.Equal(t, 2022, ParseProviderTime("2022-04-30T18:12:43.000Z").Year())
	assert.Equal(t, 2022, ParseProviderTime("2022-04-30T18:12:43").Year())
	assert.True(t, ParseProviderTime("not a time").IsZero())
	assert.True(t, ParseProviderTime("").IsZero())
}

func TestWithinRange(t *testing.T) {
	ts := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	before := ts.Add(-24 * time.Hour)
	after := ts.Add(24 * time.Hour)

	assert.True(t, WithinRange(ts, before, after))
	assert.True(t, WithinRange(ts, time.Time{}, after))
	assert.True(t, WithinRange(ts, before, time.Time{}))
	assert.False(t, WithinRange(ts, after, time.Time{}))
	assert.False(t, WithinRange(ts, time.Time{}, before))

	// A transfer without a parseable timestamp only passes an open window.
	assert.True(t, WithinRange(time.Time{}, time.Time{}, time.Time{}))
	assert.False(t, WithinRange(time.Time{}, before, time.Time{}))
}

func TestNowISO(t *testing.T) {
	_, err := time.Parse(time.RFC3339, NowISO())
	require.NoError(t, err)
}
