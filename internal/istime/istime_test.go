package istime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{"plain date", "2026-02-10", "2026-02-10", nil},
		{"datetime truncated", "2026-02-10T00:00:00Z", "2026-02-10", nil},
		{"datetime with offset truncated", "2026-02-10T18:30:00+05:30", "2026-02-10", nil},
		{"empty", "", "", ErrEmptyDate},
		{"wrong separator", "2026/02/10", "", ErrBadPattern},
		{"short year", "26-02-10", "", ErrBadPattern},
		{"trailing garbage", "2026-02-10x", "", ErrBadPattern},
		{"impossible day", "2026-02-30", "", ErrNotCalendar},
		{"month thirteen", "2026-13-01", "", ErrNotCalendar},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeDate(tc.raw)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// Date-only and midnight-UTC forms of the same day must normalize to the
// identical stored value.
func TestNormalizeDateIdempotent(t *testing.T) {
	a, err := NormalizeDate("2026-02-10")
	require.NoError(t, err)
	b, err := NormalizeDate("2026-02-10T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	again, err := NormalizeDate(a)
	require.NoError(t, err)
	assert.Equal(t, a, again)
}

func TestDayWindow(t *testing.T) {
	start, end, err := DayWindow("2026-02-10")
	require.NoError(t, err)

	// Midnight IST is 18:30 UTC the previous day.
	assert.Equal(t, time.Date(2026, 2, 9, 18, 30, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 2, 10, 18, 29, 59, 0, time.UTC), end)

	assert.Equal(t, "2026-02-10T00:00:00+05:30", FormatIST(start))
	assert.Equal(t, "2026-02-10T23:59:59+05:30", FormatIST(end))
}

func TestParseWallClock(t *testing.T) {
	// The Z designator is ignored: 09:00 wall clock means 09:00 IST.
	got, err := ParseWallClock("2026-02-10T09:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 10, 3, 30, 0, 0, time.UTC), got)

	// Bare datetime without zone parses the same way.
	bare, err := ParseWallClock("2026-02-10T09:00:00")
	require.NoError(t, err)
	assert.Equal(t, got, bare)

	// Space-separated variant.
	spaced, err := ParseWallClock("2026-02-10 09:00:00")
	require.NoError(t, err)
	assert.Equal(t, got, spaced)

	_, err = ParseWallClock("not-a-time")
	assert.Error(t, err)
}

func TestFormatISTRoundTrip(t *testing.T) {
	utc := time.Date(2026, 2, 9, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-02-10T00:00:00+05:30", FormatIST(utc))
}
