package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoonPinsCalendarDay(t *testing.T) {
	late := time.Date(2026, time.February, 9, 23, 45, 10, 0, time.Local)
	noon := Noon(late)

	assert.Equal(t, 12, noon.Hour())
	assert.Equal(t, "2026-02-09", DayKey(noon))
	assert.Equal(t, "2026-02", MonthKey(noon))
}

func TestMonthDays(t *testing.T) {
	days := MonthDays(2026, time.February)
	require.Len(t, days, 28)
	assert.Equal(t, "2026-02-01", DayKey(days[0]))
	assert.Equal(t, "2026-02-28", DayKey(days[27]))
	for _, d := range days {
		assert.Equal(t, 12, d.Hour())
	}

	assert.Len(t, MonthDays(2024, time.February), 29)
	assert.Len(t, MonthDays(2026, time.January), 31)
}

func TestMonthBounds(t *testing.T) {
	start := MonthStart(2026, time.February)
	end := MonthEnd(2026, time.February)

	assert.Equal(t, "2026-02-01", DayKey(start))
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, "2026-02-28", DayKey(end))
	assert.Equal(t, 23, end.Hour())
	assert.True(t, end.Before(MonthStart(2026, time.March)))
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Fevereiro de 2026", MonthLabel(2026, time.February))
	assert.Equal(t, "Dezembro de 2025", MonthLabel(2025, time.December))
}

func TestParseBRDateTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"08/02/2026 07:30", "08/02/2026 07:30", true},
		{"09/02/2026", "09/02/2026 00:00", true}, // time optional
		{"  01/01/2026 23:59  ", "01/01/2026 23:59", true},
		{"31/02/2026 10:00", "", false}, // impossible calendar date
		{"29/02/2025 10:00", "", false},
		{"29/02/2024 10:00", "29/02/2024 10:00", true},
		{"00/01/2026", "", false},
		{"10/13/2026", "", false},
		{"2026-02-08", "", false},
		{"", "", false},
		{"abc", "", false},
	}

	for _, tc := range tests {
		got, ok := ParseBRDateTime(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, FormatBRDateTime(got), "input %q", tc.in)
		}
	}
}

func TestBRDateTimeRoundTrip(t *testing.T) {
	orig := time.Date(2026, time.February, 9, 14, 5, 0, 0, time.Local)
	parsed, ok := ParseBRDateTime(FormatBRDateTime(orig))
	require.True(t, ok)
	assert.True(t, parsed.Equal(orig))
}

func TestParseISODate(t *testing.T) {
	d, ok := ParseISODate("2026-02-08")
	require.True(t, ok)
	assert.Equal(t, "2026-02-08", DayKey(d))
	assert.Equal(t, 12, d.Hour())

	_, ok = ParseISODate("08/02/2026")
	assert.False(t, ok)
	_, ok = ParseISODate("")
	assert.False(t, ok)
	_, ok = ParseISODate("2026-02-31")
	assert.False(t, ok)
}

func TestClampRangeSwapsReversedBounds(t *testing.T) {
	a := time.Date(2026, time.February, 10, 12, 0, 0, 0, time.Local)
	b := time.Date(2026, time.February, 8, 12, 0, 0, 0, time.Local)

	start, end := ClampRange(a, b)
	assert.Equal(t, "2026-02-08", DayKey(start))
	assert.Equal(t, "2026-02-10", DayKey(end))
}

func TestEnumerateDaysInclusive(t *testing.T) {
	start, _ := ParseISODate("2026-02-27")
	end, _ := ParseISODate("2026-03-02")

	days := EnumerateDays(start, end)
	require.Len(t, days, 4)
	assert.Equal(t, "2026-02-27", DayKey(days[0]))
	assert.Equal(t, "2026-02-28", DayKey(days[1]))
	assert.Equal(t, "2026-03-01", DayKey(days[2]))
	assert.Equal(t, "2026-03-02", DayKey(days[3]))
}

func TestResolveRange(t *testing.T) {
	anchor := time.Date(2026, time.February, 5, 12, 0, 0, 0, time.Local)

	// Reversed bounds come back ascending after the swap.
	days := ResolveRange("2026-02-10", "2026-02-08", anchor)
	require.Len(t, days, 3)
	assert.Equal(t, "2026-02-08", DayKey(days[0]))
	assert.Equal(t, "2026-02-09", DayKey(days[1]))
	assert.Equal(t, "2026-02-10", DayKey(days[2]))

	// Missing or broken bounds degrade to the anchor day.
	for _, tc := range [][2]string{{"", ""}, {"2026-02-08", ""}, {"", "2026-02-10"}, {"junk", "2026-02-10"}} {
		days := ResolveRange(tc[0], tc[1], anchor)
		require.Len(t, days, 1, "from=%q to=%q", tc[0], tc[1])
		assert.Equal(t, "2026-02-05", DayKey(days[0]))
	}

	assert.Nil(t, ResolveRange("", "", time.Time{}))
}

func TestWeekdayHelpers(t *testing.T) {
	sunday := time.Date(2026, time.February, 8, 12, 0, 0, 0, time.Local)
	monday := sunday.AddDate(0, 0, 1)
	saturday := sunday.AddDate(0, 0, -1)

	assert.True(t, IsWeekend(sunday))
	assert.True(t, IsWeekend(saturday))
	assert.False(t, IsWeekend(monday))
	assert.Equal(t, "D", WeekdayShort(sunday))
	assert.Equal(t, "S", WeekdayShort(monday))
}
