// Package schedule holds the pure scheduling-grid logic: date handling,
// the fixed status vocabulary, the month reconciliation indices, the
// day-off balance calculator and the visibility filters. Nothing in here
// talks to the database.
package schedule

import (
	"strconv"
	"strings"
	"time"
)

// MaxRangeDays caps a single bulk fill operation.
const MaxRangeDays = 62

var weekdayShort = [7]string{"D", "S", "T", "Q", "Q", "S", "S"}

var monthNames = [12]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// Noon pins a date to 12:00 local time. Day records store this instant as
// dayRef: noon keeps the calendar day stable across timezone conversion.
func Noon(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.Local)
}

// DayKey returns the canonical YYYY-MM-DD key for a calendar day.
func DayKey(t time.Time) string {
	return t.Local().Format("2006-01-02")
}

// MonthKey returns the YYYY-MM key used for month scoping.
func MonthKey(t time.Time) string {
	return t.Local().Format("2006-01")
}

// MonthDays enumerates every day of a month as noon-pinned dates.
func MonthDays(year int, month time.Month) []time.Time {
	var days []time.Time
	d := time.Date(year, month, 1, 12, 0, 0, 0, time.Local)
	for d.Month() == month {
		days = append(days, d)
		d = d.AddDate(0, 0, 1)
	}
	return days
}

// MonthStart returns 00:00:00.000 of the first day of the month.
func MonthStart(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
}

// MonthEnd returns 23:59:59.999 of the last day of the month.
func MonthEnd(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 1, 0, 0, 0, 0, time.Local).Add(-time.Millisecond)
}

// MonthLabel renders "Fevereiro de 2026".
func MonthLabel(year int, month time.Month) string {
	return monthNames[month-1] + " de " + strconv.Itoa(year)
}

func IsWeekend(t time.Time) bool {
	wd := t.Local().Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// WeekdayShort returns the one-letter pt-BR weekday initial.
func WeekdayShort(t time.Time) string {
	return weekdayShort[t.Local().Weekday()]
}

// FormatBRDate renders dd/mm/yyyy.
func FormatBRDate(t time.Time) string {
	return t.Local().Format("02/01/2006")
}

// FormatBRDateTime renders "dd/mm/yyyy hh:mm", the free-text grammar used
// by cargo pickup/delivery fields.
func FormatBRDateTime(t time.Time) string {
	return t.Local().Format("02/01/2006 15:04")
}

// ParseBRDateTime parses "dd/mm/yyyy hh:mm". The time part is optional and
// defaults to 00:00. Impossible calendar dates (31/02) are rejected by
// checking the constructed date's fields against the input instead of
// relying on silent overflow.
func ParseBRDateTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	parts := strings.Fields(s)
	datePart := parts[0]
	timePart := "00:00"
	if len(parts) > 1 {
		timePart = parts[1]
	}

	dmy := strings.Split(datePart, "/")
	if len(dmy) != 3 {
		return time.Time{}, false
	}
	dd, err1 := strconv.Atoi(dmy[0])
	mm, err2 := strconv.Atoi(dmy[1])
	yyyy, err3 := strconv.Atoi(dmy[2])
	if err1 != nil || err2 != nil || err3 != nil || dd < 1 || mm < 1 || yyyy < 1 {
		return time.Time{}, false
	}

	hh, mi := 0, 0
	if hm := strings.Split(timePart, ":"); len(hm) >= 1 {
		if v, err := strconv.Atoi(hm[0]); err == nil {
			hh = v
		}
		if len(hm) >= 2 {
			if v, err := strconv.Atoi(hm[1]); err == nil {
				mi = v
			}
		}
	}

	t := time.Date(yyyy, time.Month(mm), dd, hh, mi, 0, 0, time.Local)
	if t.Year() != yyyy || t.Month() != time.Month(mm) || t.Day() != dd {
		return time.Time{}, false
	}
	return t, true
}

// ParseISODate parses YYYY-MM-DD into a noon-pinned date.
func ParseISODate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return Noon(t), true
}

// ClampRange noon-pins both ends and swaps them so start <= end.
func ClampRange(a, b time.Time) (start, end time.Time) {
	start, end = Noon(a), Noon(b)
	if start.After(end) {
		start, end = end, start
	}
	return start, end
}

// EnumerateDays lists every calendar day from start through end inclusive.
func EnumerateDays(start, end time.Time) []time.Time {
	var out []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// ResolveRange turns the optional from/to ISO date fields of a save request
// into the list of days to write, ascending. Reversed bounds are swapped;
// if either bound is missing or unparseable the range degrades to the
// single anchor day. A zero anchor with no usable range yields nil.
func ResolveRange(from, to string, anchor time.Time) []time.Time {
	d1, ok1 := ParseISODate(from)
	d2, ok2 := ParseISODate(to)
	if !ok1 || !ok2 {
		if anchor.IsZero() {
			return nil
		}
		return []time.Time{Noon(anchor)}
	}
	start, end := ClampRange(d1, d2)
	return EnumerateDays(start, end)
}
