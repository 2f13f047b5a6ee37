package dateutil

import (
	"time"

	"taskhabit-api/internal/models"
)

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekdayIndex maps t's weekday to a Monday-first index (Monday=0 .. Sunday=6).
// time.Weekday counts Sunday=0, so the index shifts by one and wraps.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) - 1 + 7) % 7
}

// StartOfWeek returns local midnight of the Monday of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, -WeekdayIndex(t))
}

// EndOfWeek returns the last nanosecond of the Sunday of the week containing t.
func EndOfWeek(t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, 7).Add(-time.Nanosecond)
}

// StartOfMonth returns local midnight of the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last nanosecond of the last day of t's month.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// EachDay enumerates local-midnight instants from the day containing start
// through the day containing end, inclusive. Returns nil when end precedes
// start.
func EachDay(start, end time.Time) []time.Time {
	from := StartOfDay(start)
	to := StartOfDay(end)
	if to.Before(from) {
		return nil
	}
	var days []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// AdvanceDate returns base advanced by count frequency units: daily adds
// count days, weekly count*7 days, monthly count calendar months. Month
// overflow follows time.AddDate normalization, so 2024-01-31 plus one month
// is 2024-03-02.
func AdvanceDate(base time.Time, frequency models.HabitFrequency, count int) time.Time {
	switch frequency {
	case models.FrequencyWeekly:
		return base.AddDate(0, 0, count*7)
	case models.FrequencyMonthly:
		return base.AddDate(0, count, 0)
	default:
		return base.AddDate(0, 0, count)
	}
}

// DayKey formats t's calendar day as "2006-01-02", the key used by the
// habit-log uniqueness index.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
