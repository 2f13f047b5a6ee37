package analytics

import (
	"time"

	"taskhabit-api/internal/dateutil"
)

// WeeklyPoint is one weekday's completed task and habit-log counts within the
// current week.
type WeeklyPoint struct {
	Name   string `json:"name"`
	Tasks  int    `json:"tasks"`
	Habits int    `json:"habits"`
}

// weekdayAbbrevs labels weekly series points, Monday-first.
var weekdayAbbrevs = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeeklySeries buckets task completion and habit completion instants into the
// Monday-first week containing now. Instants outside the week are ignored.
func WeeklySeries(taskCompletions, habitCompletions []time.Time, now time.Time) []WeeklyPoint {
	weekStart := dateutil.StartOfWeek(now)
	weekEnd := dateutil.EndOfWeek(now)

	points := make([]WeeklyPoint, 7)
	for i := range points {
		points[i] = WeeklyPoint{Name: weekdayAbbrevs[i]}
	}

	for _, at := range taskCompletions {
		if at.Before(weekStart) || at.After(weekEnd) {
			continue
		}
		points[dateutil.WeekdayIndex(at)].Tasks++
	}
	for _, at := range habitCompletions {
		if at.Before(weekStart) || at.After(weekEnd) {
			continue
		}
		points[dateutil.WeekdayIndex(at)].Habits++
	}
	return points
}

// MonthlyPoint compares one month's completed-task count against the same
// month one year earlier.
type MonthlyPoint struct {
	Name     string `json:"name"`
	Current  int    `json:"current"`
	Previous int    `json:"previous"`
}

// MonthlySeries counts completion instants per month for the six months
// ending at now, paired with the count for the same month one year earlier.
func MonthlySeries(completions []time.Time, now time.Time) []MonthlyPoint {
	points := make([]MonthlyPoint, 0, 6)
	for i := 5; i >= 0; i-- {
		// Anchor at the first of the month so subtracting months never
		// normalizes across a short month.
		month := dateutil.StartOfMonth(now).AddDate(0, -i, 0)
		points = append(points, MonthlyPoint{
			Name:     month.Format("Jan 2006"),
			Current:  countInMonth(completions, month),
			Previous: countInMonth(completions, month.AddDate(-1, 0, 0)),
		})
	}
	return points
}

func countInMonth(instants []time.Time, month time.Time) int {
	start := dateutil.StartOfMonth(month)
	end := dateutil.EndOfMonth(month)
	count := 0
	for _, at := range instants {
		if !at.Before(start) && !at.After(end) {
			count++
		}
	}
	return count
}
