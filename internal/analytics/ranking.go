package analytics

import (
	"math"
	"sort"
	"time"

	"taskhabit-api/internal/dateutil"
)

// weekdayNames is the fixed Monday-first label sequence for weekday rankings.
var weekdayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// DayShare is one weekday's share of total completions.
type DayShare struct {
	Day        string `json:"day"`
	Percentage int    `json:"percentage"`
}

// ProductiveDays buckets completion instants by weekday (Monday-first),
// converts each bucket to a share of the total, and returns the top 3 sorted
// descending. Ties keep Monday-to-Sunday order. With no completions it
// returns the first 3 weekday names at 0%.
func ProductiveDays(completions []time.Time) []DayShare {
	var counts [7]int
	total := 0
	for _, at := range completions {
		counts[dateutil.WeekdayIndex(at)]++
		total++
	}

	if total == 0 {
		return []DayShare{
			{Day: weekdayNames[0], Percentage: 0},
			{Day: weekdayNames[1], Percentage: 0},
			{Day: weekdayNames[2], Percentage: 0},
		}
	}

	shares := make([]DayShare, 7)
	for i, count := range counts {
		shares[i] = DayShare{
			Day:        weekdayNames[i],
			Percentage: int(math.Round(float64(count) / float64(total) * 100)),
		}
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Percentage > shares[j].Percentage
	})
	return shares[:3]
}

// HabitConsistency is one habit's completion share over its log window.
type HabitConsistency struct {
	Title      string `json:"title"`
	Percentage int    `json:"percentage"`
}

// HabitLogs pairs a habit with its logs for consistency ranking; the caller
// pre-filters logs to the window of interest (trailing 30 days).
type HabitLogs struct {
	HabitID string
	Title   string
	Logs    []LogEntry
}

// RankHabitConsistency computes each habit's completed-to-total log share,
// sorts descending (ties keep input order) and returns the top 3. Habits
// with no logs in the window score 0. Fewer than 3 habits come back as-is.
func RankHabitConsistency(habits []HabitLogs) []HabitConsistency {
	ranked := make([]HabitConsistency, 0, len(habits))
	for _, h := range habits {
		completed := 0
		for _, log := range h.Logs {
			if log.Completed {
				completed++
			}
		}
		percentage := 0
		if len(h.Logs) > 0 {
			percentage = int(math.Round(float64(completed) / float64(len(h.Logs)) * 100))
		}
		ranked = append(ranked, HabitConsistency{Title: h.Title, Percentage: percentage})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Percentage > ranked[j].Percentage
	})
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}
	return ranked
}
