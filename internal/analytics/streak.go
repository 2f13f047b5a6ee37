package analytics

import (
	"sort"
	"time"

	"taskhabit-api/internal/dateutil"
)

// LogEntry is the slice of a habit log the streak calculator needs.
type LogEntry struct {
	HabitID   string
	Date      time.Time
	Completed bool
}

// StreakResult holds the streaks computed across a set of habits.
type StreakResult struct {
	Longest int `json:"longest"`
	Current int `json:"current"`
}

// maxStreakGap is the contiguity threshold between consecutive log entries.
// It is a wall-clock comparison, not a calendar-day one; logs are stored
// day-truncated so the two coincide in practice.
const maxStreakGap = 24 * time.Hour

// CalculateStreaks computes the longest consecutive-day run observed across
// all habits and the longest run still live as of now (most recent entry on
// now's day or the day before). Only entries with Completed set participate.
// An empty input yields the zero result.
func CalculateStreaks(logs []LogEntry, now time.Time) StreakResult {
	byHabit := make(map[string][]LogEntry)
	for _, log := range logs {
		if !log.Completed {
			continue
		}
		byHabit[log.HabitID] = append(byHabit[log.HabitID], log)
	}

	today := dateutil.StartOfDay(now)
	yesterday := today.AddDate(0, 0, -1)

	var result StreakResult
	for _, habitLogs := range byHabit {
		// Most recent first.
		sort.Slice(habitLogs, func(i, j int) bool {
			return habitLogs[i].Date.After(habitLogs[j].Date)
		})

		streak := 0
		runHead := habitLogs[0].Date
		for i := range habitLogs {
			streak++

			last := i == len(habitLogs)-1
			if !last {
				gap := habitLogs[i].Date.Sub(habitLogs[i+1].Date)
				if gap < 0 {
					gap = -gap
				}
				if gap <= maxStreakGap {
					continue
				}
			}

			// Run ended here.
			if streak > result.Longest {
				result.Longest = streak
			}
			if !dateutil.StartOfDay(runHead).Before(yesterday) && streak > result.Current {
				result.Current = streak
			}
			streak = 0
			if !last {
				runHead = habitLogs[i+1].Date
			}
		}
	}

	return result
}

// HabitStreak computes the current consecutive-day run for a single habit:
// the length of the newest run whose most recent completion is on now's day
// or the day before, 0 otherwise.
func HabitStreak(logs []LogEntry, habitID string, now time.Time) int {
	scoped := make([]LogEntry, 0, len(logs))
	for _, log := range logs {
		if log.HabitID == habitID {
			scoped = append(scoped, log)
		}
	}
	return CalculateStreaks(scoped, now).Current
}
