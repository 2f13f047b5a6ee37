package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWeeklySeries(t *testing.T) {
	// Week of Monday 2024-06-03.
	now := time.Date(2024, time.June, 6, 12, 0, 0, 0, time.Local) // Thursday
	tasks := []time.Time{
		time.Date(2024, time.June, 3, 9, 0, 0, 0, time.Local),  // Monday
		time.Date(2024, time.June, 3, 17, 0, 0, 0, time.Local), // Monday
		time.Date(2024, time.June, 5, 8, 0, 0, 0, time.Local),  // Wednesday
		time.Date(2024, time.May, 30, 8, 0, 0, 0, time.Local),  // outside the week
	}
	habits := []time.Time{
		time.Date(2024, time.June, 9, 0, 0, 0, 0, time.Local), // Sunday
	}

	points := WeeklySeries(tasks, habits, now)
	require.Len(t, points, 7)
	require.Equal(t, WeeklyPoint{Name: "Mon", Tasks: 2}, points[0])
	require.Equal(t, WeeklyPoint{Name: "Wed", Tasks: 1}, points[2])
	require.Equal(t, WeeklyPoint{Name: "Sun", Habits: 1}, points[6])
	require.Equal(t, WeeklyPoint{Name: "Thu"}, points[3])
}

func TestMonthlySeries(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local)
	completions := []time.Time{
		time.Date(2024, time.June, 1, 10, 0, 0, 0, time.Local),
		time.Date(2024, time.June, 30, 10, 0, 0, 0, time.Local),
		time.Date(2024, time.March, 5, 10, 0, 0, 0, time.Local),
		time.Date(2023, time.June, 20, 10, 0, 0, 0, time.Local), // previous year
	}

	points := MonthlySeries(completions, now)
	require.Len(t, points, 6)
	require.Equal(t, "Jan 2024", points[0].Name)
	require.Equal(t, "Jun 2024", points[5].Name)
	require.Equal(t, 2, points[5].Current)
	require.Equal(t, 1, points[5].Previous)
	require.Equal(t, 1, points[2].Current) // Mar 2024
	require.Equal(t, 0, points[0].Current)
}

func TestMonthlySeries_AnchorsAcrossShortMonths(t *testing.T) {
	// From May 31, subtracting months must land in the right months rather
	// than normalizing through short ones.
	now := time.Date(2024, time.May, 31, 12, 0, 0, 0, time.Local)
	points := MonthlySeries(nil, now)
	require.Equal(t, "Dec 2023", points[0].Name)
	require.Equal(t, "Feb 2024", points[2].Name)
	require.Equal(t, "May 2024", points[5].Name)
}
