package analytics

import "math"

// TaskWindow is one task observed within a scoring window; only the completed
// flag matters.
type TaskWindow struct {
	Completed bool
}

// ProductivityScore returns the 0-100 percentage of completed tasks in the
// window, rounded half-up. An empty window scores 0 rather than being
// undefined, so window-over-window deltas are always well-defined.
func ProductivityScore(tasks []TaskWindow) int {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(tasks)) * 100))
}

// ScoreDelta returns the window-over-window change between the current and
// prior windows' productivity scores.
func ScoreDelta(current, prior []TaskWindow) int {
	return ProductivityScore(current) - ProductivityScore(prior)
}
