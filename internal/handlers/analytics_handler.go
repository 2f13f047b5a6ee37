package handlers

import (
	"log"
	"net/http"
	"time"

	"taskhabit-api/internal/analytics"
	"taskhabit-api/internal/cache"
	"taskhabit-api/internal/database"
	"taskhabit-api/internal/dateutil"
	"taskhabit-api/internal/models"

	"github.com/gin-gonic/gin"
)

// AnalyticsSummary is the dashboard headline payload
type AnalyticsSummary struct {
	TasksCompleted          int `json:"tasksCompleted"`
	TasksCompletedChange    int `json:"tasksCompletedChange"`
	LongestHabitStreak      int `json:"longestHabitStreak"`
	CurrentHabitStreak      int `json:"currentHabitStreak"`
	ProductivityScore       int `json:"productivityScore"`
	ProductivityScoreChange int `json:"productivityScoreChange"`
}

// summaryCacheTTL bounds how stale a cached summary may get between writes.
const summaryCacheTTL = 60 * time.Second

// summaryCache holds per-user analytics summaries; task and habit mutations
// invalidate the owner's entry so the dashboard reflects writes immediately.
var summaryCache = cache.NewSimpleCache[string, AnalyticsSummary](cache.Options{ConcurrencySafe: true})

func invalidateSummary(userID string) {
	summaryCache.Delete(userID)
}

// GetAnalyticsSummary handles GET /api/analytics/summary
func GetAnalyticsSummary(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	if summary, ok := summaryCache.Get(userID); ok {
		c.JSON(http.StatusOK, summary)
		return
	}

	db := database.GetDB()
	now := time.Now()
	oneWeekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)

	// Completed task counts per week (completion time approximated by the
	// last update, as the storage layer has no separate completed_at).
	var completedThisWeek, completedLastWeek int64
	if err := db.Model(&models.Task{}).
		Where("user_id = ? AND completed = ? AND updated_at >= ? AND updated_at <= ?", userID, true, oneWeekAgo, now).
		Count(&completedThisWeek).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute task stats"})
		return
	}
	if err := db.Model(&models.Task{}).
		Where("user_id = ? AND completed = ? AND updated_at >= ? AND updated_at < ?", userID, true, twoWeeksAgo, oneWeekAgo).
		Count(&completedLastWeek).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute task stats"})
		return
	}

	// Habit streaks over all completed logs.
	var logs []models.HabitLog
	if err := db.Where("user_id = ? AND completed = ?", userID, true).
		Order("date desc").Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch habit logs"})
		return
	}
	entries := make([]analytics.LogEntry, 0, len(logs))
	for _, l := range logs {
		entries = append(entries, analytics.LogEntry{HabitID: l.HabitID, Date: l.Date, Completed: l.Completed})
	}
	streaks := analytics.CalculateStreaks(entries, now)

	// Productivity over tasks created in each window.
	currentWindow, err := taskWindow(userID, oneWeekAgo, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute productivity"})
		return
	}
	priorWindow, err := taskWindow(userID, twoWeeksAgo, oneWeekAgo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute productivity"})
		return
	}

	summary := AnalyticsSummary{
		TasksCompleted:          int(completedThisWeek),
		TasksCompletedChange:    int(completedThisWeek - completedLastWeek),
		LongestHabitStreak:      streaks.Longest,
		CurrentHabitStreak:      streaks.Current,
		ProductivityScore:       analytics.ProductivityScore(currentWindow),
		ProductivityScoreChange: analytics.ScoreDelta(currentWindow, priorWindow),
	}
	summaryCache.Set(userID, summary, summaryCacheTTL)

	c.JSON(http.StatusOK, summary)
}

// taskWindow loads the completed flags of tasks created in [from, to).
func taskWindow(userID string, from, to time.Time) ([]analytics.TaskWindow, error) {
	var tasks []models.Task
	if err := database.GetDB().
		Select("completed").
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	window := make([]analytics.TaskWindow, 0, len(tasks))
	for _, t := range tasks {
		window = append(window, analytics.TaskWindow{Completed: t.Completed})
	}
	return window, nil
}

// GetWeeklyAnalytics handles GET /api/analytics/weekly
// Returns per-weekday completed task and habit counts for the current week
func GetWeeklyAnalytics(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	db := database.GetDB()
	now := time.Now()
	weekStart := dateutil.StartOfWeek(now)
	weekEnd := dateutil.EndOfWeek(now)

	var tasks []models.Task
	if err := db.Select("updated_at").
		Where("user_id = ? AND completed = ? AND updated_at >= ? AND updated_at <= ?", userID, true, weekStart, weekEnd).
		Find(&tasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}
	var logs []models.HabitLog
	if err := db.Select("date").
		Where("user_id = ? AND completed = ? AND date >= ? AND date <= ?", userID, true, weekStart, weekEnd).
		Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch habit logs"})
		return
	}

	taskTimes := make([]time.Time, 0, len(tasks))
	for _, t := range tasks {
		taskTimes = append(taskTimes, t.UpdatedAt)
	}
	habitTimes := make([]time.Time, 0, len(logs))
	for _, l := range logs {
		habitTimes = append(habitTimes, l.Date)
	}

	c.JSON(http.StatusOK, gin.H{
		"week": analytics.WeeklySeries(taskTimes, habitTimes, now),
	})
}

// GetMonthlyAnalytics handles GET /api/analytics/monthly
// Returns completed-task counts for the trailing six months versus the same
// months one year earlier
func GetMonthlyAnalytics(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var tasks []models.Task
	if err := database.GetDB().Select("updated_at").
		Where("user_id = ? AND completed = ?", userID, true).
		Find(&tasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	completions := make([]time.Time, 0, len(tasks))
	for _, t := range tasks {
		completions = append(completions, t.UpdatedAt)
	}

	c.JSON(http.StatusOK, gin.H{
		"months": analytics.MonthlySeries(completions, time.Now()),
	})
}

// GetProductiveDays handles GET /api/analytics/productive-days
// Returns the top 3 weekdays by share of completed tasks
func GetProductiveDays(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var tasks []models.Task
	if err := database.GetDB().Select("updated_at").
		Where("user_id = ? AND completed = ?", userID, true).
		Find(&tasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	completions := make([]time.Time, 0, len(tasks))
	for _, t := range tasks {
		completions = append(completions, t.UpdatedAt)
	}

	c.JSON(http.StatusOK, gin.H{
		"days": analytics.ProductiveDays(completions),
	})
}

// GetHabitConsistency handles GET /api/analytics/habit-consistency
// Returns the top 3 habits by completion share over the trailing 30 days.
// A failed log fetch for one habit skips that habit rather than aborting.
func GetHabitConsistency(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	db := database.GetDB()

	var habits []models.Habit
	if err := db.Where("user_id = ?", userID).Order("created_at desc").Find(&habits).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch habits"})
		return
	}

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)

	input := make([]analytics.HabitLogs, 0, len(habits))
	for _, habit := range habits {
		var logs []models.HabitLog
		if err := db.Where("habit_id = ? AND user_id = ? AND date >= ?", habit.ID, userID, thirtyDaysAgo).
			Find(&logs).Error; err != nil {
			log.Printf("habit consistency: skipping habit %s: %v", habit.ID, err)
			continue
		}
		entries := make([]analytics.LogEntry, 0, len(logs))
		for _, l := range logs {
			entries = append(entries, analytics.LogEntry{HabitID: l.HabitID, Date: l.Date, Completed: l.Completed})
		}
		input = append(input, analytics.HabitLogs{HabitID: habit.ID, Title: habit.Title, Logs: entries})
	}

	c.JSON(http.StatusOK, gin.H{
		"habits": analytics.RankHabitConsistency(input),
	})
}
