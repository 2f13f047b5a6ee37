package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"taskhabit-api/internal/analytics"
	"taskhabit-api/internal/database"
	"taskhabit-api/internal/dateutil"
	"taskhabit-api/internal/middleware"
	"taskhabit-api/internal/models"
	"taskhabit-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func setupAnalyticsRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db
	summaryCache.Clear()

	r := gin.New()
	r.Use(middleware.JWTAuthMiddleware())
	r.GET("/api/analytics/summary", GetAnalyticsSummary)
	r.GET("/api/analytics/weekly", GetWeeklyAnalytics)
	r.GET("/api/analytics/monthly", GetMonthlyAnalytics)
	r.GET("/api/analytics/productive-days", GetProductiveDays)
	r.GET("/api/analytics/habit-consistency", GetHabitConsistency)
	r.POST("/api/tasks", CreateTask)
	return r
}

func seedTask(t *testing.T, userID string, completed bool) {
	t.Helper()
	status := models.StatusPending
	if completed {
		status = models.StatusCompleted
	}
	require.NoError(t, database.GetDB().Create(&models.Task{
		ID:        uuid.NewString(),
		Title:     "seeded",
		Priority:  models.PriorityMedium,
		Status:    status,
		Completed: completed,
		UserID:    userID,
	}).Error)
}

func seedHabitWithLogs(t *testing.T, userID, title string, completedDays []int) models.Habit {
	t.Helper()
	habit := models.Habit{
		ID:        uuid.NewString(),
		Title:     title,
		Frequency: models.FrequencyDaily,
		Duration:  60,
		StartDate: time.Now().AddDate(0, 0, -30),
		EndDate:   time.Now().AddDate(0, 0, 30),
		Status:    models.HabitActive,
		UserID:    userID,
	}
	require.NoError(t, database.GetDB().Create(&habit).Error)
	for _, offset := range completedDays {
		day := dateutil.StartOfDay(time.Now()).AddDate(0, 0, -offset)
		require.NoError(t, database.GetDB().Create(&models.HabitLog{
			ID:        uuid.NewString(),
			HabitID:   habit.ID,
			UserID:    userID,
			Date:      day,
			Day:       dateutil.DayKey(day),
			Completed: true,
		}).Error)
	}
	return habit
}

func TestGetAnalyticsSummary(t *testing.T) {
	r := setupAnalyticsRouter(t)
	token := userToken(t, "u-1", "alice")

	// 3 completed of 4 tasks this week; live 3-day habit streak.
	seedTask(t, "u-1", true)
	seedTask(t, "u-1", true)
	seedTask(t, "u-1", true)
	seedTask(t, "u-1", false)
	seedHabitWithLogs(t, "u-1", "run", []int{0, 1, 2})

	w := taskRequest(t, r, http.MethodGet, "/api/analytics/summary", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summary AnalyticsSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	require.Equal(t, 3, summary.TasksCompleted)
	require.Equal(t, 3, summary.CurrentHabitStreak)
	require.Equal(t, 3, summary.LongestHabitStreak)
	require.Equal(t, 75, summary.ProductivityScore)
	// Nothing in the prior week, so the delta equals the current score.
	require.Equal(t, 75, summary.ProductivityScoreChange)
}

func TestGetAnalyticsSummary_EmptyUserIsAllZero(t *testing.T) {
	r := setupAnalyticsRouter(t)
	token := userToken(t, "u-9", "nobody")

	w := taskRequest(t, r, http.MethodGet, "/api/analytics/summary", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summary AnalyticsSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	require.Equal(t, AnalyticsSummary{}, summary)
}

func TestGetAnalyticsSummary_CacheInvalidatedByWrite(t *testing.T) {
	r := setupAnalyticsRouter(t)
	token := userToken(t, "u-1", "alice")

	w := taskRequest(t, r, http.MethodGet, "/api/analytics/summary", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, summaryCache.Has("u-1"))

	// Creating a task drops the cached summary...
	w = taskRequest(t, r, http.MethodPost, "/api/tasks", token, map[string]any{
		"title":  "done already",
		"status": "completed",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.False(t, summaryCache.Has("u-1"))

	// ...so the next read reflects the write.
	w = taskRequest(t, r, http.MethodGet, "/api/analytics/summary", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary AnalyticsSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	require.Equal(t, 1, summary.TasksCompleted)
	require.Equal(t, 100, summary.ProductivityScore)
}

func TestGetWeeklyAnalytics(t *testing.T) {
	r := setupAnalyticsRouter(t)
	token := userToken(t, "u-1", "alice")

	seedTask(t, "u-1", true)
	seedHabitWithLogs(t, "u-1", "run", []int{0})

	w := taskRequest(t, r, http.MethodGet, "/api/analytics/weekly", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Week []analytics.WeeklyPoint `json:"week"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Week, 7)

	idx := dateutil.WeekdayIndex(time.Now())
	require.Equal(t, 1, resp.Week[idx].Tasks)
	require.Equal(t, 1, resp.Week[idx].Habits)
}

func TestGetMonthlyAnalytics(t *testing.T) {
	r := setupAnalyticsRouter(t)
	token := userToken(t, "u-1", "alice")

	seedTask(t, "u-1", true)
	seedTask(t, "u-1", true)

	w := taskRequest(t, r, http.MethodGet, "/api/analytics/monthly", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Months []analytics.MonthlyPoint `json:"months"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Months, 6)
	require.Equal(t, 2, resp.Months[5].Current)
}

func TestGetProductiveDays_Fallback(t *testing.T) {
	r := setupAnalyticsRouter(t)
	token := userToken(t, "u-1", "alice")

	w := taskRequest(t, r, http.MethodGet, "/api/analytics/productive-days", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Days []analytics.DayShare `json:"days"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, []analytics.DayShare{
		{Day: "Monday", Percentage: 0},
		{Day: "Tuesday", Percentage: 0},
		{Day: "Wednesday", Percentage: 0},
	}, resp.Days)
}

func TestGetProductiveDays_RanksToday(t *testing.T) {
	r := setupAnalyticsRouter(t)
	token := userToken(t, "u-1", "alice")

	seedTask(t, "u-1", true)
	seedTask(t, "u-1", true)

	w := taskRequest(t, r, http.MethodGet, "/api/analytics/productive-days", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Days []analytics.DayShare `json:"days"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Days, 3)
	require.Equal(t, 100, resp.Days[0].Percentage)
}

func TestGetHabitConsistency(t *testing.T) {
	r := setupAnalyticsRouter(t)
	token := userToken(t, "u-1", "alice")

	// Fully consistent habit plus one with a half-completed window.
	seedHabitWithLogs(t, "u-1", "reading", []int{0, 1, 2, 3})
	partial := seedHabitWithLogs(t, "u-1", "running", []int{0, 1})
	for _, offset := range []int{2, 3} {
		day := dateutil.StartOfDay(time.Now()).AddDate(0, 0, -offset)
		require.NoError(t, database.GetDB().Create(&models.HabitLog{
			ID:      uuid.NewString(),
			HabitID: partial.ID,
			UserID:  "u-1",
			Date:    day,
			Day:     dateutil.DayKey(day),
		}).Error)
	}

	w := taskRequest(t, r, http.MethodGet, "/api/analytics/habit-consistency", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Habits []analytics.HabitConsistency `json:"habits"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Habits, 2)
	require.Equal(t, analytics.HabitConsistency{Title: "reading", Percentage: 100}, resp.Habits[0])
	require.Equal(t, analytics.HabitConsistency{Title: "running", Percentage: 50}, resp.Habits[1])
}
