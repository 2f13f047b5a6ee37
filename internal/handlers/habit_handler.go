package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"taskhabit-api/internal/analytics"
	"taskhabit-api/internal/database"
	"taskhabit-api/internal/dateutil"
	"taskhabit-api/internal/models"
	"taskhabit-api/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateHabitRequest represents the request payload for creating a habit
type CreateHabitRequest struct {
	Title       string                `json:"title" binding:"required"`
	Description string                `json:"description"`
	Frequency   models.HabitFrequency `json:"frequency" binding:"required"`
	Duration    int                   `json:"duration" binding:"required,min=1"`
	StartDate   *time.Time            `json:"startDate"`
}

// UpdateHabitRequest represents the request payload for updating a habit.
// StartDate is intentionally absent: it is immutable after creation.
type UpdateHabitRequest struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Frequency   *models.HabitFrequency `json:"frequency"`
	Duration    *int                   `json:"duration"`
	Status      *models.HabitStatus    `json:"status"`
}

func broadcastHabitEvent(eventType, habitID, userID string) {
	invalidateSummary(userID)
	evt := map[string]any{
		"type":    eventType,
		"habitId": habitID,
		"userId":  userID,
		"version": 1,
	}
	if bytes, err := json.Marshal(evt); err == nil {
		realtime.GetHub().Broadcast(userID, bytes)
	}
}

// fetchOwnedHabit loads a habit by id and verifies ownership, writing the
// appropriate error response on failure (404 missing, 403 someone else's).
func fetchOwnedHabit(c *gin.Context, habitID, userID string) (*models.Habit, bool) {
	var habit models.Habit
	err := database.GetDB().Where("id = ?", habitID).First(&habit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Habit not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch habit"})
		}
		return nil, false
	}
	if habit.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to access this habit"})
		return nil, false
	}
	return &habit, true
}

// enrichHabit fills the derived Streak and CompletedToday fields from the
// habit's logs. Streak is the habit's current consecutive-day run (the same
// definition the analytics summary uses).
func enrichHabit(habit *models.Habit, logs []models.HabitLog, now time.Time) {
	entries := make([]analytics.LogEntry, 0, len(logs))
	todayKey := dateutil.DayKey(now)
	for _, log := range logs {
		entries = append(entries, analytics.LogEntry{
			HabitID:   log.HabitID,
			Date:      log.Date,
			Completed: log.Completed,
		})
		if log.Day == todayKey && log.Completed {
			habit.CompletedToday = true
		}
	}
	habit.Streak = analytics.HabitStreak(entries, habit.ID, now)
}

// GetHabits handles GET /api/habits
// Returns the authenticated user's habits, newest first, each enriched with
// its current streak and completed-today flag
func GetHabits(c *gin.Context) {
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

	var logs []models.HabitLog
	if err := db.Where("user_id = ?", userID).Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch habit logs"})
		return
	}

	logsByHabit := make(map[string][]models.HabitLog, len(habits))
	for _, log := range logs {
		logsByHabit[log.HabitID] = append(logsByHabit[log.HabitID], log)
	}

	now := time.Now()
	for i := range habits {
		enrichHabit(&habits[i], logsByHabit[habits[i].ID], now)
	}

	c.JSON(http.StatusOK, gin.H{
		"habits": habits,
		"count":  len(habits),
	})
}

// GetHabitByID handles GET /api/habits/:id
func GetHabitByID(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	habit, ok := fetchOwnedHabit(c, c.Param("id"), userID)
	if !ok {
		return
	}

	var logs []models.HabitLog
	if err := database.GetDB().Where("habit_id = ?", habit.ID).Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch habit logs"})
		return
	}
	enrichHabit(habit, logs, time.Now())

	c.JSON(http.StatusOK, habit)
}

// CreateHabit handles POST /api/habits
// Creates an active habit; the end date is derived from the start date,
// frequency and duration
func CreateHabit(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var req CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.Frequency.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid frequency"})
		return
	}

	startDate := time.Now()
	if req.StartDate != nil {
		startDate = *req.StartDate
	}

	habit := models.Habit{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Frequency:   req.Frequency,
		Duration:    req.Duration,
		StartDate:   startDate,
		EndDate:     dateutil.AdvanceDate(startDate, req.Frequency, req.Duration),
		Status:      models.HabitActive,
		UserID:      userID,
	}

	if err := database.GetDB().Create(&habit).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create habit"})
		return
	}

	broadcastHabitEvent("habit_created", habit.ID, userID)

	c.JSON(http.StatusCreated, habit)
}

// UpdateHabit handles PUT /api/habits/:id
// When frequency or duration change, the end date is recomputed from the
// unchanged start date
func UpdateHabit(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	habit, ok := fetchOwnedHabit(c, c.Param("id"), userID)
	if !ok {
		return
	}

	var req UpdateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title != nil {
		habit.Title = *req.Title
	}
	if req.Description != nil {
		habit.Description = *req.Description
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		habit.Status = *req.Status
	}

	if req.Frequency != nil || req.Duration != nil {
		if req.Frequency != nil {
			if !req.Frequency.IsValid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid frequency"})
				return
			}
			habit.Frequency = *req.Frequency
		}
		if req.Duration != nil {
			if *req.Duration < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Duration must be at least 1"})
				return
			}
			habit.Duration = *req.Duration
		}
		habit.EndDate = dateutil.AdvanceDate(habit.StartDate, habit.Frequency, habit.Duration)
	}

	if err := database.GetDB().Save(habit).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update habit"})
		return
	}

	broadcastHabitEvent("habit_updated", habit.ID, userID)

	c.JSON(http.StatusOK, habit)
}

// PauseHabit handles POST /api/habits/:id/pause
// Transitions an active habit to paused; logs are untouched
func PauseHabit(c *gin.Context) {
	transitionHabit(c, models.HabitActive, models.HabitPaused, "habit_paused")
}

// ResumeHabit handles POST /api/habits/:id/resume
// Transitions a paused habit back to active
func ResumeHabit(c *gin.Context) {
	transitionHabit(c, models.HabitPaused, models.HabitActive, "habit_resumed")
}

func transitionHabit(c *gin.Context, from, to models.HabitStatus, eventType string) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	habit, ok := fetchOwnedHabit(c, c.Param("id"), userID)
	if !ok {
		return
	}

	if habit.Status != from {
		c.JSON(http.StatusConflict, gin.H{"error": "Habit is not " + string(from)})
		return
	}

	habit.Status = to
	if err := database.GetDB().Model(habit).Update("status", to).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update habit status"})
		return
	}

	broadcastHabitEvent(eventType, habit.ID, userID)

	c.JSON(http.StatusOK, habit)
}

// ToggleHabitLog handles POST /api/habits/:id/toggle
// Flips today's log for an active habit, creating it completed if absent.
// The find-or-flip runs in a transaction; the (habit_id, day) unique index
// turns a racing duplicate insert into a constraint error instead of a
// second row. Toggling on or after the habit's end date completes the habit.
func ToggleHabitLog(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	habit, ok := fetchOwnedHabit(c, c.Param("id"), userID)
	if !ok {
		return
	}

	if habit.Status != models.HabitActive {
		c.JSON(http.StatusConflict, gin.H{"error": "Only active habits can be toggled"})
		return
	}

	now := time.Now()
	todayKey := dateutil.DayKey(now)

	var log models.HabitLog
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		err := tx.Where("habit_id = ? AND day = ?", habit.ID, todayKey).First(&log).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log = models.HabitLog{
				ID:        uuid.NewString(),
				HabitID:   habit.ID,
				UserID:    userID,
				Date:      dateutil.StartOfDay(now),
				Day:       todayKey,
				Completed: true,
			}
			return tx.Create(&log).Error
		}
		if err != nil {
			return err
		}
		log.Completed = !log.Completed
		return tx.Model(&log).Update("completed", log.Completed).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle habit log"})
		return
	}

	// Logging a completion on or after the end date finishes the habit.
	if habit.Status == models.HabitActive && !now.Before(habit.EndDate) {
		habit.Status = models.HabitCompleted
		if err := database.GetDB().Model(habit).Update("status", models.HabitCompleted).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete habit"})
			return
		}
	}

	broadcastHabitEvent("habit_log_toggled", habit.ID, userID)

	c.JSON(http.StatusOK, gin.H{
		"log":   log,
		"habit": habit,
	})
}

// DeleteHabit handles DELETE /api/habits/:id
// Deletes a habit and all of its logs in one transaction
func DeleteHabit(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	habit, ok := fetchOwnedHabit(c, c.Param("id"), userID)
	if !ok {
		return
	}

	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("habit_id = ?", habit.ID).Delete(&models.HabitLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(habit).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete habit"})
		return
	}

	broadcastHabitEvent("habit_deleted", habit.ID, userID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Habit deleted successfully",
		"id":      habit.ID,
	})
}
