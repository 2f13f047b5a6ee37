package models

import (
	"time"

	"gorm.io/gorm"
)

// HabitFrequency represents how often a habit is expected to be performed
type HabitFrequency string

const (
	FrequencyDaily   HabitFrequency = "daily"
	FrequencyWeekly  HabitFrequency = "weekly"
	FrequencyMonthly HabitFrequency = "monthly"
)

// IsValid reports whether f is a known habit frequency.
func (f HabitFrequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// HabitStatus represents the lifecycle state of a habit
type HabitStatus string

const (
	HabitActive    HabitStatus = "active"
	HabitPaused    HabitStatus = "paused"
	HabitCompleted HabitStatus = "completed"
	// HabitFailed is a valid stored state but no rule transitions into it
	// automatically; it is reachable only by a direct status update.
	HabitFailed HabitStatus = "failed"
)

// IsValid reports whether s is a known habit status.
func (s HabitStatus) IsValid() bool {
	switch s {
	case HabitActive, HabitPaused, HabitCompleted, HabitFailed:
		return true
	}
	return false
}

// Habit represents a recurring commitment tracked over a bounded period.
// EndDate is derived: start_date advanced by duration frequency units. It is
// recomputed whenever frequency or duration change; StartDate is immutable
// after creation.
type Habit struct {
	ID          string         `json:"id" gorm:"primaryKey"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description"`
	Frequency   HabitFrequency `json:"frequency" gorm:"not null"`
	Duration    int            `json:"duration" gorm:"not null"`
	StartDate   time.Time      `json:"startDate" gorm:"column:start_date"`
	EndDate     time.Time      `json:"endDate" gorm:"column:end_date"`
	Status      HabitStatus    `json:"status" gorm:"not null;default:'active'"`
	UserID      string         `json:"-" gorm:"column:user_id;index"`

	// Derived on read, never stored.
	Streak         int  `json:"streak" gorm:"-"`
	CompletedToday bool `json:"completedToday" gorm:"-"`

	gorm.Model
}

// TableName specifies the table name for Habit Model
func (Habit) TableName() string {
	return "habits"
}

// HabitLog is one per-day completion record for a habit. Day holds the
// calendar day of Date in "2006-01-02" form; the composite unique index on
// (habit_id, day) guarantees at most one log per habit per day even under
// concurrent toggles.
type HabitLog struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	HabitID   string    `json:"habitId" gorm:"column:habit_id;uniqueIndex:idx_habit_day"`
	UserID    string    `json:"-" gorm:"column:user_id;index"`
	Date      time.Time `json:"date" gorm:"not null"`
	Day       string    `json:"-" gorm:"uniqueIndex:idx_habit_day"`
	Completed bool      `json:"completed" gorm:"default:false"`
	Notes     string    `json:"notes"`
	gorm.Model
}

// TableName specifies the table name for HabitLog Model
func (HabitLog) TableName() string {
	return "habit_logs"
}
