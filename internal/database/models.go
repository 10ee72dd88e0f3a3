// internal/database/models.go
package database

import (
	"errors"
	"time"

	"github.com/sstent/workoutstats/internal/training"
)

var ErrWorkoutNotFound = errors.New("workout not found")

// Workout is one computed summary together with the readings it came from.
type Workout struct {
	ID           string    `json:"id"`
	WorkoutType  string    `json:"workout_type"`  // package code: SWM, RUN, WLK
	TrainingType string    `json:"training_type"` // display label
	Readings     []float64 `json:"readings"`
	Duration     float64   `json:"duration"` // hours
	Distance     float64   `json:"distance"` // km
	Speed        float64   `json:"speed"`    // km/h
	Calories     float64   `json:"calories"` // kcal
	Source       string    `json:"source"`
	RecordedAt   time.Time `json:"recorded_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// Info rebuilds the summary message stored in the record.
func (w *Workout) Info() training.InfoMessage {
	return training.InfoMessage{
		TrainingType: w.TrainingType,
		Duration:     w.Duration,
		Distance:     w.Distance,
		Speed:        w.Speed,
		Calories:     w.Calories,
	}
}

type Stats struct {
	Total         int            `json:"total"`
	ByType        map[string]int `json:"by_type"`
	TotalDuration float64        `json:"total_duration"`
	TotalDistance float64        `json:"total_distance"`
	TotalCalories float64        `json:"total_calories"`
}

// Database interface
type Database interface {
	CreateWorkout(workout *Workout) error
	GetWorkout(id string) (*Workout, error)
	GetWorkouts(limit, offset int) ([]Workout, error)
	DeleteWorkout(id string) error

	// Search and filter
	FilterWorkouts(filters WorkoutFilters) ([]Workout, error)

	GetStats() (*Stats, error)

	Close() error
}

type WorkoutFilters struct {
	WorkoutType string
	DateFrom    *time.Time
	DateTo      *time.Time
	MinDistance float64
	MinCalories float64
	Limit       int
	Offset      int
	SortBy      string // created_at, recorded_at, duration, distance, speed, calories
	SortOrder   string // asc or desc
}
