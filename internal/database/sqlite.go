// internal/database/sqlite.go
package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const timeLayout = "2006-01-02 15:04:05"

const workoutColumns = `id, workout_type, training_type, readings, duration, distance,
	speed, calories, source, recorded_at, created_at`

var sortColumns = map[string]string{
	"created_at":  "created_at",
	"recorded_at": "recorded_at",
	"duration":    "duration",
	"distance":    "distance",
	"speed":       "speed",
	"calories":    "calories",
}

type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB opens (and if needed creates) the database at dbPath.
func NewSQLiteDB(dbPath string) (*SQLiteDB, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one connection keeps :memory: databases alive and serialises writers
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	sqlite := &SQLiteDB{db: db}
	if err := sqlite.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return sqlite, nil
}

func (s *SQLiteDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS workouts (
		id TEXT PRIMARY KEY,
		workout_type TEXT NOT NULL,
		training_type TEXT NOT NULL,
		readings TEXT NOT NULL,
		duration REAL NOT NULL,
		distance REAL NOT NULL,
		speed REAL NOT NULL,
		calories REAL NOT NULL,
		source TEXT NOT NULL DEFAULT '',
		recorded_at TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_workouts_workout_type ON workouts(workout_type);
	CREATE INDEX IF NOT EXISTS idx_workouts_recorded_at ON workouts(recorded_at);
	CREATE INDEX IF NOT EXISTS idx_workouts_created_at ON workouts(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// CreateWorkout inserts the workout, assigning ID and CreatedAt when unset.
func (s *SQLiteDB) CreateWorkout(workout *Workout) error {
	if workout.ID == "" {
		workout.ID = uuid.NewString()
	}
	if workout.CreatedAt.IsZero() {
		workout.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	readings, err := json.Marshal(workout.Readings)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO workouts (` + workoutColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.Exec(query,
		workout.ID, workout.WorkoutType, workout.TrainingType, string(readings),
		workout.Duration, workout.Distance, workout.Speed, workout.Calories,
		workout.Source, formatTime(workout.RecordedAt), formatTime(workout.CreatedAt),
	)
	return err
}

func (s *SQLiteDB) GetWorkout(id string) (*Workout, error) {
	query := `SELECT ` + workoutColumns + ` FROM workouts WHERE id = ?`

	w, err := scanWorkout(s.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return w, nil
}

func (s *SQLiteDB) GetWorkouts(limit, offset int) ([]Workout, error) {
	return s.FilterWorkouts(WorkoutFilters{Limit: limit, Offset: offset})
}

func (s *SQLiteDB) DeleteWorkout(id string) error {
	res, err := s.db.Exec(`DELETE FROM workouts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

func (s *SQLiteDB) FilterWorkouts(filters WorkoutFilters) ([]Workout, error) {
	query := `SELECT ` + workoutColumns + ` FROM workouts WHERE 1=1`

	var args []interface{}
	var conditions []string

	// Build WHERE conditions
	if filters.WorkoutType != "" {
		conditions = append(conditions, "workout_type = ?")
		args = append(args, filters.WorkoutType)
	}

	if filters.DateFrom != nil {
		conditions = append(conditions, "recorded_at >= ?")
		args = append(args, formatTime(*filters.DateFrom))
	}

	if filters.DateTo != nil {
		conditions = append(conditions, "recorded_at <= ?")
		args = append(args, formatTime(*filters.DateTo))
	}

	if filters.MinDistance > 0 {
		conditions = append(conditions, "distance >= ?")
		args = append(args, filters.MinDistance)
	}

	if filters.MinCalories > 0 {
		conditions = append(conditions, "calories >= ?")
		args = append(args, filters.MinCalories)
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	orderBy := "created_at"
	if column, ok := sortColumns[filters.SortBy]; ok {
		orderBy = column
	}

	order := "DESC"
	if strings.EqualFold(filters.SortOrder, "asc") {
		order = "ASC"
	}

	query += fmt.Sprintf(" ORDER BY %s %s, rowid %s", orderBy, order, order)

	// Add pagination
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)

		if filters.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filters.Offset)
		}
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := []Workout{}
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, *w)
	}

	return workouts, rows.Err()
}

func (s *SQLiteDB) GetStats() (*Stats, error) {
	stats := &Stats{ByType: map[string]int{}}

	err := s.db.QueryRow(`
	SELECT COUNT(*), COALESCE(SUM(duration), 0), COALESCE(SUM(distance), 0), COALESCE(SUM(calories), 0)
	FROM workouts`).Scan(&stats.Total, &stats.TotalDuration, &stats.TotalDistance, &stats.TotalCalories)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`SELECT workout_type, COUNT(*) FROM workouts GROUP BY workout_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var workoutType string
		var count int
		if err := rows.Scan(&workoutType, &count); err != nil {
			return nil, err
		}
		stats.ByType[workoutType] = count
	}

	return stats, rows.Err()
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWorkout(row rowScanner) (*Workout, error) {
	var w Workout
	var readings, recordedAt, createdAt string

	err := row.Scan(
		&w.ID, &w.WorkoutType, &w.TrainingType, &readings,
		&w.Duration, &w.Distance, &w.Speed, &w.Calories,
		&w.Source, &recordedAt, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(readings), &w.Readings); err != nil {
		return nil, fmt.Errorf("corrupt readings for workout %s: %w", w.ID, err)
	}
	if w.RecordedAt, err = parseTime(recordedAt); err != nil {
		return nil, err
	}
	if w.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}

	return &w, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(timeLayout, value)
}
