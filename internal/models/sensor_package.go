package models

import "time"

// SensorPackage is one batch of readings collected by a tracker for a single workout.
type SensorPackage struct {
	WorkoutType string    `json:"workout_type" yaml:"type"`
	Data        []float64 `json:"data" yaml:"data"`
	Source      string    `json:"source,omitempty" yaml:"source,omitempty"`
	RecordedAt  time.Time `json:"recorded_at,omitempty" yaml:"recorded_at,omitempty"`
}

// AthleteProfile supplies the body measurements that activity files do not carry.
type AthleteProfile struct {
	WeightKG float64
	HeightCM float64
}
