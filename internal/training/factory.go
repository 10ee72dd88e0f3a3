package training

import (
	"fmt"
	"sort"
)

type constructor struct {
	readings int
	build    func(data []float64) Training
}

var trainingTypes = map[string]constructor{
	"SWM": {readings: 5, build: func(d []float64) Training {
		return NewSwimming(int(d[0]), d[1], d[2], d[3], d[4])
	}},
	"RUN": {readings: 3, build: func(d []float64) Training {
		return NewRunning(int(d[0]), d[1], d[2])
	}},
	"WLK": {readings: 4, build: func(d []float64) Training {
		return NewSportsWalking(int(d[0]), d[1], d[2], d[3])
	}},
}

// ReadPackage builds the workout for a sensor package code and its readings.
// Readings are positional: action, duration, weight, then the type's extras.
func ReadPackage(workoutType string, data []float64) (Training, error) {
	c, ok := trainingTypes[workoutType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWorkoutType, workoutType)
	}
	if len(data) != c.readings {
		return nil, fmt.Errorf("%w: %s expects %d, got %d", ErrReadingsArity, workoutType, c.readings, len(data))
	}
	return c.build(data), nil
}

// WorkoutTypes returns the recognised package codes.
func WorkoutTypes() []string {
	codes := make([]string, 0, len(trainingTypes))
	for code := range trainingTypes {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Readings returns how many readings a package of the given type carries.
func Readings(workoutType string) (int, bool) {
	c, ok := trainingTypes[workoutType]
	return c.readings, ok
}
