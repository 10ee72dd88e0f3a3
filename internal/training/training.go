// Package training computes workout summaries from raw sensor readings.
package training

import "errors"

var (
	// ErrUnknownWorkoutType is returned for a package code outside SWM, RUN and WLK.
	ErrUnknownWorkoutType = errors.New("unknown workout type")
	// ErrNotImplemented is returned when calories are requested from a bare Session.
	ErrNotImplemented = errors.New("spent calories not implemented")
	// ErrReadingsArity is returned when a package carries the wrong number of readings.
	ErrReadingsArity = errors.New("wrong number of readings")
)

// Training is the capability shared by every workout type.
type Training interface {
	Name() string
	DurationHours() float64
	Distance() float64
	MeanSpeed() float64
	SpentCalories() (float64, error)
	ShowTrainingInfo() (InfoMessage, error)
}

// Session holds the inputs common to all workouts.
type Session struct {
	Action   int     // steps or strokes
	Duration float64 // hours
	Weight   float64 // kg

	name    string
	lenStep float64
}

// NewSession returns a base session without a calorie formula.
func NewSession(action int, duration, weight float64) *Session {
	s := newSession("Training", defaultLenStep, action, duration, weight)
	return &s
}

func newSession(name string, lenStep float64, action int, duration, weight float64) Session {
	return Session{
		Action:   action,
		Duration: duration,
		Weight:   weight,
		name:     name,
		lenStep:  lenStep,
	}
}

// Name returns the display label of the workout.
func (s *Session) Name() string { return s.name }

// DurationHours returns the workout duration in hours.
func (s *Session) DurationHours() float64 { return s.Duration }

// LenStep returns the distance covered by one action, in meters.
func (s *Session) LenStep() float64 { return s.lenStep }

// Distance returns the covered distance in km.
func (s *Session) Distance() float64 {
	return float64(s.Action) * s.lenStep / MInKM
}

// MeanSpeed returns the average speed in km/h.
func (s *Session) MeanSpeed() float64 {
	return s.Distance() / s.Duration
}

// SpentCalories always fails: only concrete workouts know their formula.
func (s *Session) SpentCalories() (float64, error) {
	return 0, ErrNotImplemented
}

// ShowTrainingInfo fails for a bare session, see SpentCalories.
func (s *Session) ShowTrainingInfo() (InfoMessage, error) {
	return showTrainingInfo(s)
}

func showTrainingInfo(t Training) (InfoMessage, error) {
	distance := t.Distance()
	speed := t.MeanSpeed()
	calories, err := t.SpentCalories()
	if err != nil {
		return InfoMessage{}, err
	}
	return InfoMessage{
		TrainingType: t.Name(),
		Duration:     t.DurationHours(),
		Distance:     distance,
		Speed:        speed,
		Calories:     calories,
	}, nil
}
