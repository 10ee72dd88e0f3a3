package training

// Swimming is a pool session measured in strokes and laps.
type Swimming struct {
	Session
	LengthPool float64 // meters
	CountPool  float64 // laps

	consts SwimmingConstants
}

// NewSwimming builds a pool session.
func NewSwimming(action int, duration, weight, lengthPool, countPool float64) *Swimming {
	return &Swimming{
		Session:    newSession("Swimming", swimmingConstants.LenStep, action, duration, weight),
		LengthPool: lengthPool,
		CountPool:  countPool,
		consts:     swimmingConstants,
	}
}

// MeanSpeed is computed from pool laps, not from the stroke count.
func (s *Swimming) MeanSpeed() float64 {
	return s.LengthPool * s.CountPool / MInKM / s.Duration
}

// SpentCalories returns the kcal burned during the swim.
func (s *Swimming) SpentCalories() (float64, error) {
	c := s.consts
	return (s.MeanSpeed() + c.CaloriesMeanSpeedShift) * c.CaloriesWeightMultiplier * s.Weight * s.Duration, nil
}

// ShowTrainingInfo is redeclared so the summary uses this type's MeanSpeed and
// SpentCalories; the promoted Session method would not.
func (s *Swimming) ShowTrainingInfo() (InfoMessage, error) {
	return showTrainingInfo(s)
}
