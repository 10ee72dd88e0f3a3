package training

// Running is a run measured in steps.
type Running struct {
	Session
	consts RunningConstants
}

// NewRunning builds a run from its step count, duration in hours and weight in kg.
func NewRunning(action int, duration, weight float64) *Running {
	return &Running{
		Session: newSession("Running", runningConstants.LenStep, action, duration, weight),
		consts:  runningConstants,
	}
}

// SpentCalories returns the kcal burned during the run.
func (r *Running) SpentCalories() (float64, error) {
	c := r.consts
	return (c.CaloriesMeanSpeedMultiplier*r.MeanSpeed() + c.CaloriesMeanSpeedShift) *
		r.Weight / MInKM * r.Duration * MinInH, nil
}

// ShowTrainingInfo is redeclared so the summary uses this type's MeanSpeed and
// SpentCalories; the promoted Session method would not.
func (r *Running) ShowTrainingInfo() (InfoMessage, error) {
	return showTrainingInfo(r)
}
