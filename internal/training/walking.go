package training

// SportsWalking is a walk measured in steps; the walker's height affects the calorie cost.
type SportsWalking struct {
	Session
	Height float64 // cm

	consts WalkingConstants
}

// NewSportsWalking builds a walk. Height must be non-zero, it is not checked here.
func NewSportsWalking(action int, duration, weight, height float64) *SportsWalking {
	return &SportsWalking{
		Session: newSession("SportsWalking", walkingConstants.LenStep, action, duration, weight),
		Height:  height,
		consts:  walkingConstants,
	}
}

// SpentCalories returns the kcal burned during the walk.
func (w *SportsWalking) SpentCalories() (float64, error) {
	c := w.consts
	speedMs := w.MeanSpeed() * c.KmhInMsec
	heightM := w.Height / c.CmInM
	return (c.CaloriesWeightMultiplier*w.Weight +
		(speedMs*speedMs/heightM)*c.CaloriesSpeedHeightMultiplier*w.Weight) *
		(w.Duration * MinInH), nil
}

// ShowTrainingInfo is redeclared so the summary uses this type's MeanSpeed and
// SpentCalories; the promoted Session method would not.
func (w *SportsWalking) ShowTrainingInfo() (InfoMessage, error) {
	return showTrainingInfo(w)
}
