package training

const (
	// MInKM converts meters to kilometers.
	MInKM = 1000
	// MinInH converts hours to minutes.
	MinInH = 60

	// defaultLenStep is the length of one step in meters.
	defaultLenStep = 0.65
)

// RunningConstants holds the coefficients of the running calorie formula.
type RunningConstants struct {
	LenStep                     float64 // meters per step
	CaloriesMeanSpeedMultiplier float64
	CaloriesMeanSpeedShift      float64
}

// WalkingConstants holds the coefficients of the sports walking calorie formula.
type WalkingConstants struct {
	LenStep                       float64 // meters per step
	CaloriesWeightMultiplier      float64
	CaloriesSpeedHeightMultiplier float64
	KmhInMsec                     float64 // km/h -> m/s
	CmInM                         float64
}

// SwimmingConstants holds the coefficients of the swimming calorie formula.
type SwimmingConstants struct {
	LenStep                  float64 // meters per stroke
	CaloriesMeanSpeedShift   float64
	CaloriesWeightMultiplier float64
}

var (
	runningConstants = RunningConstants{
		LenStep:                     defaultLenStep,
		CaloriesMeanSpeedMultiplier: 18,
		CaloriesMeanSpeedShift:      1.79,
	}
	walkingConstants = WalkingConstants{
		LenStep:                       defaultLenStep,
		CaloriesWeightMultiplier:      0.035,
		CaloriesSpeedHeightMultiplier: 0.029,
		KmhInMsec:                     0.278,
		CmInM:                         100,
	}
	swimmingConstants = SwimmingConstants{
		LenStep:                  1.38,
		CaloriesMeanSpeedShift:   1.1,
		CaloriesWeightMultiplier: 2,
	}
)
