package training

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunningSummary(t *testing.T) {
	run := NewRunning(15000, 1, 75)

	require.InDelta(t, 9.75, run.Distance(), 1e-9)
	require.InDelta(t, 9.75, run.MeanSpeed(), 1e-9)

	calories, err := run.SpentCalories()
	require.NoError(t, err)
	require.InDelta(t, 797.805, calories, 1e-6)
}

func TestSportsWalkingSummary(t *testing.T) {
	walk := NewSportsWalking(9000, 1, 75, 180)

	require.InDelta(t, 5.85, walk.Distance(), 1e-9)
	require.InDelta(t, 5.85, walk.MeanSpeed(), 1e-9)

	calories, err := walk.SpentCalories()
	require.NoError(t, err)
	require.InDelta(t, 349.2517475, calories, 1e-6)
}

func TestSwimmingSummary(t *testing.T) {
	swim := NewSwimming(720, 1, 80, 25, 40)

	require.InDelta(t, 0.9936, swim.Distance(), 1e-9)
	require.InDelta(t, 1.0, swim.MeanSpeed(), 1e-9)

	calories, err := swim.SpentCalories()
	require.NoError(t, err)
	require.InDelta(t, 336.0, calories, 1e-9)
}

func TestDistanceRoundTripsActionCount(t *testing.T) {
	cases := []struct {
		name    string
		session *Session
	}{
		{"running", &NewRunning(12345, 1.5, 70).Session},
		{"walking", &NewSportsWalking(8000, 0.75, 60, 170).Session},
		{"swimming", &NewSwimming(640, 0.5, 65, 50, 20).Session},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.session.Distance() * MInKM / tc.session.LenStep()
			assert.InDelta(t, float64(tc.session.Action), got, 1e-6)
		})
	}
}

func TestMeanSpeed(t *testing.T) {
	run := NewRunning(10000, 2, 80)
	assert.Equal(t, run.Distance()/run.Duration, run.MeanSpeed())

	walk := NewSportsWalking(10000, 2, 80, 175)
	assert.Equal(t, walk.Distance()/walk.Duration, walk.MeanSpeed())
}

func TestSwimmingMeanSpeedIgnoresStrokes(t *testing.T) {
	few := NewSwimming(10, 2, 70, 25, 80)
	many := NewSwimming(5000, 2, 70, 25, 80)

	assert.Equal(t, few.MeanSpeed(), many.MeanSpeed())
	assert.InDelta(t, 25.0*80/MInKM/2, few.MeanSpeed(), 1e-12)
	assert.NotEqual(t, few.Distance(), many.Distance())
}

func TestSpentCaloriesIsDeterministic(t *testing.T) {
	workouts := []Training{
		NewRunning(15000, 1, 75),
		NewSportsWalking(9000, 1, 75, 180),
		NewSwimming(720, 1, 80, 25, 40),
	}
	for _, w := range workouts {
		first, err := w.SpentCalories()
		require.NoError(t, err)
		second, err := w.SpentCalories()
		require.NoError(t, err)
		assert.Equal(t, first, second, w.Name())
	}
}

func TestBareSessionHasNoCalories(t *testing.T) {
	s := NewSession(1000, 1, 70)

	assert.Equal(t, "Training", s.Name())
	assert.InDelta(t, 0.65, s.Distance(), 1e-12)

	_, err := s.SpentCalories()
	require.ErrorIs(t, err, ErrNotImplemented)

	_, err = s.ShowTrainingInfo()
	require.ErrorIs(t, err, ErrNotImplemented)
}

func TestShowTrainingInfo(t *testing.T) {
	info, err := NewSwimming(720, 1, 80, 25, 40).ShowTrainingInfo()
	require.NoError(t, err)

	assert.Equal(t, "Swimming", info.TrainingType)
	assert.Equal(t, 1.0, info.Duration)
	assert.InDelta(t, 0.9936, info.Distance, 1e-9)
	assert.InDelta(t, 1.0, info.Speed, 1e-9)
	assert.InDelta(t, 336.0, info.Calories, 1e-9)
}

func TestVariantsUseTheirOwnStep(t *testing.T) {
	assert.Equal(t, 0.65, NewRunning(1, 1, 1).LenStep())
	assert.Equal(t, 0.65, NewSportsWalking(1, 1, 1, 1).LenStep())
	assert.Equal(t, 1.38, NewSwimming(1, 1, 1, 1, 1).LenStep())

	swim := NewSwimming(720, 1, 80, 25, 40)
	swim.consts.CaloriesWeightMultiplier = 4
	assert.Equal(t, 2.0, swimmingConstants.CaloriesWeightMultiplier)

	calories, err := NewSwimming(720, 1, 80, 25, 40).SpentCalories()
	require.NoError(t, err)
	assert.InDelta(t, 336.0, calories, 1e-9)
}
