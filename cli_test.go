package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sstent/workoutstats/internal/training"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDemoCommand(t *testing.T) {
	out, err := runCmd(t, "demo")
	require.NoError(t, err)

	assert.Equal(t,
		"Тип тренировки: Swimming; Длительность: 1.000 ч.; Дистанция: 0.994 км; Ср. скорость: 1.000 км/ч; Потрачено ккал: 336.000.\n"+
			"Тип тренировки: Running; Длительность: 1.000 ч.; Дистанция: 9.750 км; Ср. скорость: 9.750 км/ч; Потрачено ккал: 797.805.\n"+
			"Тип тренировки: SportsWalking; Длительность: 1.000 ч.; Дистанция: 5.850 км; Ср. скорость: 5.850 км/ч; Потрачено ккал: 349.252.\n",
		out)
}

func TestCalcCommand(t *testing.T) {
	out, err := runCmd(t, "calc", "RUN", "15000", "1", "75")
	require.NoError(t, err)
	assert.Contains(t, out, "Потрачено ккал: 797.805.")

	_, err = runCmd(t, "calc", "XYZ", "1", "2", "3")
	require.ErrorIs(t, err, training.ErrUnknownWorkoutType)

	_, err = runCmd(t, "calc", "RUN", "15000", "one", "75")
	require.Error(t, err)
}
