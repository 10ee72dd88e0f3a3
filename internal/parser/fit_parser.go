package parser

import (
	"bytes"
	"fmt"

	"github.com/tormoder/fit"

	"github.com/sstent/workoutstats/internal/models"
)

const (
	invalidUint16 = 0xFFFF
	invalidUint32 = 0xFFFFFFFF

	msInHour = 3600 * 1000
)

// FITParser reads the first session of a FIT activity file.
type FITParser struct {
	profile models.AthleteProfile
}

func NewFITParser(profile models.AthleteProfile) *FITParser {
	return &FITParser{profile: profile}
}

func (p *FITParser) ParseFile(filename string) ([]models.SensorPackage, error) {
	return readFile(p, filename)
}

func (p *FITParser) ParseData(data []byte) ([]models.SensorPackage, error) {
	fitFile, err := fit.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode FIT file: %w", err)
	}

	activity, err := fitFile.Activity()
	if err != nil {
		return nil, fmt.Errorf("failed to get activity from FIT: %w", err)
	}

	if len(activity.Sessions) == 0 {
		return nil, fmt.Errorf("no sessions found in FIT file")
	}

	pkg, err := p.packageFromSession(activity.Sessions[0])
	if err != nil {
		return nil, err
	}
	return []models.SensorPackage{pkg}, nil
}

func (p *FITParser) packageFromSession(session *fit.SessionMsg) (models.SensorPackage, error) {
	if session.TotalTimerTime == invalidUint32 || session.TotalTimerTime == 0 {
		return models.SensorPackage{}, fmt.Errorf("session has no timer time")
	}
	if session.TotalCycles == invalidUint32 {
		return models.SensorPackage{}, fmt.Errorf("session has no cycle count")
	}

	hours := float64(session.TotalTimerTime) / msInHour
	pkg := models.SensorPackage{RecordedAt: session.StartTime}

	switch session.Sport {
	case fit.SportRunning:
		// cycles are strides, two steps each
		pkg.WorkoutType = "RUN"
		pkg.Data = []float64{float64(session.TotalCycles) * 2, hours, p.profile.WeightKG}
	case fit.SportWalking:
		pkg.WorkoutType = "WLK"
		pkg.Data = []float64{float64(session.TotalCycles) * 2, hours, p.profile.WeightKG, p.profile.HeightCM}
	case fit.SportSwimming:
		if session.PoolLength == invalidUint16 || session.NumActiveLengths == invalidUint16 {
			return models.SensorPackage{}, fmt.Errorf("swim session has no pool data")
		}
		// pool length is stored in centimeters
		pkg.WorkoutType = "SWM"
		pkg.Data = []float64{
			float64(session.TotalCycles),
			hours,
			p.profile.WeightKG,
			float64(session.PoolLength) / 100,
			float64(session.NumActiveLengths),
		}
	default:
		return models.SensorPackage{}, fmt.Errorf("unsupported sport: %v", session.Sport)
	}

	return pkg, nil
}
