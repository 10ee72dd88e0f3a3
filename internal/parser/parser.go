package parser

import (
	"os"

	"github.com/sstent/workoutstats/internal/models"
)

// Parser turns an activity file into sensor packages.
type Parser interface {
	ParseFile(filename string) ([]models.SensorPackage, error)
	ParseData(data []byte) ([]models.SensorPackage, error)
}

func readFile(p Parser, filename string) ([]models.SensorPackage, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	packages, err := p.ParseData(data)
	if err != nil {
		return nil, err
	}
	for i := range packages {
		if packages[i].Source == "" {
			packages[i].Source = filename
		}
	}
	return packages, nil
}
