package parser

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/sstent/workoutstats/internal/models"
)

// YAMLParser reads batches of packages, either as a bare list or under a
// top-level "packages" key.
type YAMLParser struct{}

type yamlBatch struct {
	Packages []models.SensorPackage `yaml:"packages"`
}

func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

func (p *YAMLParser) ParseFile(filename string) ([]models.SensorPackage, error) {
	return readFile(p, filename)
}

func (p *YAMLParser) ParseData(data []byte) ([]models.SensorPackage, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode YAML: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty package file")
	}

	var packages []models.SensorPackage
	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&packages); err != nil {
			return nil, fmt.Errorf("failed to decode packages: %w", err)
		}
	case yaml.MappingNode:
		var batch yamlBatch
		if err := root.Decode(&batch); err != nil {
			return nil, fmt.Errorf("failed to decode packages: %w", err)
		}
		packages = batch.Packages
	default:
		return nil, fmt.Errorf("unexpected YAML document")
	}

	if len(packages) == 0 {
		return nil, fmt.Errorf("no packages found")
	}
	for i, pkg := range packages {
		if pkg.WorkoutType == "" {
			return nil, fmt.Errorf("package %d has no type", i)
		}
	}
	return packages, nil
}
