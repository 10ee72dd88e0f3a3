package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sstent/workoutstats/internal/models"
)

// NewParser creates a parser based on file extension or content
func NewParser(filename string, profile models.AthleteProfile) (Parser, error) {
	// First try by extension
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".fit":
		return NewFITParser(profile), nil
	case ".yaml", ".yml":
		return NewYAMLParser(), nil
	}

	// If extension doesn't match, detect by content
	fileType, err := DetectFileTypeFromFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to detect file type: %w", err)
	}
	return parserFor(fileType, profile)
}

// NewParserFromData creates a parser based on file content
func NewParserFromData(data []byte, profile models.AthleteProfile) (Parser, error) {
	return parserFor(DetectFileTypeFromData(data), profile)
}

func parserFor(fileType FileType, profile models.AthleteProfile) (Parser, error) {
	switch fileType {
	case FIT:
		return NewFITParser(profile), nil
	case YAML:
		return NewYAMLParser(), nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", fileType)
	}
}
