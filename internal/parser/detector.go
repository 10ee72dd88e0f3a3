// internal/parser/detector.go
package parser

import (
	"bytes"
	"os"
)

type FileType string

const (
	FIT     FileType = "fit"
	YAML    FileType = "yaml"
	Unknown FileType = "unknown"
)

// DetectFileTypeFromFile sniffs the first bytes of a file.
func DetectFileTypeFromFile(filepath string) (FileType, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return Unknown, err
	}
	defer file.Close()

	// Read first 512 bytes for detection
	header := make([]byte, 512)
	n, err := file.Read(header)
	if err != nil && n == 0 {
		return Unknown, err
	}

	return DetectFileTypeFromData(header[:n]), nil
}

func DetectFileTypeFromData(data []byte) FileType {
	// FIT header carries ".FIT" at offset 8
	if len(data) >= 12 && bytes.Equal(data[8:12], []byte(".FIT")) {
		return FIT
	}

	if looksLikeYAML(data) {
		return YAML
	}

	return Unknown
}

func looksLikeYAML(data []byte) bool {
	for _, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		return bytes.HasPrefix(line, []byte("---")) ||
			bytes.HasPrefix(line, []byte("- ")) ||
			bytes.HasPrefix(line, []byte("packages:"))
	}
	return false
}
