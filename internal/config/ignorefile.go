package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadPatternLines reads an ignore or preset file and returns every non-blank
// line whose trimmed content does not start with '#'. A missing file yields a
// nil slice and no error.
//
// #nosec G304
func LoadPatternLines(patternFilePath string) ([]string, error) {
	fileHandle, openFileError := os.Open(patternFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, openFileError
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", patternFilePath, closeError)
		}
	}()

	var patterns []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, "#") {
			continue
		}
		patterns = append(patterns, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return patterns, nil
}
