// Package counter implements the line, character, and token counting utility.
package counter

import (
	"io"
	"unicode/utf8"
)

// Result holds the tallies for one input.
type Result struct {
	Lines      int
	Characters int
	Bytes      int
	Tokens     int
}

// Add accumulates another result into the receiver.
func (result *Result) Add(other Result) {
	result.Lines += other.Lines
	result.Characters += other.Characters
	result.Bytes += other.Bytes
	result.Tokens += other.Tokens
}

// Count reads the full input and tallies it in a single pass.
func Count(reader io.Reader) (Result, error) {
	data, readError := io.ReadAll(reader)
	if readError != nil {
		return Result{}, readError
	}
	return CountBytes(data), nil
}

// CountBytes tallies lines, characters, and bytes for the provided data.
// Line counting recognizes "\n", "\r\n", and lone "\r" terminators; a
// trailing terminator does not open an extra empty line, and empty input has
// zero lines.
func CountBytes(data []byte) Result {
	lineCount := 0
	for index := 0; index < len(data); index++ {
		switch data[index] {
		case '\n':
			lineCount++
		case '\r':
			lineCount++
			if index+1 < len(data) && data[index+1] == '\n' {
				index++
			}
		}
	}
	if len(data) > 0 && data[len(data)-1] != '\n' && data[len(data)-1] != '\r' {
		lineCount++
	}
	return Result{
		Lines:      lineCount,
		Characters: utf8.RuneCount(data),
		Bytes:      len(data),
	}
}
