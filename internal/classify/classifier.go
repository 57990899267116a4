// Package classify decides whether a file's content is text or binary.
//
// Classification is a heuristic: a wrong answer is never treated as an error
// elsewhere in the pipeline. The primary method inspects the sniffed MIME
// type; when that is inconclusive the decision falls back to attempting a
// UTF-8 decode of the file's first kilobyte.
package classify

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"strings"
	"unicode/utf8"
)

const (
	// mimeSniffLength bounds the bytes handed to http.DetectContentType,
	// which considers at most 512 bytes.
	mimeSniffLength = 512
	// decodeProbeLength bounds the bytes checked by the UTF-8 decode fallback.
	decodeProbeLength = 1024

	octetStreamMediaType = "application/octet-stream"
	textMediaTypePrefix  = "text/"
)

// knownTextMediaTypes lists non-"text/" media types whose content is textual.
var knownTextMediaTypes = map[string]struct{}{
	"application/json":                    {},
	"application/javascript":              {},
	"application/xml":                     {},
	"application/x-sh":                    {},
	"application/x-python":                {},
	"application/x-sql":                   {},
	"application/vnd.apple.xcode-strings": {},
}

// Classifier reports whether the file at a path holds binary content.
type Classifier interface {
	IsBinary(path string) bool
}

// MimeClassifier classifies by sniffed MIME type with a decode fallback.
// Zero-length files and paths that are not regular files classify as text.
type MimeClassifier struct{}

// IsBinary implements Classifier.
func (MimeClassifier) IsBinary(path string) bool {
	fileInformation, statError := os.Stat(path)
	if statError != nil || !fileInformation.Mode().IsRegular() || fileInformation.Size() == 0 {
		return false
	}

	sniffedBytes, readError := readPrefix(path, mimeSniffLength)
	if readError != nil {
		return decodeProbe(path)
	}

	mediaType := http.DetectContentType(sniffedBytes)
	if separatorIndex := strings.IndexByte(mediaType, ';'); separatorIndex >= 0 {
		mediaType = strings.TrimSpace(mediaType[:separatorIndex])
	}

	switch {
	case strings.HasPrefix(mediaType, textMediaTypePrefix):
		// DetectContentType labels UTF-16 and loosely-structured byte runs
		// text/plain; the text-family verdict is only trusted when the sniff
		// itself decodes as UTF-8 and carries no NUL bytes.
		if bytes.IndexByte(sniffedBytes, 0) >= 0 || !validUTF8Prefix(sniffedBytes) {
			return decodeProbe(path)
		}
		return false
	case isKnownTextMediaType(mediaType):
		return false
	case mediaType == octetStreamMediaType:
		return decodeProbe(path)
	default:
		return true
	}
}

// DecodeClassifier classifies purely by attempting a UTF-8 decode of the
// file's first kilobyte. It serves environments and tests where MIME probing
// is unwanted.
type DecodeClassifier struct{}

// IsBinary implements Classifier.
func (DecodeClassifier) IsBinary(path string) bool {
	fileInformation, statError := os.Stat(path)
	if statError != nil || !fileInformation.Mode().IsRegular() || fileInformation.Size() == 0 {
		return false
	}
	return decodeProbe(path)
}

// isKnownTextMediaType reports whether mediaType is on the textual allow-list.
func isKnownTextMediaType(mediaType string) bool {
	_, known := knownTextMediaTypes[mediaType]
	return known
}

// decodeProbe reads up to decodeProbeLength bytes and reports binary when the
// prefix is not valid UTF-8 or cannot be read at all.
func decodeProbe(path string) bool {
	probeBytes, readError := readPrefix(path, decodeProbeLength)
	if readError != nil {
		return true
	}
	return !validUTF8Prefix(probeBytes)
}

// readPrefix returns up to limit bytes from the start of the file at path.
//
// #nosec G304
func readPrefix(path string, limit int) ([]byte, error) {
	fileHandle, openError := os.Open(path)
	if openError != nil {
		return nil, openError
	}
	defer fileHandle.Close()

	buffer := make([]byte, limit)
	bytesRead, readError := io.ReadFull(fileHandle, buffer)
	if readError != nil && readError != io.EOF && readError != io.ErrUnexpectedEOF {
		return nil, readError
	}
	return buffer[:bytesRead], nil
}

// validUTF8Prefix reports whether data is valid UTF-8 once an incomplete
// trailing rune, an artifact of the fixed-size probe, is trimmed.
func validUTF8Prefix(data []byte) bool {
	trimmed := data
	for trailing := 1; trailing <= utf8.UTFMax && trailing <= len(trimmed); trailing++ {
		candidateByte := trimmed[len(trimmed)-trailing]
		if utf8.RuneStart(candidateByte) {
			if decodedRune, _ := utf8.DecodeRune(trimmed[len(trimmed)-trailing:]); decodedRune == utf8.RuneError {
				trimmed = trimmed[:len(trimmed)-trailing]
			}
			break
		}
	}
	return utf8.Valid(trimmed)
}
