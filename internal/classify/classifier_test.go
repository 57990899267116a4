package classify_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/viopi/internal/classify"
)

// pngMagicBytes is the PNG signature followed by filler so the sniffer sees a
// recognized image type.
var pngMagicBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

// invalidUTF8Bytes is a byte run that no UTF-8 decoder accepts.
var invalidUTF8Bytes = []byte{0xC3, 0x28, 0xA0, 0xA1}

// writeTestFile creates a file holding content and returns its path.
func writeTestFile(testingInstance *testing.T, name string, content []byte) string {
	testingInstance.Helper()
	path := filepath.Join(testingInstance.TempDir(), name)
	if writeError := os.WriteFile(path, content, 0o644); writeError != nil {
		testingInstance.Fatalf("writing %s: %v", name, writeError)
	}
	return path
}

func TestMimeClassifierIsBinary(testingInstance *testing.T) {
	testCases := []struct {
		name          string
		content       []byte
		expectsBinary bool
	}{
		{name: "plain ascii text", content: []byte("package main\n\nfunc main() {}\n"), expectsBinary: false},
		{name: "unicode text", content: []byte("héllo wörld ✓\n"), expectsBinary: false},
		{name: "json content", content: []byte(`{"key": "value"}`), expectsBinary: false},
		{name: "empty file", content: nil, expectsBinary: false},
		{name: "png image", content: pngMagicBytes, expectsBinary: true},
		{name: "invalid utf8 run", content: invalidUTF8Bytes, expectsBinary: true},
		{name: "null heavy payload", content: []byte{0x01, 0x02, 0x00, 0xFF, 0xFE, 0x00}, expectsBinary: true},
	}

	classifier := classify.MimeClassifier{}
	for _, testCase := range testCases {
		testingInstance.Run(testCase.name, func(testingInstance *testing.T) {
			path := writeTestFile(testingInstance, "candidate", testCase.content)
			if isBinary := classifier.IsBinary(path); isBinary != testCase.expectsBinary {
				testingInstance.Errorf("IsBinary = %v, expected %v", isBinary, testCase.expectsBinary)
			}
		})
	}
}

func TestMimeClassifierMissingFileIsText(testingInstance *testing.T) {
	missingPath := filepath.Join(testingInstance.TempDir(), "does-not-exist")
	if (classify.MimeClassifier{}).IsBinary(missingPath) {
		testingInstance.Error("missing file must classify as text")
	}
}

func TestDecodeClassifierIsBinary(testingInstance *testing.T) {
	testCases := []struct {
		name          string
		content       []byte
		expectsBinary bool
	}{
		{name: "plain text", content: []byte("just text\n"), expectsBinary: false},
		{name: "empty file", content: nil, expectsBinary: false},
		{name: "invalid utf8 run", content: invalidUTF8Bytes, expectsBinary: true},
		{name: "nul bytes decode as utf8", content: []byte("abc\x00def"), expectsBinary: false},
	}

	classifier := classify.DecodeClassifier{}
	for _, testCase := range testCases {
		testingInstance.Run(testCase.name, func(testingInstance *testing.T) {
			path := writeTestFile(testingInstance, "candidate", testCase.content)
			if isBinary := classifier.IsBinary(path); isBinary != testCase.expectsBinary {
				testingInstance.Errorf("IsBinary = %v, expected %v", isBinary, testCase.expectsBinary)
			}
		})
	}
}

func TestMimeClassifierLargeTextWithMultibyteBoundary(testingInstance *testing.T) {
	// A multibyte rune straddling the probe boundary must not flip the verdict.
	content := make([]byte, 0, 2048)
	for len(content) < 1023 {
		content = append(content, 'a')
	}
	content = append(content, []byte("é repeated tail text")...)

	path := writeTestFile(testingInstance, "boundary", content)
	if (classify.MimeClassifier{}).IsBinary(path) {
		testingInstance.Error("text with a rune straddling the probe boundary must classify as text")
	}
}
