package walk_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/viopi/internal/classify"
	"github.com/temirov/viopi/internal/types"
	"github.com/temirov/viopi/internal/walk"
)

// invalidUTF8Payload forces the classifier to report binary.
var invalidUTF8Payload = []byte{0xC3, 0x28, 0xFF}

// populateTree creates files (relative slash paths to content) under root.
func populateTree(testingInstance *testing.T, root string, files map[string][]byte) {
	testingInstance.Helper()
	for relativePath, content := range files {
		fullPath := filepath.Join(root, filepath.FromSlash(relativePath))
		if mkdirError := os.MkdirAll(filepath.Dir(fullPath), 0o755); mkdirError != nil {
			testingInstance.Fatalf("creating directories for %s: %v", relativePath, mkdirError)
		}
		if writeError := os.WriteFile(fullPath, content, 0o644); writeError != nil {
			testingInstance.Fatalf("writing %s: %v", relativePath, writeError)
		}
	}
}

func relativePaths(candidates []types.CandidateFile) []string {
	paths := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		paths = append(paths, candidate.RelativePath)
	}
	return paths
}

func assertPathsEqual(testingInstance *testing.T, actual []string, expected []string) {
	testingInstance.Helper()
	if len(actual) != len(expected) {
		testingInstance.Fatalf("expected paths %v, got %v", expected, actual)
	}
	for index := range expected {
		if actual[index] != expected[index] {
			testingInstance.Fatalf("expected paths %v, got %v", expected, actual)
		}
	}
}

// TestCollectFiltersPatternsAndBinaries covers the canonical filtering run: a
// text file survives while a pattern-matched binary file is excluded.
func TestCollectFiltersPatternsAndBinaries(testingInstance *testing.T) {
	rootDirectory := testingInstance.TempDir()
	populateTree(testingInstance, rootDirectory, map[string][]byte{
		"a.txt": []byte("hello"),
		"b.bin": invalidUTF8Payload,
	})

	collector := walk.Collector{
		RootDirectory:  rootDirectory,
		IgnorePatterns: []string{"*.bin"},
		Classifier:     classify.MimeClassifier{},
	}
	candidates, collectError := collector.Collect()
	if collectError != nil {
		testingInstance.Fatalf("unexpected collect error: %v", collectError)
	}
	assertPathsEqual(testingInstance, relativePaths(candidates), []string{"a.txt"})
}

// TestCollectExcludesBinaryWithoutPattern verifies classification alone keeps
// binary files out even when no pattern names them.
func TestCollectExcludesBinaryWithoutPattern(testingInstance *testing.T) {
	rootDirectory := testingInstance.TempDir()
	populateTree(testingInstance, rootDirectory, map[string][]byte{
		"keep.txt":  []byte("text content\n"),
		"image.png": {0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0},
	})

	collector := walk.Collector{
		RootDirectory: rootDirectory,
		Classifier:    classify.MimeClassifier{},
	}
	candidates, collectError := collector.Collect()
	if collectError != nil {
		testingInstance.Fatalf("unexpected collect error: %v", collectError)
	}
	assertPathsEqual(testingInstance, relativePaths(candidates), []string{"keep.txt"})
}

// TestCollectPrunesIgnoredDirectories verifies that a matched directory is
// pruned whole: none of its descendants appear in the result.
func TestCollectPrunesIgnoredDirectories(testingInstance *testing.T) {
	rootDirectory := testingInstance.TempDir()
	populateTree(testingInstance, rootDirectory, map[string][]byte{
		"src/main.go":                  []byte("package main\n"),
		"node_modules/pkg/index.js":    []byte("module.exports = {}\n"),
		"node_modules/pkg/sub/deep.js": []byte("deep\n"),
	})

	collector := walk.Collector{
		RootDirectory:  rootDirectory,
		IgnorePatterns: []string{"node_modules"},
		Classifier:     classify.MimeClassifier{},
	}
	candidates, collectError := collector.Collect()
	if collectError != nil {
		testingInstance.Fatalf("unexpected collect error: %v", collectError)
	}
	assertPathsEqual(testingInstance, relativePaths(candidates), []string{"src/main.go"})
}

// TestCollectMatchesRelativePathPatterns verifies patterns with separators
// match against the root-relative path rather than the bare name.
func TestCollectMatchesRelativePathPatterns(testingInstance *testing.T) {
	rootDirectory := testingInstance.TempDir()
	populateTree(testingInstance, rootDirectory, map[string][]byte{
		"docs/generated/api.md": []byte("# api\n"),
		"docs/manual.md":        []byte("# manual\n"),
	})

	collector := walk.Collector{
		RootDirectory:  rootDirectory,
		IgnorePatterns: []string{"docs/generated"},
		Classifier:     classify.MimeClassifier{},
	}
	candidates, collectError := collector.Collect()
	if collectError != nil {
		testingInstance.Fatalf("unexpected collect error: %v", collectError)
	}
	assertPathsEqual(testingInstance, relativePaths(candidates), []string{"docs/manual.md"})
}

// TestCollectSortsResults verifies output order is lexicographic by relative
// path regardless of creation order.
func TestCollectSortsResults(testingInstance *testing.T) {
	rootDirectory := testingInstance.TempDir()
	populateTree(testingInstance, rootDirectory, map[string][]byte{
		"zebra.txt":    []byte("z\n"),
		"alpha.txt":    []byte("a\n"),
		"mid/file.txt": []byte("m\n"),
	})

	collector := walk.Collector{
		RootDirectory: rootDirectory,
		Classifier:    classify.MimeClassifier{},
	}
	candidates, collectError := collector.Collect()
	if collectError != nil {
		testingInstance.Fatalf("unexpected collect error: %v", collectError)
	}
	assertPathsEqual(testingInstance, relativePaths(candidates), []string{"alpha.txt", "mid/file.txt", "zebra.txt"})
}

func TestMatchesPattern(testingInstance *testing.T) {
	testCases := []struct {
		name          string
		patternValue  string
		entryName     string
		relativePath  string
		isDirectory   bool
		expectedMatch bool
	}{
		{name: "glob on bare name", patternValue: "*.log", entryName: "debug.log", relativePath: "logs/debug.log", expectedMatch: true},
		{name: "literal directory name", patternValue: "node_modules", entryName: "node_modules", relativePath: "node_modules", isDirectory: true, expectedMatch: true},
		{name: "relative path pattern", patternValue: "docs/generated", entryName: "generated", relativePath: "docs/generated", isDirectory: true, expectedMatch: true},
		{name: "doublestar pattern", patternValue: "**/fixtures", entryName: "fixtures", relativePath: "internal/testdata/fixtures", isDirectory: true, expectedMatch: true},
		{name: "trailing slash matches directory", patternValue: "build/", entryName: "build", relativePath: "build", isDirectory: true, expectedMatch: true},
		{name: "trailing slash skips file", patternValue: "build/", entryName: "build", relativePath: "build", isDirectory: false, expectedMatch: false},
		{name: "no match", patternValue: "*.tmp", entryName: "main.go", relativePath: "main.go", expectedMatch: false},
		{name: "malformed pattern never matches", patternValue: "[", entryName: "[", relativePath: "[", expectedMatch: false},
		{name: "empty pattern never matches", patternValue: "", entryName: "file", relativePath: "file", expectedMatch: false},
	}

	for _, testCase := range testCases {
		testingInstance.Run(testCase.name, func(testingInstance *testing.T) {
			matched := walk.MatchesPattern(testCase.patternValue, testCase.entryName, testCase.relativePath, testCase.isDirectory)
			if matched != testCase.expectedMatch {
				testingInstance.Errorf("MatchesPattern(%q, %q, %q, %v) = %v, expected %v",
					testCase.patternValue, testCase.entryName, testCase.relativePath, testCase.isDirectory, matched, testCase.expectedMatch)
			}
		})
	}
}
