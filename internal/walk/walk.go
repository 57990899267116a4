// Package walk discovers the candidate files beneath a root directory that
// survive ignore-pattern filtering and binary classification.
package walk

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/temirov/viopi/internal/classify"
	"github.com/temirov/viopi/internal/types"
	"github.com/temirov/viopi/internal/utils"
)

const (
	// warningAccessPathFormat is used when a path cannot be visited during the walk.
	warningAccessPathFormat = "Warning: error accessing path %s: %v\n"
)

// Collector walks a directory tree and returns the files to include in the
// combined document. The traversal is top-down, prunes ignored directories
// before descending into them, and never follows symbolic links.
type Collector struct {
	// RootDirectory is the absolute walk root; relative paths are computed against it.
	RootDirectory string
	// IgnorePatterns is the flat aggregated pattern set; every pattern is
	// matched against both the bare entry name and the root-relative path.
	IgnorePatterns []string
	// Classifier decides text versus binary for each surviving file.
	Classifier classify.Classifier
	// GitIgnore optionally excludes paths matched by the root's .gitignore.
	GitIgnore *gitignore.GitIgnore
}

// Collect returns the surviving files sorted lexicographically by relative
// path, independent of walk order. Errors visiting individual paths are
// reported as warnings on standard error and do not abort the walk.
func (collector Collector) Collect() ([]types.CandidateFile, error) {
	cleanedRootPath := filepath.Clean(collector.RootDirectory)

	var candidates []types.CandidateFile

	walkError := filepath.WalkDir(cleanedRootPath, func(walkedPath string, directoryEntry fs.DirEntry, accessError error) error {
		if accessError != nil {
			fmt.Fprintf(os.Stderr, warningAccessPathFormat, walkedPath, accessError)
			if directoryEntry != nil && directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if walkedPath == cleanedRootPath {
			return nil
		}

		relativePath := utils.RelativePathOrSelf(walkedPath, cleanedRootPath)
		entryName := directoryEntry.Name()
		isDirectory := directoryEntry.IsDir()

		if collector.isIgnored(entryName, relativePath, isDirectory) {
			if isDirectory {
				return filepath.SkipDir
			}
			return nil
		}
		if isDirectory {
			return nil
		}
		if directoryEntry.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if collector.Classifier != nil && collector.Classifier.IsBinary(walkedPath) {
			return nil
		}

		candidates = append(candidates, types.CandidateFile{
			AbsolutePath: walkedPath,
			RelativePath: relativePath,
		})
		return nil
	})
	if walkError != nil {
		return nil, walkError
	}

	sort.Slice(candidates, func(leftIndex, rightIndex int) bool {
		return candidates[leftIndex].RelativePath < candidates[rightIndex].RelativePath
	})
	return candidates, nil
}

// isIgnored reports whether an entry matches the aggregated ignore
// configuration, either through a glob pattern or the optional gitignore layer.
func (collector Collector) isIgnored(entryName, relativePath string, isDirectory bool) bool {
	for _, patternValue := range collector.IgnorePatterns {
		if MatchesPattern(patternValue, entryName, relativePath, isDirectory) {
			return true
		}
	}
	if collector.GitIgnore != nil && collector.GitIgnore.MatchesPath(relativePath) {
		return true
	}
	return false
}

// MatchesPattern reports whether a single glob pattern matches either the bare
// entry name or the root-relative slash path. A pattern with a trailing slash
// only matches directories. Malformed patterns never match.
func MatchesPattern(patternValue, entryName, relativePath string, isDirectory bool) bool {
	trimmedPattern := strings.TrimSuffix(patternValue, "/")
	if trimmedPattern == "" {
		return false
	}
	if trimmedPattern != patternValue && !isDirectory {
		return false
	}

	if isMatched, matchError := doublestar.Match(trimmedPattern, entryName); matchError == nil && isMatched {
		return true
	}
	if isMatched, matchError := doublestar.Match(trimmedPattern, relativePath); matchError == nil && isMatched {
		return true
	}
	return false
}
