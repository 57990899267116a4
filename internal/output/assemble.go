// Package output assembles the combined document and formats status reports.
package output

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/temirov/viopi/internal/counter"
	"github.com/temirov/viopi/internal/services/tree"
	"github.com/temirov/viopi/internal/types"
)

const (
	// headerFormat opens the document with the absolute root path.
	headerFormat = "Current path: %s\n"
	// combinedContentsSeparator divides the tree section from the file bodies.
	combinedContentsSeparator = "\n\n---\nCombined file contents:\n"
	// fileMarkerFormat prefixes each included file with its relative path.
	fileMarkerFormat = "\n--- FILE: %s ---\n"
	// readErrorMarkerFormat replaces the body of a file that could not be read.
	readErrorMarkerFormat = "\n--- ERROR: Could not read %s: %v ---\n"
	// noTextFilesMessage is emitted verbatim when no candidate files survive filtering.
	noTextFilesMessage = "No text files found to copy after applying ignore patterns."

	treeSectionHeader          = "Directory tree (ignoring specified patterns):\n"
	treeUnavailablePlaceholder = "Directory tree: ('tree' command not found, skipping)"
	treeFailurePlaceholderFmt  = "Directory tree: (failed to generate: %v)"
)

// TreeSection renders the optional directory-tree block. A nil renderer skips
// the block entirely; an unavailable or failing renderer degrades to a
// placeholder line. Tree rendering is never fatal.
func TreeSection(renderer tree.Renderer, rootDirectory string, excludePatterns []string) string {
	if renderer == nil {
		return ""
	}
	renderedTree, renderError := renderer.Render(rootDirectory, excludePatterns)
	if renderError != nil {
		if errors.Is(renderError, tree.ErrUnavailable) {
			return treeUnavailablePlaceholder
		}
		return fmt.Sprintf(treeFailurePlaceholderFmt, renderError)
	}
	return treeSectionHeader + renderedTree
}

// Assemble builds the final document: a header naming the root, the optional
// tree section, a separator, and the contents of every candidate file in the
// order given. File contents are decoded as UTF-8 with invalid sequences
// dropped; a per-file read failure becomes an inline error marker instead of
// aborting assembly. Line and character tallies cover file contents only,
// never the header, tree section, or markers; PayloadBytes measures the whole
// delivered document.
func Assemble(rootDirectory string, treeSection string, candidates []types.CandidateFile) (string, types.DocumentStats) {
	var documentBuilder strings.Builder
	documentBuilder.WriteString(fmt.Sprintf(headerFormat, rootDirectory))
	if treeSection != "" {
		documentBuilder.WriteString(treeSection)
	}
	documentBuilder.WriteString(combinedContentsSeparator)

	var stats types.DocumentStats

	if len(candidates) == 0 {
		documentBuilder.WriteString(noTextFilesMessage)
	} else {
		for _, candidate := range candidates {
			fileBytes, fileReadError := os.ReadFile(candidate.AbsolutePath)
			if fileReadError != nil {
				documentBuilder.WriteString(fmt.Sprintf(readErrorMarkerFormat, candidate.RelativePath, fileReadError))
				continue
			}
			sanitizedContent := strings.ToValidUTF8(string(fileBytes), "")
			documentBuilder.WriteString(fmt.Sprintf(fileMarkerFormat, candidate.RelativePath))
			documentBuilder.WriteString(sanitizedContent)

			contentTallies := counter.CountBytes([]byte(sanitizedContent))
			stats.TotalFiles++
			stats.TotalLines += contentTallies.Lines
			stats.TotalCharacters += contentTallies.Characters
		}
	}

	document := documentBuilder.String()
	stats.PayloadBytes = len(document)
	return document, stats
}
