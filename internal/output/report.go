package output

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/term"

	"github.com/temirov/viopi/internal/types"
)

const (
	statusReportHeader          = "Activating ignore patterns..."
	statusReportHeaderDecorated = "\U0001F50E Activating ignore patterns..."
	statusReportDivider         = "----------------------------------------"
	activatedPresetsHeader      = "Activated presets:"
	duplicatesOmittedHeader     = "# Duplicates omitted (later occurrences):"

	// copySummaryFormat reports a successful clipboard delivery.
	copySummaryFormat = "Combined contents copied to the clipboard (%d files, %d lines, %d characters)."
	// catSummaryFormat reports a successful stdout delivery.
	catSummaryFormat = "Combined contents written to stdout (%d files, %d lines, %d characters)."
)

// StderrIsTerminal reports whether standard error is attached to a terminal.
// Decorative glyphs are suppressed for non-interactive consumers.
func StderrIsTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// FormatStatusReport lists every pattern source and its patterns, sorted
// within each source, mirroring the report shown before a combine run.
func FormatStatusReport(patternSet types.PatternSet, decorated bool) string {
	var reportLines []string
	if decorated {
		reportLines = append(reportLines, statusReportHeaderDecorated)
	} else {
		reportLines = append(reportLines, statusReportHeader)
	}
	for _, patternSource := range patternSet.Sources {
		reportLines = append(reportLines, fmt.Sprintf("  - From %s:", patternSource.Label))
		sortedPatterns := append([]string{}, patternSource.Patterns...)
		sort.Strings(sortedPatterns)
		for _, patternValue := range sortedPatterns {
			reportLines = append(reportLines, fmt.Sprintf("    - %s", patternValue))
		}
	}
	reportLines = append(reportLines, statusReportDivider)
	return strings.Join(reportLines, "\n")
}

// FormatSummary renders the post-delivery summary: counts plus the presets
// activated during pattern aggregation.
func FormatSummary(command string, stats types.DocumentStats, activatedPresets []string) string {
	var summaryLines []string
	if command == types.CommandCopy {
		summaryLines = append(summaryLines, fmt.Sprintf(copySummaryFormat, stats.TotalFiles, stats.TotalLines, stats.TotalCharacters))
	} else {
		summaryLines = append(summaryLines, fmt.Sprintf(catSummaryFormat, stats.TotalFiles, stats.TotalLines, stats.TotalCharacters))
	}
	if len(activatedPresets) > 0 {
		summaryLines = append(summaryLines, activatedPresetsHeader)
		sortedPresets := append([]string{}, activatedPresets...)
		sort.Strings(sortedPresets)
		for _, presetToken := range sortedPresets {
			summaryLines = append(summaryLines, fmt.Sprintf("  - %s", presetToken))
		}
	}
	return strings.Join(summaryLines, "\n")
}

// FormatIgnoreListing renders every effective pattern annotated with its
// source. A pattern repeated by a later source is listed once and summarized
// in a duplicates block at the bottom.
func FormatIgnoreListing(patternSet types.PatternSet) string {
	seenPatterns := make(map[string]struct{})
	var listingLines []string
	var duplicatePatterns []string

	for _, patternSource := range patternSet.Sources {
		for _, patternValue := range patternSource.Patterns {
			if _, alreadySeen := seenPatterns[patternValue]; alreadySeen {
				duplicatePatterns = append(duplicatePatterns, patternValue)
				continue
			}
			seenPatterns[patternValue] = struct{}{}
			listingLines = append(listingLines, fmt.Sprintf("%s # %s", patternValue, patternSource.Label))
		}
	}

	if len(duplicatePatterns) > 0 {
		listingLines = append(listingLines, "", duplicatesOmittedHeader)
		sort.Strings(duplicatePatterns)
		for _, duplicateValue := range deduplicateSorted(duplicatePatterns) {
			listingLines = append(listingLines, duplicateValue)
		}
	}
	return strings.Join(listingLines, "\n")
}

// deduplicateSorted removes adjacent duplicates from an already sorted slice.
func deduplicateSorted(values []string) []string {
	result := values[:0]
	previousValue := ""
	for index, currentValue := range values {
		if index == 0 || currentValue != previousValue {
			result = append(result, currentValue)
		}
		previousValue = currentValue
	}
	return result
}
