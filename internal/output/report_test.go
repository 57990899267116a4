package output_test

import (
	"strings"
	"testing"

	"github.com/temirov/viopi/internal/output"
	"github.com/temirov/viopi/internal/types"
)

func samplePatternSet() types.PatternSet {
	return types.PatternSet{
		Patterns: []string{".DS_Store", ".git", "node_modules", "*.log"},
		Sources: []types.PatternSource{
			{Label: "Defaults", Patterns: []string{".git", ".DS_Store"}},
			{Label: ".viopi_ignore", Patterns: []string{"node_modules", ".git"}},
			{Label: "Arguments", Patterns: []string{"*.log"}},
		},
		ActivatedPresets: []string{".react_app"},
	}
}

func TestFormatStatusReport(testingInstance *testing.T) {
	report := output.FormatStatusReport(samplePatternSet(), false)
	reportLines := strings.Split(report, "\n")

	if reportLines[0] != "Activating ignore patterns..." {
		testingInstance.Errorf("unexpected header line: %q", reportLines[0])
	}
	if reportLines[len(reportLines)-1] != strings.Repeat("-", 40) {
		testingInstance.Errorf("report must end with the divider, got %q", reportLines[len(reportLines)-1])
	}
	if !strings.Contains(report, "  - From Defaults:") || !strings.Contains(report, "  - From .viopi_ignore:") {
		testingInstance.Errorf("report is missing source headings:\n%s", report)
	}
	// Patterns inside a source are listed sorted.
	defaultsIndex := strings.Index(report, "  - From Defaults:")
	dsStoreIndex := strings.Index(report, "    - .DS_Store")
	gitIndex := strings.Index(report, "    - .git")
	if !(defaultsIndex < dsStoreIndex && dsStoreIndex < gitIndex) {
		testingInstance.Errorf("defaults patterns are not sorted:\n%s", report)
	}
}

func TestFormatStatusReportDecoration(testingInstance *testing.T) {
	decorated := output.FormatStatusReport(samplePatternSet(), true)
	if !strings.HasPrefix(decorated, "\U0001F50E ") {
		testingInstance.Errorf("decorated report must start with the glyph, got %q", decorated[:20])
	}
	plain := output.FormatStatusReport(samplePatternSet(), false)
	if strings.Contains(plain, "\U0001F50E") {
		testingInstance.Error("plain report must not carry the glyph")
	}
}

func TestFormatSummary(testingInstance *testing.T) {
	stats := types.DocumentStats{TotalFiles: 3, TotalLines: 120, TotalCharacters: 4096}

	copySummary := output.FormatSummary(types.CommandCopy, stats, nil)
	if copySummary != "Combined contents copied to the clipboard (3 files, 120 lines, 4096 characters)." {
		testingInstance.Errorf("unexpected copy summary: %q", copySummary)
	}

	catSummary := output.FormatSummary(types.CommandCat, stats, []string{".xcode_project", ".react_app"})
	if !strings.HasPrefix(catSummary, "Combined contents written to stdout (3 files, 120 lines, 4096 characters).") {
		testingInstance.Errorf("unexpected cat summary: %q", catSummary)
	}
	if !strings.Contains(catSummary, "Activated presets:") {
		testingInstance.Errorf("summary is missing the activated presets block: %q", catSummary)
	}
	reactIndex := strings.Index(catSummary, "  - .react_app")
	xcodeIndex := strings.Index(catSummary, "  - .xcode_project")
	if reactIndex < 0 || xcodeIndex < 0 || reactIndex > xcodeIndex {
		testingInstance.Errorf("presets must be listed sorted: %q", catSummary)
	}
}

func TestFormatIgnoreListing(testingInstance *testing.T) {
	listing := output.FormatIgnoreListing(samplePatternSet())
	listingLines := strings.Split(listing, "\n")

	if listingLines[0] != ".git # Defaults" {
		testingInstance.Errorf("first listing line = %q", listingLines[0])
	}
	if !strings.Contains(listing, "node_modules # .viopi_ignore") {
		testingInstance.Errorf("listing is missing the local-file annotation:\n%s", listing)
	}
	if !strings.Contains(listing, "*.log # Arguments") {
		testingInstance.Errorf("listing is missing the arguments annotation:\n%s", listing)
	}
	if strings.Count(listing, ".git #") != 1 {
		testingInstance.Errorf(".git must be annotated once despite two sources:\n%s", listing)
	}
	if !strings.Contains(listing, "# Duplicates omitted (later occurrences):") {
		testingInstance.Errorf("listing is missing the duplicates block:\n%s", listing)
	}
	if listingLines[len(listingLines)-1] != ".git" {
		testingInstance.Errorf("duplicates block must name .git, last line = %q", listingLines[len(listingLines)-1])
	}
}

func TestFormatIgnoreListingNoDuplicates(testingInstance *testing.T) {
	patternSet := types.PatternSet{
		Sources: []types.PatternSource{
			{Label: "Defaults", Patterns: []string{".git"}},
			{Label: "Arguments", Patterns: []string{"*.log"}},
		},
	}
	listing := output.FormatIgnoreListing(patternSet)
	if strings.Contains(listing, "Duplicates omitted") {
		testingInstance.Errorf("duplicates block must be absent when no pattern repeats:\n%s", listing)
	}
}
