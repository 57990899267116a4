// Package types defines every cross-package data structure used by the viopi CLI.
package types

const (
	CommandCopy   = "copy"
	CommandCat    = "cat"
	CommandIgnore = "ignore"
	CommandCount  = "count"
)

// CandidateFile is a file that survived every exclusion filter and will be
// included in the assembled document.
type CandidateFile struct {
	AbsolutePath string
	RelativePath string
}

// PatternSource maps a provenance label, such as "Defaults" or "Preset: .react_app",
// to the ordered patterns that source contributed. Sources exist for display only;
// matching uses the flat union with no precedence.
type PatternSource struct {
	Label    string
	Patterns []string
}

// PatternSet is the aggregated ignore configuration for one run.
type PatternSet struct {
	// Patterns is the deduplicated union of every source, in first-seen order.
	Patterns []string
	// Sources records the per-source breakdown in the order sources were consulted.
	Sources []PatternSource
	// ActivatedPresets lists command-line tokens that expanded to preset files,
	// under their original token names even when reached through an alias.
	ActivatedPresets []string
}

// DocumentStats captures aggregate counts over an assembled document.
type DocumentStats struct {
	TotalFiles      int
	TotalLines      int
	TotalCharacters int
	PayloadBytes    int
}
