package config

import (
	"fmt"
	"path/filepath"

	"github.com/temirov/viopi/internal/types"
	"github.com/temirov/viopi/internal/utils"
)

const (
	// DefaultsSourceLabel names the built-in exclusion source.
	DefaultsSourceLabel = "Defaults"
	// ArgumentsSourceLabel names the source holding literal command-line patterns.
	ArgumentsSourceLabel = "Arguments"
	// ConfigurationSourceLabel names the source holding patterns from application configuration.
	ConfigurationSourceLabel = "Configuration"
	// presetSourceLabelFormat names an activated preset source under its original token.
	presetSourceLabelFormat = "Preset: %s"
)

// Aggregate unions ignore patterns from the built-in defaults, the global
// ignore file, the local ignore files inside rootDirectory, preset expansions,
// and literal command-line tokens. The result is deduplicated in first-seen
// order; the per-source breakdown is retained for display. Patterns from
// extraPatterns, typically application configuration, are recorded under the
// Configuration source. Aggregation never removes a pattern and running it
// twice with identical inputs yields an identical result.
func (settings Settings) Aggregate(rootDirectory string, tokens []string, extraPatterns []string) (types.PatternSet, error) {
	var aggregated types.PatternSet

	addSource := func(label string, patterns []string) {
		if len(patterns) == 0 {
			return
		}
		aggregated.Sources = append(aggregated.Sources, types.PatternSource{Label: label, Patterns: patterns})
		aggregated.Patterns = append(aggregated.Patterns, patterns...)
	}

	addSource(DefaultsSourceLabel, settings.DefaultPatterns)

	if settings.HomeDirectory != "" {
		for _, globalIgnoreFileName := range settings.GlobalIgnoreFileNames {
			globalIgnorePath := filepath.Join(settings.HomeDirectory, globalIgnoreFileName)
			globalPatterns, loadError := LoadPatternLines(globalIgnorePath)
			if loadError != nil {
				return types.PatternSet{}, fmt.Errorf("loading global ignore file %s: %w", globalIgnorePath, loadError)
			}
			addSource(globalIgnoreFileName, globalPatterns)
		}
	}

	for _, localIgnoreFileName := range settings.LocalIgnoreFileNames {
		localIgnorePath := filepath.Join(rootDirectory, localIgnoreFileName)
		localPatterns, loadError := LoadPatternLines(localIgnorePath)
		if loadError != nil {
			return types.PatternSet{}, fmt.Errorf("loading local ignore file %s: %w", localIgnorePath, loadError)
		}
		addSource(localIgnoreFileName, localPatterns)
	}

	addSource(ConfigurationSourceLabel, extraPatterns)

	var literalArguments []string
	for _, token := range tokens {
		presetPatterns, _, presetError := settings.resolvePresetPatterns(token)
		if presetError != nil {
			return types.PatternSet{}, presetError
		}
		if len(presetPatterns) > 0 {
			if !utils.ContainsString(aggregated.ActivatedPresets, token) {
				aggregated.ActivatedPresets = append(aggregated.ActivatedPresets, token)
				addSource(fmt.Sprintf(presetSourceLabelFormat, token), presetPatterns)
			}
			continue
		}
		literalArguments = append(literalArguments, token)
	}
	addSource(ArgumentsSourceLabel, literalArguments)

	aggregated.Patterns = utils.DeduplicatePatterns(aggregated.Patterns)
	return aggregated, nil
}
