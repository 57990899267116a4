package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// resolvePresetPatterns resolves a command-line token as a preset: the token is
// first substituted through the alias table, then each preset file prefix is
// tried in the home directory. The first preset file with at least one pattern
// wins. A token that resolves to no preset file, or to an empty one, returns a
// nil slice so the caller can fall back to treating it as a literal pattern.
func (settings Settings) resolvePresetPatterns(token string) ([]string, string, error) {
	if settings.HomeDirectory == "" {
		return nil, "", nil
	}

	presetName := token
	if aliasTarget, hasAlias := settings.PresetAliases[token]; hasAlias {
		presetName = aliasTarget
	}
	presetSuffix := strings.TrimLeft(presetName, ".")

	for _, presetPrefix := range settings.PresetFilePrefixes {
		presetFilePath := filepath.Join(settings.HomeDirectory, presetPrefix+presetSuffix)
		patterns, loadError := LoadPatternLines(presetFilePath)
		if loadError != nil {
			return nil, "", fmt.Errorf("loading preset %s from %s: %w", token, presetFilePath, loadError)
		}
		if len(patterns) > 0 {
			return patterns, presetFilePath, nil
		}
	}
	return nil, "", nil
}
