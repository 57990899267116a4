// Package config aggregates ignore patterns and loads application configuration.
package config

import (
	"os"
)

// Program and artifact names excluded by default so the tool never captures
// its own executable or output files.
const (
	programName         = "viopi"
	outputArtifactGlob  = "_viopi_output*.viopi"
	osMetadataFileName  = ".DS_Store"
	gitDirectoryPattern = ".git"
)

// globalIgnoreFileNames lists the home-directory ignore file names, newest
// name last. The legacy .copy_combine_ignore_global name is still honored.
var globalIgnoreFileNames = []string{".copy_combine_ignore_global", ".viopi_ignore_global"}

// localIgnoreFileNames lists the per-project ignore file names, newest name last.
// The legacy .copy_combine_ignore name is still honored.
var localIgnoreFileNames = []string{".copy_combine_ignore", ".viopi_ignore"}

// presetFilePrefixes lists home-directory file name prefixes that preset
// suffixes are appended to, checked in order.
var presetFilePrefixes = []string{".copy_combine_ignore_preset_", ".viopi_ignore_preset_"}

// presetAliases maps convenience preset tokens to the preset files that back them.
var presetAliases = map[string]string{
	".xcode_project": ".xcode_strict",
	".macos_app":     ".xcode_strict",
	".ios_app":       ".xcode_strict",
	".visionos_app":  ".xcode_strict",
	".watchos_app":   ".xcode_strict",
	".react_app":     ".node_project",
	".vue_app":       ".node_project",
	".svelte_app":    ".node_project",
	".nextjs_app":    ".node_project",
}

// Settings anchors every filesystem location the pattern aggregator consults.
// All paths are explicit so tests can inject temporary directories instead of
// reading ambient process state.
type Settings struct {
	// HomeDirectory hosts the global ignore files and preset files.
	HomeDirectory string
	// GlobalIgnoreFileNames are resolved relative to HomeDirectory.
	GlobalIgnoreFileNames []string
	// LocalIgnoreFileNames are resolved relative to the walk root.
	LocalIgnoreFileNames []string
	// PresetFilePrefixes are tried in order when resolving a preset token.
	PresetFilePrefixes []string
	// PresetAliases substitutes tokens before preset file resolution.
	PresetAliases map[string]string
	// DefaultPatterns are always part of the aggregated set.
	DefaultPatterns []string
}

// DefaultSettings returns the production Settings anchored at the user's home
// directory. A missing home directory leaves global and preset lookups inert.
func DefaultSettings() Settings {
	homeDirectory, homeDirectoryError := os.UserHomeDir()
	if homeDirectoryError != nil {
		homeDirectory = ""
	}

	defaultPatterns := []string{
		osMetadataFileName,
		gitDirectoryPattern,
		programName,
		outputArtifactGlob,
	}
	defaultPatterns = append(defaultPatterns, localIgnoreFileNames...)

	return Settings{
		HomeDirectory:         homeDirectory,
		GlobalIgnoreFileNames: append([]string{}, globalIgnoreFileNames...),
		LocalIgnoreFileNames:  append([]string{}, localIgnoreFileNames...),
		PresetFilePrefixes:    append([]string{}, presetFilePrefixes...),
		PresetAliases:         presetAliases,
		DefaultPatterns:       defaultPatterns,
	}
}
