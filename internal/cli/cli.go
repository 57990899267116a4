// Package cli provides the command line interface.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	gitignore "github.com/sabhiram/go-gitignore"
	"github.com/spf13/cobra"

	"github.com/temirov/viopi/internal/classify"
	"github.com/temirov/viopi/internal/config"
	"github.com/temirov/viopi/internal/output"
	"github.com/temirov/viopi/internal/services/clipboard"
	"github.com/temirov/viopi/internal/services/tree"
	"github.com/temirov/viopi/internal/types"
	"github.com/temirov/viopi/internal/utils"
	"github.com/temirov/viopi/internal/walk"
)

const (
	versionFlagName      = "version"
	configFlagName       = "config"
	noTreeFlagName       = "no-tree"
	gitignoreFlagName    = "use-gitignore"
	summaryFlagName      = "summary"
	summaryFlagShorthand = "s"
	tokensFlagName       = "tokens"
	modelFlagName        = "model"

	versionTemplate = "viopi version: %s\n"
	defaultPath     = "."

	rootUse              = "viopi"
	rootShortDescription = "viopi command line interface"
	rootLongDescription  = `viopi prepares project source text as a single blob for an LLM prompt.
It walks a directory, filters out ignored and binary files, concatenates the
survivors, and delivers the result to the clipboard or standard output.`

	copyUse              = "copy [path] [patterns...]"
	catUse               = "cat [path] [patterns...]"
	ignoreUse            = "ignore [path] [patterns...]"
	countUse             = "count [paths...]"
	copyAlias            = "cp"
	catAlias             = "c"
	copyShortDescription = "combine project files onto the clipboard (" + copyAlias + ")"
	catShortDescription  = "combine project files onto standard output (" + catAlias + ")"
	ignoreShort          = "show the aggregated ignore patterns with their sources"
	countShort           = "count lines and characters of files or standard input"

	// copyLongDescription provides detailed help for the copy command.
	copyLongDescription = `Combine every surviving text file beneath a directory and place the result on
the system clipboard. A status summary is printed to standard output.
The first positional token naming an existing directory overrides the root;
every other token activates a preset when a preset file exists, and otherwise
becomes a literal ignore pattern.`
	// copyUsageExample demonstrates copy command usage.
	copyUsageExample = `  # Combine the current directory onto the clipboard
  viopi copy

  # Combine a React project, pruning node_modules via the preset
  viopi copy ./frontend .react_app`

	// catLongDescription provides detailed help for the cat command.
	catLongDescription = `Combine every surviving text file beneath a directory and print the document
to standard output. All diagnostics go to standard error so the output can be
piped safely.`
	// catUsageExample demonstrates cat command usage.
	catUsageExample = `  # Pipe the combined project to another tool
  viopi cat | llm -s "Summarize this"

  # Exclude generated files with a literal pattern
  viopi cat . '*.pb.go'`

	// ignoreLongDescription provides detailed help for the ignore command.
	ignoreLongDescription = `Print the combined ignore patterns together with the source each pattern came
from, then exit without walking the tree.`

	// countLongDescription provides detailed help for the count command.
	countLongDescription = `Count lines, characters, and bytes for each given file, or for standard input
when no path is provided. Use --tokens to add model token estimates.`
	// countUsageExample demonstrates count command usage.
	countUsageExample = `  # Count a file including token estimates
  viopi count --tokens main.go

  # Count piped input
  viopi cat | viopi count`

	versionFlagDescription   = "display application version"
	configFlagDescription    = "path to a configuration file"
	noTreeFlagDescription    = "omit the directory tree section"
	gitignoreFlagDescription = "additionally exclude paths matched by the root .gitignore"
	summaryFlagDescription   = "list the files that would be included, with a count, and exit"
	tokensFlagDescription    = "include token counts"
	modelFlagDescription     = "tokenizer model to use for token counting"

	gitignoreFileName = ".gitignore"
	stdinInputLabel   = "stdin"
	totalLabel        = "Total"

	summaryDirectoryFormat = "Directory Processed: %s\n"
	summaryFilesHeader     = "--- Files that will be included ---"
	summaryTotalFormat     = "\nTotal files: %d\n"

	countLineFormat          = "%s: %d lines, %d characters, %d bytes"
	countTokensSuffixFormat  = ", %d tokens"
	warningFileReadFormat    = "Warning: could not read %s: %v\n"
	warningTokenCountFormat  = "Warning: failed to count tokens for %s: %v\n"
	warningGitignoreFormat   = "Warning: could not compile %s: %v\n"
	errorDirectoryMissingFmt = "directory not found at '%s'"
	errorClipboardFormat     = "could not copy to clipboard: %w"
	errorClipboardMissing    = "could not copy to clipboard: no clipboard mechanism available"
	workingDirectoryErrorFmt = "unable to determine working directory: %w"
	errorNoInputs            = "no readable inputs"
)

// Execute runs the viopi application.
func Execute() error {
	rootCommand := createRootCommand()
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool
	var configurationPath string

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.PersistentFlags().StringVar(&configurationPath, configFlagName, "", configFlagDescription)
	rootCommand.AddCommand(
		createCombineCommand(types.CommandCopy, &configurationPath),
		createCombineCommand(types.CommandCat, &configurationPath),
		createIgnoreCommand(&configurationPath),
		createCountCommand(&configurationPath),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// combineOptions stores flag state shared by the copy and cat commands.
type combineOptions struct {
	disableTree  bool
	useGitignore bool
	summaryOnly  bool
}

// createCombineCommand returns the copy or cat subcommand.
func createCombineCommand(commandName string, configurationPath *string) *cobra.Command {
	var options combineOptions

	use := copyUse
	alias := copyAlias
	short := copyShortDescription
	long := copyLongDescription
	example := copyUsageExample
	if commandName == types.CommandCat {
		use = catUse
		alias = catAlias
		short = catShortDescription
		long = catLongDescription
		example = catUsageExample
	}

	combineCommand := &cobra.Command{
		Use:     use,
		Aliases: []string{alias},
		Short:   short,
		Long:    long,
		Example: example,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return runCombine(commandName, arguments, options, command, *configurationPath)
		},
	}

	combineCommand.Flags().BoolVar(&options.disableTree, noTreeFlagName, false, noTreeFlagDescription)
	combineCommand.Flags().BoolVar(&options.useGitignore, gitignoreFlagName, false, gitignoreFlagDescription)
	combineCommand.Flags().BoolVarP(&options.summaryOnly, summaryFlagName, summaryFlagShorthand, false, summaryFlagDescription)
	return combineCommand
}

// createIgnoreCommand returns the ignore subcommand.
func createIgnoreCommand(configurationPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   ignoreUse,
		Short: ignoreShort,
		Long:  ignoreLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			applicationConfiguration, configurationError := loadApplicationConfiguration(*configurationPath)
			if configurationError != nil {
				return configurationError
			}
			rootDirectory, tokens, resolveError := resolveRootAndTokens(arguments)
			if resolveError != nil {
				return resolveError
			}
			patternSet, aggregateError := config.DefaultSettings().Aggregate(rootDirectory, tokens, applicationConfiguration.Combine.Exclude)
			if aggregateError != nil {
				return aggregateError
			}
			fmt.Fprintln(command.OutOrStdout(), output.FormatIgnoreListing(patternSet))
			return nil
		},
	}
}

// runCombine executes the shared combine pipeline and delivers the document
// according to commandName.
func runCombine(commandName string, arguments []string, options combineOptions, command *cobra.Command, configurationPath string) error {
	applicationConfiguration, configurationError := loadApplicationConfiguration(configurationPath)
	if configurationError != nil {
		return configurationError
	}

	rootDirectory, tokens, resolveError := resolveRootAndTokens(arguments)
	if resolveError != nil {
		return resolveError
	}

	settings := config.DefaultSettings()
	patternSet, aggregateError := settings.Aggregate(rootDirectory, tokens, applicationConfiguration.Combine.Exclude)
	if aggregateError != nil {
		return aggregateError
	}

	fmt.Fprintln(os.Stderr, output.FormatStatusReport(patternSet, output.StderrIsTerminal()))

	useGitignore := options.useGitignore
	if !command.Flags().Changed(gitignoreFlagName) && applicationConfiguration.Combine.UseGitignore != nil {
		useGitignore = *applicationConfiguration.Combine.UseGitignore
	}
	var gitIgnoreMatcher *gitignore.GitIgnore
	if useGitignore {
		gitignorePath := filepath.Join(rootDirectory, gitignoreFileName)
		if _, statError := os.Stat(gitignorePath); statError == nil {
			compiledMatcher, compileError := gitignore.CompileIgnoreFile(gitignorePath)
			if compileError != nil {
				fmt.Fprintf(os.Stderr, warningGitignoreFormat, gitignorePath, compileError)
			} else {
				gitIgnoreMatcher = compiledMatcher
			}
		}
	}

	collector := walk.Collector{
		RootDirectory:  rootDirectory,
		IgnorePatterns: patternSet.Patterns,
		Classifier:     classify.MimeClassifier{},
		GitIgnore:      gitIgnoreMatcher,
	}
	candidates, collectError := collector.Collect()
	if collectError != nil {
		return collectError
	}

	if options.summaryOnly {
		summaryWriter := command.OutOrStdout()
		fmt.Fprintf(summaryWriter, summaryDirectoryFormat, rootDirectory)
		fmt.Fprintln(summaryWriter, summaryFilesHeader)
		for _, candidate := range candidates {
			fmt.Fprintln(summaryWriter, candidate.RelativePath)
		}
		fmt.Fprintf(summaryWriter, summaryTotalFormat, len(candidates))
		return nil
	}

	treeEnabled := !options.disableTree
	if !command.Flags().Changed(noTreeFlagName) && applicationConfiguration.Combine.Tree != nil {
		treeEnabled = *applicationConfiguration.Combine.Tree
	}
	var treeRenderer tree.Renderer
	if treeEnabled {
		treeRenderer = tree.NewRenderer()
	}
	treeSection := output.TreeSection(treeRenderer, rootDirectory, patternSet.Patterns)

	document, stats := output.Assemble(rootDirectory, treeSection, candidates)
	summary := output.FormatSummary(commandName, stats, patternSet.ActivatedPresets)

	if commandName == types.CommandCopy {
		clipboardService := clipboard.NewService()
		if !clipboardService.Available() {
			return errors.New(errorClipboardMissing)
		}
		if copyError := clipboardService.Copy(document); copyError != nil {
			return fmt.Errorf(errorClipboardFormat, copyError)
		}
		fmt.Println(summary)
		return nil
	}

	fmt.Print(document)
	if len(document) > 0 && document[len(document)-1] != '\n' {
		fmt.Println()
	}
	fmt.Fprintln(os.Stderr, summary)
	return nil
}

// resolveRootAndTokens interprets positional arguments: the first token naming
// an existing directory overrides the root, every remaining token is a pattern
// or preset. The returned root is absolute.
func resolveRootAndTokens(arguments []string) (string, []string, error) {
	rootArgument := defaultPath
	tokens := arguments
	if len(arguments) > 0 {
		if pathInformation, statError := os.Stat(arguments[0]); statError == nil && pathInformation.IsDir() {
			rootArgument = arguments[0]
			tokens = arguments[1:]
		}
	}

	absoluteRoot, absolutePathError := filepath.Abs(rootArgument)
	if absolutePathError != nil {
		return "", nil, fmt.Errorf("abs failed for '%s': %w", rootArgument, absolutePathError)
	}
	rootInformation, rootStatError := os.Stat(absoluteRoot)
	if rootStatError != nil || !rootInformation.IsDir() {
		return "", nil, fmt.Errorf(errorDirectoryMissingFmt, absoluteRoot)
	}
	return absoluteRoot, tokens, nil
}

// loadApplicationConfiguration resolves layered configuration for the current
// working directory plus an optional explicit file path.
func loadApplicationConfiguration(explicitPath string) (config.ApplicationConfiguration, error) {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return config.ApplicationConfiguration{}, fmt.Errorf(workingDirectoryErrorFmt, workingDirectoryError)
	}
	return config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: explicitPath,
	})
}
