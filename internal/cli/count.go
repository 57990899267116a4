package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/viopi/internal/counter"
)

// createCountCommand returns the count subcommand.
func createCountCommand(configurationPath *string) *cobra.Command {
	var tokensEnabled bool
	var tokenModel string

	countCommand := &cobra.Command{
		Use:     countUse,
		Short:   countShort,
		Long:    countLongDescription,
		Example: countUsageExample,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			applicationConfiguration, configurationError := loadApplicationConfiguration(*configurationPath)
			if configurationError != nil {
				return configurationError
			}
			if !command.Flags().Changed(tokensFlagName) && applicationConfiguration.Count.Tokens != nil {
				tokensEnabled = *applicationConfiguration.Count.Tokens
			}
			if !command.Flags().Changed(modelFlagName) && applicationConfiguration.Count.Model != "" {
				tokenModel = applicationConfiguration.Count.Model
			}
			return runCount(arguments, tokensEnabled, tokenModel)
		},
	}

	countCommand.Flags().BoolVar(&tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	countCommand.Flags().StringVar(&tokenModel, modelFlagName, "", modelFlagDescription)
	return countCommand
}

// runCount tallies each input and prints one line per input plus a total when
// more than one input was counted. Per-file read failures are recovered as
// warnings on standard error.
func runCount(paths []string, tokensEnabled bool, tokenModel string) error {
	var tokenCounter counter.TokenCounter
	if tokensEnabled {
		createdCounter, _, counterError := counter.NewTokenCounter(tokenModel)
		if counterError != nil {
			return counterError
		}
		tokenCounter = createdCounter
	}

	if len(paths) == 0 {
		stdinBytes, readError := io.ReadAll(os.Stdin)
		if readError != nil {
			return fmt.Errorf("reading standard input: %w", readError)
		}
		result := countTokensBytes(counter.CountBytes(stdinBytes), stdinBytes, stdinInputLabel, tokenCounter)
		printCountLine(stdinInputLabel, result, tokensEnabled)
		return nil
	}

	var total counter.Result
	countedInputs := 0
	for _, path := range paths {
		fileBytes, fileReadError := os.ReadFile(path)
		if fileReadError != nil {
			fmt.Fprintf(os.Stderr, warningFileReadFormat, path, fileReadError)
			continue
		}
		result := countTokensBytes(counter.CountBytes(fileBytes), fileBytes, path, tokenCounter)
		printCountLine(path, result, tokensEnabled)
		total.Add(result)
		countedInputs++
	}
	if countedInputs == 0 {
		return errors.New(errorNoInputs)
	}
	if countedInputs > 1 {
		printCountLine(totalLabel, total, tokensEnabled)
	}
	return nil
}

// countTokensBytes adds a token tally to result when a token counter is configured.
func countTokensBytes(result counter.Result, data []byte, label string, tokenCounter counter.TokenCounter) counter.Result {
	if tokenCounter == nil {
		return result
	}
	tokens, tokenError := tokenCounter.CountString(strings.ToValidUTF8(string(data), ""))
	if tokenError != nil {
		fmt.Fprintf(os.Stderr, warningTokenCountFormat, label, tokenError)
		return result
	}
	result.Tokens = tokens
	return result
}

// printCountLine writes one formatted tally line to standard output.
func printCountLine(label string, result counter.Result, tokensEnabled bool) {
	line := fmt.Sprintf(countLineFormat, label, result.Lines, result.Characters, result.Bytes)
	if tokensEnabled {
		line += fmt.Sprintf(countTokensSuffixFormat, result.Tokens)
	}
	fmt.Println(line)
}
