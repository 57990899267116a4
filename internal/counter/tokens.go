package counter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter estimates token counts for text content.
type TokenCounter interface {
	Name() string
	CountString(input string) (int, error)
}

const (
	defaultTokenModel   = "gpt-4o"
	defaultEncodingName = "cl100k_base"
)

// NewTokenCounter returns a TokenCounter for the requested model alongside the
// resolved model or encoding name. Unknown models fall back to the default
// encoding rather than failing.
func NewTokenCounter(model string) (TokenCounter, string, error) {
	resolvedModel := strings.TrimSpace(model)
	if resolvedModel == "" {
		resolvedModel = defaultTokenModel
	}
	lowerModel := strings.ToLower(resolvedModel)

	encoding, encodingError := tiktoken.EncodingForModel(lowerModel)
	if encodingError == nil && encoding != nil {
		return openAICounter{encoding: encoding, name: lowerModel}, resolvedModel, nil
	}

	fallback, fallbackError := tiktoken.GetEncoding(defaultEncodingName)
	if fallbackError != nil {
		return nil, "", fmt.Errorf("initialize fallback tokenizer: %w", fallbackError)
	}
	return openAICounter{encoding: fallback, name: defaultEncodingName}, defaultEncodingName, nil
}

type openAICounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

func (tokenCounter openAICounter) Name() string {
	return tokenCounter.name
}

func (tokenCounter openAICounter) CountString(input string) (int, error) {
	if tokenCounter.encoding == nil {
		return 0, errors.New("nil tiktoken encoder")
	}
	tokenIdentifiers := tokenCounter.encoding.Encode(input, nil, nil)
	return len(tokenIdentifiers), nil
}
