// Package tree renders directory listings through the external tree utility.
package tree

import (
	"errors"
	"os/exec"
)

const treeExecutableName = "tree"

// ErrUnavailable reports that no tree-rendering capability exists in this environment.
var ErrUnavailable = errors.New("tree command not available")

// Renderer renders a directory tree for a root, excluding the given patterns.
type Renderer interface {
	Render(rootDirectory string, excludePatterns []string) (string, error)
}

// ExecRenderer shells out to the tree binary with one -I flag per exclusion.
type ExecRenderer struct{}

// Render implements Renderer. Stderr of the tree process is discarded.
func (ExecRenderer) Render(rootDirectory string, excludePatterns []string) (string, error) {
	arguments := make([]string, 0, len(excludePatterns)*2)
	for _, patternValue := range excludePatterns {
		arguments = append(arguments, "-I", patternValue)
	}

	// #nosec G204
	treeCommand := exec.Command(treeExecutableName, arguments...)
	treeCommand.Dir = rootDirectory
	renderedOutput, runError := treeCommand.Output()
	if runError != nil {
		return "", runError
	}
	return string(renderedOutput), nil
}

// UnavailableRenderer is the stub used when the tree binary cannot be found.
type UnavailableRenderer struct{}

// Render implements Renderer by always reporting ErrUnavailable.
func (UnavailableRenderer) Render(string, []string) (string, error) {
	return "", ErrUnavailable
}

// NewRenderer returns an ExecRenderer when the tree binary is on PATH and the
// UnavailableRenderer stub otherwise.
func NewRenderer() Renderer {
	if _, lookupError := exec.LookPath(treeExecutableName); lookupError != nil {
		return UnavailableRenderer{}
	}
	return ExecRenderer{}
}

var (
	_ Renderer = ExecRenderer{}
	_ Renderer = UnavailableRenderer{}
)
