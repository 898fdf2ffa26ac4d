// Package prompt assembles the user prompt from free text and input files.
package prompt

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
)

// Input is one input file and its contents.
type Input struct {
	Path    string
	Content string
}

// ReadInputs reads every path from fs, in order. Any unreadable file fails
// the whole call.
func ReadInputs(fs afero.Fs, paths []string) ([]Input, error) {
	inputs := make([]Input, 0, len(paths))
	for _, path := range paths {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read input file %s: %w", path, err)
		}
		inputs = append(inputs, Input{Path: path, Content: string(data)})
	}
	return inputs, nil
}

// Build appends each input to text as a headed, fenced section:
//
//	### path:
//	```
//	content
//	```
func Build(text string, inputs []Input) string {
	var sb strings.Builder
	sb.WriteString(text)
	for _, in := range inputs {
		fmt.Fprintf(&sb, "\n\n### %s:\n```\n%s\n```\n", in.Path, in.Content)
	}
	return sb.String()
}
