package cmd

import (
	"fmt"
	"strings"

	"github.com/quocvuong92/codemancer/internal/config"
)

const singleArgumentWarning = "Received a single argument, assuming it is prompt"

// invocation is the prompt and file lists resolved from flags and
// positional arguments.
type invocation struct {
	Prompt  string
	Inputs  []string
	Outputs []string
	// AssumedPrompt is set when a lone positional was taken as the prompt.
	AssumedPrompt bool
}

// resolveArgs combines the -p, -i and -o flags with the positional
// arguments `[inputs] [prompt...]`:
//
//   - with -p, the first positional is the input list unless -i is given;
//   - with -i but no -p, every positional is part of the prompt;
//   - with neither, two or more positionals are inputs then prompt words,
//     and a single positional is the prompt.
func resolveArgs(promptFlag, inputFlag, outputFlag string, args []string) (invocation, error) {
	var inv invocation
	inputs := inputFlag

	switch {
	case promptFlag != "":
		inv.Prompt = promptFlag
		rest := args
		if inputFlag == "" && len(rest) > 0 {
			inputs = rest[0]
			rest = rest[1:]
		}
		if len(rest) > 0 {
			return invocation{}, fmt.Errorf("unexpected arguments: %s", strings.Join(rest, " "))
		}
	case inputFlag != "":
		inv.Prompt = strings.Join(args, " ")
	case len(args) >= 2:
		inputs = args[0]
		inv.Prompt = strings.Join(args[1:], " ")
	case len(args) == 1:
		inv.Prompt = args[0]
		inv.AssumedPrompt = true
	}

	inv.Inputs = config.SplitList(inputs)
	inv.Outputs = config.SplitList(outputFlag)
	return inv, nil
}
