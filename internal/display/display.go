// Package display handles terminal output: colored messages, the spinner,
// markdown rendering, the live stream echo and line input.
package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Output destinations. Tests replace them.
var (
	Stdout io.Writer = color.Output
	Stderr io.Writer = color.Error
)

// DisableColor turns off ANSI colors for all output.
func DisableColor() {
	color.NoColor = true
}

// ShowError prints an error message in red to stderr.
func ShowError(msg string) {
	fmt.Fprintln(Stderr, color.RedString("%s", msg))
}

// ShowWarning prints a warning in red to stderr.
func ShowWarning(msg string) {
	fmt.Fprintln(Stderr, color.RedString("Warning: %s", msg))
}

// ShowPrompt echoes the assembled prompt in cyan.
func ShowPrompt(prompt string) {
	fmt.Fprintln(Stdout, color.CyanString("%s", prompt))
}

// ShowNoCodeBlocks reports a completion without any fenced block.
func ShowNoCodeBlocks() {
	fmt.Fprintln(Stdout, color.RedString("No code block found in the completion."))
}

// ShowPlaceholders prints the answer of the placeholder check.
func ShowPlaceholders(answer string) {
	fmt.Fprintln(Stdout, color.WhiteString("Placeholders found: %s", answer))
}
