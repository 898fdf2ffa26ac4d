package apply

import (
	"errors"
	"fmt"
)

// ErrNoTargets is returned when blocks are applied without any output target.
var ErrNoTargets = errors.New("no output targets")

// WriteFailure is a block write that failed again after the user supplied a
// replacement path.
type WriteFailure struct {
	Path string
	Err  error
}

func (e *WriteFailure) Error() string {
	return fmt.Sprintf("failed to write code block to %s: %v", e.Path, e.Err)
}

func (e *WriteFailure) Unwrap() error { return e.Err }

// CommandFailure is a shell block that could not run, exited non-zero, or
// wrote anything to stderr.
type CommandFailure struct {
	Stderr   string
	ExitCode int
	Err      error
}

func (e *CommandFailure) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("error running command: %v", e.Err)
	case e.ExitCode != 0:
		return fmt.Sprintf("command exited with status %d: %q", e.ExitCode, e.Stderr)
	default:
		return fmt.Sprintf("command stderr: %q", e.Stderr)
	}
}

func (e *CommandFailure) Unwrap() error { return e.Err }
