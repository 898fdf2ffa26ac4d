package apply

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"al.essio.dev/pkg/shellescape"
)

// DefaultShell runs shell blocks.
const DefaultShell = "sh"

// ExecutionResult is the captured outcome of one command.
type ExecutionResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// CommandRunner runs a shell script to completion.
// A non-zero exit is reported through ExecutionResult, not the error.
type CommandRunner interface {
	Run(ctx context.Context, script string) (*ExecutionResult, error)
	// CommandLine describes how Run would execute script, for logs.
	CommandLine(script string) string
}

// ShellRunner runs scripts with "<shell> -c" in the current environment.
type ShellRunner struct {
	Shell string
	Dir   string
}

// NewShellRunner creates a runner for DefaultShell in the working directory.
func NewShellRunner() *ShellRunner {
	return &ShellRunner{Shell: DefaultShell}
}

// CommandLine returns the argv that Run executes for script, quoted for display.
func (r *ShellRunner) CommandLine(script string) string {
	return shellescape.QuoteCommand(r.argv(script))
}

func (r *ShellRunner) argv(script string) []string {
	shell := r.Shell
	if shell == "" {
		shell = DefaultShell
	}
	return []string{shell, "-c", script}
}

// Run executes script and waits for it. There is no timeout.
func (r *ShellRunner) Run(ctx context.Context, script string) (*ExecutionResult, error) {
	argv := r.argv(script)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = r.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &ExecutionResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, fmt.Errorf("failed to start %s: %w", argv[0], err)
	}
	return result, nil
}
