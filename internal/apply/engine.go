// Package apply walks extracted code blocks and, one at a time, writes each
// to a file or runs it as a shell command after asking the user.
package apply

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/afero"

	"github.com/quocvuong92/codemancer/internal/blocks"
	"github.com/quocvuong92/codemancer/internal/constants"
	"github.com/quocvuong92/codemancer/internal/logging"
)

const (
	commandLineLabel  = "the command line"
	unspecifiedLabel  = "unspecified language"
	newPathPrompt     = "Enter the new output file path: "
	abortedMessage    = "Operation aborted by the user."
	blockFoundMessage = "Code block found:"
)

// LineReader reads one line of user input after showing prompt.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// Options configures an Engine.
type Options struct {
	// Verbosity 0 applies every block without asking. Above 0 results are
	// reported, above 1 each block is shown before the question.
	Verbosity int
	// Input answers the per-block question above Verbosity 0 and the
	// replacement path after a failed write at any verbosity. Without it a
	// failed write is returned at once.
	Input  LineReader
	Output io.Writer
	Fs     afero.Fs
	Runner CommandRunner
	Logger *logging.Logger
	// Render formats a block preview as markdown. Nil prints the body as is.
	Render func(markdown string) (string, error)
}

// Engine applies code blocks sequentially.
type Engine struct {
	opts Options
}

// NewEngine creates an engine, filling unset options with the process
// terminal, the OS filesystem and a ShellRunner.
func NewEngine(opts Options) *Engine {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Runner == nil {
		opts.Runner = NewShellRunner()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	return &Engine{opts: opts}
}

// Target returns the candidate path for block i: targets[i] when present,
// otherwise targets[0].
func Target(targets []string, i int) string {
	if i < len(targets) {
		return targets[i]
	}
	return targets[0]
}

// Apply processes found in order. It stops at the first fatal error: a
// failed read of user input, a failed shell block, or a write that failed
// twice. Skipped blocks are not errors.
func (e *Engine) Apply(ctx context.Context, found []blocks.CodeBlock, targets []string) error {
	if len(found) == 0 {
		return nil
	}
	if len(targets) == 0 {
		return ErrNoTargets
	}

	for i, block := range found {
		if err := e.applyOne(ctx, i, block, Target(targets, i)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) applyOne(ctx context.Context, i int, block blocks.CodeBlock, target string) error {
	shell := block.Language == constants.ShellLanguage
	log := e.opts.Logger.With(logging.Fields{
		"block":    i,
		"language": block.Language,
		"shell":    shell,
	})

	if e.opts.Verbosity > 1 {
		e.showBlock(block)
	}
	e.warn(block, target, shell)

	d, err := e.decide(block, target, shell)
	if err != nil {
		return err
	}
	log.Debug("Block decision", logging.Fields{"state": d.State.String(), "path": d.Path})

	if d.State == Skipped {
		e.report(color.WhiteString(abortedMessage))
		return nil
	}
	if shell {
		return e.run(ctx, block.Body, log)
	}
	if d.Path != target {
		e.warnProtected(d.Path)
	}
	return e.write(d.Path, block.Body, log)
}

// decide runs the decision machine until it reaches a terminal state.
func (e *Engine) decide(block blocks.CodeBlock, target string, shell bool) (Decision, error) {
	if e.opts.Verbosity == 0 {
		return Decision{State: Confirmed, Path: target}, nil
	}

	d := Decision{State: Prompting}
	for !d.State.Terminal() {
		answer, err := e.opts.Input.ReadLine(e.promptFor(d.State, block, target, shell))
		if err != nil {
			return Decision{}, fmt.Errorf("failed to read answer: %w", err)
		}
		d = Next(d.State, answer, shell)
	}
	if d.State == Confirmed {
		d.Path = target
	}
	return d, nil
}

func (e *Engine) promptFor(s State, block blocks.CodeBlock, target string, shell bool) string {
	if s == AwaitingPath {
		return color.WhiteString(newPathPrompt)
	}

	lang := block.Language
	if lang == "" {
		lang = unspecifiedLabel
	}
	if shell {
		target = commandLineLabel
	}
	return color.WhiteString("Do you want to write this ") +
		color.YellowString(lang) +
		color.WhiteString(" code block to ") +
		color.YellowString(target) +
		color.WhiteString("? \nyes (y) / skip (s) / enter output path (o): ")
}

// write stores body at path. On failure it asks once for a replacement path
// and retries; a second failure is returned as *WriteFailure.
func (e *Engine) write(path, body string, log *logging.Logger) error {
	err := afero.WriteFile(e.opts.Fs, path, []byte(body), 0o644)
	if err == nil {
		e.written(path, log)
		return nil
	}

	log.Warn("Write failed", logging.Fields{"path": path, "error": err.Error()})
	fmt.Fprintln(e.opts.Output, color.RedString("Error writing to file: %v", err))
	if e.opts.Input == nil {
		return &WriteFailure{Path: path, Err: err}
	}

	answer, err := e.opts.Input.ReadLine(color.WhiteString(newPathPrompt))
	if err != nil {
		return fmt.Errorf("failed to read output path: %w", err)
	}
	retry := strings.TrimSpace(answer)
	e.warnProtected(retry)
	if err := afero.WriteFile(e.opts.Fs, retry, []byte(body), 0o644); err != nil {
		return &WriteFailure{Path: retry, Err: err}
	}
	e.written(retry, log)
	return nil
}

func (e *Engine) written(path string, log *logging.Logger) {
	log.Info("Code block written", logging.Fields{"path": path})
	e.report(color.WhiteString("Code block written to %s", path))
}

// run executes a shell block. Any error, non-zero exit or stderr output
// fails the block.
func (e *Engine) run(ctx context.Context, script string, log *logging.Logger) error {
	log.Debug("Running shell block", logging.Fields{"command": e.opts.Runner.CommandLine(script)})

	result, err := e.opts.Runner.Run(ctx, script)
	if err != nil {
		log.Error("Command failed to start", err)
		return &CommandFailure{Err: err}
	}

	log.Debug("Command finished", logging.Fields{
		"exit_code":    result.ExitCode,
		"stdout_bytes": len(result.Stdout),
		"stderr_bytes": len(result.Stderr),
	})
	if result.ExitCode != 0 || result.Stderr != "" {
		return &CommandFailure{Stderr: result.Stderr, ExitCode: result.ExitCode}
	}

	if e.opts.Verbosity > 0 {
		fmt.Fprint(e.opts.Output, color.GreenString("Command stdout: %s", result.Stdout))
	}
	return nil
}

func (e *Engine) showBlock(block blocks.CodeBlock) {
	fmt.Fprintln(e.opts.Output, color.WhiteString(blockFoundMessage))
	if e.opts.Render != nil {
		md := "```" + block.Language + "\n" + block.Body + "```\n"
		if out, err := e.opts.Render(md); err == nil {
			fmt.Fprint(e.opts.Output, out)
			return
		}
	}
	fmt.Fprintln(e.opts.Output, color.GreenString("%s", block.Body))
}

// warn flags risky shell blocks and writes into system directories. It
// never changes the decision. Dangerous scripts are flagged even in silent
// mode; a modifying script only gets a note.
func (e *Engine) warn(block blocks.CodeBlock, target string, shell bool) {
	if !shell {
		e.warnProtected(target)
		return
	}
	switch level := ClassifyScript(block.Body); level {
	case Dangerous:
		fmt.Fprintln(e.opts.Output, color.RedString("Warning: %s.", level))
	case Modifying:
		e.report(color.YellowString("Note: %s.", level))
	}
}

func (e *Engine) warnProtected(path string) {
	if prefix, ok := ProtectedPath(path); ok {
		fmt.Fprintln(e.opts.Output, color.RedString("Warning: %s is inside protected directory %s.", path, prefix))
	}
}

// report prints msg when verbosity allows any output.
func (e *Engine) report(msg string) {
	if e.opts.Verbosity > 0 {
		fmt.Fprintln(e.opts.Output, msg)
	}
}
