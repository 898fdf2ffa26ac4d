package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/quocvuong92/codemancer/internal/api"
	"github.com/quocvuong92/codemancer/internal/apply"
	"github.com/quocvuong92/codemancer/internal/blocks"
	"github.com/quocvuong92/codemancer/internal/constants"
	"github.com/quocvuong92/codemancer/internal/display"
	"github.com/quocvuong92/codemancer/internal/logging"
	"github.com/quocvuong92/codemancer/internal/prompt"
	"github.com/quocvuong92/codemancer/internal/stream"
)

const proxyWarning = "OPENAI_API_KEY not set. Using free codemancer OpenAI proxy, which is slower and rate limited."

func (app *App) run(cmd *cobra.Command, args []string) error {
	if app.noColor {
		display.DisableColor()
	}
	app.markExplicitFlags(cmd)

	inv, err := resolveArgs(app.promptFlag, app.inputFlag, app.outputFlag, args)
	if err != nil {
		return err
	}
	if inv.AssumedPrompt {
		display.ShowWarning(singleArgumentWarning)
	}
	app.cfg.Prompt = inv.Prompt
	app.cfg.Inputs = inv.Inputs
	app.cfg.Outputs = inv.Outputs

	if err := app.cfg.Validate(); err != nil {
		return err
	}

	logger := app.newLogger()
	if app.cfg.UsingProxy {
		display.ShowWarning(proxyWarning)
	}
	logger.Debug("Configuration resolved", logging.Fields{
		"model":       app.cfg.Model,
		"temperature": app.cfg.Temperature,
		"verbosity":   app.cfg.Verbosity,
		"url":         app.cfg.APIURL,
		"inputs":      strings.Join(app.cfg.Inputs, ","),
		"outputs":     strings.Join(app.cfg.Outputs, ","),
	})

	if app.cfg.Render {
		if err := display.InitRenderer(); err != nil {
			logger.Warn("Failed to initialize renderer", logging.Fields{"error": err.Error()})
		}
	}

	fs := app.filesystem()
	inputs, err := prompt.ReadInputs(fs, app.cfg.Inputs)
	if err != nil {
		return err
	}
	text := prompt.Build(app.cfg.Prompt, inputs)
	if app.cfg.Verbosity > 2 {
		display.ShowPrompt(text)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	client := api.NewClient(app.cfg, logger)

	completion, err := app.streamCompletion(ctx, client, text)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("interrupted: %w", err)
	}
	if completion.Partial() {
		display.ShowWarning(fmt.Sprintf("the stream ended early (%v), continuing with the partial completion", completion.Err))
	}

	if len(app.cfg.Outputs) == 0 {
		return nil
	}

	found := blocks.Extract(completion.Text)
	logger.Debug("Code blocks extracted", logging.Fields{"count": len(found)})

	if app.cfg.CheckPlaceholders {
		if err := checkPlaceholders(ctx, client, found); err != nil {
			return err
		}
	}

	if len(found) == 0 {
		if app.cfg.Verbosity > 0 {
			display.ShowNoCodeBlocks()
		}
		return nil
	}

	opts := apply.Options{
		Verbosity: app.cfg.Verbosity,
		Output:    app.output(),
		Input:     app.lineReader(),
		Fs:        fs,
		Runner:    app.runner,
		Logger:    logger,
	}
	if app.cfg.Render {
		opts.Render = display.RenderMarkdown
	}
	return apply.NewEngine(opts).Apply(ctx, found, app.cfg.Outputs)
}

// streamCompletion sends the main request, echoing the answer while the
// spinner runs until the first fragment.
func (app *App) streamCompletion(ctx context.Context, client *api.Client, text string) (*stream.Completion, error) {
	var spinner *display.Spinner
	if app.cfg.Verbosity > 0 {
		spinner = display.NewSpinner("Thinking...")
		spinner.Start()
	}

	sink := display.NewStreamSink(app.output(), spinner, app.cfg.Render)
	completion, err := client.StreamCompletion(ctx, api.CompletionRequest{
		Instruction: constants.ModifyInstruction,
		Prompt:      text,
		Temperature: app.cfg.Temperature,
	}, sink)
	sink.Finish()
	return completion, err
}

// checkPlaceholders asks the model, once per block and without echo, to list
// the placeholders left in the code.
func checkPlaceholders(ctx context.Context, client *api.Client, found []blocks.CodeBlock) error {
	for _, block := range found {
		answer, err := client.StreamCompletion(ctx, api.CompletionRequest{
			Instruction: constants.IdentifyPlaceholdersInstruction,
			Prompt:      block.Body,
			Temperature: 0,
		}, stream.Discard)
		if err != nil {
			return fmt.Errorf("failed to check placeholders: %w", err)
		}
		display.ShowPlaceholders(strings.TrimSpace(answer.Text))
	}
	return nil
}

// newLogger builds the run logger. Logging is off unless the config file
// sets log_level or --debug is given.
func (app *App) newLogger() *logging.Logger {
	if !app.cfg.Debug && app.cfg.LogLevel == "" {
		return logging.Nop()
	}

	format := logging.FormatText
	if strings.EqualFold(app.cfg.LogFormat, "json") {
		format = logging.FormatJSON
	}
	logger := logging.New(logging.Options{
		Level:  logging.ParseLevel(app.cfg.LogLevel),
		Format: format,
		Output: display.Stderr,
	})
	if app.cfg.Debug {
		logger.SetLevel(logging.LevelDebug)
	}
	return logger.With(logging.Fields{"run_id": uuid.NewString()})
}

func (app *App) filesystem() afero.Fs {
	if app.fs == nil {
		app.fs = afero.NewOsFs()
	}
	return app.fs
}

func (app *App) output() io.Writer {
	if app.out == nil {
		return display.Stdout
	}
	return app.out
}

func (app *App) lineReader() apply.LineReader {
	if app.input == nil {
		return display.NewInput()
	}
	return app.input
}
