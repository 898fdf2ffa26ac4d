package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/quocvuong92/codemancer/internal/apply"
	"github.com/quocvuong92/codemancer/internal/config"
	"github.com/quocvuong92/codemancer/internal/constants"
	"github.com/quocvuong92/codemancer/internal/display"
)

// App holds the application state
type App struct {
	cfg *config.Config

	// Raw flag values, resolved together with the positional arguments
	promptFlag string
	inputFlag  string
	outputFlag string
	noColor    bool

	// Terminal and filesystem access. Nil fields use the process defaults.
	input  apply.LineReader
	out    io.Writer
	fs     afero.Fs
	runner apply.CommandRunner
}

// NewApp creates a new App instance with default configuration
func NewApp() *App {
	return &App{
		cfg: config.NewConfig(),
	}
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewApp().newRootCmd().ExecuteContext(ctx); err != nil {
		display.ShowError(err.Error())
		stop()
		os.Exit(1)
	}
}

func (app *App) newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   constants.AppName + " [inputs] [prompt...]",
		Short: "Stream a code change from an LLM and apply it to your files",
		Long: `Codemancer sends a prompt, optionally with the contents of input files, to an
OpenAI-compatible chat endpoint, streams the answer to the terminal and then
offers to write every fenced code block to an output file. Blocks tagged
bash are offered for execution instead.

Without OPENAI_API_KEY a free, rate limited proxy is used.

Examples:
  codemancer main.go "add a --version flag"
  codemancer -i a.go,b.go -o out.go -p "merge these files"
  codemancer "print the largest files in this directory as a bash script"
  codemancer -s 0 main.go "fix the typo"     # apply without asking`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, args)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&app.promptFlag, "prompt", "p", "", "Prompt sent to the model")
	flags.StringVarP(&app.inputFlag, "input", "i", "", "Comma-separated input files appended to the prompt")
	flags.StringVarP(&app.outputFlag, "output", "o", "", "Comma-separated output files (default: the input files)")
	flags.StringVarP(&app.cfg.Model, config.FieldModel, "m", constants.DefaultModel, "Model name")
	flags.Float64VarP(&app.cfg.Temperature, config.FieldTemperature, "t", constants.DefaultTemperature, "Sampling temperature (0-2)")
	flags.IntVarP(&app.cfg.Verbosity, config.FieldVerbosity, "s", constants.DefaultVerbosity, "Verbosity (0 applies every block without asking, 3 also echoes the prompt)")
	flags.BoolVarP(&app.cfg.Render, config.FieldRender, "r", false, "Render markdown with colors and formatting")
	flags.BoolVarP(&app.cfg.Debug, "debug", "v", false, "Enable debug logging on stderr")
	flags.BoolVar(&app.cfg.CheckPlaceholders, config.FieldCheckPlaceholders, false, "Ask the model to list placeholders left in each code block")
	flags.BoolVar(&app.noColor, "no-color", false, "Disable colored output")

	return rootCmd
}

// markExplicitFlags records the settings given on the command line so the
// config file and environment leave them alone.
func (app *App) markExplicitFlags(cmd *cobra.Command) {
	for _, name := range []string{
		config.FieldModel,
		config.FieldTemperature,
		config.FieldVerbosity,
		config.FieldRender,
		config.FieldCheckPlaceholders,
	} {
		if cmd.Flags().Changed(name) {
			app.cfg.MarkSet(name)
		}
	}
}
