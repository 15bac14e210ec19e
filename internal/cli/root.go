package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-pagegen/internal/config"
	"github.com/goliatone/go-pagegen/internal/report"
)

// Streams groups the process I/O used by commands.
type Streams struct {
	Out io.Writer
	Err io.Writer
}

// Confirmer asks a yes/no question.
type Confirmer func(ctx context.Context, message string) (bool, error)

// Option customises the root command.
type Option func(*app)

// WithConfirmer replaces the interactive overwrite prompt.
func WithConfirmer(confirm Confirmer) Option {
	return func(a *app) {
		if confirm != nil {
			a.confirm = confirm
		}
	}
}

type app struct {
	streams    Streams
	confirm    Confirmer
	configFile string

	cfg     *config.Config
	logger  *log.Logger
	printer *report.Printer
}

// NewRootCommand builds the pagegen command tree.
func NewRootCommand(streams Streams, options ...Option) *cobra.Command {
	a := &app{streams: streams, confirm: surveyConfirm}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}

	root := &cobra.Command{
		Use:   config.AppName,
		Short: "Migrate, validate and resolve page documents",
		Long: `pagegen works with page documents: zones of rows of columns of elements.

It upgrades legacy documents to the current element model, validates
documents against the element rules and resolves data bindings against a
provider bundle.

Exit Codes:
  0  - Success
  1  - Invalid document, migration errors or I/O failure
  2  - CLI usage error (invalid arguments or flags)`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(streams.Out)
	root.SetErr(streams.Err)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default: ./pagegen.{yaml,json,toml})")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("format", "", "output format: text or json")
	flags.String("locale", "", "fallback locale for formatted values")
	flags.String("currency", "", "fallback ISO 4217 currency code")

	root.AddCommand(
		a.newMigrateCommand(),
		a.newValidateCommand(),
		a.newResolveCommand(),
		a.newVisibilityCommand(),
	)
	return root
}

// setup loads configuration once flags are parsed.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, used, err := config.Load(cmd.Context(), config.LoadOptions{
		ConfigFilePath: a.configFile,
		Flags:          cmd.Flags(),
	})
	if err != nil {
		return usageError{err: err}
	}
	a.cfg = cfg
	a.logger = log.NewWithOptions(a.streams.Err, log.Options{
		Prefix: config.AppName,
		Level:  cfg.Level(),
	})
	if used != "" {
		a.logger.Debug("loaded config", "path", used)
	}
	a.printer = report.New(a.streams.Out, cfg.Format)
	return nil
}

// reportTo returns a printer for w using the configured format.
func (a *app) reportTo(w io.Writer) *report.Printer {
	return report.New(w, a.cfg.Format)
}

// exactArgs wraps cobra.ExactArgs so arity mistakes map to ExitUsage.
func exactArgs(n int) cobra.PositionalArgs {
	check := cobra.ExactArgs(n)
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError{err: err}
		}
		return nil
	}
}

func surveyConfirm(ctx context.Context, message string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var ok bool
	if err := survey.AskOne(&survey.Confirm{Message: message}, &ok); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return false, nil
		}
		return false, fmt.Errorf("prompt: %w", err)
	}
	return ok, nil
}

// Execute runs the CLI against the process streams and returns the exit code.
func Execute(ctx context.Context, args []string) int {
	streams := Streams{Out: os.Stdout, Err: os.Stderr}
	root := NewRootCommand(streams)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err != nil && !reported(err) {
		fmt.Fprintf(streams.Err, "Error: %v\n", err)
		if IsUsageError(err) {
			fmt.Fprintf(streams.Err, "Run '%s --help' for usage.\n", config.AppName)
		}
	}
	return ExitCodeForError(err)
}
