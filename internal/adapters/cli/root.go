package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/kirillkom/documinds/internal/bootstrap"
	"github.com/kirillkom/documinds/internal/config"
	"github.com/kirillkom/documinds/internal/observability/logging"
)

var (
	version = "dev"
	commit  = "unknown"
)

type runtime struct {
	cfg config.Config
}

// NewRootCommand builds the documinds command tree. Without a subcommand it
// opens the interactive screen.
func NewRootCommand(cfg config.Config) *cobra.Command {
	rt := &runtime{cfg: cfg}

	var (
		url      string
		logLevel string
		timeout  time.Duration
	)

	root := &cobra.Command{
		Use:   "documinds [file]",
		Short: "Classify documents with the DocuMinds service",
		Long: `DocuMinds sends document text to a classification service, shows the
predicted category and lets you send a corrected category back as feedback.

Quick Start:
  documinds report.txt                         # interactive screen
  documinds classify report.txt                # print the prediction
  documinds feedback report.txt --correct Work # classify and correct
  documinds sort --source inbox --target sorted`,
		Version:       version + " (commit: " + commit + ")",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			flags := cmd.Flags()
			if flags.Changed("url") {
				rt.cfg.ClassifierURL = url
			}
			if flags.Changed("log-level") {
				rt.cfg.LogLevel = logLevel
			}
			if flags.Changed("timeout") {
				rt.cfg.ClassifierTimeout = timeout
			}
		},
		RunE: rt.runTUI,
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	root.PersistentFlags().StringVar(&url, "url", cfg.ClassifierURL, "Classification service base URL")
	root.PersistentFlags().StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	root.PersistentFlags().DurationVar(&timeout, "timeout", cfg.ClassifierTimeout, "Per-request timeout, 0 waits indefinitely")

	root.AddCommand(
		rt.newTUICommand(),
		rt.newClassifyCommand(),
		rt.newFeedbackCommand(),
		rt.newSortCommand(),
	)
	return root
}

// Execute runs the command tree and reports a failure on stderr. It returns
// the process exit code.
func Execute(ctx context.Context, cfg config.Config, args []string, stderr io.Writer) int {
	root := NewRootCommand(cfg)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, errorLine(err))
		return 1
	}
	return 0
}

// errorLine returns status errors as they are; they already carry their prefix.
func errorLine(err error) string {
	var status *statusError
	if errors.As(err, &status) {
		return status.Error()
	}
	return "Error: " + err.Error()
}

func (rt *runtime) app(logOut io.Writer) *bootstrap.App {
	return bootstrap.New(rt.cfg, rt.logger(logOut))
}

func (rt *runtime) logger(w io.Writer) *slog.Logger {
	return logging.NewJSONLogger("documinds", rt.cfg.LogLevel, w)
}

// statusError carries the status line shown to the user while keeping the
// underlying error for errors.Is.
type statusError struct {
	status string
	err    error
}

func (e *statusError) Error() string { return e.status }

func (e *statusError) Unwrap() error { return e.err }
