// Package cli implements the cobra command tree for manifex.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/manifex/internal/config"
	"github.com/hupe1980/manifex/internal/logging"
)

// Exit codes returned by Execute. Stable API: scripts branch on these.
const (
	exitCodeGeneric = 1
	exitCodeUsage   = 2
	exitCodeRead    = 3
	exitCodeParse   = 4
	exitCodeSchema  = 5
	exitCodeWrite   = 6
)

// ExitError wraps an error with a specific process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}

	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Execute builds the command tree, runs it, and returns the exit code.
// Failures print a single prefixed line to stderr.
func Execute() int {
	cmd := NewRootCommand()

	if err := cmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}

		return exitCodeGeneric
	}

	return 0
}

// NewRootCommand constructs the top-level cobra.Command with all
// subcommands attached.
func NewRootCommand() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "manifex",
		Short: "Extract the externally reachable components of an Android manifest",
		Long: `manifex is a CLI tool that reduces an Android application manifest to
the components reachable from outside the application.

It reads an AndroidManifest.xml (or decodes the binary manifest inside
an APK), classifies every activity, service, receiver, and provider as
exported or not, and writes a well-formed manifest containing only the
exported components plus the permission declarations that frame them.

A component counts as exported when it declares android:exported="true",
or when the attribute is unset and the component declares at least one
intent filter.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd, cfgFile)
			if err != nil {
				return &ExitError{Code: exitCodeUsage, Err: err}
			}

			logger := logging.Setup(cfg)

			ctx := cmd.Context()
			ctx = config.NewContext(ctx, cfg)
			ctx = config.NewContextWithConfigFile(ctx, cfg.ConfigFile)
			ctx = logging.NewContext(ctx, logger)
			cmd.SetContext(ctx)

			logger.Debug("configuration loaded",
				slog.String("logLevel", cfg.LogLevel),
				slog.String("logFormat", cfg.LogFormat),
			)

			return nil
		},
	}

	// Global persistent flags.
	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: .manifex.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text, json")
	pf.Bool("no-color", false, "disable colored output")
	pf.BoolP("quiet", "q", false, "suppress non-essential output")

	// Flag parsing errors return exit code 2.
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: exitCodeUsage, Err: err}
	})

	// Register subcommands.
	cmd.AddCommand(
		newVersionCommand(),
		newExtractCommand(),
		newInspectCommand(),
		newValidateCommand(),
		newDiffCommand(),
		newDocsCommand(),
		newWatchCommand(),
		newCompletionCommand(),
	)

	return cmd
}
