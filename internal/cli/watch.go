package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/manifex/internal/extract"
	"github.com/hupe1980/manifex/internal/logging"
	"github.com/hupe1980/manifex/internal/manifest"
	"github.com/hupe1980/manifex/internal/output"
	"github.com/hupe1980/manifex/internal/watch"
)

type watchOptions struct {
	extractOptions

	// Watch-specific options.
	debounce time.Duration
	validate bool
}

func newWatchCommand() *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch MANIFEST",
		Short: "Watch a manifest for changes and auto-extract",
		Long: `Watch monitors a manifest file and automatically re-runs the
extraction whenever the file changes.

File changes are debounced to avoid rapid re-runs. Each run reports
the exported component count and any changes against the previous run
(components added, removed, or reclassified).

Use --validate (enabled by default) to re-parse the written output
after each extraction.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output file path (required)")
	f.IntVar(&opts.indent, "indent", manifest.DefaultIndent, "serialization indent width in spaces")
	f.DurationVar(&opts.debounce, "debounce", 500*time.Millisecond, "debounce interval for file changes")
	f.BoolVar(&opts.validate, "validate", true, "re-parse the output after each extraction")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, ref string, opts *watchOptions) error {
	if opts.output == "" {
		return &ExitError{Code: exitCodeUsage, Err: fmt.Errorf("--output (-o) is required for watch mode")}
	}

	if opts.indent < 0 {
		return &ExitError{Code: exitCodeUsage, Err: fmt.Errorf("invalid --indent %d: must be non-negative", opts.indent)}
	}

	logger := logging.FromContext(ctx)

	// Track previous verdicts for change detection across re-runs.
	var prevSelected []extract.Verdict

	// Build the run function that executes the full pipeline.
	runFn := func(fnCtx context.Context) (*watch.RunResult, error) {
		pr, err := runPipeline(fnCtx, ref)
		if err != nil {
			return nil, err
		}

		data, serErr := pr.Result.Manifest.Serialize(manifest.SerializeOptions{Indent: opts.indent})
		if serErr != nil {
			return nil, fmt.Errorf("serializing manifest: %w", serErr)
		}

		w := output.NewFileWriter(opts.output, output.WithLogger(logger))
		if writeErr := w.Write(data); writeErr != nil {
			return nil, fmt.Errorf("writing output: %w", writeErr)
		}

		// Detect component changes.
		var changes []watch.ComponentChange
		if prevSelected != nil {
			changes = watch.ComponentDiff(prevSelected, pr.Result.Selected)
		}

		prevSelected = pr.Result.Selected

		return &watch.RunResult{
			ComponentCount:   pr.Result.Count(),
			ComponentChanges: changes,
			OutputPath:       opts.output,
		}, nil
	}

	// Build optional validate function.
	var validateFn watch.ValidateFunc
	if opts.validate {
		validateFn = func(_ context.Context, outputPath string) error {
			return revalidateOutput(outputPath)
		}
	}

	watchOpts := watch.Options{
		ManifestPath: ref,
		Debounce:     opts.debounce,
		Validate:     opts.validate,
		ValidateFn:   validateFn,
		Logger:       logger,
		Out:          cmd.ErrOrStderr(),
	}

	return watch.Run(ctx, watchOpts, runFn)
}

// revalidateOutput re-parses a written manifest to confirm extraction
// produced well-formed output.
func revalidateOutput(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is the user-chosen output file
	if err != nil {
		return fmt.Errorf("reading output: %w", err)
	}

	if _, err := manifest.Parse(data); err != nil {
		return err
	}

	return nil
}
