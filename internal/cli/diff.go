package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/manifex/internal/config"
	"github.com/hupe1980/manifex/internal/diffutil"
	"github.com/hupe1980/manifex/internal/manifest"
)

type diffOptions struct {
	// Unified diff context lines.
	contextLines int

	// Serialization indent for both sides of the comparison.
	indent int
}

func newDiffCommand() *cobra.Command {
	opts := &diffOptions{}

	cmd := &cobra.Command{
		Use:   "diff MANIFEST",
		Short: "Show what extraction removes as a unified diff",
		Long: `Diff runs the extraction pipeline and compares the result against the
source manifest. The source is normalized (parsed and re-serialized
with the same indentation) before comparison, so the diff shows the
removed elements rather than formatting noise.

Color is controlled by the global --no-color flag.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd.Context(), cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.contextLines, "context", 3, "number of unchanged context lines around each hunk")
	f.IntVar(&opts.indent, "indent", manifest.DefaultIndent, "serialization indent width in spaces")

	return cmd
}

func runDiff(ctx context.Context, cmd *cobra.Command, ref string, opts *diffOptions) error {
	cfg := config.FromContext(ctx)

	if opts.indent < 0 {
		return &ExitError{Code: exitCodeUsage, Err: fmt.Errorf("invalid --indent %d: must be non-negative", opts.indent)}
	}

	pr, err := runPipeline(ctx, ref)
	if err != nil {
		return err
	}

	serOpts := manifest.SerializeOptions{Indent: opts.indent}

	sourceNorm, err := pr.Manifest.Serialize(serOpts)
	if err != nil {
		return fmt.Errorf("serializing source manifest: %w", err)
	}

	extracted, err := pr.Result.Manifest.Serialize(serOpts)
	if err != nil {
		return fmt.Errorf("serializing extracted manifest: %w", err)
	}

	diffOpts := diffutil.DefaultDiffOptions()
	diffOpts.OldLabel = ref
	diffOpts.Context = opts.contextLines

	result, err := diffutil.ComputeDiff(string(sourceNorm), string(extracted), diffOpts)
	if err != nil {
		return fmt.Errorf("computing diff: %w", err)
	}

	diffutil.WriteDiff(cmd.OutOrStdout(), result, !cfg.NoColor)

	return nil
}
