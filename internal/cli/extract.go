package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/manifex/internal/config"
	"github.com/hupe1980/manifex/internal/extract"
	"github.com/hupe1980/manifex/internal/logging"
	"github.com/hupe1980/manifex/internal/manifest"
	"github.com/hupe1980/manifex/internal/output"
)

// defaultOutputFile is where extract writes when -o is not given.
const defaultOutputFile = "exported-manifest.xml"

// extractOptions holds the flag values for the extract command.
type extractOptions struct {
	manifestRef string
	output      string
	indent      int
	verbose     bool
	dryRun      bool
}

func newExtractCommand() *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract MANIFEST",
		Short: "Filter a manifest down to its exported components",
		Long: `Extract reads an Android manifest (XML file or APK), removes every
component that is not externally reachable, and writes the filtered
manifest. Manifest and application attributes, permission declarations,
and the full content of each kept component are carried over verbatim.`,
		Example: `  # Extract to the default output file (exported-manifest.xml)
  manifex extract AndroidManifest.xml

  # Write the filtered manifest to stdout
  manifex extract -o - AndroidManifest.xml

  # Pull the manifest straight out of an APK
  manifex extract app.apk -o exported.xml

  # Preview the result without writing anything
  manifex extract --dry-run AndroidManifest.xml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.manifestRef = args[0]

			return runExtract(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", defaultOutputFile, `output file path ("-" for stdout)`)
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "print a per-component classification report")
	f.BoolVar(&opts.dryRun, "dry-run", false, "print the result to stdout without writing the output file")
	f.IntVar(&opts.indent, "indent", manifest.DefaultIndent, "serialization indent width in spaces")

	return cmd
}

func runExtract(cmd *cobra.Command, opts *extractOptions) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	applyExtractFileConfig(cmd, opts)

	if opts.indent < 0 {
		return &ExitError{Code: exitCodeUsage, Err: fmt.Errorf("invalid --indent %d: must be non-negative", opts.indent)}
	}

	pr, err := runPipeline(ctx, opts.manifestRef)
	if err != nil {
		return err
	}

	data, err := pr.Result.Manifest.Serialize(manifest.SerializeOptions{Indent: opts.indent})
	if err != nil {
		return fmt.Errorf("serializing manifest: %w", err)
	}

	if opts.verbose {
		printComponentReport(cmd.ErrOrStderr(), pr.Result)
	}

	if opts.dryRun {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Dry-run mode: no output written.")

		if err := output.NewStdoutWriter(cmd.OutOrStdout()).Write(data); err != nil {
			return &ExitError{Code: exitCodeWrite, Err: err}
		}

		printExtractSummary(cmd.ErrOrStderr(), pr)

		return nil
	}

	if opts.output == "-" {
		if err := output.NewStdoutWriter(cmd.OutOrStdout()).Write(data); err != nil {
			return &ExitError{Code: exitCodeWrite, Err: err}
		}

		printExtractSummary(cmd.ErrOrStderr(), pr)

		return nil
	}

	writer := output.NewFileWriter(opts.output, output.WithLogger(logger))
	if err := writer.Write(data); err != nil {
		return &ExitError{Code: exitCodeWrite, Err: fmt.Errorf("writing output: %w", err)}
	}

	logger.Info("manifest written", slog.String("path", writer.Path()))

	printExtractSummary(cmd.ErrOrStderr(), pr)
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Written to %s\n", writer.Path())

	return nil
}

// printExtractSummary prints the package-level extraction totals.
func printExtractSummary(w io.Writer, pr *pipelineResult) {
	result := pr.Result

	_, _ = fmt.Fprintf(w, "\n--- Extraction Summary ---\n")
	_, _ = fmt.Fprintf(w, "Package:    %s\n", displayPackage(pr.Manifest.Package))
	_, _ = fmt.Fprintf(w, "Source:     %s\n", pr.SourceType)
	_, _ = fmt.Fprintf(w, "Components: %d declared, %d exported\n", len(pr.Manifest.Components()), result.Count())

	for _, kind := range manifest.Kinds {
		if n := result.CountByKind[kind]; n > 0 {
			_, _ = fmt.Fprintf(w, "  %-10s %d\n", kind.Label()+":", n)
		}
	}

	_, _ = fmt.Fprintf(w, "--------------------------\n")
}

// printComponentReport prints the per-component verdicts.
func printComponentReport(w io.Writer, result *extract.Result) {
	_, _ = fmt.Fprintf(w, "\n--- Component Report ---\n")

	for _, v := range result.Selected {
		_, _ = fmt.Fprintf(w, "  Exported: %s (%s)\n", v.Component.QualifiedName(), v.Reason)
	}

	for _, v := range result.Excluded {
		_, _ = fmt.Fprintf(w, "  Excluded: %s (%s)\n", v.Component.QualifiedName(), v.Reason)
	}

	if result.Count() == 0 && len(result.Excluded) == 0 {
		_, _ = fmt.Fprintf(w, "  (no components declared)\n")
	}
}

// displayPackage substitutes a placeholder for manifests without a
// package attribute.
func displayPackage(pkg string) string {
	if pkg == "" {
		return "(none)"
	}

	return pkg
}

// applyExtractFileConfig overlays extract defaults from the config file.
// Explicitly set CLI flags always win over file values.
func applyExtractFileConfig(cmd *cobra.Command, opts *extractOptions) {
	data, ok := tryReadConfigFile(cmd)
	if !ok {
		return
	}

	fileCfg, err := config.ParseExtractConfig(data)
	if err != nil {
		logging.FromContext(cmd.Context()).Warn("ignoring extract config", slog.Any("error", err))

		return
	}

	if fileCfg.IsEmpty() {
		return
	}

	flags := cmd.Flags()

	if fileCfg.Output != "" && !flags.Changed("output") {
		opts.output = fileCfg.Output
	}

	if fileCfg.Indent > 0 && !flags.Changed("indent") {
		opts.indent = fileCfg.Indent
	}

	if fileCfg.Verbose && !flags.Changed("verbose") {
		opts.verbose = true
	}
}

// tryReadConfigFile returns the raw bytes of the resolved config file.
// Falls back to the conventional name in the working directory when no
// file was resolved during config loading.
func tryReadConfigFile(cmd *cobra.Command) ([]byte, bool) {
	path := config.ConfigFileFromContext(cmd.Context())
	if path == "" {
		path = ".manifex.yaml"
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from config resolution
	if err != nil {
		return nil, false
	}

	return data, true
}
