package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/manifex/internal/docs"
)

type docsOptions struct {
	format          string
	title           string
	includeExcluded bool
	outputFile      string
}

func newDocsCommand() *cobra.Command {
	opts := &docsOptions{}

	cmd := &cobra.Command{
		Use:   "docs MANIFEST",
		Short: "Generate a report of a manifest's exported surface",
		Long: `Docs runs the extraction pipeline and renders a human-readable report
of the externally reachable surface: exported components grouped by
kind with their intent actions, the permission declarations, and
optionally the excluded components with exclusion reasons.

Supports markdown, HTML, and AsciiDoc output formats.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDocs(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "markdown", "output format (markdown, html, asciidoc)")
	cmd.Flags().StringVar(&opts.title, "title", "", "override document title")
	cmd.Flags().BoolVar(&opts.includeExcluded, "include-excluded", true, "append the excluded components appendix")
	cmd.Flags().StringVarP(&opts.outputFile, "output", "o", "", "write to file instead of stdout")

	return cmd
}

func runDocs(cmd *cobra.Command, ref string, opts *docsOptions) error {
	// 1. Build the formatter.
	formatter, err := docs.NewFormatter(opts.format)
	if err != nil {
		return &ExitError{Code: exitCodeUsage, Err: err}
	}

	// 2. Run the extraction pipeline.
	pr, err := runPipeline(cmd.Context(), ref)
	if err != nil {
		return err
	}

	// 3. Build the report model.
	model := docs.BuildModel(pr.Manifest, pr.Result, pr.SourceType.String())

	if opts.title != "" {
		model.Title = opts.title
	}

	model.IncludeExcluded = opts.includeExcluded

	// 4. Determine output destination.
	w := cmd.OutOrStdout()

	if opts.outputFile != "" {
		f, ferr := os.Create(opts.outputFile) //nolint:gosec // User-specified output file
		if ferr != nil {
			return &ExitError{Code: exitCodeWrite, Err: fmt.Errorf("creating output file: %w", ferr)}
		}

		defer f.Close() //nolint:errcheck

		w = f
	}

	// 5. Render the report.
	if err := formatter.Format(w, model); err != nil {
		return &ExitError{Code: exitCodeGeneric, Err: fmt.Errorf("formatting docs: %w", err)}
	}

	return nil
}
