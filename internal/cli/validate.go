package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate MANIFEST",
		Short: "Check that a manifest parses and has a manifest root",
		Long: `Validate reads a manifest (XML file or APK), checks that it is
well-formed XML with a <manifest> document root, and reports what it
found. Nothing is written.

Returns exit code 4 for malformed XML and 5 for well-formed XML whose
root is not a <manifest> element.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0])
		},
	}
}

func runValidate(cmd *cobra.Command, ref string) error {
	_, sourceType, m, err := loadManifest(cmd.Context(), ref)
	if err != nil {
		return err
	}

	w := cmd.ErrOrStderr()
	_, _ = fmt.Fprintf(w, "Package:    %s\n", displayPackage(m.Package))
	_, _ = fmt.Fprintf(w, "Source:     %s\n", sourceType)
	_, _ = fmt.Fprintf(w, "Components: %d\n", len(m.Components()))

	if m.Application == nil {
		_, _ = fmt.Fprintln(w, "Note: manifest declares no <application> element.")
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Validation passed.")

	return nil
}
