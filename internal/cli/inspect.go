package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	sigsyaml "sigs.k8s.io/yaml"

	"github.com/hupe1980/manifex/internal/extract"
	"github.com/hupe1980/manifex/internal/manifest"
)

type inspectOptions struct {
	format       string
	exportedOnly bool
}

func newInspectCommand() *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect MANIFEST",
		Short: "Show the component inventory of a manifest without extracting",
		Long: `Inspect lists every component a manifest declares together with its
classification: the android:exported state, the number of intent
filters, and whether extraction would keep or drop it. Nothing is
written; the manifest is only read.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.format, "format", "table", "output format: table, json, yaml")
	f.BoolVar(&opts.exportedOnly, "exported-only", false, "list only components that extraction would keep")

	return cmd
}

// inspectResult is the structured output of the inspect command.
type inspectResult struct {
	Package         string          `json:"package"`
	Source          string          `json:"source"`
	Total           int             `json:"total"`
	Exported        int             `json:"exported"`
	Components      []componentInfo `json:"components"`
	Permissions     []string        `json:"permissions,omitempty"`
	UsesPermissions []string        `json:"usesPermissions,omitempty"`
}

type componentInfo struct {
	Kind          string `json:"kind"`
	Name          string `json:"name"`
	Exported      string `json:"exported"`
	IntentFilters int    `json:"intentFilters"`
	Verdict       string `json:"verdict"`
	Reason        string `json:"reason"`
}

// Verdict values used in inspect output.
const (
	verdictExported = "exported"
	verdictExcluded = "excluded"
)

func runInspect(ctx context.Context, cmd *cobra.Command, ref string, opts *inspectOptions) error {
	_, sourceType, m, err := loadManifest(ctx, ref)
	if err != nil {
		return err
	}

	result := buildInspectResult(m, sourceType.String(), opts.exportedOnly)

	w := cmd.OutOrStdout()

	switch opts.format {
	case "json":
		return renderJSON(w, result)
	case "yaml":
		return renderYAML(w, result)
	case "table":
		return renderInspectTable(w, result)
	default:
		return &ExitError{Code: exitCodeUsage, Err: fmt.Errorf("unknown format %q: expected table, json, yaml", opts.format)}
	}
}

func buildInspectResult(m *manifest.Manifest, source string, exportedOnly bool) inspectResult {
	result := inspectResult{
		Package: displayPackage(m.Package),
		Source:  source,
	}

	for _, c := range m.Components() {
		selected, reason := extract.Classify(c)

		result.Total++
		if selected {
			result.Exported++
		}

		if exportedOnly && !selected {
			continue
		}

		verdict := verdictExcluded
		if selected {
			verdict = verdictExported
		}

		result.Components = append(result.Components, componentInfo{
			Kind:          c.Kind.Label(),
			Name:          c.DisplayName(),
			Exported:      c.Exported.String(),
			IntentFilters: c.IntentFilters,
			Verdict:       verdict,
			Reason:        reason,
		})
	}

	for _, el := range m.Permissions() {
		result.Permissions = append(result.Permissions, permissionName(el.SelectAttrValue(manifest.AttrName, "")))
	}

	for _, el := range m.UsesPermissions() {
		result.UsesPermissions = append(result.UsesPermissions, permissionName(el.SelectAttrValue(manifest.AttrName, "")))
	}

	return result
}

// permissionName substitutes a placeholder for declarations without a name.
func permissionName(name string) string {
	if name == "" {
		return "(unnamed)"
	}

	return name
}

func renderJSON(w io.Writer, result inspectResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(result)
}

func renderYAML(w io.Writer, result inspectResult) error {
	data, err := sigsyaml.Marshal(result)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

func renderInspectTable(w io.Writer, result inspectResult) error {
	printManifestInfo(w, result)
	printComponentTable(w, result)
	printPermissionList(w, "Permissions", result.Permissions)
	printPermissionList(w, "Uses Permissions", result.UsesPermissions)

	return nil
}

func printManifestInfo(w io.Writer, result inspectResult) {
	_, _ = fmt.Fprintf(w, "\n=== Package: %s ===\n", result.Package)
	_, _ = fmt.Fprintf(w, "Source:     %s\n", result.Source)
	_, _ = fmt.Fprintf(w, "Components: %d declared, %d exported\n", result.Total, result.Exported)
}

func printComponentTable(w io.Writer, result inspectResult) {
	_, _ = fmt.Fprintf(w, "\n--- Components (%d) ---\n", len(result.Components))

	if len(result.Components) == 0 {
		_, _ = fmt.Fprintln(w, "  (none)")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "KIND\tNAME\tEXPORTED\tFILTERS\tVERDICT\tREASON")

	for _, c := range result.Components {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			c.Kind, c.Name, c.Exported, c.IntentFilters, c.Verdict, c.Reason)
	}

	_ = tw.Flush()
}

func printPermissionList(w io.Writer, title string, names []string) {
	if len(names) == 0 {
		return
	}

	_, _ = fmt.Fprintf(w, "\n--- %s (%d) ---\n", title, len(names))

	for _, name := range names {
		_, _ = fmt.Fprintf(w, "  %s\n", name)
	}
}
