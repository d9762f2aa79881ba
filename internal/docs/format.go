package docs

import (
	"fmt"
	"html/template"
	"io"
	"strings"
)

// Formatter renders a DocModel to a writer.
type Formatter interface {
	Format(w io.Writer, model *DocModel) error
}

// NewFormatter returns a formatter for the given format name.
func NewFormatter(format string) (Formatter, error) {
	switch strings.ToLower(format) {
	case "markdown", "md":
		return &MarkdownFormatter{}, nil
	case "html":
		return &HTMLFormatter{}, nil
	case "asciidoc", "adoc":
		return &AsciiDocFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported docs format: %s", format)
	}
}

// defaultTitle derives the document title from the package name.
func defaultTitle(model *DocModel) string {
	if model.Package == "" {
		return "Exported Surface"
	}

	return model.Package + " Exported Surface"
}

// formatActions joins action names for a table cell.
func formatActions(actions []string) string {
	if len(actions) == 0 {
		return "-"
	}

	return strings.Join(actions, ", ")
}

// ---------------------------------------------------------------------------
// Markdown
// ---------------------------------------------------------------------------

// MarkdownFormatter renders the report as Markdown.
type MarkdownFormatter struct{}

func (f *MarkdownFormatter) Format(w io.Writer, model *DocModel) error {
	title := model.Title
	if title == "" {
		title = defaultTitle(model)
	}

	_, _ = fmt.Fprintf(w, "# %s\n\n", title)

	if model.Package != "" {
		_, _ = fmt.Fprintf(w, "**Package:** `%s`  \n", model.Package)
	}

	_, _ = fmt.Fprintf(w, "**Source:** `%s`  \n", model.Source)
	_, _ = fmt.Fprintf(w, "**Components:** %d declared, %d exported  \n", model.Total, model.Exported)
	_, _ = fmt.Fprintln(w)

	// Exported components, one section per kind.
	for _, section := range model.Sections {
		_, _ = fmt.Fprintf(w, "## %s (%d)\n\n", section.Kind, len(section.Components))
		_, _ = fmt.Fprintln(w, "| Name | Exported | Filters | Actions | Reason |")
		_, _ = fmt.Fprintln(w, "|------|----------|---------|---------|--------|")

		for _, c := range section.Components {
			_, _ = fmt.Fprintf(w, "| `%s` | %s | %d | %s | %s |\n",
				c.Name, c.Exported, c.IntentFilters, formatActions(c.Actions), c.Reason)
		}

		_, _ = fmt.Fprintln(w)
	}

	// Permission lists.
	writeMarkdownPermissions(w, "Declared Permissions", model.Permissions)
	writeMarkdownPermissions(w, "Requested Permissions", model.UsesPermissions)

	// Excluded appendix.
	if model.IncludeExcluded && len(model.Excluded) > 0 {
		_, _ = fmt.Fprintf(w, "## Excluded Components\n\n")
		_, _ = fmt.Fprintln(w, "| Kind | Name | Exported | Filters | Reason |")
		_, _ = fmt.Fprintln(w, "|------|------|----------|---------|--------|")

		for _, c := range model.Excluded {
			_, _ = fmt.Fprintf(w, "| %s | `%s` | %s | %d | %s |\n",
				c.Kind, c.Name, c.Exported, c.IntentFilters, c.Reason)
		}

		_, _ = fmt.Fprintln(w)
	}

	return nil
}

func writeMarkdownPermissions(w io.Writer, title string, names []string) {
	if len(names) == 0 {
		return
	}

	_, _ = fmt.Fprintf(w, "## %s\n\n", title)

	for _, name := range names {
		_, _ = fmt.Fprintf(w, "- `%s`\n", name)
	}

	_, _ = fmt.Fprintln(w)
}

// ---------------------------------------------------------------------------
// HTML
// ---------------------------------------------------------------------------

// HTMLFormatter renders the report as a standalone HTML page.
type HTMLFormatter struct{}

var htmlTpl = template.Must(template.New("docs").Funcs(template.FuncMap{
	"join":    strings.Join,
	"actions": formatActions,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body{font-family:sans-serif;margin:2em;line-height:1.6}
table{border-collapse:collapse;width:100%;margin-bottom:1em}
th,td{border:1px solid #ddd;padding:8px;text-align:left}
th{background:#f5f5f5}
code{background:#f0f0f0;padding:2px 4px;border-radius:3px}
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Package}}<p><strong>Package:</strong> <code>{{.Package}}</code></p>{{end}}
<p><strong>Source:</strong> <code>{{.Source}}</code></p>
<p><strong>Components:</strong> {{.Total}} declared, {{.Exported}} exported</p>

{{range .Sections}}
<h2>{{.Kind}} ({{len .Components}})</h2>
<table>
<tr><th>Name</th><th>Exported</th><th>Filters</th><th>Actions</th><th>Reason</th></tr>
{{range .Components}}<tr><td><code>{{.Name}}</code></td><td>{{.Exported}}</td><td>{{.IntentFilters}}</td><td>{{actions .Actions}}</td><td>{{.Reason}}</td></tr>
{{end}}
</table>
{{end}}

{{if .Permissions}}
<h2>Declared Permissions</h2>
<ul>
{{range .Permissions}}<li><code>{{.}}</code></li>
{{end}}
</ul>
{{end}}

{{if .UsesPermissions}}
<h2>Requested Permissions</h2>
<ul>
{{range .UsesPermissions}}<li><code>{{.}}</code></li>
{{end}}
</ul>
{{end}}

{{if and .IncludeExcluded .Excluded}}
<h2>Excluded Components</h2>
<table>
<tr><th>Kind</th><th>Name</th><th>Exported</th><th>Filters</th><th>Reason</th></tr>
{{range .Excluded}}<tr><td>{{.Kind}}</td><td><code>{{.Name}}</code></td><td>{{.Exported}}</td><td>{{.IntentFilters}}</td><td>{{.Reason}}</td></tr>
{{end}}
</table>
{{end}}

</body>
</html>
`))

// htmlModel shadows Title so formatting never mutates the caller's model.
type htmlModel struct {
	*DocModel
	Title string
}

func (f *HTMLFormatter) Format(w io.Writer, model *DocModel) error {
	title := model.Title
	if title == "" {
		title = defaultTitle(model)
	}

	return htmlTpl.Execute(w, htmlModel{DocModel: model, Title: title})
}

// ---------------------------------------------------------------------------
// AsciiDoc
// ---------------------------------------------------------------------------

// AsciiDocFormatter renders the report as AsciiDoc.
type AsciiDocFormatter struct{}

func (f *AsciiDocFormatter) Format(w io.Writer, model *DocModel) error {
	title := model.Title
	if title == "" {
		title = defaultTitle(model)
	}

	_, _ = fmt.Fprintf(w, "= %s\n\n", title)

	if model.Package != "" {
		_, _ = fmt.Fprintf(w, "*Package:* `%s` +\n", model.Package)
	}

	_, _ = fmt.Fprintf(w, "*Source:* `%s` +\n", model.Source)
	_, _ = fmt.Fprintf(w, "*Components:* %d declared, %d exported +\n", model.Total, model.Exported)
	_, _ = fmt.Fprintln(w)

	// Exported components, one section per kind.
	for _, section := range model.Sections {
		_, _ = fmt.Fprintf(w, "== %s (%d)\n\n", section.Kind, len(section.Components))
		_, _ = fmt.Fprintln(w, "[cols=\"2,1,1,2,2\", options=\"header\"]")
		_, _ = fmt.Fprintln(w, "|===")
		_, _ = fmt.Fprintln(w, "| Name | Exported | Filters | Actions | Reason")

		for _, c := range section.Components {
			_, _ = fmt.Fprintf(w, "\n| `%s`\n| %s\n| %d\n| %s\n| %s\n",
				c.Name, c.Exported, c.IntentFilters, formatActions(c.Actions), c.Reason)
		}

		_, _ = fmt.Fprintln(w, "|===")
		_, _ = fmt.Fprintln(w)
	}

	// Permission lists.
	writeAsciiDocPermissions(w, "Declared Permissions", model.Permissions)
	writeAsciiDocPermissions(w, "Requested Permissions", model.UsesPermissions)

	// Excluded appendix.
	if model.IncludeExcluded && len(model.Excluded) > 0 {
		_, _ = fmt.Fprintf(w, "== Excluded Components\n\n")
		_, _ = fmt.Fprintln(w, "[cols=\"1,2,1,1,2\", options=\"header\"]")
		_, _ = fmt.Fprintln(w, "|===")
		_, _ = fmt.Fprintln(w, "| Kind | Name | Exported | Filters | Reason")

		for _, c := range model.Excluded {
			_, _ = fmt.Fprintf(w, "\n| %s\n| `%s`\n| %s\n| %d\n| %s\n",
				c.Kind, c.Name, c.Exported, c.IntentFilters, c.Reason)
		}

		_, _ = fmt.Fprintln(w, "|===")
		_, _ = fmt.Fprintln(w)
	}

	return nil
}

func writeAsciiDocPermissions(w io.Writer, title string, names []string) {
	if len(names) == 0 {
		return
	}

	_, _ = fmt.Fprintf(w, "== %s\n\n", title)

	for _, name := range names {
		_, _ = fmt.Fprintf(w, "* `%s`\n", name)
	}

	_, _ = fmt.Fprintln(w)
}
