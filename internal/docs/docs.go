// Package docs generates human-readable reports of a manifest's
// externally reachable surface. It supports Markdown, HTML, and
// AsciiDoc output formats.
package docs

import (
	"github.com/hupe1980/manifex/internal/extract"
	"github.com/hupe1980/manifex/internal/manifest"
)

// ComponentDoc describes one component in the report.
type ComponentDoc struct {
	// Kind is the human-readable kind name (e.g., "Activity").
	Kind string
	// Name is the component's android:name, or a placeholder.
	Name string
	// Exported is the three-state android:exported value as text.
	Exported string
	// IntentFilters is the number of declared intent filters.
	IntentFilters int
	// Actions lists the action names declared across all intent filters.
	Actions []string
	// Reason explains the classification.
	Reason string
}

// KindSection groups the exported components of one kind.
type KindSection struct {
	// Kind is the human-readable kind name.
	Kind string
	// Components are the exported components of this kind in source order.
	Components []ComponentDoc
}

// DocModel is the structured data model for report generation.
type DocModel struct {
	// Title overrides the document title.
	Title string
	// Package is the manifest package attribute, or empty.
	Package string
	// Source is the input source type ("xml" or "apk").
	Source string
	// Total is the number of declared components.
	Total int
	// Exported is the number of exported components.
	Exported int
	// Sections hold the exported components grouped by kind. Kinds with
	// no exported component are omitted.
	Sections []KindSection
	// Permissions are the manifest-level <permission> names.
	Permissions []string
	// UsesPermissions are the manifest-level <uses-permission> names.
	UsesPermissions []string
	// Excluded are the filtered-out components with exclusion reasons.
	Excluded []ComponentDoc
	// IncludeExcluded controls whether the excluded appendix is rendered.
	IncludeExcluded bool
}

// BuildModel assembles a DocModel from a parsed manifest and its
// extraction result.
func BuildModel(m *manifest.Manifest, result *extract.Result, source string) *DocModel {
	model := &DocModel{
		Package:  m.Package,
		Source:   source,
		Total:    len(result.Selected) + len(result.Excluded),
		Exported: len(result.Selected),
	}

	byKind := make(map[manifest.Kind][]ComponentDoc)
	for _, v := range result.Selected {
		byKind[v.Component.Kind] = append(byKind[v.Component.Kind], componentDoc(v))
	}

	for _, kind := range manifest.Kinds {
		if components := byKind[kind]; len(components) > 0 {
			model.Sections = append(model.Sections, KindSection{
				Kind:       kind.Label(),
				Components: components,
			})
		}
	}

	for _, v := range result.Excluded {
		model.Excluded = append(model.Excluded, componentDoc(v))
	}

	for _, el := range m.Permissions() {
		model.Permissions = append(model.Permissions, permissionName(el.SelectAttrValue(manifest.AttrName, "")))
	}

	for _, el := range m.UsesPermissions() {
		model.UsesPermissions = append(model.UsesPermissions, permissionName(el.SelectAttrValue(manifest.AttrName, "")))
	}

	return model
}

// componentDoc builds the report view of a classified component.
func componentDoc(v extract.Verdict) ComponentDoc {
	c := v.Component

	return ComponentDoc{
		Kind:          c.Kind.Label(),
		Name:          c.DisplayName(),
		Exported:      c.Exported.String(),
		IntentFilters: c.IntentFilters,
		Actions:       c.IntentActions(),
		Reason:        v.Reason,
	}
}

// permissionName substitutes a placeholder for declarations without a name.
func permissionName(name string) string {
	if name == "" {
		return "(unnamed)"
	}

	return name
}
