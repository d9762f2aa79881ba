// Package extract implements the export filter: it classifies every
// component declared by a parsed manifest as externally reachable or not,
// and rebuilds a minimal manifest containing only the reachable ones plus
// the manifest-level metadata that is preserved unconditionally.
//
// The classification predicate is pure and total. A component with
// exported="false" is never selected, one with exported="true" always is,
// and one with the attribute unset is selected exactly when it declares at
// least one intent filter.
package extract

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/hupe1980/manifex/internal/manifest"
)

// Verdict records the classification of a single component.
type Verdict struct {
	// Component is the classified component, viewing the source tree.
	Component *manifest.Component
	// Reason is a human-readable explanation for the decision.
	Reason string
}

// Result holds the outcome of one extraction.
type Result struct {
	// Manifest is the rebuilt output manifest: manifest and application
	// attributes verbatim, all permission declarations, and only the
	// selected components in canonical kind order.
	Manifest *manifest.Manifest

	// Selected are the qualifying components in output order.
	Selected []Verdict

	// Excluded are the filtered-out components with exclusion reasons.
	Excluded []Verdict

	// CountByKind maps each kind to its number of selected components.
	// Kinds with zero selected components are present with a zero value.
	CountByKind map[manifest.Kind]int
}

// Count returns the total number of selected components across all kinds.
func (r *Result) Count() int {
	return len(r.Selected)
}

// Extract applies the export classification to every component of m, in
// canonical kind order and within-kind source order, and rebuilds a fresh
// manifest tree containing only the qualifying components. The input tree
// is never mutated; selected elements are deep-copied with all attributes
// and nested content. A manifest without an application element yields an
// output without one and zero components of every kind.
func Extract(m *manifest.Manifest) *Result {
	result := &Result{
		CountByKind: make(map[manifest.Kind]int, len(manifest.Kinds)),
	}
	for _, kind := range manifest.Kinds {
		result.CountByKind[kind] = 0
	}

	root := etree.NewElement(manifest.TagManifest)
	copyAttrs(m.Root, root)

	for _, el := range m.UsesPermissions() {
		root.AddChild(el.Copy())
	}

	for _, el := range m.Permissions() {
		root.AddChild(el.Copy())
	}

	if m.Application != nil {
		app := etree.NewElement(manifest.TagApplication)
		copyAttrs(m.Application, app)

		for _, kind := range manifest.Kinds {
			for _, c := range m.ComponentsOf(kind) {
				selected, reason := Classify(c)
				verdict := Verdict{Component: c, Reason: reason}

				if !selected {
					result.Excluded = append(result.Excluded, verdict)
					continue
				}

				app.AddChild(c.El.Copy())

				result.Selected = append(result.Selected, verdict)
				result.CountByKind[kind]++
			}
		}

		root.AddChild(app)
	}

	result.Manifest = manifest.New(root)

	return result
}

// Classify decides whether a single component is externally reachable and
// returns the reason alongside. It never fails; absent attributes fall to
// the unset branch.
func Classify(c *manifest.Component) (bool, string) {
	switch c.Exported {
	case manifest.ExportFalse:
		return false, `exported="false"`
	case manifest.ExportTrue:
		return true, `exported="true"`
	default:
		if c.IntentFilters > 0 {
			return true, fmt.Sprintf("implicit export: %d intent filter(s)", c.IntentFilters)
		}

		return false, "exported unset, no intent filter"
	}
}

// copyAttrs copies every attribute of src onto dst, prefixes included.
func copyAttrs(src, dst *etree.Element) {
	for _, a := range src.Attr {
		dst.CreateAttr(a.FullKey(), a.Value)
	}
}
