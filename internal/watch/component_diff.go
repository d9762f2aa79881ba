package watch

import (
	"fmt"
	"strings"

	"github.com/hupe1980/manifex/internal/extract"
)

// ComponentChange describes a single change to the exported component
// set between two consecutive extractions.
type ComponentChange struct {
	// Kind is one of "added", "removed", or "reason-changed".
	Kind string
	// Component is the kind-qualified component name.
	Component string
	// Detail provides extra information (e.g., old and new reason).
	Detail string
}

// ComponentDiff compares two sets of extraction verdicts and returns
// the changes to the exported component set.
func ComponentDiff(prev, curr []extract.Verdict) []ComponentChange {
	prevMap := flattenVerdicts(prev)
	currMap := flattenVerdicts(curr)

	var changes []ComponentChange

	// Detect removed components.
	for name, pv := range prevMap {
		if _, ok := currMap[name]; !ok {
			changes = append(changes, ComponentChange{Kind: "removed", Component: name, Detail: pv})
		}
	}

	// Detect added and reason-changed components.
	for name, cv := range currMap {
		pv, existed := prevMap[name]
		if !existed {
			changes = append(changes, ComponentChange{Kind: "added", Component: name, Detail: cv})
			continue
		}

		if pv != cv {
			changes = append(changes, ComponentChange{
				Kind:      "reason-changed",
				Component: name,
				Detail:    fmt.Sprintf("%s -> %s", pv, cv),
			})
		}
	}

	return changes
}

// ComponentDiffSummary returns a human-readable one-line summary.
func ComponentDiffSummary(changes []ComponentChange) string {
	var added, removed, changed int

	for _, c := range changes {
		switch c.Kind {
		case "added":
			added++
		case "removed":
			removed++
		case "reason-changed":
			changed++
		}
	}

	if added == 0 && removed == 0 && changed == 0 {
		return "no component changes"
	}

	parts := make([]string, 0, 3)

	if added > 0 {
		parts = append(parts, fmt.Sprintf("+%d component(s) added", added))
	}

	if removed > 0 {
		parts = append(parts, fmt.Sprintf("-%d component(s) removed", removed))
	}

	if changed > 0 {
		parts = append(parts, fmt.Sprintf("~%d reason(s) changed", changed))
	}

	return strings.Join(parts, ", ")
}

// flattenVerdicts maps kind-qualified component names to their verdict
// reasons. Duplicate declarations of the same name collapse into one
// entry, the last declaration winning.
func flattenVerdicts(verdicts []extract.Verdict) map[string]string {
	result := make(map[string]string, len(verdicts))

	for _, v := range verdicts {
		result[v.Component.QualifiedName()] = v.Reason
	}

	return result
}
