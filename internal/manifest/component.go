package manifest

import (
	"github.com/beevik/etree"
)

// Kind identifies one of the four Android component kinds. Its string
// value is the XML element tag.
type Kind string

const (
	// KindActivity is a UI entry point (<activity>).
	KindActivity Kind = "activity"
	// KindService is a background component (<service>).
	KindService Kind = "service"
	// KindReceiver is a broadcast receiver (<receiver>).
	KindReceiver Kind = "receiver"
	// KindProvider is a content provider (<provider>).
	KindProvider Kind = "provider"
)

// Kinds lists the component kinds in canonical output order. Extraction
// and reporting iterate this slice rather than hard-coding per-kind paths.
var Kinds = []Kind{KindActivity, KindService, KindReceiver, KindProvider}

// Label returns the human-readable kind name for reports (e.g. "Activity").
func (k Kind) Label() string {
	switch k {
	case KindActivity:
		return "Activity"
	case KindService:
		return "Service"
	case KindReceiver:
		return "Receiver"
	case KindProvider:
		return "Provider"
	default:
		return string(k)
	}
}

// ExportState is the three-state logical value of the android:exported
// attribute. Absence and any value other than the literal lowercase
// strings "true"/"false" both collapse to ExportUnset.
type ExportState int

const (
	// ExportUnset means the attribute is absent or carries an
	// unrecognized value.
	ExportUnset ExportState = iota
	// ExportFalse means the attribute is exactly "false".
	ExportFalse
	// ExportTrue means the attribute is exactly "true".
	ExportTrue
)

// ParseExportState maps a raw attribute value to its three-state form.
// Matching is exact and case-sensitive: "True" or "TRUE" fall to
// ExportUnset, same as an absent attribute.
func ParseExportState(raw string) ExportState {
	switch raw {
	case "true":
		return ExportTrue
	case "false":
		return ExportFalse
	default:
		return ExportUnset
	}
}

// String returns the state as it appears in reports.
func (s ExportState) String() string {
	switch s {
	case ExportTrue:
		return "true"
	case ExportFalse:
		return "false"
	default:
		return "unset"
	}
}

// Component is one declared application component with the
// classification-relevant attributes pre-extracted and the full element
// retained for verbatim carry-over.
type Component struct {
	// Kind is the component kind (the element tag).
	Kind Kind

	// Name is the android:name attribute, or empty when the component
	// does not declare one. Classification never fails on a missing name.
	Name string

	// Exported is the three-state android:exported value.
	Exported ExportState

	// IntentFilters is the number of direct <intent-filter> children.
	// Filter content is opaque; only presence matters.
	IntentFilters int

	// El is the full element including all attributes and nested content.
	El *etree.Element
}

// newComponent builds the classification view of a component element.
func newComponent(kind Kind, el *etree.Element) *Component {
	return &Component{
		Kind:          kind,
		Name:          el.SelectAttrValue(AttrName, ""),
		Exported:      ParseExportState(el.SelectAttrValue(AttrExported, "")),
		IntentFilters: len(el.SelectElements(TagIntentFilter)),
		El:            el,
	}
}

// DisplayName returns the component name, or a placeholder for components
// that do not declare one.
func (c *Component) DisplayName() string {
	if c.Name == "" {
		return "(unnamed)"
	}

	return c.Name
}

// QualifiedName returns "kind/name" for display purposes.
func (c *Component) QualifiedName() string {
	return string(c.Kind) + "/" + c.DisplayName()
}

// IntentActions returns the android:name values of the <action> entries
// across the component's intent filters, in document order. Unnamed
// actions are skipped. Classification ignores this; it exists for
// reporting.
func (c *Component) IntentActions() []string {
	var actions []string

	for _, f := range c.El.SelectElements(TagIntentFilter) {
		for _, a := range f.SelectElements(TagAction) {
			if name := a.SelectAttrValue(AttrName, ""); name != "" {
				actions = append(actions, name)
			}
		}
	}

	return actions
}
