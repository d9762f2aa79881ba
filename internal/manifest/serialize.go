package manifest

import (
	"fmt"

	"github.com/beevik/etree"
)

// DefaultIndent is the indentation width used when SerializeOptions does
// not override it.
const DefaultIndent = 4

// SerializeOptions configures manifest serialization.
type SerializeOptions struct {
	// Indent is the number of spaces per nesting level. Zero means
	// DefaultIndent; negative values are rejected.
	Indent int
}

// effectiveIndent returns the indentation width, falling back to
// DefaultIndent when not configured.
func (o SerializeOptions) effectiveIndent() int {
	if o.Indent > 0 {
		return o.Indent
	}

	return DefaultIndent
}

// Serialize produces the manifest as XML text with a
// `version="1.0" encoding="UTF-8"` declaration. Output is deterministic:
// identical trees serialize to byte-identical text. The wrapped tree is
// deep-copied first, so serialization never mutates the manifest.
func (m *Manifest) Serialize(opts SerializeOptions) ([]byte, error) {
	if opts.Indent < 0 {
		return nil, fmt.Errorf("invalid indent %d: must be non-negative", opts.Indent)
	}

	doc := newDocument()
	doc.SetRoot(m.Root.Copy())
	doc.Indent(opts.effectiveIndent())

	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serializing manifest: %w", err)
	}

	return data, nil
}

// newDocument creates an empty document carrying the XML declaration.
func newDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	return doc
}
