package manifest

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"
)

// ErrNoManifestRoot indicates well-formed XML whose document root is not a
// <manifest> element. Callers use it to tell "not a manifest" apart from
// "not XML".
var ErrNoManifestRoot = errors.New("no manifest root element found")

// ParseError indicates input text that is not well-formed XML. It wraps
// the underlying decoder diagnostic.
type ParseError struct {
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing manifest XML: %v", e.Err)
}

// Unwrap returns the underlying decoder error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// SchemaError indicates well-formed XML that is not an Android manifest.
type SchemaError struct {
	// RootTag is the root element actually found, or empty when the
	// document has no root element at all.
	RootTag string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	if e.RootTag == "" {
		return ErrNoManifestRoot.Error()
	}

	return fmt.Sprintf("%s: document root is <%s>, want <%s>", ErrNoManifestRoot, e.RootTag, TagManifest)
}

// Unwrap makes errors.Is(err, ErrNoManifestRoot) hold for schema errors.
func (e *SchemaError) Unwrap() error {
	return ErrNoManifestRoot
}

// Parse deserializes manifest XML into a Manifest. It returns a
// *ParseError for text that is not well-formed XML and a *SchemaError for
// well-formed XML without a <manifest> root. Repeated elements are always
// exposed as ordered slices by the model accessors; a single occurrence is
// a one-element slice, never a bare scalar.
func Parse(data []byte) (*Manifest, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, &ParseError{Err: err}
	}

	root := doc.Root()
	if root == nil {
		return nil, &SchemaError{}
	}

	if root.FullTag() != TagManifest {
		return nil, &SchemaError{RootTag: root.FullTag()}
	}

	return New(root), nil
}
