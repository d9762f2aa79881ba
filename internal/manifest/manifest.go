// Package manifest provides the in-memory model for Android application
// manifests: parsing manifest XML into an addressable element tree,
// classification-relevant views of the declared components, and
// deterministic re-serialization.
package manifest

import (
	"github.com/beevik/etree"
)

// Android manifest attribute names the model inspects. The "android:"
// prefix is matched as part of the literal attribute name; namespace
// URIs are never resolved.
const (
	AttrName     = "android:name"
	AttrExported = "android:exported"
)

// Element tags with structural meaning to the model. Everything else is
// opaque content carried verbatim.
const (
	TagManifest       = "manifest"
	TagApplication    = "application"
	TagIntentFilter   = "intent-filter"
	TagAction         = "action"
	TagPermission     = "permission"
	TagUsesPermission = "uses-permission"
)

// Manifest is a parsed Android application manifest. It wraps the raw
// element tree and keeps the structurally significant pieces addressable.
type Manifest struct {
	// Package is the manifest-level package attribute, or empty when absent.
	Package string

	// Root is the <manifest> element.
	Root *etree.Element

	// Application is the <application> element, or nil when the manifest
	// declares none. A nil Application means zero components of every kind.
	Application *etree.Element
}

// New wraps an existing <manifest> element into a Manifest, deriving the
// package name and application element from the tree. The element is not
// copied; callers hand over ownership.
func New(root *etree.Element) *Manifest {
	return &Manifest{
		Package:     root.SelectAttrValue("package", ""),
		Root:        root,
		Application: root.SelectElement(TagApplication),
	}
}

// ComponentsOf returns the components of a single kind in source order.
// The result is empty (never nil-dereferencing) when the manifest has no
// application element or the application declares none of that kind.
func (m *Manifest) ComponentsOf(kind Kind) []*Component {
	if m.Application == nil {
		return nil
	}

	els := m.Application.SelectElements(string(kind))

	components := make([]*Component, 0, len(els))
	for _, el := range els {
		components = append(components, newComponent(kind, el))
	}

	return components
}

// Components returns every declared component in canonical kind order
// (activity, service, receiver, provider), source order within each kind.
func (m *Manifest) Components() []*Component {
	var components []*Component
	for _, kind := range Kinds {
		components = append(components, m.ComponentsOf(kind)...)
	}

	return components
}

// Permissions returns the manifest-level <permission> declarations in
// source order.
func (m *Manifest) Permissions() []*etree.Element {
	return m.Root.SelectElements(TagPermission)
}

// UsesPermissions returns the manifest-level <uses-permission> entries in
// source order.
func (m *Manifest) UsesPermissions() []*etree.Element {
	return m.Root.SelectElements(TagUsesPermission)
}
