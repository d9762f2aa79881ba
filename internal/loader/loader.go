// Package loader reads manifest XML from the supported source types: a
// plain AndroidManifest.xml file, or an APK archive whose binary manifest
// is decoded on the fly. Source-type detection is automatic.
package loader

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// SourceType identifies the origin of a manifest reference.
type SourceType int

const (
	// SourceUnknown indicates the source type could not be determined.
	SourceUnknown SourceType = iota
	// SourceXML is a plain-text manifest XML file.
	SourceXML
	// SourceAPK is an APK archive containing a binary AndroidManifest.xml.
	SourceAPK
)

// String returns a human-readable name for the source type.
func (s SourceType) String() string {
	switch s {
	case SourceXML:
		return "xml"
	case SourceAPK:
		return "apk"
	default:
		return "unknown"
	}
}

// zipMagic is the local-file-header signature every APK starts with.
var zipMagic = []byte("PK\x03\x04")

// Detect classifies the manifest reference based on its extension, falling
// back to content sniffing for extensionless paths.
func Detect(path string) (SourceType, error) {
	if path == "" {
		return SourceUnknown, fmt.Errorf("empty manifest reference")
	}

	switch {
	case strings.HasSuffix(strings.ToLower(path), ".apk"):
		return SourceAPK, nil
	case strings.HasSuffix(strings.ToLower(path), ".xml"):
		return SourceXML, nil
	}

	f, err := os.Open(path) //nolint:gosec // path is the user-provided manifest reference
	if err != nil {
		return SourceUnknown, fmt.Errorf("detecting source type of %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	magic := make([]byte, len(zipMagic))
	if _, err := io.ReadFull(f, magic); err != nil {
		// Too short to be an archive; let the XML parser judge it.
		return SourceXML, nil
	}

	if bytes.Equal(magic, zipMagic) {
		return SourceAPK, nil
	}

	return SourceXML, nil
}

// Load reads the manifest XML text for the given reference, decoding the
// binary manifest when the reference is an APK. It returns the raw XML
// bytes together with the detected source type.
func Load(path string) ([]byte, SourceType, error) {
	source, err := Detect(path)
	if err != nil {
		return nil, SourceUnknown, err
	}

	if source == SourceAPK {
		data, err := ExtractManifest(path)
		if err != nil {
			return nil, source, err
		}

		return data, source, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is the user-provided manifest reference
	if err != nil {
		return nil, source, fmt.Errorf("reading manifest %q: %w", path, err)
	}

	return data, source, nil
}
