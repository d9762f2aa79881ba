// Package manifex provides a public Go API for reducing an Android
// application manifest to its externally reachable components.
//
// This package exposes the manifex extraction pipeline as a library,
// allowing programmatic use without the CLI.
//
// Basic usage:
//
//	result, err := manifex.Extract(ctx, "AndroidManifest.xml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(string(result.XML))
//
// With options:
//
//	result, err := manifex.Extract(ctx, "app.apk",
//	    manifex.WithIndent(2),
//	    manifex.WithLogger(logger),
//	)
package manifex

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/hupe1980/manifex/internal/extract"
	"github.com/hupe1980/manifex/internal/loader"
	"github.com/hupe1980/manifex/internal/manifest"
)

// discardLogger returns a logger that discards all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Option configures the extraction pipeline.
// Use the With* functions to create Options.
type Option func(*options)

// options holds the internal configuration for the extraction pipeline.
type options struct {
	indent int
	logger *slog.Logger
}

// WithIndent sets the serialization indent width in spaces (default: 4).
func WithIndent(n int) Option { return func(o *options) { o.indent = n } }

// WithLogger sets the logger used for pipeline diagnostics. By default all
// log output is discarded.
func WithLogger(logger *slog.Logger) Option { return func(o *options) { o.logger = logger } }

// Component describes one classified manifest component.
type Component struct {
	// Kind is the component kind: "activity", "service", "receiver", or
	// "provider".
	Kind string

	// Name is the android:name attribute, or "(unnamed)" when absent.
	Name string

	// Exported is the three-state android:exported value as a string:
	// "true", "false", or "unset".
	Exported string

	// IntentFilters is the number of direct intent-filter children.
	IntentFilters int

	// Reason explains the classification verdict.
	Reason string
}

// Result holds the output of a successful extraction.
type Result struct {
	// XML is the serialized filtered manifest.
	XML []byte

	// Package is the manifest's package attribute, or empty when absent.
	Package string

	// Source is the detected input type: "xml" or "apk".
	Source string

	// DeclaredCount is the number of components the input declares.
	DeclaredCount int

	// ExportedCount is the number of components kept by the filter.
	ExportedCount int

	// Selected lists the kept components in output order.
	Selected []Component

	// Excluded lists the filtered-out components with exclusion reasons.
	Excluded []Component
}

// Extract reads an Android manifest from ref, removes every component that
// is not externally reachable, and returns the filtered manifest together
// with the per-component classification.
//
// The ref can be a manifest XML file or an APK archive; the binary
// manifest inside an APK is decoded transparently.
//
// Pass no options to use all defaults:
//
//	result, err := manifex.Extract(ctx, "AndroidManifest.xml")
func Extract(ctx context.Context, ref string, opts ...Option) (*Result, error) {
	if ref == "" {
		return nil, errors.New("manifest reference must not be empty")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o := newOptions(opts)
	if err := o.validate(); err != nil {
		return nil, err
	}

	// 1. Load the manifest source.
	data, source, err := loader.Load(ref)
	if err != nil {
		return nil, fmt.Errorf("loading manifest: %w", err)
	}

	o.logger.Debug("loaded manifest source",
		slog.String("ref", ref),
		slog.String("type", source.String()),
	)

	return run(data, source.String(), o)
}

// ExtractBytes applies the extraction to raw manifest XML bytes. The input
// must be plain XML text; APK archives are only supported through Extract.
func ExtractBytes(data []byte, opts ...Option) (*Result, error) {
	if len(data) == 0 {
		return nil, errors.New("manifest data must not be empty")
	}

	o := newOptions(opts)
	if err := o.validate(); err != nil {
		return nil, err
	}

	return run(data, loader.SourceXML.String(), o)
}

// run parses, classifies, and re-serializes one manifest document.
func run(data []byte, source string, o *options) (*Result, error) {
	// 2. Parse into the document model.
	m, err := manifest.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	// 3. Classify components and rebuild the filtered tree.
	res := extract.Extract(m)

	o.logger.Debug("extraction complete",
		slog.String("package", m.Package),
		slog.Int("selected", res.Count()),
		slog.Int("excluded", len(res.Excluded)),
	)

	// 4. Serialize the filtered manifest.
	xmlBytes, err := res.Manifest.Serialize(manifest.SerializeOptions{Indent: o.indent})
	if err != nil {
		return nil, fmt.Errorf("serializing manifest: %w", err)
	}

	return &Result{
		XML:           xmlBytes,
		Package:       m.Package,
		Source:        source,
		DeclaredCount: res.Count() + len(res.Excluded),
		ExportedCount: res.Count(),
		Selected:      toComponents(res.Selected),
		Excluded:      toComponents(res.Excluded),
	}, nil
}

// newOptions applies the given options on top of the defaults.
func newOptions(opts []Option) *options {
	o := &options{
		indent: manifest.DefaultIndent,
		logger: discardLogger(),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// validate checks option values for correctness.
func (o *options) validate() error {
	if o.indent < 0 {
		return fmt.Errorf("indent must be non-negative, got %d", o.indent)
	}

	if o.logger == nil {
		o.logger = discardLogger()
	}

	return nil
}

// toComponents converts internal verdicts to the public component view.
func toComponents(verdicts []extract.Verdict) []Component {
	if len(verdicts) == 0 {
		return nil
	}

	components := make([]Component, 0, len(verdicts))

	for _, v := range verdicts {
		components = append(components, Component{
			Kind:          string(v.Component.Kind),
			Name:          v.Component.DisplayName(),
			Exported:      v.Component.Exported.String(),
			IntentFilters: v.Component.IntentFilters,
			Reason:        v.Reason,
		})
	}

	return components
}
