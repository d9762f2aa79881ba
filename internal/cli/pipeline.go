package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hupe1980/manifex/internal/extract"
	"github.com/hupe1980/manifex/internal/loader"
	"github.com/hupe1980/manifex/internal/logging"
	"github.com/hupe1980/manifex/internal/manifest"
)

// pipelineResult bundles everything the extraction pipeline produces for
// a single manifest reference.
type pipelineResult struct {
	// Source is the raw manifest XML as read (or decoded) from disk.
	Source []byte

	// SourceType records whether the input was plain XML or an APK.
	SourceType loader.SourceType

	// Manifest is the parsed document model.
	Manifest *manifest.Manifest

	// Result holds the classified components and the filtered document.
	Result *extract.Result
}

// loadManifest reads and parses a manifest reference (XML file or APK).
// Errors carry the exit code matching their pipeline stage.
func loadManifest(ctx context.Context, ref string) ([]byte, loader.SourceType, *manifest.Manifest, error) {
	logger := logging.FromContext(ctx)

	data, sourceType, err := loader.Load(ref)
	if err != nil {
		return nil, sourceType, nil, &ExitError{Code: exitCodeRead, Err: fmt.Errorf("reading %s: %w", ref, err)}
	}

	logger.Debug("loaded manifest source", slog.String("ref", ref), slog.String("type", sourceType.String()))

	m, err := manifest.Parse(data)
	if err != nil {
		return data, sourceType, nil, &ExitError{Code: exitCodeForParse(err), Err: err}
	}

	logger.Debug("parsed manifest",
		slog.String("package", m.Package),
		slog.Int("components", len(m.Components())),
	)

	return data, sourceType, m, nil
}

// exitCodeForParse distinguishes malformed XML from structurally invalid
// manifests.
func exitCodeForParse(err error) int {
	var (
		parseErr  *manifest.ParseError
		schemaErr *manifest.SchemaError
	)

	switch {
	case errors.As(err, &schemaErr):
		return exitCodeSchema
	case errors.As(err, &parseErr):
		return exitCodeParse
	default:
		return exitCodeGeneric
	}
}

// runPipeline loads, parses, and filters a manifest reference in one go.
func runPipeline(ctx context.Context, ref string) (*pipelineResult, error) {
	logger := logging.FromContext(ctx)

	data, sourceType, m, err := loadManifest(ctx, ref)
	if err != nil {
		return nil, err
	}

	result := extract.Extract(m)

	logger.Debug("extraction complete",
		slog.Int("selected", result.Count()),
		slog.Int("excluded", len(result.Excluded)),
	)

	return &pipelineResult{
		Source:     data,
		SourceType: sourceType,
		Manifest:   m,
		Result:     result,
	}, nil
}
