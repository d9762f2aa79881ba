// Package diffutil computes and renders unified diffs between manifest
// documents, used to show exactly which elements extraction removes.
package diffutil

import (
	"fmt"
	"io"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DiffResult holds a computed unified diff.
type DiffResult struct {
	Unified        string
	HasDifferences bool
	Hunks          []string
	OldLabel       string
	NewLabel       string
}

// DiffOptions configures diff computation.
type DiffOptions struct {
	OldLabel string
	NewLabel string
	Context  int
}

// DefaultDiffOptions returns sensible default diff options.
func DefaultDiffOptions() DiffOptions {
	return DiffOptions{
		OldLabel: "source",
		NewLabel: "extracted",
		Context:  3,
	}
}

// ComputeDiff diffs two XML documents line by line.
func ComputeDiff(oldDoc, newDoc string, opts DiffOptions) (*DiffResult, error) {
	unified, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(oldDoc),
		B:        splitLines(newDoc),
		FromFile: opts.OldLabel,
		ToFile:   opts.NewLabel,
		Context:  opts.Context,
	})
	if err != nil {
		return nil, fmt.Errorf("computing diff: %w", err)
	}

	result := &DiffResult{
		Unified:  unified,
		OldLabel: opts.OldLabel,
		NewLabel: opts.NewLabel,
	}

	if unified != "" {
		result.HasDifferences = true
		result.Hunks = extractHunks(unified)
	}

	return result, nil
}

// extractHunks cuts unified output into per-hunk chunks. The file
// header before the first @@ marker belongs to no hunk and is dropped.
func extractHunks(unified string) []string {
	var (
		hunks   []string
		current strings.Builder
		started bool
	)

	for line := range strings.Lines(unified) {
		if strings.HasPrefix(line, "@@") {
			if started {
				hunks = append(hunks, current.String())
				current.Reset()
			}

			started = true
		}

		if started {
			current.WriteString(line)
		}
	}

	if started && current.Len() > 0 {
		hunks = append(hunks, current.String())
	}

	return hunks
}

// WriteDiff renders result to w, coloring added, removed, and hunk
// header lines when color is true.
func WriteDiff(w io.Writer, result *DiffResult, color bool) {
	if !result.HasDifferences {
		_, _ = fmt.Fprintln(w, "No differences found.")
		return
	}

	for _, line := range strings.Split(result.Unified, "\n") {
		code := ""
		if color {
			code = lineColor(line)
		}

		if code == "" {
			_, _ = fmt.Fprintln(w, line)
			continue
		}

		_, _ = fmt.Fprintf(w, "%s%s%s\n", code, line, ansiReset)
	}
}

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiRed   = "\033[31m"
	ansiGreen = "\033[32m"
	ansiCyan  = "\033[36m"
)

// lineColor picks the ANSI code for one unified diff line. File header
// lines outrank the plain +/- prefixes, so they are matched first.
func lineColor(line string) string {
	switch {
	case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
		return ansiBold
	case strings.HasPrefix(line, "@@"):
		return ansiCyan
	case strings.HasPrefix(line, "+"):
		return ansiGreen
	case strings.HasPrefix(line, "-"):
		return ansiRed
	default:
		return ""
	}
}

// splitLines keeps the trailing newline on each element, which is the
// shape difflib expects its input in.
func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}

	return strings.SplitAfter(s, "\n")
}
