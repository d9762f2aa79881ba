package watch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
)

// RunFunc is called each time the watcher triggers a re-extraction.
// It receives the context and returns the extraction result for
// component change tracking and validation.
type RunFunc func(ctx context.Context) (*RunResult, error)

// RunResult holds the output of a single pipeline execution so the
// watcher can track component changes and optionally validate.
type RunResult struct {
	ComponentCount   int
	ComponentChanges []ComponentChange
	OutputPath       string
}

// Options configures the watch behaviour.
type Options struct {
	// ManifestPath is the manifest file to watch.
	ManifestPath string

	// Debounce is the quiet period before triggering a re-extraction.
	Debounce time.Duration

	// Validate enables automatic validation after each extraction.
	Validate bool

	// ValidateFn is called after each extraction when Validate is true.
	// If nil, validation is skipped even when Validate is true.
	ValidateFn ValidateFunc

	// Logger is used for structured logging.
	Logger *slog.Logger

	// Out is the writer for user-facing status messages.
	Out io.Writer
}

// DefaultOptions returns sensible default watch options.
func DefaultOptions() Options {
	return Options{
		Debounce: 500 * time.Millisecond,
		Validate: true,
		Logger:   slog.Default(),
		Out:      os.Stderr,
	}
}

// ValidateFunc is called after each extraction to validate the output.
// It receives the output path and returns an error if validation fails.
type ValidateFunc func(ctx context.Context, outputPath string) error

// Run starts the file watcher and blocks until the context is cancelled
// or a SIGINT/SIGTERM signal is received.
func Run(ctx context.Context, opts Options, runFn RunFunc) error {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if opts.Out == nil {
		opts.Out = io.Discard
	}

	target, err := filepath.Abs(opts.ManifestPath)
	if err != nil {
		return fmt.Errorf("resolving manifest path %q: %w", opts.ManifestPath, err)
	}

	if _, statErr := os.Stat(target); statErr != nil {
		return fmt.Errorf("watching manifest: %w", statErr)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the parent directory rather than the file itself. Editors
	// that save via write-to-temp-then-rename would otherwise detach
	// the watch on the first save.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching manifest directory: %w", err)
	}

	// Trap SIGINT / SIGTERM for graceful shutdown.
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(opts.Out, "watching %s (debounce=%s, validate=%t)\n",
		opts.ManifestPath, opts.Debounce, opts.Validate)

	// Initial extraction.
	doRun(sigCtx, opts, runFn, "(initial)")

	// Set up debouncer.
	debouncer := NewDebouncer(opts.Debounce, func(path string) {
		doRun(sigCtx, opts, runFn, path)
	})
	defer debouncer.Stop()

	for {
		select {
		case <-sigCtx.Done():
			fmt.Fprintln(opts.Out, "\nshutting down watcher")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !isRelevant(event, target) {
				continue
			}

			debouncer.Trigger(event.Name)

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			opts.Logger.Error("watcher error", slog.String("error", watchErr.Error()))
		}
	}
}

// doRun executes a single pipeline run and prints the status line.
func doRun(ctx context.Context, opts Options, runFn RunFunc, trigger string) {
	now := time.Now().Format("15:04:05")

	result, err := runFn(ctx)
	if err != nil {
		fmt.Fprintf(opts.Out, "[%s] %s → ERROR: %v\n", now, trigger, err)
		return
	}

	fmt.Fprintf(opts.Out, "[%s] %s → OK (%d exported component(s))\n",
		now, trigger, result.ComponentCount)

	// Report component changes.
	if len(result.ComponentChanges) > 0 {
		fmt.Fprintf(opts.Out, "  components: %s\n", ComponentDiffSummary(result.ComponentChanges))
	}

	// Auto-validate (when enabled and a validate function is provided).
	if opts.Validate && opts.ValidateFn != nil && result.OutputPath != "" {
		if validateErr := opts.ValidateFn(ctx, result.OutputPath); validateErr != nil {
			fmt.Fprintf(opts.Out, "  validate: FAILED: %v\n", validateErr)
			return
		}

		fmt.Fprintf(opts.Out, "  validate: OK\n")
	}
}

// isRelevant filters out events that do not touch the watched manifest.
// The parent directory is watched, so events also arrive for sibling
// files (editor temp files, unrelated outputs).
func isRelevant(event fsnotify.Event, target string) bool {
	if event.Op == 0 {
		return false
	}

	// Only care about write, create, remove, rename.
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	return filepath.Clean(event.Name) == target
}
