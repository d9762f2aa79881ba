// Package watch provides file-watching capabilities for manifex's
// live-reload development workflow. It monitors a manifest file for
// changes, debounces rapid events, and re-runs the extraction
// pipeline automatically.
package watch
