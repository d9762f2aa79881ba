package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?>` + "\n<manifest/>\n"

func TestStdoutWriter(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewStdoutWriter(&buf).Write([]byte(sampleDoc)))
	assert.Equal(t, sampleDoc, buf.String())
}

func TestStdoutWriter_NilFallsBackToStdout(t *testing.T) {
	assert.NotNil(t, NewStdoutWriter(nil))
}

func TestFileWriter_WritesThroughMissingDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "exported-manifest.xml")

	require.NoError(t, NewFileWriter(path).Write([]byte(sampleDoc)))

	got, err := os.ReadFile(path) //nolint:gosec // test
	require.NoError(t, err)
	assert.Equal(t, sampleDoc, string(got))
}

func TestFileWriter_Permissions(t *testing.T) {
	tests := []struct {
		name string
		opts []FileWriterOption
		want os.FileMode
	}{
		{"default", nil, 0o644},
		{"custom", []FileWriterOption{WithPermissions(0o600)}, 0o600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "perm.xml")

			require.NoError(t, NewFileWriter(path, tt.opts...).Write([]byte("x")))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, info.Mode().Perm())
		})
	}
}

func TestFileWriter_ReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "existing.xml")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644)) //nolint:gosec // test

	require.NoError(t, NewFileWriter(path).Write([]byte("new")))

	got, err := os.ReadFile(path) //nolint:gosec // test
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestFileWriter_NoTempResidue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clean.xml")

	require.NoError(t, NewFileWriter(path).Write([]byte("data")))

	// The staging temp file must be renamed away, leaving only the target.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "clean.xml", entries[0].Name())
}

func TestFileWriter_Path(t *testing.T) {
	w := NewFileWriter("/tmp/exported-manifest.xml")
	assert.Equal(t, "/tmp/exported-manifest.xml", w.Path())
}

func TestFileWriter_UncreatableDir(t *testing.T) {
	err := NewFileWriter("/dev/null/impossible/path.xml").Write([]byte("data"))
	assert.Error(t, err)
}
