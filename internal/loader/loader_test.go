package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceType_String(t *testing.T) {
	tests := []struct {
		st   SourceType
		want string
	}{
		{SourceXML, "xml"},
		{SourceAPK, "apk"},
		{SourceUnknown, "unknown"},
		{SourceType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.st.String())
		})
	}
}

func TestDetect_BySuffix(t *testing.T) {
	tests := []struct {
		path string
		want SourceType
	}{
		{"AndroidManifest.xml", SourceXML},
		{"./app/src/main/AndroidManifest.xml", SourceXML},
		{"app-release.apk", SourceAPK},
		{"/tmp/APP-DEBUG.APK", SourceAPK},
		{"Manifest.XML", SourceXML},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			st, err := Detect(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, st)
		})
	}
}

func TestDetect_EmptyReference(t *testing.T) {
	_, err := Detect("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty manifest reference")
}

func TestDetect_SniffsZipMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle")
	require.NoError(t, os.WriteFile(path, []byte("PK\x03\x04rest-of-archive"), 0o600))

	st, err := Detect(path)
	require.NoError(t, err)
	assert.Equal(t, SourceAPK, st)
}

func TestDetect_SniffsXMLContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest")
	require.NoError(t, os.WriteFile(path, []byte("<manifest/>"), 0o600))

	st, err := Detect(path)
	require.NoError(t, err)
	assert.Equal(t, SourceXML, st)
}

func TestDetect_ShortFileFallsToXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny")
	require.NoError(t, os.WriteFile(path, []byte("<m"), 0o600))

	st, err := Detect(path)
	require.NoError(t, err)
	assert.Equal(t, SourceXML, st)
}

func TestDetect_MissingExtensionlessFile(t *testing.T) {
	_, err := Detect(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "detecting source type")
}

func TestLoad_XMLFile(t *testing.T) {
	content := `<manifest package="com.example.app"/>`
	path := filepath.Join(t.TempDir(), "AndroidManifest.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	data, source, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, SourceXML, source)
	assert.Equal(t, content, string(data))
}

func TestLoad_MissingXMLFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.xml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading manifest")
}

func TestLoad_CorruptAPK(t *testing.T) {
	// An .apk suffix routes through the archive decoder, which must
	// reject a file that is not a zip archive.
	path := filepath.Join(t.TempDir(), "broken.apk")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o600))

	_, source, err := Load(path)
	assert.Equal(t, SourceAPK, source)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening APK")
}

func TestExtractManifest_NotAnArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.apk")
	require.NoError(t, os.WriteFile(path, []byte("<manifest/>"), 0o600))

	_, err := ExtractManifest(path)
	require.Error(t, err)
}
