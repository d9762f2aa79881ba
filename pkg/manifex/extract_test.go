package manifex_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/manifex/pkg/manifex"
)

const fixtureManifest = "../../testdata/manifests/full.xml"

func TestExtract_EmptyRef(t *testing.T) {
	_, err := manifex.Extract(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "manifest reference must not be empty")
}

func TestExtract_MissingFile(t *testing.T) {
	_, err := manifex.Extract(context.Background(), "/nonexistent/path/AndroidManifest.xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading manifest")
}

func TestExtract_LocalManifest(t *testing.T) {
	result, err := manifex.Extract(context.Background(), fixtureManifest)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "com.example.app", result.Package)
	assert.Equal(t, "xml", result.Source)
	assert.Equal(t, 10, result.DeclaredCount)
	assert.Equal(t, 5, result.ExportedCount)
	assert.Len(t, result.Selected, 5)
	assert.Len(t, result.Excluded, 5)

	xmlStr := string(result.XML)
	assert.Contains(t, xmlStr, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, xmlStr, ".MainActivity")
	assert.NotContains(t, xmlStr, ".InternalActivity")
}

func TestExtract_WithIndent(t *testing.T) {
	result, err := manifex.Extract(context.Background(), fixtureManifest,
		manifex.WithIndent(2),
	)
	require.NoError(t, err)
	assert.Contains(t, string(result.XML), "\n  <application")
}

func TestExtract_NegativeIndent(t *testing.T) {
	_, err := manifex.Extract(context.Background(), fixtureManifest,
		manifex.WithIndent(-1),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "indent must be non-negative")
}

func TestExtract_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := manifex.Extract(ctx, fixtureManifest)
	require.Error(t, err)
}

func TestExtract_ComponentReasons(t *testing.T) {
	result, err := manifex.Extract(context.Background(), fixtureManifest)
	require.NoError(t, err)

	reasons := make(map[string]string, len(result.Selected)+len(result.Excluded))
	for _, c := range result.Selected {
		reasons[c.Name] = c.Reason
	}

	for _, c := range result.Excluded {
		reasons[c.Name] = c.Reason
	}

	assert.Contains(t, reasons[".MainActivity"], "intent filter")
	assert.Equal(t, `exported="true"`, reasons[".ShareActivity"])
	assert.Equal(t, `exported="false"`, reasons[".SettingsActivity"])
	assert.Equal(t, "exported unset, no intent filter", reasons[".WorkerService"])
}

func TestExtractBytes_Minimal(t *testing.T) {
	data := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<manifest xmlns:android="http://schemas.android.com/apk/res/android" package="com.example.lib">
    <application>
        <activity android:name=".Entry" android:exported="true"/>
        <service android:name=".Hidden"/>
    </application>
</manifest>`)

	result, err := manifex.ExtractBytes(data)
	require.NoError(t, err)

	assert.Equal(t, "com.example.lib", result.Package)
	assert.Equal(t, "xml", result.Source)
	assert.Equal(t, 2, result.DeclaredCount)
	assert.Equal(t, 1, result.ExportedCount)
	assert.Contains(t, string(result.XML), ".Entry")
	assert.NotContains(t, string(result.XML), ".Hidden")
}

func TestExtractBytes_Empty(t *testing.T) {
	_, err := manifex.ExtractBytes(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "manifest data must not be empty")
}

func TestExtractBytes_MalformedXML(t *testing.T) {
	_, err := manifex.ExtractBytes([]byte("<manifest><activity"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing manifest")
}

func TestExtractBytes_NotAManifest(t *testing.T) {
	_, err := manifex.ExtractBytes([]byte(`<?xml version="1.0"?><resources/>`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no manifest root")
}

func TestExtract_OutputRoundTrips(t *testing.T) {
	result, err := manifex.Extract(context.Background(), fixtureManifest)
	require.NoError(t, err)

	// The output must survive a second pass through the pipeline unchanged
	// in component count.
	again, err := manifex.ExtractBytes(result.XML)
	require.NoError(t, err)
	assert.Equal(t, result.ExportedCount, again.ExportedCount)
	assert.Equal(t, result.ExportedCount, again.DeclaredCount)
	assert.True(t, strings.HasPrefix(string(again.XML), `<?xml version="1.0" encoding="UTF-8"?>`))
}
