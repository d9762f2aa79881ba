package manifest_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/manifex/internal/manifest"
)

const roundTripFixture = `<?xml version="1.0" encoding="UTF-8"?>
<manifest xmlns:android="http://schemas.android.com/apk/res/android" package="com.example.app" android:versionCode="7">
    <uses-permission android:name="android.permission.INTERNET"/>
    <permission android:name="com.example.app.PERM" android:protectionLevel="signature"/>
    <application android:label="Example" android:icon="@mipmap/ic_launcher" android:theme="@style/AppTheme">
        <activity android:name=".MainActivity" android:exported="true" android:launchMode="singleTop">
            <intent-filter>
                <action android:name="android.intent.action.MAIN"/>
                <category android:name="android.intent.category.LAUNCHER"/>
            </intent-filter>
            <meta-data android:name="custom" android:value="42"/>
        </activity>
        <service android:name=".SyncService" android:exported="false"/>
    </application>
</manifest>`

func TestSerialize_Declaration(t *testing.T) {
	m := mustParse(t, `<manifest package="com.example.app"/>`)

	out, err := m.Serialize(manifest.SerializeOptions{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), `<?xml version="1.0" encoding="UTF-8"?>`))
}

func TestSerialize_Deterministic(t *testing.T) {
	m := mustParse(t, roundTripFixture)

	first, err := m.Serialize(manifest.SerializeOptions{})
	require.NoError(t, err)

	second, err := m.Serialize(manifest.SerializeOptions{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSerialize_RoundTripFidelity(t *testing.T) {
	m := mustParse(t, roundTripFixture)

	out, err := m.Serialize(manifest.SerializeOptions{})
	require.NoError(t, err)

	reparsed, err := manifest.Parse(out)
	require.NoError(t, err)

	assert.Equal(t, "com.example.app", reparsed.Package)
	assert.Equal(t, "7", reparsed.Root.SelectAttrValue("android:versionCode", ""))

	require.NotNil(t, reparsed.Application)
	assert.Equal(t, "Example", reparsed.Application.SelectAttrValue("android:label", ""))
	assert.Equal(t, "@mipmap/ic_launcher", reparsed.Application.SelectAttrValue("android:icon", ""))
	assert.Equal(t, "@style/AppTheme", reparsed.Application.SelectAttrValue("android:theme", ""))

	activities := reparsed.ComponentsOf(manifest.KindActivity)
	require.Len(t, activities, 1)

	act := activities[0]
	assert.Equal(t, ".MainActivity", act.Name)
	assert.Equal(t, manifest.ExportTrue, act.Exported)
	assert.Equal(t, 1, act.IntentFilters)
	assert.Equal(t, "singleTop", act.El.SelectAttrValue("android:launchMode", ""))

	// Opaque nested content survives untouched.
	filter := act.El.SelectElement("intent-filter")
	require.NotNil(t, filter)
	action := filter.SelectElement("action")
	require.NotNil(t, action)
	assert.Equal(t, "android.intent.action.MAIN", action.SelectAttrValue("android:name", ""))

	meta := act.El.SelectElement("meta-data")
	require.NotNil(t, meta)
	assert.Equal(t, "42", meta.SelectAttrValue("android:value", ""))

	services := reparsed.ComponentsOf(manifest.KindService)
	require.Len(t, services, 1)
	assert.Equal(t, manifest.ExportFalse, services[0].Exported)

	require.Len(t, reparsed.Permissions(), 1)
	require.Len(t, reparsed.UsesPermissions(), 1)
}

func TestSerialize_StableAcrossReparse(t *testing.T) {
	m := mustParse(t, roundTripFixture)

	first, err := m.Serialize(manifest.SerializeOptions{})
	require.NoError(t, err)

	reparsed, err := manifest.Parse(first)
	require.NoError(t, err)

	second, err := reparsed.Serialize(manifest.SerializeOptions{})
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestSerialize_CustomIndent(t *testing.T) {
	m := mustParse(t, `<manifest><application/></manifest>`)

	out, err := m.Serialize(manifest.SerializeOptions{Indent: 2})
	require.NoError(t, err)
	assert.Contains(t, string(out), "\n  <application/>")
}

func TestSerialize_NegativeIndent(t *testing.T) {
	m := mustParse(t, `<manifest/>`)

	_, err := m.Serialize(manifest.SerializeOptions{Indent: -1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid indent")
}

func TestSerialize_DoesNotMutateTree(t *testing.T) {
	m := mustParse(t, roundTripFixture)

	before := len(m.Root.ChildElements())
	_, err := m.Serialize(manifest.SerializeOptions{Indent: 2})
	require.NoError(t, err)

	assert.Equal(t, before, len(m.Root.ChildElements()))
	assert.Equal(t, "com.example.app", m.Root.SelectAttrValue("package", ""))
}
