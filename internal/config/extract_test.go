package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExtractConfig_FullSection(t *testing.T) {
	data := []byte(`log-level: debug
extract:
  output: build/exported-manifest.xml
  indent: 2
  verbose: true
`)

	cfg, err := ParseExtractConfig(data)
	require.NoError(t, err)
	assert.Equal(t, "build/exported-manifest.xml", cfg.Output)
	assert.Equal(t, 2, cfg.Indent)
	assert.True(t, cfg.Verbose)
	assert.False(t, cfg.IsEmpty())
}

func TestParseExtractConfig_MissingSection(t *testing.T) {
	cfg, err := ParseExtractConfig([]byte("log-level: warn\n"))
	require.NoError(t, err)
	assert.True(t, cfg.IsEmpty())
}

func TestParseExtractConfig_EmptyInput(t *testing.T) {
	cfg, err := ParseExtractConfig(nil)
	require.NoError(t, err)
	assert.True(t, cfg.IsEmpty())
}

func TestParseExtractConfig_MalformedYAML(t *testing.T) {
	_, err := ParseExtractConfig([]byte(": bad :"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing extract config")
}

func TestParseExtractConfig_NegativeIndent(t *testing.T) {
	_, err := ParseExtractConfig([]byte("extract:\n  indent: -4\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be non-negative")
}

func TestExtractConfig_IsEmpty(t *testing.T) {
	assert.True(t, (&ExtractConfig{}).IsEmpty())
	assert.False(t, (&ExtractConfig{Output: "out.xml"}).IsEmpty())
	assert.False(t, (&ExtractConfig{Indent: 2}).IsEmpty())
	assert.False(t, (&ExtractConfig{Verbose: true}).IsEmpty())
}
