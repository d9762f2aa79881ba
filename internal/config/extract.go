package config

import (
	"fmt"

	sigsyaml "sigs.k8s.io/yaml"
)

// ExtractConfig holds per-project extraction defaults loaded from the
// config file (.manifex.yaml). Values act as defaults only; explicitly set
// CLI flags always win.
type ExtractConfig struct {
	// Output is the default output path for extracted manifests.
	Output string `json:"output,omitempty"`

	// Indent is the default serialization indent width in spaces.
	Indent int `json:"indent,omitempty"`

	// Verbose enables the per-component report by default.
	Verbose bool `json:"verbose,omitempty"`
}

// ParseExtractConfig parses the extract section from raw config file bytes.
// A missing section yields an empty config, not an error.
func ParseExtractConfig(data []byte) (*ExtractConfig, error) {
	var raw struct {
		Extract ExtractConfig `json:"extract,omitempty"`
	}

	if err := sigsyaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing extract config: %w", err)
	}

	cfg := &raw.Extract

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the extract config for correctness.
func (c *ExtractConfig) Validate() error {
	if c.Indent < 0 {
		return fmt.Errorf("extract.indent: must be non-negative, got %d", c.Indent)
	}

	return nil
}

// IsEmpty returns true if the config carries no extraction defaults.
func (c *ExtractConfig) IsEmpty() bool {
	return c.Output == "" && c.Indent == 0 && !c.Verbose
}
