// Package config resolves the manifex runtime configuration.
//
// Values merge from four sources, strongest first: command-line flags,
// MANIFEX_* environment variables, a YAML config file, and built-in
// defaults.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Log levels accepted by --log-level.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Log formats accepted by --log-format.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

var (
	logLevels  = []string{LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError}
	logFormats = []string{LogFormatText, LogFormatJSON}
)

// Config carries the settings shared by every manifex command.
type Config struct {
	// LogLevel sets log verbosity: debug, info, warn, or error.
	LogLevel string `mapstructure:"log-level" json:"logLevel"`

	// LogFormat selects text or json log output.
	LogFormat string `mapstructure:"log-format" json:"logFormat"`

	// NoColor disables ANSI colors in diff and watch output.
	NoColor bool `mapstructure:"no-color" json:"noColor"`

	// Quiet drops all log output below error level.
	Quiet bool `mapstructure:"quiet" json:"quiet"`

	// ConfigFile is the path of the file configuration was read from,
	// if any. Populated by Load, never read from the file itself.
	ConfigFile string `mapstructure:"-" json:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel:  LogLevelInfo,
		LogFormat: LogFormatText,
	}
}

// Validate rejects values outside the accepted sets.
func (c *Config) Validate() error {
	if !slices.Contains(logLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level %q: must be one of %s", c.LogLevel, strings.Join(logLevels, ", "))
	}

	if !slices.Contains(logFormats, c.LogFormat) {
		return fmt.Errorf("invalid log format %q: must be one of %s", c.LogFormat, strings.Join(logFormats, ", "))
	}

	return nil
}

// EffectiveLogLevel returns the level logging should run at. Quiet
// forces error regardless of LogLevel.
func (c *Config) EffectiveLogLevel() string {
	if c.Quiet {
		return LogLevelError
	}

	return c.LogLevel
}

// Load merges flags, environment, and config file into a validated
// Config. Every call builds a fresh viper instance, so parallel tests
// never share state.
func Load(cmd *cobra.Command, configFile string) (*Config, error) {
	v := newViper()

	if err := loadFile(v, configFile); err != nil {
		return nil, err
	}

	if err := bindFlags(v, cmd); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// newViper builds a viper instance with defaults and environment
// wiring in place. Defaults must be registered for AutomaticEnv to
// pick the keys up at all.
func newViper() *viper.Viper {
	v := viper.New()

	for key, val := range map[string]any{
		"log-level":  LogLevelInfo,
		"log-format": LogFormatText,
		"no-color":   false,
		"quiet":      false,
	} {
		v.SetDefault(key, val)
	}

	v.SetEnvPrefix("MANIFEX")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// loadFile reads an explicit config file, or discovers a .manifex.yaml
// in the working directory or ~/.config/manifex when none was given.
func loadFile(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)

		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %q: %w", configFile, err)
		}

		return nil
	}

	v.SetConfigName(".manifex")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "manifex"))
	}

	err := v.ReadInConfig()
	if err == nil {
		return nil
	}

	// Discovery finding nothing is the normal case. A file that exists
	// but does not parse is not.
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}

	return fmt.Errorf("parsing config file: %w", err)
}

// bindFlags binds the command's flag set plus the persistent flags of
// every ancestor, so subcommand flags and root flags both reach viper.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	for c := cmd; c != nil; c = c.Parent() {
		if err := v.BindPFlags(c.PersistentFlags()); err != nil {
			return fmt.Errorf("binding persistent flags: %w", err)
		}
	}

	return nil
}

type cfgKey struct{}

type cfgFileKey struct{}

// NewContext returns a child context carrying cfg.
func NewContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, cfgKey{}, cfg)
}

// FromContext returns the Config carried by ctx, or Default when none
// was attached.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(cfgKey{}).(*Config); ok {
		return cfg
	}

	return Default()
}

// NewContextWithConfigFile returns a child context carrying the path
// of the resolved config file.
func NewContextWithConfigFile(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, cfgFileKey{}, path)
}

// ConfigFileFromContext returns the config file path carried by ctx,
// or "" when no file was resolved.
func ConfigFileFromContext(ctx context.Context) string {
	if p, ok := ctx.Value(cfgFileKey{}).(string); ok {
		return p
	}

	return ""
}
