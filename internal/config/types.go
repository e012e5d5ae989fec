package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nibzard/tasklist-go/internal/logging"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// Default values.
const (
	DefaultStoreFile   = "data.json"
	DefaultLock        = true
	DefaultAtomicWrite = false
	DefaultLogLevel    = "warn"
	DefaultLogFormat   = "text"
	DefaultColor       = ColorAuto
)

// Color modes for list output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the full configuration for tasklist.
type Config struct {
	// Store
	StoreFile   string `toml:"store_file"`
	Lock        bool   `toml:"lock"`
	AtomicWrite bool   `toml:"atomic_write"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Output
	Color string `toml:"color"`

	// Computed at runtime
	WorkDir    string `toml:"-"`
	ConfigFile string `toml:"-"`
}

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
}

// Field names used for source tracking, in display order.
const (
	fieldStoreFile     = "store_file"
	fieldLock          = "lock"
	fieldAtomicWrite   = "atomic_write"
	fieldLogLevel      = "log_level"
	fieldLogFormat     = "log_format"
	fieldLogTimestamps = "log_timestamps"
	fieldLogCaller     = "log_caller"
	fieldColor         = "color"
)

// Fields returns the configurable field names in display order.
func Fields() []string {
	return []string{
		fieldStoreFile,
		fieldLock,
		fieldAtomicWrite,
		fieldLogLevel,
		fieldLogFormat,
		fieldLogTimestamps,
		fieldLogCaller,
		fieldColor,
	}
}

// Value returns the display value of a configurable field.
func (c *Config) Value(field string) string {
	switch field {
	case fieldStoreFile:
		return c.StoreFile
	case fieldLock:
		return fmt.Sprint(c.Lock)
	case fieldAtomicWrite:
		return fmt.Sprint(c.AtomicWrite)
	case fieldLogLevel:
		return c.LogLevel
	case fieldLogFormat:
		return c.LogFormat
	case fieldLogTimestamps:
		return fmt.Sprint(c.LogTimestamps)
	case fieldLogCaller:
		return fmt.Sprint(c.LogCaller)
	case fieldColor:
		return c.Color
	}
	return ""
}

// Validate reports values that cannot be used.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.StoreFile) == "" {
		errs = append(errs, errors.New("store_file is empty"))
	}
	if !logging.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("log_level %q is not one of debug, info, warn, error, fatal", c.LogLevel))
	}
	if !logging.ValidFormat(c.LogFormat) {
		errs = append(errs, fmt.Errorf("log_format %q is not one of text, json, logfmt", c.LogFormat))
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs = append(errs, fmt.Errorf("color %q is not one of auto, always, never", c.Color))
	}
	return errors.Join(errs...)
}
