package config

import (
	"github.com/spf13/pflag"
)

// flagFields maps flag names to source field names.
var flagFields = map[string]string{
	"store":          fieldStoreFile,
	"lock":           fieldLock,
	"atomic-write":   fieldAtomicWrite,
	"log-level":      fieldLogLevel,
	"log-format":     fieldLogFormat,
	"log-timestamps": fieldLogTimestamps,
	"log-caller":     fieldLogCaller,
	"color":          fieldColor,
}

// parseFlags defines the global flags on fs, parses args and records which
// values came from the command line. Parsing stops at the first non-flag
// argument so the command and its argument are left in fs.Args().
func parseFlags(cfg *Config, fs *pflag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = pflag.NewFlagSet("tasklist", pflag.ContinueOnError)
	}
	fs.SetInterspersed(false)

	// Store
	fs.StringVar(&cfg.StoreFile, "store", cfg.StoreFile, "Path to the store file (.json, .yaml or .yml)")
	fs.BoolVar(&cfg.Lock, "lock", cfg.Lock, "Hold an exclusive lock on the store while running")
	fs.BoolVar(&cfg.AtomicWrite, "atomic-write", cfg.AtomicWrite, "Rewrite the store through a temporary file and rename")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	// Output
	fs.StringVar(&cfg.Color, "color", cfg.Color, "Colorize list output (auto, always, never)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *pflag.Flag) {
		if field, ok := flagFields[f.Name]; ok {
			sources[field] = SourceFlag
		}
	})
	return nil
}
