package config

import (
	"os"
	"strings"
)

// Environment variable names.
const (
	EnvStore         = "TASKLIST_STORE"
	EnvLock          = "TASKLIST_LOCK"
	EnvAtomicWrite   = "TASKLIST_ATOMIC_WRITE"
	EnvLogLevel      = "TASKLIST_LOG_LEVEL"
	EnvLogFormat     = "TASKLIST_LOG_FORMAT"
	EnvLogTimestamps = "TASKLIST_LOG_TIMESTAMPS"
	EnvLogCaller     = "TASKLIST_LOG_CALLER"
	EnvColor         = "TASKLIST_COLOR"
)

// loadFromEnv overrides config from environment variables and records the
// source of every value it sets.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	setString := func(env, field string, target *string) {
		if v := os.Getenv(env); v != "" {
			*target = v
			sources[field] = SourceEnv
		}
	}
	setBool := func(env, field string, target *bool) {
		if v := os.Getenv(env); v != "" {
			*target = boolFromString(v)
			sources[field] = SourceEnv
		}
	}

	setString(EnvStore, fieldStoreFile, &cfg.StoreFile)
	setBool(EnvLock, fieldLock, &cfg.Lock)
	setBool(EnvAtomicWrite, fieldAtomicWrite, &cfg.AtomicWrite)
	setString(EnvLogLevel, fieldLogLevel, &cfg.LogLevel)
	setString(EnvLogFormat, fieldLogFormat, &cfg.LogFormat)
	setBool(EnvLogTimestamps, fieldLogTimestamps, &cfg.LogTimestamps)
	setBool(EnvLogCaller, fieldLogCaller, &cfg.LogCaller)
	setString(EnvColor, fieldColor, &cfg.Color)
}

func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
