package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasklist configuration file
# Values can be overridden by TASKLIST_* environment variables or CLI flags

# Store file, relative to the working directory.
# A .yaml or .yml extension selects the YAML format.
store_file = "data.json"

# Hold an exclusive lock on <store_file>.lock while a command runs
lock = true

# Rewrite the store through a temporary file and rename
atomic_write = false

# Logging (debug, info, warn, error) and format (text, json, logfmt)
log_level = "warn"
log_format = "text"
log_timestamps = false
log_caller = false

# Colorize list output: auto, always or never
color = "auto"
`
}
