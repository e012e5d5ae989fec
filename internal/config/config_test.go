package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
)

// isolate points every config lookup at empty temporary directories and
// clears TASKLIST_* variables.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, env := range []string{EnvStore, EnvLock, EnvAtomicWrite, EnvLogLevel, EnvLogFormat, EnvLogTimestamps, EnvLogCaller, EnvColor} {
		t.Setenv(env, "")
	}
	work := t.TempDir()
	t.Chdir(work)
	return work
}

func newFlagSet() *pflag.FlagSet {
	return pflag.NewFlagSet("tasklist", pflag.ContinueOnError)
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	if cfg.StoreFile != DefaultStoreFile {
		t.Errorf("StoreFile: got %q, want %q", cfg.StoreFile, DefaultStoreFile)
	}
	if !cfg.Lock {
		t.Error("Lock: got false, want true")
	}
	if cfg.AtomicWrite {
		t.Error("AtomicWrite: got true, want false")
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel: got %q, want warn", cfg.LogLevel)
	}
	if cfg.Color != ColorAuto {
		t.Errorf("Color: got %q, want auto", cfg.Color)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	work := isolate(t)

	cws, err := LoadWithSources(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("LoadWithSources() error = %v", err)
	}
	cfg := cws.Config
	if want := filepath.Join(work, DefaultStoreFile); cfg.StoreFile != want {
		t.Errorf("StoreFile: got %q, want %q", cfg.StoreFile, want)
	}
	if cfg.ConfigFile != "" {
		t.Errorf("ConfigFile: got %q, want none", cfg.ConfigFile)
	}
	for _, field := range Fields() {
		if cws.Sources[field] != SourceDefault {
			t.Errorf("source of %s: got %q, want default", field, cws.Sources[field])
		}
	}
}

func TestLoadPriority(t *testing.T) {
	work := isolate(t)

	userDir := filepath.Join(os.Getenv("HOME"), ".tasklist")
	if err := os.MkdirAll(userDir, 0755); err != nil {
		t.Fatal(err)
	}
	user := "store_file = \"user.json\"\nlog_level = \"info\"\ncolor = \"never\"\n"
	if err := os.WriteFile(filepath.Join(userDir, "tasklist.toml"), []byte(user), 0644); err != nil {
		t.Fatal(err)
	}
	project := "store_file = \"project.yaml\"\natomic_write = true\n"
	if err := os.WriteFile(filepath.Join(work, "tasklist.toml"), []byte(project), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLock, "false")

	fs := newFlagSet()
	cws, err := LoadWithSources(fs, []string{"--log-format", "json", "resolve", "3"})
	if err != nil {
		t.Fatalf("LoadWithSources() error = %v", err)
	}
	cfg := cws.Config

	tests := []struct {
		field  string
		value  string
		source ConfigSource
	}{
		{"store_file", filepath.Join(work, "project.yaml"), SourceProjFile},
		{"atomic_write", "true", SourceProjFile},
		{"color", "never", SourceUserFile},
		{"log_level", "debug", SourceEnv},
		{"lock", "false", SourceEnv},
		{"log_format", "json", SourceFlag},
		{"log_caller", "false", SourceDefault},
	}
	for _, tt := range tests {
		if got := cfg.Value(tt.field); got != tt.value {
			t.Errorf("%s: got %q, want %q", tt.field, got, tt.value)
		}
		if got := cws.Sources[tt.field]; got != tt.source {
			t.Errorf("source of %s: got %q, want %q", tt.field, got, tt.source)
		}
	}
	if want := filepath.Join(work, "tasklist.toml"); cfg.ConfigFile != want {
		t.Errorf("ConfigFile: got %q, want %q", cfg.ConfigFile, want)
	}
	if args := fs.Args(); len(args) != 2 || args[0] != "resolve" || args[1] != "3" {
		t.Errorf("remaining args: got %v, want [resolve 3]", args)
	}
}

func TestLoadStopsAtCommand(t *testing.T) {
	isolate(t)

	fs := newFlagSet()
	cws, err := LoadWithSources(fs, []string{"resolve", "-1"})
	if err != nil {
		t.Fatalf("LoadWithSources() error = %v", err)
	}
	cfg := cws.Config
	if args := fs.Args(); len(args) != 2 || args[1] != "-1" {
		t.Errorf("remaining args: got %v, want [resolve -1]", args)
	}
	if !cfg.Lock {
		t.Error("Lock should keep its default")
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	t.Run("unknown flag", func(t *testing.T) {
		isolate(t)
		if _, err := LoadWithSources(newFlagSet(), []string{"--nope"}); err == nil {
			t.Fatal("expected error for unknown flag")
		}
	})

	t.Run("malformed project file", func(t *testing.T) {
		work := isolate(t)
		if err := os.WriteFile(filepath.Join(work, ".tasklist.toml"), []byte("store_file = "), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := LoadWithSources(newFlagSet(), nil)
		if err == nil || !strings.Contains(err.Error(), "project config file") {
			t.Fatalf("LoadWithSources() error = %v, want project config file error", err)
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		work := isolate(t)
		if err := os.WriteFile(filepath.Join(work, "tasklist.toml"), []byte("stor_file = \"x.json\"\n"), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := LoadWithSources(newFlagSet(), nil)
		if err == nil || !strings.Contains(err.Error(), "stor_file") {
			t.Fatalf("LoadWithSources() error = %v, want unknown key error", err)
		}
	})
}

func TestLoadFromEnvBooleans(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"true", true},
		{"YES", true},
		{"on", true},
		{"0", false},
		{"off", false},
		{"nope", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv(EnvAtomicWrite, tt.value)
			cfg := &Config{}
			setDefaults(cfg)
			sources := map[string]ConfigSource{}
			loadFromEnv(cfg, sources)
			if cfg.AtomicWrite != tt.want {
				t.Errorf("AtomicWrite: got %v, want %v", cfg.AtomicWrite, tt.want)
			}
			if sources[fieldAtomicWrite] != SourceEnv {
				t.Errorf("source: got %q, want environment", sources[fieldAtomicWrite])
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty store", func(c *Config) { c.StoreFile = " " }, "store_file"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }, "log_format"},
		{"bad color", func(c *Config) { c.Color = "sometimes" }, "color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			setDefaults(cfg)
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAcceptsParsableLogNames(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.LogLevel = " WARN"
	cfg.LogFormat = "JSON "
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("TASKLIST_TEST_DIR", "/srv/tasks")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/data.json", filepath.Join(home, "data.json")},
		{"$TASKLIST_TEST_DIR/data.json", "/srv/tasks/data.json"},
		{"relative/data.json", "relative/data.json"},
		{"a~/b", "a~/b"},
	}
	for _, tt := range tests {
		if got := expandPath(tt.in); got != tt.want {
			t.Errorf("expandPath(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExpandPercentVars(t *testing.T) {
	t.Setenv("TASKLIST_TEST_VAR", "value")
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"%TASKLIST_TEST_VAR%/x", "value/x"},
		{"%TASKLIST_MISSING_VAR%/x", "%TASKLIST_MISSING_VAR%/x"},
		{"100%", "100%"},
		{"%%", "%%"},
	}
	for _, tt := range tests {
		if got := expandPercentVars(tt.in); got != tt.want {
			t.Errorf("expandPercentVars(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExampleConfigDecodes(t *testing.T) {
	cfg := &Config{}
	meta, err := toml.Decode(ExampleConfig(), cfg)
	if err != nil {
		t.Fatalf("ExampleConfig() does not decode: %v", err)
	}
	if len(meta.Undecoded()) != 0 {
		t.Errorf("ExampleConfig() has unknown keys: %v", meta.Undecoded())
	}
	defaults := &Config{}
	setDefaults(defaults)
	if *cfg != *defaults {
		t.Errorf("ExampleConfig() values: got %+v, want defaults %+v", cfg, defaults)
	}
}
