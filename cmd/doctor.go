package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/nibzard/tasklist-go/internal/config"
	"github.com/nibzard/tasklist-go/internal/storage"
	"github.com/nibzard/tasklist-go/internal/todo"
)

// doctorCommand reports the effective configuration and checks the store
// file. It never writes the store.
func doctorCommand(w io.Writer, cws *config.ConfigWithSources) error {
	cfg := cws.Config

	fmt.Fprintln(w, "tasklist doctor")
	fmt.Fprintln(w, "===============")
	fmt.Fprintln(w)

	allOK := true

	// Config
	fmt.Fprintln(w, "Config:")
	if cfg.ConfigFile != "" {
		fmt.Fprintf(w, "  File: %s\n", cfg.ConfigFile)
	} else {
		fmt.Fprintln(w, "  File: (none, using defaults)")
	}
	for _, field := range config.Fields() {
		fmt.Fprintf(w, "  %-15s %-30s (%s)\n", field+":", cfg.Value(field), cws.Sources[field])
	}
	if err := cfg.Validate(); err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			fmt.Fprintf(w, "  ❌ %s\n", line)
		}
		allOK = false
	} else {
		fmt.Fprintln(w, "  ✅ OK")
	}
	fmt.Fprintln(w)

	if !checkStore(w, cfg) {
		allOK = false
	}

	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed. Stored data may be replaced by an empty store on the next command.")
	return fmt.Errorf("doctor checks failed")
}

// checkStore prints the store file checks and reports whether they passed.
func checkStore(w io.Writer, cfg *config.Config) bool {
	path := cfg.StoreFile
	codec := todo.CodecForPath(path)
	fmt.Fprintf(w, "Store file: %s (%s)\n", path, codec.Name())

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		fmt.Fprintln(w, "  ⚠️  Not found (will be created by the next command)")
		fmt.Fprintln(w)
		return true
	case err != nil:
		fmt.Fprintf(w, "  ❌ Error: %v\n\n", err)
		return false
	case info.IsDir():
		fmt.Fprintln(w, "  ❌ Error: path is a directory")
		fmt.Fprintln(w)
		return false
	}
	fmt.Fprintf(w, "  ✅ Exists (%s)\n", humanize.Bytes(uint64(info.Size())))

	if cfg.Lock {
		if _, err := os.Stat(storage.LockPath(path)); err == nil {
			fmt.Fprintf(w, "  Lock file: %s\n", storage.LockPath(path))
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w, "  ❌ Read error: %v\n\n", err)
		return false
	}
	data, err := codec.Decode(raw)
	if errors.Is(err, todo.ErrEmptyStore) {
		fmt.Fprintln(w, "  ⚠️  Empty (treated as an empty store)")
		fmt.Fprintln(w)
		return true
	}
	if err != nil {
		fmt.Fprintln(w, "  ❌ Validation failed:")
		for _, problem := range flattenErrors(err) {
			fmt.Fprintf(w, "     - %v\n", problem)
		}
		fmt.Fprintln(w)
		return false
	}
	fmt.Fprintln(w, "  ✅ Valid")

	open, resolved := data.Counts()
	fmt.Fprintf(w, "  Tasks: %d (%d open, %d resolved)\n", len(data.Tasks), open, resolved)
	fmt.Fprintf(w, "  Groups: %d\n", len(data.Groups))
	fmt.Fprintf(w, "  Projects: %d\n", len(data.Projects))
	for _, label := range data.OrphanGroups() {
		fmt.Fprintf(w, "  ⚠️  Tasks use unregistered group %q (listed under %s)\n", label, todo.UngroupedLabel)
	}
	fmt.Fprintln(w)
	return true
}

// flattenErrors expands joined errors below a decode error into a list.
func flattenErrors(err error) []error {
	var de *todo.DecodeError
	if errors.As(err, &de) {
		err = de.Err
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
