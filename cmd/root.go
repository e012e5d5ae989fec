// Package cmd implements the CLI command structure for tasklist.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/nibzard/tasklist-go/internal/config"
	"github.com/nibzard/tasklist-go/internal/logging"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Streams are the standard streams a command reads from and writes to.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Run executes the tasklist CLI on the process streams.
func Run(ctx context.Context, args []string) error {
	return RunWith(ctx, args, Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr})
}

// RunWith executes the tasklist CLI on the given streams.
func RunWith(ctx context.Context, args []string, s Streams) error {
	fs := pflag.NewFlagSet("tasklist", pflag.ContinueOnError)
	fs.SetOutput(s.Err)
	fs.Usage = func() {
		printUsage(fs, s.Err)
	}
	help := fs.BoolP("help", "h", false, "Show help")
	showVersion := fs.BoolP("version", "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, s.Out)
		return nil
	}
	if *showVersion {
		return versionCommand(s.Out)
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		printUsage(fs, s.Out)
		return nil
	}
	command, arg := remaining[0], ""
	if len(remaining) > 1 {
		arg = remaining[1]
	}

	// Commands that never touch the store.
	switch command {
	case "version":
		return versionCommand(s.Out)
	case "help":
		if arg == "config" {
			fmt.Fprint(s.Out, config.ExampleConfig())
			return nil
		}
		printUsage(fs, s.Out)
		return nil
	case "doctor":
		return doctorCommand(s.Out, cws)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	logger := newLogger(cfg, s.Err)

	if command == "tui" {
		return tuiCommand(ctx, cfg, logger)
	}

	return withStore(cfg, logger, func(sess *session) error {
		return dispatch(sess, s, cfg, command, arg)
	})
}

// dispatch applies one store command. Unknown commands are reported and leave
// the store unchanged.
func dispatch(sess *session, s Streams, cfg *config.Config, command, arg string) error {
	switch {
	case command == "add" && arg == "task":
		return addTaskCommand(sess, s)
	case command == "add" && arg == "project":
		return addProjectCommand(sess, s)
	case command == "list":
		return listCommand(sess, s.Out, cfg)
	case command == "resolve":
		return resolveCommand(sess, s.Out, arg)
	case command == "clear":
		return clearCommand(sess)
	case command == "projects":
		return projectsCommand(sess, s.Out, cfg)
	default:
		sess.log.Debug("invalid command", "command", command, "arg", arg)
		fmt.Fprintln(s.Out, "invalid command")
		return nil
	}
}

func newLogger(cfg *config.Config, w io.Writer) *log.Logger {
	return logging.FromConfig(w, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
}

func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "tasklist version %s\n", Version)
	return nil
}

func printUsage(fs *pflag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "tasklist - A small personal task tracker")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasklist [options] <command> [arg]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add task      Add a task (prompts for content, project tag and group)")
	fmt.Fprintln(w, "  add project   Add a project (prompts for name, tag and description)")
	fmt.Fprintln(w, "  list          List tasks by group")
	fmt.Fprintln(w, "  resolve <id>  Mark a task as resolved")
	fmt.Fprintln(w, "  clear         Remove every task (groups and projects are kept)")
	fmt.Fprintln(w, "  projects      List projects")
	fmt.Fprintln(w, "  doctor        Check config and store file validity")
	fmt.Fprintln(w, "  tui           Launch a read-only terminal viewer")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show this help message")
	fmt.Fprintln(w, "  help config   Show an example configuration file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
