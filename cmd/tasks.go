package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/nibzard/tasklist-go/internal/config"
	"github.com/nibzard/tasklist-go/internal/console"
	"github.com/nibzard/tasklist-go/internal/todo"
)

func addTaskCommand(sess *session, s Streams) error {
	store := todo.NewStore(sess.data, console.New(s.In, s.Out))
	task, err := store.AddTask()
	if err != nil {
		return fmt.Errorf("add task: %w", err)
	}
	sess.log.Debug("task added", "id", task.ID, "group", task.Group)
	return nil
}

func addProjectCommand(sess *session, s Streams) error {
	store := todo.NewStore(sess.data, console.New(s.In, s.Out))
	project, err := store.AddProject()
	if err != nil {
		return fmt.Errorf("add project: %w", err)
	}
	sess.log.Debug("project added", "tag", project.Tag)
	return nil
}

func listCommand(sess *session, w io.Writer, cfg *config.Config) error {
	store := todo.NewStore(sess.data, nil)
	return store.ListTasks(w, todo.ListOptions{
		Styles: listStyles(w, cfg.Color),
		OnOrphan: func(label string) {
			sess.log.Warn("task group is not registered, listing under ungrouped", "group", label)
		},
	})
}

// resolveCommand resolves the task named by arg. An empty arg is a no-op and
// an unparsable one is reported without failing the invocation.
func resolveCommand(sess *session, w io.Writer, arg string) error {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return nil
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		sess.log.Debug("unparsable task id", "arg", arg, "err", err)
		fmt.Fprintf(w, "invalid task id: %s\n", arg)
		return nil
	}
	store := todo.NewStore(sess.data, nil)
	if !store.ResolveTask(id) {
		sess.log.Debug("no task with id", "id", id)
	}
	return nil
}

func clearCommand(sess *session) error {
	n := todo.NewStore(sess.data, nil).ClearTasks()
	sess.log.Debug("tasks cleared", "count", n)
	return nil
}

func projectsCommand(sess *session, w io.Writer, cfg *config.Config) error {
	return todo.ListProjects(w, sess.data, listStyles(w, cfg.Color))
}

// listStyles picks plain or terminal styles for w according to the color
// mode.
func listStyles(w io.Writer, mode string) todo.Styles {
	switch mode {
	case config.ColorNever:
		return todo.PlainStyles()
	case config.ColorAlways:
		r := lipgloss.NewRenderer(w)
		r.SetColorProfile(termenv.ANSI256)
		return todo.TerminalStyles(r)
	default:
		if !console.IsTerminal(w) {
			return todo.PlainStyles()
		}
		return todo.TerminalStyles(lipgloss.NewRenderer(w))
	}
}
