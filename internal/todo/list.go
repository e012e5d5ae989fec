package todo

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// UngroupedLabel is the heading of the block holding tasks without a group.
const UngroupedLabel = "ungrouped"

// Tree connectors prefixed to task lines.
const (
	ConnectorInterior = "├── "
	ConnectorLast     = "└── "
)

// TaskGroup is one rendered block of the task listing.
type TaskGroup struct {
	Label     string
	Ungrouped bool
	Tasks     []Task
}

// GroupTasks splits tasks into one block per known group label, in group
// order, followed by the ungrouped block. Task order inside a block is
// insertion order. Tasks naming a label absent from the group sequence land
// in the ungrouped block. A user group literally named UngroupedLabel keeps
// its own block; only the Ungrouped flag tells the two apart.
func GroupTasks(d *Data) []TaskGroup {
	groups := make([]TaskGroup, 0, len(d.Groups)+1)
	index := make(map[string]int, len(d.Groups))
	for _, label := range d.Groups {
		if _, dup := index[label]; dup {
			continue
		}
		index[label] = len(groups)
		groups = append(groups, TaskGroup{Label: label})
	}

	ungrouped := TaskGroup{Label: UngroupedLabel, Ungrouped: true}
	for _, t := range d.Tasks {
		if i, ok := index[t.Group]; ok && t.Group != "" {
			groups[i].Tasks = append(groups[i].Tasks, t)
			continue
		}
		ungrouped.Tasks = append(ungrouped.Tasks, t)
	}
	return append(groups, ungrouped)
}

// RenderFunc styles a fragment of output. lipgloss.Style.Render satisfies it.
type RenderFunc func(strs ...string) string

// Styles controls how listing fragments are decorated.
type Styles struct {
	Heading   RenderFunc
	Connector RenderFunc
	Open      RenderFunc
	Resolved  RenderFunc
	Project   RenderFunc
}

func plain(strs ...string) string {
	return strings.Join(strs, " ")
}

// PlainStyles returns styles that leave text untouched.
func PlainStyles() Styles {
	return Styles{
		Heading:   plain,
		Connector: plain,
		Open:      plain,
		Resolved:  plain,
		Project:   plain,
	}
}

// TerminalStyles returns lipgloss styles bound to renderer r.
func TerminalStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Heading:   r.NewStyle().Bold(true).Underline(true).Render,
		Connector: r.NewStyle().Foreground(lipgloss.Color("8")).Render,
		Open:      r.NewStyle().Render,
		Resolved:  r.NewStyle().Faint(true).Render,
		Project:   r.NewStyle().Foreground(lipgloss.Color("6")).Render,
	}
}

// ListOptions configures ListTasks.
type ListOptions struct {
	Styles Styles
	// OnOrphan is called once per group label that tasks reference but the
	// group sequence does not contain.
	OnOrphan func(label string)
}

// ListTasks writes the grouped task listing for d to w.
func ListTasks(w io.Writer, d *Data, opts ListOptions) error {
	styles := opts.Styles
	if styles.Heading == nil {
		styles = PlainStyles()
	}
	if opts.OnOrphan != nil {
		for _, label := range d.OrphanGroups() {
			opts.OnOrphan(label)
		}
	}

	for _, g := range GroupTasks(d) {
		if _, err := fmt.Fprintln(w, styles.Heading(g.Label)); err != nil {
			return err
		}
		for i, t := range g.Tasks {
			connector := ConnectorInterior
			if i == len(g.Tasks)-1 {
				connector = ConnectorLast
			}
			line := styles.Connector(connector) + FormatTask(t, styles)
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// FormatTask renders one task line without its connector.
func FormatTask(t Task, styles Styles) string {
	body := t.Mark() + " " + strconv.FormatInt(t.ID, 10) + " - " + t.Content
	if t.Resolved {
		body = styles.Resolved(body)
	} else {
		body = styles.Open(body)
	}
	if t.Project != "" {
		body += " - " + styles.Project(t.Project)
	}
	return body
}

// ListTasks writes the grouped listing of the store's tasks to w.
func (s *Store) ListTasks(w io.Writer, opts ListOptions) error {
	return ListTasks(w, s.data, opts)
}

// ListProjects writes one line per project to w.
func ListProjects(w io.Writer, d *Data, styles Styles) error {
	if styles.Heading == nil {
		styles = PlainStyles()
	}
	if _, err := fmt.Fprintln(w, styles.Heading("projects")); err != nil {
		return err
	}
	for i, p := range d.Projects {
		connector := ConnectorInterior
		if i == len(d.Projects)-1 {
			connector = ConnectorLast
		}
		line := styles.Connector(connector) + p.Name + " (" + styles.Project(p.Tag) + ")"
		if p.Description != "" {
			line += " - " + p.Description
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
