// Package todo holds the task store data model and its operations.
package todo

import (
	"errors"
	"fmt"
)

// ErrIDOverflow is returned when the next task id would not fit in an int64.
var ErrIDOverflow = errors.New("task id overflow")

// Task represents a single task in the store.
type Task struct {
	ID       int64  `json:"id" yaml:"id"`
	Content  string `json:"content" yaml:"content"`
	Resolved bool   `json:"resolved" yaml:"resolved"`
	Project  string `json:"project" yaml:"project"`
	Group    string `json:"group" yaml:"group"`
}

// Mark returns the checkbox used when rendering the task.
func (t Task) Mark() string {
	if t.Resolved {
		return "[x]"
	}
	return "[ ]"
}

// String renders the task as "[ ] 1 - content - project".
// The project suffix is omitted when the task has no project.
func (t Task) String() string {
	return FormatTask(t, PlainStyles())
}

// Project represents a named initiative tasks may refer to by tag.
type Project struct {
	Name        string `json:"name" yaml:"name"`
	Tag         string `json:"tag" yaml:"tag"`
	Description string `json:"description" yaml:"description"`
}

// Data is the root aggregate persisted as one store file.
type Data struct {
	Tasks    []Task    `json:"tasks" yaml:"tasks"`
	Groups   []string  `json:"groups" yaml:"groups"`
	Projects []Project `json:"projects" yaml:"projects"`
}

// NewData returns an empty store with non-nil sequences, so it encodes
// as empty arrays rather than null.
func NewData() *Data {
	return &Data{
		Tasks:    []Task{},
		Groups:   []string{},
		Projects: []Project{},
	}
}

// normalize replaces nil sequences with empty ones.
func (d *Data) normalize() {
	if d.Tasks == nil {
		d.Tasks = []Task{}
	}
	if d.Groups == nil {
		d.Groups = []string{}
	}
	if d.Projects == nil {
		d.Projects = []Project{}
	}
}

// GetTask returns the first task with the given id, or nil if not found.
func (d *Data) GetTask(id int64) *Task {
	for i := range d.Tasks {
		if d.Tasks[i].ID == id {
			return &d.Tasks[i]
		}
	}
	return nil
}

// HasGroup reports whether label is present in the group sequence.
func (d *Data) HasGroup(label string) bool {
	for _, g := range d.Groups {
		if g == label {
			return true
		}
	}
	return false
}

// NextID returns the id the next added task receives: the last task's id
// plus one, or 0 for an empty task list.
func (d *Data) NextID() (int64, error) {
	if len(d.Tasks) == 0 {
		return 0, nil
	}
	last := d.Tasks[len(d.Tasks)-1].ID
	if last == maxTaskID {
		return 0, fmt.Errorf("after id %d: %w", last, ErrIDOverflow)
	}
	return last + 1, nil
}

// OrphanGroups returns group labels referenced by tasks but missing from
// the group sequence, in first-seen order.
func (d *Data) OrphanGroups() []string {
	var orphans []string
	seen := make(map[string]bool)
	for _, t := range d.Tasks {
		if t.Group == "" || seen[t.Group] || d.HasGroup(t.Group) {
			continue
		}
		seen[t.Group] = true
		orphans = append(orphans, t.Group)
	}
	return orphans
}

// Counts returns the number of open and resolved tasks.
func (d *Data) Counts() (open, resolved int) {
	for _, t := range d.Tasks {
		if t.Resolved {
			resolved++
		} else {
			open++
		}
	}
	return open, resolved
}
