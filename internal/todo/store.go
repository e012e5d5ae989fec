package todo

import (
	"fmt"
	"math"
)

const maxTaskID = math.MaxInt64

// Prompts shown while reading a new task or project.
const (
	PromptTaskContent        = "Task: "
	PromptTaskProject        = "Project tag: "
	PromptTaskGroup          = "Group: "
	PromptProjectName        = "Project name: "
	PromptProjectTag         = "Project tag: "
	PromptProjectDescription = "Description: "
)

// LineReader supplies one line of user input for a prompt.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// Store applies task operations to a Data aggregate it owns for the
// duration of one invocation.
type Store struct {
	data  *Data
	input LineReader
}

// NewStore wraps data. A nil data is replaced with an empty store.
func NewStore(data *Data, input LineReader) *Store {
	if data == nil {
		data = NewData()
	}
	data.normalize()
	return &Store{data: data, input: input}
}

// Data returns the aggregate the store mutates.
func (s *Store) Data() *Data {
	return s.data
}

// AddTask reads content, project and group from the input and appends a new
// open task. The group label is recorded in the group sequence the first
// time it is seen.
func (s *Store) AddTask() (Task, error) {
	content, err := s.read(PromptTaskContent)
	if err != nil {
		return Task{}, err
	}
	project, err := s.read(PromptTaskProject)
	if err != nil {
		return Task{}, err
	}
	group, err := s.read(PromptTaskGroup)
	if err != nil {
		return Task{}, err
	}
	return s.Append(content, project, group)
}

// Append adds an open task without prompting.
func (s *Store) Append(content, project, group string) (Task, error) {
	id, err := s.data.NextID()
	if err != nil {
		return Task{}, err
	}
	if group != "" && !s.data.HasGroup(group) {
		s.data.Groups = append(s.data.Groups, group)
	}
	task := Task{
		ID:      id,
		Content: content,
		Project: project,
		Group:   group,
	}
	s.data.Tasks = append(s.data.Tasks, task)
	return task, nil
}

// AddProject reads name, tag and description from the input and appends a
// new project. Duplicate names and tags are accepted.
func (s *Store) AddProject() (Project, error) {
	name, err := s.read(PromptProjectName)
	if err != nil {
		return Project{}, err
	}
	tag, err := s.read(PromptProjectTag)
	if err != nil {
		return Project{}, err
	}
	description, err := s.read(PromptProjectDescription)
	if err != nil {
		return Project{}, err
	}
	project := Project{Name: name, Tag: tag, Description: description}
	s.data.Projects = append(s.data.Projects, project)
	return project, nil
}

// ResolveTask marks the first task with the given id as resolved.
// It reports whether a task matched; an unknown id is not an error.
func (s *Store) ResolveTask(id int64) bool {
	task := s.data.GetTask(id)
	if task == nil {
		return false
	}
	task.Resolved = true
	return true
}

// ClearTasks removes every task and returns how many were removed.
// Groups and projects are kept.
func (s *Store) ClearTasks() int {
	n := len(s.data.Tasks)
	s.data.Tasks = []Task{}
	return n
}

func (s *Store) read(prompt string) (string, error) {
	if s.input == nil {
		return "", fmt.Errorf("read %q: no input available", prompt)
	}
	line, err := s.input.ReadLine(prompt)
	if err != nil {
		return "", fmt.Errorf("read %q: %w", prompt, err)
	}
	return line, nil
}
