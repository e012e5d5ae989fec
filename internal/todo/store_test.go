package todo

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

// scriptedInput answers prompts from a fixed list of lines.
type scriptedInput struct {
	lines   []string
	prompts []string
	err     error
}

func (s *scriptedInput) ReadLine(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	if len(s.lines) == 0 {
		return "", nil
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func TestAddTaskPromptsInOrder(t *testing.T) {
	input := &scriptedInput{lines: []string{"Buy milk", "", "home"}}
	store := NewStore(NewData(), input)

	task, err := store.AddTask()
	if err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}

	wantPrompts := []string{PromptTaskContent, PromptTaskProject, PromptTaskGroup}
	if !reflect.DeepEqual(input.prompts, wantPrompts) {
		t.Errorf("prompts: got %q, want %q", input.prompts, wantPrompts)
	}
	want := Task{ID: 0, Content: "Buy milk", Project: "", Group: "home"}
	if task != want {
		t.Errorf("task: got %+v, want %+v", task, want)
	}
	if task.Resolved {
		t.Error("new task should be open")
	}
}

func TestAddTaskMonotonicIDs(t *testing.T) {
	store := NewStore(nil, &scriptedInput{})
	const n = 5
	for i := 0; i < n; i++ {
		if _, err := store.AddTask(); err != nil {
			t.Fatalf("AddTask() #%d error = %v", i, err)
		}
	}

	tasks := store.Data().Tasks
	if len(tasks) != n {
		t.Fatalf("Tasks count: got %d, want %d", len(tasks), n)
	}
	for i, task := range tasks {
		if task.ID != int64(i) {
			t.Errorf("Tasks[%d].ID: got %d, want %d", i, task.ID, i)
		}
	}
}

func TestAddTaskGroupSetSemantics(t *testing.T) {
	store := NewStore(NewData(), nil)
	for _, group := range []string{"work", "home", "work", "", "home"} {
		if _, err := store.Append("x", "", group); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	want := []string{"work", "home"}
	if got := store.Data().Groups; !reflect.DeepEqual(got, want) {
		t.Errorf("Groups: got %v, want %v", got, want)
	}
}

func TestAddTaskOverflow(t *testing.T) {
	data := NewData()
	data.Tasks = append(data.Tasks, Task{ID: math.MaxInt64, Content: "last"})
	store := NewStore(data, &scriptedInput{lines: []string{"one more", "", "new-group"}})

	_, err := store.AddTask()
	if !errors.Is(err, ErrIDOverflow) {
		t.Fatalf("AddTask() error = %v, want ErrIDOverflow", err)
	}
	if len(data.Tasks) != 1 {
		t.Errorf("Tasks count: got %d, want 1", len(data.Tasks))
	}
	if len(data.Groups) != 0 {
		t.Errorf("Groups: got %v, want none", data.Groups)
	}
}

func TestAddTaskInputError(t *testing.T) {
	readErr := errors.New("terminal gone")
	store := NewStore(NewData(), &scriptedInput{err: readErr})

	if _, err := store.AddTask(); !errors.Is(err, readErr) {
		t.Fatalf("AddTask() error = %v, want %v", err, readErr)
	}
	if len(store.Data().Tasks) != 0 {
		t.Error("failed AddTask should not append")
	}

	if _, err := NewStore(NewData(), nil).AddProject(); err == nil {
		t.Error("AddProject() without input should fail")
	}
}

func TestAddProject(t *testing.T) {
	input := &scriptedInput{lines: []string{"Core", "core", "Core platform", "Core", "core", ""}}
	store := NewStore(NewData(), input)

	for i := 0; i < 2; i++ {
		if _, err := store.AddProject(); err != nil {
			t.Fatalf("AddProject() error = %v", err)
		}
	}

	projects := store.Data().Projects
	if len(projects) != 2 {
		t.Fatalf("Projects count: got %d, want 2 (duplicates allowed)", len(projects))
	}
	want := Project{Name: "Core", Tag: "core", Description: "Core platform"}
	if projects[0] != want {
		t.Errorf("Projects[0]: got %+v, want %+v", projects[0], want)
	}
	wantPrompts := []string{PromptProjectName, PromptProjectTag, PromptProjectDescription}
	if !reflect.DeepEqual(input.prompts[:3], wantPrompts) {
		t.Errorf("prompts: got %q, want %q", input.prompts[:3], wantPrompts)
	}
	if len(store.Data().Tasks) != 0 || len(store.Data().Groups) != 0 {
		t.Error("AddProject should only touch projects")
	}
}

func TestResolveTask(t *testing.T) {
	newStore := func() *Store {
		return NewStore(&Data{
			Tasks: []Task{
				{ID: 0, Content: "a"},
				{ID: 1, Content: "b"},
				{ID: 1, Content: "duplicate id"},
			},
		}, nil)
	}

	t.Run("resolves first match only", func(t *testing.T) {
		store := newStore()
		if !store.ResolveTask(1) {
			t.Fatal("ResolveTask(1) reported no match")
		}
		tasks := store.Data().Tasks
		if !tasks[1].Resolved {
			t.Error("Tasks[1] should be resolved")
		}
		if tasks[2].Resolved || tasks[0].Resolved {
			t.Error("only the first matching task should be resolved")
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		once := newStore()
		once.ResolveTask(0)
		twice := newStore()
		twice.ResolveTask(0)
		twice.ResolveTask(0)
		if !reflect.DeepEqual(once.Data(), twice.Data()) {
			t.Errorf("resolve twice: got %+v, want %+v", twice.Data(), once.Data())
		}
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		store := newStore()
		before := newStore().Data()
		if store.ResolveTask(42) {
			t.Error("ResolveTask(42) reported a match")
		}
		if !reflect.DeepEqual(store.Data(), before) {
			t.Error("unknown id should not mutate the store")
		}
	})
}

func TestClearTasks(t *testing.T) {
	store := NewStore(NewData(), nil)
	store.Append("a", "core", "work")
	store.Append("b", "", "home")
	store.Data().Projects = append(store.Data().Projects, Project{Name: "Core", Tag: "core"})

	if n := store.ClearTasks(); n != 2 {
		t.Errorf("ClearTasks(): got %d, want 2", n)
	}
	d := store.Data()
	if len(d.Tasks) != 0 || d.Tasks == nil {
		t.Errorf("Tasks: got %v, want empty non-nil", d.Tasks)
	}
	if !reflect.DeepEqual(d.Groups, []string{"work", "home"}) {
		t.Errorf("Groups changed: %v", d.Groups)
	}
	if len(d.Projects) != 1 {
		t.Errorf("Projects changed: %v", d.Projects)
	}

	// Ids restart once the list is empty.
	task, err := store.Append("c", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if task.ID != 0 {
		t.Errorf("ID after clear: got %d, want 0", task.ID)
	}
}
