// Package ui provides optional terminal interfaces.
package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/nibzard/tasklist-go/internal/console"
	"github.com/nibzard/tasklist-go/internal/todo"
)

// ErrNotTTY is returned when the viewer is started without a terminal.
var ErrNotTTY = errors.New("tui requires a TTY")

// LoadFunc reads the current store contents. It must not modify the store.
type LoadFunc func() (*todo.Data, error)

// Filter selects which tasks the viewer shows.
type Filter string

const (
	FilterAll      Filter = ""
	FilterOpen     Filter = "open"
	FilterResolved Filter = "resolved"
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiModel)

// WithRefreshInterval sets how often the store is re-read.
func WithRefreshInterval(d time.Duration) TUIOption {
	return func(m *tuiModel) {
		if d > 0 {
			m.tickInterval = d
		}
	}
}

// WithStyles sets the styles used for the task listing.
func WithStyles(styles todo.Styles) TUIOption {
	return func(m *tuiModel) {
		m.styles = styles
	}
}

// RunTUI starts the read-only store viewer for storePath.
func RunTUI(ctx context.Context, storePath string, load LoadFunc, opts ...TUIOption) error {
	if !IsTTY(os.Stdout) {
		return ErrNotTTY
	}
	model := newTUIModel(storePath, load, opts...)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

type tuiModel struct {
	storePath    string
	load         LoadFunc
	styles       todo.Styles
	loadErr      error
	data         *todo.Data
	loadedAt     time.Time
	tickInterval time.Duration
	filter       Filter
	showHelp     bool
}

type tickMsg time.Time

type keyMap struct {
	Quit     key.Binding
	Refresh  key.Binding
	Help     key.Binding
	Open     key.Binding
	Resolved key.Binding
	All      key.Binding
}

func (k keyMap) bindings() []key.Binding {
	return []key.Binding{k.Quit, k.Refresh, k.Help, k.Open, k.Resolved, k.All}
}

var keys = keyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q, esc, ctrl+c", "Quit")),
	Refresh:  key.NewBinding(key.WithKeys("r", "f5"), key.WithHelp("r, F5", "Refresh now")),
	Help:     key.NewBinding(key.WithKeys("h", "?"), key.WithHelp("h, ?", "Toggle this help screen")),
	Open:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "Show open tasks")),
	Resolved: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "Show resolved tasks")),
	All:      key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "Show all tasks")),
}

func newTUIModel(storePath string, load LoadFunc, opts ...TUIOption) *tuiModel {
	m := &tuiModel{
		storePath:    storePath,
		load:         load,
		styles:       todo.PlainStyles(),
		tickInterval: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Refresh):
			m.refresh()
		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
		case key.Matches(msg, keys.Open):
			m.filter = FilterOpen
		case key.Matches(msg, keys.Resolved):
			m.filter = FilterResolved
		case key.Matches(msg, keys.All):
			m.filter = FilterAll
		}
		return m, nil
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}
	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	if m.filter != FilterAll {
		fmt.Fprintf(&b, "Filter: %s (0 to clear)\n\n", m.filter)
	}

	switch {
	case m.loadErr != nil:
		b.WriteString("Error loading store file:\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
	case m.data == nil:
		b.WriteString("Loading...\n\n")
	default:
		writeOverview(&b, m.data)
		writeTasks(&b, filterTasks(m.data, m.filter), m.styles)
		writeStore(&b, m.storePath, m.loadedAt)
	}

	writeFooter(&b, m.tickInterval)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *tuiModel) refresh() {
	if m.load == nil {
		m.loadErr = errors.New("no store loader")
		return
	}
	data, err := m.load()
	if err != nil {
		m.loadErr = err
		m.data = nil
		return
	}
	m.loadErr = nil
	m.data = data
	m.loadedAt = time.Now()
}

// filterTasks returns a copy of d holding only the tasks f selects. Groups
// are kept so empty blocks still render.
func filterTasks(d *todo.Data, f Filter) *todo.Data {
	if f == FilterAll {
		return d
	}
	out := &todo.Data{Groups: d.Groups, Projects: d.Projects}
	for _, t := range d.Tasks {
		if t.Resolved == (f == FilterResolved) {
			out.Tasks = append(out.Tasks, t)
		}
	}
	return out
}

func writeTitle(b *strings.Builder) {
	title := "tasklist"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeOverview(b *strings.Builder, d *todo.Data) {
	open, resolved := d.Counts()
	fmt.Fprintf(b, "  Open: %d  Resolved: %d  Groups: %d  Projects: %d\n\n",
		open, resolved, len(d.Groups), len(d.Projects))
}

func writeTasks(b *strings.Builder, d *todo.Data, styles todo.Styles) {
	if err := todo.ListTasks(b, d, todo.ListOptions{Styles: styles}); err != nil {
		fmt.Fprintf(b, "  %v\n", err)
	}
	b.WriteString("\n")
}

func writeStore(b *strings.Builder, path string, loadedAt time.Time) {
	fmt.Fprintf(b, "Store: %s", path)
	if !loadedAt.IsZero() {
		fmt.Fprintf(b, " (read %s)", humanize.Time(loadedAt))
	}
	b.WriteString("\n\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	for _, binding := range keys.bindings() {
		h := binding.Help()
		fmt.Fprintf(b, "  %-16s%s\n", h.Key, h.Desc)
	}
	b.WriteString("\n")
}

func writeFooter(b *strings.Builder, interval time.Duration) {
	fmt.Fprintf(b, "Press h for help | q to quit | Refreshing every %s\n", interval)
}

// IsTTY returns true if f is a terminal.
func IsTTY(f *os.File) bool {
	return console.IsTerminal(f)
}
