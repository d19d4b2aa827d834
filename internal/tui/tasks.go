package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkalinin/tasklight/pkg/client"
)

// noticeTTL is how long a transient error or status line stays visible.
const noticeTTL = 3 * time.Second

type tasksMode int

const (
	modeList tasksMode = iota
	modeAdd
	modeEdit
)

type todosLoadedMsg struct {
	todos []client.Todo
	err   error
}

type todoCreatedMsg struct {
	todo *client.Todo
	err  error
}

type todoUpdatedMsg struct {
	todo *client.Todo
	err  error
}

type todoDeletedMsg struct {
	id  string
	err error
}

// noticeExpiredMsg clears the transient notice. The generation guards
// against an old timer wiping a newer notice.
type noticeExpiredMsg struct {
	gen int
}

type tasksModel struct {
	client    *client.Client
	todos     []client.Todo
	cursor    int
	mode      tasksMode
	input     string
	editID    string
	notice    string
	noticeErr bool
	noticeGen int
	loading   bool
	height    int
}

func newTasksModel(c *client.Client) tasksModel {
	return tasksModel{client: c, height: 24}
}

func (m tasksModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		todos, err := c.ListTodos(context.Background())
		return todosLoadedMsg{todos: todos, err: err}
	}
}

func (m tasksModel) Update(msg tea.Msg) (tasksModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil

	case todosLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m.fail("load failed", msg.err)
		}
		m.todos = msg.todos
		m.clampCursor()
		return m, nil

	case todoCreatedMsg:
		if msg.err != nil {
			return m.fail("add failed", msg.err)
		}
		m.todos = append(m.todos, *msg.todo)
		m.cursor = len(m.todos) - 1
		return m, nil

	case todoUpdatedMsg:
		if msg.err != nil {
			return m.fail("update failed", msg.err)
		}
		for i := range m.todos {
			if m.todos[i].ID == msg.todo.ID {
				m.todos[i] = *msg.todo
				break
			}
		}
		return m, nil

	case todoDeletedMsg:
		if msg.err != nil {
			return m.fail("delete failed", msg.err)
		}
		kept := m.todos[:0]
		for _, t := range m.todos {
			if t.ID != msg.id {
				kept = append(kept, t)
			}
		}
		m.todos = kept
		m.clampCursor()
		return m, nil

	case noticeExpiredMsg:
		if msg.gen == m.noticeGen {
			m.notice = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m tasksModel) updateKeys(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	if m.mode != modeList {
		switch msg.String() {
		case "esc":
			m.mode = modeList
			m.input = ""
			return m, nil
		case "enter":
			return m.submitInput()
		default:
			m.input = editRune(m.input, msg.String())
			return m, nil
		}
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.todos)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g":
		m.cursor = 0
	case "G":
		m.cursor = len(m.todos) - 1
		m.clampCursor()
	case "a":
		m.mode = modeAdd
		m.input = ""
	case "e":
		if t, ok := m.current(); ok {
			m.mode = modeEdit
			m.editID = t.ID
			m.input = t.Text
		}
	case " ", "x":
		if t, ok := m.current(); ok {
			return m, m.toggle(t)
		}
	case "d":
		if t, ok := m.current(); ok {
			return m, m.delete(t.ID)
		}
	case "y":
		if t, ok := m.current(); ok {
			if err := clipboard.WriteAll(t.Text); err != nil {
				return m.fail("copy failed", err)
			}
			return m.status("copied!")
		}
	case "r":
		m.loading = true
		return m, m.load()
	}
	return m, nil
}

func (m tasksModel) submitInput() (tasksModel, tea.Cmd) {
	text := m.input
	mode := m.mode
	editID := m.editID
	m.mode = modeList
	m.input = ""
	m.editID = ""

	c := m.client
	if mode == modeAdd {
		return m, func() tea.Msg {
			todo, err := c.CreateTodo(context.Background(), text)
			return todoCreatedMsg{todo: todo, err: err}
		}
	}
	return m, func() tea.Msg {
		todo, err := c.UpdateTodo(context.Background(), editID, client.UpdateTodoRequest{Text: &text})
		return todoUpdatedMsg{todo: todo, err: err}
	}
}

func (m tasksModel) toggle(t client.Todo) tea.Cmd {
	c := m.client
	completed := !t.Completed
	id := t.ID
	return func() tea.Msg {
		todo, err := c.UpdateTodo(context.Background(), id, client.UpdateTodoRequest{Completed: &completed})
		return todoUpdatedMsg{todo: todo, err: err}
	}
}

func (m tasksModel) delete(id string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		err := c.DeleteTodo(context.Background(), id)
		return todoDeletedMsg{id: id, err: err}
	}
}

func (m tasksModel) fail(prefix string, err error) (tasksModel, tea.Cmd) {
	if client.IsUnauthenticated(err) {
		return m, func() tea.Msg { return sessionExpiredMsg{} }
	}
	m.notice = fmt.Sprintf("%s: %v", prefix, err)
	m.noticeErr = true
	m.noticeGen++
	return m, m.noticeTimer()
}

func (m tasksModel) status(text string) (tasksModel, tea.Cmd) {
	m.notice = text
	m.noticeErr = false
	m.noticeGen++
	return m, m.noticeTimer()
}

func (m tasksModel) noticeTimer() tea.Cmd {
	gen := m.noticeGen
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{gen: gen}
	})
}

func (m tasksModel) current() (client.Todo, bool) {
	if m.cursor < 0 || m.cursor >= len(m.todos) {
		return client.Todo{}, false
	}
	return m.todos[m.cursor], true
}

func (m *tasksModel) clampCursor() {
	if m.cursor >= len(m.todos) {
		m.cursor = len(m.todos) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m tasksModel) editing() bool {
	return m.mode != modeList
}

func (m tasksModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + titleStyle.Render("tasklight") + dimStyle.Render(fmt.Sprintf("  %d tasks", len(m.todos))) + "\n\n")

	switch {
	case m.loading:
		b.WriteString(" " + dimStyle.Render("loading...") + "\n")
	case len(m.todos) == 0 && m.mode != modeAdd:
		b.WriteString(" " + dimStyle.Render("nothing here yet. press a to add a task.") + "\n")
	default:
		for i, t := range m.todos {
			if m.mode == modeEdit && t.ID == m.editID {
				b.WriteString(" " + accentStyle.Render("> ") + normalStyle.Render(m.input) + accentStyle.Render("█") + "\n")
				continue
			}
			b.WriteString(renderTodoLine(t, i == m.cursor) + "\n")
		}
	}

	if m.mode == modeAdd {
		b.WriteString(" " + accentStyle.Render("+ ") + normalStyle.Render(m.input) + accentStyle.Render("█") + "\n")
	}

	b.WriteString("\n")
	if m.notice != "" {
		style := noticeStyle
		if m.noticeErr {
			style = errorStyle
		}
		b.WriteString(" " + style.Render(m.notice) + "\n")
	}

	if m.editing() {
		b.WriteString(helpLine("enter", "save", "esc", "cancel") + "\n")
	} else {
		b.WriteString(helpLine(
			"a", "add", "e", "edit", "space", "toggle", "d", "delete",
			"y", "yank", "r", "reload", "ctrl+l", "logout", "q", "quit",
		) + "\n")
	}
	return b.String()
}

func renderTodoLine(t client.Todo, selected bool) string {
	mark := "[ ]"
	if t.Completed {
		mark = "[x]"
	}

	text := t.Text
	style := normalStyle
	if t.Completed {
		style = doneStyle
	}

	prefix := "  "
	if selected {
		prefix = accentStyle.Render("> ")
		return " " + prefix + selectedStyle.Render(mark+" "+text)
	}
	return " " + prefix + dimStyle.Render(mark) + " " + style.Render(text)
}
