package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkalinin/tasklight/pkg/client"
)

type credField int

const (
	fieldEmail credField = iota
	fieldPassword
	numCredFields
)

// loginDoneMsg carries the result of a login attempt.
type loginDoneMsg struct {
	token string
	err   error
}

type loginModel struct {
	client    *client.Client
	fields    [numCredFields]string
	focus     credField
	submitted bool
	notice    string
}

func newLoginModel(c *client.Client) loginModel {
	return loginModel{client: c}
}

func (m loginModel) Update(msg tea.KeyMsg) (loginModel, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.focus = (m.focus + 1) % numCredFields
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numCredFields) % numCredFields
	case "enter":
		if m.focus == fieldEmail {
			m.focus = fieldPassword
			return m, nil
		}
		return m.submit()
	default:
		m.notice = ""
		f := &m.fields[m.focus]
		*f = editRune(*f, msg.String())
	}
	return m, nil
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	if m.submitted {
		return m, nil
	}
	email := strings.TrimSpace(m.fields[fieldEmail])
	password := m.fields[fieldPassword]
	m.submitted = true

	c := m.client
	return m, func() tea.Msg {
		token, err := c.Login(context.Background(), email, password)
		return loginDoneMsg{token: token, err: err}
	}
}

func (m loginModel) reset() loginModel {
	m.fields = [numCredFields]string{}
	m.focus = fieldEmail
	m.submitted = false
	m.notice = ""
	return m
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + titleStyle.Render("tasklight") + dimStyle.Render("  sign in") + "\n\n")
	b.WriteString(renderField("email", m.fields[fieldEmail], "you@example.com", m.focus == fieldEmail) + "\n")
	b.WriteString(renderField("password", maskPassword(m.fields[fieldPassword]), "password", m.focus == fieldPassword) + "\n\n")
	switch {
	case m.submitted:
		b.WriteString(" " + dimStyle.Render("signing in...") + "\n")
	case m.notice != "":
		b.WriteString(" " + errorStyle.Render(m.notice) + "\n")
	}
	b.WriteString("\n" + helpLine("enter", "submit", "tab", "next field", "ctrl+s", "sign up", "ctrl+c", "quit") + "\n")
	return b.String()
}
