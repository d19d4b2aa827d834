package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkalinin/tasklight/pkg/client"
)

// signupDoneMsg carries the result of a signup attempt. The credentials
// ride along so the app can log straight in afterwards.
type signupDoneMsg struct {
	email    string
	password string
	err      error
}

type signupModel struct {
	client    *client.Client
	fields    [numCredFields]string
	focus     credField
	submitted bool
	notice    string
}

func newSignupModel(c *client.Client) signupModel {
	return signupModel{client: c}
}

func (m signupModel) Update(msg tea.KeyMsg) (signupModel, tea.Cmd) {
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

func (m signupModel) submit() (signupModel, tea.Cmd) {
	if m.submitted {
		return m, nil
	}
	email := strings.TrimSpace(m.fields[fieldEmail])
	password := m.fields[fieldPassword]
	m.submitted = true

	c := m.client
	return m, func() tea.Msg {
		err := c.Signup(context.Background(), email, password)
		return signupDoneMsg{email: email, password: password, err: err}
	}
}

func (m signupModel) reset() signupModel {
	m.fields = [numCredFields]string{}
	m.focus = fieldEmail
	m.submitted = false
	m.notice = ""
	return m
}

func (m signupModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + titleStyle.Render("tasklight") + dimStyle.Render("  create account") + "\n\n")
	b.WriteString(renderField("email", m.fields[fieldEmail], "you@example.com", m.focus == fieldEmail) + "\n")
	b.WriteString(renderField("password", maskPassword(m.fields[fieldPassword]), "password", m.focus == fieldPassword) + "\n\n")
	switch {
	case m.submitted:
		b.WriteString(" " + dimStyle.Render("creating account...") + "\n")
	case m.notice != "":
		b.WriteString(" " + errorStyle.Render(m.notice) + "\n")
	}
	b.WriteString("\n" + helpLine("enter", "submit", "tab", "next field", "ctrl+s", "sign in", "ctrl+c", "quit") + "\n")
	return b.String()
}
