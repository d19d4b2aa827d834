package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkalinin/tasklight/pkg/client"
	"github.com/mkalinin/tasklight/pkg/session"
)

type view int

const (
	viewLogin view = iota
	viewSignup
	viewTasks
)

// sessionExpiredMsg is raised when the server rejects the stored token.
type sessionExpiredMsg struct{}

// sessionEventMsg wraps a session.Event observed from another client
// instance via the shared token file.
type sessionEventMsg session.Event

// App is the root Bubbletea model.
type App struct {
	client  *client.Client
	store   *session.Store
	events  <-chan session.Event
	view    view
	login   loginModel
	signup  signupModel
	tasks   tasksModel
	width   int
	height  int
}

// NewApp creates the TUI application. events may be nil when session
// watching is disabled.
func NewApp(c *client.Client, store *session.Store, events <-chan session.Event) App {
	a := App{
		client: c,
		store:  store,
		events: events,
		login:  newLoginModel(c),
		signup: newSignupModel(c),
		tasks:  newTasksModel(c),
	}
	if store.Authenticated() {
		a.view = viewTasks
		a.tasks.loading = true
	}
	return a
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.waitForSessionEvent()}
	if a.view == viewTasks {
		cmds = append(cmds, a.tasks.load())
	}
	return tea.Batch(cmds...)
}

// waitForSessionEvent blocks on the watch channel and re-arms itself
// after each event.
func (a App) waitForSessionEvent() tea.Cmd {
	if a.events == nil {
		return nil
	}
	ch := a.events
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return sessionEventMsg(ev)
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.tasks, _ = a.tasks.Update(msg)
		return a, nil

	case loginDoneMsg:
		a.login.submitted = false
		if msg.err != nil {
			a.login.notice = errorMessage(msg.err)
			return a, nil
		}
		a.client.SetToken(msg.token)
		a.view = viewTasks
		a.tasks = newTasksModel(a.client)
		a.tasks.loading = true
		var saveCmd tea.Cmd
		if err := a.store.Login(msg.token); err != nil {
			// Session survives in memory even if the file write failed.
			a.tasks, saveCmd = a.tasks.status("session not saved: " + err.Error())
		}
		return a, tea.Batch(a.tasks.load(), saveCmd)

	case signupDoneMsg:
		a.signup.submitted = false
		if msg.err != nil {
			a.signup.notice = errorMessage(msg.err)
			return a, nil
		}
		// Account created; log in with the same credentials.
		a.view = viewLogin
		a.login = a.login.reset()
		a.login.fields[fieldEmail] = msg.email
		a.login.fields[fieldPassword] = msg.password
		var cmd tea.Cmd
		a.login, cmd = a.login.submit()
		return a, cmd

	case sessionExpiredMsg:
		return a.logout("session expired, sign in again")

	case sessionEventMsg:
		rearm := a.waitForSessionEvent()
		if !msg.Authenticated {
			if a.view == viewTasks {
				a.client.SetToken("")
				a.view = viewLogin
				a.login = a.login.reset()
			}
			return a, rearm
		}
		// Another instance logged in; adopt its token.
		if token, err := a.store.Token(); err == nil && token != "" {
			a.client.SetToken(token)
			a.view = viewTasks
			a.tasks = newTasksModel(a.client)
			a.tasks.loading = true
			return a, tea.Batch(rearm, a.tasks.load())
		}
		return a, rearm

	case tea.KeyMsg:
		return a.updateKeys(msg)
	}

	if a.view == viewTasks {
		var cmd tea.Cmd
		a.tasks, cmd = a.tasks.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.view {
	case viewLogin:
		if msg.String() == "ctrl+s" {
			a.view = viewSignup
			a.signup = a.signup.reset()
			return a, nil
		}
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd

	case viewSignup:
		if msg.String() == "ctrl+s" {
			a.view = viewLogin
			a.login = a.login.reset()
			return a, nil
		}
		var cmd tea.Cmd
		a.signup, cmd = a.signup.Update(msg)
		return a, cmd

	default:
		if !a.tasks.editing() {
			switch msg.String() {
			case "q":
				return a, tea.Quit
			case "ctrl+l":
				return a.logout("")
			}
		}
		var cmd tea.Cmd
		a.tasks, cmd = a.tasks.Update(msg)
		return a, cmd
	}
}

func (a App) logout(notice string) (tea.Model, tea.Cmd) {
	_ = a.store.Logout()
	a.client.SetToken("")
	a.view = viewLogin
	a.login = a.login.reset()
	a.login.notice = notice
	a.tasks = newTasksModel(a.client)
	return a, nil
}

// errorMessage prefers the server's envelope message over the wrapped
// transport error chain.
func errorMessage(err error) string {
	var httpErr *client.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Message
	}
	return err.Error()
}

func (a App) View() string {
	switch a.view {
	case viewLogin:
		return a.login.View()
	case viewSignup:
		return a.signup.View()
	default:
		return a.tasks.View()
	}
}
