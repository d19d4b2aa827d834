package tui

import (
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkalinin/tasklight/pkg/client"
	"github.com/mkalinin/tasklight/pkg/session"
)

func newTestApp(t *testing.T) App {
	t.Helper()
	store := session.NewStoreAt(filepath.Join(t.TempDir(), "token"))
	return NewApp(client.New("http://localhost:0", ""), store, nil)
}

func update(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	model, cmd := a.Update(msg)
	app, ok := model.(App)
	if !ok {
		t.Fatalf("expected App model, got %T", model)
	}
	return app, cmd
}

func TestApp_StartsAtLogin(t *testing.T) {
	a := newTestApp(t)
	if a.view != viewLogin {
		t.Errorf("expected login view, got %d", a.view)
	}
}

func TestApp_StartsAtTasksWhenAuthenticated(t *testing.T) {
	store := session.NewStoreAt(filepath.Join(t.TempDir(), "token"))
	if err := store.Login("token-abc"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	a := NewApp(client.New("http://localhost:0", "token-abc"), store, nil)
	if a.view != viewTasks {
		t.Errorf("expected tasks view, got %d", a.view)
	}
}

func TestApp_TogglesSignupView(t *testing.T) {
	a := newTestApp(t)

	a, _ = update(t, a, keyMsg("ctrl+s"))
	if a.view != viewSignup {
		t.Fatalf("expected signup view, got %d", a.view)
	}

	a, _ = update(t, a, keyMsg("ctrl+s"))
	if a.view != viewLogin {
		t.Errorf("expected login view, got %d", a.view)
	}
}

func TestApp_LoginSuccessSwitchesToTasks(t *testing.T) {
	a := newTestApp(t)

	a, cmd := update(t, a, loginDoneMsg{token: "token-abc"})

	if a.view != viewTasks {
		t.Fatalf("expected tasks view, got %d", a.view)
	}
	if cmd == nil {
		t.Error("expected load command")
	}
	if !a.store.Authenticated() {
		t.Error("expected token persisted")
	}
	token, _ := a.store.Token()
	if token != "token-abc" {
		t.Errorf("expected persisted token, got %q", token)
	}
}

func TestApp_LoginFailureShowsNotice(t *testing.T) {
	a := newTestApp(t)

	httpErr := &client.HTTPError{StatusCode: 401, Code: "INVALID_CREDENTIALS", Message: "invalid email or password"}
	a, _ = update(t, a, loginDoneMsg{err: httpErr})

	if a.view != viewLogin {
		t.Errorf("expected to stay on login view, got %d", a.view)
	}
	if a.login.notice != "invalid email or password" {
		t.Errorf("expected envelope message as notice, got %q", a.login.notice)
	}
}

func TestApp_SignupSuccessLogsIn(t *testing.T) {
	a := newTestApp(t)
	a.view = viewSignup

	a, cmd := update(t, a, signupDoneMsg{email: "alice@example.com", password: "password123"})

	if a.view != viewLogin {
		t.Fatalf("expected login view while auto-login runs, got %d", a.view)
	}
	if !a.login.submitted {
		t.Error("expected auto-login submission")
	}
	if cmd == nil {
		t.Error("expected login command")
	}
}

func TestApp_SessionExpiredLogsOut(t *testing.T) {
	a := newTestApp(t)
	a, _ = update(t, a, loginDoneMsg{token: "token-abc"})

	a, _ = update(t, a, sessionExpiredMsg{})

	if a.view != viewLogin {
		t.Fatalf("expected login view after expiry, got %d", a.view)
	}
	if a.store.Authenticated() {
		t.Error("expected stored token discarded")
	}
	if a.login.notice == "" {
		t.Error("expected expiry notice")
	}
}

func TestApp_TransportErrorDoesNotLogOut(t *testing.T) {
	a := newTestApp(t)
	a, _ = update(t, a, loginDoneMsg{token: "token-abc"})

	a, _ = update(t, a, todosLoadedMsg{err: errors.New("connection refused")})

	if a.view != viewTasks {
		t.Errorf("expected to stay on tasks view, got %d", a.view)
	}
	if !a.store.Authenticated() {
		t.Error("expected session to survive a transport error")
	}
}

func TestApp_ExternalLogoutSwitchesView(t *testing.T) {
	a := newTestApp(t)
	a, _ = update(t, a, loginDoneMsg{token: "token-abc"})

	a, _ = update(t, a, sessionEventMsg{Authenticated: false})

	if a.view != viewLogin {
		t.Errorf("expected login view after external logout, got %d", a.view)
	}
}
