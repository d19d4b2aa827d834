package session_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/mkalinin/tasklight/pkg/session"
)

func newTestStore(t *testing.T) *session.Store {
	t.Helper()
	return session.NewStoreAt(filepath.Join(t.TempDir(), "token"))
}

func TestStore_LoginAndToken(t *testing.T) {
	store := newTestStore(t)

	if store.Authenticated() {
		t.Fatal("expected fresh store to be unauthenticated")
	}

	if err := store.Login("token-abc"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	token, err := store.Token()
	if err != nil {
		t.Fatalf("token read failed: %v", err)
	}
	if token != "token-abc" {
		t.Errorf("expected token-abc, got %q", token)
	}
	if !store.Authenticated() {
		t.Error("expected store to be authenticated")
	}
}

func TestStore_LoginReplacesToken(t *testing.T) {
	store := newTestStore(t)

	if err := store.Login("first"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := store.Login("second"); err != nil {
		t.Fatalf("second login failed: %v", err)
	}

	token, _ := store.Token()
	if token != "second" {
		t.Errorf("expected second token, got %q", token)
	}
}

func TestStore_Logout(t *testing.T) {
	store := newTestStore(t)

	if err := store.Login("token-abc"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := store.Logout(); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	if store.Authenticated() {
		t.Error("expected store to be unauthenticated after logout")
	}
	token, err := store.Token()
	if err != nil {
		t.Fatalf("token read failed: %v", err)
	}
	if token != "" {
		t.Errorf("expected empty token, got %q", token)
	}
}

func TestStore_LogoutWhenNotLoggedIn(t *testing.T) {
	store := newTestStore(t)

	if err := store.Logout(); err != nil {
		t.Fatalf("expected logout of empty store to succeed, got %v", err)
	}
}

func TestStore_SharedAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	first := session.NewStoreAt(path)
	second := session.NewStoreAt(path)

	if err := first.Login("shared-token"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	token, err := second.Token()
	if err != nil {
		t.Fatalf("token read failed: %v", err)
	}
	if token != "shared-token" {
		t.Errorf("expected shared token, got %q", token)
	}
}

func TestStore_WatchObservesLogout(t *testing.T) {
	store := newTestStore(t)
	if err := store.Login("token-abc"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events := store.Watch(ctx, 10*time.Millisecond)

	if err := store.Logout(); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	select {
	case ev := <-events:
		if ev.Authenticated {
			t.Error("expected logout event")
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for logout event")
	}
}

func TestStore_WatchObservesLogin(t *testing.T) {
	store := newTestStore(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events := store.Watch(ctx, 10*time.Millisecond)

	if err := store.Login("token-abc"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	select {
	case ev := <-events:
		if !ev.Authenticated {
			t.Error("expected login event")
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for login event")
	}
}

func TestStore_WatchClosesOnCancel(t *testing.T) {
	store := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	events := store.Watch(ctx, 10*time.Millisecond)
	cancel()

	select {
	case _, open := <-events:
		if open {
			t.Error("expected closed channel after cancel")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}
