// Package session stores the bearer token on disk so separate client
// processes share one login. The store is the single source of truth:
// logging out in one instance is observed by every watcher.
package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	tokenFileMode = 0o600
	dirMode       = 0o700

	// DefaultWatchInterval is how often Watch polls the token file.
	DefaultWatchInterval = 2 * time.Second
)

// Event describes a change in session state observed by Watch.
type Event struct {
	Authenticated bool
}

// Store persists the bearer token in a single file.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore places the token file under the user config directory
// (e.g. ~/.config/tasklight/token).
func NewStore() (*Store, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("session: resolve config dir: %w", err)
	}
	return NewStoreAt(filepath.Join(configDir, "tasklight", "token")), nil
}

// NewStoreAt uses an explicit token file path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Login persists the token, replacing any previous one.
func (s *Store) Login(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), dirMode); err != nil {
		return fmt.Errorf("session: create config dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), tokenFileMode); err != nil {
		return fmt.Errorf("session: write token: %w", err)
	}
	return nil
}

// Logout discards the stored token. Logging out when not logged in is
// not an error.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session: remove token: %w", err)
	}
	return nil
}

// Token returns the stored token, or "" when not logged in.
func (s *Store) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readToken()
}

// Authenticated reports whether a token is currently stored. It says
// nothing about the token's validity; the server decides that.
func (s *Store) Authenticated() bool {
	token, err := s.Token()
	return err == nil && token != ""
}

// Watch polls the token file and emits an Event whenever the
// authenticated state flips. The channel closes when ctx is done.
// An interval of 0 uses DefaultWatchInterval.
func (s *Store) Watch(ctx context.Context, interval time.Duration) <-chan Event {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}

	events := make(chan Event, 1)
	last := s.Authenticated()

	go func() {
		defer close(events)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				current := s.Authenticated()
				if current == last {
					continue
				}
				last = current
				select {
				case events <- Event{Authenticated: current}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events
}

func (s *Store) readToken() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session: read token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
