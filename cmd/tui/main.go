package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/mkalinin/tasklight/internal/common/config"
	"github.com/mkalinin/tasklight/internal/tui"
	"github.com/mkalinin/tasklight/pkg/client"
	"github.com/mkalinin/tasklight/pkg/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg := config.LoadClientConfig()

	store, err := session.NewStore()
	if err != nil {
		return err
	}
	token, err := store.Token()
	if err != nil {
		return err
	}

	c := client.New(cfg.ServerURL, token)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := store.Watch(ctx, session.DefaultWatchInterval)

	app := tui.NewApp(c, store, events)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
