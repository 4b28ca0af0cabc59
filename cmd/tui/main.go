package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"flow-chat/frontend/internal/app"
	"flow-chat/frontend/internal/config"
	"flow-chat/frontend/internal/tui"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		return 1
	}

	// The terminal belongs to the UI; logs go next to the database.
	var logOut io.Writer = io.Discard
	if f, err := os.OpenFile(filepath.Join(filepath.Dir(cfg.DatabasePath), "tui.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600); err == nil {
		defer f.Close()
		logOut = f
	}
	app.SetupLogger(logOut, cfg.LogLevel)

	a, err := app.NewApp(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to start:", err)
		return 1
	}
	defer a.Close()

	if _, err := tea.NewProgram(tui.New(a.Chat, a.Auth), tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "terminal client failed:", err)
		return 1
	}
	return 0
}
