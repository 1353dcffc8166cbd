package tui

import (
	"log/slog"

	"cardlist/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

type Options struct {
	// Theme is one of: auto|light|dark
	Theme  string
	Logger *slog.Logger
}

// Run starts the interactive card list and blocks until the user quits.
func Run(list *model.CardList, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference(opts.Theme)

	m := newAppModel(list, opts.Logger)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
