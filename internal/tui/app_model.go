package tui

import (
	"io"
	"log/slog"

	"cardlist/internal/model"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type appModel struct {
	list   *model.CardList
	logger *slog.Logger

	width  int
	height int

	keys keyMap
	help help.Model

	focus  focus
	cursor int
	// offset is the first visible row when the list is taller than the screen.
	offset int

	addInput  textinput.Model
	editInput textinput.Model

	confirmFocus confirmModalFocus
}

func newAppModel(list *model.CardList, logger *slog.Logger) appModel {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	add := textinput.New()
	add.Prompt = "+ "
	add.Placeholder = "New card"
	add.CharLimit = 0

	edit := textinput.New()
	edit.Prompt = ""
	edit.CharLimit = 0

	return appModel{
		list:      list,
		logger:    logger,
		keys:      defaultKeyMap(),
		help:      help.New(),
		focus:     focusList,
		addInput:  add,
		editInput: edit,
	}
}

func (m appModel) Init() tea.Cmd { return nil }

// modal reports which dialog is open. The card list owns the dialog flags;
// the TUI only renders them.
func (m appModel) modal() modalKind {
	switch {
	case m.list.DeleteDialogOpen():
		return modalConfirmDelete
	case m.list.EditDialogOpen():
		return modalEditItem
	default:
		return modalNone
	}
}

func (m *appModel) clampCursor() {
	n := m.list.Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	rows := m.listRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if rows > 0 && m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// listRows is how many item rows fit between the header/add row and the footer.
func (m appModel) listRows() int {
	if m.height <= 0 {
		return 0
	}
	// title, blank, add row, blank ... blank, help
	rows := m.height - 6
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m appModel) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}
