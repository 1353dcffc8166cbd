package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		w := modalBodyWidth(msg.Width) - 4
		if w < 10 {
			w = 10
		}
		m.editInput.Width = w
		m.addInput.Width = msg.Width - 6
		if m.addInput.Width < 10 {
			m.addInput.Width = 10
		}
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		switch m.modal() {
		case modalConfirmDelete:
			return m.updateConfirmDelete(msg)
		case modalEditItem:
			return m.updateEditItem(msg)
		}
		if m.focus == focusAdd {
			return m.updateAddInput(msg)
		}
		return m.updateList(msg)
	}

	// Cursor blink and other input internals.
	var cmd tea.Cmd
	switch {
	case m.modal() == modalEditItem:
		m.editInput, cmd = m.editInput.Update(msg)
	case m.focus == focusAdd:
		m.addInput, cmd = m.addInput.Update(msg)
	}
	return m, cmd
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.cursor--
		m.clampCursor()
	case key.Matches(msg, m.keys.Down):
		m.cursor++
		m.clampCursor()
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		m.clampCursor()
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = m.list.Len() - 1
		m.clampCursor()
	case key.Matches(msg, m.keys.Add):
		m.focus = focusAdd
		return m, m.addInput.Focus()
	case key.Matches(msg, m.keys.Edit):
		// With no items, enter goes to the add row instead.
		if m.list.Len() == 0 {
			m.focus = focusAdd
			return m, m.addInput.Focus()
		}
		m.list.RequestEdit(m.cursor)
		text, _ := m.list.PendingEditText()
		m.editInput.SetValue(text)
		m.editInput.CursorEnd()
		return m, m.editInput.Focus()
	case key.Matches(msg, m.keys.Delete):
		if m.list.Len() == 0 {
			return m, nil
		}
		m.list.RequestDelete(m.cursor)
		m.confirmFocus = confirmFocusConfirm
	}
	return m, nil
}

func (m appModel) updateAddInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.addInput.Reset()
		m.addInput.Blur()
		m.focus = focusList
		return m, nil
	case "enter":
		m.logger.Debug("add card", "len", m.list.Len())
		m.list.Add(m.addInput.Value())
		m.addInput.Reset()
		m.cursor = m.list.Len() - 1
		m.clampCursor()
		return m, nil
	}
	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	return m, cmd
}

func (m appModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.list.ResolveDelete(false)
		return m, tea.Quit
	case "tab", "shift+tab", "left", "right", "h", "l":
		m.confirmFocus = m.confirmFocus.toggle()
	case "enter":
		m.logger.Debug("resolve delete", "pending", m.list.PendingDelete(), "confirmed", m.confirmFocus == confirmFocusConfirm)
		m.list.ResolveDelete(m.confirmFocus == confirmFocusConfirm)
		m.clampCursor()
	case "y", "Y":
		m.list.ResolveDelete(true)
		m.clampCursor()
	case "n", "N", "esc", "ctrl+g", "q":
		m.list.ResolveDelete(false)
	}
	return m, nil
}

func (m appModel) updateEditItem(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.list.ResolveEdit(nil)
		return m, tea.Quit
	case "esc", "ctrl+g":
		m.list.ResolveEdit(nil)
		m.editInput.Reset()
		m.editInput.Blur()
		return m, nil
	case "enter":
		text := m.editInput.Value()
		m.list.ResolveEdit(&text)
		m.editInput.Reset()
		m.editInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return m, cmd
}
