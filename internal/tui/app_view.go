package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	w := m.contentWidth()

	var b strings.Builder
	b.WriteString(styleTitle().Render(fmt.Sprintf("Cards (%d)", m.list.Len())))
	b.WriteString("\n\n")
	b.WriteString(m.renderAddRow(w))
	b.WriteString("\n\n")
	b.WriteString(m.renderRows(w))
	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	base := b.String()

	var modal string
	switch m.modal() {
	case modalConfirmDelete:
		modal = m.renderDeleteModal()
	case modalEditItem:
		modal = m.renderEditModal()
	default:
		return base
	}
	if m.width <= 0 || m.height <= 0 {
		return base + "\n\n" + modal
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal,
		lipgloss.WithWhitespaceChars(" "))
}

func (m appModel) renderAddRow(w int) string {
	if m.focus == focusAdd {
		return renderInputLine(w, m.addInput.View())
	}
	return styleMuted().Render(fitLine("+ add a card (a)", w))
}

func (m appModel) renderRows(w int) string {
	n := m.list.Len()
	if n == 0 {
		return styleMuted().Render("No cards yet.")
	}

	start, end := 0, n
	if rows := m.listRows(); rows > 0 && n > rows {
		start = m.offset
		end = start + rows
		if end > n {
			end = n
		}
	}

	items := m.list.Items()
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		text := items[i]
		if text == "" {
			text = styleMuted().Render("(empty)")
		}
		line := fitLine(fmt.Sprintf(" %3d  %s", i+1, text), w)
		if i == m.cursor && m.focus == focusList {
			line = styleSelectedRow().Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
