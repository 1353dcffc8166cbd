package tui

import (
	"fmt"
	"strings"
)

func (m appModel) renderEditModal() string {
	initial, _ := m.list.PendingEditText()
	bodyW := modalBodyWidth(m.width)
	title := fmt.Sprintf("Editing item: %q", initial)
	title = fitLine(title, bodyW)

	content := strings.Join([]string{
		renderInputLine(bodyW, m.editInput.View()),
		"",
		styleMuted().Width(bodyW).Render("enter: submit   esc: cancel"),
	}, "\n")
	return renderModalBox(m.width, strings.TrimRight(title, " "), content)
}
