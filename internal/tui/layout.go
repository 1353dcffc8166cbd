package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	modalMaxWidth = 72
	modalMinWidth = 30
)

// modalWidth is the outer width of a modal for a terminal of width w.
func modalWidth(w int) int {
	if w <= 0 {
		w = 80
	}
	mw := w - 4
	if mw > modalMaxWidth {
		mw = modalMaxWidth
	}
	if mw < modalMinWidth {
		mw = modalMinWidth
	}
	return mw
}

// modalBodyWidth is the usable text width inside a modal (outer width minus padding).
func modalBodyWidth(w int) int {
	return modalWidth(w) - 4
}

func renderModalBox(width int, title string, content string) string {
	mw := modalWidth(width)
	header := lipgloss.NewStyle().
		Width(mw).
		Padding(0, 2).
		Bold(true).
		Foreground(colorSurfaceFg).
		Background(colorControlBg).
		Render(title)
	body := lipgloss.NewStyle().
		Width(mw).
		Padding(1, 2).
		Foreground(colorSurfaceFg).
		Background(colorSurfaceBg).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// fitLine truncates s (ANSI-aware) to width and pads it to exactly width columns.
func fitLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = lineBreaks.Replace(s)
	if xansi.StringWidth(s) > width {
		s = xansi.Truncate(s, width, "…")
	}
	if w := xansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// renderInputLine draws a text input view as one row of exactly bodyW columns on the
// input background, with a one-column margin either side.
func renderInputLine(bodyW int, inputView string) string {
	bodyW = max(bodyW, 10)
	return lipgloss.NewStyle().
		Background(colorInputBg).
		Render(" " + fitLine(inputView, bodyW-2) + " ")
}
