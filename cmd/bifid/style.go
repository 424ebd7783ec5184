package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmccarv/bifid"
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	headStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	resultStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))
)

func renderTable(t *bifid.Table) string {
	return boxStyle.Render(t.String())
}

// renderTrace shows the letters and coordinates going into and coming out of
// the transform for one message.
func renderTrace(lno int, tr bifid.Trace) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		headStyle.Render(fmt.Sprintf("line %d, %s", lno, tr.Mode)),
		"in:",
		bifid.RenderAnnotated(tr.Input, "LRC"),
		"re-ordered:",
		bifid.RenderAnnotated(tr.Output, "RCL"),
		resultStyle.Render(tr.Result()),
	)
}
