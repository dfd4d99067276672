package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current model state
func (m *Model) View() string {
	switch m.uiState {
	case StateDashboard:
		return m.viewDashboard()
	case StateBalancers:
		return m.viewBalancers()
	case StateConfigs:
		return m.viewConfigs()
	case StateConfigEditor:
		return m.viewConfigEditor()
	case StateInvoices:
		return m.viewInvoices()
	}
	return "Unknown state"
}

// renderChrome assembles the shared page frame: a title row with right-hand
// help when the terminal is wide enough, the body sections, then the message
// line and (on narrow terminals) the help line at the bottom.
func (m *Model) renderChrome(titleText, help string, sections ...string) string {
	title := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorTitle)).Bold(true).Render(titleText)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelp))
	helpText := helpStyle.Render(help)

	var top string
	if m.width >= 80 {
		spacing := m.width - lipgloss.Width(title) - lipgloss.Width(helpText)
		if spacing > 0 {
			top = lipgloss.JoinHorizontal(lipgloss.Left, title, strings.Repeat(" ", spacing), helpText)
		} else {
			top = title
		}
	} else {
		top = title
	}

	parts := []string{top, ""}
	parts = append(parts, sections...)

	if messageText := m.renderMessage(); messageText != "" {
		parts = append(parts, messageText)
	}
	if m.width < 80 {
		parts = append(parts, helpText)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderMessage renders the error line, or the status line when no error is
// set.
func (m *Model) renderMessage() string {
	if m.errorMsg != "" {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
		return errorStyle.Render(fmt.Sprintf("ERROR: %s", m.errorMsg))
	}
	if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorStatus))
		return statusStyle.Render(m.statusMsg)
	}
	return ""
}
