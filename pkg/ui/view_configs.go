package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tommv/lbman/pkg/editor"
)

// viewConfigs renders the config list of the selected balancer.
func (m *Model) viewConfigs() string {
	balancerLabel := "?"
	if m.balancer != nil {
		balancerLabel = m.balancer.Label
	}
	title := fmt.Sprintf("Configurations - %s", balancerLabel)
	help := "Enter: Edit | n: New | d: Delete | ctrl+s: Save | r: Reload | esc: Back"
	if m.width < 80 {
		help = "Enter:Edit | n:New | d:Del | ctrl+s:Save | esc:Back"
	}

	tableView := lipgloss.PlaceHorizontal(m.width, lipgloss.Left, m.configsTable.View())
	return m.renderChrome(title, help, tableView)
}

// viewConfigEditor renders the scalar form and the node table of one draft.
func (m *Model) viewConfigEditor() string {
	if m.draft == nil {
		return "No configuration selected"
	}

	title := m.editorTitle()
	help := "tab: Switch pane | e: Edit | a: Add node | d: Remove node | ctrl+s: Save | esc: Back"
	if m.width < 80 {
		help = "tab:Pane | e:Edit | a:Add | d:Del | ctrl+s:Save | esc:Back"
	}

	sections := []string{
		m.renderPaneHeader("Configuration", m.editorFocus == focusFields),
		m.fieldsTable.View(),
	}
	if errs := m.renderParentErrors(); errs != "" {
		sections = append(sections, errs)
	}

	sections = append(sections,
		m.renderPaneHeader(m.nodesPaneTitle(), m.editorFocus == focusNodes),
		m.nodesTable.View(),
	)
	if errs := m.renderSelectedNodeErrors(); errs != "" {
		sections = append(sections, errs)
	}

	if m.editMode {
		editStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPending))
		label := editStyle.Render(fmt.Sprintf("Edit %s: ", m.editField))
		sections = append(sections, label+m.editInput.View()+" (Enter to apply, Esc to cancel)")
	}

	return m.renderChrome(title, help, sections...)
}

func (m *Model) editorTitle() string {
	if m.draft.State == editor.Unpersisted {
		return "New Configuration (unsaved)"
	}
	return fmt.Sprintf("Configuration #%d - Port %d/%s", m.draft.ID, m.draft.Port, m.draft.Protocol)
}

// renderPaneHeader marks the pane that currently receives key input.
func (m *Model) renderPaneHeader(name string, focused bool) string {
	if focused {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorTitle)).Bold(true)
		return style.Render("▸ " + name)
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDim))
	return style.Render("  " + name)
}

// nodesPaneTitle includes the focused column so the inline edit target is
// visible before the input opens.
func (m *Model) nodesPaneTitle() string {
	return fmt.Sprintf("Nodes (column: %s, ←/→ to change)", nodeFields[m.nodeCol])
}

func (m *Model) renderParentErrors() string {
	if len(m.draft.Errors) == 0 {
		return ""
	}
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))

	lines := make([]string, 0, len(m.draft.Errors))
	for _, fe := range m.draft.Errors {
		if fe.Field != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", fe.Field, fe.Reason))
		} else {
			lines = append(lines, fe.Reason)
		}
	}
	return errorStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderSelectedNodeErrors() string {
	idx := m.nodesTable.Cursor()
	if idx < 0 || idx >= len(m.draft.Nodes) {
		return ""
	}
	n := &m.draft.Nodes[idx]
	if len(n.Errors) == 0 {
		return ""
	}

	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
	lines := make([]string, 0, len(n.Errors))
	for _, fe := range n.Errors {
		lines = append(lines, fmt.Sprintf("%s: %s", fe.Field, fe.Reason))
	}
	return errorStyle.Render(strings.Join(lines, "\n"))
}
