package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tommv/lbman/pkg/editor"
)

// enterConfigEditor opens the form + nodes editor for one draft.
func (m *Model) enterConfigEditor(d *editor.ConfigDraft) (tea.Model, tea.Cmd) {
	m.draft = d
	m.uiState = StateConfigEditor
	m.editorFocus = focusFields
	m.nodeCol = 0
	m.clearMessages()
	m.fieldsTable.SetCursor(0)
	m.nodesTable.SetCursor(0)
	m.refreshFieldsTable()
	m.refreshNodesTable()
	return m, nil
}

// updateConfigEditor handles keys in the editor view while the inline input
// is inactive.
func (m *Model) updateConfigEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.draft == nil {
		m.uiState = StateConfigs
		return m, nil
	}

	switch msg.String() {
	case "q", "esc":
		// The draft keeps its pending changes; only a save persists them.
		m.draft = nil
		m.uiState = StateConfigs
		m.clearMessages()
		m.refreshConfigsTable()
		return m, nil

	case "tab":
		if m.editorFocus == focusFields {
			m.editorFocus = focusNodes
		} else {
			m.editorFocus = focusFields
		}
		return m, nil

	case ShortcutSave:
		return m, m.saveDraftCmd(m.draft)

	case "a":
		editor.AddNode(m.draft)
		m.refreshNodesTable()
		m.nodesTable.SetCursor(len(m.draft.Nodes) - 1)
		m.editorFocus = focusNodes
		m.statusMsg = "Node added; edit its fields and save."
		return m, nil

	case "d":
		if m.editorFocus != focusNodes {
			return m, nil
		}
		idx := m.nodesTable.Cursor()
		if err := editor.RemoveNode(m.draft, idx); err != nil {
			m.failf("%v", err)
			return m, nil
		}
		m.refreshNodesTable()
		m.statusMsg = "Node marked for removal; save to apply."
		return m, nil

	case "left", "h":
		if m.editorFocus == focusNodes && m.nodeCol > 0 {
			m.nodeCol--
		}
		return m, nil

	case "right", "l":
		if m.editorFocus == focusNodes && m.nodeCol < len(nodeFields)-1 {
			m.nodeCol++
		}
		return m, nil

	case "enter", "e":
		return m.startEdit()

	default:
		if m.editorFocus == focusFields {
			m.fieldsTable, _ = m.fieldsTable.Update(msg)
		} else {
			m.nodesTable, _ = m.nodesTable.Update(msg)
		}
		return m, nil
	}
}

// startEdit opens the inline input for the focused cell.
func (m *Model) startEdit() (tea.Model, tea.Cmd) {
	if m.draft.Submitting {
		m.failf("Save in progress; wait for it to settle.")
		return m, nil
	}

	if m.editorFocus == focusFields {
		idx := m.fieldsTable.Cursor()
		if idx < 0 || idx >= len(configFields) {
			return m, nil
		}
		f := configFields[idx]
		m.editField = f.name
		m.editNode = -1
		m.editInput.SetValue(fieldValue(m.draft, f.name))
		m.editInput.Placeholder = f.hint
	} else {
		idx := m.nodesTable.Cursor()
		if idx < 0 || idx >= len(m.draft.Nodes) {
			return m, nil
		}
		n := &m.draft.Nodes[idx]
		if n.Status == editor.StatusDelete {
			m.failf("Row is marked for removal; save or re-add it first.")
			return m, nil
		}
		field := nodeFields[m.nodeCol]
		m.editField = field
		m.editNode = idx
		m.editInput.SetValue(nodeCellValue(n, field))
		m.editInput.Placeholder = ""
	}

	m.clearMessages()
	m.editMode = true
	m.editInput.Focus()
	return m, nil
}

// updateEditInput handles keys while the inline input is active.
func (m *Model) updateEditInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeEditInput()
		return m, nil

	case "enter":
		return m.commitEdit()

	default:
		var cmd tea.Cmd
		m.editInput, cmd = m.editInput.Update(msg)
		return m, cmd
	}
}

// commitEdit writes the input value into the draft through the mutation
// functions, so status promotion rules are applied in one place.
func (m *Model) commitEdit() (tea.Model, tea.Cmd) {
	if m.draft == nil {
		m.closeEditInput()
		return m, nil
	}

	value := m.editInput.Value()

	var err error
	if m.editNode >= 0 {
		err = editor.SetNodeField(m.draft, m.editNode, m.editField, value)
	} else {
		err = editor.SetConfigField(m.draft, m.editField, value)
	}
	if err != nil {
		m.failf("%v", err)
		return m, nil
	}

	m.closeEditInput()
	m.refreshFieldsTable()
	m.refreshNodesTable()
	m.refreshConfigsTable()
	return m, nil
}

func (m *Model) closeEditInput() {
	m.editMode = false
	m.editField = ""
	m.editNode = -1
	m.editInput.Blur()
	m.editInput.SetValue("")
}

// nodeCellValue renders one node field for the inline input.
func nodeCellValue(n *editor.NodeDraft, field string) string {
	switch field {
	case "label":
		return n.Label
	case "address":
		return n.Address
	case "port":
		return intCell(n.Port)
	case "weight":
		return intCell(n.Weight)
	case "mode":
		return n.Mode
	}
	return ""
}
