package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tommv/lbman/pkg/editor"
	"github.com/tommv/lbman/pkg/logging"
)

// updateConfigs handles keys in the config list of one balancer.
func (m *Model) updateConfigs(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.balancer = nil
		m.drafts = nil
		return m.enterBalancers()

	case "r", ShortcutReload:
		if m.balancer == nil {
			return m, nil
		}
		m.clearMessages()
		m.statusMsg = "Reloading configurations..."
		return m, m.loadConfigsCmd(m.balancer.ID)

	case "n":
		// A new draft exists only in memory until its first save.
		if m.balancer == nil {
			return m, nil
		}
		d := editor.NewEmptyConfigDraft(m.balancer.ID)
		m.drafts = append(m.drafts, d)
		m.refreshConfigsTable()
		m.configsTable.SetCursor(len(m.drafts) - 1)
		return m.enterConfigEditor(d)

	case "enter", "e":
		d := m.selectedDraft()
		if d == nil {
			return m, nil
		}
		return m.enterConfigEditor(d)

	case "d":
		return m.handleConfigDelete()

	case ShortcutSave:
		d := m.selectedDraft()
		if d == nil {
			return m, nil
		}
		return m, m.saveDraftCmd(d)

	default:
		m.configsTable, _ = m.configsTable.Update(msg)
		return m, nil
	}
}

// handleConfigDelete removes the selected config. An unpersisted draft is
// dropped locally; a persisted one is deleted remotely first.
func (m *Model) handleConfigDelete() (tea.Model, tea.Cmd) {
	idx := m.configsTable.Cursor()
	if idx < 0 || idx >= len(m.drafts) {
		return m, nil
	}
	d := m.drafts[idx]

	if d.Submitting {
		m.failf("Save in progress; cannot delete right now.")
		return m, nil
	}

	if d.State == editor.Unpersisted {
		m.drafts = append(m.drafts[:idx], m.drafts[idx+1:]...)
		m.refreshConfigsTable()
		m.statusMsg = "Discarded unsaved configuration."
		return m, nil
	}

	m.clearMessages()
	m.statusMsg = "Deleting configuration..."
	return m, m.deleteConfigCmd(d.BalancerID, d.ID)
}

func (m *Model) deleteConfigCmd(balancerID, configID int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.DeleteConfig(context.Background(), balancerID, configID)
		return configDeletedMsg{balancerID: balancerID, configID: configID, err: err}
	}
}

func (m *Model) handleConfigDeleted(msg configDeletedMsg) (tea.Model, tea.Cmd) {
	m.clearMessages()
	if msg.err != nil {
		logging.LogError("config delete failed for config %d: %v", msg.configID, msg.err)
		m.failf("Failed to delete configuration: %v", msg.err)
		return m, nil
	}

	for i, d := range m.drafts {
		if d.State == editor.Persisted && d.ID == msg.configID {
			m.drafts = append(m.drafts[:i], m.drafts[i+1:]...)
			break
		}
	}
	m.refreshConfigsTable()

	// Leave the editor if the deleted config was open in it.
	if m.uiState == StateConfigEditor && m.draft != nil &&
		m.draft.State == editor.Persisted && m.draft.ID == msg.configID {
		m.draft = nil
		m.uiState = StateConfigs
	}

	m.statusMsg = "Configuration deleted."
	return m, nil
}

// saveDraftCmd issues one save batch for a draft. The Submitting flag is set
// before the command runs so a second save cannot start while this one is in
// flight.
func (m *Model) saveDraftCmd(d *editor.ConfigDraft) tea.Cmd {
	if d.Submitting {
		m.failf("Save already in progress.")
		return nil
	}
	d.Submitting = true
	m.clearMessages()
	m.statusMsg = "Saving..."
	m.refreshConfigsTable()

	saver := editor.Saver{Client: m.client}
	draft := d
	return func() tea.Msg {
		result := saver.Save(context.Background(), draft)
		return saveSettledMsg{draft: draft, result: result}
	}
}

// handleSaveSettled folds a settled batch into its draft and updates
// whichever view currently shows it.
func (m *Model) handleSaveSettled(msg saveSettledMsg) (tea.Model, tea.Cmd) {
	editor.ApplySaveResult(msg.draft, msg.result)

	m.refreshConfigsTable()
	if m.draft == msg.draft {
		m.refreshFieldsTable()
		m.refreshNodesTable()
		if msg.result.ScrollToErrors {
			m.scrollToParentErrors()
		}
	}

	m.clearMessages()
	switch {
	case msg.result.ValidationFailed:
		m.failf("Validation failed; fix the marked fields and save again.")
	case !msg.result.ParentOK:
		m.failf("Failed to save configuration.")
	case !msg.result.AllNodesOK:
		m.errorMsg = "Some node changes failed; see the marked rows."
		m.statusMsg = msg.draft.ConfigMsg
	default:
		m.statusMsg = msg.draft.ConfigMsg
		if msg.draft.NodeMsg != "" {
			m.statusMsg += " " + msg.draft.NodeMsg
		}
	}

	return m, nil
}

// scrollToParentErrors brings the first errored form row into view and gives
// the form focus.
func (m *Model) scrollToParentErrors() {
	if m.draft == nil {
		return
	}
	m.editorFocus = focusFields

	for i, f := range configFields {
		for _, fe := range m.draft.Errors {
			if fe.Field == f.name {
				m.fieldsTable.SetCursor(i)
				return
			}
		}
	}
	m.fieldsTable.SetCursor(0)
}
