package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tommv/lbman/pkg/api"
	"github.com/tommv/lbman/pkg/config"
	"github.com/tommv/lbman/pkg/editor"
)

func testModel() *Model {
	return NewModel(nil, nil, config.Profile{Name: "test"})
}

func persistedDraft() *editor.ConfigDraft {
	cfg := api.BalancerConfig{ID: 10, BalancerID: 1, Port: 80, Protocol: "http", Algorithm: "roundrobin"}
	nodes := []api.Node{{ID: 5, Label: "web-1", Address: "10.0.0.1", Port: 80}}
	return editor.NewConfigDraft(cfg, nodes)
}

func TestDraftStatusLabel(t *testing.T) {
	t.Run("unpersisted drafts read unsaved", func(t *testing.T) {
		d := editor.NewEmptyConfigDraft(1)
		assert.Equal(t, "unsaved", draftStatusLabel(d))
	})

	t.Run("pending node changes read modified", func(t *testing.T) {
		d := persistedDraft()
		assert.Equal(t, "active", draftStatusLabel(d))

		require.NoError(t, editor.SetNodeField(d, 0, "weight", "50"))
		assert.Equal(t, "modified", draftStatusLabel(d))
	})

	t.Run("submitting wins over everything", func(t *testing.T) {
		d := persistedDraft()
		d.Submitting = true
		assert.Equal(t, "saving...", draftStatusLabel(d))
	})
}

func TestLiveNodeCount(t *testing.T) {
	d := persistedDraft()
	editor.AddNode(d)
	require.NoError(t, editor.RemoveNode(d, 0))

	// One persisted row tagged delete, one fresh row.
	assert.Equal(t, 1, liveNodeCount(d))
}

func TestFieldValue(t *testing.T) {
	d := editor.NewEmptyConfigDraft(1)

	assert.Equal(t, "80", fieldValue(d, "port"))
	assert.Equal(t, "http", fieldValue(d, "protocol"))
	// Optional numerics at zero render blank.
	assert.Equal(t, "", fieldValue(d, "check_interval"))
	assert.Equal(t, "", fieldValue(d, "check_path"))
}

func TestConfigFieldsCoverEveryEditableField(t *testing.T) {
	d := editor.NewEmptyConfigDraft(1)

	// Every form row must be writable through the mutation function.
	for _, f := range configFields {
		var probe string
		switch f.name {
		case "protocol":
			probe = "tcp"
		case "algorithm":
			probe = "leastconn"
		case "stickiness":
			probe = "table"
		case "check":
			probe = "http"
		case "check_path":
			probe = "/healthz"
		default:
			probe = "5"
		}
		assert.NoError(t, editor.SetConfigField(d, f.name, probe), "field %s", f.name)
	}
}

func TestScrollToParentErrors(t *testing.T) {
	m := testModel()
	m.draft = persistedDraft()
	m.refreshFieldsTable()
	m.editorFocus = focusNodes
	m.fieldsTable.SetCursor(3)

	editor.DistributeErrors(m.draft, []api.FieldError{
		{Field: "algorithm", Reason: "not supported"},
	})
	m.scrollToParentErrors()

	assert.Equal(t, focusFields, m.editorFocus)
	// algorithm is the third form row
	assert.Equal(t, 2, m.fieldsTable.Cursor())
}

func TestHandleSaveSettledAppliesOnce(t *testing.T) {
	m := testModel()
	d := persistedDraft()
	m.drafts = []*editor.ConfigDraft{d}
	m.draft = d
	m.uiState = StateConfigEditor
	d.Submitting = true

	res := editor.SaveResult{ParentOK: true, AllNodesOK: true}
	_, cmd := m.handleSaveSettled(saveSettledMsg{draft: d, result: res})

	assert.Nil(t, cmd)
	assert.False(t, d.Submitting)
	assert.Equal(t, "Configuration saved.", d.ConfigMsg)
	assert.Equal(t, d.ConfigMsg, m.statusMsg)
	assert.Empty(t, m.errorMsg)
}

func TestHandleSaveSettledValidationFailure(t *testing.T) {
	m := testModel()
	d := persistedDraft()
	m.drafts = []*editor.ConfigDraft{d}
	m.draft = d
	m.uiState = StateConfigEditor
	d.Submitting = true

	res := editor.SaveResult{
		ValidationFailed: true,
		Validation:       []api.FieldError{{Field: "port", Reason: "field is required"}},
		ScrollToErrors:   true,
	}
	m.handleSaveSettled(saveSettledMsg{draft: d, result: res})

	assert.False(t, d.Submitting)
	assert.NotEmpty(t, m.errorMsg)
	assert.Equal(t, focusFields, m.editorFocus)
	require.Len(t, d.Errors, 1)
}
