package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"github.com/tommv/lbman/pkg/editor"
	"github.com/tommv/lbman/pkg/validate"
)

// configFields lists the editable scalar fields of a draft in form order.
// Row indexes of the editor's field table map 1:1 onto this slice.
var configFields = []configField{
	{name: "port", label: "Port", hint: "1-65535"},
	{name: "protocol", label: "Protocol", hint: strings.Join(validate.Protocols, ", ")},
	{name: "algorithm", label: "Algorithm", hint: strings.Join(validate.Algorithms, ", ")},
	{name: "stickiness", label: "Stickiness", hint: strings.Join(validate.Stickiness, ", ")},
	{name: "check", label: "Health check", hint: strings.Join(validate.HealthChecks, ", ")},
	{name: "check_interval", label: "Check interval", hint: "seconds, 2-3600"},
	{name: "check_timeout", label: "Check timeout", hint: "seconds, 1-30"},
	{name: "check_attempts", label: "Check attempts", hint: "1-30"},
	{name: "check_path", label: "Check path", hint: "path for http checks"},
}

// nodeFields lists the editable node columns in table order, aligned with
// nodeColumns so the focused column maps onto a field name.
var nodeFields = []string{"label", "address", "port", "weight", "mode"}

// Column layouts

func balancerColumns(width int) []table.Column {
	labelWidth := width - 44
	if labelWidth < 12 {
		labelWidth = 12
	}
	if labelWidth > 32 {
		labelWidth = 32
	}
	return []table.Column{
		{Title: ColID, Width: 6},
		{Title: ColLabel, Width: labelWidth},
		{Title: ColRegion, Width: 10},
		{Title: ColAddress, Width: 15},
		{Title: ColStatus, Width: 10},
	}
}

func configColumns() []table.Column {
	return []table.Column{
		{Title: ColID, Width: 6},
		{Title: ColPort, Width: 6},
		{Title: ColProtocol, Width: 9},
		{Title: ColAlgorithm, Width: 11},
		{Title: ColCheck, Width: 11},
		{Title: ColNodes, Width: 6},
		{Title: ColStatus, Width: 10},
	}
}

func fieldColumns(width int) []table.Column {
	valueWidth := width - 24
	if valueWidth < 16 {
		valueWidth = 16
	}
	if valueWidth > 48 {
		valueWidth = 48
	}
	return []table.Column{
		{Title: ColField, Width: 16},
		{Title: ColValue, Width: valueWidth},
	}
}

func nodeColumns(width int) []table.Column {
	labelWidth := width - 52
	if labelWidth < 10 {
		labelWidth = 10
	}
	if labelWidth > 24 {
		labelWidth = 24
	}
	return []table.Column{
		{Title: ColNodeLabel, Width: labelWidth},
		{Title: ColNodeAddress, Width: 15},
		{Title: ColNodePort, Width: 6},
		{Title: ColNodeWeight, Width: 7},
		{Title: ColNodeMode, Width: 7},
		{Title: ColNodeState, Width: 9},
	}
}

func invoiceColumns(width int) []table.Column {
	labelWidth := width - 32
	if labelWidth < 14 {
		labelWidth = 14
	}
	if labelWidth > 40 {
		labelWidth = 40
	}
	return []table.Column{
		{Title: ColID, Width: 8},
		{Title: ColLabel, Width: labelWidth},
		{Title: ColInvoiceDate, Width: 12},
		{Title: ColInvoiceTotal, Width: 10},
	}
}

// Row refreshers

func (m *Model) refreshBalancersTable() {
	rows := make([]table.Row, len(m.balancers))
	for i, b := range m.balancers {
		rows[i] = table.Row{
			fmt.Sprintf("%d", b.ID),
			b.Label,
			b.Region,
			b.Address,
			b.Status,
		}
	}
	m.balancersTable.SetRows(rows)
	if m.balancersTable.Cursor() >= len(rows) {
		m.balancersTable.SetCursor(0)
	}
}

func (m *Model) refreshConfigsTable() {
	rows := make([]table.Row, len(m.drafts))
	for i, d := range m.drafts {
		id := "-"
		if d.State == editor.Persisted {
			id = fmt.Sprintf("%d", d.ID)
		}
		rows[i] = table.Row{
			id,
			fmt.Sprintf("%d", d.Port),
			d.Protocol,
			d.Algorithm,
			d.Check,
			fmt.Sprintf("%d", liveNodeCount(d)),
			draftStatusLabel(d),
		}
	}
	m.configsTable.SetRows(rows)
	if m.configsTable.Cursor() >= len(rows) {
		m.configsTable.SetCursor(0)
	}
}

func (m *Model) refreshFieldsTable() {
	if m.draft == nil {
		m.fieldsTable.SetRows(nil)
		return
	}
	rows := make([]table.Row, len(configFields))
	for i, f := range configFields {
		rows[i] = table.Row{f.label, fieldValue(m.draft, f.name)}
	}
	m.fieldsTable.SetRows(rows)
}

func (m *Model) refreshNodesTable() {
	if m.draft == nil {
		m.nodesTable.SetRows(nil)
		return
	}
	rows := make([]table.Row, len(m.draft.Nodes))
	for i := range m.draft.Nodes {
		n := &m.draft.Nodes[i]
		state := n.Status.String()
		if len(n.Errors) > 0 {
			state += " !"
		}
		rows[i] = table.Row{
			n.Label,
			n.Address,
			intCell(n.Port),
			intCell(n.Weight),
			n.Mode,
			state,
		}
	}
	m.nodesTable.SetRows(rows)
	if m.nodesTable.Cursor() >= len(rows) {
		m.nodesTable.SetCursor(0)
	}
}

func (m *Model) refreshInvoicesTable() {
	rows := make([]table.Row, len(m.invoices))
	for i, inv := range m.invoices {
		rows[i] = table.Row{
			fmt.Sprintf("%d", inv.ID),
			inv.Label,
			inv.Date,
			fmt.Sprintf("$%.2f", inv.Total),
		}
	}
	m.invoicesTable.SetRows(rows)
	if m.invoicesTable.Cursor() >= len(rows) {
		m.invoicesTable.SetCursor(0)
	}
}

// fieldValue renders one scalar draft field for the form table.
func fieldValue(d *editor.ConfigDraft, name string) string {
	switch name {
	case "port":
		return intCell(d.Port)
	case "protocol":
		return d.Protocol
	case "algorithm":
		return d.Algorithm
	case "stickiness":
		return d.Stickiness
	case "check":
		return d.Check
	case "check_interval":
		return intCell(d.CheckInterval)
	case "check_timeout":
		return intCell(d.CheckTimeout)
	case "check_attempts":
		return intCell(d.CheckAttempts)
	case "check_path":
		return d.CheckPath
	}
	return ""
}

// intCell renders zero as empty so unset optional fields read as blank.
func intCell(v int) string {
	if v == 0 {
		return ""
	}
	return fmt.Sprintf("%d", v)
}

// liveNodeCount counts rows that will survive the next save.
func liveNodeCount(d *editor.ConfigDraft) int {
	count := 0
	for i := range d.Nodes {
		if d.Nodes[i].Status != editor.StatusDelete {
			count++
		}
	}
	return count
}

// draftStatusLabel summarizes a draft for the configs list STATUS column.
func draftStatusLabel(d *editor.ConfigDraft) string {
	if d.Submitting {
		return "saving..."
	}
	if d.State == editor.Unpersisted {
		return "unsaved"
	}
	if draftHasPendingNodes(d) {
		return "modified"
	}
	return "active"
}

func draftHasPendingNodes(d *editor.ConfigDraft) bool {
	for i := range d.Nodes {
		if d.Nodes[i].Status != editor.StatusUnchanged {
			return true
		}
	}
	return false
}

// selectedDraft returns the draft under the configs table cursor.
func (m *Model) selectedDraft() *editor.ConfigDraft {
	idx := m.configsTable.Cursor()
	if idx < 0 || idx >= len(m.drafts) {
		return nil
	}
	return m.drafts[idx]
}
