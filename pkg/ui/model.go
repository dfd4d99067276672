package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tommv/lbman/pkg/api"
	"github.com/tommv/lbman/pkg/config"
	"github.com/tommv/lbman/pkg/editor"
	"github.com/tommv/lbman/pkg/feed"
	"github.com/tommv/lbman/pkg/logging"
)

// Model represents the state of the UI
type Model struct {
	uiState UIState

	// Core components
	client  api.Client
	store   config.Store
	profile config.Profile
	width   int
	height  int

	// Central error message
	errorMsg string
	// Status/info message (non-error feedback)
	statusMsg string

	// Dashboard state
	account     *api.Account
	feedResult  *feed.Feed
	feedFailed  bool
	feedLoading bool
	// feedGen identifies the most recent fetch; results from older
	// generations are discarded so a slow response never overwrites a
	// newer one.
	feedGen    int
	feedCancel context.CancelFunc

	// Balancer list state
	balancers      []api.Balancer
	balancersTable table.Model

	// Configs of the selected balancer
	balancer     *api.Balancer
	drafts       []*editor.ConfigDraft
	configsTable table.Model

	// Config editor state
	draft       *editor.ConfigDraft
	fieldsTable table.Model
	nodesTable  table.Model
	editorFocus editorFocus
	nodeCol     int    // Focused node column, indexes nodeFields
	editMode    bool   // Whether the inline input is active
	editField   string // Field being edited
	editNode    int    // Node index being edited, -1 for a config field
	editInput   textinput.Model

	// Invoices state
	invoices          []api.Invoice
	invoicesFromCache bool
	invoicesTable     table.Model
}

// NewModel builds the initial model for one profile. The client and store
// are injected so tests can substitute fakes.
func NewModel(client api.Client, store config.Store, profile config.Profile) *Model {
	ti := textinput.New()
	ti.CharLimit = 156
	ti.Width = 40

	m := &Model{
		uiState:   StateDashboard,
		client:    client,
		store:     store,
		profile:   profile,
		width:     80, // Default width, will be updated on first WindowSizeMsg
		height:    24, // Default height, will be updated on first WindowSizeMsg
		editNode:  -1,
		editInput: ti,
	}

	m.balancersTable = newTable(balancerColumns(m.width))
	m.configsTable = newTable(configColumns())
	m.fieldsTable = newTable(fieldColumns(m.width))
	m.nodesTable = newTable(nodeColumns(m.width))
	m.invoicesTable = newTable(invoiceColumns(m.width))

	return m
}

// newTable builds a focused table with the shared styling.
func newTable(cols []table.Column) table.Model {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(ColorSelectedFg)).
		Background(lipgloss.Color(ColorSelectedBg)).
		Bold(false)

	return table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithStyles(s),
	)
}

// Cleanup cancels any in-flight feed fetch. Called on program shutdown.
func (m *Model) Cleanup() {
	if m.feedCancel != nil {
		m.feedCancel()
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadAccountCmd(), m.startFeedLoad())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeTables()
		return m, nil

	case tea.KeyMsg:
		keyStr := msg.String()

		if keyStr == "ctrl+c" || keyStr == ShortcutExit {
			return m, tea.Quit
		}

		// While the inline input is active the editor owns every other key.
		if m.editMode {
			return m.updateEditInput(msg)
		}

		// Global shortcuts that work in any state
		switch keyStr {
		case ShortcutDashboard:
			return m.enterDashboard()
		case ShortcutBalancers:
			return m.enterBalancers()
		case ShortcutInvoices:
			return m.enterInvoices()
		}

		// Delegate to state-specific handlers
		switch m.uiState {
		case StateDashboard:
			return m.updateDashboard(msg)
		case StateBalancers:
			return m.updateBalancers(msg)
		case StateConfigs:
			return m.updateConfigs(msg)
		case StateConfigEditor:
			return m.updateConfigEditor(msg)
		case StateInvoices:
			return m.updateInvoices(msg)
		}

	case balancersLoadedMsg:
		return m.handleBalancersLoaded(msg)
	case configsLoadedMsg:
		return m.handleConfigsLoaded(msg)
	case configDeletedMsg:
		return m.handleConfigDeleted(msg)
	case saveSettledMsg:
		return m.handleSaveSettled(msg)
	case invoicesLoadedMsg:
		return m.handleInvoicesLoaded(msg)
	case accountLoadedMsg:
		if msg.err != nil {
			logging.LogError("account load failed: %v", msg.err)
			return m, nil
		}
		m.account = msg.account
		return m, nil
	case feedLoadedMsg:
		return m.handleFeedLoaded(msg)
	}

	return m, nil
}

// resizeTables recomputes table heights and column widths after a terminal
// resize.
func (m *Model) resizeTables() {
	m.balancersTable.SetHeight(tableHeight(m.height, BalancersViewOffset))
	m.balancersTable.SetColumns(balancerColumns(m.width))

	m.configsTable.SetHeight(tableHeight(m.height, ConfigsViewOffset))

	// The editor splits the remaining rows between its two tables.
	editorShare := tableHeight(m.height, EditorViewOffset) / 2
	if editorShare < MinTableHeight {
		editorShare = MinTableHeight
	}
	m.fieldsTable.SetHeight(editorShare)
	m.fieldsTable.SetColumns(fieldColumns(m.width))
	m.nodesTable.SetHeight(editorShare)
	m.nodesTable.SetColumns(nodeColumns(m.width))

	m.invoicesTable.SetHeight(tableHeight(m.height, InvoicesViewOffset))
	m.invoicesTable.SetColumns(invoiceColumns(m.width))

	editWidth := m.width - 4
	if editWidth < 20 {
		editWidth = 20
	}
	m.editInput.Width = editWidth
}

func tableHeight(height, offset int) int {
	h := height - offset
	if h < MinTableHeight {
		h = MinTableHeight
	}
	return h
}

// clearMessages resets the transient feedback lines on navigation.
func (m *Model) clearMessages() {
	m.errorMsg = ""
	m.statusMsg = ""
}

// loadAccountCmd fetches billing-level account details for the dashboard.
func (m *Model) loadAccountCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		account, err := client.GetAccount(context.Background())
		return accountLoadedMsg{account: account, err: err}
	}
}

// failf routes a formatted message into the error line.
func (m *Model) failf(format string, args ...interface{}) {
	m.errorMsg = fmt.Sprintf(format, args...)
	m.statusMsg = ""
}
