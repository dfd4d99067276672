package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tommv/lbman/pkg/logging"
)

// enterInvoices switches to the invoice history view and refreshes it.
func (m *Model) enterInvoices() (tea.Model, tea.Cmd) {
	m.uiState = StateInvoices
	m.clearMessages()
	m.statusMsg = "Loading invoices..."
	return m, m.loadInvoicesCmd()
}

// updateInvoices handles keys in the invoice view.
func (m *Model) updateInvoices(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m.enterDashboard()

	case "r", ShortcutReload:
		m.clearMessages()
		m.statusMsg = "Reloading invoices..."
		return m, m.loadInvoicesCmd()

	default:
		m.invoicesTable, _ = m.invoicesTable.Update(msg)
		return m, nil
	}
}

// loadInvoicesCmd fetches invoices from the API, refreshing the offline
// cache on success and falling back to it when the API is unreachable.
func (m *Model) loadInvoicesCmd() tea.Cmd {
	client := m.client
	store := m.store
	profile := m.profile.Name
	return func() tea.Msg {
		invoices, err := client.ListInvoices(context.Background())
		if err == nil {
			if cacheErr := store.CacheInvoices(profile, invoices); cacheErr != nil {
				logging.LogError("invoice cache write failed: %v", cacheErr)
			}
			return invoicesLoadedMsg{invoices: invoices}
		}

		logging.LogError("invoice list failed, trying cache: %v", err)
		cached, cacheErr := store.CachedInvoices(profile)
		if cacheErr != nil || len(cached) == 0 {
			return invoicesLoadedMsg{err: err}
		}
		return invoicesLoadedMsg{invoices: cached, fromCache: true}
	}
}

func (m *Model) handleInvoicesLoaded(msg invoicesLoadedMsg) (tea.Model, tea.Cmd) {
	m.clearMessages()
	if msg.err != nil {
		m.failf("Failed to load invoices: %v", msg.err)
		return m, nil
	}

	m.invoices = msg.invoices
	m.invoicesFromCache = msg.fromCache
	m.refreshInvoicesTable()
	if msg.fromCache {
		m.statusMsg = "API unreachable; showing cached invoices."
	}
	return m, nil
}
