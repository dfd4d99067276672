package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tommv/lbman/pkg/api"
	"github.com/tommv/lbman/pkg/editor"
	"github.com/tommv/lbman/pkg/logging"
)

// enterBalancers switches to the balancer list and refreshes it.
func (m *Model) enterBalancers() (tea.Model, tea.Cmd) {
	m.uiState = StateBalancers
	m.clearMessages()
	m.statusMsg = "Loading balancers..."
	return m, m.loadBalancersCmd()
}

// updateBalancers handles keys in the balancer list view.
func (m *Model) updateBalancers(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m.enterDashboard()

	case "r", ShortcutReload:
		m.clearMessages()
		m.statusMsg = "Reloading balancers..."
		return m, m.loadBalancersCmd()

	case "enter":
		idx := m.balancersTable.Cursor()
		if idx < 0 || idx >= len(m.balancers) {
			return m, nil
		}
		return m.enterConfigs(m.balancers[idx])

	default:
		m.balancersTable, _ = m.balancersTable.Update(msg)
		return m, nil
	}
}

func (m *Model) loadBalancersCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		balancers, err := client.ListBalancers(context.Background())
		return balancersLoadedMsg{balancers: balancers, err: err}
	}
}

func (m *Model) handleBalancersLoaded(msg balancersLoadedMsg) (tea.Model, tea.Cmd) {
	m.clearMessages()
	if msg.err != nil {
		logging.LogError("balancer list failed: %v", msg.err)
		m.failf("Failed to load balancers: %v", msg.err)
		return m, nil
	}

	m.balancers = msg.balancers
	m.refreshBalancersTable()
	return m, nil
}

// enterConfigs switches to the config list of one balancer and loads its
// configs together with their nodes.
func (m *Model) enterConfigs(b api.Balancer) (tea.Model, tea.Cmd) {
	balancer := b
	m.balancer = &balancer
	m.drafts = nil
	m.uiState = StateConfigs
	m.clearMessages()
	m.statusMsg = "Loading configurations..."
	m.refreshConfigsTable()
	return m, m.loadConfigsCmd(b.ID)
}

// loadConfigsCmd fetches the configs of a balancer and each config's nodes,
// folding both into fresh drafts.
func (m *Model) loadConfigsCmd(balancerID int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx := context.Background()

		configs, err := client.ListConfigs(ctx, balancerID)
		if err != nil {
			return configsLoadedMsg{balancerID: balancerID, err: err}
		}

		drafts := make([]*editor.ConfigDraft, 0, len(configs))
		for _, cfg := range configs {
			nodes, err := client.ListNodes(ctx, balancerID, cfg.ID)
			if err != nil {
				return configsLoadedMsg{balancerID: balancerID, err: err}
			}
			drafts = append(drafts, editor.NewConfigDraft(cfg, nodes))
		}
		return configsLoadedMsg{balancerID: balancerID, drafts: drafts}
	}
}

func (m *Model) handleConfigsLoaded(msg configsLoadedMsg) (tea.Model, tea.Cmd) {
	if m.balancer == nil || m.balancer.ID != msg.balancerID {
		// The user navigated to another balancer before this load settled.
		return m, nil
	}

	m.clearMessages()
	if msg.err != nil {
		logging.LogError("config list failed for balancer %d: %v", msg.balancerID, msg.err)
		m.failf("Failed to load configurations: %v", msg.err)
		return m, nil
	}

	m.drafts = msg.drafts
	m.refreshConfigsTable()
	return m, nil
}
