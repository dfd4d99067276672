package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tommv/lbman/pkg/feed"
	"github.com/tommv/lbman/pkg/logging"
)

// enterDashboard switches to the dashboard view and kicks off a feed refresh.
func (m *Model) enterDashboard() (tea.Model, tea.Cmd) {
	m.uiState = StateDashboard
	m.clearMessages()
	return m, tea.Batch(m.loadAccountCmd(), m.startFeedLoad())
}

// updateDashboard handles keys in the dashboard view.
func (m *Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "r", ShortcutReload:
		return m, tea.Batch(m.loadAccountCmd(), m.startFeedLoad())

	case "b", "enter":
		return m.enterBalancers()

	case "v":
		return m.enterInvoices()
	}

	return m, nil
}

// startFeedLoad cancels any in-flight fetch and starts a new one under a
// fresh generation. The previous result stays on screen until the new one
// arrives.
func (m *Model) startFeedLoad() tea.Cmd {
	if m.profile.FeedURL == "" {
		return nil
	}

	if m.feedCancel != nil {
		m.feedCancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.feedCancel = cancel

	m.feedGen++
	m.feedLoading = true

	generation := m.feedGen
	url := m.profile.FeedURL
	return func() tea.Msg {
		f, err := feed.Fetch(ctx, url)
		return feedLoadedMsg{generation: generation, feed: f, err: err}
	}
}

// handleFeedLoaded applies a settled fetch, dropping results from superseded
// generations.
func (m *Model) handleFeedLoaded(msg feedLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.generation != m.feedGen {
		logging.LogDebug("dropping stale feed result (generation %d, current %d)", msg.generation, m.feedGen)
		return m, nil
	}

	m.feedLoading = false
	if msg.err != nil {
		// One generic failure presentation regardless of cause.
		m.feedResult = nil
		m.feedFailed = true
		return m, nil
	}

	m.feedResult = msg.feed
	m.feedFailed = false
	return m, nil
}
