package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// viewDashboard renders the account summary and the blog feed widget.
func (m *Model) viewDashboard() string {
	title := fmt.Sprintf("Dashboard - %s", m.profile.Name)
	help := "b: Balancers | v: Invoices | r: Refresh | q: Quit"

	return m.renderChrome(title, help, m.renderAccountBox(), m.renderFeedBox())
}

func (m *Model) renderAccountBox() string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(0, 1)

	if m.account == nil {
		return boxStyle.Render("Loading account details...")
	}

	who := m.account.Email
	if m.account.Company != "" {
		who = fmt.Sprintf("%s (%s)", m.account.Company, m.account.Email)
	}
	return boxStyle.Render(fmt.Sprintf("%s\nBalance: $%.2f", who, m.account.Balance))
}

// renderFeedBox renders the blog feed widget. Every failure mode collapses
// into one generic line with no items.
func (m *Model) renderFeedBox() string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(0, 1)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDim))
	headStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorTitle))

	if m.profile.FeedURL == "" {
		return boxStyle.Render(dimStyle.Render("No blog feed configured for this profile."))
	}
	if m.feedFailed {
		return boxStyle.Render(dimStyle.Render("Blog feed is unavailable right now."))
	}
	if m.feedResult == nil {
		return boxStyle.Render(dimStyle.Render("Loading blog feed..."))
	}

	lines := []string{headStyle.Render(m.feedResult.Title)}
	for _, item := range m.feedResult.Items {
		lines = append(lines, fmt.Sprintf("• %s", item.Title))
		if item.Link != "" {
			lines = append(lines, dimStyle.Render("  "+item.Link))
		}
	}
	if m.feedLoading {
		lines = append(lines, dimStyle.Render("Refreshing..."))
	}

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
