package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// viewBalancers renders the balancer list view.
func (m *Model) viewBalancers() string {
	title := fmt.Sprintf("Load Balancers - %s", m.profile.Name)
	help := "Enter: Configurations | r: Reload | esc: Dashboard | q: Quit"
	if m.width < 80 {
		help = "Enter:Configs | r:Reload | esc:Back"
	}

	tableView := lipgloss.PlaceHorizontal(m.width, lipgloss.Left, m.balancersTable.View())
	return m.renderChrome(title, help, tableView)
}

// viewInvoices renders the invoice history view.
func (m *Model) viewInvoices() string {
	title := "Invoices"
	if m.invoicesFromCache {
		title = "Invoices (cached)"
	}
	help := "r: Reload | esc: Dashboard | q: Quit"

	tableView := lipgloss.PlaceHorizontal(m.width, lipgloss.Left, m.invoicesTable.View())
	return m.renderChrome(title, help, tableView)
}
