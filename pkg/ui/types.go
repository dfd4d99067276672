package ui

import (
	"github.com/tommv/lbman/pkg/api"
	"github.com/tommv/lbman/pkg/editor"
	"github.com/tommv/lbman/pkg/feed"
)

// UIState represents the different views/states of the UI
type UIState int

const (
	StateDashboard    UIState = iota // Account summary + blog feed widget
	StateBalancers                   // Balancer list view
	StateConfigs                     // Port configurations of one balancer
	StateConfigEditor                // Config scalar form + node table for one draft
	StateInvoices                    // Invoice history view (Ctrl+V)
)

// editorFocus tracks which of the editor's two tables receives key input.
type editorFocus int

const (
	focusFields editorFocus = iota
	focusNodes
)

// configField pairs a payload field name with its display label and a hint
// shown while editing. Rows of the editor's field table follow this order.
type configField struct {
	name  string
	label string
	hint  string
}

// Async results delivered back into Update as bubbletea messages.

type balancersLoadedMsg struct {
	balancers []api.Balancer
	err       error
}

type configsLoadedMsg struct {
	balancerID int
	drafts     []*editor.ConfigDraft
	err        error
}

type configDeletedMsg struct {
	balancerID int
	configID   int
	err        error
}

// saveSettledMsg carries the settled batch for one draft. The draft pointer
// travels with the message so the result is applied to the right draft even
// if the user navigated away while the batch was in flight.
type saveSettledMsg struct {
	draft  *editor.ConfigDraft
	result editor.SaveResult
}

type invoicesLoadedMsg struct {
	invoices  []api.Invoice
	fromCache bool
	err       error
}

type accountLoadedMsg struct {
	account *api.Account
	err     error
}

// feedLoadedMsg is tagged with the generation counter of the fetch that
// produced it; stale generations are dropped on arrival.
type feedLoadedMsg struct {
	generation int
	feed       *feed.Feed
	err        error
}
