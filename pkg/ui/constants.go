package ui

// Table Column Titles
const (
	ColID      = "ID"
	ColLabel   = "LABEL"
	ColRegion  = "REGION"
	ColAddress = "ADDRESS"
	ColStatus  = "STATUS"

	ColPort      = "PORT"
	ColProtocol  = "PROTOCOL"
	ColAlgorithm = "ALGORITHM"
	ColCheck     = "CHECK"
	ColNodes     = "NODES"

	ColNodeLabel   = "LABEL"
	ColNodeAddress = "ADDRESS"
	ColNodePort    = "PORT"
	ColNodeWeight  = "WEIGHT"
	ColNodeMode    = "MODE"
	ColNodeState   = "STATE"

	ColField = "FIELD"
	ColValue = "VALUE"

	ColInvoiceDate  = "DATE"
	ColInvoiceTotal = "TOTAL"
)

// Keyboard shortcuts
const (
	ShortcutExit      = "ctrl+x"
	ShortcutDashboard = "ctrl+d"
	ShortcutBalancers = "ctrl+b"
	ShortcutInvoices  = "ctrl+v"
	ShortcutReload    = "ctrl+r"
	ShortcutSave      = "ctrl+s"
)

// Numeric Constants for Layout/Indexing
const (
	MinTableHeight      = 4  // Minimum height for tables after calculation
	BalancersViewOffset = 7  // Estimated non-table lines in the balancers view for height calc
	ConfigsViewOffset   = 7  // Same, for the configs list view
	EditorViewOffset    = 10 // Editor stacks two tables; each gets a share of the rest
	InvoicesViewOffset  = 7
)

// Lipgloss Colors
const (
	ColorBorder     = "240"
	ColorSelectedFg = "229"
	ColorSelectedBg = "57"
	ColorTitle      = "14"  // Cyan for titles
	ColorHelp       = "245" // Grey for help text
	ColorError      = "9"   // Red for errors
	ColorStatus     = "10"  // Green for success messages
	ColorPending    = "11"  // Yellow for unsaved changes
	ColorDim        = "8"   // Grey for secondary text
)
