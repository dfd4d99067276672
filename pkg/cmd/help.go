package cmd

import (
	"fmt"
	"os"
)

// HandleHelpCommand displays help information for the application
func HandleHelpCommand() {
	showMainHelp()
}

// showMainHelp displays the main application help
func showMainHelp() {
	programName := os.Args[0]
	fmt.Printf(`lbman - Load Balancer Manager

A terminal-based console for managing load balancer port configurations
and their backend nodes through the provider API.

Usage:
  %s [command]

Available Commands:
  invoices Dump the account's invoices (table or JSON)
  profile  Manage API profiles (add, list, remove, set-default, import)
  help     Show help information

Options:
  -h, --help  Show help information

Interactive Mode:
  Run without any command to start the interactive console where you can:
  - Browse balancers and their port configurations (Ctrl+B)
  - Edit configurations and backend nodes inline, then Ctrl+S to save
  - Review invoices, with an offline cache fallback (Ctrl+V)
  - See account details and the latest blog posts on the dashboard

Examples:
  %s                            Start the interactive console
  %s invoices --json            Dump invoices as JSON
  %s profile list               List stored API profiles
  %s help                       Show this help message

For more information about a specific command, use:
  %s <command> --help
`, programName, programName, programName, programName, programName, programName)
}

// ShowMainHelpAndExit displays help and exits with code 0
func ShowMainHelpAndExit() {
	showMainHelp()
	os.Exit(0)
}
