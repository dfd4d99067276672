package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tommv/lbman/pkg/api"
	"github.com/tommv/lbman/pkg/cmd"
	"github.com/tommv/lbman/pkg/config"
	"github.com/tommv/lbman/pkg/logging"
	"github.com/tommv/lbman/pkg/ui"
)

func main() {
	defer logging.Sync()

	// Parse command line arguments
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "invoices":
			cmd.HandleInvoicesCommand()
			return
		case "profile":
			cmd.HandleProfileCommand()
			return
		case "help", "-h", "--help":
			cmd.ShowMainHelpAndExit()
		default:
			fmt.Printf("Unknown command: %s\n\n", os.Args[1])
			cmd.HandleHelpCommand()
			os.Exit(1)
		}
	}

	// Default behavior - start the console
	store, err := config.NewStore()
	if err != nil {
		fmt.Printf("Error opening profile store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	profile, ok := store.GetDefaultProfile()
	if !ok {
		fmt.Println("No profile configured. Add one first:")
		fmt.Printf("  %s profile add --name prod --endpoint https://api.example.com --default\n", os.Args[0])
		os.Exit(1)
	}

	client, err := api.NewClient(profile.Endpoint, profile.Token)
	if err != nil {
		fmt.Printf("Error building API client for profile '%s': %v\n", profile.Name, err)
		os.Exit(1)
	}

	logging.LogDebug("starting console with profile %s", profile.Name)
	model := ui.NewModel(client, store, profile)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	model.Cleanup()
}
