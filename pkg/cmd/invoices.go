package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/tommv/lbman/pkg/api"
	"github.com/tommv/lbman/pkg/config"
)

// HandleInvoicesCommand handles the invoices subcommand logic: a
// non-interactive dump of the account's invoices, suitable for scripts.
func HandleInvoicesCommand() {
	invoicesCmd := flag.NewFlagSet("invoices", flag.ExitOnError)
	profileName := invoicesCmd.String("profile", "", "Profile to use (defaults to the default profile)")
	asJSON := invoicesCmd.Bool("json", false, "Emit JSON instead of a table")
	offline := invoicesCmd.Bool("cached", false, "Read the local cache instead of the API")
	outputFile := invoicesCmd.String("o", "", "Output file (defaults to stdout)")

	invoicesCmd.Usage = showInvoicesHelp

	if err := invoicesCmd.Parse(os.Args[2:]); err != nil {
		fmt.Printf("Error parsing arguments: %v\n", err)
		os.Exit(1)
	}

	store, err := config.NewStore()
	if err != nil {
		fmt.Printf("Error opening profile store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	profile, err := resolveProfile(store, *profileName)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	var invoices []api.Invoice
	if *offline {
		invoices, err = store.CachedInvoices(profile.Name)
		if err != nil {
			fmt.Printf("Error reading invoice cache: %v\n", err)
			os.Exit(1)
		}
	} else {
		client, err := api.NewClient(profile.Endpoint, profile.Token)
		if err != nil {
			fmt.Printf("Error building API client: %v\n", err)
			os.Exit(1)
		}
		invoices, err = client.ListInvoices(context.Background())
		if err != nil {
			fmt.Printf("Error listing invoices: %v\n", err)
			os.Exit(1)
		}
		// Refresh the cache so the TUI's offline fallback stays current.
		if cacheErr := store.CacheInvoices(profile.Name, invoices); cacheErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: invoice cache not updated: %v\n", cacheErr)
		}
	}

	out := os.Stdout
	if *outputFile != "" {
		f, err := os.Create(*outputFile)
		if err != nil {
			fmt.Printf("Error opening output file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if *asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(invoices); err != nil {
			fmt.Printf("Error encoding invoices: %v\n", err)
			os.Exit(1)
		}
		return
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLABEL\tDATE\tTOTAL")
	for _, inv := range invoices {
		fmt.Fprintf(w, "%d\t%s\t%s\t$%.2f\n", inv.ID, inv.Label, inv.Date, inv.Total)
	}
	w.Flush()
}

// resolveProfile picks the named profile, or the default when name is empty.
func resolveProfile(store config.Store, name string) (config.Profile, error) {
	if name != "" {
		p, ok := store.GetProfile(name)
		if !ok {
			return config.Profile{}, fmt.Errorf("profile '%s' not found", name)
		}
		return p, nil
	}

	p, ok := store.GetDefaultProfile()
	if !ok {
		return config.Profile{}, fmt.Errorf("no default profile configured; add one with 'profile add'")
	}
	return p, nil
}

// showInvoicesHelp displays help for the invoices command
func showInvoicesHelp() {
	programName := os.Args[0]
	fmt.Fprintf(os.Stderr, `%s invoices - Dump the account's invoices

Usage:
  %s invoices [options]

Options:
  --profile string   Profile to use (defaults to the default profile)
  --json             Emit JSON instead of a table
  --cached           Read the local cache instead of the API
  -o string          Output file (defaults to stdout)
  -h, --help         Show this help message

Examples:
  %s invoices                       Table of invoices for the default profile
  %s invoices --json                JSON output for scripting
  %s invoices --profile staging     Use a specific profile
  %s invoices --cached              Offline view from the local cache
`, programName, programName, programName, programName, programName, programName)
}
