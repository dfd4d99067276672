package cmd

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tommv/lbman/pkg/config"
)

// HandleProfileCommand handles the profile subcommand logic: add, list,
// remove, set-default and YAML import of API profiles.
func HandleProfileCommand() {
	if len(os.Args) < 3 {
		showProfileHelp()
		os.Exit(1)
	}

	store, err := config.NewStore()
	if err != nil {
		fmt.Printf("Error opening profile store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch os.Args[2] {
	case "add":
		handleProfileAdd(store)
	case "list":
		handleProfileList(store)
	case "remove":
		handleProfileRemove(store)
	case "set-default":
		handleProfileSetDefault(store)
	case "import":
		handleProfileImport(store)
	case "-h", "--help", "help":
		showProfileHelp()
	default:
		fmt.Printf("Unknown profile command: %s\n\n", os.Args[2])
		showProfileHelp()
		os.Exit(1)
	}
}

func handleProfileAdd(store config.Store) {
	addCmd := flag.NewFlagSet("profile add", flag.ExitOnError)
	name := addCmd.String("name", "", "Profile name")
	endpoint := addCmd.String("endpoint", "", "API endpoint URL")
	token := addCmd.String("token", "", "API token (prompted when omitted)")
	feedURL := addCmd.String("feed", "", "Blog feed URL for the dashboard widget")
	makeDefault := addCmd.Bool("default", false, "Make this the default profile")

	if err := addCmd.Parse(os.Args[3:]); err != nil {
		fmt.Printf("Error parsing arguments: %v\n", err)
		os.Exit(1)
	}

	tokenValue := *token
	if tokenValue == "" {
		// Keeps the token out of shell history.
		fmt.Print("API token: ")
		reader := bufio.NewReader(os.Stdin)
		line, _ := reader.ReadString('\n')
		tokenValue = strings.TrimSpace(line)
	}

	p := config.Profile{
		Name:     *name,
		Endpoint: *endpoint,
		Token:    tokenValue,
		FeedURL:  *feedURL,
	}
	if err := store.AddProfile(p); err != nil {
		fmt.Printf("Error adding profile: %v\n", err)
		os.Exit(1)
	}

	if *makeDefault {
		if err := store.SetDefaultProfile(p.Name); err != nil {
			fmt.Printf("Error setting default profile: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("Profile '%s' stored.\n", p.Name)
}

func handleProfileList(store config.Store) {
	profiles := store.ListProfiles()
	if len(profiles) == 0 {
		fmt.Println("No profiles configured. Add one with 'profile add'.")
		return
	}

	defaultProfile, _ := store.GetDefaultProfile()
	for _, p := range profiles {
		marker := " "
		if p.Name == defaultProfile.Name {
			marker = "*"
		}
		fmt.Printf("%s %s\t%s\n", marker, p.Name, p.Endpoint)
	}
}

func handleProfileRemove(store config.Store) {
	if len(os.Args) < 4 {
		fmt.Println("Usage: profile remove <name>")
		os.Exit(1)
	}
	name := os.Args[3]
	if err := store.DeleteProfile(name); err != nil {
		fmt.Printf("Error removing profile: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Profile '%s' removed.\n", name)
}

func handleProfileSetDefault(store config.Store) {
	if len(os.Args) < 4 {
		fmt.Println("Usage: profile set-default <name>")
		os.Exit(1)
	}
	name := os.Args[3]
	if err := store.SetDefaultProfile(name); err != nil {
		fmt.Printf("Error setting default profile: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Profile '%s' is now the default.\n", name)
}

func handleProfileImport(store config.Store) {
	if len(os.Args) < 4 {
		fmt.Println("Usage: profile import <path-to-yaml>")
		os.Exit(1)
	}
	count, err := config.ImportYAML(store, os.Args[3])
	if err != nil {
		fmt.Printf("Error importing profiles: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d profile(s).\n", count)
}

// showProfileHelp displays help for the profile command
func showProfileHelp() {
	programName := os.Args[0]
	fmt.Fprintf(os.Stderr, `%s profile - Manage API profiles

Usage:
  %s profile <command> [options]

Available Commands:
  add          Store a profile (--name, --endpoint, --token, --feed, --default)
  list         List stored profiles; the default is marked with *
  remove       Remove a profile by name
  set-default  Choose the profile used when none is named
  import       Import profiles from a YAML file

Examples:
  %s profile add --name prod --endpoint https://api.example.com --default
  %s profile list
  %s profile import ~/.lbman/profiles.yaml
`, programName, programName, programName, programName, programName)
}
