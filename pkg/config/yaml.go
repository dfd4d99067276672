package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tommv/lbman/pkg/logging"
)

// expandHomeDir replaces the leading ~ with the user's home directory.
func expandHomeDir(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// ImportYAML loads profiles from a YAML file into the store. This is how
// pre-SQLite profile files (and hand-written bootstrap files) get in.
//
// Returns the number of imported profiles.
func ImportYAML(store Store, path string) (int, error) {
	expandedPath, err := expandHomeDir(path)
	if err != nil {
		return 0, err
	}

	data, err := os.ReadFile(expandedPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read profiles file %s: %w", expandedPath, err)
	}

	var file profilesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return 0, fmt.Errorf("failed to unmarshal profiles file %s: %w", expandedPath, err)
	}

	seen := make(map[string]bool)
	for i, p := range file.Profiles {
		if p.Name == "" {
			return 0, fmt.Errorf("profile at index %d has empty name", i)
		}
		if seen[p.Name] {
			return 0, fmt.Errorf("duplicate profile name: '%s'", p.Name)
		}
		seen[p.Name] = true

		if err := store.AddProfile(p); err != nil {
			return 0, fmt.Errorf("failed to import profile '%s': %w", p.Name, err)
		}
	}

	if file.Default != "" {
		if !seen[file.Default] {
			return 0, fmt.Errorf("default profile '%s' is not defined in %s", file.Default, expandedPath)
		}
		if err := store.SetDefaultProfile(file.Default); err != nil {
			return 0, err
		}
	}

	logging.LogDebug("Imported %d profiles from %s", len(file.Profiles), expandedPath)
	return len(file.Profiles), nil
}
