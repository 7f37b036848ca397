// Package scenario writes tile maps into game scenario scripts, where each scenario
// is a copy of a template script with the tile table appended, stored at paths
// like "/scenarios/{name}/control.lua".
package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrInvalidPattern = errors.New("img2map: invalid file pattern")
	ErrNoScenariosDir = errors.New("img2map: scenarios directory not configured")
)

const (
	// EnvScenariosDir overrides the scenarios directory.
	EnvScenariosDir = "IMG2MAP_SCENARIOS"
	ControlFile     = "control.lua"
)

func validatePattern(pattern string) error {
	if !strings.Contains(pattern, "{name}") {
		return fmt.Errorf("%w: placeholder {name} not found", ErrInvalidPattern)
	}
	return nil
}

func formatPattern(pattern, name string) string {
	return strings.ReplaceAll(pattern, "{name}", name)
}

// Pattern returns the control script pattern for scenarios stored in dir.
func Pattern(dir string) string {
	return filepath.Join(dir, "{name}", ControlFile)
}

// Name returns the scenario name for an image: its base name without extension.
func Name(imagePath string) string {
	base := filepath.Base(imagePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DefaultDir returns the scenarios directory from $IMG2MAP_SCENARIOS,
// falling back to the game's default location under $APPDATA.
func DefaultDir() (string, error) {
	if dir := os.Getenv(EnvScenariosDir); dir != "" {
		return dir, nil
	}
	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "Factorio", "scenarios"), nil
	}
	return "", fmt.Errorf("%w: set %s or APPDATA", ErrNoScenariosDir, EnvScenariosDir)
}
