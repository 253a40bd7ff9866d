package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdewilde/treecomp/pkg/config"
)

// validateRoots checks that both comparison roots exist, are
// directories, and are not the same path
func validateRoots(left, right string) error {
	for _, root := range []string{left, right} {
		info, err := os.Stat(root)
		if os.IsNotExist(err) {
			return fmt.Errorf("root path does not exist: %s", root)
		}
		if err != nil {
			return fmt.Errorf("failed to access root path: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("root path is not a directory: %s", root)
		}
	}

	leftAbs, err := filepath.Abs(left)
	if err != nil {
		return fmt.Errorf("failed to resolve left root: %w", err)
	}
	rightAbs, err := filepath.Abs(right)
	if err != nil {
		return fmt.Errorf("failed to resolve right root: %w", err)
	}

	if leftAbs == rightAbs {
		return fmt.Errorf("left and right roots cannot be the same: %s", leftAbs)
	}

	return nil
}

// parseExtensionPairs parses "js:ts" style flag values
func parseExtensionPairs(values []string) ([]config.ExtensionPair, error) {
	pairs := make([]config.ExtensionPair, 0, len(values))
	for _, value := range values {
		parts := strings.SplitN(value, ":", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid extension pair %q (expected ext:ext, e.g. js:ts)", value)
		}
		pairs = append(pairs, config.ExtensionPair{parts[0], parts[1]})
	}
	return pairs, nil
}

// loadConfig loads the configuration from the global --config flag or
// the default location
func loadConfig() (*config.Config, error) {
	if globalFlags.configFile != "" {
		return config.LoadFromFile(globalFlags.configFile)
	}
	return config.LoadDefault()
}
