package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mdewilde/treecomp/pkg/config"
)

// NewConfigCommand creates the config command
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `View or modify treecomp configuration.`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigInitCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			fmt.Printf("Compare Content: %v\n", cfg.Compare.CompareContent)
			fmt.Printf("Ignore Line Ending: %v\n", cfg.Compare.IgnoreLineEnding)
			fmt.Printf("Ignore Whitespace: %v\n", cfg.Compare.IgnoreWhiteSpaces)
			fmt.Printf("Ignore All Whitespace: %v\n", cfg.Compare.IgnoreAllWhiteSpaces)
			fmt.Printf("Ignore Empty Lines: %v\n", cfg.Compare.IgnoreEmptyLines)
			fmt.Printf("Ignore Filename Case: %v\n", cfg.Compare.IgnoreFileNameCase)
			fmt.Printf("Extension Pairs: %s\n", formatPairs(cfg.Compare.IgnoreExtension))
			fmt.Printf("Include: %s\n", strings.Join(cfg.Compare.Include, ", "))
			fmt.Printf("Exclude: %s\n", strings.Join(cfg.Compare.Exclude, ", "))
			fmt.Printf("Show Identical: %v\n", cfg.Compare.ShowIdentical)
			fmt.Printf("Max Workers: %d\n", cfg.Performance.MaxWorkers)
			fmt.Printf("Output Format: %s\n", cfg.Output.Format)
			fmt.Printf("Log Level: %s\n", cfg.Logging.Level)

			return nil
		},
	}
}

func formatPairs(pairs []config.ExtensionPair) string {
	if len(pairs) == 0 {
		return "(none)"
	}
	formatted := make([]string, len(pairs))
	for i, pair := range pairs {
		a, b := pair.Normalized()
		formatted[i] = fmt.Sprintf("%s=%s", a, b)
	}
	return strings.Join(formatted, ", ")
}

func newConfigInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultConfigPath()
			if err != nil {
				return err
			}

			cfg := config.Default()
			if err := config.SaveToFile(cfg, path); err != nil {
				return err
			}

			fmt.Printf("Configuration file created at: %s\n", path)
			return nil
		},
	}
}
