package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mdewilde/treecomp/internal/cli"
)

func main() {
	if err := run(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			// The command already rendered its own failure output
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "treecomp",
		Short: "Directory tree comparison utility",
		Long: `treecomp compares two directory trees and classifies every entry as
distinct, left-only, right-only or identical under a configurable
equivalence policy (byte or line comparison, whitespace and line-ending
normalization, name-case folding, cross-extension equivalence and
include/exclude filters).`,
		Version:       cli.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cli.AddGlobalFlags(rootCmd)

	rootCmd.AddCommand(cli.NewCompareCommand())
	rootCmd.AddCommand(cli.NewConfigCommand())
	rootCmd.AddCommand(cli.NewVersionCommand())

	return rootCmd.Execute()
}
