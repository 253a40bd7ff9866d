package cli

import (
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags every subcommand sees. The
// config path feeds loadConfig; verbose and quiet are overlaid onto the
// loaded configuration in applyCompareFlags.
type globalOptions struct {
	configFile string
	verbose    bool
	quiet      bool
}

var globalFlags globalOptions

// AddGlobalFlags registers the persistent flags on the root command
func AddGlobalFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&globalFlags.configFile, "config", "", "config file (default $HOME/.config/treecomp/config.yaml)")
	pf.BoolVarP(&globalFlags.verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVarP(&globalFlags.quiet, "quiet", "q", false, "suppress progress and non-error output")
}
