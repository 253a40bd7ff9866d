package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mdewilde/treecomp/pkg/config"
	"github.com/mdewilde/treecomp/pkg/logging"
	"github.com/mdewilde/treecomp/pkg/output"
	"github.com/mdewilde/treecomp/pkg/session"
	"github.com/mdewilde/treecomp/pkg/storage"
)

// compareFlags holds flag values for the compare command
type compareFlags struct {
	NoContent          bool
	IgnoreLineEnding   bool
	IgnoreWhitespace   bool
	IgnoreAllSpace     bool
	IgnoreEmptyLines   bool
	CaseSensitiveNames bool
	ExtensionPairs     []string
	Include            []string
	Exclude            []string
	ShowIdentical      bool
	Output             string
	DiffReport         string
	DiffFormat         string
	WithDiffs          bool
}

// NewCompareCommand creates the compare command
func NewCompareCommand() *cobra.Command {
	var flags compareFlags

	cmd := &cobra.Command{
		Use:   "compare LEFT RIGHT",
		Short: "Compare two folder trees",
		Long: `Compare the two folder trees rooted at LEFT and RIGHT and classify
every entry as distinct, left-only, right-only or identical under the
configured equivalence policy. Nothing is ever copied or deleted.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args[0], args[1], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.NoContent, "no-content", false, "classify by presence only, skip content comparison")
	cmd.Flags().BoolVar(&flags.IgnoreLineEnding, "ignore-line-ending", false, "treat CRLF and LF as equal")
	cmd.Flags().BoolVar(&flags.IgnoreWhitespace, "ignore-whitespace", false, "trim line edges before comparing")
	cmd.Flags().BoolVar(&flags.IgnoreAllSpace, "ignore-all-whitespace", false, "ignore all whitespace differences")
	cmd.Flags().BoolVar(&flags.IgnoreEmptyLines, "ignore-empty-lines", false, "drop blank lines before comparing")
	cmd.Flags().BoolVar(&flags.CaseSensitiveNames, "case-sensitive", false, "match file names case-sensitively")
	cmd.Flags().StringSliceVar(&flags.ExtensionPairs, "ignore-extension", nil, "extension pairs treated as equivalent (e.g. js:ts)")
	cmd.Flags().StringSliceVar(&flags.Include, "include", nil, "glob patterns to include")
	cmd.Flags().StringSliceVar(&flags.Exclude, "exclude", nil, "glob patterns to exclude")
	cmd.Flags().BoolVar(&flags.ShowIdentical, "show-identical", false, "list identical pairs in the result")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "output format: human, json")
	cmd.Flags().StringVar(&flags.DiffReport, "diff-report", "", "write a differences report to this file")
	cmd.Flags().StringVar(&flags.DiffFormat, "diff-format", "human", "differences report format: human, json")
	cmd.Flags().BoolVar(&flags.WithDiffs, "with-diffs", false, "include line-level patches in the differences report")

	return cmd
}

func runCompare(cmd *cobra.Command, leftRoot, rightRoot string, flags compareFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := validateRoots(leftRoot, rightRoot); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyCompareFlags(cmd, cfg, flags); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}

	left, err := storage.NewLocal(leftRoot)
	if err != nil {
		return fmt.Errorf("failed to open left root: %w", err)
	}
	defer left.Close()

	right, err := storage.NewLocal(rightRoot)
	if err != nil {
		return fmt.Errorf("failed to open right root: %w", err)
	}
	defer right.Close()

	formatter := selectFormatter(cfg)
	if err := formatter.Start(os.Stdout); err != nil {
		return err
	}

	sess := session.New(cfg, left, right, logger)
	sess.SetProgressCallback(func(done, total int) {
		formatter.Progress(done, total)
	})

	result, err := sess.Run(ctx)
	if err != nil {
		formatter.Error(err)
		return &ExitError{Code: result.Status.ExitCode(), Err: err}
	}

	if err := formatter.Complete(result); err != nil {
		return err
	}

	if flags.DiffReport != "" {
		opts := output.ReportOptions{Format: flags.DiffFormat, WithDiffs: flags.WithDiffs}
		if err := output.WriteDifferencesReport(ctx, result, left, right, flags.DiffReport, opts); err != nil {
			return fmt.Errorf("failed to write differences report: %w", err)
		}
	}

	if result.TotalDifferences() > 0 {
		return &ExitError{Code: 1}
	}
	return nil
}

// applyCompareFlags overlays command-line flags onto the loaded
// configuration; only flags the user actually set take effect
func applyCompareFlags(cmd *cobra.Command, cfg *config.Config, flags compareFlags) error {
	if flags.NoContent {
		cfg.Compare.CompareContent = false
	}
	if cmd.Flags().Changed("ignore-line-ending") {
		cfg.Compare.IgnoreLineEnding = flags.IgnoreLineEnding
	}
	if cmd.Flags().Changed("ignore-whitespace") {
		cfg.Compare.IgnoreWhiteSpaces = flags.IgnoreWhitespace
	}
	if cmd.Flags().Changed("ignore-all-whitespace") {
		cfg.Compare.IgnoreAllWhiteSpaces = flags.IgnoreAllSpace
	}
	if cmd.Flags().Changed("ignore-empty-lines") {
		cfg.Compare.IgnoreEmptyLines = flags.IgnoreEmptyLines
	}
	if flags.CaseSensitiveNames {
		cfg.Compare.IgnoreFileNameCase = false
	}
	if cmd.Flags().Changed("ignore-extension") {
		pairs, err := parseExtensionPairs(flags.ExtensionPairs)
		if err != nil {
			return err
		}
		cfg.Compare.IgnoreExtension = pairs
	}
	if cmd.Flags().Changed("include") {
		cfg.Compare.Include = flags.Include
	}
	if cmd.Flags().Changed("exclude") {
		cfg.Compare.Exclude = flags.Exclude
	}
	if cmd.Flags().Changed("show-identical") {
		cfg.Compare.ShowIdentical = flags.ShowIdentical
	}
	if flags.Output != "" {
		cfg.Output.Format = flags.Output
	}
	if globalFlags.quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}
	if globalFlags.verbose {
		cfg.Logging.Level = "debug"
	}
	return nil
}

// selectFormatter picks the output formatter from the configuration
func selectFormatter(cfg *config.Config) output.Formatter {
	if cfg.Output.Format == "json" {
		return output.NewJSONFormatter()
	}
	if cfg.Output.Progress && !cfg.Output.Quiet {
		return output.NewProgressFormatter()
	}
	return output.NewHumanFormatter()
}
