package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/headerguard/headerguard/pkg/config"
	"github.com/headerguard/headerguard/pkg/errors"
	"github.com/headerguard/headerguard/pkg/scanner"
	"github.com/headerguard/headerguard/pkg/ui"
)

var (
	scanFix          bool
	scanDiff         bool
	scanVerboseFiles bool
	scanConfigPath   string
	scanFormat       string
	scanJobs         int
)

var scanCmd = &cobra.Command{
	Use:   "scan [ROOT]",
	Short: "Check or fix license headers in a source tree",
	Long: `Walk ROOT (default: the current directory), check every covered file
for a compliant license header, and report one line per file.

Exit code 0 means all files are compliant or were successfully fixed,
1 means violations or per-file errors remain, 2 means the configuration
itself is broken.`,
	Example: `  headerguard scan                      # check the current tree
  headerguard scan --fix                 # repair violations in place
  headerguard scan --diff path/to/repo   # show what --fix would change
  headerguard scan --format json | jq .  # machine-readable report`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}

		format, err := ui.ParseFormat(scanFormat)
		if err != nil {
			return errors.Wrap(err, errors.ErrConfigValid, "invalid --format")
		}

		// interrupt stops enqueuing; in-flight files finish and the
		// remainder is reported as interrupted
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		overrides := map[string]any{}
		if scanJobs > 0 {
			overrides["jobs"] = scanJobs
		}
		cfg, err := config.Load(scanConfigPath, root, overrides)
		if err != nil {
			return err
		}

		s, err := scanner.New(cfg)
		if err != nil {
			return err
		}

		report, err := s.Run(ctx, scanner.Options{
			Root:            root,
			Fix:             scanFix,
			Diff:            scanDiff && !scanFix,
			IncludeExcluded: scanVerboseFiles,
		})
		if err != nil {
			return err
		}

		renderer := ui.NewRenderer(cmd.OutOrStdout(), format.Resolve(os.Stdout))
		if err := renderer.Render(report); err != nil {
			return err
		}

		if report.Interrupted {
			return errors.New(errors.ErrInterrupted, "scan interrupted before completion")
		}
		if report.Failed() {
			return errors.New(errors.ErrViolations, "violations remain")
		}
		return nil
	},
}

func init() {
	scanCmd.Flags().BoolVar(&scanFix, "fix", false, "Insert or replace headers in violating files")
	scanCmd.Flags().BoolVar(&scanDiff, "diff", false, "Show what --fix would change (check mode only)")
	scanCmd.Flags().BoolVar(&scanVerboseFiles, "verbose-files", false, "Include excluded files in the report")
	scanCmd.Flags().StringVar(&scanConfigPath, "config", "", "Path to the config file (default: probe ROOT)")
	scanCmd.Flags().StringVar(&scanFormat, "format", "auto", "Output format: auto, term, text, json, yaml")
	scanCmd.Flags().IntVar(&scanJobs, "jobs", 0, "Worker pool size (default: one per CPU)")
}
