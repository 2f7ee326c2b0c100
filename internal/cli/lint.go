package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/chronolog-dev/chronolog/pkg/lint"
	"github.com/chronolog-dev/chronolog/pkg/logtui"
)

const lintExample = `  chronolog lint changes.rst
  # Check several documents at once
  chronolog lint docs/*.rst

  # Treat unresolved symbol references as errors
  chronolog lint --symbols symbols.txt changes.rst
`

// NewLintCmd returns the lint command.
func NewLintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "lint [files...]",
		Short:   "Check release-notes documents",
		Example: lintExample,
		RunE: func(cc *cobra.Command, args []string) error {
			var merr error

			flags := cc.Flags()
			configPath, err := flags.GetString("config")
			if err != nil {
				merr = multierror.Append(merr, err)
			}
			symbolPaths, err := flags.GetStringSlice("symbols")
			if err != nil {
				merr = multierror.Append(merr, err)
			}
			jobs, err := flags.GetInt64("jobs")
			if err != nil {
				merr = multierror.Append(merr, err)
			}
			logLevel, err := flags.GetString("log_level")
			if err != nil {
				merr = multierror.Append(merr, err)
			}
			quiet, err := flags.GetBool("quiet")
			if err != nil {
				merr = multierror.Append(merr, err)
			}

			if merr != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, merr)
			}

			linter, err := lintSetup(configPath, symbolPaths)
			if err != nil {
				return err
			}

			runner := lint.NewRunner(linter, lint.WithJobs(jobs))
			paths := notesArgs(args)

			if quiet || !isatty.IsTerminal(os.Stdout.Fd()) {
				results, err := runner.Run(cc.Context(), paths)
				printResults(cc, results)

				if err != nil {
					return fmt.Errorf("lint failed: %w", err)
				}

				return nil
			}

			lt, err := logtui.NewLintTUI(cc.OutOrStdout(), logLevel, runner)
			if err != nil {
				return fmt.Errorf("failed to create tui: %w", err)
			}

			results, err := lt.Run(cc.Context(), paths)
			printResults(cc, results)

			if err != nil {
				return fmt.Errorf("lint failed: %w", err)
			}

			return nil
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringSliceP("symbols", "s", []string{}, "Symbol table files for cross-reference checks")
	cmd.Flags().Int64P("jobs", "j", 0, "Maximum number of files checked concurrently")
	cmd.Flags().BoolP("quiet", "q", false, "Run in quiet mode")

	return cmd
}

func printResults(cc *cobra.Command, results []lint.Result) {
	for _, res := range results {
		for _, issue := range res.Issues {
			cc.Println(issue.Error())
		}
	}
}
