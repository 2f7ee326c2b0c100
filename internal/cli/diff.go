package cli

import (
	"github.com/spf13/cobra"

	"github.com/chronolog-dev/chronolog/pkg/diff"
)

// NewDiffCmd returns the diff command.
func NewDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <a> <b>",
		Short: "Compare two documents",
		Args:  cobra.ExactArgs(2),
		RunE: func(cc *cobra.Command, args []string) error {
			a, err := parseNotesFile(args[0])
			if err != nil {
				return err
			}

			b, err := parseNotesFile(args[1])
			if err != nil {
				return err
			}

			report, err := diff.Compare(a, b)
			if err != nil {
				return err
			}

			return report.WriteTo(cc.OutOrStdout())
		},
		SilenceUsage: true,
	}
}
