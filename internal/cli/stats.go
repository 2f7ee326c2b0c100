package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewStatsCmd returns the stats command.
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "Summarize entry counts per release",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			asJSON, err := cc.Flags().GetBool("json")
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
			}

			c, err := parseNotesFile(notesArg(args))
			if err != nil {
				return err
			}

			stats := c.Stats()

			if asJSON {
				enc := json.NewEncoder(cc.OutOrStdout())
				enc.SetIndent("", "  ")

				return enc.Encode(stats)
			}

			tw := tabwriter.NewWriter(cc.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "VERSION\tDATE\tENTRIES\tREFS\tISSUES")

			for _, st := range stats {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\n",
					st.Version, st.Date, st.Entries, st.Refs, st.Issues)
			}

			if err := tw.Flush(); err != nil {
				return fmt.Errorf("write stats: %w", err)
			}

			return nil
		},
		SilenceUsage: true,
	}
	cmd.Flags().Bool("json", false, "Emit stats as JSON")

	return cmd
}
