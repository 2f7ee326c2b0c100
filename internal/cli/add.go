package cli

import (
	"bytes"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/chronolog-dev/chronolog/pkg/changelog"
	"github.com/chronolog-dev/chronolog/pkg/noteio"
)

const addExample = `  chronolog add --release 1.10.10 \
    --entry "Fixed a bug in :func:` + "`" + `.parsePDB` + "`" + ` (#950)." \
    changes.rst
`

// NewAddCmd returns the add command.
func NewAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add [file]",
		Short:   "Prepend a new release",
		Example: addExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			var merr error

			flags := cc.Flags()
			release, err := flags.GetString("release")
			if err != nil {
				merr = multierror.Append(merr, err)
			}
			date, err := flags.GetString("date")
			if err != nil {
				merr = multierror.Append(merr, err)
			}
			category, err := flags.GetString("category")
			if err != nil {
				merr = multierror.Append(merr, err)
			}
			entries, err := flags.GetStringArray("entry")
			if err != nil {
				merr = multierror.Append(merr, err)
			}

			if merr != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, merr)
			}

			rel, err := buildRelease(release, date, category, entries)
			if err != nil {
				return err
			}

			path := notesArg(args)

			c, err := parseNotesFile(path)
			if err != nil {
				return err
			}

			if err := c.Prepend(rel); err != nil {
				return err
			}

			buf := &bytes.Buffer{}
			if err := changelog.Write(buf, c); err != nil {
				return err
			}

			return noteio.WriteAtomic(path, buf.Bytes())
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringP("release", "r", "", "Version for the new release (required)")
	cmd.Flags().StringP("date", "d", "", "Release date (defaults to today)")
	cmd.Flags().StringP("category", "c", changelog.CategoryNewFeatures, "Category for the new entries")
	cmd.Flags().StringArrayP("entry", "e", []string{}, "Entry text (repeatable)")

	must(cmd.MarkFlagRequired("entry"))
	must(cmd.MarkFlagRequired("release"))

	return cmd
}

func buildRelease(version, date, category string, entries []string) (*changelog.Release, error) {
	var (
		when time.Time
		raw  string
	)

	if date == "" {
		when = time.Now()
		raw = when.Format(changelog.CanonicalDateFormat)
	} else {
		t, _, err := changelog.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}

		when = t
		raw = when.Format(changelog.CanonicalDateFormat)
	}

	sec := &changelog.Section{Category: category}
	for _, text := range entries {
		sec.Entries = append(sec.Entries, &changelog.Entry{Text: text})
	}

	return &changelog.Release{
		Version:  version,
		RawDate:  raw,
		Date:     when,
		Sections: []*changelog.Section{sec},
	}, nil
}
