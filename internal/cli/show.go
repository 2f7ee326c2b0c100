package cli

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/chronolog-dev/chronolog/pkg/changelog"
)

var ErrReleaseNotFound = errors.New("release not found")

const showExample = `  # Show the latest release
  chronolog show changes.rst

  # Show one release
  chronolog show --release 1.10.9 changes.rst

  # Show everything since a release that mentions a symbol
  chronolog show --since 1.10 --symbol ModeEnsemble changes.rst
`

// NewShowCmd returns the show command.
func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "show [file]",
		Short:   "Show releases from a document",
		Example: showExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			var merr error

			flags := cc.Flags()
			release, err := flags.GetString("release")
			if err != nil {
				merr = multierror.Append(merr, err)
			}
			since, err := flags.GetString("since")
			if err != nil {
				merr = multierror.Append(merr, err)
			}
			symbol, err := flags.GetString("symbol")
			if err != nil {
				merr = multierror.Append(merr, err)
			}
			category, err := flags.GetString("category")
			if err != nil {
				merr = multierror.Append(merr, err)
			}

			if merr != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, merr)
			}

			c, err := parseNotesFile(notesArg(args))
			if err != nil {
				return err
			}

			sel, err := selectReleases(c, release, since, symbol, category)
			if err != nil {
				return err
			}

			return changelog.Write(cc.OutOrStdout(), &changelog.Changelog{Releases: sel})
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringP("release", "r", "", "Show a single release")
	cmd.Flags().String("since", "", "Show releases newer than a version")
	cmd.Flags().String("symbol", "", "Only releases mentioning a symbol")
	cmd.Flags().String("category", "", "Only entries in a category")

	return cmd
}

// selectReleases narrows a document to the requested releases. With no
// selector it yields the latest release only.
func selectReleases(c *changelog.Changelog, release, since, symbol, category string) ([]*changelog.Release, error) {
	var sel []*changelog.Release

	switch {
	case release != "":
		rel := c.Find(release)
		if rel == nil {
			return nil, fmt.Errorf("%w: %s", ErrReleaseNotFound, release)
		}

		sel = []*changelog.Release{rel}

	case since != "":
		sel = c.Since(since)

	case symbol == "" && category == "":
		if rel := c.Latest(); rel != nil {
			sel = []*changelog.Release{rel}
		}

		return sel, nil

	default:
		sel = c.Releases
	}

	sub := &changelog.Changelog{Releases: sel}
	if symbol != "" {
		sub = &changelog.Changelog{Releases: sub.FilterSymbol(symbol)}
	}

	if category != "" {
		sub = &changelog.Changelog{Releases: sub.FilterCategory(category)}
	}

	return sub.Releases, nil
}
