package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/chronolog-dev/chronolog/pkg/changelog"
	"github.com/chronolog-dev/chronolog/pkg/noteio"
)

var ErrNotFormatted = errors.New("file is not in canonical form")

// NewFmtCmd returns the fmt command.
func NewFmtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [files...]",
		Short: "Rewrite documents in canonical form",
		RunE: func(cc *cobra.Command, args []string) error {
			check, err := cc.Flags().GetBool("check")
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
			}

			var merr error

			for _, path := range notesArgs(args) {
				if err := formatFile(cc, path, check); err != nil {
					merr = multierror.Append(merr, err)
				}
			}

			return merr
		},
		SilenceUsage: true,
	}
	cmd.Flags().Bool("check", false, "Report files that are not canonical, without rewriting")

	return cmd
}

func formatFile(cc *cobra.Command, path string, check bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	c, err := changelog.Parse(bytes.NewReader(data), path)
	if err != nil {
		return err
	}

	buf := &bytes.Buffer{}
	if err := changelog.Write(buf, c); err != nil {
		return err
	}

	if bytes.Equal(data, buf.Bytes()) {
		return nil
	}

	if check {
		cc.Println(path)

		return fmt.Errorf("%w: %s", ErrNotFormatted, path)
	}

	return noteio.WriteAtomic(path, buf.Bytes())
}
