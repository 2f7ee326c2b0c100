package cli

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/chronolog-dev/chronolog/pkg/noteio"
	"github.com/chronolog-dev/chronolog/pkg/render"
)

// NewRenderCmd returns the render command.
func NewRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a document to another format",
		Example: `  chronolog render --format html --output changes.html changes.rst
  chronolog render --format json changes.rst
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			var merr error

			flags := cc.Flags()
			format, err := flags.GetString("format")
			if err != nil {
				merr = multierror.Append(merr, err)
			}
			output, err := flags.GetString("output")
			if err != nil {
				merr = multierror.Append(merr, err)
			}

			if merr != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, merr)
			}

			r, err := render.Get(format)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
			}

			c, err := parseNotesFile(notesArg(args))
			if err != nil {
				return err
			}

			if output == "" {
				return r.Render(cc.OutOrStdout(), c)
			}

			buf := &bytes.Buffer{}
			if err := r.Render(buf, c); err != nil {
				return err
			}

			return noteio.WriteAtomic(output, buf.Bytes())
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringP("format", "f", "rst",
		fmt.Sprintf("Output format (%s)", strings.Join(render.Formats(), ", ")))
	cmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")

	return cmd
}

// NewSchemaCmd returns the schema command.
func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Emit the JSON schema for rendered documents",
		RunE: func(cc *cobra.Command, _ []string) error {
			return render.WriteSchema(cc.OutOrStdout())
		},
		SilenceUsage: true,
	}
}
