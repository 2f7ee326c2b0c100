package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/chronolog-dev/chronolog/pkg/log"
)

// DefaultConfigFile is consulted when --config is not given.
const DefaultConfigFile = ".chronolog.yaml"

func NewRootCmd(name, shortDesc, longDesc string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           name,
		Short:         shortDesc,
		Long:          longDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       GetVersionString(),
	}

	cmd.PersistentFlags().String("log_level", "warn", "Set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log_format", "text", "Set the log format (text, json)")
	cmd.PersistentFlags().String("config", DefaultConfigFile, "Path to the configuration file")

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		flags := cc.Flags()

		var merr error

		logLevel, err := flags.GetString("log_level")
		if err != nil {
			merr = multierror.Append(merr, err)
		}

		logFormat, err := flags.GetString("log_format")
		if err != nil {
			merr = multierror.Append(merr, err)
		}

		if merr != nil {
			return fmt.Errorf("invalid argument: %w", merr)
		}

		h, err := log.CreateHandler(os.Stderr, logLevel, logFormat)
		if err != nil {
			return fmt.Errorf("failed creating log handler: %w", err)
		}
		slog.SetDefault(slog.New(h))

		return nil
	}

	cmd.AddCommand(NewLintCmd())
	cmd.AddCommand(NewShowCmd())
	cmd.AddCommand(NewRenderCmd())
	cmd.AddCommand(NewSchemaCmd())
	cmd.AddCommand(NewDiffCmd())
	cmd.AddCommand(NewFmtCmd())
	cmd.AddCommand(NewAddCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
