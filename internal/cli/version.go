package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chronolog-dev/chronolog/internal/version"
)

func GetVersionString() string {
	return fmt.Sprintf("%s+%s", version.Version, shortRevision())
}

func shortRevision() string {
	if len(version.Revision) > 7 {
		return version.Revision[:7]
	}

	return version.Revision
}

// NewVersionCmd returns the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cc *cobra.Command, _ []string) {
			cc.Println(GetVersionString())
		},
		SilenceUsage: true,
	}
}
