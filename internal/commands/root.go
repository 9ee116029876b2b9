package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/invoicery-dev/invoicery/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "invoicery",
		Short:   "Reshape flat invoice exports and upload them for enrichment",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newInitCommand(),
		newTransformCommand(),
		newSendCommand(),
		newLookupCommand(),
		newSampleCommand(),
		newTokenCommand(),
	)

	return rootCmd
}
