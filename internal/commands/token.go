package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/invoicery-dev/invoicery/internal/client"
)

func newTokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Verify API credentials by fetching an access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}

			id, secret, err := credentials(cfg)
			if err != nil {
				return err
			}

			api := client.New(cfg.API, id, secret)
			expiry, err := api.Authenticate(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Authenticated against %s, token valid until %s\n",
				cfg.API.BaseURL, expiry.Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringP("config", "c", defaultConfigFile, "Config file")

	return cmd
}
