package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/invoicery-dev/invoicery/internal/transform"
)

func newTransformCommand() *cobra.Command {
	var (
		taxMode    string
		invoiceCol string
		sets       []string
		testMode   bool
		compact    bool
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "transform [file]",
		Short: "Group invoice rows and print the payloads as JSON",
		Long: `Transform reads a flat CSV or XLSX export, groups rows into invoices
and prints one JSON payload per invoice to stdout. Warnings go to
stderr. Nothing is sent anywhere; pipe the output or eyeball it, then
use "send" when it looks right.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}

			overrides, err := mergeOverrides(cfg.Overrides, sets)
			if err != nil {
				return err
			}
			opts, err := buildOptions(cfg, taxMode, invoiceCol, overrides, testMode)
			if err != nil {
				return err
			}

			var file string
			if len(args) == 1 {
				file = args[0]
			}
			rows, err := readInput(file, testMode)
			if err != nil {
				return err
			}

			results, err := transform.Transform(rows, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			count := 0
			for res := range results {
				// Laziness pays off here: with --limit the remaining groups
				// are never built.
				if limit > 0 && count >= limit {
					break
				}
				printWarnings(res.Warnings)

				var data []byte
				if compact {
					data, err = json.Marshal(res.Payload)
				} else {
					data, err = json.MarshalIndent(res.Payload, "", "  ")
				}
				if err != nil {
					return fmt.Errorf("encoding payload: %w", err)
				}
				fmt.Fprintln(out, string(data))
				count++
			}

			stderrf("%d payload(s)\n", count)
			return nil
		},
	}

	cmd.Flags().StringP("config", "c", defaultConfigFile, "Config file")
	cmd.Flags().StringVar(&taxMode, "tax-mode", "", "Tax derivation: header or sum-of-lines")
	cmd.Flags().StringVar(&invoiceCol, "invoice-column", "", "Column that identifies the invoice")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Header override as field=value (repeatable)")
	cmd.Flags().BoolVar(&testMode, "test", false, "Build one payload purely from overrides, no input file")
	cmd.Flags().BoolVar(&compact, "compact", false, "One JSON object per line instead of indented")
	cmd.Flags().IntVar(&limit, "limit", 0, "Stop after this many payloads (0 = all)")

	return cmd
}
