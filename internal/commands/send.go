package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/invoicery-dev/invoicery/internal/client"
	"github.com/invoicery-dev/invoicery/internal/runlog"
	"github.com/invoicery-dev/invoicery/internal/transform"
)

func newSendCommand() *cobra.Command {
	var (
		taxMode    string
		invoiceCol string
		sets       []string
		testMode   bool
		delayMS    int
	)

	cmd := &cobra.Command{
		Use:   "send [file]",
		Short: "Transform invoice rows and submit each payload to the API",
		Long: `Send runs the same transformation as "transform" and posts every
payload to the enrichment insert endpoint, one request per invoice,
pausing between requests. A rejected invoice is reported and logged
but does not stop the batch. Outcomes are appended to
logs/submission-log.csv.`,
		Args: cobra.MaximumNArgs(1),
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

			delay := cfg.Send.DelayMS
			if cmd.Flags().Changed("delay-ms") {
				delay = delayMS
			}

			api := client.New(cfg.API, id, secret)
			out := cmd.OutOrStdout()
			ctx := cmd.Context()

			var entries []runlog.Entry
			ok, failed := 0, 0
			first := true
			for res := range results {
				printWarnings(res.Warnings)

				if !first && delay > 0 {
					time.Sleep(time.Duration(delay) * time.Millisecond)
				}
				first = false

				extID := res.Payload.ExternalID
				resp, err := api.InsertInvoice(ctx, res.Payload)
				if err != nil {
					failed++
					fmt.Fprintf(out, "FAIL %s: %v\n", extID, err)
					entries = append(entries, runlog.Entry{
						Timestamp: time.Now(), Command: "send",
						ExternalID: extID, Status: 0, Detail: err.Error(),
					})
					continue
				}

				detail := truncate(resp.Body, 200)
				entries = append(entries, runlog.Entry{
					Timestamp: time.Now(), Command: "send",
					ExternalID: extID, Status: resp.Status, Detail: detail,
				})
				if resp.OK() {
					ok++
					fmt.Fprintf(out, "OK   %s (%d)\n", extID, resp.Status)
				} else {
					failed++
					fmt.Fprintf(out, "FAIL %s (%d): %s\n", extID, resp.Status, detail)
				}
			}

			if err := runlog.Append(".", entries); err != nil {
				return err
			}

			fmt.Fprintf(out, "%d sent, %d failed\n", ok, failed)
			if failed > 0 {
				return fmt.Errorf("%d of %d submissions failed", failed, ok+failed)
			}
			return nil
		},
	}

	cmd.Flags().StringP("config", "c", defaultConfigFile, "Config file")
	cmd.Flags().StringVar(&taxMode, "tax-mode", "", "Tax derivation: header or sum-of-lines")
	cmd.Flags().StringVar(&invoiceCol, "invoice-column", "", "Column that identifies the invoice")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Header override as field=value (repeatable)")
	cmd.Flags().BoolVar(&testMode, "test", false, "Send one payload built purely from overrides")
	cmd.Flags().IntVar(&delayMS, "delay-ms", 0, "Pause between requests in milliseconds")

	return cmd
}
