package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/invoicery-dev/invoicery/internal/client"
	"github.com/invoicery-dev/invoicery/internal/lookup"
	"github.com/invoicery-dev/invoicery/internal/rowsource"
	"github.com/invoicery-dev/invoicery/internal/runlog"
)

func newLookupCommand() *cobra.Command {
	var (
		noCheck bool
		dryRun  bool
		delayMS int
	)

	cmd := &cobra.Command{
		Use:   "lookup <type> <file>",
		Short: "Upload rows from a file into a lookup table",
		Long: `Lookup reads a CSV or XLSX file and inserts each row into the named
lookup table, one request per row. The table type is slugified to
lowercase letters, digits and underscores. Recommended columns are
` + strings.Join(lookup.RecommendedColumns, ", ") + `; extra columns
pass through unchanged.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}

			table := lookup.SlugifyType(args[0])
			if table == "" {
				return fmt.Errorf("invalid table type %q", args[0])
			}
			if table != args[0] {
				stderrf("table type normalized to %q\n", table)
			}

			rows, err := rowsource.DefaultRegistry().ReadFile(args[1])
			if err != nil {
				return err
			}

			if missing := lookup.MissingColumns(rows); len(missing) > 0 && !noCheck {
				return fmt.Errorf("missing recommended column(s) %s (use --no-check to upload anyway)",
					strings.Join(missing, ", "))
			}

			payloads := lookup.BuildRows(rows)
			out := cmd.OutOrStdout()

			if dryRun {
				for _, p := range payloads {
					data, err := json.Marshal(p)
					if err != nil {
						return fmt.Errorf("encoding row: %w", err)
					}
					fmt.Fprintln(out, string(data))
				}
				fmt.Fprintf(out, "%d row(s) for table %q (dry run)\n", len(payloads), table)
				return nil
			}

			id, secret, err := credentials(cfg)
			if err != nil {
				return err
			}

			delay := cfg.Send.DelayMS
			if cmd.Flags().Changed("delay-ms") {
				delay = delayMS
			}

			api := client.New(cfg.API, id, secret)
			ctx := cmd.Context()

			var entries []runlog.Entry
			ok, failed := 0, 0
			for i, p := range payloads {
				if i > 0 && delay > 0 {
					time.Sleep(time.Duration(delay) * time.Millisecond)
				}

				rowID := p["externalId"]
				if rowID == "" {
					rowID = p["key"]
				}
				resp, err := api.InsertLookupRow(ctx, table, p)
				if err != nil {
					failed++
					fmt.Fprintf(out, "FAIL %s: %v\n", rowID, err)
					entries = append(entries, runlog.Entry{
						Timestamp: time.Now(), Command: "lookup",
						ExternalID: rowID, Status: 0, Detail: err.Error(),
					})
					continue
				}

				detail := truncate(resp.Body, 200)
				entries = append(entries, runlog.Entry{
					Timestamp: time.Now(), Command: "lookup",
					ExternalID: rowID, Status: resp.Status, Detail: detail,
				})
				if resp.OK() {
					ok++
					fmt.Fprintf(out, "OK   %s (%d)\n", rowID, resp.Status)
				} else {
					failed++
					fmt.Fprintf(out, "FAIL %s (%d): %s\n", rowID, resp.Status, detail)
				}
			}

			if err := runlog.Append(".", entries); err != nil {
				return err
			}

			fmt.Fprintf(out, "%d inserted, %d failed into %q\n", ok, failed, table)
			if failed > 0 {
				return fmt.Errorf("%d of %d inserts failed", failed, ok+failed)
			}
			return nil
		},
	}

	cmd.Flags().StringP("config", "c", defaultConfigFile, "Config file")
	cmd.Flags().BoolVar(&noCheck, "no-check", false, "Skip the recommended-columns check")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the row payloads instead of uploading")
	cmd.Flags().IntVar(&delayMS, "delay-ms", 0, "Pause between requests in milliseconds")

	return cmd
}
