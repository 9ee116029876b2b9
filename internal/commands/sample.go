package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/invoicery-dev/invoicery/internal/sample"
)

func newSampleCommand() *cobra.Command {
	var (
		out       string
		withGLCC  bool
		scenarios bool
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate a demo invoice CSV",
		Long: `Sample writes a demo CSV to exercise the pipeline without a real
export. The default is a small 2-invoice file; --with-gl-cc adds GL
account and cost center columns, --scenarios produces a richer file
with FI and PO style invoices.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if scenarios && withGLCC {
				return fmt.Errorf("--scenarios already includes account assignments; drop --with-gl-cc")
			}

			var data []byte
			if scenarios {
				data = sample.Scenarios()
			} else {
				data = sample.Basic(withGLCC)
			}

			if out == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}

			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("writing sample: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "sample-invoices.csv", "Output file, or - for stdout")
	cmd.Flags().BoolVar(&withGLCC, "with-gl-cc", false, "Include GL account and cost center columns")
	cmd.Flags().BoolVar(&scenarios, "scenarios", false, "Generate the scenario-rich sample")

	return cmd
}
