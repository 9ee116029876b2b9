package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/invoicery-dev/invoicery/internal/config"
	"github.com/invoicery-dev/invoicery/internal/model"
	"github.com/invoicery-dev/invoicery/internal/rowsource"
	"github.com/invoicery-dev/invoicery/internal/transform"
)

const defaultConfigFile = "invoicery.yaml"

// loadConfig reads the config file, falling back to defaults when it does
// not exist. A present-but-broken file is an error, never silently ignored.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.Default(), nil
	}
	return config.Load(path)
}

// mergeOverrides layers --set field=value pairs over the configured
// overrides. Flags win.
func mergeOverrides(configured map[string]string, sets []string) (map[string]string, error) {
	out := make(map[string]string, len(configured)+len(sets))
	for k, v := range configured {
		out[k] = v
	}
	for _, s := range sets {
		k, v, ok := strings.Cut(s, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid override %q (want field=value)", s)
		}
		out[k] = strings.TrimSpace(v)
	}
	return out, nil
}

// buildOptions combines config and flags into transform options. Empty flag
// values mean "use the config".
func buildOptions(cfg *config.Config, taxModeFlag, invoiceColFlag string, overrides map[string]string, testMode bool) (transform.Options, error) {
	opts := transform.DefaultOptions()

	if cfg.Columns.InvoiceID != "" {
		opts.InvoiceColumn = cfg.Columns.InvoiceID
	}
	if cfg.Columns.LineTax != "" {
		opts.LineTaxColumn = cfg.Columns.LineTax
	}
	if cfg.Columns.HeaderTax != "" {
		opts.HeaderTaxColumn = cfg.Columns.HeaderTax
	}
	if invoiceColFlag != "" {
		opts.InvoiceColumn = invoiceColFlag
	}

	mode := cfg.TaxMode
	if taxModeFlag != "" {
		mode = taxModeFlag
	}
	if mode != "" {
		tm, err := transform.ParseTaxMode(mode)
		if err != nil {
			return transform.Options{}, err
		}
		opts.TaxMode = tm
	}

	opts.Overrides = overrides
	opts.TestMode = testMode
	opts.Amounts = transform.AmountFormat{Places: cfg.Amounts.Places}
	opts.KeepRawDates = cfg.KeepRaw.Dates
	return opts, nil
}

// readInput loads the source rows, or none in test mode.
func readInput(file string, testMode bool) ([]*model.Row, error) {
	if testMode {
		return nil, nil
	}
	if file == "" {
		return nil, fmt.Errorf("an input file is required unless --test is set")
	}
	return rowsource.DefaultRegistry().ReadFile(file)
}

// printWarnings reports non-fatal findings on stderr so stdout stays clean
// JSON for piping.
func printWarnings(warns []transform.Warning) {
	for _, w := range warns {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
}

// truncate shortens s for log lines and terminal output.
func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// stderrf writes a formatted status line to stderr.
func stderrf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}

// credentials resolves the client id/secret or explains how to supply them.
func credentials(cfg *config.Config) (id, secret string, err error) {
	id, secret = cfg.Credentials()
	if id == "" || secret == "" {
		return "", "", fmt.Errorf("missing API credentials (set %s/%s or api.client_id/api.client_secret)",
			config.EnvClientID, config.EnvClientSecret)
	}
	return id, secret, nil
}
