package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Env vars consulted when credentials are absent from the file. Secrets do
// not belong in a YAML that tends to get committed.
const (
	EnvClientID     = "INVOICERY_CLIENT_ID"
	EnvClientSecret = "INVOICERY_CLIENT_SECRET"
)

// Config represents the top-level invoicery.yaml configuration.
type Config struct {
	API       APIConfig         `yaml:"api"`
	Columns   ColumnsConfig     `yaml:"columns"`
	TaxMode   string            `yaml:"tax_mode"`
	Amounts   AmountsConfig     `yaml:"amounts"`
	KeepRaw   KeepRawConfig     `yaml:"keep_raw"`
	Overrides map[string]string `yaml:"overrides,omitempty"`
	Send      SendConfig        `yaml:"send"`
}

// APIConfig points at the enrichment service.
type APIConfig struct {
	BaseURL      string `yaml:"base_url"`
	AuthPath     string `yaml:"auth_path"`
	InvoicesPath string `yaml:"invoices_path"`
	LookupPath   string `yaml:"lookup_path"` // table type is appended as a path segment
	ClientID     string `yaml:"client_id,omitempty"`
	ClientSecret string `yaml:"client_secret,omitempty"`
}

// ColumnsConfig names the columns the transformation depends on
// structurally.
type ColumnsConfig struct {
	InvoiceID string `yaml:"invoice_id"`
	LineTax   string `yaml:"line_tax"`
	HeaderTax string `yaml:"header_tax"`
}

// AmountsConfig controls how computed sums are serialized. Places <= 0
// keeps exact decimals with trailing zeros trimmed; 2 gives fixed cents.
type AmountsConfig struct {
	Places int32 `yaml:"places"`
}

// KeepRawConfig disables value normalizations, leaving cells fully verbatim.
type KeepRawConfig struct {
	Dates bool `yaml:"dates"`
}

// SendConfig controls submission pacing.
type SendConfig struct {
	DelayMS int `yaml:"delay_ms"`
}

// Credentials returns the client id/secret, falling back to the environment.
func (c *Config) Credentials() (id, secret string) {
	id = c.API.ClientID
	if id == "" {
		id = os.Getenv(EnvClientID)
	}
	secret = c.API.ClientSecret
	if secret == "" {
		secret = os.Getenv(EnvClientSecret)
	}
	return id, secret
}

// Load reads an invoicery.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:      "https://api.cloud.hypatos.ai",
			AuthPath:     "/v2/auth/token",
			InvoicesPath: "/v2/enrichment/invoices",
			LookupPath:   "/v2/enrichment/lookup-tables",
		},
		Columns: ColumnsConfig{
			InvoiceID: "externalId",
			LineTax:   "totalTaxAmount",
			HeaderTax: "totalTaxAmount",
		},
		TaxMode: "sum-of-lines",
		Send:    SendConfig{DelayMS: 200},
	}
}
