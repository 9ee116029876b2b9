package model

// InvoicePayload is the nested enrichment document built from one invoice
// group. Every leaf is a string: the downstream schema validates primitives
// as strings, and keeping the literal cell text means no numeric re-typing
// ever happens (a "00001" invoice number stays "00001"). Empty fields are
// omitted entirely, never sent as "" or null.
type InvoicePayload struct {
	ExternalID            string            `json:"externalId,omitempty"`
	ExternalClientID      string            `json:"externalClientId,omitempty"`
	DocumentID            string            `json:"documentId,omitempty"`
	Documents             []DocumentRef     `json:"documents,omitempty"`
	SupplierInvoiceNumber string            `json:"supplierInvoiceNumber,omitempty"`
	InvoiceNumber         string            `json:"invoiceNumber,omitempty"`
	ExternalCompanyID     string            `json:"externalCompanyId,omitempty"`
	ExternalSupplierID    string            `json:"externalSupplierId,omitempty"`
	ExternalBankAccountID string            `json:"externalBankAccountId,omitempty"`
	FiscalYearLabel       string            `json:"fiscalYearLabel,omitempty"`
	IssuedDate            string            `json:"issuedDate,omitempty"`
	ReceivedDate          string            `json:"receivedDate,omitempty"`
	PostingDate           string            `json:"postingDate,omitempty"`
	IsCanceled            string            `json:"isCanceled,omitempty"`
	IsCreditNote          string            `json:"isCreditNote,omitempty"`
	ExternalCustomerID    string            `json:"externalCustomerId,omitempty"`
	RelatedInvoice        string            `json:"relatedInvoice,omitempty"`
	Currency              string            `json:"currency,omitempty"`
	TotalNetAmount        string            `json:"totalNetAmount,omitempty"`
	TotalFreightCharges   string            `json:"totalFreightCharges,omitempty"`
	TotalOtherCharges     string            `json:"totalOtherCharges,omitempty"`
	TotalTaxAmount        string            `json:"totalTaxAmount,omitempty"`
	TotalGrossAmount      string            `json:"totalGrossAmount,omitempty"`
	PaymentTerms          *PaymentTerms     `json:"paymentTerms,omitempty"`
	ExternalApproverID    string            `json:"externalApproverId,omitempty"`
	CustomFields          map[string]string `json:"customFields,omitempty"`
	HeaderText            string            `json:"headerText,omitempty"`
	Type                  string            `json:"type,omitempty"`
	DocumentType          string            `json:"documentType,omitempty"`
	InvoiceLines          []LinePayload     `json:"invoiceLines"`
	WithholdingTax        []WithholdingTax  `json:"withholdingTax,omitempty"`
}

// DocumentRef links a stored document to the invoice.
type DocumentRef struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// PaymentTerms carries the payment term key and its localized descriptions.
type PaymentTerms struct {
	PaymentTermKey string            `json:"paymentTermKey,omitempty"`
	Descriptions   []TermDescription `json:"descriptions,omitempty"`
}

// TermDescription is one localized payment term text.
type TermDescription struct {
	Text     string `json:"text,omitempty"`
	Language string `json:"language,omitempty"`
}

// TaxCode identifies the tax treatment of one invoice line.
type TaxCode struct {
	Code        string `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
}

// AccountAssignment routes a line amount to GL account / cost center /
// project structures.
type AccountAssignment struct {
	ExternalGlAccountID  string `json:"externalGlAccountId,omitempty"`
	ExternalCostCenterID string `json:"externalCostCenterId,omitempty"`
	GlAccountCode        string `json:"glAccountCode,omitempty"`
	CostCenterCode       string `json:"costCenterCode,omitempty"`
	Quantity             string `json:"quantity,omitempty"`
	ExternalProjectID    string `json:"externalProjectId,omitempty"`
	ExternalOrderID      string `json:"externalOrderId,omitempty"`
	CostElementCode      string `json:"costElementCode,omitempty"`
}

// WithholdingTax is one withholding tax entry at the invoice header.
type WithholdingTax struct {
	Key        string `json:"key,omitempty"`
	BaseAmount string `json:"baseAmount,omitempty"`
	Amount     string `json:"amount,omitempty"`
	Currency   string `json:"currency,omitempty"`
}

// LinePayload is one invoice line, built from one source row.
type LinePayload struct {
	ExternalID              string              `json:"externalId,omitempty"`
	ExternalCompanyID       string              `json:"externalCompanyId,omitempty"`
	Type                    string              `json:"type,omitempty"`
	Quantity                string              `json:"quantity,omitempty"`
	NetAmount               string              `json:"netAmount,omitempty"`
	GrossAmount             string              `json:"grossAmount,omitempty"`
	TotalTaxAmount          string              `json:"totalTaxAmount,omitempty"`
	UnitOfMeasure           string              `json:"unitOfMeasure,omitempty"`
	UnitPrice               string              `json:"unitPrice,omitempty"`
	TaxCode                 *TaxCode            `json:"taxCode,omitempty"`
	TaxJurisdictionCode     string              `json:"taxJurisdictionCode,omitempty"`
	ItemText                string              `json:"itemText,omitempty"`
	ExternalPurchaseOrderID string              `json:"externalPurchaseOrderId,omitempty"`
	PurchaseOrderLineNumber string              `json:"purchaseOrderLineNumber,omitempty"`
	CentralBankIndicator    string              `json:"centralBankIndicator,omitempty"`
	CustomFields            map[string]string   `json:"customFields,omitempty"`
	AccountAssignments      []AccountAssignment `json:"accountAssignments,omitempty"`
}
