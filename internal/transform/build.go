package transform

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invoicery-dev/invoicery/internal/model"
)

// Column names recognized in uploaded files. Anything else is ignored:
// operator exports routinely carry extra columns, and an unknown column must
// never break the upload or leak into the payload.
const (
	ColExternalID            = "externalId"
	ColExternalClientID      = "externalClientId"
	ColDocumentID            = "documentId"
	ColSupplierInvoiceNumber = "supplierInvoiceNumber"
	ColInvoiceNumber         = "invoiceNumber"
	ColExternalCompanyID     = "externalCompanyId"
	ColExternalSupplierID    = "externalSupplierId"
	ColExternalBankAccountID = "externalBankAccountId"
	ColFiscalYearLabel       = "fiscalYearLabel"
	ColIssuedDate            = "issuedDate"
	ColReceivedDate          = "receivedDate"
	ColPostingDate           = "postingDate"
	ColIsCanceled            = "isCanceled"
	ColIsCreditNote          = "isCreditNote"
	ColExternalCustomerID    = "externalCustomerId"
	ColRelatedInvoice        = "relatedInvoice"
	ColCurrency              = "currency"
	ColTotalFreightCharges   = "totalFreightCharges"
	ColTotalOtherCharges     = "totalOtherCharges"
	ColExternalApproverID    = "externalApproverId"
	ColHeaderText            = "headerText"
	ColType                  = "type"
	ColDocumentType          = "documentType"
	ColPaymentTermKey        = "paymentTermKey"
	ColPaymentTermText       = "paymentTermText"
	ColPaymentTermLanguage   = "paymentTermLanguage"
	ColWhtKey                = "wht.key"
	ColWhtBaseAmount         = "wht.baseAmount"
	ColWhtAmount             = "wht.amount"
	ColWhtCurrency           = "wht.currency"
)

// Line-scoped columns. The dotted names are canonical; the flat aliases
// match exports that cannot produce dots in headers.
const (
	ColLineExternalID         = "line.externalId"
	ColLineExternalIDAlt      = "lineExternalId"
	ColLineExternalCompanyID  = "line.externalCompanyId"
	ColLineType               = "line.type"
	ColQuantity               = "quantity"
	ColNetAmount              = "netAmount"
	ColGrossAmount            = "grossAmount"
	ColTotalTaxAmount         = "totalTaxAmount"
	ColUnitOfMeasure          = "unitOfMeasure"
	ColUnitPrice              = "unitPrice"
	ColTaxCodeCode            = "taxCode.code"
	ColTaxCodeCodeAlt         = "taxCodeCode"
	ColTaxCodeDescription     = "taxCode.description"
	ColTaxCodeDescriptionAlt  = "taxCodeDescription"
	ColTaxJurisdictionCode    = "taxJurisdictionCode"
	ColItemText               = "itemText"
	ColExternalPurchaseOrder  = "externalPurchaseOrderId"
	ColPurchaseOrderLineNum   = "purchaseOrderLineNumber"
	ColCentralBankIndicator   = "centralBankIndicator"
	ColExternalGlAccountID    = "externalGlAccountId"
	ColExternalCostCenterID   = "externalCostCenterId"
	ColGlAccountCode          = "glAccountCode"
	ColCostCenterCode         = "costCenterCode"
	ColAssignmentQuantity     = "aa.quantity"
	ColExternalProjectID      = "externalProjectId"
	ColExternalOrderID        = "externalOrderId"
	ColCostElementCode        = "costElementCode"
)

const (
	headerCustomFieldPrefix = "customFields."
	lineCustomFieldPrefix   = "line.customFields."
	defaultTermLanguage     = "en"
	documentRefType         = "invoice"
)

// requiredHeaderColumns are the fields the enrichment service rejects
// invoices without. A missing one yields a warning, not an abort, so the
// operator sees the problem next to the payload that has it.
var requiredHeaderColumns = []string{
	ColExternalID,
	ColCurrency,
	ColExternalCompanyID,
	ColExternalSupplierID,
}

// dateInputFormats are the layouts normalized to YYYY-MM-DD. Values that
// match none of them pass through verbatim.
var dateInputFormats = []string{
	"2006-01-02",
	"02.01.2006",
	"2006/01/02",
	"02/01/2006",
}

const dateOutputFormat = "2006-01-02"

// buildPayload assembles the payload for one invoice group: resolved header
// fields, one line per row in source order, and the tax value under the
// chosen policy. Pure: no I/O, no mutation of the rows.
func buildPayload(g Group, opts Options) (*model.InvoicePayload, []Warning) {
	first := g.Rows[0]
	resolve := rowResolver(first, opts.Overrides)

	p := newHeader(resolve, customColumns(first.Columns(), opts.Overrides), opts)

	var warns []Warning
	for _, col := range requiredHeaderColumns {
		if resolve(col) == "" {
			warns = append(warns, Warning{
				Kind:   WarnMissingField,
				Row:    g.RowNums[0],
				Field:  col,
				Detail: "no value in row and no override, field omitted",
			})
		}
	}

	// Withholding tax comes from the group's first row only; it is a
	// header-level repetition the flat format cannot spread across lines.
	if first.Has(ColWhtKey) || first.Has(ColWhtAmount) || first.Has(ColWhtBaseAmount) {
		p.WithholdingTax = []model.WithholdingTax{{
			Key:        first.Value(ColWhtKey),
			BaseAmount: first.Value(ColWhtBaseAmount),
			Amount:     first.Value(ColWhtAmount),
			Currency:   firstNonEmpty(first.Value(ColWhtCurrency), p.Currency),
		}}
	}

	sumNet := decimal.Zero
	sumGross := decimal.Zero
	grossSeen := false

	p.InvoiceLines = make([]model.LinePayload, 0, len(g.Rows))
	for i, row := range g.Rows {
		p.InvoiceLines = append(p.InvoiceLines, buildLine(row, p.ExternalCompanyID))

		if d, ok, w := cellAmount(row, ColNetAmount, g.RowNums[i]); ok {
			sumNet = sumNet.Add(d)
		} else if w != nil {
			warns = append(warns, *w)
		}
		if d, ok, w := cellAmount(row, ColGrossAmount, g.RowNums[i]); ok {
			sumGross = sumGross.Add(d)
			grossSeen = true
		} else if w != nil {
			warns = append(warns, *w)
		}
	}

	var tax string
	switch opts.TaxMode {
	case TaxModeHeader:
		tax = headerTax(g, opts.HeaderTaxColumn, opts.Overrides)
	default:
		var taxWarns []Warning
		tax, taxWarns = sumLineTax(g, opts.LineTaxColumn, opts.Amounts)
		warns = append(warns, taxWarns...)
	}
	p.TotalTaxAmount = tax

	p.TotalNetAmount = opts.Amounts.Format(sumNet)
	if grossSeen {
		p.TotalGrossAmount = opts.Amounts.Format(sumGross)
	} else {
		p.TotalGrossAmount = opts.Amounts.Format(grossFromParts(sumNet, tax, p))
	}

	return p, warns
}

// buildTestPayload builds the single payload of a test-mode run: header
// fields sourced purely from overrides, zero lines, no computed sums. It
// exists so an operator can preview the payload shape without a file.
func buildTestPayload(opts Options) *model.InvoicePayload {
	p := newHeader(overrideResolver(opts.Overrides), customColumns(nil, opts.Overrides), opts)
	p.InvoiceLines = make([]model.LinePayload, 0)
	p.TotalTaxAmount = opts.Overrides[opts.HeaderTaxColumn]
	return p
}

// newHeader fills the header slots of a payload from a field resolver.
// Every slot goes through the same resolver so the omission rule cannot be
// bypassed per field. customCols names the customFields.* columns known to
// this run (from the source header, plus any overridden ones).
func newHeader(resolve resolver, customCols []string, opts Options) *model.InvoicePayload {
	date := func(field string) string {
		return normalizeDate(resolve(field), opts.KeepRawDates)
	}

	p := &model.InvoicePayload{
		ExternalID:            resolve(ColExternalID),
		ExternalClientID:      resolve(ColExternalClientID),
		DocumentID:            resolve(ColDocumentID),
		SupplierInvoiceNumber: resolve(ColSupplierInvoiceNumber),
		InvoiceNumber:         resolve(ColInvoiceNumber),
		ExternalCompanyID:     resolve(ColExternalCompanyID),
		ExternalSupplierID:    resolve(ColExternalSupplierID),
		ExternalBankAccountID: resolve(ColExternalBankAccountID),
		FiscalYearLabel:       resolve(ColFiscalYearLabel),
		IssuedDate:            date(ColIssuedDate),
		ReceivedDate:          date(ColReceivedDate),
		PostingDate:           date(ColPostingDate),
		IsCanceled:            normalizeBool(resolve(ColIsCanceled)),
		IsCreditNote:          normalizeBool(resolve(ColIsCreditNote)),
		ExternalCustomerID:    resolve(ColExternalCustomerID),
		RelatedInvoice:        resolve(ColRelatedInvoice),
		Currency:              resolve(ColCurrency),
		TotalFreightCharges:   resolve(ColTotalFreightCharges),
		TotalOtherCharges:     resolve(ColTotalOtherCharges),
		ExternalApproverID:    resolve(ColExternalApproverID),
		HeaderText:            resolve(ColHeaderText),
		Type:                  resolve(ColType),
		DocumentType:          resolve(ColDocumentType),
		CustomFields:          resolvePrefixed(resolve, headerCustomFieldPrefix, customCols),
	}

	if p.DocumentID != "" {
		p.Documents = []model.DocumentRef{{ID: p.DocumentID, Type: documentRefType}}
	}

	key := resolve(ColPaymentTermKey)
	text := resolve(ColPaymentTermText)
	if key != "" || text != "" {
		terms := &model.PaymentTerms{PaymentTermKey: key}
		if text != "" {
			terms.Descriptions = []model.TermDescription{{
				Text:     text,
				Language: firstNonEmpty(resolve(ColPaymentTermLanguage), defaultTermLanguage),
			}}
		}
		p.PaymentTerms = terms
	}

	return p
}

// buildLine copies every line-scoped column present and non-empty in the
// row, preserving the literal string exactly as read. No numeric re-parsing
// happens here; that is what keeps leading zeros intact.
func buildLine(row *model.Row, headerCompanyID string) model.LinePayload {
	line := model.LinePayload{
		ExternalID:              firstNonEmpty(row.Value(ColLineExternalID), row.Value(ColLineExternalIDAlt)),
		ExternalCompanyID:       firstNonEmpty(row.Value(ColLineExternalCompanyID), headerCompanyID),
		Type:                    firstNonEmpty(row.Value(ColLineType), row.Value(ColType)),
		Quantity:                row.Value(ColQuantity),
		NetAmount:               row.Value(ColNetAmount),
		GrossAmount:             row.Value(ColGrossAmount),
		TotalTaxAmount:          row.Value(ColTotalTaxAmount),
		UnitOfMeasure:           row.Value(ColUnitOfMeasure),
		UnitPrice:               row.Value(ColUnitPrice),
		TaxJurisdictionCode:     row.Value(ColTaxJurisdictionCode),
		ItemText:                row.Value(ColItemText),
		ExternalPurchaseOrderID: row.Value(ColExternalPurchaseOrder),
		PurchaseOrderLineNumber: row.Value(ColPurchaseOrderLineNum),
		CentralBankIndicator:    row.Value(ColCentralBankIndicator),
		CustomFields:            rowPrefixed(row, lineCustomFieldPrefix),
	}

	code := firstNonEmpty(row.Value(ColTaxCodeCode), row.Value(ColTaxCodeCodeAlt))
	desc := firstNonEmpty(row.Value(ColTaxCodeDescription), row.Value(ColTaxCodeDescriptionAlt))
	if code != "" || desc != "" {
		line.TaxCode = &model.TaxCode{Code: code, Description: desc}
	}

	aa := model.AccountAssignment{
		ExternalGlAccountID:  row.Value(ColExternalGlAccountID),
		ExternalCostCenterID: row.Value(ColExternalCostCenterID),
		GlAccountCode:        row.Value(ColGlAccountCode),
		CostCenterCode:       row.Value(ColCostCenterCode),
		Quantity:             row.Value(ColAssignmentQuantity),
		ExternalProjectID:    row.Value(ColExternalProjectID),
		ExternalOrderID:      row.Value(ColExternalOrderID),
		CostElementCode:      row.Value(ColCostElementCode),
	}
	if aa != (model.AccountAssignment{}) {
		line.AccountAssignments = []model.AccountAssignment{aa}
	}

	return line
}

// cellAmount parses one amount cell. Returns (zero, false, warning) for a
// non-numeric value and (zero, false, nil) for an empty or absent one.
func cellAmount(row *model.Row, col string, rowNum int) (decimal.Decimal, bool, *Warning) {
	cell := row.Value(col)
	if cell == "" {
		return decimal.Zero, false, nil
	}
	d, err := decimal.NewFromString(cell)
	if err != nil {
		return decimal.Zero, false, &Warning{
			Kind:   WarnBadAmount,
			Row:    rowNum,
			Field:  col,
			Detail: fmt.Sprintf("%q is not a number, counted as zero", cell),
		}
	}
	return d, true, nil
}

// grossFromParts reconstructs the gross total when no line carries one:
// net + tax + freight + other, skipping parts that do not parse.
func grossFromParts(net decimal.Decimal, tax string, p *model.InvoicePayload) decimal.Decimal {
	gross := net
	for _, s := range []string{tax, p.TotalFreightCharges, p.TotalOtherCharges} {
		if s == "" {
			continue
		}
		if d, err := decimal.NewFromString(s); err == nil {
			gross = gross.Add(d)
		}
	}
	return gross
}

// rowPrefixed collects prefixed columns from a row into a string map,
// dropping the prefix and any empty values.
func rowPrefixed(row *model.Row, prefix string) map[string]string {
	var out map[string]string
	for _, col := range row.Columns() {
		name, ok := strings.CutPrefix(col, prefix)
		if !ok || name == "" || !row.Has(col) {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[name] = row.Value(col)
	}
	return out
}

// customColumns merges the customFields.* names seen in the source header
// with those named in the overrides, preserving first-seen order.
func customColumns(sourceCols []string, overrides map[string]string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(col string) {
		if strings.HasPrefix(col, headerCustomFieldPrefix) && !seen[col] {
			seen[col] = true
			out = append(out, col)
		}
	}
	for _, col := range sourceCols {
		add(col)
	}
	for col := range overrides {
		add(col)
	}
	return out
}

// resolvePrefixed collects prefixed custom fields through the resolver.
// The resolver only answers for known names, so the caller supplies the set
// of custom columns seen in the source (or named in the overrides).
func resolvePrefixed(resolve resolver, prefix string, columns []string) map[string]string {
	var out map[string]string
	for _, col := range columns {
		name, ok := strings.CutPrefix(col, prefix)
		if !ok || name == "" {
			continue
		}
		v := resolve(col)
		if v == "" {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[name] = v
	}
	return out
}

// normalizeDate rewrites recognized date layouts to YYYY-MM-DD. Anything
// else passes through verbatim. A wrong guess is worse than no guess.
func normalizeDate(s string, keepRaw bool) string {
	if s == "" || keepRaw {
		return s
	}
	for _, layout := range dateInputFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(dateOutputFormat)
		}
	}
	return s
}

// normalizeBool lowercases recognized boolean spellings so the service sees
// "true"/"false"; other values pass through verbatim.
func normalizeBool(s string) string {
	switch strings.ToLower(s) {
	case "true":
		return "true"
	case "false":
		return "false"
	}
	return s
}

// firstNonEmpty returns the first non-empty candidate.
func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
