// Package sample generates demo invoice CSVs so an operator can exercise
// the pipeline without a real export.
package sample

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// basicHeader is the column set of the basic sample files.
var basicHeader = []string{
	"externalId", "documentId", "supplierInvoiceNumber", "invoiceNumber",
	"externalCompanyId", "externalSupplierId", "currency", "issuedDate",
	"line.externalId", "quantity", "unitPrice", "netAmount", "totalTaxAmount",
	"grossAmount", "itemText",
	"externalGlAccountId", "glAccountCode", "externalCostCenterId", "costCenterCode",
}

// scenarioHeader is the column set of the scenario-rich sample: FI invoices
// with account assignments and PO invoices with purchase order references.
var scenarioHeader = []string{
	"externalId", "documentId", "supplierInvoiceNumber", "invoiceNumber",
	"externalCompanyId", "externalSupplierId", "currency",
	"issuedDate", "receivedDate", "postingDate", "isCanceled", "isCreditNote",
	"headerText", "paymentTermKey", "paymentTermText", "paymentTermLanguage",
	"unitOfMeasure", "taxCode.code", "taxCode.description", "taxJurisdictionCode",
	"line.externalId", "quantity", "unitPrice", "netAmount", "totalTaxAmount", "grossAmount", "itemText",
	"externalGlAccountId", "glAccountCode", "externalCostCenterId", "costCenterCode",
	"externalPurchaseOrderId", "purchaseOrderLineNumber",
}

// Basic returns a 2-invoice / 3-line sample CSV. With withGLCC set, each
// line carries GL account and cost center columns.
func Basic(withGLCC bool) []byte {
	rows := []map[string]string{
		{
			"externalId": "ext-1", "documentId": "686caa631bb57c4804f8a681",
			"supplierInvoiceNumber": "INV-001", "invoiceNumber": "1001",
			"externalCompanyId": "COMP-001", "externalSupplierId": "SUP-001",
			"currency": "EUR", "issuedDate": "2025-08-01",
			"line.externalId": "line-1", "quantity": "2", "unitPrice": "50.00",
			"netAmount": "100.00", "totalTaxAmount": "19.00", "grossAmount": "119.00",
			"itemText": "Consulting Service",
		},
		{
			"externalId": "ext-2", "documentId": "686caa631bb57c4804f8a682",
			"supplierInvoiceNumber": "INV-002", "invoiceNumber": "1002",
			"externalCompanyId": "COMP-002", "externalSupplierId": "SUP-002",
			"currency": "USD", "issuedDate": "2025-08-05",
			"line.externalId": "line-1", "quantity": "5", "unitPrice": "20.00",
			"netAmount": "100.00", "totalTaxAmount": "10.00", "grossAmount": "110.00",
			"itemText": "Office Supplies",
		},
		{
			"externalId": "ext-2", "documentId": "686caa631bb57c4804f8a682",
			"supplierInvoiceNumber": "INV-002", "invoiceNumber": "1002",
			"externalCompanyId": "COMP-002", "externalSupplierId": "SUP-002",
			"currency": "USD", "issuedDate": "2025-08-05",
			"line.externalId": "line-2", "quantity": "1", "unitPrice": "200.00",
			"netAmount": "200.00", "totalTaxAmount": "20.00", "grossAmount": "220.00",
			"itemText": "Software License",
		},
	}

	if withGLCC {
		glcc := []map[string]string{
			{"externalGlAccountId": "GL-7000", "glAccountCode": "7000", "externalCostCenterId": "CC-100", "costCenterCode": "ADMIN-100"},
			{"externalGlAccountId": "GL-4000", "glAccountCode": "4000", "externalCostCenterId": "CC-200", "costCenterCode": "OPS-200"},
			{"externalGlAccountId": "GL-6500", "glAccountCode": "6500", "externalCostCenterId": "CC-300", "costCenterCode": "IT-300"},
		}
		for i, extra := range glcc {
			for k, v := range extra {
				rows[i][k] = v
			}
		}
	}

	return writeCSV(basicHeader, rows)
}

// Scenarios returns the scenario-rich sample: two FI invoices (GL and cost
// center assignments) and two PO invoices (purchase order references with
// leading-zero line numbers).
func Scenarios() []byte {
	common := map[string]string{
		"externalCompanyId":   "COMP-DE-01",
		"externalSupplierId":  "SUP-DE-01",
		"currency":            "EUR",
		"issuedDate":          "2025-08-10",
		"receivedDate":        "2025-08-11",
		"postingDate":         "2025-08-12",
		"isCanceled":          "false",
		"isCreditNote":        "false",
		"headerText":          "Sample invoice for demo",
		"paymentTermKey":      "NET30",
		"paymentTermText":     "Net 30 days",
		"paymentTermLanguage": "en",
		"unitOfMeasure":       "EA",
		"taxCode.code":        "DEU_Standard",
		"taxCode.description": "DEU - Standard (19%)",
		"taxJurisdictionCode": "DEU",
	}

	specifics := []map[string]string{
		{
			"externalId": "ext-fi-1", "documentId": docID(1),
			"supplierInvoiceNumber": "FINV-001", "invoiceNumber": "10001",
			"line.externalId": "line-1", "quantity": "2", "unitPrice": "50.00",
			"netAmount": "100.00", "totalTaxAmount": "19.00", "grossAmount": "119.00",
			"itemText":            "Consulting Service",
			"externalGlAccountId": "GL-7000", "glAccountCode": "7000",
			"externalCostCenterId": "CC-100", "costCenterCode": "ADMIN-100",
		},
		{
			"externalId": "ext-fi-2", "documentId": docID(2),
			"supplierInvoiceNumber": "FINV-002", "invoiceNumber": "10002",
			"line.externalId": "line-1", "quantity": "3", "unitPrice": "40.00",
			"netAmount": "120.00", "totalTaxAmount": "22.80", "grossAmount": "142.80",
			"itemText":            "Hardware Components",
			"externalGlAccountId": "GL-4000", "glAccountCode": "4000",
			"externalCostCenterId": "CC-200", "costCenterCode": "OPS-200",
		},
		{
			"externalId": "ext-fi-2", "documentId": docID(2),
			"supplierInvoiceNumber": "FINV-002", "invoiceNumber": "10002",
			"line.externalId": "line-2", "quantity": "5", "unitPrice": "40.00",
			"netAmount": "200.00", "totalTaxAmount": "38.00", "grossAmount": "238.00",
			"itemText":            "Software Subscription",
			"externalGlAccountId": "GL-6500", "glAccountCode": "6500",
			"externalCostCenterId": "CC-300", "costCenterCode": "IT-300",
		},
		{
			"externalId": "ext-po-1", "documentId": docID(3),
			"supplierInvoiceNumber": "POINV-001", "invoiceNumber": "20001",
			"line.externalId": "line-1", "quantity": "3", "unitPrice": "50.00",
			"netAmount": "150.00", "totalTaxAmount": "28.50", "grossAmount": "178.50",
			"itemText":                "Maintenance Service",
			"externalPurchaseOrderId": "4500000001", "purchaseOrderLineNumber": "00010",
		},
		{
			"externalId": "ext-po-2", "documentId": docID(4),
			"supplierInvoiceNumber": "POINV-002", "invoiceNumber": "20002",
			"line.externalId": "line-1", "quantity": "4", "unitPrice": "20.00",
			"netAmount": "80.00", "totalTaxAmount": "15.20", "grossAmount": "95.20",
			"itemText":                "Packaging Materials",
			"externalPurchaseOrderId": "4500000002", "purchaseOrderLineNumber": "00010",
		},
		{
			"externalId": "ext-po-2", "documentId": docID(4),
			"supplierInvoiceNumber": "POINV-002", "invoiceNumber": "20002",
			"line.externalId": "line-2", "quantity": "10", "unitPrice": "23.00",
			"netAmount": "230.00", "totalTaxAmount": "43.70", "grossAmount": "273.70",
			"itemText":                "Transport Service",
			"externalPurchaseOrderId": "4500000002", "purchaseOrderLineNumber": "00020",
		},
	}

	rows := make([]map[string]string, len(specifics))
	for i, sp := range specifics {
		row := make(map[string]string, len(common)+len(sp))
		for k, v := range common {
			row[k] = v
		}
		for k, v := range sp {
			row[k] = v
		}
		rows[i] = row
	}

	return writeCSV(scenarioHeader, rows)
}

// docID fabricates a 24-character document id for sample data.
func docID(n int) string {
	return fmt.Sprintf("20250820%016d", n)[:24]
}

// writeCSV renders rows under a fixed header; unknown keys are dropped,
// missing keys become empty cells.
func writeCSV(header []string, rows []map[string]string) []byte {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	// Errors are unreachable when writing to a bytes.Buffer.
	_ = cw.Write(header)
	rec := make([]string, len(header))
	for _, row := range rows {
		for i, col := range header {
			rec[i] = row[col]
		}
		_ = cw.Write(rec)
	}
	cw.Flush()

	return buf.Bytes()
}
