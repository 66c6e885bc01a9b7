package app

import (
	"backoffice/internal/core"

	"github.com/shopspring/decimal"
)

// CustomerListResult is returned by ListCustomers.
type CustomerListResult struct {
	Customers []core.Customer `json:"customers"`
}

// VendorListResult is returned by ListVendors.
type VendorListResult struct {
	Vendors []core.Vendor `json:"vendors"`
}

// ProductListResult is returned by ListProducts.
type ProductListResult struct {
	Products []core.Product `json:"products"`
}

// CategoryListResult is returned by ListCategories.
type CategoryListResult struct {
	Categories []core.ProductCategory `json:"categories"`
}

// CurrencyListResult is returned by ListCurrencies.
type CurrencyListResult struct {
	Currencies []core.Currency `json:"currencies"`
}

// EstimationListResult is returned by ListEstimations.
type EstimationListResult struct {
	Estimations []core.Estimation `json:"estimations"`
}

// QuotationResult is a quotation with its display-time tax breakdown. Tax is
// computed from the settings on every read, never stored on the document.
type QuotationResult struct {
	Quotation     *core.Quotation `json:"quotation"`
	TaxPercentage decimal.Decimal `json:"tax_percentage"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	Terms         string          `json:"terms,omitempty"`
	BankDetails   string          `json:"bank_details,omitempty"`
}

// QuotationListResult is returned by ListQuotations.
type QuotationListResult struct {
	Quotations []core.Quotation `json:"quotations"`
}

// SalesOrderListResult is returned by ListSalesOrders.
type SalesOrderListResult struct {
	Orders []core.SalesOrder `json:"orders"`
}

// InvoiceResult is an invoice with its display-time tax breakdown.
type InvoiceResult struct {
	Invoice       *core.Invoice   `json:"invoice"`
	TaxPercentage decimal.Decimal `json:"tax_percentage"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	BankDetails   string          `json:"bank_details,omitempty"`
}

// InvoiceListResult is returned by ListInvoices.
type InvoiceListResult struct {
	Invoices []core.Invoice `json:"invoices"`
}

// AccountListResult is returned by ListAccounts.
type AccountListResult struct {
	Accounts []core.Account `json:"accounts"`
}

// JournalListResult is returned by ListJournals.
type JournalListResult struct {
	Journals []core.Journal `json:"journals"`
}
