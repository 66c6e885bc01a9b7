package app

import (
	"context"

	"backoffice/internal/core"
)

// ApplicationService is the single interface all adapters call. It decouples
// presentation from business logic; implementations must contain no display
// logic of any kind. Operation groups are gated by the module flags in the
// application settings: a call against a disabled module returns a RuleError.
type ApplicationService interface {
	// ── CRM (module_crm) ──────────────────────────────────────────────

	CreateCustomer(ctx context.Context, req CustomerRequest) (*core.Customer, error)
	GetCustomer(ctx context.Context, id string) (*core.Customer, error)
	ListCustomers(ctx context.Context) (*CustomerListResult, error)
	UpdateCustomer(ctx context.Context, id string, req CustomerRequest) (*core.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error

	// ImportCustomersCSV loads customers from CSV, skipping rows whose
	// email is already taken. ExportCustomersCSV renders the full
	// collection with the fixed header.
	ImportCustomersCSV(ctx context.Context, data []byte) (*core.CSVImportResult, error)
	ExportCustomersCSV(ctx context.Context) ([]byte, error)

	// ── Purchasing (module_purchases) ─────────────────────────────────

	CreateVendor(ctx context.Context, req VendorRequest) (*core.Vendor, error)
	GetVendor(ctx context.Context, id string) (*core.Vendor, error)
	ListVendors(ctx context.Context) (*VendorListResult, error)
	UpdateVendor(ctx context.Context, id string, req VendorRequest) (*core.Vendor, error)
	DeleteVendor(ctx context.Context, id string) error

	// ── Catalog (ungated) ─────────────────────────────────────────────

	CreateProduct(ctx context.Context, req ProductRequest) (*core.Product, error)
	GetProduct(ctx context.Context, id string) (*core.Product, error)
	ListProducts(ctx context.Context) (*ProductListResult, error)
	UpdateProduct(ctx context.Context, id string, req ProductRequest) (*core.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	CreateCategory(ctx context.Context, req CategoryRequest) (*core.ProductCategory, error)
	ListCategories(ctx context.Context) (*CategoryListResult, error)
	UpdateCategory(ctx context.Context, id string, req CategoryRequest) (*core.ProductCategory, error)
	DeleteCategory(ctx context.Context, id string) error

	CreateCurrency(ctx context.Context, req CurrencyRequest) (*core.Currency, error)
	ListCurrencies(ctx context.Context) (*CurrencyListResult, error)
	// DeleteCurrency refuses to remove the default currency.
	DeleteCurrency(ctx context.Context, code string) error

	GetSettings(ctx context.Context) (*core.AppSettings, error)
	UpdateSettings(ctx context.Context, req SettingsRequest) (*core.AppSettings, error)

	// ── Projects (module_projects) ────────────────────────────────────

	CreateEstimation(ctx context.Context, req EstimationRequest) (*core.Estimation, error)
	GetEstimation(ctx context.Context, id string) (*core.Estimation, error)
	ListEstimations(ctx context.Context) (*EstimationListResult, error)
	UpdateEstimation(ctx context.Context, id string, req EstimationRequest) (*core.Estimation, error)
	DeleteEstimation(ctx context.Context, id string) error

	// ConvertEstimation flattens an estimation into a draft quotation.
	// Requires both the projects and sales modules.
	ConvertEstimation(ctx context.Context, id string) (*QuotationResult, error)

	// ── Sales (module_sales) ──────────────────────────────────────────

	CreateQuotation(ctx context.Context, req QuotationRequest) (*QuotationResult, error)
	GetQuotation(ctx context.Context, id string) (*QuotationResult, error)
	ListQuotations(ctx context.Context) (*QuotationListResult, error)
	UpdateQuotation(ctx context.Context, id string, req QuotationRequest) (*QuotationResult, error)
	DeleteQuotation(ctx context.Context, id string) error
	UpdateQuotationStatus(ctx context.Context, id, status string) (*QuotationResult, error)
	// ConvertQuotation creates a sales order from an approved quotation.
	ConvertQuotation(ctx context.Context, id string) (*core.SalesOrder, error)

	GetSalesOrder(ctx context.Context, id string) (*core.SalesOrder, error)
	ListSalesOrders(ctx context.Context) (*SalesOrderListResult, error)
	DeleteSalesOrder(ctx context.Context, id string) error
	UpdateSalesOrderStatus(ctx context.Context, id, status string) (*core.SalesOrder, error)
	// ConvertSalesOrder invoices a fulfilled order and marks it invoiced
	// in the same transaction.
	ConvertSalesOrder(ctx context.Context, id string) (*InvoiceResult, error)

	GetInvoice(ctx context.Context, id string) (*InvoiceResult, error)
	ListInvoices(ctx context.Context) (*InvoiceListResult, error)
	DeleteInvoice(ctx context.Context, id string) error
	UpdateInvoiceStatus(ctx context.Context, id, status string) (*InvoiceResult, error)

	// ── Accounting (module_accounting) ────────────────────────────────

	CreateAccount(ctx context.Context, req AccountRequest) (*core.Account, error)
	GetAccount(ctx context.Context, id string) (*core.Account, error)
	ListAccounts(ctx context.Context) (*AccountListResult, error)
	UpdateAccount(ctx context.Context, id string, req AccountRequest) (*core.Account, error)
	DeleteAccount(ctx context.Context, id string) error

	CreateJournal(ctx context.Context, req JournalRequest) (*core.Journal, error)
	GetJournal(ctx context.Context, id string) (*core.Journal, error)
	ListJournals(ctx context.Context) (*JournalListResult, error)
	DeleteJournal(ctx context.Context, id string) error

	GetTrialBalance(ctx context.Context) (*core.TrialBalance, error)

	// ── Backup (ungated) ──────────────────────────────────────────────

	ExportBackup(ctx context.Context) (*core.BackupDocument, error)
	RestoreBackup(ctx context.Context, doc *core.BackupDocument) error
}
