package app

import (
	"context"
	"fmt"

	"backoffice/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
)

type appService struct {
	settings    core.SettingsService
	customers   core.CustomerService
	vendors     core.VendorService
	products    core.ProductService
	currencies  core.CurrencyService
	estimations core.EstimationService
	quotations  core.QuotationService
	orders      core.SalesOrderService
	invoices    core.InvoiceService
	ledger      core.LedgerService
	backup      core.BackupService
}

// NewAppService wires every core service over one pool and returns the
// facade that satisfies ApplicationService.
func NewAppService(pool *pgxpool.Pool) ApplicationService {
	return &appService{
		settings:    core.NewSettingsService(pool),
		customers:   core.NewCustomerService(pool),
		vendors:     core.NewVendorService(pool),
		products:    core.NewProductService(pool),
		currencies:  core.NewCurrencyService(pool),
		estimations: core.NewEstimationService(pool),
		quotations:  core.NewQuotationService(pool),
		orders:      core.NewSalesOrderService(pool),
		invoices:    core.NewInvoiceService(pool),
		ledger:      core.NewLedgerService(pool),
		backup:      core.NewBackupService(pool),
	}
}

// module names the flags used by requireModule.
type module string

const (
	moduleCRM        module = "crm"
	moduleProjects   module = "projects"
	modulePurchases  module = "purchases"
	moduleSales      module = "sales"
	moduleAccounting module = "accounting"
)

// requireModule loads the settings singleton and rejects the call when the
// operation's module is switched off.
func (s *appService) requireModule(ctx context.Context, m module) (*core.AppSettings, error) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	enabled := map[module]bool{
		moduleCRM:        settings.Modules.CRM,
		moduleProjects:   settings.Modules.Projects,
		modulePurchases:  settings.Modules.Purchases,
		moduleSales:      settings.Modules.Sales,
		moduleAccounting: settings.Modules.Accounting,
	}[m]
	if !enabled {
		return nil, &core.RuleError{Message: fmt.Sprintf("the %s module is disabled", m)}
	}
	return settings, nil
}

// ── CRM ───────────────────────────────────────────────────────────────────

func customerInput(req CustomerRequest) core.CustomerInput {
	return core.CustomerInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Status:      core.CustomerStatus(req.Status),
		CompanyName: req.CompanyName,
		TRNNumber:   req.TRNNumber,
	}
}

func (s *appService) CreateCustomer(ctx context.Context, req CustomerRequest) (*core.Customer, error) {
	if _, err := s.requireModule(ctx, moduleCRM); err != nil {
		return nil, err
	}
	return s.customers.CreateCustomer(ctx, customerInput(req))
}

func (s *appService) GetCustomer(ctx context.Context, id string) (*core.Customer, error) {
	if _, err := s.requireModule(ctx, moduleCRM); err != nil {
		return nil, err
	}
	return s.customers.GetCustomer(ctx, id)
}

func (s *appService) ListCustomers(ctx context.Context) (*CustomerListResult, error) {
	if _, err := s.requireModule(ctx, moduleCRM); err != nil {
		return nil, err
	}
	customers, err := s.customers.GetCustomers(ctx)
	if err != nil {
		return nil, err
	}
	return &CustomerListResult{Customers: customers}, nil
}

func (s *appService) UpdateCustomer(ctx context.Context, id string, req CustomerRequest) (*core.Customer, error) {
	if _, err := s.requireModule(ctx, moduleCRM); err != nil {
		return nil, err
	}
	return s.customers.UpdateCustomer(ctx, id, customerInput(req))
}

func (s *appService) DeleteCustomer(ctx context.Context, id string) error {
	if _, err := s.requireModule(ctx, moduleCRM); err != nil {
		return err
	}
	return s.customers.DeleteCustomer(ctx, id)
}

func (s *appService) ImportCustomersCSV(ctx context.Context, data []byte) (*core.CSVImportResult, error) {
	if _, err := s.requireModule(ctx, moduleCRM); err != nil {
		return nil, err
	}
	return s.customers.ImportCustomersCSV(ctx, data)
}

func (s *appService) ExportCustomersCSV(ctx context.Context) ([]byte, error) {
	if _, err := s.requireModule(ctx, moduleCRM); err != nil {
		return nil, err
	}
	return s.customers.ExportCustomersCSV(ctx)
}

// ── Purchasing ────────────────────────────────────────────────────────────

func vendorInput(req VendorRequest) core.VendorInput {
	return core.VendorInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		CompanyName: req.CompanyName,
	}
}

func (s *appService) CreateVendor(ctx context.Context, req VendorRequest) (*core.Vendor, error) {
	if _, err := s.requireModule(ctx, modulePurchases); err != nil {
		return nil, err
	}
	return s.vendors.CreateVendor(ctx, vendorInput(req))
}

func (s *appService) GetVendor(ctx context.Context, id string) (*core.Vendor, error) {
	if _, err := s.requireModule(ctx, modulePurchases); err != nil {
		return nil, err
	}
	return s.vendors.GetVendor(ctx, id)
}

func (s *appService) ListVendors(ctx context.Context) (*VendorListResult, error) {
	if _, err := s.requireModule(ctx, modulePurchases); err != nil {
		return nil, err
	}
	vendors, err := s.vendors.GetVendors(ctx)
	if err != nil {
		return nil, err
	}
	return &VendorListResult{Vendors: vendors}, nil
}

func (s *appService) UpdateVendor(ctx context.Context, id string, req VendorRequest) (*core.Vendor, error) {
	if _, err := s.requireModule(ctx, modulePurchases); err != nil {
		return nil, err
	}
	return s.vendors.UpdateVendor(ctx, id, vendorInput(req))
}

func (s *appService) DeleteVendor(ctx context.Context, id string) error {
	if _, err := s.requireModule(ctx, modulePurchases); err != nil {
		return err
	}
	return s.vendors.DeleteVendor(ctx, id)
}

// ── Catalog ───────────────────────────────────────────────────────────────

func productInput(req ProductRequest) core.ProductInput {
	return core.ProductInput{
		Name:          req.Name,
		Type:          core.ProductType(req.Type),
		Category:      req.Category,
		Subcategory:   req.Subcategory,
		PurchasePrice: req.PurchasePrice,
		SalesPrice:    req.SalesPrice,
		Stock:         req.Stock,
		Unit:          req.Unit,
	}
}

func (s *appService) CreateProduct(ctx context.Context, req ProductRequest) (*core.Product, error) {
	return s.products.CreateProduct(ctx, productInput(req))
}

func (s *appService) GetProduct(ctx context.Context, id string) (*core.Product, error) {
	return s.products.GetProduct(ctx, id)
}

func (s *appService) ListProducts(ctx context.Context) (*ProductListResult, error) {
	products, err := s.products.GetProducts(ctx)
	if err != nil {
		return nil, err
	}
	return &ProductListResult{Products: products}, nil
}

func (s *appService) UpdateProduct(ctx context.Context, id string, req ProductRequest) (*core.Product, error) {
	return s.products.UpdateProduct(ctx, id, productInput(req))
}

func (s *appService) DeleteProduct(ctx context.Context, id string) error {
	return s.products.DeleteProduct(ctx, id)
}

func categoryInput(req CategoryRequest) core.CategoryInput {
	subs := make([]core.Subcategory, len(req.Subcategories))
	for i, sc := range req.Subcategories {
		subs[i] = core.Subcategory{Name: sc.Name, Abbreviation: sc.Abbreviation}
	}
	return core.CategoryInput{
		Name:          req.Name,
		Abbreviation:  req.Abbreviation,
		ProductType:   req.ProductType,
		Subcategories: subs,
	}
}

func (s *appService) CreateCategory(ctx context.Context, req CategoryRequest) (*core.ProductCategory, error) {
	return s.products.CreateCategory(ctx, categoryInput(req))
}

func (s *appService) ListCategories(ctx context.Context) (*CategoryListResult, error) {
	categories, err := s.products.GetCategories(ctx)
	if err != nil {
		return nil, err
	}
	return &CategoryListResult{Categories: categories}, nil
}

func (s *appService) UpdateCategory(ctx context.Context, id string, req CategoryRequest) (*core.ProductCategory, error) {
	return s.products.UpdateCategory(ctx, id, categoryInput(req))
}

func (s *appService) DeleteCategory(ctx context.Context, id string) error {
	return s.products.DeleteCategory(ctx, id)
}

func (s *appService) CreateCurrency(ctx context.Context, req CurrencyRequest) (*core.Currency, error) {
	return s.currencies.CreateCurrency(ctx, req.Code, req.Name, req.Symbol)
}

func (s *appService) ListCurrencies(ctx context.Context) (*CurrencyListResult, error) {
	currencies, err := s.currencies.GetCurrencies(ctx)
	if err != nil {
		return nil, err
	}
	return &CurrencyListResult{Currencies: currencies}, nil
}

func (s *appService) DeleteCurrency(ctx context.Context, code string) error {
	return s.currencies.DeleteCurrency(ctx, code)
}

func (s *appService) GetSettings(ctx context.Context) (*core.AppSettings, error) {
	return s.settings.GetSettings(ctx)
}

func (s *appService) UpdateSettings(ctx context.Context, req SettingsRequest) (*core.AppSettings, error) {
	return s.settings.UpdateSettings(ctx, core.AppSettings{
		Currency: req.Currency,
		Modules: core.EnabledModules{
			CRM:        req.ModuleCRM,
			Projects:   req.ModuleProjects,
			Purchases:  req.ModulePurchases,
			Sales:      req.ModuleSales,
			Accounting: req.ModuleAccounting,
		},
		Quotation: core.QuotationSettings{
			TaxPercentage: req.TaxPercentage,
			Terms:         req.QuotationTerms,
			BankDetails:   req.BankDetails,
		},
		DashboardTitle: req.DashboardTitle,
	})
}

// ── Projects ──────────────────────────────────────────────────────────────

func estimationInput(req EstimationRequest) core.EstimationInput {
	tasks := make([]core.EstimationTaskInput, len(req.Tasks))
	for i, t := range req.Tasks {
		items := make([]core.EstimationItemInput, len(t.Items))
		for j, it := range t.Items {
			items[j] = core.EstimationItemInput{
				ProductID: it.ProductID,
				Name:      it.Name,
				Quantity:  it.Quantity,
				Cost:      it.Cost,
				Size:      it.Size,
				Color:     it.Color,
				Model:     it.Model,
				Notes:     it.Notes,
				ImageURL:  it.ImageURL,
			}
		}
		tasks[i] = core.EstimationTaskInput{Title: t.Title, Description: t.Description, Items: items}
	}
	return core.EstimationInput{Title: req.Title, CustomerID: req.CustomerID, Tasks: tasks}
}

func (s *appService) CreateEstimation(ctx context.Context, req EstimationRequest) (*core.Estimation, error) {
	if _, err := s.requireModule(ctx, moduleProjects); err != nil {
		return nil, err
	}
	return s.estimations.CreateEstimation(ctx, estimationInput(req))
}

func (s *appService) GetEstimation(ctx context.Context, id string) (*core.Estimation, error) {
	if _, err := s.requireModule(ctx, moduleProjects); err != nil {
		return nil, err
	}
	return s.estimations.GetEstimation(ctx, id)
}

func (s *appService) ListEstimations(ctx context.Context) (*EstimationListResult, error) {
	if _, err := s.requireModule(ctx, moduleProjects); err != nil {
		return nil, err
	}
	estimations, err := s.estimations.GetEstimations(ctx)
	if err != nil {
		return nil, err
	}
	return &EstimationListResult{Estimations: estimations}, nil
}

func (s *appService) UpdateEstimation(ctx context.Context, id string, req EstimationRequest) (*core.Estimation, error) {
	if _, err := s.requireModule(ctx, moduleProjects); err != nil {
		return nil, err
	}
	return s.estimations.UpdateEstimation(ctx, id, estimationInput(req))
}

func (s *appService) DeleteEstimation(ctx context.Context, id string) error {
	if _, err := s.requireModule(ctx, moduleProjects); err != nil {
		return err
	}
	return s.estimations.DeleteEstimation(ctx, id)
}

func (s *appService) ConvertEstimation(ctx context.Context, id string) (*QuotationResult, error) {
	if _, err := s.requireModule(ctx, moduleProjects); err != nil {
		return nil, err
	}
	settings, err := s.requireModule(ctx, moduleSales)
	if err != nil {
		return nil, err
	}
	quo, err := s.estimations.ConvertToQuotation(ctx, id)
	if err != nil {
		return nil, err
	}
	return quotationResult(quo, settings), nil
}

// ── Sales ─────────────────────────────────────────────────────────────────

func quotationInput(req QuotationRequest) core.QuotationInput {
	items := make([]core.DocumentItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = core.DocumentItem{
			ID:          it.ID,
			Title:       it.Title,
			Description: it.Description,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
			ImageURL:    it.ImageURL,
		}
	}
	return core.QuotationInput{Title: req.Title, Customer: req.Customer, Items: items}
}

func quotationResult(quo *core.Quotation, settings *core.AppSettings) *QuotationResult {
	tax, grand := core.TaxBreakdown(quo.TotalCost, settings.Quotation.TaxPercentage)
	return &QuotationResult{
		Quotation:     quo,
		TaxPercentage: settings.Quotation.TaxPercentage,
		TaxAmount:     tax,
		GrandTotal:    grand,
		Terms:         settings.Quotation.Terms,
		BankDetails:   settings.Quotation.BankDetails,
	}
}

func invoiceResult(inv *core.Invoice, settings *core.AppSettings) *InvoiceResult {
	tax, grand := core.TaxBreakdown(inv.TotalCost, settings.Quotation.TaxPercentage)
	return &InvoiceResult{
		Invoice:       inv,
		TaxPercentage: settings.Quotation.TaxPercentage,
		TaxAmount:     tax,
		GrandTotal:    grand,
		BankDetails:   settings.Quotation.BankDetails,
	}
}

func (s *appService) CreateQuotation(ctx context.Context, req QuotationRequest) (*QuotationResult, error) {
	settings, err := s.requireModule(ctx, moduleSales)
	if err != nil {
		return nil, err
	}
	quo, err := s.quotations.CreateQuotation(ctx, quotationInput(req))
	if err != nil {
		return nil, err
	}
	return quotationResult(quo, settings), nil
}

func (s *appService) GetQuotation(ctx context.Context, id string) (*QuotationResult, error) {
	settings, err := s.requireModule(ctx, moduleSales)
	if err != nil {
		return nil, err
	}
	quo, err := s.quotations.GetQuotation(ctx, id)
	if err != nil {
		return nil, err
	}
	return quotationResult(quo, settings), nil
}

func (s *appService) ListQuotations(ctx context.Context) (*QuotationListResult, error) {
	if _, err := s.requireModule(ctx, moduleSales); err != nil {
		return nil, err
	}
	quotations, err := s.quotations.GetQuotations(ctx)
	if err != nil {
		return nil, err
	}
	return &QuotationListResult{Quotations: quotations}, nil
}

func (s *appService) UpdateQuotation(ctx context.Context, id string, req QuotationRequest) (*QuotationResult, error) {
	settings, err := s.requireModule(ctx, moduleSales)
	if err != nil {
		return nil, err
	}
	quo, err := s.quotations.UpdateQuotation(ctx, id, quotationInput(req))
	if err != nil {
		return nil, err
	}
	return quotationResult(quo, settings), nil
}

func (s *appService) DeleteQuotation(ctx context.Context, id string) error {
	if _, err := s.requireModule(ctx, moduleSales); err != nil {
		return err
	}
	return s.quotations.DeleteQuotation(ctx, id)
}

func (s *appService) UpdateQuotationStatus(ctx context.Context, id, status string) (*QuotationResult, error) {
	settings, err := s.requireModule(ctx, moduleSales)
	if err != nil {
		return nil, err
	}
	quo, err := s.quotations.UpdateQuotationStatus(ctx, id, core.QuotationStatus(status))
	if err != nil {
		return nil, err
	}
	return quotationResult(quo, settings), nil
}

func (s *appService) ConvertQuotation(ctx context.Context, id string) (*core.SalesOrder, error) {
	if _, err := s.requireModule(ctx, moduleSales); err != nil {
		return nil, err
	}
	return s.quotations.ConvertToSalesOrder(ctx, id)
}

func (s *appService) GetSalesOrder(ctx context.Context, id string) (*core.SalesOrder, error) {
	if _, err := s.requireModule(ctx, moduleSales); err != nil {
		return nil, err
	}
	return s.orders.GetSalesOrder(ctx, id)
}

func (s *appService) ListSalesOrders(ctx context.Context) (*SalesOrderListResult, error) {
	if _, err := s.requireModule(ctx, moduleSales); err != nil {
		return nil, err
	}
	orders, err := s.orders.GetSalesOrders(ctx)
	if err != nil {
		return nil, err
	}
	return &SalesOrderListResult{Orders: orders}, nil
}

func (s *appService) DeleteSalesOrder(ctx context.Context, id string) error {
	if _, err := s.requireModule(ctx, moduleSales); err != nil {
		return err
	}
	return s.orders.DeleteSalesOrder(ctx, id)
}

func (s *appService) UpdateSalesOrderStatus(ctx context.Context, id, status string) (*core.SalesOrder, error) {
	if _, err := s.requireModule(ctx, moduleSales); err != nil {
		return nil, err
	}
	return s.orders.UpdateSalesOrderStatus(ctx, id, core.SalesOrderStatus(status))
}

func (s *appService) ConvertSalesOrder(ctx context.Context, id string) (*InvoiceResult, error) {
	settings, err := s.requireModule(ctx, moduleSales)
	if err != nil {
		return nil, err
	}
	inv, err := s.orders.ConvertToInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	return invoiceResult(inv, settings), nil
}

func (s *appService) GetInvoice(ctx context.Context, id string) (*InvoiceResult, error) {
	settings, err := s.requireModule(ctx, moduleSales)
	if err != nil {
		return nil, err
	}
	inv, err := s.invoices.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	return invoiceResult(inv, settings), nil
}

func (s *appService) ListInvoices(ctx context.Context) (*InvoiceListResult, error) {
	if _, err := s.requireModule(ctx, moduleSales); err != nil {
		return nil, err
	}
	invoices, err := s.invoices.GetInvoices(ctx)
	if err != nil {
		return nil, err
	}
	return &InvoiceListResult{Invoices: invoices}, nil
}

func (s *appService) DeleteInvoice(ctx context.Context, id string) error {
	if _, err := s.requireModule(ctx, moduleSales); err != nil {
		return err
	}
	return s.invoices.DeleteInvoice(ctx, id)
}

func (s *appService) UpdateInvoiceStatus(ctx context.Context, id, status string) (*InvoiceResult, error) {
	settings, err := s.requireModule(ctx, moduleSales)
	if err != nil {
		return nil, err
	}
	inv, err := s.invoices.UpdateInvoiceStatus(ctx, id, core.InvoiceStatus(status))
	if err != nil {
		return nil, err
	}
	return invoiceResult(inv, settings), nil
}

// ── Accounting ────────────────────────────────────────────────────────────

func (s *appService) CreateAccount(ctx context.Context, req AccountRequest) (*core.Account, error) {
	if _, err := s.requireModule(ctx, moduleAccounting); err != nil {
		return nil, err
	}
	return s.ledger.CreateAccount(ctx, core.AccountInput{
		Name:        req.Name,
		Type:        core.AccountType(req.Type),
		Description: req.Description,
	})
}

func (s *appService) GetAccount(ctx context.Context, id string) (*core.Account, error) {
	if _, err := s.requireModule(ctx, moduleAccounting); err != nil {
		return nil, err
	}
	return s.ledger.GetAccount(ctx, id)
}

func (s *appService) ListAccounts(ctx context.Context) (*AccountListResult, error) {
	if _, err := s.requireModule(ctx, moduleAccounting); err != nil {
		return nil, err
	}
	accounts, err := s.ledger.GetAccounts(ctx)
	if err != nil {
		return nil, err
	}
	return &AccountListResult{Accounts: accounts}, nil
}

func (s *appService) UpdateAccount(ctx context.Context, id string, req AccountRequest) (*core.Account, error) {
	if _, err := s.requireModule(ctx, moduleAccounting); err != nil {
		return nil, err
	}
	return s.ledger.UpdateAccount(ctx, id, core.AccountInput{
		Name:        req.Name,
		Type:        core.AccountType(req.Type),
		Description: req.Description,
	})
}

func (s *appService) DeleteAccount(ctx context.Context, id string) error {
	if _, err := s.requireModule(ctx, moduleAccounting); err != nil {
		return err
	}
	return s.ledger.DeleteAccount(ctx, id)
}

func (s *appService) CreateJournal(ctx context.Context, req JournalRequest) (*core.Journal, error) {
	if _, err := s.requireModule(ctx, moduleAccounting); err != nil {
		return nil, err
	}
	entries := make([]core.JournalEntry, len(req.Entries))
	for i, e := range req.Entries {
		entries[i] = core.JournalEntry{AccountID: e.AccountID, Debit: e.Debit, Credit: e.Credit}
	}
	return s.ledger.CreateJournal(ctx, core.JournalInput{
		Date:    req.Date,
		Notes:   req.Notes,
		Entries: entries,
	})
}

func (s *appService) GetJournal(ctx context.Context, id string) (*core.Journal, error) {
	if _, err := s.requireModule(ctx, moduleAccounting); err != nil {
		return nil, err
	}
	return s.ledger.GetJournal(ctx, id)
}

func (s *appService) ListJournals(ctx context.Context) (*JournalListResult, error) {
	if _, err := s.requireModule(ctx, moduleAccounting); err != nil {
		return nil, err
	}
	journals, err := s.ledger.GetJournals(ctx)
	if err != nil {
		return nil, err
	}
	return &JournalListResult{Journals: journals}, nil
}

func (s *appService) DeleteJournal(ctx context.Context, id string) error {
	if _, err := s.requireModule(ctx, moduleAccounting); err != nil {
		return err
	}
	return s.ledger.DeleteJournal(ctx, id)
}

func (s *appService) GetTrialBalance(ctx context.Context) (*core.TrialBalance, error) {
	if _, err := s.requireModule(ctx, moduleAccounting); err != nil {
		return nil, err
	}
	return s.ledger.GetTrialBalance(ctx)
}

// ── Backup ────────────────────────────────────────────────────────────────

func (s *appService) ExportBackup(ctx context.Context) (*core.BackupDocument, error) {
	return s.backup.Export(ctx)
}

func (s *appService) RestoreBackup(ctx context.Context, doc *core.BackupDocument) error {
	return s.backup.Restore(ctx, doc)
}
