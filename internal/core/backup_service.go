package core

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BackupDocument is the whole business database as one JSON document. It is
// what the export endpoint returns and what restore accepts; restoring
// replaces the entire dataset.
type BackupDocument struct {
	Version    int               `json:"version"`
	ExportedAt time.Time         `json:"exported_at"`
	Settings   AppSettings       `json:"settings"`
	Customers  []Customer        `json:"customers"`
	Vendors    []Vendor          `json:"vendors"`
	Categories []ProductCategory `json:"categories"`
	Products   []Product         `json:"products"`
	Currencies []Currency        `json:"currencies"`
	Estimations []Estimation     `json:"estimations"`
	Quotations  []Quotation      `json:"quotations"`
	SalesOrders []SalesOrder     `json:"sales_orders"`
	Invoices    []Invoice        `json:"invoices"`
	Accounts    []Account        `json:"accounts"`
	Journals    []Journal        `json:"journals"`
}

const backupVersion = 1

// BackupService exports and restores the whole dataset.
type BackupService interface {
	// Export snapshots every collection into a single document.
	Export(ctx context.Context) (*BackupDocument, error)

	// Restore wipes the current dataset and loads the document's
	// collections, IDs included, in one transaction. On any failure the
	// existing data is left untouched.
	Restore(ctx context.Context, doc *BackupDocument) error
}

type backupService struct {
	pool       *pgxpool.Pool
	customers  CustomerService
	vendors    VendorService
	products   ProductService
	currencies CurrencyService
	settings   SettingsService
	estimations EstimationService
	quotations  QuotationService
	orders      SalesOrderService
	invoices    InvoiceService
	ledger      LedgerService
}

// NewBackupService constructs a BackupService over the other services'
// read paths; restore writes through the pool directly.
func NewBackupService(pool *pgxpool.Pool) BackupService {
	return &backupService{
		pool:        pool,
		customers:   NewCustomerService(pool),
		vendors:     NewVendorService(pool),
		products:    NewProductService(pool),
		currencies:  NewCurrencyService(pool),
		settings:    NewSettingsService(pool),
		estimations: NewEstimationService(pool),
		quotations:  NewQuotationService(pool),
		orders:      NewSalesOrderService(pool),
		invoices:    NewInvoiceService(pool),
		ledger:      NewLedgerService(pool),
	}
}

func (s *backupService) Export(ctx context.Context) (*BackupDocument, error) {
	doc := &BackupDocument{Version: backupVersion, ExportedAt: time.Now().UTC()}

	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	doc.Settings = *settings

	if doc.Customers, err = s.customers.GetCustomers(ctx); err != nil {
		return nil, err
	}
	if doc.Vendors, err = s.vendors.GetVendors(ctx); err != nil {
		return nil, err
	}
	if doc.Categories, err = s.products.GetCategories(ctx); err != nil {
		return nil, err
	}
	if doc.Products, err = s.products.GetProducts(ctx); err != nil {
		return nil, err
	}
	if doc.Currencies, err = s.currencies.GetCurrencies(ctx); err != nil {
		return nil, err
	}
	if doc.Estimations, err = s.estimations.GetEstimations(ctx); err != nil {
		return nil, err
	}
	if doc.Quotations, err = s.quotations.GetQuotations(ctx); err != nil {
		return nil, err
	}
	if doc.SalesOrders, err = s.orders.GetSalesOrders(ctx); err != nil {
		return nil, err
	}
	if doc.Invoices, err = s.invoices.GetInvoices(ctx); err != nil {
		return nil, err
	}
	if doc.Accounts, err = s.ledger.GetAccounts(ctx); err != nil {
		return nil, err
	}
	if doc.Journals, err = s.ledger.GetJournals(ctx); err != nil {
		return nil, err
	}
	return doc, nil
}

// restoreWipeOrder lists the tables to clear, children before parents.
var restoreWipeOrder = []string{
	"journal_entries", "journals", "accounts",
	"invoice_items", "invoices",
	"sales_order_items", "sales_orders",
	"quotation_items", "quotations",
	"estimation_items", "estimation_tasks", "estimations",
	"products", "product_categories",
	"currencies", "vendors", "customers",
}

func (s *backupService) Restore(ctx context.Context, doc *BackupDocument) error {
	if doc == nil {
		return ruleErrorf("backup document is empty")
	}
	if doc.Version != backupVersion {
		return ruleErrorf("unsupported backup version %d", doc.Version)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, table := range restoreWipeOrder {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := s.restoreMasterData(ctx, tx, doc); err != nil {
		return err
	}
	if err := s.restoreDocuments(ctx, tx, doc); err != nil {
		return err
	}
	if err := s.restoreLedger(ctx, tx, doc); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit restore: %w", err)
	}
	return nil
}

func (s *backupService) restoreMasterData(ctx context.Context, tx pgx.Tx, doc *BackupDocument) error {
	for _, c := range doc.Customers {
		_, err := tx.Exec(ctx, `
			INSERT INTO customers (id, name, email, phone, address, status, company_name, trn_number, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, c.ID, c.Name, emptyToNil(c.Email), c.Phone, c.Address, c.Status, c.CompanyName, c.TRNNumber, c.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to restore customer %s: %w", c.ID, err)
		}
	}
	for _, v := range doc.Vendors {
		_, err := tx.Exec(ctx, `
			INSERT INTO vendors (id, name, email, phone, address, company_name, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, v.ID, v.Name, emptyToNil(v.Email), v.Phone, v.Address, v.CompanyName, v.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to restore vendor %s: %w", v.ID, err)
		}
	}
	for _, cat := range doc.Categories {
		subs, err := json.Marshal(cat.Subcategories)
		if err != nil {
			return fmt.Errorf("failed to encode subcategories for %s: %w", cat.ID, err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO product_categories (id, name, abbreviation, product_type, subcategories)
			VALUES ($1, $2, $3, $4, $5)
		`, cat.ID, cat.Name, cat.Abbreviation, cat.ProductType, subs)
		if err != nil {
			return fmt.Errorf("failed to restore category %s: %w", cat.ID, err)
		}
	}
	for _, p := range doc.Products {
		_, err := tx.Exec(ctx, `
			INSERT INTO products (id, name, product_type, category, subcategory,
			                      purchase_price, sales_price, stock, unit, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, p.ID, p.Name, p.Type, p.Category, p.Subcategory, p.PurchasePrice, p.SalesPrice, p.Stock, p.Unit, p.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to restore product %s: %w", p.ID, err)
		}
	}
	for _, c := range doc.Currencies {
		_, err := tx.Exec(ctx, `
			INSERT INTO currencies (code, name, symbol) VALUES ($1, $2, $3)
		`, c.Code, c.Name, c.Symbol)
		if err != nil {
			return fmt.Errorf("failed to restore currency %s: %w", c.Code, err)
		}
	}

	st := doc.Settings
	_, err := tx.Exec(ctx, `
		UPDATE app_settings
		SET currency = $1, module_crm = $2, module_projects = $3, module_purchases = $4,
		    module_sales = $5, module_accounting = $6, tax_percentage = $7,
		    quotation_terms = $8, bank_details = $9, dashboard_title = $10
		WHERE id
	`, st.Currency,
		st.Modules.CRM, st.Modules.Projects, st.Modules.Purchases, st.Modules.Sales, st.Modules.Accounting,
		st.Quotation.TaxPercentage, st.Quotation.Terms, st.Quotation.BankDetails, st.DashboardTitle)
	if err != nil {
		return fmt.Errorf("failed to restore settings: %w", err)
	}
	return nil
}

func (s *backupService) restoreDocuments(ctx context.Context, tx pgx.Tx, doc *BackupDocument) error {
	for _, e := range doc.Estimations {
		_, err := tx.Exec(ctx, `
			INSERT INTO estimations (id, title, customer_id, customer_name, total_cost, created_date)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, e.ID, e.Title, e.CustomerID, e.CustomerName, e.TotalCost, e.CreatedDate)
		if err != nil {
			return fmt.Errorf("failed to restore estimation %s: %w", e.ID, err)
		}
		if err := insertTasksTx(ctx, tx, e.ID, e.Tasks); err != nil {
			return err
		}
	}
	for _, q := range doc.Quotations {
		_, err := tx.Exec(ctx, `
			INSERT INTO quotations (id, title, estimation_id, customer, status, total_cost, created_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, q.ID, q.Title, q.EstimationID, q.Customer, q.Status, q.TotalCost, q.CreatedDate)
		if err != nil {
			return fmt.Errorf("failed to restore quotation %s: %w", q.ID, err)
		}
		if err := insertDocumentItemsTx(ctx, tx, "quotation_items", "quotation_id", q.ID, q.Items); err != nil {
			return err
		}
	}
	for _, so := range doc.SalesOrders {
		_, err := tx.Exec(ctx, `
			INSERT INTO sales_orders (id, title, quotation_id, customer, status, total_cost, order_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, so.ID, so.Title, so.QuotationID, so.Customer, so.Status, so.TotalCost, so.OrderDate)
		if err != nil {
			return fmt.Errorf("failed to restore sales order %s: %w", so.ID, err)
		}
		if err := insertDocumentItemsTx(ctx, tx, "sales_order_items", "sales_order_id", so.ID, so.Items); err != nil {
			return err
		}
	}
	for _, inv := range doc.Invoices {
		_, err := tx.Exec(ctx, `
			INSERT INTO invoices (id, sales_order_id, customer, status, total_cost, invoice_date, due_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, inv.ID, inv.SalesOrderID, inv.Customer, inv.Status, inv.TotalCost, inv.InvoiceDate, inv.DueDate)
		if err != nil {
			return fmt.Errorf("failed to restore invoice %s: %w", inv.ID, err)
		}
		if err := insertDocumentItemsTx(ctx, tx, "invoice_items", "invoice_id", inv.ID, inv.Items); err != nil {
			return err
		}
	}
	return nil
}

func (s *backupService) restoreLedger(ctx context.Context, tx pgx.Tx, doc *BackupDocument) error {
	for _, a := range doc.Accounts {
		_, err := tx.Exec(ctx, `
			INSERT INTO accounts (id, name, account_type, description)
			VALUES ($1, $2, $3, $4)
		`, a.ID, a.Name, a.Type, a.Description)
		if err != nil {
			return fmt.Errorf("failed to restore account %s: %w", a.ID, err)
		}
	}
	for _, j := range doc.Journals {
		if err := ValidateJournalEntries(j.Entries); err != nil {
			return fmt.Errorf("journal %s in backup is invalid: %w", j.ID, err)
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO journals (id, date, notes) VALUES ($1, $2, $3)
		`, j.ID, j.Date, j.Notes)
		if err != nil {
			return fmt.Errorf("failed to restore journal %s: %w", j.ID, err)
		}
		for i, e := range j.Entries {
			_, err := tx.Exec(ctx, `
				INSERT INTO journal_entries (journal_id, position, account_id, debit, credit)
				VALUES ($1, $2, $3, $4, $5)
			`, j.ID, i+1, e.AccountID, e.Debit, e.Credit)
			if err != nil {
				return fmt.Errorf("failed to restore journal entry %d of %s: %w", i+1, j.ID, err)
			}
		}
	}
	return nil
}
