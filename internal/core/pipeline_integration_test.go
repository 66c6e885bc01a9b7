package core_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"backoffice/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database to avoid wiping the live app database.
	// Set TEST_DATABASE_URL in your .env or environment to run integration tests.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE journal_entries, journals, accounts,
			invoice_items, invoices, sales_order_items, sales_orders,
			quotation_items, quotations, estimation_items, estimation_tasks, estimations,
			products, product_categories, currencies, vendors, customers, app_settings CASCADE;

		INSERT INTO app_settings (id) VALUES (TRUE);
	`)
	if err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}

	return pool
}

func mustDec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestPipeline_EstimationToInvoice(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	customers := core.NewCustomerService(pool)
	estimations := core.NewEstimationService(pool)
	quotations := core.NewQuotationService(pool)
	orders := core.NewSalesOrderService(pool)

	customer, err := customers.CreateCustomer(ctx, core.CustomerInput{
		Name:  "Acme Trading",
		Email: "acme@example.com",
	})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	if customer.ID != "CS_4001" {
		t.Errorf("first customer id = %q, want CS_4001", customer.ID)
	}

	est, err := estimations.CreateEstimation(ctx, core.EstimationInput{
		Title:      "Warehouse fit-out",
		CustomerID: customer.ID,
		Tasks: []core.EstimationTaskInput{
			{
				Title: "Supply",
				Items: []core.EstimationItemInput{
					{Name: "Shelving unit", Quantity: mustDec("2"), Cost: mustDec("50")},
				},
			},
			{
				Title: "Install",
				Items: []core.EstimationItemInput{
					{Name: "Labour", Quantity: mustDec("5"), Cost: mustDec("20")},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("create estimation: %v", err)
	}
	if est.ID != "EST-1001" {
		t.Errorf("estimation id = %q, want EST-1001", est.ID)
	}
	if !est.TotalCost.Equal(mustDec("200")) {
		t.Errorf("estimation total = %s, want 200", est.TotalCost)
	}
	if est.CustomerName != "Acme Trading" {
		t.Errorf("customer name = %q, want Acme Trading", est.CustomerName)
	}

	// Estimation → quotation: tasks flatten into one item list.
	quo, err := estimations.ConvertToQuotation(ctx, est.ID)
	if err != nil {
		t.Fatalf("convert to quotation: %v", err)
	}
	if quo.ID != "QUO-1001" {
		t.Errorf("quotation id = %q, want QUO-1001", quo.ID)
	}
	if quo.EstimationID != est.ID {
		t.Errorf("quotation estimation id = %q, want %q", quo.EstimationID, est.ID)
	}
	if len(quo.Items) != 2 {
		t.Fatalf("quotation has %d items, want 2", len(quo.Items))
	}
	if !quo.TotalCost.Equal(est.TotalCost) {
		t.Errorf("quotation total %s != estimation total %s", quo.TotalCost, est.TotalCost)
	}
	if quo.Status != core.QuotationDraft {
		t.Errorf("quotation status = %q, want draft", quo.Status)
	}

	// Conversion before approval must fail.
	if _, err := quotations.ConvertToSalesOrder(ctx, quo.ID); err == nil {
		t.Error("expected conversion of draft quotation to fail")
	}

	if _, err := quotations.UpdateQuotationStatus(ctx, quo.ID, core.QuotationSent); err != nil {
		t.Fatalf("send quotation: %v", err)
	}
	if _, err := quotations.UpdateQuotationStatus(ctx, quo.ID, core.QuotationApproved); err != nil {
		t.Fatalf("approve quotation: %v", err)
	}

	so, err := quotations.ConvertToSalesOrder(ctx, quo.ID)
	if err != nil {
		t.Fatalf("convert to sales order: %v", err)
	}
	if so.ID != "SO-1001" {
		t.Errorf("sales order id = %q, want SO-1001", so.ID)
	}
	if so.Status != core.OrderOpen {
		t.Errorf("sales order status = %q, want open", so.Status)
	}

	// Invoicing before fulfillment must fail.
	if _, err := orders.ConvertToInvoice(ctx, so.ID); err == nil {
		t.Error("expected invoicing of open order to fail")
	}

	if _, err := orders.UpdateSalesOrderStatus(ctx, so.ID, core.OrderInProgress); err != nil {
		t.Fatalf("start order: %v", err)
	}
	if _, err := orders.UpdateSalesOrderStatus(ctx, so.ID, core.OrderFulfilled); err != nil {
		t.Fatalf("fulfill order: %v", err)
	}

	inv, err := orders.ConvertToInvoice(ctx, so.ID)
	if err != nil {
		t.Fatalf("convert to invoice: %v", err)
	}
	if inv.ID != "INV-1001" {
		t.Errorf("invoice id = %q, want INV-1001", inv.ID)
	}
	if !inv.TotalCost.Equal(so.TotalCost) {
		t.Errorf("invoice total %s != order total %s", inv.TotalCost, so.TotalCost)
	}

	wantDue, _ := time.Parse("2006-01-02", inv.InvoiceDate)
	if inv.DueDate != wantDue.AddDate(0, 0, 30).Format("2006-01-02") {
		t.Errorf("due date = %s, want 30 days after %s", inv.DueDate, inv.InvoiceDate)
	}

	// The conversion flips the order to invoiced in the same transaction.
	after, err := orders.GetSalesOrder(ctx, so.ID)
	if err != nil {
		t.Fatalf("refetch order: %v", err)
	}
	if after.Status != core.OrderInvoiced {
		t.Errorf("order status after invoicing = %q, want invoiced", after.Status)
	}

	// Invoiced is terminal for the plain status path.
	if _, err := orders.UpdateSalesOrderStatus(ctx, so.ID, core.OrderOpen); err == nil {
		t.Error("expected re-opening an invoiced order to fail")
	}
}

func TestQuotation_IllegalTransitions(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	quotations := core.NewQuotationService(pool)
	quo, err := quotations.CreateQuotation(ctx, core.QuotationInput{
		Title:    "Direct quotation",
		Customer: "Walk-in",
		Items: []core.DocumentItem{
			{Title: "Consulting", Quantity: mustDec("1"), Rate: mustDec("500")},
		},
	})
	if err != nil {
		t.Fatalf("create quotation: %v", err)
	}
	if quo.EstimationID != "N/A" {
		t.Errorf("from-scratch quotation estimation id = %q, want N/A", quo.EstimationID)
	}

	if _, err := quotations.UpdateQuotationStatus(ctx, quo.ID, core.QuotationRejected); err != nil {
		t.Fatalf("reject quotation: %v", err)
	}

	_, err = quotations.UpdateQuotationStatus(ctx, quo.ID, core.QuotationApproved)
	var rule *core.RuleError
	if !errors.As(err, &rule) {
		t.Errorf("expected RuleError approving a rejected quotation, got %v", err)
	}
}

// The same product may be estimated several times, within one task and
// across tasks. Every occurrence must survive the save and the flatten.
func TestEstimation_RepeatedProductLines(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	products := core.NewProductService(pool)
	estimations := core.NewEstimationService(pool)

	prd, err := products.CreateProduct(ctx, core.ProductInput{
		Name:       "Cable drum",
		Type:       core.ProductTypeRawMaterial,
		SalesPrice: mustDec("40"),
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	est, err := estimations.CreateEstimation(ctx, core.EstimationInput{
		Title: "Site wiring",
		Tasks: []core.EstimationTaskInput{
			{
				Title: "Phase one",
				Items: []core.EstimationItemInput{
					{ProductID: prd.ID, Name: prd.Name, Quantity: mustDec("3"), Cost: mustDec("40")},
					{ProductID: prd.ID, Name: prd.Name, Quantity: mustDec("2"), Cost: mustDec("40")},
				},
			},
			{
				Title: "Phase two",
				Items: []core.EstimationItemInput{
					{ProductID: prd.ID, Name: prd.Name, Quantity: mustDec("1"), Cost: mustDec("40")},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("create estimation with repeated product: %v", err)
	}
	if !est.TotalCost.Equal(mustDec("240")) {
		t.Errorf("estimation total = %s, want 240", est.TotalCost)
	}

	fetched, err := estimations.GetEstimation(ctx, est.ID)
	if err != nil {
		t.Fatalf("fetch estimation: %v", err)
	}
	if len(fetched.Tasks[0].Items) != 2 || len(fetched.Tasks[1].Items) != 1 {
		t.Fatalf("items per task = %d/%d, want 2/1",
			len(fetched.Tasks[0].Items), len(fetched.Tasks[1].Items))
	}

	quo, err := estimations.ConvertToQuotation(ctx, est.ID)
	if err != nil {
		t.Fatalf("convert to quotation: %v", err)
	}
	if len(quo.Items) != 3 {
		t.Fatalf("quotation has %d items, want 3", len(quo.Items))
	}
	for i, item := range quo.Items {
		if item.ID != prd.ID {
			t.Errorf("item %d id = %q, want %q", i, item.ID, prd.ID)
		}
	}
	if !quo.TotalCost.Equal(est.TotalCost) {
		t.Errorf("quotation total %s != estimation total %s", quo.TotalCost, est.TotalCost)
	}
}

func TestCurrency_DefaultCannotBeDeleted(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	currencies := core.NewCurrencyService(pool)
	if _, err := currencies.CreateCurrency(ctx, "aed", "UAE Dirham", "د.إ"); err != nil {
		t.Fatalf("create currency: %v", err)
	}

	// Seeded settings default to AED.
	err := currencies.DeleteCurrency(ctx, "AED")
	var rule *core.RuleError
	if !errors.As(err, &rule) {
		t.Errorf("expected RuleError deleting default currency, got %v", err)
	}

	if _, err := currencies.CreateCurrency(ctx, "USD", "US Dollar", "$"); err != nil {
		t.Fatalf("create currency: %v", err)
	}
	if _, err := currencies.CreateCurrency(ctx, "usd", "US Dollar", "$"); err == nil {
		t.Error("expected duplicate code to be rejected case-insensitively")
	}
	if err := currencies.DeleteCurrency(ctx, "USD"); err != nil {
		t.Errorf("deleting non-default currency: %v", err)
	}
}

func TestCustomers_ImportCSVSkipsDuplicates(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	customers := core.NewCustomerService(pool)
	if _, err := customers.CreateCustomer(ctx, core.CustomerInput{
		Name:  "Existing",
		Email: "taken@example.com",
	}); err != nil {
		t.Fatalf("create customer: %v", err)
	}

	csvData := []byte("id,name,email,phone,address,status,companyName,trnNumber\n" +
		"CS_9999,Fresh,fresh@example.com,,,active,,\n" +
		"CS_9998,Duplicate,taken@example.com,,,active,,\n" +
		",Third Import,third@example.com,,,active,,\n")

	result, err := customers.ImportCustomersCSV(ctx, csvData)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Imported != 2 {
		t.Errorf("imported = %d, want 2", result.Imported)
	}
	if result.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", result.Skipped)
	}

	// File IDs are ignored; imports continue the sequence.
	all, err := customers.GetCustomers(ctx)
	if err != nil {
		t.Fatalf("list customers: %v", err)
	}
	for _, c := range all {
		if c.ID == "CS_9999" || c.ID == "CS_9998" {
			t.Errorf("file id %q must not be persisted", c.ID)
		}
	}
}

func TestLedger_JournalsAndBalances(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	ledger := core.NewLedgerService(pool)

	cash, err := ledger.CreateAccount(ctx, core.AccountInput{Name: "Cash", Type: core.AccountAssets})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	if cash.ID != "ASS-001" {
		t.Errorf("account id = %q, want ASS-001", cash.ID)
	}
	sales, err := ledger.CreateAccount(ctx, core.AccountInput{Name: "Sales", Type: core.AccountIncome})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	debit := mustDec("150")
	credit := mustDec("150")
	j, err := ledger.CreateJournal(ctx, core.JournalInput{
		Notes: "Cash sale",
		Entries: []core.JournalEntry{
			{AccountID: cash.ID, Debit: &debit},
			{AccountID: sales.ID, Credit: &credit},
		},
	})
	if err != nil {
		t.Fatalf("create journal: %v", err)
	}
	if j.ID != "JRN-1001" {
		t.Errorf("journal id = %q, want JRN-1001", j.ID)
	}

	// Unbalanced journals are rejected server-side.
	bad := mustDec("100")
	short := mustDec("50")
	_, err = ledger.CreateJournal(ctx, core.JournalInput{
		Entries: []core.JournalEntry{
			{AccountID: cash.ID, Debit: &bad},
			{AccountID: sales.ID, Credit: &short},
		},
	})
	var rule *core.RuleError
	if !errors.As(err, &rule) {
		t.Errorf("expected RuleError for unbalanced journal, got %v", err)
	}

	got, err := ledger.GetAccount(ctx, cash.ID)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if !got.Balance.Equal(mustDec("150")) {
		t.Errorf("cash balance = %s, want 150", got.Balance)
	}

	tb, err := ledger.GetTrialBalance(ctx)
	if err != nil {
		t.Fatalf("trial balance: %v", err)
	}
	if !tb.TotalDebit.Equal(tb.TotalCredit) {
		t.Errorf("trial balance out of balance: %s vs %s", tb.TotalDebit, tb.TotalCredit)
	}

	// Accounts with journal activity cannot be deleted.
	if err := ledger.DeleteAccount(ctx, cash.ID); err == nil {
		t.Error("expected deleting a used account to fail")
	}
}

func TestBackup_RoundTrip(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	customers := core.NewCustomerService(pool)
	if _, err := customers.CreateCustomer(ctx, core.CustomerInput{
		Name:  "Backup Co",
		Email: "backup@example.com",
	}); err != nil {
		t.Fatalf("create customer: %v", err)
	}

	backup := core.NewBackupService(pool)
	doc, err := backup.Export(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(doc.Customers) != 1 {
		t.Fatalf("exported %d customers, want 1", len(doc.Customers))
	}

	if err := backup.Restore(ctx, doc); err != nil {
		t.Fatalf("restore: %v", err)
	}

	all, err := customers.GetCustomers(ctx)
	if err != nil {
		t.Fatalf("list customers: %v", err)
	}
	if len(all) != 1 || all[0].ID != doc.Customers[0].ID {
		t.Errorf("restore did not reproduce customers: %+v", all)
	}

	// A restored dataset continues the ID sequence from the restored IDs.
	next, err := customers.CreateCustomer(ctx, core.CustomerInput{Name: "After Restore"})
	if err != nil {
		t.Fatalf("create after restore: %v", err)
	}
	if next.ID != "CS_4002" {
		t.Errorf("post-restore id = %q, want CS_4002", next.ID)
	}
}
