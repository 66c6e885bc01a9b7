package core

import (
	"time"

	"github.com/shopspring/decimal"
)

type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "active"
	CustomerInactive CustomerStatus = "inactive"
)

// Customer is a CRM master record. Email is optional but must be unique
// among customers that have one.
type Customer struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Email       string         `json:"email,omitempty"`
	Phone       string         `json:"phone"`
	Address     string         `json:"address"`
	Status      CustomerStatus `json:"status"`
	CompanyName string         `json:"company_name"`
	TRNNumber   string         `json:"trn_number"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Vendor is a purchasing master record.
type Vendor struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	CompanyName string    `json:"company_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type ProductType string

const (
	ProductTypeRawMaterial  ProductType = "Raw Material"
	ProductTypeService      ProductType = "Service"
	ProductTypeFinishedGood ProductType = "Finished Good"
)

// Product is a catalog item. Estimation and quotation lines copy its fields
// by value at the time they are built; they never point back at the catalog.
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Type          ProductType     `json:"type"`
	Category      string          `json:"category"`
	Subcategory   string          `json:"subcategory"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalesPrice    decimal.Decimal `json:"sales_price"`
	Stock         decimal.Decimal `json:"stock"`
	Unit          string          `json:"unit"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Subcategory is a named subdivision of a ProductCategory.
type Subcategory struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// ProductCategory groups products. Name and abbreviation are each unique
// independently of one another.
type ProductCategory struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Abbreviation  string        `json:"abbreviation"`
	ProductType   string        `json:"product_type"`
	Subcategories []Subcategory `json:"subcategories"`
}

// Currency is a money unit. Code is unique case-insensitively; the currency
// named by AppSettings.Currency cannot be deleted.
type Currency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// EnabledModules are the process-wide feature flags gating which document
// types are active.
type EnabledModules struct {
	CRM        bool `json:"crm"`
	Projects   bool `json:"projects"`
	Purchases  bool `json:"purchases"`
	Sales      bool `json:"sales"`
	Accounting bool `json:"accounting"`
}

// QuotationSettings are display preferences applied when quotations and
// invoices are rendered. TaxPercentage drives the display-time tax breakdown;
// tax is never persisted on a document.
type QuotationSettings struct {
	TaxPercentage decimal.Decimal `json:"tax_percentage"`
	Terms         string          `json:"terms"`
	BankDetails   string          `json:"bank_details"`
}

// AppSettings is the singleton business configuration row. It is loaded
// explicitly and passed to whatever needs it; there is no package-level
// settings global.
type AppSettings struct {
	Currency       string            `json:"currency"`
	Modules        EnabledModules    `json:"modules"`
	Quotation      QuotationSettings `json:"quotation"`
	DashboardTitle string            `json:"dashboard_title"`
}

type AccountType string

const (
	AccountAssets      AccountType = "Assets"
	AccountLiabilities AccountType = "Liabilities"
	AccountEquity      AccountType = "Equity"
	AccountIncome      AccountType = "Income"
	AccountExpense     AccountType = "Expense"
)

// Account is a ledger account. The ID prefix is the first three letters of
// the type, uppercased (ASS, LIA, EQU, INC, EXP). Balance is derived from
// journal lines at read time, never stored.
type Account struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Type        AccountType     `json:"type"`
	Description string          `json:"description"`
	Balance     decimal.Decimal `json:"balance"`
}

// JournalEntry is one debit or credit line of a manual journal.
// Exactly one of Debit/Credit carries a value in practice.
type JournalEntry struct {
	AccountID string           `json:"account_id"`
	Debit     *decimal.Decimal `json:"debit,omitempty"`
	Credit    *decimal.Decimal `json:"credit,omitempty"`
}

// Journal is a manual double-entry journal. It is only accepted when its
// entries balance (see ValidateJournalEntries).
type Journal struct {
	ID      string         `json:"id"`
	Date    string         `json:"date"` // YYYY-MM-DD
	Notes   string         `json:"notes"`
	Entries []JournalEntry `json:"entries"`
}
