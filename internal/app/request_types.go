package app

import (
	"github.com/shopspring/decimal"
)

// CustomerRequest is the input for creating or updating a customer.
type CustomerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Status      string `json:"status"`
	CompanyName string `json:"company_name"`
	TRNNumber   string `json:"trn_number"`
}

// VendorRequest is the input for creating or updating a vendor.
type VendorRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	CompanyName string `json:"company_name"`
}

// ProductRequest is the input for creating or updating a catalog product.
type ProductRequest struct {
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	Category      string          `json:"category"`
	Subcategory   string          `json:"subcategory"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalesPrice    decimal.Decimal `json:"sales_price"`
	Stock         decimal.Decimal `json:"stock"`
	Unit          string          `json:"unit"`
}

// SubcategoryRequest is one subdivision within a CategoryRequest.
type SubcategoryRequest struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// CategoryRequest is the input for creating or updating a product category.
type CategoryRequest struct {
	Name          string               `json:"name"`
	Abbreviation  string               `json:"abbreviation"`
	ProductType   string               `json:"product_type"`
	Subcategories []SubcategoryRequest `json:"subcategories"`
}

// CurrencyRequest is the input for registering a currency.
type CurrencyRequest struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// EstimationItemRequest is one line of an estimation task. An empty
// ProductID marks an ad-hoc line.
type EstimationItemRequest struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Cost      decimal.Decimal `json:"cost"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	Model     string          `json:"model"`
	Notes     string          `json:"notes"`
	ImageURL  string          `json:"image_url"`
}

// EstimationTaskRequest is one task within an EstimationRequest.
type EstimationTaskRequest struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Items       []EstimationItemRequest `json:"items"`
}

// EstimationRequest is the input for creating or updating an estimation.
type EstimationRequest struct {
	Title      string                  `json:"title"`
	CustomerID string                  `json:"customer_id"`
	Tasks      []EstimationTaskRequest `json:"tasks"`
}

// DocumentItemRequest is one priced line of a quotation form.
type DocumentItemRequest struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	ImageURL    string          `json:"image_url"`
}

// QuotationRequest is the input for creating or updating a quotation
// directly, without an estimation.
type QuotationRequest struct {
	Title    string                `json:"title"`
	Customer string                `json:"customer"`
	Items    []DocumentItemRequest `json:"items"`
}

// AccountRequest is the input for creating or updating a ledger account.
type AccountRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// JournalLineRequest is one debit or credit line of a JournalRequest.
type JournalLineRequest struct {
	AccountID string           `json:"account_id"`
	Debit     *decimal.Decimal `json:"debit,omitempty"`
	Credit    *decimal.Decimal `json:"credit,omitempty"`
}

// JournalRequest is the input for recording a manual journal.
type JournalRequest struct {
	Date    string               `json:"date"`
	Notes   string               `json:"notes"`
	Entries []JournalLineRequest `json:"entries"`
}

// SettingsRequest is the input for updating the application settings
// singleton. All fields are written as a whole.
type SettingsRequest struct {
	Currency         string          `json:"currency"`
	ModuleCRM        bool            `json:"module_crm"`
	ModuleProjects   bool            `json:"module_projects"`
	ModulePurchases  bool            `json:"module_purchases"`
	ModuleSales      bool            `json:"module_sales"`
	ModuleAccounting bool            `json:"module_accounting"`
	TaxPercentage    decimal.Decimal `json:"tax_percentage"`
	QuotationTerms   string          `json:"quotation_terms"`
	BankDetails      string          `json:"bank_details"`
	DashboardTitle   string          `json:"dashboard_title"`
}
