package core

import "github.com/shopspring/decimal"

type QuotationStatus string

const (
	QuotationDraft    QuotationStatus = "draft"
	QuotationSent     QuotationStatus = "sent"
	QuotationApproved QuotationStatus = "approved"
	QuotationRejected QuotationStatus = "rejected"
)

type SalesOrderStatus string

const (
	OrderOpen       SalesOrderStatus = "open"
	OrderInProgress SalesOrderStatus = "in-progress"
	OrderFulfilled  SalesOrderStatus = "fulfilled"
	OrderCanceled   SalesOrderStatus = "canceled"
	OrderInvoiced   SalesOrderStatus = "invoiced"
)

type InvoiceStatus string

const (
	InvoiceDraft InvoiceStatus = "draft"
	InvoiceSent  InvoiceStatus = "sent"
	InvoicePaid  InvoiceStatus = "paid"
	InvoiceVoid  InvoiceStatus = "void"
)

// DocumentItem is one priced line on a quotation, sales order, or invoice.
// The three documents share this flat shape; conversions copy it verbatim.
// The ID references the originating product or ad-hoc line and may repeat
// within a document; lines are identified by position.
type DocumentItem struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	ImageURL    string          `json:"image_url,omitempty"`
}

// Quotation is either created from scratch (EstimationID "N/A") or by
// flattening an estimation's tasks into Items.
type Quotation struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	EstimationID string          `json:"estimation_id"`
	Customer     string          `json:"customer"` // customer name, not id
	Status       QuotationStatus `json:"status"`
	Items        []DocumentItem  `json:"items"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	CreatedDate  string          `json:"created_date"` // YYYY-MM-DD
}

// SalesOrder is created only from an approved quotation.
type SalesOrder struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	QuotationID string           `json:"quotation_id"`
	Customer    string           `json:"customer"`
	Status      SalesOrderStatus `json:"status"`
	Items       []DocumentItem   `json:"items"`
	TotalCost   decimal.Decimal  `json:"total_cost"`
	OrderDate   string           `json:"order_date"` // YYYY-MM-DD
}

// Invoice is created only from a fulfilled sales order.
type Invoice struct {
	ID           string          `json:"id"`
	SalesOrderID string          `json:"sales_order_id"`
	Customer     string          `json:"customer"`
	Status       InvoiceStatus   `json:"status"`
	Items        []DocumentItem  `json:"items"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	InvoiceDate  string          `json:"invoice_date"` // YYYY-MM-DD
	DueDate      string          `json:"due_date"`     // YYYY-MM-DD
}
