package core

import "github.com/shopspring/decimal"

type ItemType string

const (
	ItemProduct ItemType = "product"
	ItemAdhoc   ItemType = "adhoc"
)

// EstimationItem is one costed line inside an estimation task. Catalog items
// carry the product's ID; ad-hoc items get a synthetic adhoc-<timestamp> ID.
// The ID is a reference, not a key: the same product may appear on several
// lines, and storage identifies lines by their position within the task.
type EstimationItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Cost     decimal.Decimal `json:"cost"`
	Type     ItemType        `json:"type"`
	Size     string          `json:"size,omitempty"`
	Color    string          `json:"color,omitempty"`
	Model    string          `json:"model,omitempty"`
	Notes    string          `json:"notes,omitempty"`
	ImageURL string          `json:"image_url,omitempty"`
}

// EstimationTask groups items. TotalCost is recomputed from the items on
// every save; the stored value is a snapshot, never authoritative.
type EstimationTask struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Items       []EstimationItem `json:"items"`
	TotalCost   decimal.Decimal  `json:"total_cost"`
}

// Estimation is the head of the sales document pipeline. Converting it to a
// quotation flattens its tasks into a flat item list; the grouping is lost.
type Estimation struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	CustomerID   string           `json:"customer_id"`
	CustomerName string           `json:"customer_name"`
	Tasks        []EstimationTask `json:"tasks"`
	TotalCost    decimal.Decimal  `json:"total_cost"`
	CreatedDate  string           `json:"created_date"` // YYYY-MM-DD
}
