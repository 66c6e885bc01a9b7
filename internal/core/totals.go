package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MinQuantity is the smallest accepted line quantity. Kept just above zero so
// floating-point form input rounding to exactly 0 is still rejected.
var MinQuantity = decimal.NewFromFloat(0.001)

// LineTotal computes quantity × price for a single line.
func LineTotal(quantity, price decimal.Decimal) decimal.Decimal {
	return quantity.Mul(price)
}

// ItemsTotal sums quantity × rate over a flat document item list.
func ItemsTotal(items []DocumentItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(LineTotal(it.Quantity, it.Rate))
	}
	return total
}

// TaskTotal sums quantity × cost over an estimation task's items.
func TaskTotal(items []EstimationItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(LineTotal(it.Quantity, it.Cost))
	}
	return total
}

// EstimationTotal recomputes every task total and returns the two-level sum.
// The tasks slice is updated in place so the stored snapshots stay consistent
// with what the caller persists.
func EstimationTotal(tasks []EstimationTask) decimal.Decimal {
	total := decimal.Zero
	for i := range tasks {
		tasks[i].TotalCost = TaskTotal(tasks[i].Items)
		total = total.Add(tasks[i].TotalCost)
	}
	return total
}

// TaxBreakdown applies the configured tax percentage to a subtotal.
// Tax is a display-time computation: it is returned to callers, never stored
// on the document.
func TaxBreakdown(subtotal, taxPercentage decimal.Decimal) (tax, grand decimal.Decimal) {
	tax = subtotal.Mul(taxPercentage).Div(decimal.NewFromInt(100))
	return tax, subtotal.Add(tax)
}

// ValidateDocumentItems checks the quantity/rate constraints shared by
// quotation, sales order, and invoice lines.
func ValidateDocumentItems(items []DocumentItem) ValidationErrors {
	errs := ValidationErrors{}
	if len(items) == 0 {
		errs.Add("items", "at least one item is required")
		return errs
	}
	for i, it := range items {
		if it.Title == "" {
			errs.Add(itemField(i, "title"), "title is required")
		}
		if it.Quantity.LessThan(MinQuantity) {
			errs.Add(itemField(i, "quantity"), "quantity must be greater than 0")
		}
		if it.Rate.IsNegative() {
			errs.Add(itemField(i, "rate"), "rate must not be negative")
		}
	}
	return errs
}

func itemField(i int, name string) string {
	return fmt.Sprintf("items[%d].%s", i, name)
}
