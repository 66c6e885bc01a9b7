package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestItemsTotal(t *testing.T) {
	tests := []struct {
		name  string
		items []DocumentItem
		want  string
	}{
		{
			name: "two units at fifty",
			items: []DocumentItem{
				{Title: "Widget", Quantity: dec("2"), Rate: dec("50")},
			},
			want: "100",
		},
		{
			name: "multiple lines",
			items: []DocumentItem{
				{Title: "Widget", Quantity: dec("2"), Rate: dec("50")},
				{Title: "Install", Quantity: dec("1.5"), Rate: dec("80")},
			},
			want: "220",
		},
		{
			name:  "no items",
			items: nil,
			want:  "0",
		},
		{
			name: "fractional quantity",
			items: []DocumentItem{
				{Title: "Cable", Quantity: dec("0.25"), Rate: dec("12")},
			},
			want: "3",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ItemsTotal(tt.items)
			if !got.Equal(dec(tt.want)) {
				t.Errorf("ItemsTotal = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEstimationTotal_UpdatesTaskSnapshots(t *testing.T) {
	tasks := []EstimationTask{
		{
			Title: "Supply",
			Items: []EstimationItem{
				{Name: "Panel", Quantity: dec("4"), Cost: dec("25")},
				{Name: "Frame", Quantity: dec("2"), Cost: dec("10")},
			},
		},
		{
			Title: "Labour",
			Items: []EstimationItem{
				{Name: "Fitting", Quantity: dec("8"), Cost: dec("15")},
			},
		},
	}

	total := EstimationTotal(tasks)

	if !total.Equal(dec("240")) {
		t.Errorf("total = %s, want 240", total)
	}
	if !tasks[0].TotalCost.Equal(dec("120")) {
		t.Errorf("task 0 total = %s, want 120", tasks[0].TotalCost)
	}
	if !tasks[1].TotalCost.Equal(dec("120")) {
		t.Errorf("task 1 total = %s, want 120", tasks[1].TotalCost)
	}
}

func TestTaxBreakdown(t *testing.T) {
	tax, grand := TaxBreakdown(dec("100"), dec("5"))
	if !tax.Equal(dec("5")) {
		t.Errorf("tax = %s, want 5", tax)
	}
	if !grand.Equal(dec("105")) {
		t.Errorf("grand = %s, want 105", grand)
	}

	tax, grand = TaxBreakdown(dec("250"), dec("0"))
	if !tax.IsZero() {
		t.Errorf("zero-rate tax = %s, want 0", tax)
	}
	if !grand.Equal(dec("250")) {
		t.Errorf("zero-rate grand = %s, want 250", grand)
	}
}

func TestValidateDocumentItems(t *testing.T) {
	tests := []struct {
		name      string
		items     []DocumentItem
		wantField string
	}{
		{
			name:      "no items",
			items:     nil,
			wantField: "items",
		},
		{
			name: "zero quantity",
			items: []DocumentItem{
				{Title: "Widget", Quantity: dec("0"), Rate: dec("10")},
			},
			wantField: "items[0].quantity",
		},
		{
			name: "quantity below minimum",
			items: []DocumentItem{
				{Title: "Widget", Quantity: dec("0.0001"), Rate: dec("10")},
			},
			wantField: "items[0].quantity",
		},
		{
			name: "negative rate",
			items: []DocumentItem{
				{Title: "Widget", Quantity: dec("1"), Rate: dec("-5")},
			},
			wantField: "items[0].rate",
		},
		{
			name: "missing title",
			items: []DocumentItem{
				{Quantity: dec("1"), Rate: dec("5")},
			},
			wantField: "items[0].title",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateDocumentItems(tt.items)
			if errs.Empty() {
				t.Fatal("expected validation errors, got none")
			}
			if _, ok := errs[tt.wantField]; !ok {
				t.Errorf("expected error on %q, got %v", tt.wantField, errs)
			}
		})
	}

	valid := []DocumentItem{{Title: "Widget", Quantity: dec("0.001"), Rate: dec("0")}}
	if errs := ValidateDocumentItems(valid); !errs.Empty() {
		t.Errorf("minimum quantity and zero rate should pass, got %v", errs)
	}
}
