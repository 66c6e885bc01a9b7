package core

import "testing"

func TestProductInputValidate(t *testing.T) {
	tests := []struct {
		name      string
		input     ProductInput
		wantField string
	}{
		{
			name:  "raw material",
			input: ProductInput{Name: "Steel rod", Type: ProductTypeRawMaterial},
		},
		{
			name:  "service",
			input: ProductInput{Name: "Site survey", Type: ProductTypeService},
		},
		{
			name:  "finished good",
			input: ProductInput{Name: "Shelving unit", Type: ProductTypeFinishedGood},
		},
		{
			name:      "unknown type",
			input:     ProductInput{Name: "Widget", Type: "Consumable"},
			wantField: "type",
		},
		{
			name:      "missing name",
			input:     ProductInput{Type: ProductTypeService},
			wantField: "name",
		},
		{
			name:      "negative purchase price",
			input:     ProductInput{Name: "Widget", Type: ProductTypeFinishedGood, PurchasePrice: dec("-1")},
			wantField: "purchase_price",
		},
		{
			name:      "negative sales price",
			input:     ProductInput{Name: "Widget", Type: ProductTypeFinishedGood, SalesPrice: dec("-1")},
			wantField: "sales_price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.input.validate()
			if tt.wantField == "" {
				if !errs.Empty() {
					t.Errorf("valid input rejected: %v", errs)
				}
				return
			}
			if len(errs[tt.wantField]) == 0 {
				t.Errorf("missing error for %q, got %v", tt.wantField, errs)
			}
		})
	}
}
