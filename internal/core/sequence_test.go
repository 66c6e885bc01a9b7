package core

import "testing"

func TestNextIDFrom(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		spec idSpec
		want string
	}{
		{
			name: "empty table falls back to start",
			ids:  nil,
			spec: customerIDs,
			want: "CS_4001",
		},
		{
			name: "continues from maximum",
			ids:  []string{"CS_4001", "CS_4005", "CS_4003"},
			spec: customerIDs,
			want: "CS_4006",
		},
		{
			name: "foreign prefixes ignored",
			ids:  []string{"CS_4001", "VND-002", "EST-1009"},
			spec: customerIDs,
			want: "CS_4002",
		},
		{
			name: "non-numeric suffix discarded",
			ids:  []string{"CS_4002", "CS_legacy", "CS_"},
			spec: customerIDs,
			want: "CS_4003",
		},
		{
			name: "padded vendor format",
			ids:  nil,
			spec: vendorIDs,
			want: "VND-001",
		},
		{
			name: "padding survives growth",
			ids:  []string{"VND-008", "VND-011"},
			spec: vendorIDs,
			want: "VND-012",
		},
		{
			name: "estimation start",
			ids:  nil,
			spec: estimationIDs,
			want: "EST-1001",
		},
		{
			name: "max below start keeps start",
			ids:  []string{"SO-17"},
			spec: salesOrderIDs,
			want: "SO-1001",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextIDFrom(tt.ids, tt.spec)
			if got != tt.want {
				t.Errorf("NextIDFrom(%v) = %q, want %q", tt.ids, got, tt.want)
			}
		})
	}
}

func TestNextIDFrom_Idempotent(t *testing.T) {
	ids := []string{"QUO-1001", "QUO-1002"}
	first := NextIDFrom(ids, quotationIDs)
	second := NextIDFrom(ids, quotationIDs)
	if first != second {
		t.Errorf("same input produced %q then %q", first, second)
	}
	if first != "QUO-1003" {
		t.Errorf("got %q, want QUO-1003", first)
	}
}

func TestAccountIDSpec(t *testing.T) {
	tests := []struct {
		accType AccountType
		want    string
	}{
		{AccountAssets, "ASS-001"},
		{AccountLiabilities, "LIA-001"},
		{AccountEquity, "EQU-001"},
		{AccountIncome, "INC-001"},
		{AccountExpense, "EXP-001"},
	}
	for _, tt := range tests {
		got := NextIDFrom(nil, accountIDSpec(tt.accType))
		if got != tt.want {
			t.Errorf("first %s account id = %q, want %q", tt.accType, got, tt.want)
		}
	}
}
