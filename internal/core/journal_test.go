package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func amt(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestValidateJournalEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []JournalEntry
		wantErr bool
	}{
		{
			name: "balanced single pair",
			entries: []JournalEntry{
				{AccountID: "ASS-001", Debit: amt("100")},
				{AccountID: "INC-001", Credit: amt("100")},
			},
			wantErr: false,
		},
		{
			name: "balanced split credit",
			entries: []JournalEntry{
				{AccountID: "ASS-001", Debit: amt("100")},
				{AccountID: "INC-001", Credit: amt("60")},
				{AccountID: "LIA-001", Credit: amt("40")},
			},
			wantErr: false,
		},
		{
			name: "unbalanced",
			entries: []JournalEntry{
				{AccountID: "ASS-001", Debit: amt("100")},
				{AccountID: "INC-001", Credit: amt("50")},
			},
			wantErr: true,
		},
		{
			name: "rounding noise within tolerance",
			entries: []JournalEntry{
				{AccountID: "ASS-001", Debit: amt("33.335")},
				{AccountID: "INC-001", Credit: amt("33.33")},
			},
			wantErr: false,
		},
		{
			name: "all zero",
			entries: []JournalEntry{
				{AccountID: "ASS-001", Debit: amt("0")},
				{AccountID: "INC-001", Credit: amt("0")},
			},
			wantErr: true,
		},
		{
			name:    "no entries",
			entries: nil,
			wantErr: true,
		},
		{
			name: "missing account",
			entries: []JournalEntry{
				{Debit: amt("100")},
				{AccountID: "INC-001", Credit: amt("100")},
			},
			wantErr: true,
		},
		{
			name: "negative debit",
			entries: []JournalEntry{
				{AccountID: "ASS-001", Debit: amt("-100")},
				{AccountID: "INC-001", Credit: amt("-100")},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJournalEntries(tt.entries)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateJournalEntries() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestJournalBalance(t *testing.T) {
	entries := []JournalEntry{
		{AccountID: "ASS-001", Debit: amt("70")},
		{AccountID: "EXP-001", Debit: amt("30")},
		{AccountID: "INC-001", Credit: amt("100")},
		{AccountID: "EQU-001"}, // nil amounts count as zero
	}
	debits, credits := JournalBalance(entries)
	if !debits.Equal(dec("100")) {
		t.Errorf("debits = %s, want 100", debits)
	}
	if !credits.Equal(dec("100")) {
		t.Errorf("credits = %s, want 100", credits)
	}
}
