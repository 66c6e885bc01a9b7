package core

import "github.com/shopspring/decimal"

// balanceTolerance absorbs rounding noise from per-line decimal input.
var balanceTolerance = decimal.NewFromFloat(0.01)

// JournalBalance sums the debit and credit columns of a journal's entries.
// Nil amounts count as zero.
func JournalBalance(entries []JournalEntry) (debits, credits decimal.Decimal) {
	for _, e := range entries {
		if e.Debit != nil {
			debits = debits.Add(*e.Debit)
		}
		if e.Credit != nil {
			credits = credits.Add(*e.Credit)
		}
	}
	return debits, credits
}

// ValidateJournalEntries enforces the ledger consistency rule:
// |Σdebit − Σcredit| < 0.01 and Σdebit > 0. Negative amounts are rejected
// line by line. Unlike the usual field validation this runs on every create,
// not just in the client.
func ValidateJournalEntries(entries []JournalEntry) error {
	if len(entries) == 0 {
		return ruleErrorf("journal must have at least one entry")
	}

	for i, e := range entries {
		if e.AccountID == "" {
			return ruleErrorf("entry %d: account is required", i+1)
		}
		if e.Debit != nil && e.Debit.IsNegative() {
			return ruleErrorf("entry %d: debit must not be negative", i+1)
		}
		if e.Credit != nil && e.Credit.IsNegative() {
			return ruleErrorf("entry %d: credit must not be negative", i+1)
		}
	}

	debits, credits := JournalBalance(entries)
	if debits.Sub(credits).Abs().GreaterThanOrEqual(balanceTolerance) {
		return ruleErrorf("journal is not balanced: debits %s != credits %s",
			debits.StringFixed(2), credits.StringFixed(2))
	}
	if !debits.IsPositive() {
		return ruleErrorf("journal total must be greater than zero")
	}
	return nil
}
