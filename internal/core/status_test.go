package core

import "testing"

func TestCanTransitionQuotation(t *testing.T) {
	tests := []struct {
		from, to QuotationStatus
		want     bool
	}{
		{QuotationDraft, QuotationSent, true},
		{QuotationDraft, QuotationApproved, true},
		{QuotationDraft, QuotationRejected, true},
		{QuotationSent, QuotationApproved, true},
		{QuotationSent, QuotationRejected, true},
		{QuotationSent, QuotationDraft, false},
		{QuotationApproved, QuotationRejected, false},
		{QuotationApproved, QuotationDraft, false},
		{QuotationRejected, QuotationApproved, false},
	}
	for _, tt := range tests {
		if got := CanTransitionQuotation(tt.from, tt.to); got != tt.want {
			t.Errorf("quotation %s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCanTransitionSalesOrder(t *testing.T) {
	tests := []struct {
		from, to SalesOrderStatus
		want     bool
	}{
		{OrderOpen, OrderInProgress, true},
		{OrderOpen, OrderCanceled, true},
		{OrderOpen, OrderFulfilled, false},
		{OrderInProgress, OrderFulfilled, true},
		{OrderInProgress, OrderCanceled, true},
		{OrderCanceled, OrderOpen, true},
		{OrderFulfilled, OrderInvoiced, false}, // conversion only
		{OrderInvoiced, OrderOpen, false},
		{OrderFulfilled, OrderOpen, false},
	}
	for _, tt := range tests {
		if got := CanTransitionSalesOrder(tt.from, tt.to); got != tt.want {
			t.Errorf("order %s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCanTransitionInvoice(t *testing.T) {
	tests := []struct {
		from, to InvoiceStatus
		want     bool
	}{
		{InvoiceDraft, InvoiceSent, true},
		{InvoiceDraft, InvoiceVoid, true},
		{InvoiceDraft, InvoicePaid, false},
		{InvoiceSent, InvoicePaid, true},
		{InvoiceSent, InvoiceVoid, true},
		{InvoiceVoid, InvoiceDraft, true},
		{InvoicePaid, InvoiceVoid, false},
		{InvoicePaid, InvoiceDraft, false},
	}
	for _, tt := range tests {
		if got := CanTransitionInvoice(tt.from, tt.to); got != tt.want {
			t.Errorf("invoice %s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestValidStatuses(t *testing.T) {
	if !ValidQuotationStatus(QuotationDraft) || ValidQuotationStatus("archived") {
		t.Error("quotation status validity check broken")
	}
	if !ValidSalesOrderStatus(OrderInvoiced) || ValidSalesOrderStatus("shipped") {
		t.Error("sales order status validity check broken")
	}
	if !ValidInvoiceStatus(InvoicePaid) || ValidInvoiceStatus("overdue") {
		t.Error("invoice status validity check broken")
	}
}
