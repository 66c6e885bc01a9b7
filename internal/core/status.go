package core

// Status transitions are enforced server-side with explicit tables keyed by
// current status. Conversion-only statuses (sales order → invoiced) are not
// reachable through the plain status-update path; the conversion sets them
// inside its own transaction.

var quotationTransitions = map[QuotationStatus][]QuotationStatus{
	QuotationDraft:    {QuotationSent, QuotationApproved, QuotationRejected},
	QuotationSent:     {QuotationApproved, QuotationRejected},
	QuotationApproved: {},
	QuotationRejected: {},
}

var salesOrderTransitions = map[SalesOrderStatus][]SalesOrderStatus{
	OrderOpen:       {OrderInProgress, OrderCanceled},
	OrderInProgress: {OrderFulfilled, OrderCanceled},
	OrderCanceled:   {OrderOpen}, // re-open
	OrderFulfilled:  {},          // invoiced only via conversion
	OrderInvoiced:   {},
}

var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceDraft: {InvoiceSent, InvoiceVoid},
	InvoiceSent:  {InvoicePaid, InvoiceVoid},
	InvoiceVoid:  {InvoiceDraft}, // re-open
	InvoicePaid:  {},
}

func contains[T comparable](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// CanTransitionQuotation reports whether from → to is a legal quotation move.
func CanTransitionQuotation(from, to QuotationStatus) bool {
	return contains(quotationTransitions[from], to)
}

// CanTransitionSalesOrder reports whether from → to is a legal order move.
func CanTransitionSalesOrder(from, to SalesOrderStatus) bool {
	return contains(salesOrderTransitions[from], to)
}

// CanTransitionInvoice reports whether from → to is a legal invoice move.
func CanTransitionInvoice(from, to InvoiceStatus) bool {
	return contains(invoiceTransitions[from], to)
}

// ValidQuotationStatus reports whether s is a known quotation status.
func ValidQuotationStatus(s QuotationStatus) bool {
	_, ok := quotationTransitions[s]
	return ok
}

// ValidSalesOrderStatus reports whether s is a known sales order status.
func ValidSalesOrderStatus(s SalesOrderStatus) bool {
	_, ok := salesOrderTransitions[s]
	return ok
}

// ValidInvoiceStatus reports whether s is a known invoice status.
func ValidInvoiceStatus(s InvoiceStatus) bool {
	_, ok := invoiceTransitions[s]
	return ok
}
