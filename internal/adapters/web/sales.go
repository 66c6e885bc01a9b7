package web

import (
	"net/http"

	"backoffice/internal/app"

	"github.com/go-chi/chi/v5"
)

// statusRequest is the body of the PATCH .../status endpoints.
type statusRequest struct {
	Status string `json:"status"`
}

// ── Estimations ───────────────────────────────────────────────────────────

func (h *Handler) listEstimations(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListEstimations(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) createEstimation(w http.ResponseWriter, r *http.Request) {
	var req app.EstimationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	est, err := h.svc.CreateEstimation(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, est)
}

func (h *Handler) getEstimation(w http.ResponseWriter, r *http.Request) {
	est, err := h.svc.GetEstimation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, est)
}

func (h *Handler) updateEstimation(w http.ResponseWriter, r *http.Request) {
	var req app.EstimationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	est, err := h.svc.UpdateEstimation(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, est)
}

func (h *Handler) deleteEstimation(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteEstimation(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// convertEstimation handles POST /api/estimations/{id}/convert.
func (h *Handler) convertEstimation(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ConvertEstimation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, result)
}

// ── Quotations ────────────────────────────────────────────────────────────

func (h *Handler) listQuotations(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListQuotations(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) createQuotation(w http.ResponseWriter, r *http.Request) {
	var req app.QuotationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.CreateQuotation(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, result)
}

func (h *Handler) getQuotation(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetQuotation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) updateQuotation(w http.ResponseWriter, r *http.Request) {
	var req app.QuotationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.UpdateQuotation(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) deleteQuotation(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteQuotation(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) updateQuotationStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.UpdateQuotationStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// convertQuotation handles POST /api/quotations/{id}/convert.
func (h *Handler) convertQuotation(w http.ResponseWriter, r *http.Request) {
	order, err := h.svc.ConvertQuotation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, order)
}

// ── Sales orders ──────────────────────────────────────────────────────────

func (h *Handler) listSalesOrders(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListSalesOrders(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) getSalesOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.svc.GetSalesOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, order)
}

func (h *Handler) deleteSalesOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteSalesOrder(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) updateSalesOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	order, err := h.svc.UpdateSalesOrderStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, order)
}

// convertSalesOrder handles POST /api/sales-orders/{id}/convert.
func (h *Handler) convertSalesOrder(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ConvertSalesOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, result)
}

// ── Invoices ──────────────────────────────────────────────────────────────

func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListInvoices(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) getInvoice(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetInvoice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) deleteInvoice(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteInvoice(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) updateInvoiceStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.UpdateInvoiceStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, result)
}
