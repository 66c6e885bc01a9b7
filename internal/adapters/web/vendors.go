package web

import (
	"net/http"

	"backoffice/internal/app"

	"github.com/go-chi/chi/v5"
)

// listVendors handles GET /api/vendors.
func (h *Handler) listVendors(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListVendors(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// createVendor handles POST /api/vendors.
func (h *Handler) createVendor(w http.ResponseWriter, r *http.Request) {
	var req app.VendorRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	vendor, err := h.svc.CreateVendor(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, vendor)
}

// getVendor handles GET /api/vendors/{id}.
func (h *Handler) getVendor(w http.ResponseWriter, r *http.Request) {
	vendor, err := h.svc.GetVendor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, vendor)
}

// updateVendor handles PUT /api/vendors/{id}.
func (h *Handler) updateVendor(w http.ResponseWriter, r *http.Request) {
	var req app.VendorRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	vendor, err := h.svc.UpdateVendor(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, vendor)
}

// deleteVendor handles DELETE /api/vendors/{id}.
func (h *Handler) deleteVendor(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteVendor(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
