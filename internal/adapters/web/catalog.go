package web

import (
	"net/http"

	"backoffice/internal/app"

	"github.com/go-chi/chi/v5"
)

// ── Products ──────────────────────────────────────────────────────────────

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListProducts(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req app.ProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	product, err := h.svc.CreateProduct(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, product)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.svc.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, product)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req app.ProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	product, err := h.svc.UpdateProduct(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, product)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Categories ────────────────────────────────────────────────────────────

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListCategories(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req app.CategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	category, err := h.svc.CreateCategory(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, category)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	var req app.CategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	category, err := h.svc.UpdateCategory(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, category)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Currencies ────────────────────────────────────────────────────────────

func (h *Handler) listCurrencies(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListCurrencies(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) createCurrency(w http.ResponseWriter, r *http.Request) {
	var req app.CurrencyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	currency, err := h.svc.CreateCurrency(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, currency)
}

func (h *Handler) deleteCurrency(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteCurrency(r.Context(), chi.URLParam(r, "code")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Settings ──────────────────────────────────────────────────────────────

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.GetSettings(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, settings)
}

func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	var req app.SettingsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	settings, err := h.svc.UpdateSettings(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, settings)
}
