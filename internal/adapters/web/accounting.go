package web

import (
	"net/http"

	"backoffice/internal/app"

	"github.com/go-chi/chi/v5"
)

// ── Accounts ──────────────────────────────────────────────────────────────

func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListAccounts(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) createAccount(w http.ResponseWriter, r *http.Request) {
	var req app.AccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	account, err := h.svc.CreateAccount(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, account)
}

func (h *Handler) getAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.svc.GetAccount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, account)
}

func (h *Handler) updateAccount(w http.ResponseWriter, r *http.Request) {
	var req app.AccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	account, err := h.svc.UpdateAccount(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, account)
}

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteAccount(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Journals ──────────────────────────────────────────────────────────────

func (h *Handler) listJournals(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListJournals(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) createJournal(w http.ResponseWriter, r *http.Request) {
	var req app.JournalRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	journal, err := h.svc.CreateJournal(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, journal)
}

func (h *Handler) getJournal(w http.ResponseWriter, r *http.Request) {
	journal, err := h.svc.GetJournal(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, journal)
}

func (h *Handler) deleteJournal(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteJournal(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// trialBalance handles GET /api/reports/trial-balance.
func (h *Handler) trialBalance(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetTrialBalance(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, result)
}
