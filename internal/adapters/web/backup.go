package web

import (
	"net/http"

	"backoffice/internal/core"
)

// exportBackup handles GET /api/backup. The response is the whole dataset as
// one JSON document.
func (h *Handler) exportBackup(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.ExportBackup(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="backup.json"`)
	writeJSON(w, doc)
}

// restoreBackup handles POST /api/backup/restore. Restoring replaces the
// entire dataset.
func (h *Handler) restoreBackup(w http.ResponseWriter, r *http.Request) {
	var doc core.BackupDocument
	if !decodeJSON(w, r, &doc) {
		return
	}
	if err := h.svc.RestoreBackup(r.Context(), &doc); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, map[string]string{"status": "restored"})
}
