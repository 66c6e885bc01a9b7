package web

import (
	"net/http"

	"backoffice/internal/app"

	"github.com/go-chi/chi/v5"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc    app.ApplicationService
	router chi.Router
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins []string) http.Handler {
	h := &Handler{svc: svc}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))

	// ── Health ────────────────────────────────────────────────────────
	r.Get("/api/health", h.health)

	r.Group(func(r chi.Router) {
		// 1 MB body limit on the regular API; backup restore gets its own
		// larger cap below.
		r.Use(RequestBodyLimit(1 << 20))

		// ── CRM ───────────────────────────────────────────────────
		r.Get("/api/customers", h.listCustomers)
		r.Post("/api/customers", h.createCustomer)
		r.Get("/api/customers/export", h.exportCustomersCSV)
		r.Post("/api/customers/import", h.importCustomersCSV)
		r.Get("/api/customers/{id}", h.getCustomer)
		r.Put("/api/customers/{id}", h.updateCustomer)
		r.Delete("/api/customers/{id}", h.deleteCustomer)

		// ── Purchasing ────────────────────────────────────────────
		r.Get("/api/vendors", h.listVendors)
		r.Post("/api/vendors", h.createVendor)
		r.Get("/api/vendors/{id}", h.getVendor)
		r.Put("/api/vendors/{id}", h.updateVendor)
		r.Delete("/api/vendors/{id}", h.deleteVendor)

		// ── Catalog ───────────────────────────────────────────────
		r.Get("/api/products", h.listProducts)
		r.Post("/api/products", h.createProduct)
		r.Get("/api/products/{id}", h.getProduct)
		r.Put("/api/products/{id}", h.updateProduct)
		r.Delete("/api/products/{id}", h.deleteProduct)

		r.Get("/api/categories", h.listCategories)
		r.Post("/api/categories", h.createCategory)
		r.Put("/api/categories/{id}", h.updateCategory)
		r.Delete("/api/categories/{id}", h.deleteCategory)

		r.Get("/api/currencies", h.listCurrencies)
		r.Post("/api/currencies", h.createCurrency)
		r.Delete("/api/currencies/{code}", h.deleteCurrency)

		r.Get("/api/settings", h.getSettings)
		r.Put("/api/settings", h.updateSettings)

		// ── Projects ──────────────────────────────────────────────
		r.Get("/api/estimations", h.listEstimations)
		r.Post("/api/estimations", h.createEstimation)
		r.Get("/api/estimations/{id}", h.getEstimation)
		r.Put("/api/estimations/{id}", h.updateEstimation)
		r.Delete("/api/estimations/{id}", h.deleteEstimation)
		r.Post("/api/estimations/{id}/convert", h.convertEstimation)

		// ── Sales ─────────────────────────────────────────────────
		r.Get("/api/quotations", h.listQuotations)
		r.Post("/api/quotations", h.createQuotation)
		r.Get("/api/quotations/{id}", h.getQuotation)
		r.Put("/api/quotations/{id}", h.updateQuotation)
		r.Delete("/api/quotations/{id}", h.deleteQuotation)
		r.Patch("/api/quotations/{id}/status", h.updateQuotationStatus)
		r.Post("/api/quotations/{id}/convert", h.convertQuotation)

		r.Get("/api/sales-orders", h.listSalesOrders)
		r.Get("/api/sales-orders/{id}", h.getSalesOrder)
		r.Delete("/api/sales-orders/{id}", h.deleteSalesOrder)
		r.Patch("/api/sales-orders/{id}/status", h.updateSalesOrderStatus)
		r.Post("/api/sales-orders/{id}/convert", h.convertSalesOrder)

		r.Get("/api/invoices", h.listInvoices)
		r.Get("/api/invoices/{id}", h.getInvoice)
		r.Delete("/api/invoices/{id}", h.deleteInvoice)
		r.Patch("/api/invoices/{id}/status", h.updateInvoiceStatus)

		// ── Accounting ────────────────────────────────────────────
		r.Get("/api/accounts", h.listAccounts)
		r.Post("/api/accounts", h.createAccount)
		r.Get("/api/accounts/{id}", h.getAccount)
		r.Put("/api/accounts/{id}", h.updateAccount)
		r.Delete("/api/accounts/{id}", h.deleteAccount)

		r.Get("/api/journals", h.listJournals)
		r.Post("/api/journals", h.createJournal)
		r.Get("/api/journals/{id}", h.getJournal)
		r.Delete("/api/journals/{id}", h.deleteJournal)

		r.Get("/api/reports/trial-balance", h.trialBalance)

		// ── Backup ────────────────────────────────────────────────
		r.Get("/api/backup", h.exportBackup)
	})

	// Backup files carry the whole dataset; allow up to 50 MB.
	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(50 << 20))
		r.Post("/api/backup/restore", h.restoreBackup)
	})

	h.router = r
	return r
}

// health handles GET /api/health.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}
