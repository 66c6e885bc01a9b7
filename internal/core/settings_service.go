package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SettingsService reads and writes the AppSettings singleton row. Callers
// load the settings once per operation and pass them down; nothing in this
// package caches them.
type SettingsService interface {
	GetSettings(ctx context.Context) (*AppSettings, error)
	UpdateSettings(ctx context.Context, settings AppSettings) (*AppSettings, error)
}

type settingsService struct {
	pool *pgxpool.Pool
}

// NewSettingsService constructs a SettingsService backed by PostgreSQL.
func NewSettingsService(pool *pgxpool.Pool) SettingsService {
	return &settingsService{pool: pool}
}

func (s *settingsService) GetSettings(ctx context.Context) (*AppSettings, error) {
	return getSettingsQ(ctx, s.pool)
}

func getSettingsQ(ctx context.Context, q querier) (*AppSettings, error) {
	st := &AppSettings{}
	err := q.QueryRow(ctx, `
		SELECT currency, module_crm, module_projects, module_purchases, module_sales, module_accounting,
		       tax_percentage, quotation_terms, bank_details, dashboard_title
		FROM app_settings WHERE id
	`).Scan(
		&st.Currency,
		&st.Modules.CRM, &st.Modules.Projects, &st.Modules.Purchases, &st.Modules.Sales, &st.Modules.Accounting,
		&st.Quotation.TaxPercentage, &st.Quotation.Terms, &st.Quotation.BankDetails,
		&st.DashboardTitle,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return st, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, settings AppSettings) (*AppSettings, error) {
	errs := ValidationErrors{}
	if settings.Currency == "" {
		errs.Add("currency", "default currency is required")
	}
	if settings.Quotation.TaxPercentage.IsNegative() {
		errs.Add("tax_percentage", "tax percentage must not be negative")
	}
	if !errs.Empty() {
		return nil, errs
	}

	_, err := s.pool.Exec(ctx, `
		UPDATE app_settings
		SET currency = $1, module_crm = $2, module_projects = $3, module_purchases = $4,
		    module_sales = $5, module_accounting = $6, tax_percentage = $7,
		    quotation_terms = $8, bank_details = $9, dashboard_title = $10
		WHERE id
	`,
		settings.Currency,
		settings.Modules.CRM, settings.Modules.Projects, settings.Modules.Purchases,
		settings.Modules.Sales, settings.Modules.Accounting,
		settings.Quotation.TaxPercentage, settings.Quotation.Terms, settings.Quotation.BankDetails,
		settings.DashboardTitle,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return s.GetSettings(ctx)
}
