package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CurrencyService manages the currency list. Codes are unique ignoring case;
// the process default currency is protected from deletion.
type CurrencyService interface {
	CreateCurrency(ctx context.Context, code, name, symbol string) (*Currency, error)
	GetCurrencies(ctx context.Context) ([]Currency, error)
	DeleteCurrency(ctx context.Context, code string) error
}

type currencyService struct {
	pool *pgxpool.Pool
}

// NewCurrencyService constructs a CurrencyService backed by PostgreSQL.
func NewCurrencyService(pool *pgxpool.Pool) CurrencyService {
	return &currencyService{pool: pool}
}

func (s *currencyService) CreateCurrency(ctx context.Context, code, name, symbol string) (*Currency, error) {
	errs := ValidationErrors{}
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		errs.Add("code", "code must be exactly 3 characters")
	}
	if strings.TrimSpace(name) == "" {
		errs.Add("name", "name is required")
	}
	if strings.TrimSpace(symbol) == "" {
		errs.Add("symbol", "symbol is required")
	}
	if !errs.Empty() {
		return nil, errs
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var existing string
	err = tx.QueryRow(ctx, "SELECT code FROM currencies WHERE lower(code) = lower($1)", code).Scan(&existing)
	if err == nil {
		return nil, &ConflictError{Field: "code", Value: code,
			Message: fmt.Sprintf("currency code %s already exists", code)}
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to check currency code: %w", err)
	}

	if _, err := tx.Exec(ctx,
		"INSERT INTO currencies (code, name, symbol) VALUES ($1, $2, $3)", code, name, symbol,
	); err != nil {
		return nil, fmt.Errorf("failed to create currency: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit currency creation: %w", err)
	}
	return &Currency{Code: code, Name: name, Symbol: symbol}, nil
}

func (s *currencyService) GetCurrencies(ctx context.Context) ([]Currency, error) {
	rows, err := s.pool.Query(ctx, "SELECT code, name, symbol FROM currencies ORDER BY code")
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	var currencies []Currency
	for rows.Next() {
		var c Currency
		if err := rows.Scan(&c.Code, &c.Name, &c.Symbol); err != nil {
			return nil, fmt.Errorf("failed to scan currency: %w", err)
		}
		currencies = append(currencies, c)
	}
	return currencies, rows.Err()
}

// DeleteCurrency removes a currency unless it is the configured default.
// The default check runs in the delete transaction so a concurrent settings
// change cannot slip through.
func (s *currencyService) DeleteCurrency(ctx context.Context, code string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var defaultCode string
	if err := tx.QueryRow(ctx, "SELECT currency FROM app_settings WHERE id").Scan(&defaultCode); err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if strings.EqualFold(code, defaultCode) {
		return ruleErrorf("cannot delete the default currency %s; change the default currency first", defaultCode)
	}

	tag, err := tx.Exec(ctx, "DELETE FROM currencies WHERE lower(code) = lower($1)", code)
	if err != nil {
		return fmt.Errorf("failed to delete currency %s: %w", code, err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Kind: "currency", ID: code}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit currency deletion: %w", err)
	}
	return nil
}
