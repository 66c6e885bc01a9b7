package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QuotationInput carries the form fields for creating or updating a
// quotation directly, without going through an estimation.
type QuotationInput struct {
	Title    string
	Customer string
	Items    []DocumentItem
}

// QuotationService manages quotations, their status lifecycle, and their
// conversion into sales orders.
type QuotationService interface {
	CreateQuotation(ctx context.Context, input QuotationInput) (*Quotation, error)
	GetQuotation(ctx context.Context, id string) (*Quotation, error)
	GetQuotations(ctx context.Context) ([]Quotation, error)
	UpdateQuotation(ctx context.Context, id string, input QuotationInput) (*Quotation, error)
	DeleteQuotation(ctx context.Context, id string) error

	// UpdateQuotationStatus moves the quotation to a new status. Illegal
	// transitions are rejected with a RuleError; the current row is locked
	// for the duration of the check.
	UpdateQuotationStatus(ctx context.Context, id string, status QuotationStatus) (*Quotation, error)

	// ConvertToSalesOrder creates a sales order from an approved
	// quotation. The quotation itself is left untouched.
	ConvertToSalesOrder(ctx context.Context, quotationID string) (*SalesOrder, error)
}

type quotationService struct {
	pool *pgxpool.Pool
}

// NewQuotationService constructs a QuotationService backed by PostgreSQL.
func NewQuotationService(pool *pgxpool.Pool) QuotationService {
	return &quotationService{pool: pool}
}

func (input QuotationInput) validate() ValidationErrors {
	errs := ValidateDocumentItems(input.Items)
	if strings.TrimSpace(input.Title) == "" {
		errs.Add("title", "title is required")
	}
	return errs
}

// ── Shared document-item persistence ──────────────────────────────────────
//
// Quotations, sales orders, and invoices store their lines in structurally
// identical tables; these helpers are parameterized on the table and the
// parent column name.

func insertDocumentItemsTx(ctx context.Context, tx pgx.Tx, table, parentCol, parentID string, items []DocumentItem) error {
	for i, item := range items {
		_, err := tx.Exec(ctx, fmt.Sprintf(`
			INSERT INTO %s (id, %s, position, title, description, quantity, rate, image_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, table, parentCol), item.ID, parentID, i+1, item.Title, item.Description,
			item.Quantity, item.Rate, item.ImageURL)
		if err != nil {
			return fmt.Errorf("failed to insert item %d into %s: %w", i+1, table, err)
		}
	}
	return nil
}

func fetchDocumentItemsQ(ctx context.Context, q querier, table, parentCol, parentID string) ([]DocumentItem, error) {
	rows, err := q.Query(ctx, fmt.Sprintf(`
		SELECT id, title, description, quantity, rate, image_url
		FROM %s WHERE %s = $1 ORDER BY position
	`, table, parentCol), parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	var items []DocumentItem
	for rows.Next() {
		var it DocumentItem
		if err := rows.Scan(&it.ID, &it.Title, &it.Description, &it.Quantity, &it.Rate, &it.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan item from %s: %w", table, err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// documentItemID fills in a line ID when the caller did not supply one, as
// is the case for ad-hoc lines typed directly into a quotation form.
func documentItemID(items []DocumentItem, now time.Time) []DocumentItem {
	out := make([]DocumentItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = fmt.Sprintf("adhoc-%d", now.UnixMilli()+int64(i))
		}
	}
	return out
}

// ── Quotation lifecycle ───────────────────────────────────────────────────

func (s *quotationService) CreateQuotation(ctx context.Context, input QuotationInput) (*Quotation, error) {
	if errs := input.validate(); !errs.Empty() {
		return nil, errs
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	id, err := nextIDTx(ctx, tx, "quotations", quotationIDs)
	if err != nil {
		return nil, err
	}

	items := documentItemID(input.Items, time.Now())
	total := ItemsTotal(items)
	createdDate := time.Now().Format("2006-01-02")

	_, err = tx.Exec(ctx, `
		INSERT INTO quotations (id, title, estimation_id, customer, status, total_cost, created_date)
		VALUES ($1, $2, 'N/A', $3, $4, $5, $6)
	`, id, input.Title, input.Customer, QuotationDraft, total, createdDate)
	if err != nil {
		return nil, fmt.Errorf("failed to insert quotation: %w", err)
	}

	if err := insertDocumentItemsTx(ctx, tx, "quotation_items", "quotation_id", id, items); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit quotation creation: %w", err)
	}

	return &Quotation{
		ID:           id,
		Title:        input.Title,
		EstimationID: "N/A",
		Customer:     input.Customer,
		Status:       QuotationDraft,
		Items:        items,
		TotalCost:    total,
		CreatedDate:  createdDate,
	}, nil
}

func (s *quotationService) GetQuotation(ctx context.Context, id string) (*Quotation, error) {
	return getQuotationQ(ctx, s.pool, id, "")
}

// getQuotationQ fetches a quotation; lock may be "FOR UPDATE" to hold the
// row inside a transaction.
func getQuotationQ(ctx context.Context, q querier, id, lock string) (*Quotation, error) {
	quo := &Quotation{}
	err := q.QueryRow(ctx, `
		SELECT id, title, estimation_id, customer, status, total_cost, created_date::text
		FROM quotations WHERE id = $1 `+lock, id,
	).Scan(&quo.ID, &quo.Title, &quo.EstimationID, &quo.Customer, &quo.Status, &quo.TotalCost, &quo.CreatedDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Kind: "quotation", ID: id}
		}
		return nil, fmt.Errorf("failed to fetch quotation %s: %w", id, err)
	}

	items, err := fetchDocumentItemsQ(ctx, q, "quotation_items", "quotation_id", id)
	if err != nil {
		return nil, err
	}
	quo.Items = items
	return quo, nil
}

func (s *quotationService) GetQuotations(ctx context.Context) ([]Quotation, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, estimation_id, customer, status, total_cost, created_date::text
		FROM quotations ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query quotations: %w", err)
	}
	defer rows.Close()

	var quotations []Quotation
	for rows.Next() {
		var q Quotation
		if err := rows.Scan(&q.ID, &q.Title, &q.EstimationID, &q.Customer, &q.Status, &q.TotalCost, &q.CreatedDate); err != nil {
			return nil, fmt.Errorf("failed to scan quotation: %w", err)
		}
		quotations = append(quotations, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quotations: %w", err)
	}

	for i := range quotations {
		items, err := fetchDocumentItemsQ(ctx, s.pool, "quotation_items", "quotation_id", quotations[i].ID)
		if err != nil {
			return nil, err
		}
		quotations[i].Items = items
	}
	return quotations, nil
}

func (s *quotationService) UpdateQuotation(ctx context.Context, id string, input QuotationInput) (*Quotation, error) {
	if errs := input.validate(); !errs.Empty() {
		return nil, errs
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := getQuotationQ(ctx, tx, id, "FOR UPDATE"); err != nil {
		return nil, err
	}

	items := documentItemID(input.Items, time.Now())
	total := ItemsTotal(items)

	_, err = tx.Exec(ctx, `
		UPDATE quotations SET title = $2, customer = $3, total_cost = $4 WHERE id = $1
	`, id, input.Title, input.Customer, total)
	if err != nil {
		return nil, fmt.Errorf("failed to update quotation %s: %w", id, err)
	}

	if _, err := tx.Exec(ctx, "DELETE FROM quotation_items WHERE quotation_id = $1", id); err != nil {
		return nil, fmt.Errorf("failed to clear items for %s: %w", id, err)
	}
	if err := insertDocumentItemsTx(ctx, tx, "quotation_items", "quotation_id", id, items); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit quotation update: %w", err)
	}
	return s.GetQuotation(ctx, id)
}

func (s *quotationService) DeleteQuotation(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM quotations WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete quotation %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Kind: "quotation", ID: id}
	}
	return nil
}

func (s *quotationService) UpdateQuotationStatus(ctx context.Context, id string, status QuotationStatus) (*Quotation, error) {
	if !ValidQuotationStatus(status) {
		errs := ValidationErrors{}
		errs.Add("status", fmt.Sprintf("unknown status %q", status))
		return nil, errs
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	quo, err := getQuotationQ(ctx, tx, id, "FOR UPDATE")
	if err != nil {
		return nil, err
	}
	if !CanTransitionQuotation(quo.Status, status) {
		return nil, ruleErrorf("quotation %s cannot move from %s to %s", id, quo.Status, status)
	}

	if _, err := tx.Exec(ctx, "UPDATE quotations SET status = $2 WHERE id = $1", id, status); err != nil {
		return nil, fmt.Errorf("failed to update status of %s: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit status update: %w", err)
	}
	quo.Status = status
	return quo, nil
}

func (s *quotationService) ConvertToSalesOrder(ctx context.Context, quotationID string) (*SalesOrder, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	quo, err := getQuotationQ(ctx, tx, quotationID, "FOR UPDATE")
	if err != nil {
		return nil, err
	}
	if quo.Status != QuotationApproved {
		return nil, ruleErrorf("quotation %s must be approved before conversion, current status is %s", quotationID, quo.Status)
	}

	id, err := nextIDTx(ctx, tx, "sales_orders", salesOrderIDs)
	if err != nil {
		return nil, err
	}

	total := ItemsTotal(quo.Items)
	orderDate := time.Now().Format("2006-01-02")

	_, err = tx.Exec(ctx, `
		INSERT INTO sales_orders (id, title, quotation_id, customer, status, total_cost, order_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, id, quo.Title, quo.ID, quo.Customer, OrderOpen, total, orderDate)
	if err != nil {
		return nil, fmt.Errorf("failed to insert sales order: %w", err)
	}

	if err := insertDocumentItemsTx(ctx, tx, "sales_order_items", "sales_order_id", id, quo.Items); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit conversion of %s: %w", quotationID, err)
	}

	return &SalesOrder{
		ID:          id,
		Title:       quo.Title,
		QuotationID: quo.ID,
		Customer:    quo.Customer,
		Status:      OrderOpen,
		Items:       quo.Items,
		TotalCost:   total,
		OrderDate:   orderDate,
	}, nil
}
