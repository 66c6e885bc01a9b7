package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InvoiceService manages the payment lifecycle of invoices. Invoices are
// only ever created by converting a fulfilled sales order.
type InvoiceService interface {
	GetInvoice(ctx context.Context, id string) (*Invoice, error)
	GetInvoices(ctx context.Context) ([]Invoice, error)
	DeleteInvoice(ctx context.Context, id string) error
	UpdateInvoiceStatus(ctx context.Context, id string, status InvoiceStatus) (*Invoice, error)
}

type invoiceService struct {
	pool *pgxpool.Pool
}

// NewInvoiceService constructs an InvoiceService backed by PostgreSQL.
func NewInvoiceService(pool *pgxpool.Pool) InvoiceService {
	return &invoiceService{pool: pool}
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*Invoice, error) {
	return getInvoiceQ(ctx, s.pool, id, "")
}

func getInvoiceQ(ctx context.Context, q querier, id, lock string) (*Invoice, error) {
	inv := &Invoice{}
	err := q.QueryRow(ctx, `
		SELECT id, sales_order_id, customer, status, total_cost, invoice_date::text, due_date::text
		FROM invoices WHERE id = $1 `+lock, id,
	).Scan(&inv.ID, &inv.SalesOrderID, &inv.Customer, &inv.Status, &inv.TotalCost, &inv.InvoiceDate, &inv.DueDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Kind: "invoice", ID: id}
		}
		return nil, fmt.Errorf("failed to fetch invoice %s: %w", id, err)
	}

	items, err := fetchDocumentItemsQ(ctx, q, "invoice_items", "invoice_id", id)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	return inv, nil
}

func (s *invoiceService) GetInvoices(ctx context.Context) ([]Invoice, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, sales_order_id, customer, status, total_cost, invoice_date::text, due_date::text
		FROM invoices ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		var inv Invoice
		if err := rows.Scan(&inv.ID, &inv.SalesOrderID, &inv.Customer, &inv.Status, &inv.TotalCost, &inv.InvoiceDate, &inv.DueDate); err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoices: %w", err)
	}

	for i := range invoices {
		items, err := fetchDocumentItemsQ(ctx, s.pool, "invoice_items", "invoice_id", invoices[i].ID)
		if err != nil {
			return nil, err
		}
		invoices[i].Items = items
	}
	return invoices, nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM invoices WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete invoice %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Kind: "invoice", ID: id}
	}
	return nil
}

func (s *invoiceService) UpdateInvoiceStatus(ctx context.Context, id string, status InvoiceStatus) (*Invoice, error) {
	if !ValidInvoiceStatus(status) {
		errs := ValidationErrors{}
		errs.Add("status", fmt.Sprintf("unknown status %q", status))
		return nil, errs
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	inv, err := getInvoiceQ(ctx, tx, id, "FOR UPDATE")
	if err != nil {
		return nil, err
	}
	if !CanTransitionInvoice(inv.Status, status) {
		return nil, ruleErrorf("invoice %s cannot move from %s to %s", id, inv.Status, status)
	}

	if _, err := tx.Exec(ctx, "UPDATE invoices SET status = $2 WHERE id = $1", id, status); err != nil {
		return nil, fmt.Errorf("failed to update status of %s: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit status update: %w", err)
	}
	inv.Status = status
	return inv, nil
}
