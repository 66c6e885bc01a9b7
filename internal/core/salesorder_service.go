package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// invoiceDueDays is the payment window applied when an invoice is created
// from a sales order.
const invoiceDueDays = 30

// SalesOrderService manages the fulfillment lifecycle of sales orders and
// their conversion into invoices. Orders are only ever created by converting
// an approved quotation.
type SalesOrderService interface {
	GetSalesOrder(ctx context.Context, id string) (*SalesOrder, error)
	GetSalesOrders(ctx context.Context) ([]SalesOrder, error)
	DeleteSalesOrder(ctx context.Context, id string) error

	// UpdateSalesOrderStatus moves the order along its fulfillment
	// lifecycle. The invoiced status is not reachable here; only
	// ConvertToInvoice sets it.
	UpdateSalesOrderStatus(ctx context.Context, id string, status SalesOrderStatus) (*SalesOrder, error)

	// ConvertToInvoice creates a draft invoice from a fulfilled order and
	// marks the order invoiced, both in the same transaction. The due
	// date is invoiceDueDays after the invoice date.
	ConvertToInvoice(ctx context.Context, orderID string) (*Invoice, error)
}

type salesOrderService struct {
	pool *pgxpool.Pool
}

// NewSalesOrderService constructs a SalesOrderService backed by PostgreSQL.
func NewSalesOrderService(pool *pgxpool.Pool) SalesOrderService {
	return &salesOrderService{pool: pool}
}

func (s *salesOrderService) GetSalesOrder(ctx context.Context, id string) (*SalesOrder, error) {
	return getSalesOrderQ(ctx, s.pool, id, "")
}

func getSalesOrderQ(ctx context.Context, q querier, id, lock string) (*SalesOrder, error) {
	so := &SalesOrder{}
	err := q.QueryRow(ctx, `
		SELECT id, title, quotation_id, customer, status, total_cost, order_date::text
		FROM sales_orders WHERE id = $1 `+lock, id,
	).Scan(&so.ID, &so.Title, &so.QuotationID, &so.Customer, &so.Status, &so.TotalCost, &so.OrderDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Kind: "sales order", ID: id}
		}
		return nil, fmt.Errorf("failed to fetch sales order %s: %w", id, err)
	}

	items, err := fetchDocumentItemsQ(ctx, q, "sales_order_items", "sales_order_id", id)
	if err != nil {
		return nil, err
	}
	so.Items = items
	return so, nil
}

func (s *salesOrderService) GetSalesOrders(ctx context.Context) ([]SalesOrder, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, quotation_id, customer, status, total_cost, order_date::text
		FROM sales_orders ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales orders: %w", err)
	}
	defer rows.Close()

	var orders []SalesOrder
	for rows.Next() {
		var so SalesOrder
		if err := rows.Scan(&so.ID, &so.Title, &so.QuotationID, &so.Customer, &so.Status, &so.TotalCost, &so.OrderDate); err != nil {
			return nil, fmt.Errorf("failed to scan sales order: %w", err)
		}
		orders = append(orders, so)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales orders: %w", err)
	}

	for i := range orders {
		items, err := fetchDocumentItemsQ(ctx, s.pool, "sales_order_items", "sales_order_id", orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (s *salesOrderService) DeleteSalesOrder(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM sales_orders WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete sales order %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Kind: "sales order", ID: id}
	}
	return nil
}

func (s *salesOrderService) UpdateSalesOrderStatus(ctx context.Context, id string, status SalesOrderStatus) (*SalesOrder, error) {
	if !ValidSalesOrderStatus(status) {
		errs := ValidationErrors{}
		errs.Add("status", fmt.Sprintf("unknown status %q", status))
		return nil, errs
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	so, err := getSalesOrderQ(ctx, tx, id, "FOR UPDATE")
	if err != nil {
		return nil, err
	}
	if !CanTransitionSalesOrder(so.Status, status) {
		return nil, ruleErrorf("sales order %s cannot move from %s to %s", id, so.Status, status)
	}

	if _, err := tx.Exec(ctx, "UPDATE sales_orders SET status = $2 WHERE id = $1", id, status); err != nil {
		return nil, fmt.Errorf("failed to update status of %s: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit status update: %w", err)
	}
	so.Status = status
	return so, nil
}

func (s *salesOrderService) ConvertToInvoice(ctx context.Context, orderID string) (*Invoice, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	so, err := getSalesOrderQ(ctx, tx, orderID, "FOR UPDATE")
	if err != nil {
		return nil, err
	}
	if so.Status != OrderFulfilled {
		return nil, ruleErrorf("sales order %s must be fulfilled before invoicing, current status is %s", orderID, so.Status)
	}

	id, err := nextIDTx(ctx, tx, "invoices", invoiceIDs)
	if err != nil {
		return nil, err
	}

	total := ItemsTotal(so.Items)
	now := time.Now()
	invoiceDate := now.Format("2006-01-02")
	dueDate := now.AddDate(0, 0, invoiceDueDays).Format("2006-01-02")

	_, err = tx.Exec(ctx, `
		INSERT INTO invoices (id, sales_order_id, customer, status, total_cost, invoice_date, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, id, so.ID, so.Customer, InvoiceDraft, total, invoiceDate, dueDate)
	if err != nil {
		return nil, fmt.Errorf("failed to insert invoice: %w", err)
	}

	if err := insertDocumentItemsTx(ctx, tx, "invoice_items", "invoice_id", id, so.Items); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, "UPDATE sales_orders SET status = $2 WHERE id = $1", so.ID, OrderInvoiced); err != nil {
		return nil, fmt.Errorf("failed to mark order %s invoiced: %w", so.ID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit conversion of %s: %w", orderID, err)
	}

	return &Invoice{
		ID:           id,
		SalesOrderID: so.ID,
		Customer:     so.Customer,
		Status:       InvoiceDraft,
		Items:        so.Items,
		TotalCost:    total,
		InvoiceDate:  invoiceDate,
		DueDate:      dueDate,
	}, nil
}
