package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CustomerInput carries the form fields for creating or updating a customer.
type CustomerInput struct {
	Name        string
	Email       string
	Phone       string
	Address     string
	Status      CustomerStatus
	CompanyName string
	TRNNumber   string
}

// CustomerService manages the CRM customer collection, including the CSV
// import/export round trip.
type CustomerService interface {
	CreateCustomer(ctx context.Context, input CustomerInput) (*Customer, error)
	GetCustomer(ctx context.Context, id string) (*Customer, error)
	GetCustomers(ctx context.Context) ([]Customer, error)
	UpdateCustomer(ctx context.Context, id string, input CustomerInput) (*Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
	ImportCustomersCSV(ctx context.Context, data []byte) (*CSVImportResult, error)
	ExportCustomersCSV(ctx context.Context) ([]byte, error)
}

type customerService struct {
	pool *pgxpool.Pool
}

// NewCustomerService constructs a CustomerService backed by PostgreSQL.
func NewCustomerService(pool *pgxpool.Pool) CustomerService {
	return &customerService{pool: pool}
}

func (input CustomerInput) validate() ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(input.Name) == "" {
		errs.Add("name", "name is required")
	}
	if input.Email != "" && !strings.Contains(input.Email, "@") {
		errs.Add("email", "email is invalid")
	}
	if input.Status != "" && input.Status != CustomerActive && input.Status != CustomerInactive {
		errs.Add("status", "status must be active or inactive")
	}
	return errs
}

func (s *customerService) CreateCustomer(ctx context.Context, input CustomerInput) (*Customer, error) {
	if errs := input.validate(); !errs.Empty() {
		return nil, errs
	}
	if input.Status == "" {
		input.Status = CustomerActive
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := checkEmailFree(ctx, tx, "customers", input.Email, ""); err != nil {
		return nil, err
	}

	id, err := nextIDTx(ctx, tx, "customers", customerIDs)
	if err != nil {
		return nil, err
	}

	c := &Customer{}
	err = tx.QueryRow(ctx, `
		INSERT INTO customers (id, name, email, phone, address, status, company_name, trn_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, name, COALESCE(email, ''), phone, address, status, company_name, trn_number, created_at
	`, id, input.Name, emptyToNil(input.Email), input.Phone, input.Address, input.Status,
		input.CompanyName, input.TRNNumber).Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.Status, &c.CompanyName, &c.TRNNumber, &c.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit customer creation: %w", err)
	}
	return c, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	return getCustomerQ(ctx, s.pool, id)
}

func getCustomerQ(ctx context.Context, q querier, id string) (*Customer, error) {
	c := &Customer{}
	err := q.QueryRow(ctx, `
		SELECT id, name, COALESCE(email, ''), phone, address, status, company_name, trn_number, created_at
		FROM customers WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.Status, &c.CompanyName, &c.TRNNumber, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Kind: "customer", ID: id}
		}
		return nil, fmt.Errorf("failed to fetch customer %s: %w", id, err)
	}
	return c, nil
}

func (s *customerService) GetCustomers(ctx context.Context) ([]Customer, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, COALESCE(email, ''), phone, address, status, company_name, trn_number, created_at
		FROM customers ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.Status,
			&c.CompanyName, &c.TRNNumber, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (s *customerService) UpdateCustomer(ctx context.Context, id string, input CustomerInput) (*Customer, error) {
	if errs := input.validate(); !errs.Empty() {
		return nil, errs
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := getCustomerQ(ctx, tx, id); err != nil {
		return nil, err
	}
	if err := checkEmailFree(ctx, tx, "customers", input.Email, id); err != nil {
		return nil, err
	}

	c := &Customer{}
	err = tx.QueryRow(ctx, `
		UPDATE customers
		SET name = $2, email = $3, phone = $4, address = $5, status = $6, company_name = $7, trn_number = $8
		WHERE id = $1
		RETURNING id, name, COALESCE(email, ''), phone, address, status, company_name, trn_number, created_at
	`, id, input.Name, emptyToNil(input.Email), input.Phone, input.Address, input.Status,
		input.CompanyName, input.TRNNumber).Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.Status, &c.CompanyName, &c.TRNNumber, &c.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update customer %s: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit customer update: %w", err)
	}
	return c, nil
}

// DeleteCustomer removes a customer. No cascade: documents that copied the
// customer's name keep it.
func (s *customerService) DeleteCustomer(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM customers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete customer %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Kind: "customer", ID: id}
	}
	return nil
}

// checkEmailFree returns a ConflictError when email is already used by a
// different record in table. Empty emails are always free. Runs inside the
// caller's transaction so the check and the write are isolated; the partial
// unique index remains the final authority.
func checkEmailFree(ctx context.Context, q querier, table, email, selfID string) error {
	if email == "" {
		return nil
	}
	var existing string
	err := q.QueryRow(ctx,
		fmt.Sprintf("SELECT id FROM %s WHERE lower(email) = lower($1)", table), email,
	).Scan(&existing)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if existing != selfID {
		return &ConflictError{
			Field:   "email",
			Value:   email,
			Message: fmt.Sprintf("email %s is already in use", email),
		}
	}
	return nil
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
