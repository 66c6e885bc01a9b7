package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// VendorInput carries the form fields for creating or updating a vendor.
type VendorInput struct {
	Name        string
	Email       string
	Phone       string
	Address     string
	CompanyName string
}

type VendorService interface {
	CreateVendor(ctx context.Context, input VendorInput) (*Vendor, error)
	GetVendor(ctx context.Context, id string) (*Vendor, error)
	GetVendors(ctx context.Context) ([]Vendor, error)
	UpdateVendor(ctx context.Context, id string, input VendorInput) (*Vendor, error)
	DeleteVendor(ctx context.Context, id string) error
}

type vendorService struct {
	pool *pgxpool.Pool
}

// NewVendorService constructs a VendorService backed by PostgreSQL.
func NewVendorService(pool *pgxpool.Pool) VendorService {
	return &vendorService{pool: pool}
}

func (input VendorInput) validate() ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(input.Name) == "" {
		errs.Add("name", "name is required")
	}
	if input.Email != "" && !strings.Contains(input.Email, "@") {
		errs.Add("email", "email is invalid")
	}
	return errs
}

func (s *vendorService) CreateVendor(ctx context.Context, input VendorInput) (*Vendor, error) {
	if errs := input.validate(); !errs.Empty() {
		return nil, errs
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := checkEmailFree(ctx, tx, "vendors", input.Email, ""); err != nil {
		return nil, err
	}

	id, err := nextIDTx(ctx, tx, "vendors", vendorIDs)
	if err != nil {
		return nil, err
	}

	v := &Vendor{}
	err = tx.QueryRow(ctx, `
		INSERT INTO vendors (id, name, email, phone, address, company_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, COALESCE(email, ''), phone, address, company_name, created_at
	`, id, input.Name, emptyToNil(input.Email), input.Phone, input.Address, input.CompanyName).Scan(
		&v.ID, &v.Name, &v.Email, &v.Phone, &v.Address, &v.CompanyName, &v.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create vendor: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit vendor creation: %w", err)
	}
	return v, nil
}

func (s *vendorService) GetVendor(ctx context.Context, id string) (*Vendor, error) {
	v := &Vendor{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, COALESCE(email, ''), phone, address, company_name, created_at
		FROM vendors WHERE id = $1
	`, id).Scan(&v.ID, &v.Name, &v.Email, &v.Phone, &v.Address, &v.CompanyName, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Kind: "vendor", ID: id}
		}
		return nil, fmt.Errorf("failed to fetch vendor %s: %w", id, err)
	}
	return v, nil
}

func (s *vendorService) GetVendors(ctx context.Context) ([]Vendor, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, COALESCE(email, ''), phone, address, company_name, created_at
		FROM vendors ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query vendors: %w", err)
	}
	defer rows.Close()

	var vendors []Vendor
	for rows.Next() {
		var v Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.Email, &v.Phone, &v.Address, &v.CompanyName, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vendor: %w", err)
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}

func (s *vendorService) UpdateVendor(ctx context.Context, id string, input VendorInput) (*Vendor, error) {
	if errs := input.validate(); !errs.Empty() {
		return nil, errs
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := checkEmailFree(ctx, tx, "vendors", input.Email, id); err != nil {
		return nil, err
	}

	v := &Vendor{}
	err = tx.QueryRow(ctx, `
		UPDATE vendors
		SET name = $2, email = $3, phone = $4, address = $5, company_name = $6
		WHERE id = $1
		RETURNING id, name, COALESCE(email, ''), phone, address, company_name, created_at
	`, id, input.Name, emptyToNil(input.Email), input.Phone, input.Address, input.CompanyName).Scan(
		&v.ID, &v.Name, &v.Email, &v.Phone, &v.Address, &v.CompanyName, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Kind: "vendor", ID: id}
		}
		return nil, fmt.Errorf("failed to update vendor %s: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit vendor update: %w", err)
	}
	return v, nil
}

func (s *vendorService) DeleteVendor(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM vendors WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete vendor %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Kind: "vendor", ID: id}
	}
	return nil
}
