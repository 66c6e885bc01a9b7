package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ProductInput carries the form fields for creating or updating a product.
type ProductInput struct {
	Name          string
	Type          ProductType
	Category      string
	Subcategory   string
	PurchasePrice decimal.Decimal
	SalesPrice    decimal.Decimal
	Stock         decimal.Decimal
	Unit          string
}

// CategoryInput carries the form fields for a product category.
type CategoryInput struct {
	Name          string
	Abbreviation  string
	ProductType   string
	Subcategories []Subcategory
}

// ProductService manages the product catalog and its category tree.
type ProductService interface {
	CreateProduct(ctx context.Context, input ProductInput) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	GetProducts(ctx context.Context) ([]Product, error)
	UpdateProduct(ctx context.Context, id string, input ProductInput) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error

	CreateCategory(ctx context.Context, input CategoryInput) (*ProductCategory, error)
	GetCategories(ctx context.Context) ([]ProductCategory, error)
	UpdateCategory(ctx context.Context, id string, input CategoryInput) (*ProductCategory, error)
	DeleteCategory(ctx context.Context, id string) error
}

type productService struct {
	pool *pgxpool.Pool
}

// NewProductService constructs a ProductService backed by PostgreSQL.
func NewProductService(pool *pgxpool.Pool) ProductService {
	return &productService{pool: pool}
}

func (input ProductInput) validate() ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(input.Name) == "" {
		errs.Add("name", "name is required")
	}
	switch input.Type {
	case ProductTypeRawMaterial, ProductTypeService, ProductTypeFinishedGood:
	default:
		errs.Add("type", "type must be Raw Material, Service, or Finished Good")
	}
	if input.PurchasePrice.IsNegative() {
		errs.Add("purchase_price", "purchase price must not be negative")
	}
	if input.SalesPrice.IsNegative() {
		errs.Add("sales_price", "sales price must not be negative")
	}
	return errs
}

func (s *productService) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	if errs := input.validate(); !errs.Empty() {
		return nil, errs
	}
	if input.Unit == "" {
		input.Unit = "pcs"
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	id, err := nextIDTx(ctx, tx, "products", productIDs)
	if err != nil {
		return nil, err
	}

	p := &Product{}
	err = tx.QueryRow(ctx, `
		INSERT INTO products (id, name, product_type, category, subcategory, purchase_price, sales_price, stock, unit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, name, product_type, category, subcategory, purchase_price, sales_price, stock, unit, created_at
	`, id, input.Name, input.Type, input.Category, input.Subcategory,
		input.PurchasePrice, input.SalesPrice, input.Stock, input.Unit).Scan(
		&p.ID, &p.Name, &p.Type, &p.Category, &p.Subcategory,
		&p.PurchasePrice, &p.SalesPrice, &p.Stock, &p.Unit, &p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit product creation: %w", err)
	}
	return p, nil
}

func (s *productService) GetProduct(ctx context.Context, id string) (*Product, error) {
	p := &Product{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, product_type, category, subcategory, purchase_price, sales_price, stock, unit, created_at
		FROM products WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Type, &p.Category, &p.Subcategory,
		&p.PurchasePrice, &p.SalesPrice, &p.Stock, &p.Unit, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Kind: "product", ID: id}
		}
		return nil, fmt.Errorf("failed to fetch product %s: %w", id, err)
	}
	return p, nil
}

func (s *productService) GetProducts(ctx context.Context) ([]Product, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, product_type, category, subcategory, purchase_price, sales_price, stock, unit, created_at
		FROM products ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Type, &p.Category, &p.Subcategory,
			&p.PurchasePrice, &p.SalesPrice, &p.Stock, &p.Unit, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *productService) UpdateProduct(ctx context.Context, id string, input ProductInput) (*Product, error) {
	if errs := input.validate(); !errs.Empty() {
		return nil, errs
	}

	p := &Product{}
	err := s.pool.QueryRow(ctx, `
		UPDATE products
		SET name = $2, product_type = $3, category = $4, subcategory = $5,
		    purchase_price = $6, sales_price = $7, stock = $8, unit = $9
		WHERE id = $1
		RETURNING id, name, product_type, category, subcategory, purchase_price, sales_price, stock, unit, created_at
	`, id, input.Name, input.Type, input.Category, input.Subcategory,
		input.PurchasePrice, input.SalesPrice, input.Stock, input.Unit).Scan(
		&p.ID, &p.Name, &p.Type, &p.Category, &p.Subcategory,
		&p.PurchasePrice, &p.SalesPrice, &p.Stock, &p.Unit, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Kind: "product", ID: id}
		}
		return nil, fmt.Errorf("failed to update product %s: %w", id, err)
	}
	return p, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Kind: "product", ID: id}
	}
	return nil
}

// ── Categories ───────────────────────────────────────────────────────────────

func (input CategoryInput) validate() ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(input.Name) == "" {
		errs.Add("name", "name is required")
	}
	if len(input.Abbreviation) != 3 {
		errs.Add("abbreviation", "abbreviation must be exactly 3 characters")
	}
	for i, sub := range input.Subcategories {
		if strings.TrimSpace(sub.Name) == "" {
			errs.Add(fmt.Sprintf("subcategories[%d].name", i), "name is required")
		}
		if len(sub.Abbreviation) != 3 {
			errs.Add(fmt.Sprintf("subcategories[%d].abbreviation", i), "abbreviation must be exactly 3 characters")
		}
	}
	return errs
}

// checkCategoryFree verifies that name and abbreviation are each unused by
// any other category. Both are unique independently.
func checkCategoryFree(ctx context.Context, q querier, name, abbr, selfID string) error {
	var existing string
	err := q.QueryRow(ctx,
		"SELECT id FROM product_categories WHERE lower(name) = lower($1)", name,
	).Scan(&existing)
	if err == nil && existing != selfID {
		return &ConflictError{Field: "name", Value: name,
			Message: fmt.Sprintf("category name %s is already in use", name)}
	}
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to check category name: %w", err)
	}

	err = q.QueryRow(ctx,
		"SELECT id FROM product_categories WHERE lower(abbreviation) = lower($1)", abbr,
	).Scan(&existing)
	if err == nil && existing != selfID {
		return &ConflictError{Field: "abbreviation", Value: abbr,
			Message: fmt.Sprintf("category abbreviation %s is already in use", abbr)}
	}
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to check category abbreviation: %w", err)
	}
	return nil
}

func (s *productService) CreateCategory(ctx context.Context, input CategoryInput) (*ProductCategory, error) {
	if errs := input.validate(); !errs.Empty() {
		return nil, errs
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := checkCategoryFree(ctx, tx, input.Name, input.Abbreviation, ""); err != nil {
		return nil, err
	}

	id, err := nextIDTx(ctx, tx, "product_categories", categoryIDs)
	if err != nil {
		return nil, err
	}

	subs, err := json.Marshal(input.Subcategories)
	if err != nil {
		return nil, fmt.Errorf("failed to encode subcategories: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO product_categories (id, name, abbreviation, product_type, subcategories)
		VALUES ($1, $2, $3, $4, $5)
	`, id, input.Name, input.Abbreviation, input.ProductType, subs)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit category creation: %w", err)
	}

	return &ProductCategory{
		ID:            id,
		Name:          input.Name,
		Abbreviation:  input.Abbreviation,
		ProductType:   input.ProductType,
		Subcategories: input.Subcategories,
	}, nil
}

func (s *productService) GetCategories(ctx context.Context) ([]ProductCategory, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, abbreviation, product_type, subcategories
		FROM product_categories ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []ProductCategory
	for rows.Next() {
		var c ProductCategory
		var subs []byte
		if err := rows.Scan(&c.ID, &c.Name, &c.Abbreviation, &c.ProductType, &subs); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		if err := json.Unmarshal(subs, &c.Subcategories); err != nil {
			return nil, fmt.Errorf("failed to decode subcategories for %s: %w", c.ID, err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *productService) UpdateCategory(ctx context.Context, id string, input CategoryInput) (*ProductCategory, error) {
	if errs := input.validate(); !errs.Empty() {
		return nil, errs
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := checkCategoryFree(ctx, tx, input.Name, input.Abbreviation, id); err != nil {
		return nil, err
	}

	subs, err := json.Marshal(input.Subcategories)
	if err != nil {
		return nil, fmt.Errorf("failed to encode subcategories: %w", err)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE product_categories
		SET name = $2, abbreviation = $3, product_type = $4, subcategories = $5
		WHERE id = $1
	`, id, input.Name, input.Abbreviation, input.ProductType, subs)
	if err != nil {
		return nil, fmt.Errorf("failed to update category %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, &NotFoundError{Kind: "category", ID: id}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit category update: %w", err)
	}

	return &ProductCategory{
		ID:            id,
		Name:          input.Name,
		Abbreviation:  input.Abbreviation,
		ProductType:   input.ProductType,
		Subcategories: input.Subcategories,
	}, nil
}

func (s *productService) DeleteCategory(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM product_categories WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete category %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Kind: "category", ID: id}
	}
	return nil
}
