package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// EstimationItemInput is one line of an estimation task form. ProductID is
// set for catalog lines; ad-hoc lines leave it empty and receive a synthetic
// adhoc-<timestamp> ID.
type EstimationItemInput struct {
	ProductID string
	Name      string
	Quantity  decimal.Decimal
	Cost      decimal.Decimal
	Size      string
	Color     string
	Model     string
	Notes     string
	ImageURL  string
}

// EstimationTaskInput is one task of an estimation form.
type EstimationTaskInput struct {
	Title       string
	Description string
	Items       []EstimationItemInput
}

// EstimationInput carries the form fields for creating or updating an
// estimation. Totals are never accepted from the caller; they are always
// recomputed before the write.
type EstimationInput struct {
	Title      string
	CustomerID string
	Tasks      []EstimationTaskInput
}

// EstimationService manages estimations and their conversion into quotations.
type EstimationService interface {
	CreateEstimation(ctx context.Context, input EstimationInput) (*Estimation, error)
	GetEstimation(ctx context.Context, id string) (*Estimation, error)
	GetEstimations(ctx context.Context) ([]Estimation, error)
	UpdateEstimation(ctx context.Context, id string, input EstimationInput) (*Estimation, error)
	DeleteEstimation(ctx context.Context, id string) error

	// ConvertToQuotation flattens the estimation's tasks into a flat item
	// list and creates a draft quotation in a single transaction. Task
	// grouping is lost; item costs are copied verbatim into rates.
	ConvertToQuotation(ctx context.Context, estimationID string) (*Quotation, error)
}

type estimationService struct {
	pool *pgxpool.Pool
}

// NewEstimationService constructs an EstimationService backed by PostgreSQL.
func NewEstimationService(pool *pgxpool.Pool) EstimationService {
	return &estimationService{pool: pool}
}

func (input EstimationInput) validate() ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(input.Title) == "" {
		errs.Add("title", "title is required")
	}
	if len(input.Tasks) == 0 {
		errs.Add("tasks", "at least one task is required")
	}
	for ti, task := range input.Tasks {
		if strings.TrimSpace(task.Title) == "" {
			errs.Add(fmt.Sprintf("tasks[%d].title", ti), "title is required")
		}
		if len(task.Items) == 0 {
			errs.Add(fmt.Sprintf("tasks[%d].items", ti), "at least one item is required")
		}
		for ii, item := range task.Items {
			field := func(name string) string { return fmt.Sprintf("tasks[%d].items[%d].%s", ti, ii, name) }
			if strings.TrimSpace(item.Name) == "" {
				errs.Add(field("name"), "name is required")
			}
			if item.Quantity.LessThan(MinQuantity) {
				errs.Add(field("quantity"), "quantity must be greater than 0")
			}
			if item.Cost.IsNegative() {
				errs.Add(field("cost"), "cost must not be negative")
			}
		}
	}
	return errs
}

// buildTasks materializes input tasks into model tasks with assigned item IDs
// and recomputed totals.
func buildTasks(estimationID string, inputs []EstimationTaskInput, now time.Time) []EstimationTask {
	tasks := make([]EstimationTask, len(inputs))
	for ti, t := range inputs {
		items := make([]EstimationItem, len(t.Items))
		for ii, it := range t.Items {
			item := EstimationItem{
				ID:       it.ProductID,
				Name:     it.Name,
				Quantity: it.Quantity,
				Cost:     it.Cost,
				Type:     ItemProduct,
				Size:     it.Size,
				Color:    it.Color,
				Model:    it.Model,
				Notes:    it.Notes,
				ImageURL: it.ImageURL,
			}
			if item.ID == "" {
				item.Type = ItemAdhoc
				item.ID = fmt.Sprintf("adhoc-%d", now.UnixMilli()+int64(ti*1000+ii))
			}
			items[ii] = item
		}
		tasks[ti] = EstimationTask{
			ID:          fmt.Sprintf("%s-T%d", estimationID, ti+1),
			Title:       t.Title,
			Description: t.Description,
			Items:       items,
		}
	}
	return tasks
}

func (s *estimationService) CreateEstimation(ctx context.Context, input EstimationInput) (*Estimation, error) {
	if errs := input.validate(); !errs.Empty() {
		return nil, errs
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	customerName := ""
	if input.CustomerID != "" {
		c, err := getCustomerQ(ctx, tx, input.CustomerID)
		if err != nil {
			return nil, err
		}
		customerName = c.Name
	}

	id, err := nextIDTx(ctx, tx, "estimations", estimationIDs)
	if err != nil {
		return nil, err
	}

	tasks := buildTasks(id, input.Tasks, time.Now())
	total := EstimationTotal(tasks)
	createdDate := time.Now().Format("2006-01-02")

	_, err = tx.Exec(ctx, `
		INSERT INTO estimations (id, title, customer_id, customer_name, total_cost, created_date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, input.Title, input.CustomerID, customerName, total, createdDate)
	if err != nil {
		return nil, fmt.Errorf("failed to insert estimation: %w", err)
	}

	if err := insertTasksTx(ctx, tx, id, tasks); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit estimation creation: %w", err)
	}

	return &Estimation{
		ID:           id,
		Title:        input.Title,
		CustomerID:   input.CustomerID,
		CustomerName: customerName,
		Tasks:        tasks,
		TotalCost:    total,
		CreatedDate:  createdDate,
	}, nil
}

func insertTasksTx(ctx context.Context, tx pgx.Tx, estimationID string, tasks []EstimationTask) error {
	for ti, task := range tasks {
		_, err := tx.Exec(ctx, `
			INSERT INTO estimation_tasks (id, estimation_id, position, title, description, total_cost)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, task.ID, estimationID, ti+1, task.Title, task.Description, task.TotalCost)
		if err != nil {
			return fmt.Errorf("failed to insert task %d: %w", ti+1, err)
		}
		for ii, item := range task.Items {
			_, err := tx.Exec(ctx, `
				INSERT INTO estimation_items (id, task_id, position, name, quantity, cost, item_type,
				                              size, color, model, notes, image_url)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			`, item.ID, task.ID, ii+1, item.Name, item.Quantity, item.Cost, item.Type,
				item.Size, item.Color, item.Model, item.Notes, item.ImageURL)
			if err != nil {
				return fmt.Errorf("failed to insert item %d of task %d: %w", ii+1, ti+1, err)
			}
		}
	}
	return nil
}

func (s *estimationService) GetEstimation(ctx context.Context, id string) (*Estimation, error) {
	return getEstimationQ(ctx, s.pool, id)
}

func getEstimationQ(ctx context.Context, q querier, id string) (*Estimation, error) {
	e := &Estimation{}
	err := q.QueryRow(ctx, `
		SELECT id, title, customer_id, customer_name, total_cost, created_date::text
		FROM estimations WHERE id = $1
	`, id).Scan(&e.ID, &e.Title, &e.CustomerID, &e.CustomerName, &e.TotalCost, &e.CreatedDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Kind: "estimation", ID: id}
		}
		return nil, fmt.Errorf("failed to fetch estimation %s: %w", id, err)
	}

	tasks, err := fetchTasksQ(ctx, q, id)
	if err != nil {
		return nil, err
	}
	e.Tasks = tasks
	return e, nil
}

func fetchTasksQ(ctx context.Context, q querier, estimationID string) ([]EstimationTask, error) {
	rows, err := q.Query(ctx, `
		SELECT id, title, description, total_cost
		FROM estimation_tasks
		WHERE estimation_id = $1
		ORDER BY position
	`, estimationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []EstimationTask
	for rows.Next() {
		var t EstimationTask
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.TotalCost); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	for i := range tasks {
		items, err := fetchTaskItemsQ(ctx, q, tasks[i].ID)
		if err != nil {
			return nil, err
		}
		tasks[i].Items = items
	}
	return tasks, nil
}

func fetchTaskItemsQ(ctx context.Context, q querier, taskID string) ([]EstimationItem, error) {
	rows, err := q.Query(ctx, `
		SELECT id, name, quantity, cost, item_type, size, color, model, notes, image_url
		FROM estimation_items
		WHERE task_id = $1
		ORDER BY position
	`, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []EstimationItem
	for rows.Next() {
		var it EstimationItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Quantity, &it.Cost, &it.Type,
			&it.Size, &it.Color, &it.Model, &it.Notes, &it.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *estimationService) GetEstimations(ctx context.Context) ([]Estimation, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, customer_id, customer_name, total_cost, created_date::text
		FROM estimations ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query estimations: %w", err)
	}
	defer rows.Close()

	var estimations []Estimation
	for rows.Next() {
		var e Estimation
		if err := rows.Scan(&e.ID, &e.Title, &e.CustomerID, &e.CustomerName, &e.TotalCost, &e.CreatedDate); err != nil {
			return nil, fmt.Errorf("failed to scan estimation: %w", err)
		}
		estimations = append(estimations, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating estimations: %w", err)
	}

	for i := range estimations {
		tasks, err := fetchTasksQ(ctx, s.pool, estimations[i].ID)
		if err != nil {
			return nil, err
		}
		estimations[i].Tasks = tasks
	}
	return estimations, nil
}

// UpdateEstimation replaces the estimation's tasks wholesale and recomputes
// the totals. Replacing is simpler than diffing and matches the
// whole-document form submission.
func (s *estimationService) UpdateEstimation(ctx context.Context, id string, input EstimationInput) (*Estimation, error) {
	if errs := input.validate(); !errs.Empty() {
		return nil, errs
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := getEstimationQ(ctx, tx, id); err != nil {
		return nil, err
	}

	customerName := ""
	if input.CustomerID != "" {
		c, err := getCustomerQ(ctx, tx, input.CustomerID)
		if err != nil {
			return nil, err
		}
		customerName = c.Name
	}

	tasks := buildTasks(id, input.Tasks, time.Now())
	total := EstimationTotal(tasks)

	_, err = tx.Exec(ctx, `
		UPDATE estimations SET title = $2, customer_id = $3, customer_name = $4, total_cost = $5
		WHERE id = $1
	`, id, input.Title, input.CustomerID, customerName, total)
	if err != nil {
		return nil, fmt.Errorf("failed to update estimation %s: %w", id, err)
	}

	if _, err := tx.Exec(ctx, "DELETE FROM estimation_tasks WHERE estimation_id = $1", id); err != nil {
		return nil, fmt.Errorf("failed to clear tasks for %s: %w", id, err)
	}
	if err := insertTasksTx(ctx, tx, id, tasks); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit estimation update: %w", err)
	}
	return s.GetEstimation(ctx, id)
}

func (s *estimationService) DeleteEstimation(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM estimations WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete estimation %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Kind: "estimation", ID: id}
	}
	return nil
}

// ConvertToQuotation flattens the estimation into a draft quotation.
// Everything happens in one transaction: ID allocation, header insert, item
// copy. Item costs become rates verbatim, so the quotation total equals the
// estimation total at creation time.
func (s *estimationService) ConvertToQuotation(ctx context.Context, estimationID string) (*Quotation, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	est, err := getEstimationQ(ctx, tx, estimationID)
	if err != nil {
		return nil, err
	}

	var items []DocumentItem
	for _, task := range est.Tasks {
		for _, it := range task.Items {
			items = append(items, DocumentItem{
				ID:          it.ID,
				Title:       it.Name,
				Description: it.Notes,
				Quantity:    it.Quantity,
				Rate:        it.Cost,
				ImageURL:    it.ImageURL,
			})
		}
	}
	if len(items) == 0 {
		return nil, ruleErrorf("estimation %s has no items to convert", estimationID)
	}

	id, err := nextIDTx(ctx, tx, "quotations", quotationIDs)
	if err != nil {
		return nil, err
	}

	total := ItemsTotal(items)
	createdDate := time.Now().Format("2006-01-02")

	_, err = tx.Exec(ctx, `
		INSERT INTO quotations (id, title, estimation_id, customer, status, total_cost, created_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, id, est.Title, est.ID, est.CustomerName, QuotationDraft, total, createdDate)
	if err != nil {
		return nil, fmt.Errorf("failed to insert quotation: %w", err)
	}

	if err := insertDocumentItemsTx(ctx, tx, "quotation_items", "quotation_id", id, items); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit conversion of %s: %w", estimationID, err)
	}

	return &Quotation{
		ID:           id,
		Title:        est.Title,
		EstimationID: est.ID,
		Customer:     est.CustomerName,
		Status:       QuotationDraft,
		Items:        items,
		TotalCost:    total,
		CreatedDate:  createdDate,
	}, nil
}
