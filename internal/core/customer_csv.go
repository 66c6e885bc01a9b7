package core

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// customerCSVHeader is the fixed column order of the customer CSV contract.
var customerCSVHeader = []string{"id", "name", "email", "phone", "address", "status", "companyName", "trnNumber"}

// CSVImportResult is the single consolidated outcome of a CSV import.
// There is no per-row result stream; skipped rows are only counted.
type CSVImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Reasons  []string `json:"reasons,omitempty"`
}

// MarshalCustomersCSV renders the customer collection with the fixed header.
func MarshalCustomersCSV(customers []Customer) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(customerCSVHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, c := range customers {
		row := []string{c.ID, c.Name, c.Email, c.Phone, c.Address, string(c.Status), c.CompanyName, c.TRNNumber}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalCustomersCSV parses CSV data against the fixed header. Rows with
// the wrong column count fail the whole parse; business rules (duplicate
// emails) are the importer's concern, not the parser's.
func UnmarshalCustomersCSV(data []byte) ([]Customer, error) {
	r := csv.NewReader(bytes.NewReader(data))
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	if len(header) != len(customerCSVHeader) {
		return nil, fmt.Errorf("unexpected csv header: got %d columns, want %d", len(header), len(customerCSVHeader))
	}
	for i, col := range customerCSVHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), col) {
			return nil, fmt.Errorf("unexpected csv column %d: got %q, want %q", i+1, header[i], col)
		}
	}

	var customers []Customer
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv line %d: %w", line, err)
		}
		status := CustomerStatus(row[5])
		if status == "" {
			status = CustomerActive
		}
		customers = append(customers, Customer{
			ID:          row[0],
			Name:        row[1],
			Email:       row[2],
			Phone:       row[3],
			Address:     row[4],
			Status:      status,
			CompanyName: row[6],
			TRNNumber:   row[7],
		})
	}
	return customers, nil
}

// ExportCustomersCSV exports the full customer collection.
func (s *customerService) ExportCustomersCSV(ctx context.Context) ([]byte, error) {
	customers, err := s.GetCustomers(ctx)
	if err != nil {
		return nil, err
	}
	return MarshalCustomersCSV(customers)
}

// ImportCustomersCSV creates a customer per row, skipping rows whose email is
// already taken (by an existing record or by an earlier row in the file).
// Row IDs in the file are ignored; fresh sequential IDs are assigned.
func (s *customerService) ImportCustomersCSV(ctx context.Context, data []byte) (*CSVImportResult, error) {
	customers, err := UnmarshalCustomersCSV(data)
	if err != nil {
		return nil, err
	}

	result := &CSVImportResult{}
	for _, c := range customers {
		_, err := s.CreateCustomer(ctx, CustomerInput{
			Name:        c.Name,
			Email:       c.Email,
			Phone:       c.Phone,
			Address:     c.Address,
			Status:      c.Status,
			CompanyName: c.CompanyName,
			TRNNumber:   c.TRNNumber,
		})
		if err != nil {
			var conflict *ConflictError
			var invalid ValidationErrors
			if errors.As(err, &conflict) || errors.As(err, &invalid) {
				result.Skipped++
				result.Reasons = append(result.Reasons, fmt.Sprintf("%s: %v", c.Name, err))
				continue
			}
			return nil, err
		}
		result.Imported++
	}
	return result, nil
}
