package core

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// idSpec describes how one entity type formats its sequential IDs.
// Pad is the zero-padding width of the numeric suffix (0 means none).
type idSpec struct {
	prefix string
	start  int64
	pad    int
}

var (
	customerIDs   = idSpec{prefix: "CS_", start: 4000}
	vendorIDs     = idSpec{prefix: "VND-", start: 0, pad: 3}
	productIDs    = idSpec{prefix: "PRD-", start: 1000}
	categoryIDs   = idSpec{prefix: "CAT-", start: 0, pad: 3}
	estimationIDs = idSpec{prefix: "EST-", start: 1000}
	quotationIDs  = idSpec{prefix: "QUO-", start: 1000}
	salesOrderIDs = idSpec{prefix: "SO-", start: 1000}
	invoiceIDs    = idSpec{prefix: "INV-", start: 1000}
	journalIDs    = idSpec{prefix: "JRN-", start: 1000}
)

// accountIDSpec derives the per-type account spec: prefix is the first three
// letters of the account type, uppercased (ASS-001, LIA-001, ...).
func accountIDSpec(t AccountType) idSpec {
	return idSpec{prefix: strings.ToUpper(string(t)[:3]) + "-", start: 0, pad: 3}
}

// NextIDFrom computes the next sequential ID from an existing ID list:
// filter by prefix, parse the numeric suffix (discarding non-numeric ones),
// take the maximum or the start constant, and add one. It never fails; with
// no matching records it returns the first ID after the start value. Calling
// it twice over the same list yields the same value.
func NextIDFrom(ids []string, spec idSpec) string {
	max := spec.start
	for _, id := range ids {
		if !strings.HasPrefix(id, spec.prefix) {
			continue
		}
		n, err := strconv.ParseInt(strings.TrimPrefix(id, spec.prefix), 10, 64)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return formatID(spec, max+1)
}

func formatID(spec idSpec, n int64) string {
	if spec.pad > 0 {
		return fmt.Sprintf("%s%0*d", spec.prefix, spec.pad, n)
	}
	return fmt.Sprintf("%s%d", spec.prefix, n)
}

// nextIDTx allocates the next ID for table inside the caller's transaction.
// A transaction-scoped advisory lock keyed by the table name serializes
// concurrent allocations so two creates cannot compute the same ID; the lock
// releases automatically at commit or rollback.
func nextIDTx(ctx context.Context, tx querier, table string, spec idSpec) (string, error) {
	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", table); err != nil {
		return "", fmt.Errorf("failed to lock %s sequence: %w", table, err)
	}

	rows, err := tx.Query(ctx, fmt.Sprintf("SELECT id FROM %s WHERE id LIKE $1", table), spec.prefix+"%")
	if err != nil {
		return "", fmt.Errorf("failed to scan %s ids: %w", table, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("failed to scan %s id: %w", table, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("error iterating %s ids: %w", table, err)
	}

	return NextIDFrom(ids, spec), nil
}
