package core

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationErrors maps a form field to the list of problems with it.
// It travels as an error value so adapters can render it inline per field.
type ValidationErrors map[string][]string

func (v ValidationErrors) Add(field, message string) {
	v[field] = append(v[field], message)
}

func (v ValidationErrors) Empty() bool { return len(v) == 0 }

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	var parts []string
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(v[f], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// NotFoundError identifies a missing entity by kind and id.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// ConflictError reports a uniqueness violation (duplicate email, code, name).
type ConflictError struct {
	Field   string
	Value   string
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// RuleError reports a business-rule violation: an illegal status transition,
// deleting the default currency, an unbalanced journal.
type RuleError struct {
	Message string
}

func (e *RuleError) Error() string { return e.Message }

func ruleErrorf(format string, args ...any) *RuleError {
	return &RuleError{Message: fmt.Sprintf(format, args...)}
}
