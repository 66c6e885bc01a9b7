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

// AccountInput carries the form fields for creating or updating an account.
type AccountInput struct {
	Name        string
	Type        AccountType
	Description string
}

// JournalInput carries the form fields for recording a manual journal.
// Date defaults to today when empty.
type JournalInput struct {
	Date    string
	Notes   string
	Entries []JournalEntry
}

// TrialBalanceRow is one account's aggregated debit and credit totals.
type TrialBalanceRow struct {
	AccountID   string          `json:"account_id"`
	AccountName string          `json:"account_name"`
	AccountType AccountType     `json:"account_type"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalance aggregates all journal activity per account. For a
// consistent ledger TotalDebit always equals TotalCredit.
type TrialBalance struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"total_debit"`
	TotalCredit decimal.Decimal   `json:"total_credit"`
}

// LedgerService manages the chart of accounts and manual journals. Account
// balances are derived from journal lines at read time.
type LedgerService interface {
	CreateAccount(ctx context.Context, input AccountInput) (*Account, error)
	GetAccount(ctx context.Context, id string) (*Account, error)
	GetAccounts(ctx context.Context) ([]Account, error)
	UpdateAccount(ctx context.Context, id string, input AccountInput) (*Account, error)
	DeleteAccount(ctx context.Context, id string) error

	CreateJournal(ctx context.Context, input JournalInput) (*Journal, error)
	GetJournal(ctx context.Context, id string) (*Journal, error)
	GetJournals(ctx context.Context) ([]Journal, error)
	DeleteJournal(ctx context.Context, id string) error

	GetTrialBalance(ctx context.Context) (*TrialBalance, error)
}

type ledgerService struct {
	pool *pgxpool.Pool
}

// NewLedgerService constructs a LedgerService backed by PostgreSQL.
func NewLedgerService(pool *pgxpool.Pool) LedgerService {
	return &ledgerService{pool: pool}
}

func validAccountType(t AccountType) bool {
	switch t {
	case AccountAssets, AccountLiabilities, AccountEquity, AccountIncome, AccountExpense:
		return true
	}
	return false
}

func (input AccountInput) validate() ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(input.Name) == "" {
		errs.Add("name", "name is required")
	}
	if !validAccountType(input.Type) {
		errs.Add("type", fmt.Sprintf("unknown account type %q", input.Type))
	}
	return errs
}

// ── Accounts ──────────────────────────────────────────────────────────────

func (s *ledgerService) CreateAccount(ctx context.Context, input AccountInput) (*Account, error) {
	if errs := input.validate(); !errs.Empty() {
		return nil, errs
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	id, err := nextIDTx(ctx, tx, "accounts", accountIDSpec(input.Type))
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO accounts (id, name, account_type, description)
		VALUES ($1, $2, $3, $4)
	`, id, input.Name, input.Type, input.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to insert account: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit account creation: %w", err)
	}

	return &Account{ID: id, Name: input.Name, Type: input.Type, Description: input.Description}, nil
}

// accountBalanceExpr selects the SQL expression deriving an account's
// balance from its journal lines.
// Assets and Expense accounts grow with debits; the other types grow with
// credits.
func accountBalanceExpr(t AccountType) string {
	if t == AccountAssets || t == AccountExpense {
		return "COALESCE(SUM(debit), 0) - COALESCE(SUM(credit), 0)"
	}
	return "COALESCE(SUM(credit), 0) - COALESCE(SUM(debit), 0)"
}

func (s *ledgerService) GetAccount(ctx context.Context, id string) (*Account, error) {
	a := &Account{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, account_type, description FROM accounts WHERE id = $1
	`, id).Scan(&a.ID, &a.Name, &a.Type, &a.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Kind: "account", ID: id}
		}
		return nil, fmt.Errorf("failed to fetch account %s: %w", id, err)
	}

	err = s.pool.QueryRow(ctx,
		"SELECT "+accountBalanceExpr(a.Type)+" FROM journal_entries WHERE account_id = $1", id,
	).Scan(&a.Balance)
	if err != nil {
		return nil, fmt.Errorf("failed to compute balance of %s: %w", id, err)
	}
	return a, nil
}

func (s *ledgerService) GetAccounts(ctx context.Context) ([]Account, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT a.id, a.name, a.account_type, a.description,
		       COALESCE(SUM(je.debit), 0), COALESCE(SUM(je.credit), 0)
		FROM accounts a
		LEFT JOIN journal_entries je ON je.account_id = a.id
		GROUP BY a.id
		ORDER BY a.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		var a Account
		var debit, credit decimal.Decimal
		if err := rows.Scan(&a.ID, &a.Name, &a.Type, &a.Description, &debit, &credit); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		if a.Type == AccountAssets || a.Type == AccountExpense {
			a.Balance = debit.Sub(credit)
		} else {
			a.Balance = credit.Sub(debit)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (s *ledgerService) UpdateAccount(ctx context.Context, id string, input AccountInput) (*Account, error) {
	if errs := input.validate(); !errs.Empty() {
		return nil, errs
	}

	// The type prefix is baked into the ID, so the type is immutable.
	current, err := s.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Type != current.Type {
		return nil, ruleErrorf("account %s is of type %s and cannot be changed to %s", id, current.Type, input.Type)
	}

	_, err = s.pool.Exec(ctx, `
		UPDATE accounts SET name = $2, description = $3 WHERE id = $1
	`, id, input.Name, input.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to update account %s: %w", id, err)
	}
	return s.GetAccount(ctx, id)
}

func (s *ledgerService) DeleteAccount(ctx context.Context, id string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var used bool
	err = tx.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM journal_entries WHERE account_id = $1)", id,
	).Scan(&used)
	if err != nil {
		return fmt.Errorf("failed to check usage of account %s: %w", id, err)
	}
	if used {
		return ruleErrorf("account %s has journal entries and cannot be deleted", id)
	}

	tag, err := tx.Exec(ctx, "DELETE FROM accounts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Kind: "account", ID: id}
	}
	return tx.Commit(ctx)
}

// ── Journals ──────────────────────────────────────────────────────────────

func (s *ledgerService) CreateJournal(ctx context.Context, input JournalInput) (*Journal, error) {
	if err := ValidateJournalEntries(input.Entries); err != nil {
		return nil, err
	}

	date := input.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		errs := ValidationErrors{}
		errs.Add("date", "date must be in YYYY-MM-DD format")
		return nil, errs
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for i, e := range input.Entries {
		if _, err := getAccountIDQ(ctx, tx, e.AccountID); err != nil {
			var nf *NotFoundError
			if errors.As(err, &nf) {
				return nil, ruleErrorf("entry %d: account %s does not exist", i+1, e.AccountID)
			}
			return nil, err
		}
	}

	id, err := nextIDTx(ctx, tx, "journals", journalIDs)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO journals (id, date, notes) VALUES ($1, $2, $3)
	`, id, date, input.Notes)
	if err != nil {
		return nil, fmt.Errorf("failed to insert journal: %w", err)
	}

	for i, e := range input.Entries {
		_, err := tx.Exec(ctx, `
			INSERT INTO journal_entries (journal_id, position, account_id, debit, credit)
			VALUES ($1, $2, $3, $4, $5)
		`, id, i+1, e.AccountID, e.Debit, e.Credit)
		if err != nil {
			return nil, fmt.Errorf("failed to insert journal entry %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit journal creation: %w", err)
	}

	return &Journal{ID: id, Date: date, Notes: input.Notes, Entries: input.Entries}, nil
}

func getAccountIDQ(ctx context.Context, q querier, id string) (string, error) {
	var got string
	err := q.QueryRow(ctx, "SELECT id FROM accounts WHERE id = $1", id).Scan(&got)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", &NotFoundError{Kind: "account", ID: id}
		}
		return "", fmt.Errorf("failed to fetch account %s: %w", id, err)
	}
	return got, nil
}

func (s *ledgerService) GetJournal(ctx context.Context, id string) (*Journal, error) {
	j := &Journal{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, date::text, notes FROM journals WHERE id = $1
	`, id).Scan(&j.ID, &j.Date, &j.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Kind: "journal", ID: id}
		}
		return nil, fmt.Errorf("failed to fetch journal %s: %w", id, err)
	}

	entries, err := fetchJournalEntriesQ(ctx, s.pool, id)
	if err != nil {
		return nil, err
	}
	j.Entries = entries
	return j, nil
}

func fetchJournalEntriesQ(ctx context.Context, q querier, journalID string) ([]JournalEntry, error) {
	rows, err := q.Query(ctx, `
		SELECT account_id, debit, credit FROM journal_entries
		WHERE journal_id = $1 ORDER BY position
	`, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		var e JournalEntry
		if err := rows.Scan(&e.AccountID, &e.Debit, &e.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *ledgerService) GetJournals(ctx context.Context) ([]Journal, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, date::text, notes FROM journals ORDER BY date DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query journals: %w", err)
	}
	defer rows.Close()

	var journals []Journal
	for rows.Next() {
		var j Journal
		if err := rows.Scan(&j.ID, &j.Date, &j.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan journal: %w", err)
		}
		journals = append(journals, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journals: %w", err)
	}

	for i := range journals {
		entries, err := fetchJournalEntriesQ(ctx, s.pool, journals[i].ID)
		if err != nil {
			return nil, err
		}
		journals[i].Entries = entries
	}
	return journals, nil
}

func (s *ledgerService) DeleteJournal(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM journals WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete journal %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Kind: "journal", ID: id}
	}
	return nil
}

// ── Reports ───────────────────────────────────────────────────────────────

func (s *ledgerService) GetTrialBalance(ctx context.Context) (*TrialBalance, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT a.id, a.name, a.account_type,
		       COALESCE(SUM(je.debit), 0), COALESCE(SUM(je.credit), 0)
		FROM accounts a
		LEFT JOIN journal_entries je ON je.account_id = a.id
		GROUP BY a.id
		ORDER BY a.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query trial balance: %w", err)
	}
	defer rows.Close()

	tb := &TrialBalance{}
	for rows.Next() {
		var r TrialBalanceRow
		if err := rows.Scan(&r.AccountID, &r.AccountName, &r.AccountType, &r.Debit, &r.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan trial balance row: %w", err)
		}
		tb.Rows = append(tb.Rows, r)
		tb.TotalDebit = tb.TotalDebit.Add(r.Debit)
		tb.TotalCredit = tb.TotalCredit.Add(r.Credit)
	}
	return tb, rows.Err()
}
