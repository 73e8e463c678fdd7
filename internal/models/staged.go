// Package models provides the data structures used throughout the application.
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a staged transaction.
type TransactionType string

const (
	// TypeIncome is money flowing into an account.
	TypeIncome TransactionType = "INCOME"
	// TypeExpense is money flowing out of an account.
	TypeExpense TransactionType = "EXPENSE"
	// TypeTransfer moves money between two accounts.
	TypeTransfer TransactionType = "TRANSFER"
)

// ParseTransactionType parses a transaction type case-insensitively.
// An empty string defaults to EXPENSE, since parsed documents rarely
// state a type explicitly.
func ParseTransactionType(s string) (TransactionType, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "EXPENSE":
		return TypeExpense, true
	case "INCOME":
		return TypeIncome, true
	case "TRANSFER":
		return TypeTransfer, true
	}
	return "", false
}

// Field identifies an editable scalar field on a staged transaction or
// split item. Using a closed enum keeps a single dispatch entry point
// while preserving per-field parsing rules.
type Field string

const (
	FieldDate           Field = "date"
	FieldAmount         Field = "amount"
	FieldDescription    Field = "description"
	FieldAccount        Field = "account"
	FieldCounterAccount Field = "counter_account"
	FieldCategory       Field = "category"
	FieldNotes          Field = "notes"
)

// DateLayout is the calendar-date format used for staged transactions.
const DateLayout = "2006-01-02"

// StagedTransaction is the in-memory representation of one candidate
// transaction during a review session. Identifiers are session-scoped
// and never persisted.
type StagedTransaction struct {
	ID          string
	Date        string
	Amount      decimal.Decimal
	Type        TransactionType
	Description string

	AccountID   string
	AccountName string

	// Counter account of a transfer. Unused for income/expense.
	CounterAccountID   string
	CounterAccountName string

	CategoryID   string
	CategoryName string

	Notes  string
	TagIDs []string

	IsSplit bool
	Items   []*StagedSplitItem

	Selected bool

	// FieldErrors holds per-field validation messages reported to the
	// user inline. Updating a field clears its entry.
	FieldErrors map[Field]string
}

// StagedSplitItem is one category-scoped share of a split transaction.
// Item amounts may be negative; the sum across all items must equal the
// parent amount within the split epsilon.
type StagedSplitItem struct {
	ID           string
	Amount       decimal.Decimal
	Description  string
	CategoryID   string
	CategoryName string
	Notes        string
}

// HasValidDate reports whether the transaction date parses as an ISO
// calendar date.
func (t *StagedTransaction) HasValidDate() bool {
	_, err := time.Parse(DateLayout, t.Date)
	return err == nil
}

// ItemSum returns the sum of all split item amounts.
func (t *StagedTransaction) ItemSum() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range t.Items {
		sum = sum.Add(item.Amount)
	}
	return sum
}

// SetFieldError records a validation message against one field.
func (t *StagedTransaction) SetFieldError(f Field, msg string) {
	if t.FieldErrors == nil {
		t.FieldErrors = make(map[Field]string)
	}
	t.FieldErrors[f] = msg
}

// ClearFieldError removes any previously reported message for the field.
func (t *StagedTransaction) ClearFieldError(f Field) {
	delete(t.FieldErrors, f)
}

// AddTagID appends a resolved tag identifier, ignoring duplicates.
func (t *StagedTransaction) AddTagID(id string) {
	for _, existing := range t.TagIDs {
		if existing == id {
			return
		}
	}
	t.TagIDs = append(t.TagIDs, id)
}

// ValidationResult is the outcome of a split-sum check.
type ValidationResult struct {
	Valid bool
	// Delta is |sum(items) - amount|; zero when Valid.
	Delta decimal.Decimal
}
