// Package staging implements the review-session staging model and the
// reconciliation engine operating on it. A session owns the staged
// records exclusively: it is built from raw candidate records, mutated
// synchronously by engine operations, and discarded after commit or
// cancellation. Nothing in it is ever partially persisted.
package staging

import (
	"strings"

	"github.com/Radioaktywny/budget-planing-sub001/internal/dateutils"
	"github.com/Radioaktywny/budget-planing-sub001/internal/models"
	"github.com/Radioaktywny/budget-planing-sub001/internal/refdata"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Session holds the staging model for one review. Sessions are
// independent; tests and concurrent reviews each get their own.
type Session struct {
	cache   *refdata.Cache
	records []*models.StagedTransaction
	byID    map[string]*models.StagedTransaction
}

// NewSession creates an empty review session over a loaded reference
// data cache.
func NewSession(cache *refdata.Cache) *Session {
	return &Session{
		cache: cache,
		byID:  make(map[string]*models.StagedTransaction),
	}
}

// Cache returns the session's reference data cache.
func (s *Session) Cache() *refdata.Cache { return s.cache }

// Records returns the staged records in input order, including
// deselected ones.
func (s *Session) Records() []*models.StagedTransaction { return s.records }

// Get returns the staged record with the given session identifier.
func (s *Session) Get(id string) (*models.StagedTransaction, bool) {
	t, ok := s.byID[id]
	return t, ok
}

// Stage builds staged transactions from raw candidate records and
// appends them to the session, preserving input order. Every record
// gets a fresh session identifier and defaults to selected; a missing
// type defaults to EXPENSE. The raw input is never mutated, so staging
// the same input twice yields the same model apart from identifiers.
func (s *Session) Stage(raws []models.RawRecord) []*models.StagedTransaction {
	staged := make([]*models.StagedTransaction, 0, len(raws))
	for _, raw := range raws {
		t := s.stageOne(raw)
		s.records = append(s.records, t)
		s.byID[t.ID] = t
		staged = append(staged, t)
	}

	log.WithField("records", len(staged)).Debug("Staged candidate records")
	return staged
}

func (s *Session) stageOne(raw models.RawRecord) *models.StagedTransaction {
	t := &models.StagedTransaction{
		ID:          uuid.New().String(),
		Description: strings.TrimSpace(raw.Description),
		Notes:       raw.Notes,
		Selected:    true,
	}

	t.Date = normalizeDate(raw.Date)
	if !t.HasValidDate() {
		t.SetFieldError(models.FieldDate, "valid date is required")
	}

	if amount, err := models.ParseAmount(raw.Amount); err != nil {
		t.SetFieldError(models.FieldAmount, "valid amount is required")
	} else if !amount.IsPositive() {
		t.Amount = amount
		t.SetFieldError(models.FieldAmount, "amount must be positive")
	} else {
		t.Amount = amount
	}

	typ, ok := models.ParseTransactionType(raw.Type)
	if !ok {
		// Unknown types are caught by import validation; fall back to
		// the parsed-document default here.
		typ = models.TypeExpense
	}
	t.Type = typ

	if t.Description == "" {
		t.SetFieldError(models.FieldDescription, "description is required")
	}

	s.resolveAccount(t, raw.Account)
	if t.Type == models.TypeTransfer {
		s.resolveCounterAccount(t, raw.CounterAccount)
	}
	s.resolveCategory(t, raw.Category)
	s.resolveTags(t, raw.Tags)

	if raw.Split && len(raw.Items) > 0 {
		t.IsSplit = true
		// Category and notes become item-scoped on a split parent.
		t.CategoryID = ""
		t.CategoryName = ""
		t.Notes = ""
		for _, rawItem := range raw.Items {
			item := &models.StagedSplitItem{
				ID:          uuid.New().String(),
				Description: rawItem.Description,
				Notes:       rawItem.Notes,
			}
			if amount, err := models.ParseAmount(rawItem.Amount); err == nil {
				item.Amount = amount
			}
			if rawItem.Category != "" {
				if cat, err := s.cache.ResolveCategory(rawItem.Category); err == nil {
					item.CategoryID = cat.ID
					item.CategoryName = cat.Name
				} else {
					item.CategoryName = rawItem.Category
					t.SetFieldError(models.FieldCategory, err.Error())
				}
			}
			t.Items = append(t.Items, item)
		}
	}

	return t
}

func (s *Session) resolveAccount(t *models.StagedTransaction, name string) {
	if strings.TrimSpace(name) == "" {
		t.SetFieldError(models.FieldAccount, "account requires selection")
		return
	}
	t.AccountName = name
	if acc, ok := s.cache.ResolveAccount(name); ok {
		t.AccountID = acc.ID
		t.AccountName = acc.Name
		return
	}
	// Accounts are never auto-created; the user has to pick one.
	t.SetFieldError(models.FieldAccount, "unknown account, requires selection")
}

func (s *Session) resolveCounterAccount(t *models.StagedTransaction, name string) {
	if strings.TrimSpace(name) == "" {
		t.SetFieldError(models.FieldCounterAccount, "transfer requires a destination account")
		return
	}
	t.CounterAccountName = name
	if acc, ok := s.cache.ResolveAccount(name); ok {
		t.CounterAccountID = acc.ID
		t.CounterAccountName = acc.Name
		return
	}
	t.SetFieldError(models.FieldCounterAccount, "unknown account, requires selection")
}

func (s *Session) resolveCategory(t *models.StagedTransaction, name string) {
	if strings.TrimSpace(name) == "" {
		return // uncategorized is allowed
	}
	cat, err := s.cache.ResolveCategory(name)
	if err != nil {
		t.CategoryName = name
		t.SetFieldError(models.FieldCategory, err.Error())
		return
	}
	t.CategoryID = cat.ID
	t.CategoryName = cat.Name
}

func (s *Session) resolveTags(t *models.StagedTransaction, names []string) {
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		tag, err := s.cache.ResolveTag(name)
		if err != nil {
			t.SetFieldError(models.FieldNotes, err.Error())
			continue
		}
		t.AddTagID(tag.ID)
	}
}

// normalizeDate converts the many date formats found in imported data
// to the ISO calendar-date layout. Unparseable input is returned as-is
// so the error can be reported against the record.
func normalizeDate(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return ""
	}
	if parsed, _, err := dateutils.ParseDate(cleaned); err == nil {
		return dateutils.ToISODate(parsed)
	}
	return cleaned
}

// SelectionSummary aggregates the currently selected records.
type SelectionSummary struct {
	SelectedCount int
	// Net is the signed total across selected records: income counts
	// positive, expense negative, transfers are excluded.
	Net decimal.Decimal
}

// Summary recomputes the selection summary from scratch. The staging
// model is bounded by one import batch, so there is nothing to cache.
func (s *Session) Summary() SelectionSummary {
	sum := SelectionSummary{Net: decimal.Zero}
	for _, t := range s.records {
		if !t.Selected {
			continue
		}
		sum.SelectedCount++
		switch t.Type {
		case models.TypeIncome:
			sum.Net = sum.Net.Add(t.Amount)
		case models.TypeExpense:
			sum.Net = sum.Net.Sub(t.Amount)
		}
	}
	return sum
}
