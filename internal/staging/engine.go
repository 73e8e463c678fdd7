package staging

import (
	"fmt"
	"strings"

	"github.com/Radioaktywny/budget-planing-sub001/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SplitEpsilon is the maximum tolerated difference between a split
// parent's amount and the sum of its items, in currency units.
var SplitEpsilon = decimal.RequireFromString("0.01")

// ToggleSelection flips the selection state of one record. Deselected
// records stay in the session so they can be re-included without
// re-uploading.
func (s *Session) ToggleSelection(id string) error {
	t, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("no staged transaction with id %s", id)
	}
	t.Selected = !t.Selected
	return nil
}

// SetSelectionAll sets every record's selection state to the given
// value. This is the "select all" affordance.
func (s *Session) SetSelectionAll(selected bool) {
	for _, t := range s.records {
		t.Selected = selected
	}
}

// UpdateField sets one scalar field on a parent record. Values arrive
// as strings (they come from form input or documents) and are parsed
// per field. A successful update clears any previously reported
// validation error for that field.
func (s *Session) UpdateField(id string, field models.Field, value string) error {
	t, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("no staged transaction with id %s", id)
	}

	switch field {
	case models.FieldDate:
		date := normalizeDate(value)
		probe := models.StagedTransaction{Date: date}
		if !probe.HasValidDate() {
			return fmt.Errorf("invalid date %q", value)
		}
		t.Date = date
	case models.FieldAmount:
		amount, err := models.ParseAmount(value)
		if err != nil {
			return fmt.Errorf("invalid amount %q", value)
		}
		if !amount.IsPositive() {
			return fmt.Errorf("amount must be positive")
		}
		t.Amount = amount
	case models.FieldDescription:
		t.Description = strings.TrimSpace(value)
	case models.FieldAccount:
		acc, ok := s.cache.ResolveAccount(value)
		if !ok {
			return fmt.Errorf("unknown account %q", value)
		}
		t.AccountID = acc.ID
		t.AccountName = acc.Name
	case models.FieldCounterAccount:
		acc, ok := s.cache.ResolveAccount(value)
		if !ok {
			return fmt.Errorf("unknown account %q", value)
		}
		t.CounterAccountID = acc.ID
		t.CounterAccountName = acc.Name
	case models.FieldCategory:
		if strings.TrimSpace(value) == "" {
			t.CategoryID = ""
			t.CategoryName = ""
			break
		}
		cat, err := s.cache.ResolveCategory(value)
		if err != nil {
			return err
		}
		t.CategoryID = cat.ID
		t.CategoryName = cat.Name
	case models.FieldNotes:
		t.Notes = value
	default:
		return fmt.Errorf("unknown field %q", field)
	}

	t.ClearFieldError(field)
	return nil
}

// UpdateItemField sets one scalar field on a split item. Item amounts
// may be negative (refund lines inside a split), unlike the parent.
func (s *Session) UpdateItemField(parentID, itemID string, field models.Field, value string) error {
	t, ok := s.byID[parentID]
	if !ok {
		return fmt.Errorf("no staged transaction with id %s", parentID)
	}
	item := findItem(t, itemID)
	if item == nil {
		return fmt.Errorf("no split item with id %s", itemID)
	}

	switch field {
	case models.FieldAmount:
		amount, err := models.ParseAmount(value)
		if err != nil {
			return fmt.Errorf("invalid amount %q", value)
		}
		item.Amount = amount
	case models.FieldDescription:
		item.Description = strings.TrimSpace(value)
	case models.FieldCategory:
		if strings.TrimSpace(value) == "" {
			item.CategoryID = ""
			item.CategoryName = ""
			break
		}
		cat, err := s.cache.ResolveCategory(value)
		if err != nil {
			return err
		}
		item.CategoryID = cat.ID
		item.CategoryName = cat.Name
	case models.FieldNotes:
		item.Notes = value
	default:
		return fmt.Errorf("field %q is not item-scoped", field)
	}

	t.ClearFieldError(field)
	return nil
}

// ConvertToSplit transforms a regular transaction into a split with a
// single item seeded from the parent. Category and notes move to the
// item; they are ignored on a split parent.
func (s *Session) ConvertToSplit(id string) error {
	t, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("no staged transaction with id %s", id)
	}
	if t.IsSplit {
		return fmt.Errorf("transaction %s is already split", id)
	}

	item := &models.StagedSplitItem{
		ID:           uuid.New().String(),
		Amount:       t.Amount,
		Description:  t.Description,
		CategoryID:   t.CategoryID,
		CategoryName: t.CategoryName,
		Notes:        t.Notes,
	}
	t.Items = []*models.StagedSplitItem{item}
	t.IsSplit = true
	t.CategoryID = ""
	t.CategoryName = ""
	t.Notes = ""
	return nil
}

// ConvertToRegular collapses a split back into a regular transaction,
// copying the first item's categorization onto the parent. With more
// than one item the remaining items' categorization is discarded; the
// returned flag tells the caller to warn the user about the loss.
func (s *Session) ConvertToRegular(id string) (lossy bool, err error) {
	t, ok := s.byID[id]
	if !ok {
		return false, fmt.Errorf("no staged transaction with id %s", id)
	}
	if !t.IsSplit {
		return false, fmt.Errorf("transaction %s is not split", id)
	}
	if len(t.Items) == 0 {
		return false, fmt.Errorf("split transaction %s has no items", id)
	}

	lossy = len(t.Items) > 1
	promote(t, t.Items[0])
	if lossy {
		log.WithField("id", id).Warn("Collapsed a multi-item split, discarding extra item categorization")
	}
	return lossy, nil
}

// AddItem appends a fresh split item with a zero amount. The sum is not
// auto-balanced; the user edits the amounts afterwards.
func (s *Session) AddItem(parentID string) (*models.StagedSplitItem, error) {
	t, ok := s.byID[parentID]
	if !ok {
		return nil, fmt.Errorf("no staged transaction with id %s", parentID)
	}
	if !t.IsSplit {
		return nil, fmt.Errorf("transaction %s is not split", parentID)
	}

	item := &models.StagedSplitItem{
		ID:     uuid.New().String(),
		Amount: decimal.Zero,
	}
	t.Items = append(t.Items, item)
	return item, nil
}

// RemoveItem deletes one split item. A split with a single item is not
// a valid end state, so when exactly one item remains the transaction
// collapses back to regular with the survivor's fields promoted.
func (s *Session) RemoveItem(parentID, itemID string) error {
	t, ok := s.byID[parentID]
	if !ok {
		return fmt.Errorf("no staged transaction with id %s", parentID)
	}
	if !t.IsSplit {
		return fmt.Errorf("transaction %s is not split", parentID)
	}

	idx := -1
	for i, item := range t.Items {
		if item.ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("no split item with id %s", itemID)
	}

	t.Items = append(t.Items[:idx], t.Items[idx+1:]...)

	if len(t.Items) == 1 {
		promote(t, t.Items[0])
	}
	return nil
}

// ValidateSplit checks the split-sum invariant: the item amounts must
// sum to the parent amount within SplitEpsilon. The check is advisory
// during editing and blocking at commit time.
func (s *Session) ValidateSplit(id string) (models.ValidationResult, error) {
	t, ok := s.byID[id]
	if !ok {
		return models.ValidationResult{}, fmt.Errorf("no staged transaction with id %s", id)
	}
	if !t.IsSplit {
		return models.ValidationResult{Valid: true, Delta: decimal.Zero}, nil
	}

	delta := t.ItemSum().Sub(t.Amount).Abs()
	if delta.GreaterThan(SplitEpsilon) {
		return models.ValidationResult{Valid: false, Delta: delta}, nil
	}
	return models.ValidationResult{Valid: true, Delta: decimal.Zero}, nil
}

// promote copies an item's categorization onto the parent and ends the
// split. The parent keeps its own amount.
func promote(t *models.StagedTransaction, item *models.StagedSplitItem) {
	t.CategoryID = item.CategoryID
	t.CategoryName = item.CategoryName
	if item.Description != "" {
		t.Description = item.Description
	}
	t.Notes = item.Notes
	t.Items = nil
	t.IsSplit = false
}

func findItem(t *models.StagedTransaction, itemID string) *models.StagedSplitItem {
	for _, item := range t.Items {
		if item.ID == itemID {
			return item
		}
	}
	return nil
}
