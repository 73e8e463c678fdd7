package staging

import (
	"testing"

	"github.com/Radioaktywny/budget-planing-sub001/internal/models"
	"github.com/Radioaktywny/budget-planing-sub001/internal/refdata"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) (*Session, *refdata.MemoryDirectory) {
	t.Helper()
	dir := refdata.NewMemoryDirectory(
		[]models.Account{
			{ID: "acc1", Name: "Checking Account"},
			{ID: "acc2", Name: "Savings Account"},
		},
		[]models.Category{
			{ID: "cat1", Name: "Food & Dining", Keywords: []string{"grocery", "restaurant"}},
			{ID: "cat2", Name: "Utilities"},
		},
		[]models.Tag{
			{ID: "tag1", Name: "vacation"},
		},
	)
	cache, err := refdata.Load(dir)
	require.NoError(t, err)
	return NewSession(cache), dir
}

func TestStageResolvesExistingReferences(t *testing.T) {
	session, _ := newTestSession(t)

	staged := session.Stage([]models.RawRecord{{
		Date:        "2024-01-15",
		Amount:      "50.00",
		Description: "Grocery Store",
		Account:     "Checking Account",
		Category:    "Food & Dining",
	}})
	require.Len(t, staged, 1)

	tx := staged[0]
	assert.NotEmpty(t, tx.ID)
	assert.Equal(t, "acc1", tx.AccountID)
	assert.Equal(t, "cat1", tx.CategoryID)
	assert.Equal(t, models.TypeExpense, tx.Type)
	assert.True(t, tx.Selected)
	assert.False(t, tx.IsSplit)
	assert.Empty(t, tx.FieldErrors)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("50.00")))
}

func TestStageDefaultsAndOrder(t *testing.T) {
	session, _ := newTestSession(t)

	raws := []models.RawRecord{
		{Date: "2024-01-01", Amount: "10.00", Description: "First", Account: "Checking Account"},
		{Date: "2024-01-02", Amount: "20.00", Description: "Second", Account: "Checking Account", Type: "income"},
		{Date: "2024-01-03", Amount: "30.00", Description: "Third", Account: "Checking Account"},
	}
	staged := session.Stage(raws)

	require.Len(t, staged, 3)
	assert.Equal(t, "First", staged[0].Description)
	assert.Equal(t, "Second", staged[1].Description)
	assert.Equal(t, "Third", staged[2].Description)
	assert.Equal(t, models.TypeExpense, staged[0].Type)
	assert.Equal(t, models.TypeIncome, staged[1].Type)
	for _, tx := range staged {
		assert.True(t, tx.Selected)
	}

	// Identifiers are session-unique.
	ids := map[string]bool{}
	for _, tx := range staged {
		ids[tx.ID] = true
	}
	assert.Len(t, ids, 3)

	// The raw input is never mutated.
	assert.Equal(t, "", raws[0].Type)
}

func TestStageUnknownAccountNeedsSelection(t *testing.T) {
	session, dir := newTestSession(t)

	staged := session.Stage([]models.RawRecord{{
		Date:        "2024-01-15",
		Amount:      "50.00",
		Description: "Dinner",
		Account:     "Mystery Bank",
	}})

	tx := staged[0]
	assert.Empty(t, tx.AccountID)
	assert.Equal(t, "Mystery Bank", tx.AccountName)
	assert.Contains(t, tx.FieldErrors[models.FieldAccount], "requires selection")

	// Accounts are never auto-created.
	assert.Len(t, dir.AccountList, 2)
}

func TestStageCreatesMissingCategoryAndTags(t *testing.T) {
	session, dir := newTestSession(t)

	staged := session.Stage([]models.RawRecord{{
		Date:        "2024-01-15",
		Amount:      "15.00",
		Description: "Cinema",
		Account:     "Checking Account",
		Category:    "Entertainment",
		Tags:        []string{"vacation", "Date Night"},
	}})

	tx := staged[0]
	assert.NotEmpty(t, tx.CategoryID)
	assert.Equal(t, "Entertainment", tx.CategoryName)
	assert.Len(t, dir.CategoryList, 3)

	require.Len(t, tx.TagIDs, 2)
	assert.Equal(t, "tag1", tx.TagIDs[0])
	assert.Len(t, dir.TagList, 2)
}

func TestStageNormalizesDates(t *testing.T) {
	session, _ := newTestSession(t)

	staged := session.Stage([]models.RawRecord{
		{Date: "15.01.2024", Amount: "5.00", Description: "European date", Account: "Checking Account"},
		{Date: "never", Amount: "5.00", Description: "Bad date", Account: "Checking Account"},
	})

	assert.Equal(t, "2024-01-15", staged[0].Date)
	assert.Empty(t, staged[0].FieldErrors)

	assert.Equal(t, "never", staged[1].Date)
	assert.Contains(t, staged[1].FieldErrors[models.FieldDate], "date")
}

func TestStageSplitRecord(t *testing.T) {
	session, _ := newTestSession(t)

	staged := session.Stage([]models.RawRecord{{
		Date:        "2024-01-20",
		Amount:      "80.00",
		Description: "Hardware store",
		Account:     "Checking Account",
		Category:    "Utilities",
		Notes:       "receipt in drawer",
		Split:       true,
		Items: []models.RawSplitItem{
			{Amount: "50.00", Description: "Tools", Category: "Utilities"},
			{Amount: "30.00", Description: "Paint"},
		},
	}})

	tx := staged[0]
	assert.True(t, tx.IsSplit)
	require.Len(t, tx.Items, 2)
	// Category and notes are item-scoped on a split parent.
	assert.Empty(t, tx.CategoryID)
	assert.Empty(t, tx.Notes)
	assert.Equal(t, "cat2", tx.Items[0].CategoryID)
	assert.True(t, tx.Items[1].Amount.Equal(decimal.RequireFromString("30.00")))
}

func TestStageTransferRequiresDistinctCounterAccount(t *testing.T) {
	session, _ := newTestSession(t)

	staged := session.Stage([]models.RawRecord{
		{Date: "2024-02-01", Amount: "200.00", Description: "To savings", Type: "TRANSFER",
			Account: "Checking Account", CounterAccount: "Savings Account"},
		{Date: "2024-02-02", Amount: "90.00", Description: "No destination", Type: "TRANSFER",
			Account: "Checking Account"},
	})

	assert.Equal(t, "acc2", staged[0].CounterAccountID)
	assert.Empty(t, staged[0].FieldErrors)

	assert.Contains(t, staged[1].FieldErrors[models.FieldCounterAccount], "destination")
}

func TestSummaryExcludesTransfersAndDeselected(t *testing.T) {
	session, _ := newTestSession(t)

	staged := session.Stage([]models.RawRecord{
		{Date: "2024-01-01", Amount: "100.00", Description: "Pay", Type: "INCOME", Account: "Checking Account"},
		{Date: "2024-01-02", Amount: "30.00", Description: "Dinner", Account: "Checking Account"},
		{Date: "2024-01-03", Amount: "500.00", Description: "Move money", Type: "TRANSFER",
			Account: "Checking Account", CounterAccount: "Savings Account"},
		{Date: "2024-01-04", Amount: "10.00", Description: "Snack", Account: "Checking Account"},
	})

	require.NoError(t, session.ToggleSelection(staged[3].ID))

	summary := session.Summary()
	assert.Equal(t, 3, summary.SelectedCount)
	// 100 income - 30 expense; the transfer contributes nothing.
	assert.True(t, summary.Net.Equal(decimal.RequireFromString("70.00")),
		"net was %s", summary.Net)
}
