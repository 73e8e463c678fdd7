package staging

import (
	"context"
	"testing"

	"github.com/Radioaktywny/budget-planing-sub001/internal/categorizer"
	"github.com/Radioaktywny/budget-planing-sub001/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestCategoriesBindsKeywordHits(t *testing.T) {
	session, _ := newTestSession(t)
	staged := session.Stage([]models.RawRecord{
		{Date: "2024-01-15", Amount: "50.00", Description: "Corner Grocery", Account: "Checking Account"},
		{Date: "2024-01-16", Amount: "20.00", Description: "Mystery merchant", Account: "Checking Account"},
		{Date: "2024-01-17", Amount: "30.00", Description: "Restaurant visit", Account: "Checking Account",
			Category: "Utilities"},
	})

	strategy := categorizer.NewKeywordStrategy(session.Cache().Categories())
	session.SuggestCategories(context.Background(), strategy)

	assert.Equal(t, "cat1", staged[0].CategoryID, "keyword 'grocery' matches Food & Dining")
	assert.Empty(t, staged[1].CategoryID, "no keyword hit leaves the record uncategorized")
	assert.Equal(t, "cat2", staged[2].CategoryID, "already categorized records are untouched")
}

func TestSuggestCategoriesSkipsSplits(t *testing.T) {
	session, _ := newTestSession(t)
	staged := session.Stage([]models.RawRecord{{
		Date: "2024-01-20", Amount: "80.00", Description: "Grocery haul", Account: "Checking Account",
		Split: true,
		Items: []models.RawSplitItem{{Amount: "80.00", Description: "Food"}},
	}})
	require.True(t, staged[0].IsSplit)

	strategy := categorizer.NewKeywordStrategy(session.Cache().Categories())
	session.SuggestCategories(context.Background(), strategy)

	assert.Empty(t, staged[0].CategoryID, "split parents keep item-scoped categorization")
}
