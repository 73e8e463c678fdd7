package staging

import (
	"context"

	"github.com/Radioaktywny/budget-planing-sub001/internal/categorizer"
	"github.com/Radioaktywny/budget-planing-sub001/internal/models"
)

// SuggestCategories runs the suggestion strategies over every staged
// record that has no category yet and binds any suggestion through the
// reference data cache. Records that already carry a category, and
// split parents (whose categorization is item-scoped), are left alone.
func (s *Session) SuggestCategories(ctx context.Context, strategies ...categorizer.Strategy) {
	if len(strategies) == 0 {
		return
	}

	for _, t := range s.records {
		if t.IsSplit || t.CategoryID != "" || t.CategoryName != "" {
			continue
		}

		req := categorizer.SuggestionRequest{
			Description: t.Description,
			Notes:       t.Notes,
			Amount:      t.Amount.StringFixed(2),
			Date:        t.Date,
		}
		name, ok := categorizer.Chain(ctx, req, strategies...)
		if !ok {
			continue
		}

		cat, err := s.cache.ResolveCategory(name)
		if err != nil {
			log.WithError(err).WithField("category", name).
				Warn("Failed to bind suggested category")
			continue
		}
		t.CategoryID = cat.ID
		t.CategoryName = cat.Name
		t.ClearFieldError(models.FieldCategory)
	}
}
