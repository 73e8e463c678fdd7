package categorizer

import (
	"context"
	"strings"

	"github.com/Radioaktywny/budget-planing-sub001/internal/models"
)

// KeywordStrategy matches transaction text against the keyword lists
// carried by the reference categories.
type KeywordStrategy struct {
	categories []models.Category
}

// NewKeywordStrategy creates a keyword strategy over the given
// categories.
func NewKeywordStrategy(categories []models.Category) *KeywordStrategy {
	return &KeywordStrategy{categories: categories}
}

// Name returns the name of this strategy for logging and debugging.
func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// Suggest scans description and notes for a case-insensitive keyword
// hit. Categories are tried in their cache order; the first hit wins.
func (s *KeywordStrategy) Suggest(_ context.Context, req SuggestionRequest) (string, bool, error) {
	haystack := strings.ToUpper(req.Description + " " + req.Notes)
	if strings.TrimSpace(haystack) == "" {
		return "", false, nil
	}

	for _, cat := range s.categories {
		for _, keyword := range cat.Keywords {
			if keyword == "" {
				continue
			}
			if strings.Contains(haystack, strings.ToUpper(keyword)) {
				return cat.Name, true, nil
			}
		}
	}
	return "", false, nil
}
