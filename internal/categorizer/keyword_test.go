package categorizer

import (
	"context"
	"errors"
	"testing"

	"github.com/Radioaktywny/budget-planing-sub001/internal/models"

	"github.com/stretchr/testify/assert"
)

var testCategories = []models.Category{
	{ID: "cat1", Name: "Food & Dining", Keywords: []string{"grocery", "restaurant"}},
	{ID: "cat2", Name: "Transport", Keywords: []string{"uber", "sbb"}},
	{ID: "cat3", Name: "Utilities"},
}

func TestKeywordSuggestMatchesCaseInsensitively(t *testing.T) {
	s := NewKeywordStrategy(testCategories)

	name, ok, err := s.Suggest(context.Background(), SuggestionRequest{Description: "CORNER GROCERY ZURICH"})
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Food & Dining", name)
}

func TestKeywordSuggestScansNotes(t *testing.T) {
	s := NewKeywordStrategy(testCategories)

	name, ok, _ := s.Suggest(context.Background(), SuggestionRequest{
		Description: "Monthly ride",
		Notes:       "paid via Uber app",
	})
	assert.True(t, ok)
	assert.Equal(t, "Transport", name)
}

func TestKeywordSuggestNoMatch(t *testing.T) {
	s := NewKeywordStrategy(testCategories)

	_, ok, err := s.Suggest(context.Background(), SuggestionRequest{Description: "Mystery merchant"})
	assert.NoError(t, err)
	assert.False(t, ok)

	_, ok, _ = s.Suggest(context.Background(), SuggestionRequest{})
	assert.False(t, ok, "empty text never matches")
}

type stubStrategy struct {
	name   string
	answer string
	ok     bool
	err    error
	calls  int
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Suggest(context.Context, SuggestionRequest) (string, bool, error) {
	s.calls++
	return s.answer, s.ok, s.err
}

func TestChainFirstHitWins(t *testing.T) {
	miss := &stubStrategy{name: "miss"}
	hit := &stubStrategy{name: "hit", answer: "Transport", ok: true}
	later := &stubStrategy{name: "later", answer: "Utilities", ok: true}

	name, ok := Chain(context.Background(), SuggestionRequest{}, miss, hit, later)
	assert.True(t, ok)
	assert.Equal(t, "Transport", name)
	assert.Equal(t, 1, miss.calls)
	assert.Equal(t, 1, hit.calls)
	assert.Zero(t, later.calls, "the chain stops at the first suggestion")
}

func TestChainSkipsFailingStrategy(t *testing.T) {
	broken := &stubStrategy{name: "broken", err: errors.New("api unreachable")}
	hit := &stubStrategy{name: "hit", answer: "Food & Dining", ok: true}

	name, ok := Chain(context.Background(), SuggestionRequest{}, broken, nil, hit)
	assert.True(t, ok)
	assert.Equal(t, "Food & Dining", name)
}

func TestChainAllMiss(t *testing.T) {
	_, ok := Chain(context.Background(), SuggestionRequest{}, &stubStrategy{name: "a"}, &stubStrategy{name: "b"})
	assert.False(t, ok)
}
