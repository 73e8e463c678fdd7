// Package categorizer suggests categories for staged transactions that
// arrived without one. Strategies are chained; the first one that
// produces a suggestion wins. Suggestions are names only — binding to a
// category identifier still goes through the reference data cache.
package categorizer

import (
	"context"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// SuggestionRequest carries the transaction details a strategy may use.
type SuggestionRequest struct {
	Description string
	Notes       string
	Amount      string
	Date        string
}

// Strategy is one way of suggesting a category name for a transaction.
type Strategy interface {
	// Name identifies the strategy for logging.
	Name() string

	// Suggest returns a category name and whether a suggestion was
	// produced. An error aborts only this strategy, not the chain.
	Suggest(ctx context.Context, req SuggestionRequest) (string, bool, error)
}

// Chain runs the strategies in order and returns the first suggestion.
func Chain(ctx context.Context, req SuggestionRequest, strategies ...Strategy) (string, bool) {
	for _, s := range strategies {
		if s == nil {
			continue
		}
		name, ok, err := s.Suggest(ctx, req)
		if err != nil {
			log.WithError(err).WithField("strategy", s.Name()).
				Warn("Category suggestion strategy failed")
			continue
		}
		if ok {
			log.WithFields(logrus.Fields{
				"strategy": s.Name(),
				"category": name,
			}).Debug("Category suggested")
			return name, true
		}
	}
	return "", false
}
