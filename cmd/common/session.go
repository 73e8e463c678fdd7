// Package common provides the shared wiring used by multiple commands:
// loading configuration, building the reference data cache and staging
// an import document into a review session.
package common

import (
	"context"
	"fmt"
	"os"

	"github.com/Radioaktywny/budget-planing-sub001/internal/categorizer"
	"github.com/Radioaktywny/budget-planing-sub001/internal/config"
	"github.com/Radioaktywny/budget-planing-sub001/internal/importer"
	"github.com/Radioaktywny/budget-planing-sub001/internal/models"
	"github.com/Radioaktywny/budget-planing-sub001/internal/refdata"
	"github.com/Radioaktywny/budget-planing-sub001/internal/staging"
	"github.com/Radioaktywny/budget-planing-sub001/internal/store"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// LoadDocument reads and decodes an import document from disk.
func LoadDocument(path string, format importer.Format) (*models.ImportDocument, error) {
	if path == "" {
		return nil, fmt.Errorf("input file is required (use --input)")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return importer.DecodeDocument(data, format)
}

// BuildCache loads the reference data cache from the configured YAML
// store.
func BuildCache(cfg *config.Config) (*refdata.Cache, *store.ReferenceStore, error) {
	refStore := store.NewReferenceStore(
		cfg.Data.AccountsFile,
		cfg.Data.CategoriesFile,
		cfg.Data.TagsFile,
	)
	cache, err := refdata.Load(refStore)
	if err != nil {
		return nil, nil, err
	}
	return cache, refStore, nil
}

// BuildStrategies assembles the category suggestion chain from the
// configuration: keywords always, Gemini only when enabled.
func BuildStrategies(cfg *config.Config, cache *refdata.Cache) []categorizer.Strategy {
	strategies := []categorizer.Strategy{
		categorizer.NewKeywordStrategy(cache.Categories()),
	}
	if cfg.AI.Enabled {
		names := make([]string, 0, len(cache.Categories()))
		for _, cat := range cache.Categories() {
			names = append(names, cat.Name)
		}
		strategies = append(strategies, categorizer.NewGeminiStrategy(cfg.AI.APIKey, cfg.AI.Model, names))
	}
	return strategies
}

// StageDocument validates a document and builds a review session from
// it. Validation failures are returned as an error listing every
// offending field.
func StageDocument(ctx context.Context, cfg *config.Config, doc *models.ImportDocument, cache *refdata.Cache) (*staging.Session, error) {
	if _, errs := importer.Validate(doc); len(errs) > 0 {
		msg := "import document failed validation:"
		for _, e := range errs {
			msg += "\n  " + e.Error()
		}
		return nil, fmt.Errorf("%s", msg)
	}

	session := staging.NewSession(cache)
	session.Stage(doc.Transactions)
	session.SuggestCategories(ctx, BuildStrategies(cfg, cache)...)
	return session, nil
}

// FormatNet renders a signed net total in the configured display
// currency.
func FormatNet(net decimal.Decimal, currencyCode string) string {
	minor := net.Shift(2).Round(0).IntPart()
	return money.New(minor, currencyCode).Display()
}
