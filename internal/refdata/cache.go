// Package refdata provides the read-mostly reference data cache used to
// resolve human-readable account, category and tag names during import.
// The cache is loaded once per review session and only grows by additive
// inserts when a category or tag is created mid-session.
package refdata

import (
	"fmt"
	"strings"

	"github.com/Radioaktywny/budget-planing-sub001/internal/models"
	"github.com/Radioaktywny/budget-planing-sub001/internal/stagingerror"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Directory is the external reference-data interface the cache is
// loaded from. Account creation is deliberately absent: a missing
// account is always reported back for user selection, never created.
type Directory interface {
	ListAccounts() ([]models.Account, error)
	ListCategories() ([]models.Category, error)
	ListTags() ([]models.Tag, error)
	CreateCategory(name, parentID, color string) (models.Category, error)
	CreateTag(name string) (models.Tag, error)
}

// Cache is the session-scoped snapshot of reference data. Name lookups
// are case-insensitive so that a session never creates duplicates that
// differ only in casing.
type Cache struct {
	dir Directory

	accounts   []models.Account
	categories []models.Category
	tags       []models.Tag

	accountsByName   map[string]models.Account
	categoriesByName map[string]models.Category
	tagsByName       map[string]models.Tag
}

// Load builds a cache from a directory. It is called once at session
// start; the snapshot is treated as immutable afterwards except for
// additive inserts from ResolveCategory/ResolveTag.
func Load(dir Directory) (*Cache, error) {
	accounts, err := dir.ListAccounts()
	if err != nil {
		return nil, fmt.Errorf("loading accounts: %w", err)
	}
	categories, err := dir.ListCategories()
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}
	tags, err := dir.ListTags()
	if err != nil {
		return nil, fmt.Errorf("loading tags: %w", err)
	}

	c := &Cache{
		dir:              dir,
		accounts:         accounts,
		categories:       categories,
		tags:             tags,
		accountsByName:   make(map[string]models.Account, len(accounts)),
		categoriesByName: make(map[string]models.Category, len(categories)),
		tagsByName:       make(map[string]models.Tag, len(tags)),
	}
	for _, a := range accounts {
		c.accountsByName[nameKey(a.Name)] = a
	}
	for _, cat := range categories {
		c.categoriesByName[nameKey(cat.Name)] = cat
	}
	for _, tag := range tags {
		c.tagsByName[nameKey(tag.Name)] = tag
	}

	log.WithFields(logrus.Fields{
		"accounts":   len(accounts),
		"categories": len(categories),
		"tags":       len(tags),
	}).Debug("Loaded reference data cache")

	return c, nil
}

// Accounts returns the cached accounts.
func (c *Cache) Accounts() []models.Account { return c.accounts }

// Categories returns the cached categories, including any created
// during this session.
func (c *Cache) Categories() []models.Category { return c.categories }

// Tags returns the cached tags, including any created during this
// session.
func (c *Cache) Tags() []models.Tag { return c.tags }

// ResolveAccount looks up an account by name. It never creates one.
func (c *Cache) ResolveAccount(name string) (models.Account, bool) {
	a, ok := c.accountsByName[nameKey(name)]
	return a, ok
}

// ResolveCategory looks up a category by name, creating it through the
// directory on a miss and inserting it into the cache.
func (c *Cache) ResolveCategory(name string) (models.Category, error) {
	if cat, ok := c.categoriesByName[nameKey(name)]; ok {
		return cat, nil
	}

	cat, err := c.dir.CreateCategory(strings.TrimSpace(name), "", "")
	if err != nil {
		return models.Category{}, &stagingerror.ResolutionError{Kind: "category", Name: name, Err: err}
	}

	c.categories = append(c.categories, cat)
	c.categoriesByName[nameKey(cat.Name)] = cat
	log.WithField("category", cat.Name).Info("Created category during review")
	return cat, nil
}

// ResolveTag looks up a tag by name, creating it on a miss.
func (c *Cache) ResolveTag(name string) (models.Tag, error) {
	if tag, ok := c.tagsByName[nameKey(name)]; ok {
		return tag, nil
	}

	tag, err := c.dir.CreateTag(strings.TrimSpace(name))
	if err != nil {
		return models.Tag{}, &stagingerror.ResolutionError{Kind: "tag", Name: name, Err: err}
	}

	c.tags = append(c.tags, tag)
	c.tagsByName[nameKey(tag.Name)] = tag
	log.WithField("tag", tag.Name).Info("Created tag during review")
	return tag, nil
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
