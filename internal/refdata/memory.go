package refdata

import (
	"fmt"

	"github.com/Radioaktywny/budget-planing-sub001/internal/models"

	"github.com/google/uuid"
)

// MemoryDirectory is an in-memory Directory implementation, used in
// tests and wherever no persistent reference store is wired.
type MemoryDirectory struct {
	AccountList  []models.Account
	CategoryList []models.Category
	TagList      []models.Tag

	// FailCreates makes every create call fail, for exercising
	// resolution error paths.
	FailCreates bool
}

// NewMemoryDirectory creates a directory pre-populated with the given
// reference data.
func NewMemoryDirectory(accounts []models.Account, categories []models.Category, tags []models.Tag) *MemoryDirectory {
	return &MemoryDirectory{
		AccountList:  accounts,
		CategoryList: categories,
		TagList:      tags,
	}
}

// ListAccounts returns the in-memory accounts.
func (d *MemoryDirectory) ListAccounts() ([]models.Account, error) {
	return d.AccountList, nil
}

// ListCategories returns the in-memory categories.
func (d *MemoryDirectory) ListCategories() ([]models.Category, error) {
	return d.CategoryList, nil
}

// ListTags returns the in-memory tags.
func (d *MemoryDirectory) ListTags() ([]models.Tag, error) {
	return d.TagList, nil
}

// CreateCategory appends a category with a generated identifier.
func (d *MemoryDirectory) CreateCategory(name, parentID, color string) (models.Category, error) {
	if d.FailCreates {
		return models.Category{}, fmt.Errorf("category creation unavailable")
	}
	cat := models.Category{
		ID:       uuid.New().String(),
		Name:     name,
		ParentID: parentID,
		Color:    color,
	}
	d.CategoryList = append(d.CategoryList, cat)
	return cat, nil
}

// CreateTag appends a tag with a generated identifier.
func (d *MemoryDirectory) CreateTag(name string) (models.Tag, error) {
	if d.FailCreates {
		return models.Tag{}, fmt.Errorf("tag creation unavailable")
	}
	tag := models.Tag{
		ID:   uuid.New().String(),
		Name: name,
	}
	d.TagList = append(d.TagList, tag)
	return tag, nil
}
