package refdata

import (
	"testing"

	"github.com/Radioaktywny/budget-planing-sub001/internal/models"
	"github.com/Radioaktywny/budget-planing-sub001/internal/stagingerror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDirectory() *MemoryDirectory {
	return NewMemoryDirectory(
		[]models.Account{{ID: "acc1", Name: "Checking Account"}},
		[]models.Category{{ID: "cat1", Name: "Food & Dining"}},
		[]models.Tag{{ID: "tag1", Name: "vacation"}},
	)
}

func TestResolveAccountCaseInsensitive(t *testing.T) {
	cache, err := Load(testDirectory())
	require.NoError(t, err)

	acc, ok := cache.ResolveAccount("checking account")
	assert.True(t, ok)
	assert.Equal(t, "acc1", acc.ID)

	_, ok = cache.ResolveAccount("Savings")
	assert.False(t, ok, "accounts must never be auto-created")
}

func TestResolveCategoryExistingAndCreate(t *testing.T) {
	dir := testDirectory()
	cache, err := Load(dir)
	require.NoError(t, err)

	// Case-insensitive hit must not create a duplicate.
	cat, err := cache.ResolveCategory("FOOD & dining")
	require.NoError(t, err)
	assert.Equal(t, "cat1", cat.ID)
	assert.Len(t, dir.CategoryList, 1)

	// Miss creates through the directory and inserts into the cache.
	created, err := cache.ResolveCategory("Utilities")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Len(t, dir.CategoryList, 2)

	// Second resolution of the new name hits the cache.
	again, err := cache.ResolveCategory("utilities")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	assert.Len(t, dir.CategoryList, 2)
}

func TestResolveTagCreateOnMiss(t *testing.T) {
	dir := testDirectory()
	cache, err := Load(dir)
	require.NoError(t, err)

	tag, err := cache.ResolveTag("Vacation")
	require.NoError(t, err)
	assert.Equal(t, "tag1", tag.ID)

	created, err := cache.ResolveTag("groceries")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Len(t, dir.TagList, 2)
}

func TestResolveCreationFailure(t *testing.T) {
	dir := testDirectory()
	dir.FailCreates = true
	cache, err := Load(dir)
	require.NoError(t, err)

	_, err = cache.ResolveCategory("Brand New")
	require.Error(t, err)
	var resErr *stagingerror.ResolutionError
	assert.ErrorAs(t, err, &resErr)
	assert.Equal(t, "category", resErr.Kind)

	_, err = cache.ResolveTag("brand-new")
	require.Error(t, err)
	assert.ErrorAs(t, err, &resErr)
	assert.Equal(t, "tag", resErr.Kind)
}
