// Package store provides the YAML-backed reference data store and the
// CSV ledger sink. It is the repository's own persistence stand-in;
// deployments talking to a real ledger API substitute their client for
// these types.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Radioaktywny/budget-planing-sub001/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var log = logrus.New()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// ReferenceStore manages accounts, categories and tags in YAML files.
// It implements refdata.Directory. Missing files are treated as empty
// reference sets, not errors.
type ReferenceStore struct {
	AccountsFile   string
	CategoriesFile string
	TagsFile       string
}

// NewReferenceStore creates a store over the three reference YAML
// files. Empty paths fall back to the default file names resolved
// against the standard config locations.
func NewReferenceStore(accountsFile, categoriesFile, tagsFile string) *ReferenceStore {
	return &ReferenceStore{
		AccountsFile:   accountsFile,
		CategoriesFile: categoriesFile,
		TagsFile:       tagsFile,
	}
}

// FindConfigFile looks for a reference file in standard locations.
func (s *ReferenceStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join("database", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "budget-staging", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

type accountsFile struct {
	Accounts []models.Account `yaml:"accounts"`
}

type categoriesFile struct {
	Categories []models.Category `yaml:"categories"`
}

type tagsFile struct {
	Tags []models.Tag `yaml:"tags"`
}

// ListAccounts loads the accounts from YAML. A missing file yields an
// empty slice.
func (s *ReferenceStore) ListAccounts() ([]models.Account, error) {
	var doc accountsFile
	if err := s.loadYAML(s.AccountsFile, "accounts.yaml", &doc); err != nil {
		return nil, err
	}
	return doc.Accounts, nil
}

// ListCategories loads the categories from YAML. A missing file yields
// an empty slice.
func (s *ReferenceStore) ListCategories() ([]models.Category, error) {
	var doc categoriesFile
	if err := s.loadYAML(s.CategoriesFile, "categories.yaml", &doc); err != nil {
		return nil, err
	}
	return doc.Categories, nil
}

// ListTags loads the tags from YAML. A missing file yields an empty
// slice.
func (s *ReferenceStore) ListTags() ([]models.Tag, error) {
	var doc tagsFile
	if err := s.loadYAML(s.TagsFile, "tags.yaml", &doc); err != nil {
		return nil, err
	}
	return doc.Tags, nil
}

// CreateCategory appends a new category with a generated identifier and
// rewrites the categories file.
func (s *ReferenceStore) CreateCategory(name, parentID, color string) (models.Category, error) {
	categories, err := s.ListCategories()
	if err != nil {
		return models.Category{}, err
	}

	cat := models.Category{
		ID:       uuid.New().String(),
		Name:     name,
		ParentID: parentID,
		Color:    color,
	}
	categories = append(categories, cat)

	if err := s.saveYAML(s.CategoriesFile, "categories.yaml", categoriesFile{Categories: categories}); err != nil {
		return models.Category{}, err
	}
	log.WithField("category", name).Debug("Created category")
	return cat, nil
}

// CreateTag appends a new tag with a generated identifier and rewrites
// the tags file.
func (s *ReferenceStore) CreateTag(name string) (models.Tag, error) {
	tags, err := s.ListTags()
	if err != nil {
		return models.Tag{}, err
	}

	tag := models.Tag{
		ID:   uuid.New().String(),
		Name: name,
	}
	tags = append(tags, tag)

	if err := s.saveYAML(s.TagsFile, "tags.yaml", tagsFile{Tags: tags}); err != nil {
		return models.Tag{}, err
	}
	log.WithField("tag", name).Debug("Created tag")
	return tag, nil
}

func (s *ReferenceStore) loadYAML(filename, fallback string, out interface{}) error {
	if filename == "" {
		filename = fallback
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warnf("Reference file not found: %s", filename)
			return nil
		}
		return fmt.Errorf("error resolving reference file %s: %w", filename, err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("error reading reference file %s: %w", filePath, err)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("error parsing reference file %s: %w", filePath, err)
	}
	return nil
}

func (s *ReferenceStore) saveYAML(filename, fallback string, doc interface{}) error {
	if filename == "" {
		filename = fallback
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil && err != os.ErrNotExist {
		return fmt.Errorf("error resolving reference file %s: %w", filename, err)
	}
	if err == os.ErrNotExist {
		if !filepath.IsAbs(filename) {
			filePath = filepath.Join("database", filename)
		} else {
			filePath = filename
		}
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("error marshaling reference data: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing reference file: %w", err)
	}
	return nil
}
