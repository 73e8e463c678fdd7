package models

// Account is a ledger account known to the reference data cache.
// Accounts are never auto-created during import; an unresolved account
// name is always reported back for user selection.
type Account struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Category is a node in the category forest. ParentID is empty for
// top-level categories. Keywords feed the keyword suggestion strategy.
type Category struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	ParentID string   `json:"parentId,omitempty" yaml:"parentId,omitempty"`
	Color    string   `json:"color,omitempty" yaml:"color,omitempty"`
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// Tag is a free-form label attached to transactions.
type Tag struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	UsageCount int    `json:"usageCount,omitempty" yaml:"usageCount,omitempty"`
}
