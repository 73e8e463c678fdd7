package models

// ImportDocument is the top-level shape of a JSON/YAML batch import.
type ImportDocument struct {
	Version      string      `json:"version" yaml:"version"`
	Transactions []RawRecord `json:"transactions" yaml:"transactions"`
}

// RawRecord is one untrusted candidate transaction as supplied by a
// parser or a bulk import document. Amounts are kept as strings until
// staging so that malformed values can be reported against the record
// instead of failing the whole decode.
type RawRecord struct {
	Date        string `json:"date" yaml:"date"`
	Amount      string `json:"amount" yaml:"amount"`
	Description string `json:"description" yaml:"description"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Category    string `json:"category,omitempty" yaml:"category,omitempty"`
	Account     string `json:"account,omitempty" yaml:"account,omitempty"`
	// CounterAccount names the destination account of a transfer.
	CounterAccount string         `json:"counterAccount,omitempty" yaml:"counterAccount,omitempty"`
	Notes          string         `json:"notes,omitempty" yaml:"notes,omitempty"`
	Tags           []string       `json:"tags,omitempty" yaml:"tags,omitempty"`
	Split          bool           `json:"split,omitempty" yaml:"split,omitempty"`
	Items          []RawSplitItem `json:"items,omitempty" yaml:"items,omitempty"`
}

// RawSplitItem is one candidate split share inside a raw record.
type RawSplitItem struct {
	Amount      string `json:"amount" yaml:"amount"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string `json:"category,omitempty" yaml:"category,omitempty"`
	Notes       string `json:"notes,omitempty" yaml:"notes,omitempty"`
}
