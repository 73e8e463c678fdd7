package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Radioaktywny/budget-planing-sub001/internal/committer"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// LedgerRow is one committed entry in the CSV ledger. Split
// transactions write one row per item, sharing the parent description.
type LedgerRow struct {
	Date        string          `csv:"Date"`
	Type        string          `csv:"Type"`
	Description string          `csv:"Description"`
	Amount      decimal.Decimal `csv:"Amount"`
	AccountID   string          `csv:"AccountID"`
	// CounterAccountID is set only for transfers.
	CounterAccountID string `csv:"CounterAccountID"`
	CategoryID       string `csv:"CategoryID"`
	Notes            string `csv:"Notes"`
}

// LedgerWriter appends committed transactions to a CSV file. It
// implements committer.TransactionService; each call persists exactly
// one record, so a failed sibling never affects what was already
// written.
type LedgerWriter struct {
	Path string
}

// NewLedgerWriter creates a writer for the given CSV file path.
func NewLedgerWriter(path string) *LedgerWriter {
	return &LedgerWriter{Path: path}
}

// CreateTransaction appends one regular transaction row.
func (w *LedgerWriter) CreateTransaction(_ context.Context, req committer.TransactionRequest) error {
	return w.append([]LedgerRow{{
		Date:        req.Date,
		Type:        string(req.Type),
		Description: req.Description,
		Amount:      req.Amount,
		AccountID:   req.AccountID,
		CategoryID:  req.CategoryID,
		Notes:       req.Notes,
	}})
}

// CreateSplitTransaction appends one row per split item.
func (w *LedgerWriter) CreateSplitTransaction(_ context.Context, req committer.SplitTransactionRequest) error {
	rows := make([]LedgerRow, 0, len(req.Items))
	for _, item := range req.Items {
		description := item.Description
		if description == "" {
			description = req.Description
		}
		rows = append(rows, LedgerRow{
			Date:        req.Date,
			Type:        "SPLIT",
			Description: description,
			Amount:      item.Amount,
			AccountID:   req.AccountID,
			CategoryID:  item.CategoryID,
			Notes:       item.Notes,
		})
	}
	return w.append(rows)
}

// CreateTransfer appends one transfer row.
func (w *LedgerWriter) CreateTransfer(_ context.Context, req committer.TransferRequest) error {
	return w.append([]LedgerRow{{
		Date:             req.Date,
		Type:             "TRANSFER",
		Description:      req.Description,
		Amount:           req.Amount,
		AccountID:        req.FromAccountID,
		CounterAccountID: req.ToAccountID,
		Notes:            req.Notes,
	}})
}

func (w *LedgerWriter) append(rows []LedgerRow) error {
	existing, err := w.Read()
	if err != nil {
		return err
	}
	existing = append(existing, rows...)

	dir := filepath.Dir(w.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating ledger directory: %w", err)
	}

	f, err := os.Create(w.Path)
	if err != nil {
		return fmt.Errorf("error opening ledger file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Warnf("Failed to close ledger file: %v", cerr)
		}
	}()

	if err := gocsv.MarshalFile(&existing, f); err != nil {
		return fmt.Errorf("error writing ledger file: %w", err)
	}
	return nil
}

// Read loads all ledger rows. A missing ledger file yields an empty
// slice.
func (w *LedgerWriter) Read() ([]LedgerRow, error) {
	f, err := os.Open(w.Path)
	if os.IsNotExist(err) {
		return []LedgerRow{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error opening ledger file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Warnf("Failed to close ledger file: %v", cerr)
		}
	}()

	var rows []LedgerRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("error reading ledger file: %w", err)
	}
	return rows, nil
}
