// Package committer turns the approved subset of a review session into
// persisted transactions. Validation is all-or-nothing: one invalid
// selected record aborts the whole batch before anything is committed.
// The commit loop itself is not atomic; each record is an independent
// call and a failure does not roll back earlier successes.
package committer

import (
	"context"
	"strings"

	"github.com/Radioaktywny/budget-planing-sub001/internal/models"
	"github.com/Radioaktywny/budget-planing-sub001/internal/staging"
	"github.com/Radioaktywny/budget-planing-sub001/internal/stagingerror"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// TransactionRequest is the payload for a regular (non-split)
// transaction.
type TransactionRequest struct {
	Date        string
	Amount      decimal.Decimal
	Type        models.TransactionType
	Description string
	AccountID   string
	CategoryID  string
	Notes       string
	TagIDs      []string
}

// SplitItemRequest is one share of a split transaction payload.
type SplitItemRequest struct {
	Amount      decimal.Decimal
	Description string
	CategoryID  string
	Notes       string
}

// SplitTransactionRequest is the payload for a split transaction. The
// item amounts are pre-validated to sum to Amount.
type SplitTransactionRequest struct {
	Date        string
	Amount      decimal.Decimal
	Description string
	AccountID   string
	TagIDs      []string
	Items       []SplitItemRequest
}

// TransferRequest is the payload for a paired debit/credit between two
// distinct accounts.
type TransferRequest struct {
	Date          string
	Amount        decimal.Decimal
	Description   string
	FromAccountID string
	ToAccountID   string
	Notes         string
}

// TransactionService is the external persistence boundary. Each call
// commits exactly one record; the orchestrator never assumes calls can
// be rolled back.
type TransactionService interface {
	CreateTransaction(ctx context.Context, req TransactionRequest) error
	CreateSplitTransaction(ctx context.Context, req SplitTransactionRequest) error
	CreateTransfer(ctx context.Context, req TransferRequest) error
}

// RecordResult is the outcome for one committed (or failed) record, in
// original input order.
type RecordResult struct {
	Index       int
	ID          string
	Description string
	Err         error
}

// Result aggregates a commit pass.
type Result struct {
	Committed int
	Records   []RecordResult
}

// Failed returns the subset of results that carry an error.
func (r Result) Failed() []RecordResult {
	var out []RecordResult
	for _, rec := range r.Records {
		if rec.Err != nil {
			out = append(out, rec)
		}
	}
	return out
}

// Orchestrator commits the selected records of a session through a
// transaction service.
type Orchestrator struct {
	service TransactionService
}

// NewOrchestrator creates an orchestrator over the given service.
func NewOrchestrator(service TransactionService) *Orchestrator {
	return &Orchestrator{service: service}
}

// Commit validates every selected record and, only if all of them
// pass, commits them strictly sequentially in input order. On a
// validation failure it returns a *stagingerror.BatchValidationError
// naming every failing record and commits nothing; the session is left
// untouched. Commit-time failures are recorded per record and do not
// affect siblings.
func (o *Orchestrator) Commit(ctx context.Context, session *staging.Session) (Result, error) {
	selected := selectedRecords(session)

	if failures := validate(session, selected); len(failures) > 0 {
		log.WithField("failures", len(failures)).Warn("Commit aborted by pre-validation")
		return Result{}, &stagingerror.BatchValidationError{Failures: failures}
	}

	result := Result{Records: make([]RecordResult, 0, len(selected))}
	for _, sel := range selected {
		err := o.commitOne(ctx, sel.record)
		if err != nil {
			err = &stagingerror.CommitError{
				ID:          sel.record.ID,
				Description: sel.record.Description,
				Err:         err,
			}
			log.WithError(err).WithField("index", sel.index).Warn("Record commit failed")
		} else {
			result.Committed++
		}
		result.Records = append(result.Records, RecordResult{
			Index:       sel.index,
			ID:          sel.record.ID,
			Description: sel.record.Description,
			Err:         err,
		})
	}

	log.WithFields(logrus.Fields{
		"committed": result.Committed,
		"selected":  len(selected),
	}).Info("Commit pass finished")
	return result, nil
}

type selectedRecord struct {
	index  int
	record *models.StagedTransaction
}

func selectedRecords(session *staging.Session) []selectedRecord {
	var out []selectedRecord
	for i, t := range session.Records() {
		if t.Selected {
			out = append(out, selectedRecord{index: i, record: t})
		}
	}
	return out
}

func validate(session *staging.Session, selected []selectedRecord) []stagingerror.RecordFailure {
	var failures []stagingerror.RecordFailure
	for _, sel := range selected {
		if msgs := validateRecord(session, sel.record); len(msgs) > 0 {
			failures = append(failures, stagingerror.RecordFailure{
				Index:       sel.index,
				ID:          sel.record.ID,
				Description: sel.record.Description,
				Messages:    msgs,
			})
		}
	}
	return failures
}

func validateRecord(session *staging.Session, t *models.StagedTransaction) []string {
	var msgs []string

	if t.AccountID == "" {
		msgs = append(msgs, "account requires selection")
	}
	if strings.TrimSpace(t.Description) == "" {
		msgs = append(msgs, "description is required")
	}
	if !t.HasValidDate() {
		msgs = append(msgs, "valid date is required")
	}
	if !t.Amount.IsPositive() {
		msgs = append(msgs, "amount must be positive")
	}

	if t.IsSplit {
		res, err := session.ValidateSplit(t.ID)
		if err != nil {
			msgs = append(msgs, err.Error())
		} else if !res.Valid {
			msgs = append(msgs, "split items do not sum to the transaction amount (off by "+res.Delta.StringFixed(2)+")")
		}
	}

	if t.Type == models.TypeTransfer {
		if t.CounterAccountID == "" {
			msgs = append(msgs, "transfer requires a destination account")
		} else if t.CounterAccountID == t.AccountID {
			msgs = append(msgs, "transfer accounts must be distinct")
		}
	}

	return msgs
}

func (o *Orchestrator) commitOne(ctx context.Context, t *models.StagedTransaction) error {
	switch {
	case t.Type == models.TypeTransfer:
		return o.service.CreateTransfer(ctx, TransferRequest{
			Date:          t.Date,
			Amount:        t.Amount,
			Description:   t.Description,
			FromAccountID: t.AccountID,
			ToAccountID:   t.CounterAccountID,
			Notes:         t.Notes,
		})
	case t.IsSplit:
		req := SplitTransactionRequest{
			Date:        t.Date,
			Amount:      t.Amount,
			Description: t.Description,
			AccountID:   t.AccountID,
			TagIDs:      t.TagIDs,
		}
		for _, item := range t.Items {
			req.Items = append(req.Items, SplitItemRequest{
				Amount:      item.Amount,
				Description: item.Description,
				CategoryID:  item.CategoryID,
				Notes:       item.Notes,
			})
		}
		return o.service.CreateSplitTransaction(ctx, req)
	default:
		return o.service.CreateTransaction(ctx, TransactionRequest{
			Date:        t.Date,
			Amount:      t.Amount,
			Type:        t.Type,
			Description: t.Description,
			AccountID:   t.AccountID,
			CategoryID:  t.CategoryID,
			Notes:       t.Notes,
			TagIDs:      t.TagIDs,
		})
	}
}
