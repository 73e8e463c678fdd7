// Package stagingerror defines the error types surfaced by the import
// staging pipeline.
package stagingerror

import (
	"fmt"
	"strings"
)

// DocumentError reports a structural problem with an import document:
// undecodable content or a missing required top-level field. Structural
// errors are fatal for the whole document; no staging occurs.
type DocumentError struct {
	Format string
	Reason string
	Err    error
}

func (e *DocumentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s import document: %s: %v", e.Format, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid %s import document: %s", e.Format, e.Reason)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// FieldError reports a validation failure on one field of one record.
// Index identifies the offending element of the transactions array; -1
// means the error is not tied to an array element.
type FieldError struct {
	Field   string
	Message string
	Index   int
}

func (e *FieldError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("transactions[%d].%s: %s", e.Index, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ResolutionError reports a failed category or tag creation during
// name resolution. The record stays unresolved and fails pre-commit
// validation.
type ResolutionError struct {
	Kind string // "category" or "tag"
	Name string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve %s %q: %v", e.Kind, e.Name, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// RecordFailure ties validation messages to one staged record inside a
// batch.
type RecordFailure struct {
	Index       int
	ID          string
	Description string
	Messages    []string
}

// BatchValidationError aborts a commit: at least one selected record
// failed pre-commit validation, so nothing was committed.
type BatchValidationError struct {
	Failures []RecordFailure
}

func (e *BatchValidationError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("record %d (%s): %s",
			f.Index, f.Description, strings.Join(f.Messages, "; ")))
	}
	return fmt.Sprintf("batch validation failed, nothing committed: %s", strings.Join(parts, " | "))
}

// CommitError reports a rejected commit for one record. Sibling records
// already committed or still pending are unaffected.
type CommitError struct {
	ID          string
	Description string
	Err         error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit failed for %q: %v", e.Description, e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}
