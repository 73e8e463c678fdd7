// Package importer decodes and validates JSON/YAML batch import
// documents before any staging model is built. Structural problems are
// fatal; per-field problems are collected with the index of the
// offending array element so the caller can report all of them at once.
package importer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Radioaktywny/budget-planing-sub001/internal/models"
	"github.com/Radioaktywny/budget-planing-sub001/internal/stagingerror"

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

// Format identifies the encoding of an import document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	// FormatAuto detects the format from the document content.
	FormatAuto Format = ""
)

// SupportedVersion is the only import document version accepted.
const SupportedVersion = "1"

// DecodeDocument parses an import document. It returns a
// *stagingerror.DocumentError when the content cannot be decoded or the
// required top-level fields are missing.
func DecodeDocument(data []byte, format Format) (*models.ImportDocument, error) {
	if format == FormatAuto {
		format = detectFormat(data)
	}

	var doc models.ImportDocument
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, &stagingerror.DocumentError{Format: "json", Reason: "malformed document", Err: err}
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &stagingerror.DocumentError{Format: "yaml", Reason: "malformed document", Err: err}
		}
	default:
		return nil, &stagingerror.DocumentError{Format: string(format), Reason: "unsupported format"}
	}

	if doc.Version == "" {
		return nil, &stagingerror.DocumentError{Format: string(format), Reason: "missing required field 'version'"}
	}
	if doc.Version != SupportedVersion {
		return nil, &stagingerror.DocumentError{
			Format: string(format),
			Reason: fmt.Sprintf("unsupported version %q, expected %q", doc.Version, SupportedVersion),
		}
	}
	if len(doc.Transactions) == 0 {
		return nil, &stagingerror.DocumentError{Format: string(format), Reason: "missing or empty 'transactions' array"}
	}

	log.WithFields(logrus.Fields{
		"format":       format,
		"transactions": len(doc.Transactions),
	}).Debug("Decoded import document")

	return &doc, nil
}

// Validate checks every record of a decoded document and returns the
// accepted transaction count, or the full list of field errors. A
// document with any field error stages nothing.
func Validate(doc *models.ImportDocument) (int, []*stagingerror.FieldError) {
	var errs []*stagingerror.FieldError

	for i, rec := range doc.Transactions {
		errs = append(errs, validateRecord(i, rec)...)
	}

	if len(errs) > 0 {
		log.WithField("errors", len(errs)).Warn("Import document failed validation")
		return 0, errs
	}
	return len(doc.Transactions), nil
}

func validateRecord(index int, rec models.RawRecord) []*stagingerror.FieldError {
	var errs []*stagingerror.FieldError

	fail := func(field, message string) {
		errs = append(errs, &stagingerror.FieldError{Field: field, Message: message, Index: index})
	}

	if strings.TrimSpace(rec.Date) == "" {
		fail("date", "is required")
	} else if !isValidDate(rec.Date) {
		fail("date", fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", rec.Date))
	}

	if strings.TrimSpace(rec.Amount) == "" {
		fail("amount", "is required")
	} else if amount, err := models.ParseAmount(rec.Amount); err != nil {
		fail("amount", fmt.Sprintf("invalid amount %q", rec.Amount))
	} else if !amount.IsPositive() {
		fail("amount", "must be positive")
	}

	if strings.TrimSpace(rec.Description) == "" {
		fail("description", "is required")
	}

	if _, ok := models.ParseTransactionType(rec.Type); !ok {
		fail("type", fmt.Sprintf("unknown type %q, expected INCOME, EXPENSE or TRANSFER", rec.Type))
	}

	if rec.Split {
		if len(rec.Items) == 0 {
			fail("items", "split transaction requires at least one item")
		}
		for j, item := range rec.Items {
			if _, err := models.ParseAmount(item.Amount); err != nil {
				fail(fmt.Sprintf("items[%d].amount", j), fmt.Sprintf("invalid amount %q", item.Amount))
			}
		}
	} else if len(rec.Items) > 0 {
		fail("items", "items present but 'split' flag is not set")
	}

	return errs
}

func isValidDate(s string) bool {
	t := models.StagedTransaction{Date: strings.TrimSpace(s)}
	return t.HasValidDate()
}

// detectFormat sniffs JSON by the first non-space byte; everything else
// is treated as YAML.
func detectFormat(data []byte) Format {
	trimmed := strings.TrimLeft(string(data), " \t\r\n")
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return FormatJSON
	}
	return FormatYAML
}
