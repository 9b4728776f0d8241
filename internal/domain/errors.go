package domain

import (
	"errors"
	"fmt"
)

// Common errors shared across the pipeline stages
var (
	// ErrNotEnoughAccounts is returned when a dataset request exceeds the
	// available distinct account names. This is a configuration error and
	// must be surfaced before any output is produced.
	ErrNotEnoughAccounts = errors.New("requested record count exceeds available distinct account names")

	// ErrEmptyDataset is returned when an operation requires at least one record
	ErrEmptyDataset = errors.New("dataset contains no records")
)

// MissingColumnError indicates an expected column was absent from tabular input.
// Fatal at load time per the input contract.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing expected column %q", e.Column)
}

// FieldError indicates a record field failed validation at load time
type FieldError struct {
	Record int
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("record %d: field %q: %s", e.Record, e.Field, e.Reason)
}
