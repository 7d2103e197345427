// Package pipelineerror defines the typed errors surfaced by the ingestion
// pipeline. File-level errors abort the whole operation; row-level errors
// are collected as data in the import report and never abort the batch.
package pipelineerror

import (
	"fmt"
	"strings"
)

// Row failure reasons, kept as constants so reports stay uniform and
// tests can match on them.
const (
	ReasonMissingField  = "missing required field"
	ReasonInvalidDate   = "invalid date format"
	ReasonInvalidAmount = "invalid amount"
)

// FileRejectedError means the whole file was refused before any row was
// processed: too short, undecodable, wrong content type, or the header
// did not yield the mandatory column roles.
type FileRejectedError struct {
	FileName     string
	Reason       string
	MissingRoles []string
}

func (e *FileRejectedError) Error() string {
	name := e.FileName
	if name == "" {
		name = "input"
	}
	if len(e.MissingRoles) > 0 {
		return fmt.Sprintf("file %s rejected: missing required columns: %s",
			name, strings.Join(e.MissingRoles, ", "))
	}
	return fmt.Sprintf("file %s rejected: %s", name, e.Reason)
}

// RowError tags a normalization failure with the row's 1-based line
// position in the file. It is report data, not a control-flow signal.
type RowError struct {
	Line   int
	Reason string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Line, e.Reason)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// NewRowError builds a RowError with an optional underlying cause.
func NewRowError(line int, reason string, err error) *RowError {
	return &RowError{Line: line, Reason: reason, Err: err}
}

// PreconditionError means a call-level precondition failed before any
// item was touched, e.g. promoting expenses for a user with no categories.
type PreconditionError struct {
	Operation string
	Reason    string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s precondition failed: %s", e.Operation, e.Reason)
}
