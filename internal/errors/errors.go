package errors

import "fmt"

type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Field + ": " + e.Message
}

// ErrNotFound is returned when a record addressed by ID does not exist.
type ErrNotFound struct {
	Entity string
	ID     string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// ParseError reports a workbook that could not be decoded. No data is
// touched when an import fails with a ParseError.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "failed to parse workbook: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// ImportError reports a failure after existing records were cleared; the
// dataset may be partially rebuilt.
type ImportError struct {
	Stage string
	Err   error
}

func (e *ImportError) Error() string {
	return e.Stage + ": " + e.Err.Error()
}

func (e *ImportError) Unwrap() error { return e.Err }
