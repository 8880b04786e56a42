package errors

import (
	stderrors "errors"
	"io"
	"testing"
)

func TestErrValidationError(t *testing.T) {
	err := &ErrValidation{Field: "amount", Message: "must be positive"}
	if got, want := err.Error(), "amount: must be positive"; got != want {
		t.Fatalf("unexpected error string: got %q want %q", got, want)
	}
}

func TestErrNotFoundError(t *testing.T) {
	err := &ErrNotFound{Entity: "asset", ID: "42"}
	if got, want := err.Error(), "asset not found: 42"; got != want {
		t.Fatalf("unexpected error string: got %q want %q", got, want)
	}
}

func TestParseErrorUnwrap(t *testing.T) {
	err := &ParseError{Err: io.ErrUnexpectedEOF}
	if !stderrors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected ParseError to unwrap to io.ErrUnexpectedEOF")
	}
	var pe *ParseError
	if !stderrors.As(error(err), &pe) {
		t.Fatalf("expected errors.As to match *ParseError")
	}
}

func TestImportErrorMessage(t *testing.T) {
	err := &ImportError{Stage: "write assets", Err: io.EOF}
	if got, want := err.Error(), "write assets: EOF"; got != want {
		t.Fatalf("unexpected error string: got %q want %q", got, want)
	}
}
