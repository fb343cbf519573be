package ledger

import (
	"errors"
	"fmt"
)

// ParseErrorKind identifies what part of a row or header failed to parse.
type ParseErrorKind string

const (
	// KindMissingColumn means a required column is absent from the header.
	KindMissingColumn ParseErrorKind = "missing column"
	// KindAmountFormat means an Amount cell is not a valid decimal number.
	KindAmountFormat ParseErrorKind = "amount format"
	// KindDateFormat means a Date cell does not match the expected layout.
	KindDateFormat ParseErrorKind = "date format"
)

// ParseError reports a malformed ledger file. Parsing is all-or-nothing:
// the first ParseError aborts the file and no partial ledger is produced.
type ParseError struct {
	Kind   ParseErrorKind
	Column string
	Value  string
	Row    int // 1-based data row, 0 for header-level errors
	Err    error
}

func (e *ParseError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("ledger: %s: column %q, row %d, value %q", e.Kind, e.Column, e.Row, e.Value)
	}
	return fmt.Sprintf("ledger: %s: column %q", e.Kind, e.Column)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// AsParseError unwraps err into a *ParseError when it is one.
func AsParseError(err error) (*ParseError, bool) {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr, true
	}
	return nil, false
}
