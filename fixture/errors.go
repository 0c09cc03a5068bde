package fixture

import (
	"errors"
	"fmt"
)

var errNoMatch = errors.New("line does not match")

// ParseErrorKind classifies a ParseError.
type ParseErrorKind int

const (
	// BadAddress means the line after a symbol line is not an address line.
	BadAddress ParseErrorKind = iota
	// BadExpected means the line after an address line is not an expected line.
	BadExpected
	// BadArray means the expected array could not be decoded.
	BadArray
	// UnexpectedEOF means the input ended inside a stanza.
	UnexpectedEOF
)

func (k ParseErrorKind) String() string {
	switch k {
	case BadAddress:
		return "malformed address line"
	case BadExpected:
		return "malformed expected line"
	case BadArray:
		return "malformed expected array"
	case UnexpectedEOF:
		return "unexpected end of input inside stanza"
	default:
		return "unknown parse error"
	}
}

// ParseError reports input that breaks the stanza grammar.
type ParseError struct {
	Line int
	Kind ParseErrorKind
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("line %d: %s", e.Line, e.Kind)
	if e.Text != "" {
		msg += fmt.Sprintf(": %q", e.Text)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
