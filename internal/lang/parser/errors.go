package parser

import (
	"fmt"

	"github.com/aledsdavies/whilesynth/internal/lang/token"
)

// ErrorKind categorizes a ParseError, mirroring spec §7's ParseError
// row: any lexer/parser failure to produce a unique parse surfaces to
// the caller as a single "invalid program" signal, but keeping the
// kind around lets callers and tests distinguish causes without
// string-matching the message.
type ErrorKind int

const (
	ErrUnexpectedToken ErrorKind = iota
	ErrExpectedToken
	ErrUnexpectedEOF
	ErrTrailingInput
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnexpectedToken:
		return "unexpected token"
	case ErrExpectedToken:
		return "expected token"
	case ErrUnexpectedEOF:
		return "unexpected end of input"
	case ErrTrailingInput:
		return "trailing input after program"
	default:
		return "parse error"
	}
}

// ParseError is returned whenever the parser cannot produce the
// unique parse the grammar guarantees for valid input.
type ParseError struct {
	Kind  ErrorKind
	Got   token.Token
	Want  string // human description of what was expected, e.g. "';' or end of input"
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d: got %q, want %s",
		e.Kind, e.Got.Pos.Line, e.Got.Pos.Column, e.Got.Value, e.Want)
}
