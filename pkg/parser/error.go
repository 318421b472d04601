package parser

import (
	"cae/pkg/color"
	"cae/pkg/lexer"
	"fmt"
)

// Kind classifies a load-time failure. Every Kind is itself an error so callers
// can match with errors.Is against the exported values.
type Kind int

const (
	ErrMissingFile Kind = iota + 1
	ErrBadData
	ErrMalformedLine
	ErrMalformedRegionDeclaration
	ErrMalformedProcedureDeclaration
	ErrMalformedInstruction
	ErrMalformedNumber
	ErrMissingKeyword
	ErrMissingIdentifier
	ErrReservedWord
	ErrDuplicateProcedure
	ErrDuplicateRegion
	ErrUndefinedReference
	ErrUnmatchedBracket
)

var kindMessages = map[Kind]string{
	ErrMissingFile:                   "Missing source file",
	ErrBadData:                       "Unreadable source data",
	ErrMalformedLine:                 "Malformed declaration",
	ErrMalformedRegionDeclaration:    "Malformed region declaration",
	ErrMalformedProcedureDeclaration: "Malformed procedure declaration",
	ErrMalformedInstruction:          "Malformed instruction",
	ErrMalformedNumber:               "Malformed number",
	ErrMissingKeyword:                "Missing keyword",
	ErrMissingIdentifier:             "Missing identifier",
	ErrReservedWord:                  "Cannot use reserved keyword as identifier",
	ErrDuplicateProcedure:            "Duplicate procedure name",
	ErrDuplicateRegion:               "Duplicate region name",
	ErrUndefinedReference:            "Undefined reference",
	ErrUnmatchedBracket:              "Unmatched loop bracket",
}

func (k Kind) Error() string {
	if msg, ok := kindMessages[k]; ok {
		return msg
	}

	return fmt.Sprintf("parse error %d", int(k))
}

// Error is a load-time failure anchored to a position in the source.
type Error struct {
	Kind   Kind
	Pos    lexer.Position
	Detail string // offending text, name or expected symbol; may be empty
	Err    error  // underlying cause (I/O), may be nil
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Detail != "" {
		msg += " `" + e.Detail + "`"
	}
	if e.Pos.Line > 0 {
		msg += " at " + e.Pos.String()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}

	return []error{e.Kind}
}

// Pretty renders the error with terminal colors for diagnostics
func (e *Error) Pretty() string {
	msg := color.RedText(e.Kind.Error())
	if e.Detail != "" {
		msg += " `" + color.BlueText(e.Detail) + "`"
	}
	if e.Pos.Line > 0 {
		msg += " at " + color.YellowText(e.Pos.String())
	}
	if e.Err != nil {
		msg += ": " + color.GrayText(e.Err.Error())
	}

	return msg
}

// newError builds an Error at the given position
func newError(kind Kind, pos lexer.Position, detail string) *Error {
	return &Error{Kind: kind, Pos: pos, Detail: detail}
}
