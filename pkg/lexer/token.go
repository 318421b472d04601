package lexer

import "unicode"

type Keyword int

const (
	NONE   Keyword = iota // not a keyword
	REGION                // region
	PROC                  // proc
)

var Keywords = map[string]Keyword{
	"region": REGION,
	"proc":   PROC,
}

// String returns a string representation of the Keyword
func (k Keyword) String() string {
	switch k {
	case REGION:
		return "region"
	case PROC:
		return "proc"
	default:
		return "none"
	}
}

// IsKeyword checks if the given identifier is a reserved word and returns it if it is
func IsKeyword(identifier string) (Keyword, bool) {
	k, ok := Keywords[identifier]
	return k, ok
}

// Single-character instruction tokens
const (
	RIGHT      = '>'
	LEFT       = '<'
	RESET      = '~'
	PLUS       = '+'
	MINUS      = '-'
	LOOP_START = '['
	LOOP_END   = ']'
	READ       = ','
	WRITE      = '.'
	QUOTE      = '"'
	SEND       = '^'
	RECEIVE    = '&'

	AT        = '@'
	BACK_REF  = '$'
	LPAREN    = '('
	RPAREN    = ')'
	COLON     = ':'
	SEMICOLON = ';'
	LSBRACE   = '['
	RSBRACE   = ']'
	COMMENT   = '#'
)

// IsIdentifierChar reports whether c may appear in an identifier (ASCII letters, digits, underscore)
func IsIdentifierChar(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || IsDigit(c)
}

// IsInstructionChar reports whether c starts an instruction token
func IsInstructionChar(c rune) bool {
	if IsIdentifierChar(c) {
		return true
	}

	switch c {
	case RIGHT, LEFT, RESET, PLUS, MINUS, LOOP_START, LOOP_END, READ, WRITE, QUOTE, SEND, RECEIVE:
		return true
	default:
		return false
	}
}

// IsDigit checks if a rune is an ASCII decimal digit
func IsDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

// IsHexDigit checks if a rune is an ASCII hexadecimal digit
func IsHexDigit(c rune) bool {
	return IsDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func IsWhitespace(c rune) bool {
	return c != EOF && unicode.IsSpace(c)
}
