package lexer

import (
	"bufio"
	"errors"
	"io"
	"unicode/utf8"
)

// EOF is returned by Peek and Next once the input is exhausted.
const EOF rune = -1

// ErrInvalidUTF8 is reported when the input contains a byte sequence that is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("source is not valid utf-8")

type Lexer struct {
	input    *bufio.Reader // decoded one rune at a time
	line     int           // current line number for error reporting
	column   int           // current column number for error reporting
	offset   int           // byte offset of the next rune
	buffered bool          // whether peeked holds a lookahead rune
	peeked   rune          // single rune of lookahead
	peekSize int           // encoded width of peeked
	err      error         // first read error, sticky
}

// Create a new lexer reading UTF-8 text from r
func NewLexer(r io.Reader) *Lexer {
	return &Lexer{
		input:  bufio.NewReader(r),
		line:   1,
		column: 1,
	}
}

// Peek returns the next rune without consuming it, or EOF
func (l *Lexer) Peek() rune {
	if !l.buffered {
		l.peeked, l.peekSize = l.read()
		l.buffered = true
	}

	return l.peeked
}

// Next consumes and returns the next rune, or EOF
func (l *Lexer) Next() rune {
	c := l.Peek()
	if c == EOF {
		return EOF
	}

	l.buffered = false
	l.offset += l.peekSize
	if c == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}

	return c
}

// Err returns the first read or decoding error encountered, if any
func (l *Lexer) Err() error {
	return l.err
}

// Position returns the position of the next rune
func (l *Lexer) Position() Position {
	return NewPosition(l.line, l.column, l.offset)
}

// SkipWhitespace skips whitespace and `#` comments running to end of line
func (l *Lexer) SkipWhitespace() {
	for {
		c := l.Peek()
		switch {
		case IsWhitespace(c):
			l.Next()
		case c == COMMENT:
			for c != EOF && c != '\n' {
				c = l.Next()
			}
		default:
			return
		}
	}
}

// ReadWhile consumes runes as long as accept holds and returns them
func (l *Lexer) ReadWhile(accept func(rune) bool) string {
	var buf []rune
	for c := l.Peek(); c != EOF && accept(c); c = l.Peek() {
		buf = append(buf, l.Next())
	}

	return string(buf)
}

// read decodes the next rune from the underlying reader
func (l *Lexer) read() (rune, int) {
	if l.err != nil {
		return EOF, 0
	}

	c, size, err := l.input.ReadRune()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			l.err = err
		}
		return EOF, 0
	}

	if c == utf8.RuneError && size == 1 {
		l.err = ErrInvalidUTF8
		return EOF, 0
	}

	return c, size
}
