package parser

import (
	"cae/pkg/lexer"
	"cae/pkg/region"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

type Parser struct {
	lexer  *lexer.Lexer // character source
	result *Result      // declarations collected so far
}

// NewParser creates a new parser instance
func NewParser(l *lexer.Lexer) *Parser {
	return &Parser{
		lexer:  l,
		result: &Result{},
	}
}

// Parse reads a whole program from r and validates it
func Parse(r io.Reader) (*Result, error) {
	return NewParser(lexer.NewLexer(r)).Parse()
}

// ParseFile opens and parses the source file at path
func ParseFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Kind: ErrMissingFile, Detail: path, Err: err}
	}
	defer f.Close()

	return Parse(f)
}

// Parse consumes the whole input. No partial result is returned on failure.
func (p *Parser) Parse() (*Result, error) {
	if err := p.declarations(); err != nil {
		return nil, p.sourceError(err)
	}

	if err := p.sourceError(nil); err != nil {
		return nil, err
	}

	if err := Validate(p.result); err != nil {
		return nil, err
	}

	return p.result, nil
}

// sourceError prefers a decoding failure over whatever it caused downstream
func (p *Parser) sourceError(err error) error {
	if lerr := p.lexer.Err(); lerr != nil {
		return &Error{Kind: ErrBadData, Pos: p.lexer.Position(), Err: lerr}
	}

	return err
}

// declarations parses top-level region and procedure declarations until end of input
func (p *Parser) declarations() error {
	for {
		p.lexer.SkipWhitespace()
		pos := p.lexer.Position()

		c := p.lexer.Peek()
		if c == lexer.EOF {
			return nil
		}
		if !lexer.IsIdentifierChar(c) {
			return newError(ErrMalformedLine, pos, string(c))
		}

		word := p.lexer.ReadWhile(lexer.IsIdentifierChar)
		keyword, _ := lexer.IsKeyword(word)

		var err error
		switch keyword {
		case lexer.REGION:
			err = p.region(pos)
		case lexer.PROC:
			err = p.procedure(pos)
		default:
			err = newError(ErrMalformedLine, pos, word)
		}
		if err != nil {
			return err
		}
	}
}

// region parses `<name> [ <size> ] ;` after the region keyword
func (p *Parser) region(pos lexer.Position) error {
	p.lexer.SkipWhitespace()
	name, err := p.identifier()
	if err != nil {
		return err
	}

	p.lexer.SkipWhitespace()
	if err := p.expect(lexer.LSBRACE, ErrMissingKeyword); err != nil {
		return err
	}

	p.lexer.SkipWhitespace()
	size, err := p.size()
	if err != nil {
		return err
	}

	p.lexer.SkipWhitespace()
	if err := p.expect(lexer.RSBRACE, ErrMissingKeyword); err != nil {
		return err
	}

	p.lexer.SkipWhitespace()
	if err := p.expect(lexer.SEMICOLON, ErrMalformedRegionDeclaration); err != nil {
		return err
	}

	p.result.Regions = append(p.result.Regions, ParsedRegion{Name: name, Size: size, Pos: pos})
	return nil
}

// procedure parses `<name> : <instructions> ;` after the proc keyword, hoisting
// parenthesized blocks into anonymous procedures
func (p *Parser) procedure(pos lexer.Position) error {
	p.lexer.SkipWhitespace()
	name, err := p.identifier()
	if err != nil {
		return err
	}

	p.lexer.SkipWhitespace()
	if err := p.expect(lexer.COLON, ErrMissingKeyword); err != nil {
		return err
	}

	procs, err := p.sequence(name, pos, false)
	if err != nil {
		return err
	}

	if err := p.expect(lexer.SEMICOLON, ErrMalformedProcedureDeclaration); err != nil {
		return err
	}

	p.result.Procedures = append(p.result.Procedures, procs...)
	return nil
}

// sequence parses instructions up to (not including) `)`, `;` or end of input.
// The returned slice holds hoisted blocks first, in source order, followed by
// the procedure named name itself.
func (p *Parser) sequence(name string, pos lexer.Position, anonymous bool) ([]ParsedProcedure, error) {
	var (
		hoisted      []ParsedProcedure
		instructions []ParsedInstruction
		blocks       int
	)

	for {
		p.lexer.SkipWhitespace()
		at := p.lexer.Position()
		c := p.lexer.Peek()

		switch {
		case c == lexer.LPAREN:
			p.lexer.Next()
			blocks++
			block := anonymousName(name, blocks)

			nested, err := p.sequence(block, at, true)
			if err != nil {
				return nil, err
			}
			if err := p.expect(lexer.RPAREN, ErrMalformedProcedureDeclaration); err != nil {
				return nil, err
			}

			target, err := p.target()
			if err != nil {
				return nil, err
			}

			hoisted = append(hoisted, nested...)
			instructions = append(instructions, ParsedInstruction{Op: OpCall, Procedure: block, Region: target, Pos: at})

		case lexer.IsInstructionChar(c):
			in, err := p.instruction()
			if err != nil {
				return nil, err
			}
			instructions = append(instructions, in)

		case c == lexer.RPAREN, c == lexer.SEMICOLON, c == lexer.EOF:
			return append(hoisted, ParsedProcedure{
				Name:         name,
				Instructions: instructions,
				Anonymous:    anonymous,
				Pos:          pos,
			}), nil

		default:
			return nil, newError(ErrMalformedInstruction, at, string(c))
		}
	}
}

// anonymousName names the n-th parenthesized block directly inside base
func anonymousName(base string, n int) string {
	return fmt.Sprintf("%s-anon-%d", base, n)
}

var simpleOps = map[rune]Operation{
	lexer.RIGHT:      OpRight,
	lexer.LEFT:       OpLeft,
	lexer.RESET:      OpReset,
	lexer.PLUS:       OpPlus,
	lexer.MINUS:      OpMinus,
	lexer.LOOP_START: OpLoopStart,
	lexer.LOOP_END:   OpLoopEnd,
	lexer.READ:       OpRead,
	lexer.WRITE:      OpWrite,
}

// instruction parses a single instruction token
func (p *Parser) instruction() (ParsedInstruction, error) {
	pos := p.lexer.Position()
	c := p.lexer.Peek()

	// identifiers are procedure calls
	if lexer.IsIdentifierChar(c) {
		name, err := p.identifier()
		if err != nil {
			return ParsedInstruction{}, err
		}
		target, err := p.target()
		if err != nil {
			return ParsedInstruction{}, err
		}
		return ParsedInstruction{Op: OpCall, Procedure: name, Region: target, Pos: pos}, nil
	}

	p.lexer.Next()
	if op, ok := simpleOps[c]; ok {
		return ParsedInstruction{Op: op, Pos: pos}, nil
	}

	switch c {
	case lexer.QUOTE:
		value, err := p.hexByte(pos)
		if err != nil {
			return ParsedInstruction{}, err
		}
		return ParsedInstruction{Op: OpQuote, Value: value, Pos: pos}, nil

	case lexer.SEND, lexer.RECEIVE:
		ref, err := p.reference()
		if err != nil {
			return ParsedInstruction{}, err
		}
		op := OpSend
		if c == lexer.RECEIVE {
			op = OpReceive
		}
		return ParsedInstruction{Op: op, Region: ref, Pos: pos}, nil
	}

	return ParsedInstruction{}, newError(ErrMalformedInstruction, pos, string(c))
}

// hexByte reads the two hexadecimal digits following a quote
func (p *Parser) hexByte(pos lexer.Position) (byte, error) {
	digits := make([]rune, 0, 2)
	for range 2 {
		c := p.lexer.Peek()
		if !lexer.IsHexDigit(c) {
			return 0, newError(ErrMalformedInstruction, pos, string(lexer.QUOTE)+string(digits))
		}
		digits = append(digits, p.lexer.Next())
	}

	value, err := strconv.ParseUint(string(digits), 16, 8)
	if err != nil {
		return 0, newError(ErrMalformedInstruction, pos, string(lexer.QUOTE)+string(digits))
	}

	return byte(value), nil
}

// target parses an optional `@<ref>` suffix of a call
func (p *Parser) target() (Ref, error) {
	p.lexer.SkipWhitespace()
	if p.lexer.Peek() != lexer.AT {
		return Ref{Kind: RefSame}, nil
	}

	p.lexer.Next()
	p.lexer.SkipWhitespace()
	return p.reference()
}

// reference parses a region reference: an identifier or `$`
func (p *Parser) reference() (Ref, error) {
	if p.lexer.Peek() == lexer.BACK_REF {
		p.lexer.Next()
		return Dynamic(), nil
	}

	name, err := p.identifier()
	if err != nil {
		return Ref{}, err
	}

	return Named(name), nil
}

// identifier reads a non-empty identifier that is not a reserved word
func (p *Parser) identifier() (string, error) {
	pos := p.lexer.Position()
	name := p.lexer.ReadWhile(lexer.IsIdentifierChar)
	if name == "" {
		return "", newError(ErrMissingIdentifier, pos, describe(p.lexer.Peek()))
	}

	if _, reserved := lexer.IsKeyword(name); reserved {
		return "", newError(ErrReservedWord, pos, name)
	}

	return name, nil
}

// size reads a decimal region length in 1..region.MaxSize
func (p *Parser) size() (int, error) {
	pos := p.lexer.Position()
	digits := p.lexer.ReadWhile(lexer.IsDigit)
	if digits == "" {
		return 0, newError(ErrMalformedNumber, pos, describe(p.lexer.Peek()))
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return 0, &Error{Kind: ErrMalformedNumber, Pos: pos, Detail: digits, Err: err}
	}

	if n < 1 || n > region.MaxSize {
		return 0, newError(ErrMalformedNumber, pos, digits)
	}

	return n, nil
}

// expect consumes c or fails with kind
func (p *Parser) expect(c rune, kind Kind) error {
	pos := p.lexer.Position()
	if got := p.lexer.Peek(); got != c {
		return newError(kind, pos, fmt.Sprintf("expected %q, found %s", c, describe(got)))
	}

	p.lexer.Next()
	return nil
}

// describe renders a lookahead rune for error details
func describe(c rune) string {
	if c == lexer.EOF {
		return "end of input"
	}

	return strconv.QuoteRune(c)
}
