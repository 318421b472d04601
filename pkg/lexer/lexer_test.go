package lexer_test

import (
	"cae/pkg/lexer"
	"errors"
	"strings"
	"testing"
)

func TestPeekDoesNotConsume(t *testing.T) {
	l := lexer.NewLexer(strings.NewReader("ab"))

	if l.Peek() != 'a' || l.Peek() != 'a' {
		t.Fatal("Peek should return the same rune until Next")
	}
	if l.Next() != 'a' || l.Next() != 'b' {
		t.Fatal("unexpected runes from Next")
	}
	if l.Peek() != lexer.EOF || l.Next() != lexer.EOF {
		t.Fatal("expected EOF at end of input")
	}
	if l.Err() != nil {
		t.Errorf("unexpected error %v", l.Err())
	}
}

func TestPositions(t *testing.T) {
	l := lexer.NewLexer(strings.NewReader("é\nxy"))

	l.Next() // é (2 bytes)
	if pos := l.Position(); pos.Line != 1 || pos.Column != 2 || pos.Offset != 2 {
		t.Errorf("after é: unexpected %+v", pos)
	}

	l.Next() // newline
	l.Next() // x
	if pos := l.Position(); pos.Line != 2 || pos.Column != 2 || pos.Offset != 4 {
		t.Errorf("after x: unexpected %+v", pos)
	}
}

func TestSkipWhitespaceAndComments(t *testing.T) {
	input := "  # a comment ( ; \n\t# another\n  proc"
	l := lexer.NewLexer(strings.NewReader(input))

	l.SkipWhitespace()
	if word := l.ReadWhile(lexer.IsIdentifierChar); word != "proc" {
		t.Errorf("expected proc, got %q", word)
	}
}

func TestCommentAtEndOfInput(t *testing.T) {
	l := lexer.NewLexer(strings.NewReader("# no newline"))

	l.SkipWhitespace()
	if l.Peek() != lexer.EOF {
		t.Errorf("expected EOF, got %q", l.Peek())
	}
}

func TestInvalidUTF8(t *testing.T) {
	l := lexer.NewLexer(strings.NewReader("a\xffb"))

	if l.Next() != 'a' {
		t.Fatal("expected a")
	}
	if l.Next() != lexer.EOF {
		t.Error("expected decoding failure to end input")
	}
	if !errors.Is(l.Err(), lexer.ErrInvalidUTF8) {
		t.Errorf("expected ErrInvalidUTF8, got %v", l.Err())
	}
}

func TestCharacterClasses(t *testing.T) {
	tests := []struct {
		c           rune
		identifier  bool
		instruction bool
	}{
		{'a', true, true},
		{'Z', true, true},
		{'7', true, true},
		{'_', true, true},
		{'>', false, true},
		{'"', false, true},
		{'^', false, true},
		{'&', false, true},
		{'(', false, false},
		{'@', false, false},
		{'$', false, false},
		{';', false, false},
		{'é', false, false},
	}

	for _, test := range tests {
		if got := lexer.IsIdentifierChar(test.c); got != test.identifier {
			t.Errorf("IsIdentifierChar(%q): expected %v", test.c, test.identifier)
		}
		if got := lexer.IsInstructionChar(test.c); got != test.instruction {
			t.Errorf("IsInstructionChar(%q): expected %v", test.c, test.instruction)
		}
	}
}

func TestKeywords(t *testing.T) {
	if k, ok := lexer.IsKeyword("region"); !ok || k != lexer.REGION {
		t.Error("region should be a keyword")
	}
	if k, ok := lexer.IsKeyword("proc"); !ok || k != lexer.PROC {
		t.Error("proc should be a keyword")
	}
	if _, ok := lexer.IsKeyword("procedure"); ok {
		t.Error("procedure should not be a keyword")
	}
}
