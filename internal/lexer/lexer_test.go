package lexer

import "testing"

func TestNextTokenBasic(t *testing.T) {
	input := `function add(a: int32, b: int32): int32 { return a + b; }`

	expected := []TokenType{
		FUNCTION, IDENT, LPAREN, IDENT, COLON, IDENT, COMMA, IDENT, COLON, IDENT, RPAREN,
		COLON, IDENT, LBRACE, RETURN, IDENT, PLUS, IDENT, SEMICOLON, RBRACE, EOF,
	}

	l := New(input, "test.src")
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token %d: got %s, want %s (literal %q)", i, tok.Type, want, tok.Literal)
		}
	}
}

func TestNextTokenOperators(t *testing.T) {
	input := `a ** b == c != d && e || !f <= g >= h`
	expected := []TokenType{
		IDENT, STARSTAR, IDENT, EQ, IDENT, NEQ, IDENT, AND, IDENT, OR, NOT, IDENT,
		LTE, IDENT, GTE, IDENT, EOF,
	}
	l := New(input, "test.src")
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token %d: got %s, want %s", i, tok.Type, want)
		}
	}
}

func TestNextTokenArrow(t *testing.T) {
	l := New(`(x) => x + 1`, "test.src")
	want := []TokenType{LPAREN, IDENT, RPAREN, ARROW, IDENT, PLUS, NUMBER, EOF}
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != w {
			t.Fatalf("token %d: got %s, want %s", i, tok.Type, w)
		}
	}
}

func TestNextTokenStrings(t *testing.T) {
	l := New(`"hello" + 'world'`, "test.src")
	tok := l.NextToken()
	if tok.Type != STRING || tok.Literal != "hello" {
		t.Fatalf("got %v", tok)
	}
	l.NextToken() // +
	tok = l.NextToken()
	if tok.Type != STRING || tok.Literal != "world" {
		t.Fatalf("got %v", tok)
	}
}

func TestNextTokenTemplate(t *testing.T) {
	l := New("`hello ${name}!`", "test.src")
	tok := l.NextToken()
	if tok.Type != TEMPLATE {
		t.Fatalf("got %v", tok)
	}
	if tok.Literal != "hello ${name}!" {
		t.Fatalf("literal = %q", tok.Literal)
	}
}

func TestNextTokenComments(t *testing.T) {
	input := "let x = 1; // trailing comment\n/* block\ncomment */let y = 2;"
	l := New(input, "test.src")
	want := []TokenType{LET, IDENT, ASSIGN, NUMBER, SEMICOLON, LET, IDENT, ASSIGN, NUMBER, SEMICOLON, EOF}
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != w {
			t.Fatalf("token %d: got %s, want %s", i, tok.Type, w)
		}
	}
}

func TestNextTokenKeywords(t *testing.T) {
	input := "async function f() { await x; try {} catch (e) {} finally {} throw e; }"
	l := New(input, "test.src")
	want := []TokenType{
		ASYNC, FUNCTION, IDENT, LPAREN, RPAREN, LBRACE,
		AWAIT, IDENT, SEMICOLON,
		TRY, LBRACE, RBRACE, CATCH, LPAREN, IDENT, RPAREN, LBRACE, RBRACE,
		FINALLY, LBRACE, RBRACE,
		THROW, IDENT, SEMICOLON, RBRACE, EOF,
	}
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != w {
			t.Fatalf("token %d: got %s, want %s", i, tok.Type, w)
		}
	}
}

func TestLineColumnTracking(t *testing.T) {
	input := "let x = 1;\nlet y = 2;"
	l := New(input, "test.src")
	tok := l.NextToken() // let
	if tok.Line != 1 {
		t.Fatalf("expected line 1, got %d", tok.Line)
	}
	for tok.Type != SEMICOLON {
		tok = l.NextToken()
	}
	tok = l.NextToken() // let on line 2
	if tok.Line != 2 {
		t.Fatalf("expected line 2, got %d", tok.Line)
	}
}
