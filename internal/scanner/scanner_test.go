package scanner

import (
	"testing"

	"github.com/yuhlearn/goslox/internal/diag"
	"github.com/yuhlearn/goslox/internal/token"
)

func scanAll(t *testing.T, src string) ([]token.Token, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink()
	return New(src, sink).ScanTokens(), sink
}

func TestScanPunctuatorsAndOperators(t *testing.T) {
	tokens, sink := scanAll(t, "(){},.-+;*!=<=>===")
	if sink.HadError() {
		t.Fatalf("unexpected errors: %s", sink.Format())
	}

	want := []token.Kind{
		token.LEFT_PAREN, token.RIGHT_PAREN, token.LEFT_BRACE, token.RIGHT_BRACE,
		token.COMMA, token.DOT, token.MINUS, token.PLUS, token.SEMICOLON, token.STAR,
		token.BANG_EQUAL, token.LESS_EQUAL, token.GREATER_EQUAL, token.EQUAL_EQUAL,
		token.ENDOF,
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(want), tokens)
	}
	for i, k := range want {
		if tokens[i].Kind != k {
			t.Errorf("token %d: got %s, want %s", i, tokens[i].Kind, k)
		}
	}
}

func TestScanStringLiteral(t *testing.T) {
	tokens, sink := scanAll(t, `"hello world"`)
	if sink.HadError() {
		t.Fatalf("unexpected errors: %s", sink.Format())
	}
	if tokens[0].Kind != token.STRING || tokens[0].Literal.Str != "hello world" {
		t.Errorf("got %+v, want STRING \"hello world\"", tokens[0])
	}
}

func TestScanUnterminatedString(t *testing.T) {
	_, sink := scanAll(t, `"oops`)
	if !sink.HadError() {
		t.Fatal("expected an unterminated-string error")
	}
}

func TestScanNumber(t *testing.T) {
	tokens, _ := scanAll(t, "123.45")
	if tokens[0].Kind != token.NUMBER || tokens[0].Literal.Num != 123.45 {
		t.Errorf("got %+v, want NUMBER 123.45", tokens[0])
	}
}

func TestScanKeywordsAndBooleans(t *testing.T) {
	tokens, _ := scanAll(t, "var x = true and false")
	kinds := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	want := []token.Kind{token.VAR, token.IDENTIFIER, token.EQUAL, token.BOOLEAN, token.AND, token.BOOLEAN, token.ENDOF}
	if len(kinds) != len(want) {
		t.Fatalf("got %v, want %v", kinds, want)
	}
	for i, k := range want {
		if kinds[i] != k {
			t.Errorf("token %d: got %s, want %s", i, kinds[i], k)
		}
	}
	if !tokens[3].Literal.Bool {
		t.Errorf("expected token 3 literal true, got %+v", tokens[3].Literal)
	}
	if tokens[5].Literal.Bool {
		t.Errorf("expected token 5 literal false, got %+v", tokens[5].Literal)
	}
}

func TestScanCommentsAndWhitespaceIgnored(t *testing.T) {
	tokens, sink := scanAll(t, "1 // a comment\n+ 2")
	if sink.HadError() {
		t.Fatalf("unexpected errors: %s", sink.Format())
	}
	if len(tokens) != 4 { // 1, +, 2, EOF
		t.Fatalf("got %d tokens, want 4: %v", len(tokens), tokens)
	}
}

func TestScanIllegalCharacter(t *testing.T) {
	_, sink := scanAll(t, "@")
	if !sink.HadError() {
		t.Fatal("expected an error for an illegal character")
	}
	entries := sink.Entries()
	if entries[0].Kind != diag.KindLine {
		t.Errorf("expected KindLine, got %v", entries[0].Kind)
	}
}
