package diag

import (
	"testing"

	"github.com/yuhlearn/goslox/internal/token"
)

func TestErrorFormatHasNoTokenLocation(t *testing.T) {
	s := NewSink()
	s.Error(3, "Unexpected character.")
	want := "[line 3] Error: Unexpected character.\n"
	if got := s.Format(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestErrorAtFormatsTokenLocation(t *testing.T) {
	s := NewSink()
	s.ErrorAt(token.Token{Kind: token.IDENTIFIER, Lexeme: "x", Pos: token.Position{Line: 5}}, "Expect ';'.")
	want := "[line 5] Error at 'x': Expect ';'.\n"
	if got := s.Format(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestErrorAtEndFormat(t *testing.T) {
	s := NewSink()
	s.ErrorAt(token.Token{Kind: token.ENDOF, Pos: token.Position{Line: 2}}, "Expect expression.")
	want := "[line 2] Error at end: Expect expression.\n"
	if got := s.Format(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRuntimeErrorFormatOmitsErrorWord(t *testing.T) {
	s := NewSink()
	s.RuntimeError(9, "Undefined variable 'x'.")
	want := "[line 9] Undefined variable 'x'.\n"
	if got := s.Format(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResetClearsEntries(t *testing.T) {
	s := NewSink()
	s.Error(1, "boom")
	if !s.HadError() {
		t.Fatal("expected HadError after Error()")
	}
	s.Reset()
	if s.HadError() {
		t.Error("expected HadError() to be false after Reset()")
	}
	if len(s.Entries()) != 0 {
		t.Error("expected Entries() to be empty after Reset()")
	}
}
