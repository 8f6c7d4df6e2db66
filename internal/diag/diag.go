// Package diag is the diagnostic sink external collaborator fixed by spec
// §4.5: it collects compile-time (scan/parse/resolve) and runtime errors and
// formats them for stderr. Modeled on the teacher's internal/errors package
// (CompilerError: message + position + source context + optional file).
package diag

import (
	"fmt"
	"strings"

	"github.com/yuhlearn/goslox/internal/token"
)

// Kind distinguishes the three diagnostic shapes spec §4.5/§6 describes.
type Kind int

const (
	// KindLine is a compile-time error anchored to a bare line (no token
	// available yet, e.g. scanner errors on an illegal character).
	KindLine Kind = iota
	// KindToken is a compile-time error anchored to a token's location.
	KindToken
	// KindRuntime is a runtime error, reported without the "Error" word.
	KindRuntime
)

// Entry is a single reported diagnostic.
type Entry struct {
	Kind    Kind
	Line    int
	Where   string // "at '<lexeme>'" / "at end"; only set for KindToken
	Message string
}

// String renders the entry exactly as spec §6 mandates:
//
//	"[line N] Error: MSG"          compile-time, no token (KindLine)
//	"[line N] Error<WHERE>: MSG"   compile-time, anchored to a token (KindToken)
//	"[line N] MSG"                 runtime error (KindRuntime)
func (e Entry) String() string {
	switch e.Kind {
	case KindRuntime:
		return fmt.Sprintf("[line %d] %s", e.Line, e.Message)
	case KindToken:
		return fmt.Sprintf("[line %d] Error %s: %s", e.Line, e.Where, e.Message)
	default:
		return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
	}
}

// Sink accumulates diagnostics reported during scanning, parsing, and
// resolving, and offers the runtime_error constructor used by the
// Interpreter. The REPL gets a fresh Sink for every line (pipeline.Run
// creates one per call), so one bad line doesn't poison the next (spec §6).
type Sink struct {
	entries []Entry
}

// NewSink creates an empty diagnostic sink.
func NewSink() *Sink {
	return &Sink{}
}

// Error reports a diagnostic pinned to a bare source line (used by the
// scanner, which has no token yet to anchor to).
func (s *Sink) Error(line int, msg string) {
	s.entries = append(s.entries, Entry{Kind: KindLine, Line: line, Message: msg})
}

// ErrorAt reports a diagnostic anchored to a token, formatting its location
// the way spec §4.5 specifies: the token's lexeme, or "at end" for ENDOF.
func (s *Sink) ErrorAt(tok token.Token, msg string) {
	s.entries = append(s.entries, Entry{Kind: KindToken, Line: tok.Pos.Line, Where: tok.Where(), Message: msg})
}

// RuntimeError reports a runtime failure, which carries no "Error" word.
func (s *Sink) RuntimeError(line int, msg string) {
	s.entries = append(s.entries, Entry{Kind: KindRuntime, Line: line, Message: msg})
}

// HadError reports whether any diagnostic has been recorded.
func (s *Sink) HadError() bool {
	return len(s.entries) > 0
}

// Entries returns the accumulated diagnostics in report order.
func (s *Sink) Entries() []Entry {
	return s.entries
}

// Reset clears accumulated diagnostics.
func (s *Sink) Reset() {
	s.entries = nil
}

// Format renders every accumulated diagnostic, one per line.
func (s *Sink) Format() string {
	var b strings.Builder
	for _, e := range s.entries {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}
