package replbuf

import (
	"bytes"
	"strings"
	"testing"
)

func TestReadLineEchoesPromptAndReturnsText(t *testing.T) {
	in := strings.NewReader("print 1;\n")
	var prompt bytes.Buffer
	r := New(in, &prompt)

	line, ok := r.ReadLine()
	if !ok {
		t.Fatal("expected ok=true for the first line")
	}
	if line != "print 1;" {
		t.Errorf("got %q, want %q", line, "print 1;")
	}
	if prompt.String() != "> " {
		t.Errorf("got prompt %q, want %q", prompt.String(), "> ")
	}
}

func TestReadLineReturnsFalseAtEOF(t *testing.T) {
	in := strings.NewReader("")
	r := New(in, &bytes.Buffer{})

	_, ok := r.ReadLine()
	if ok {
		t.Fatal("expected ok=false at EOF")
	}
}

func TestReadLineMultipleLines(t *testing.T) {
	in := strings.NewReader("one\ntwo\n")
	r := New(in, &bytes.Buffer{})

	first, ok := r.ReadLine()
	if !ok || first != "one" {
		t.Fatalf("got (%q, %v), want (\"one\", true)", first, ok)
	}
	second, ok := r.ReadLine()
	if !ok || second != "two" {
		t.Fatalf("got (%q, %v), want (\"two\", true)", second, ok)
	}
	_, ok = r.ReadLine()
	if ok {
		t.Fatal("expected ok=false after both lines consumed")
	}
}
