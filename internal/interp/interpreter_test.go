package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yuhlearn/goslox/internal/diag"
	"github.com/yuhlearn/goslox/internal/parser"
	"github.com/yuhlearn/goslox/internal/resolver"
	"github.com/yuhlearn/goslox/internal/scanner"
)

// run scans, parses, resolves, and interprets src, returning everything
// printed via `print` plus any compile or runtime error.
func run(t *testing.T, src string) (string, *diag.Sink, error) {
	t.Helper()
	sink := diag.NewSink()
	tokens := scanner.New(src, sink).ScanTokens()
	program := parser.New(tokens, sink).Parse()
	r := resolver.New(sink)
	r.Resolve(program)
	if sink.HadError() {
		return "", sink, nil
	}

	var out bytes.Buffer
	it := New(&out, r.Locals())
	err := it.Interpret(program)
	return out.String(), sink, err
}

func TestArithmeticAndPrint(t *testing.T) {
	out, sink, err := run(t, `print 1 + 2 * 3;`)
	if sink.HadError() || err != nil {
		t.Fatalf("unexpected failure: sink=%v err=%v", sink.Format(), err)
	}
	if strings.TrimSpace(out) != "7" {
		t.Errorf("got %q, want \"7\"", out)
	}
}

func TestStringConcatenation(t *testing.T) {
	out, sink, err := run(t, `print "foo" + "bar";`)
	if sink.HadError() || err != nil {
		t.Fatalf("unexpected failure: sink=%v err=%v", sink.Format(), err)
	}
	if strings.TrimSpace(out) != "foobar" {
		t.Errorf("got %q, want \"foobar\"", out)
	}
}

func TestMixedPlusOperandsIsRuntimeError(t *testing.T) {
	_, sink, err := run(t, `print 1 + "two";`)
	if err == nil {
		t.Fatal("expected a runtime error for mismatched + operands")
	}
	_ = sink
}

func TestBlockScopingShadowsOuterVariable(t *testing.T) {
	out, sink, err := run(t, `
		var x = "outer";
		{
			var x = "inner";
			print x;
		}
		print x;
	`)
	if sink.HadError() || err != nil {
		t.Fatalf("unexpected failure: sink=%v err=%v", sink.Format(), err)
	}
	want := "inner\nouter\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestWhileLoop(t *testing.T) {
	out, sink, err := run(t, `
		var i = 0;
		while (i < 3) {
			print i;
			i = i + 1;
		}
	`)
	if sink.HadError() || err != nil {
		t.Fatalf("unexpected failure: sink=%v err=%v", sink.Format(), err)
	}
	want := "0\n1\n2\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestForLoopDesugaring(t *testing.T) {
	out, sink, err := run(t, `
		for (var i = 0; i < 3; i = i + 1) {
			print i;
		}
	`)
	if sink.HadError() || err != nil {
		t.Fatalf("unexpected failure: sink=%v err=%v", sink.Format(), err)
	}
	want := "0\n1\n2\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestFunctionCallAndReturn(t *testing.T) {
	out, sink, err := run(t, `
		fun add(a, b) {
			return a + b;
		}
		print add(1, 2);
	`)
	if sink.HadError() || err != nil {
		t.Fatalf("unexpected failure: sink=%v err=%v", sink.Format(), err)
	}
	if strings.TrimSpace(out) != "3" {
		t.Errorf("got %q, want \"3\"", out)
	}
}

func TestFunctionImplicitlyReturnsNil(t *testing.T) {
	out, sink, err := run(t, `
		fun noop() {}
		print noop();
	`)
	if sink.HadError() || err != nil {
		t.Fatalf("unexpected failure: sink=%v err=%v", sink.Format(), err)
	}
	if strings.TrimSpace(out) != "nil" {
		t.Errorf("got %q, want \"nil\"", out)
	}
}

func TestClosureCapturesDeclarationEnvironment(t *testing.T) {
	out, sink, err := run(t, `
		fun makeCounter() {
			var count = 0;
			fun increment() {
				count = count + 1;
				return count;
			}
			return increment;
		}
		var counter = makeCounter();
		print counter();
		print counter();
		print counter();
	`)
	if sink.HadError() || err != nil {
		t.Fatalf("unexpected failure: sink=%v err=%v", sink.Format(), err)
	}
	want := "1\n2\n3\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestRecursion(t *testing.T) {
	out, sink, err := run(t, `
		fun fib(n) {
			if (n < 2) return n;
			return fib(n - 1) + fib(n - 2);
		}
		print fib(10);
	`)
	if sink.HadError() || err != nil {
		t.Fatalf("unexpected failure: sink=%v err=%v", sink.Format(), err)
	}
	if strings.TrimSpace(out) != "55" {
		t.Errorf("got %q, want \"55\"", out)
	}
}

func TestCallWrongArityIsRuntimeError(t *testing.T) {
	_, _, err := run(t, `
		fun f(a, b) { return a + b; }
		f(1);
	`)
	if err == nil {
		t.Fatal("expected an arity mismatch runtime error")
	}
	if !strings.Contains(err.Error(), "Expected 2 arguments but got 1") {
		t.Errorf("got %q, want an arity-mismatch message", err.Error())
	}
}

func TestCallingNonCallableIsRuntimeError(t *testing.T) {
	_, _, err := run(t, `
		var x = 1;
		x();
	`)
	if err == nil {
		t.Fatal("expected a 'Can only call functions and classes.' runtime error")
	}
}

func TestUndefinedVariableIsRuntimeError(t *testing.T) {
	_, _, err := run(t, `print missing;`)
	if err == nil {
		t.Fatal("expected an undefined-variable runtime error")
	}
	if !strings.Contains(err.Error(), "Undefined variable 'missing'") {
		t.Errorf("got %q", err.Error())
	}
}

func TestLogicalOperatorsShortCircuitAndReturnOperand(t *testing.T) {
	out, sink, err := run(t, `
		print nil or "fallback";
		print "truthy" and "second";
		print false and "unreached";
	`)
	if sink.HadError() || err != nil {
		t.Fatalf("unexpected failure: sink=%v err=%v", sink.Format(), err)
	}
	want := "fallback\nsecond\nfalse\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestStackOverflowIsGuarded(t *testing.T) {
	sink := diag.NewSink()
	tokens := scanner.New(`
		fun recurse() { return recurse(); }
		recurse();
	`, sink).ScanTokens()
	program := parser.New(tokens, sink).Parse()
	r := resolver.New(sink)
	r.Resolve(program)
	if sink.HadError() {
		t.Fatalf("unexpected compile error: %s", sink.Format())
	}

	var out bytes.Buffer
	it := New(&out, r.Locals())
	it.SetMaxCallDepth(100)
	err := it.Interpret(program)
	if err == nil {
		t.Fatal("expected a stack-overflow runtime error")
	}
	if !strings.Contains(err.Error(), "Stack overflow") {
		t.Errorf("got %q, want a stack-overflow message", err.Error())
	}
}
