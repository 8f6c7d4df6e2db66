// Package runtime holds the Value union, Environment, callable protocol,
// control-flow signal, and runtime error types that the Interpreter (package
// interp) evaluates against. Grounded on the teacher's
// internal/interp/value.go tagged-struct-per-variant Value interface.
package runtime

import (
	"fmt"
	"strconv"
)

// Value is the closed tagged union of runtime values spec §3 allows:
// Nil, Bool, Number, Str, Function, Native. No array/record/class/variant
// variants — those belong to DWScript's OOP/variant system, out of scope
// per spec Non-goals.
type Value interface {
	// Type returns the tag name ("NIL", "BOOL", "NUMBER", ...).
	Type() string
}

// Nil is the Language's absence-of-value.
type Nil struct{}

func (Nil) Type() string { return "NIL" }

// Bool is a boolean value.
type Bool struct{ Value bool }

func (Bool) Type() string { return "BOOL" }

// Number is an IEEE-754 double.
type Number struct{ Value float64 }

func (Number) Type() string { return "NUMBER" }

// Str is a string value.
type Str struct{ Value string }

func (Str) Type() string { return "STRING" }

// Callable is the capability every callable Value exposes (spec §4.2):
// arity, invocation, and a display name.
type Callable interface {
	Value
	Arity() int
	Name() string
}

// Truthy implements spec §4.2's truthiness rule: Nil and Bool(false) are
// falsy; every other value, including Number(0) and Str(""), is truthy.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case Nil:
		return false
	case Bool:
		return t.Value
	default:
		return true
	}
}

// Equal implements spec §4.2's equality rule: same tag and equal payload
// under the tag's native equality; cross-type pairs are always unequal.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av.Value == bv.Value
	case Number:
		bv, ok := b.(Number)
		return ok && av.Value == bv.Value
	case Str:
		bv, ok := b.(Str)
		return ok && av.Value == bv.Value
	default:
		// Callables compare by identity, same as the teacher's pointer-
		// equality fallback for reference types.
		return a == b
	}
}

// Stringify implements spec §4.2's print/stringification rules: integral
// numbers print without a trailing ".0..." the way the teacher's
// FloatValue.String trims trailing zeros via strconv's shortest-form
// formatting.
func Stringify(v Value) string {
	switch t := v.(type) {
	case Nil:
		return "nil"
	case Bool:
		if t.Value {
			return "true"
		}
		return "false"
	case Number:
		return strconv.FormatFloat(t.Value, 'g', -1, 64)
	case Str:
		return t.Value
	case *Native:
		return "<native fn>"
	case Callable:
		return fmt.Sprintf("<fn %s>", t.Name())
	default:
		return fmt.Sprintf("%v", v)
	}
}
