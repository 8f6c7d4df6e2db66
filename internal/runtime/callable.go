package runtime

import "github.com/yuhlearn/goslox/internal/ast"

// Function is the Callable implementation for a user-defined function: the
// declaration it was built from and the environment active at the point of
// declaration (its closure), per spec §4.2's call protocol.
//
// Calling it is the Interpreter's job (package interp), not this package's:
// the evaluator needs access to itself to execute the body, so Function
// only carries the data the call protocol needs and the Interpreter
// supplies the call through the per-value call field (see
// interp.callUserFunction).
type Function struct {
	Decl    *ast.Function
	Closure *Environment
	// call is installed by the Interpreter at construction time; it
	// performs the four-step call protocol of spec §4.2. Indirection here
	// avoids an import cycle between runtime and interp.
	call func(args []Value) (Value, error)
}

// NewFunction builds a closure-capturing function value. invoke implements
// the call protocol (new environment parented at closure, bind params,
// execute body, catch the Return signal) and is supplied by the Interpreter.
func NewFunction(decl *ast.Function, closure *Environment, invoke func(args []Value) (Value, error)) *Function {
	return &Function{Decl: decl, Closure: closure, call: invoke}
}

func (f *Function) Type() string                         { return "FUNCTION" }
func (f *Function) Arity() int                            { return len(f.Decl.Params) }
func (f *Function) Name() string                          { return f.Decl.Name.Lexeme }
func (f *Function) Invoke(args []Value) (Value, error)    { return f.call(args) }

// Native is the Callable implementation for a built-in function (spec
// §4.2): fixed arity, a Go closure invocation, and a display name.
type Native struct {
	ArityValue int
	NameValue  string
	Fn         func(args []Value) (Value, error)
}

func (n *Native) Type() string                         { return "NATIVE" }
func (n *Native) Arity() int                            { return n.ArityValue }
func (n *Native) Name() string                          { return n.NameValue }
func (n *Native) Invoke(args []Value) (Value, error)    { return n.Fn(args) }

// Invocable is implemented by every Callable Value; the Interpreter's Call
// expression handling dispatches through it uniformly for user-defined and
// native functions alike.
type Invocable interface {
	Callable
	Invoke(args []Value) (Value, error)
}
