// Package interp implements the tree-walking evaluator of spec §4.4: a
// visitor over Expr/Stmt that evaluates expressions and executes statements
// against the runtime Value/Environment model, including the call/return
// protocol for user-defined functions.
//
// Grounded on the teacher's internal/interp/evaluator/evaluator.go
// dispatch-by-type-switch visitor and its ControlFlow signal
// (internal/interp/runtime/execution_context.go): Return is modeled as a
// runtime.ControlFlow value threaded through statement execution rather than
// a Go panic, matching spec §9's "typed unwinding result... caught only at
// the call site" design note.
package interp

import (
	"fmt"
	"io"

	"github.com/yuhlearn/goslox/internal/ast"
	"github.com/yuhlearn/goslox/internal/runtime"
	"github.com/yuhlearn/goslox/internal/token"
)

// Tracer receives trace lines when --trace is enabled (SPEC_FULL.md §5): a
// "call" line for every call of any callable, plus "enter"/"leave" lines
// around each user-function body; nil disables tracing.
type Tracer func(format string, args ...any)

// Interpreter evaluates a resolved program. It carries the locals side
// table produced by the Resolver, the globals environment, and the current
// environment during execution (implicit via recursion), per spec §4.4.
type Interpreter struct {
	globals      *runtime.Environment
	env          *runtime.Environment
	locals       map[int]int
	out          io.Writer
	trace        Tracer
	callDepth    int
	maxCallDepth int // 0 means unlimited
}

// New creates an Interpreter writing `print` output to out. The mandated
// clock() native is registered into globals immediately (spec §4.2).
func New(out io.Writer, locals map[int]int) *Interpreter {
	return NewWithNatives(out, locals, nil)
}

// NewWithNatives is like New but restricts the registered native surface to
// allowedNatives (an empty slice means no restriction), backing the
// sidecar config's allowed_natives setting (SPEC_FULL.md §6).
func NewWithNatives(out io.Writer, locals map[int]int, allowedNatives []string) *Interpreter {
	globals := runtime.NewEnvironment(nil)
	runtime.RegisterNativesFiltered(globals, allowedNatives)
	return &Interpreter{globals: globals, env: globals, locals: locals, out: out}
}

// SetTracer installs a call tracer; pass nil to disable tracing.
func (i *Interpreter) SetTracer(t Tracer) { i.trace = t }

// SetLocals replaces the resolver side table, used by the REPL driver to
// re-resolve and install a fresh locals map for each line while keeping the
// same Interpreter (and therefore the same globals) across lines.
func (i *Interpreter) SetLocals(locals map[int]int) { i.locals = locals }

// SetMaxCallDepth bounds recursion depth for user-function calls (0 means
// unlimited), backing the sidecar config's max_call_depth setting
// (SPEC_FULL.md §6). Grounded on the teacher's CallStack.maxDepth guard
// (internal/interp/runtime/callstack.go).
func (i *Interpreter) SetMaxCallDepth(depth int) { i.maxCallDepth = depth }

// Globals returns the root environment, so a REPL driver can keep reusing
// it across lines (spec §6: "state accumulated in globals persists across
// lines even after a runtime error on a prior line").
func (i *Interpreter) Globals() *runtime.Environment { return i.globals }

// Interpret executes every statement of program in order against the
// current environment (normally globals). A runtime error aborts execution
// and is returned to the caller; per spec §7 this never happens via the
// Return signal, which the Resolver guarantees cannot escape to top level.
func (i *Interpreter) Interpret(program []ast.Stmt) error {
	for _, stmt := range program {
		cf, err := i.execute(stmt)
		if err != nil {
			return err
		}
		if cf.IsActive() {
			// Resolver rejects top-level `return`, so this is unreachable
			// for well-resolved programs; treated as a no-op rather than a
			// panic to keep the Interpreter total over any input.
			return nil
		}
	}
	return nil
}

// ---- Statement execution -------------------------------------------------

// execute runs a single statement, returning a ControlFlow signal (None
// unless a `return` unwound through it) and/or a runtime error.
func (i *Interpreter) execute(stmt ast.Stmt) (runtime.ControlFlow, error) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := i.eval(s.Expr)
		return runtime.None(), err

	case *ast.Print:
		v, err := i.eval(s.Expr)
		if err != nil {
			return runtime.None(), err
		}
		fmt.Fprintln(i.out, runtime.Stringify(v))
		return runtime.None(), nil

	case *ast.Var:
		var v runtime.Value = runtime.Nil{}
		if s.Init != nil {
			var err error
			v, err = i.eval(s.Init)
			if err != nil {
				return runtime.None(), err
			}
		}
		i.env.Define(s.Name.Lexeme, v)
		return runtime.None(), nil

	case *ast.Block:
		return i.executeBlock(s.Stmts, runtime.NewEnvironment(i.env))

	case *ast.If:
		cond, err := i.eval(s.Cond)
		if err != nil {
			return runtime.None(), err
		}
		if runtime.Truthy(cond) {
			return i.execute(s.Then)
		}
		if s.Else != nil {
			return i.execute(s.Else)
		}
		return runtime.None(), nil

	case *ast.While:
		for {
			cond, err := i.eval(s.Cond)
			if err != nil {
				return runtime.None(), err
			}
			if !runtime.Truthy(cond) {
				return runtime.None(), nil
			}
			cf, err := i.execute(s.Body)
			if err != nil || cf.IsActive() {
				return cf, err
			}
		}

	case *ast.Function:
		fn := i.makeFunction(s, i.env)
		i.env.Define(s.Name.Lexeme, fn)
		return runtime.None(), nil

	case *ast.Return:
		var v runtime.Value = runtime.Nil{}
		if s.Value != nil {
			var err error
			v, err = i.eval(s.Value)
			if err != nil {
				return runtime.None(), err
			}
		}
		return runtime.Return(v), nil

	case *ast.Class:
		return runtime.None(), runtime.NewRuntimeError(s.Pos().Line, "Classes are not supported.")

	default:
		return runtime.None(), runtime.NewRuntimeError(stmt.Pos().Line, "Unsupported statement.")
	}
}

// executeBlock is the single primitive shared by block execution and
// user-function calls (spec §4.4): it installs env as current for the
// duration and restores the prior environment on every exit path, including
// a Return unwind or a runtime error.
func (i *Interpreter) executeBlock(stmts []ast.Stmt, env *runtime.Environment) (runtime.ControlFlow, error) {
	previous := i.env
	i.env = env
	defer func() { i.env = previous }()

	for _, stmt := range stmts {
		cf, err := i.execute(stmt)
		if err != nil || cf.IsActive() {
			return cf, err
		}
	}
	return runtime.None(), nil
}

// ---- Expression evaluation ------------------------------------------------

func (i *Interpreter) eval(expr ast.Expr) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalValue(e), nil

	case *ast.Grouping:
		return i.eval(e.Inner)

	case *ast.Unary:
		return i.evalUnary(e)

	case *ast.Binary:
		return i.evalBinary(e)

	case *ast.Logical:
		return i.evalLogical(e)

	case *ast.Variable:
		return i.lookupVariable(e.Name.Lexeme, e, e.Name.Pos.Line)

	case *ast.Assign:
		return i.evalAssign(e)

	case *ast.Call:
		return i.evalCall(e)

	case *ast.Get, *ast.Set, *ast.This, *ast.Super:
		return nil, runtime.NewRuntimeError(expr.Pos().Line, "Unsupported expression.")

	default:
		return nil, runtime.NewRuntimeError(expr.Pos().Line, "Unsupported expression.")
	}
}

func literalValue(lit *ast.Literal) runtime.Value {
	switch lit.Kind {
	case ast.LitNil:
		return runtime.Nil{}
	case ast.LitBool:
		return runtime.Bool{Value: lit.Value.(bool)}
	case ast.LitNumber:
		return runtime.Number{Value: lit.Value.(float64)}
	case ast.LitString:
		return runtime.Str{Value: lit.Value.(string)}
	default:
		return runtime.Nil{}
	}
}

func (i *Interpreter) evalUnary(e *ast.Unary) (runtime.Value, error) {
	right, err := i.eval(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Kind {
	case token.MINUS:
		n, ok := right.(runtime.Number)
		if !ok {
			return nil, runtime.NewRuntimeError(e.Op.Pos.Line, "Operand must be a number.")
		}
		return runtime.Number{Value: -n.Value}, nil
	case token.BANG:
		return runtime.Bool{Value: !runtime.Truthy(right)}, nil
	default:
		return nil, runtime.NewRuntimeError(e.Op.Pos.Line, "Unsupported unary operator.")
	}
}

func (i *Interpreter) evalBinary(e *ast.Binary) (runtime.Value, error) {
	left, err := i.eval(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.eval(e.Right)
	if err != nil {
		return nil, err
	}
	return applyBinary(e.Op, left, right)
}

func (i *Interpreter) evalLogical(e *ast.Logical) (runtime.Value, error) {
	left, err := i.eval(e.Left)
	if err != nil {
		return nil, err
	}

	if e.Op.Kind == token.OR {
		if runtime.Truthy(left) {
			return left, nil
		}
	} else { // AND
		if !runtime.Truthy(left) {
			return left, nil
		}
	}
	return i.eval(e.Right)
}

func (i *Interpreter) evalAssign(e *ast.Assign) (runtime.Value, error) {
	value, err := i.eval(e.Value)
	if err != nil {
		return nil, err
	}

	if distance, ok := i.locals[e.ID()]; ok {
		i.env.AssignAt(distance, e.Name.Lexeme, value)
		return value, nil
	}
	if err := i.globals.Assign(e.Name.Lexeme, value, e.Name.Pos.Line); err != nil {
		return nil, toRuntimeError(err, e.Name.Pos.Line)
	}
	return value, nil
}

func (i *Interpreter) lookupVariable(name string, expr ast.Expr, line int) (runtime.Value, error) {
	if distance, ok := i.locals[expr.ID()]; ok {
		return i.env.GetAt(distance, name), nil
	}
	v, err := i.globals.Get(name, line)
	if err != nil {
		return nil, toRuntimeError(err, line)
	}
	return v, nil
}

func (i *Interpreter) evalCall(e *ast.Call) (runtime.Value, error) {
	callee, err := i.eval(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]runtime.Value, len(e.Args))
	for idx, a := range e.Args {
		v, err := i.eval(a)
		if err != nil {
			return nil, err
		}
		args[idx] = v
	}

	callable, ok := callee.(runtime.Invocable)
	if !ok {
		return nil, runtime.NewRuntimeError(e.Paren.Pos.Line, "Can only call functions and classes.")
	}
	if len(args) != callable.Arity() {
		return nil, runtime.NewRuntimeError(e.Paren.Pos.Line, "Expected %d arguments but got %d.", callable.Arity(), len(args))
	}

	if i.trace != nil {
		i.trace("call %s", callable.Name())
	}
	return callable.Invoke(args)
}

// toRuntimeError adapts an Environment lookup/assign failure into the
// public RuntimeError shape, keyed to the reference's own line rather than
// whatever line the failure was detected at deep in the parent chain.
func toRuntimeError(err error, line int) error {
	if uv, ok := err.(*runtime.UndefinedVariableError); ok {
		return runtime.NewRuntimeError(line, "Undefined variable '%s'.", uv.Name)
	}
	return err
}
