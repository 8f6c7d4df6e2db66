// Package resolver implements the one-pass static variable-resolution
// analyzer of spec §4.3: for every variable-referencing expression, it
// computes the number of enclosing lexical scopes between the reference and
// its binding, recorded in a Locals side table keyed by AST node id.
//
// Grounded on the teacher's internal/semantic scope-stack-of-maps shape
// (symbol_table.go), simplified from DWScript's compile-time type table down
// to the spec's name->initialized-bool scopes, and on its FunctionType
// save/restore discipline around nested function bodies
// (analyze_functions.go) for diagnosing top-level return.
package resolver

import (
	"github.com/yuhlearn/goslox/internal/ast"
	"github.com/yuhlearn/goslox/internal/diag"
	"github.com/yuhlearn/goslox/internal/token"
)

// functionType tracks whether resolution is currently inside a function
// body, the single state machine this pass needs (spec §4.3).
type functionType int

const (
	ftNone functionType = iota
	ftFunction
)

type scope map[string]bool

// Resolver walks a program once and produces the Locals table the
// Interpreter uses for depth-indexed variable lookup.
type Resolver struct {
	sink    *diag.Sink
	scopes  []scope
	current functionType
	locals  map[int]int
}

// New creates a Resolver reporting errors to sink.
func New(sink *diag.Sink) *Resolver {
	return &Resolver{sink: sink, locals: make(map[int]int)}
}

// Locals returns the expr-id -> depth table built by Resolve. Absence means
// the binding is global (spec §3).
func (r *Resolver) Locals() map[int]int {
	return r.locals
}

// Resolve resolves every statement in program, in order.
func (r *Resolver) Resolve(program []ast.Stmt) {
	r.resolveStmts(program)
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(s.Stmts)
		r.endScope()
	case *ast.Var:
		r.declare(s.Name)
		if s.Init != nil {
			r.resolveExpr(s.Init)
		}
		r.define(s.Name)
	case *ast.Function:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, ftFunction)
	case *ast.ExpressionStmt:
		r.resolveExpr(s.Expr)
	case *ast.If:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *ast.Print:
		r.resolveExpr(s.Expr)
	case *ast.Return:
		if r.current == ftNone {
			r.sink.ErrorAt(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			r.resolveExpr(s.Value)
		}
	case *ast.While:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Body)
	case *ast.Class:
		r.sink.ErrorAt(s.Name, "Classes are not supported.")
	default:
		r.sink.Error(0, "internal error: unresolved statement kind")
	}
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if initialized, declared := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; declared && !initialized {
				r.sink.ErrorAt(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name.Lexeme)
	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name.Lexeme)
	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}
	case *ast.Grouping:
		r.resolveExpr(e.Inner)
	case *ast.Literal:
		// no bindings to resolve
	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Unary:
		r.resolveExpr(e.Right)
	case *ast.Get:
		r.resolveExpr(e.Object)
	case *ast.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *ast.This, *ast.Super:
		// Reserved shapes; no bindings (classes unsupported, spec §9).
	default:
		r.sink.Error(0, "internal error: unresolved expression kind")
	}
}

func (r *Resolver) resolveFunction(fn *ast.Function, ft functionType) {
	enclosing := r.current
	r.current = ft

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.current = enclosing
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, scope{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare records name in the current scope as not-yet-initialized. A
// global (stack-empty) declaration is silently accepted; re-declaring a
// name already present in the current scope is a resolve error (spec §4.3).
func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	current := r.scopes[len(r.scopes)-1]
	if _, exists := current[name.Lexeme]; exists {
		r.sink.ErrorAt(name, "Already a variable with this name in this scope.")
	}
	current[name.Lexeme] = false
}

// define marks name as initialized in the current scope; a no-op at global
// scope.
func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// resolveLocal walks the scope stack from innermost outward; the first
// scope containing name yields its depth. No match means global — nothing
// is recorded and the Interpreter falls back to globals.
func (r *Resolver) resolveLocal(expr ast.Expr, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.locals[expr.ID()] = len(r.scopes) - 1 - i
			return
		}
	}
}
