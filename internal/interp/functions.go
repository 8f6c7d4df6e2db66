package interp

import (
	"github.com/yuhlearn/goslox/internal/ast"
	"github.com/yuhlearn/goslox/internal/runtime"
)

// makeFunction builds a runtime.Function value capturing closure as the
// environment active at the point of declaration (spec §4.2: "A user
// function's closure is the environment active at the point of function
// declaration, not the point of call"). The invoke callback implements the
// four-step call protocol of spec §4.2.
func (i *Interpreter) makeFunction(decl *ast.Function, closure *runtime.Environment) *runtime.Function {
	var fn *runtime.Function
	fn = runtime.NewFunction(decl, closure, func(args []runtime.Value) (runtime.Value, error) {
		return i.callUserFunction(fn, args)
	})
	return fn
}

// callUserFunction is the only place a Return ControlFlow signal is
// consumed (spec §9: "caught only at the user-function call site").
func (i *Interpreter) callUserFunction(fn *runtime.Function, args []runtime.Value) (runtime.Value, error) {
	if i.maxCallDepth > 0 && i.callDepth >= i.maxCallDepth {
		return nil, runtime.NewRuntimeError(fn.Decl.Pos().Line, "Stack overflow in '%s'.", fn.Name())
	}

	callEnv := runtime.NewEnvironment(fn.Closure)
	for idx, param := range fn.Decl.Params {
		callEnv.Define(param.Lexeme, args[idx])
	}

	if i.trace != nil {
		i.trace("enter %s frame=%s bindings=%v", fn.Name(), callEnv.ID(), callEnv.Names())
	}

	i.callDepth++
	cf, err := i.executeBlock(fn.Decl.Body, callEnv)
	i.callDepth--
	if err != nil {
		return nil, err
	}

	if i.trace != nil {
		i.trace("leave %s frame=%s", fn.Name(), callEnv.ID())
	}

	if cf.Kind == runtime.FlowReturn {
		return cf.Value, nil
	}
	return runtime.Nil{}, nil
}
