package runtime

// ControlFlowKind distinguishes normal execution from a Return unwind.
// Grounded on the teacher's ControlFlowKind enum
// (internal/interp/runtime/execution_context.go), trimmed to the two cases
// the Language has: the Language has no break/continue (spec Non-goals: no
// such statements reach While), so only FlowNone/FlowReturn exist here.
type ControlFlowKind int

const (
	FlowNone ControlFlowKind = iota
	FlowReturn
)

// ControlFlow is the typed, non-error unwinding carrier for `return` spec
// §9 calls for: "a typed unwinding result at each call boundary... bubbled
// up and caught only at the user-function call site." It is threaded
// through statement execution (not thrown/panicked): every statement-
// executing method returns one, the Interpreter checks IsActive() after
// each statement in a block/loop body and stops early, and only the
// user-function call site (interp.callUserFunction) ever clears it.
type ControlFlow struct {
	Kind  ControlFlowKind
	Value Value // populated only when Kind == FlowReturn
}

// None is the steady-state "keep executing" signal.
func None() ControlFlow { return ControlFlow{Kind: FlowNone} }

// Return carries a function result value out of nested statement execution.
func Return(v Value) ControlFlow { return ControlFlow{Kind: FlowReturn, Value: v} }

// IsActive reports whether execution should unwind rather than continue.
func (c ControlFlow) IsActive() bool { return c.Kind != FlowNone }
