package runtime

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// UndefinedVariableError is the structured runtime failure spec §4.1
// mandates for Get/Assign misses: a name and the source line of the reference.
type UndefinedVariableError struct {
	Name string
	Line int
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("Undefined variable '%s'.", e.Name)
}

// Environment is a single frame of name->value bindings with an optional
// parent, per spec §4.1. Frames are plain maps; the chain pointer is
// immutable after construction. Grounded on the teacher's
// internal/interp/runtime/environment.go shape (map + outer pointer), with
// the depth-indexed get_at/assign_at/ancestor operations spec §4.1 adds on
// top (the teacher has no resolver, so it never needed them).
type Environment struct {
	values map[string]Value
	parent *Environment
	// id identifies this activation record for --trace output (SPEC_FULL.md
	// §6): two frames of the same recursive function get distinct ids even
	// though they share a function name.
	id uuid.UUID
}

// NewEnvironment creates an empty frame with optional parent (nil for the
// root/globals frame).
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{values: make(map[string]Value), parent: parent, id: uuid.New()}
}

// ID returns this frame's debug identifier, used by --trace.
func (e *Environment) ID() uuid.UUID { return e.id }

// Define unconditionally inserts/overwrites a binding in this frame. Never
// fails; used for variable declarations, parameter binding, and hoisting a
// function's own name into its closure frame.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Get searches this frame, then enclosing frames, for name.
func (e *Environment) Get(name string, line int) (Value, error) {
	if v, ok := e.values[name]; ok {
		return v, nil
	}
	if e.parent != nil {
		return e.parent.Get(name, line)
	}
	return nil, &UndefinedVariableError{Name: name, Line: line}
}

// Assign locates the first enclosing frame that already contains name and
// overwrites it there. It never creates a new binding; an unbound name is
// an UndefinedVariableError.
func (e *Environment) Assign(name string, value Value, line int) error {
	if _, ok := e.values[name]; ok {
		e.values[name] = value
		return nil
	}
	if e.parent != nil {
		return e.parent.Assign(name, value, line)
	}
	return &UndefinedVariableError{Name: name, Line: line}
}

// ancestor walks exactly distance parent links. The Resolver guarantees
// distance never exceeds the real chain depth, so this never returns nil
// for a distance it produced.
func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.parent
	}
	return env
}

// GetAt reads name from the frame exactly distance parents up, per spec
// §4.1. It must never fall back past distance — doing so would read the
// wrong (shadowed) binding.
func (e *Environment) GetAt(distance int, name string) Value {
	frame := e.ancestor(distance)
	// Presence at this frame is guaranteed by the Resolver; a missing
	// binding here would be a Resolver/Interpreter desync bug.
	return frame.values[name]
}

// AssignAt writes name in the frame exactly distance parents up.
func (e *Environment) AssignAt(distance int, name string, value Value) {
	frame := e.ancestor(distance)
	frame.values[name] = value
}

// Names returns this frame's own binding names in sorted order, used by
// --trace to print a deterministic frame dump (SPEC_FULL.md §6: "trace
// output lists each frame's own bindings, sorted, beside its id").
func (e *Environment) Names() []string {
	names := maps.Keys(e.values)
	slices.Sort(names)
	return names
}
