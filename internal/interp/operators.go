package interp

import (
	"github.com/yuhlearn/goslox/internal/runtime"
	"github.com/yuhlearn/goslox/internal/token"
)

// applyBinary implements spec §4.4's binary operator table.
func applyBinary(op token.Token, left, right runtime.Value) (runtime.Value, error) {
	line := op.Pos.Line

	switch op.Kind {
	case token.MINUS, token.STAR, token.SLASH:
		l, r, ok := bothNumbers(left, right)
		if !ok {
			return nil, runtime.NewRuntimeError(line, "Operands must be numbers.")
		}
		switch op.Kind {
		case token.MINUS:
			return runtime.Number{Value: l - r}, nil
		case token.STAR:
			return runtime.Number{Value: l * r}, nil
		default: // SLASH: IEEE-754 semantics, no special-case for /0 (spec §4.4)
			return runtime.Number{Value: l / r}, nil
		}

	case token.PLUS:
		if l, r, ok := bothNumbers(left, right); ok {
			return runtime.Number{Value: l + r}, nil
		}
		if l, r, ok := bothStrings(left, right); ok {
			return runtime.Str{Value: l + r}, nil
		}
		return nil, runtime.NewRuntimeError(line, "Operands must be two numbers or two strings.")

	case token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL:
		l, r, ok := bothNumbers(left, right)
		if !ok {
			return nil, runtime.NewRuntimeError(line, "Operands must be numbers.")
		}
		switch op.Kind {
		case token.GREATER:
			return runtime.Bool{Value: l > r}, nil
		case token.GREATER_EQUAL:
			return runtime.Bool{Value: l >= r}, nil
		case token.LESS:
			return runtime.Bool{Value: l < r}, nil
		default:
			return runtime.Bool{Value: l <= r}, nil
		}

	case token.EQUAL_EQUAL:
		return runtime.Bool{Value: runtime.Equal(left, right)}, nil
	case token.BANG_EQUAL:
		return runtime.Bool{Value: !runtime.Equal(left, right)}, nil

	default:
		return nil, runtime.NewRuntimeError(line, "Unsupported binary operator.")
	}
}

func bothNumbers(left, right runtime.Value) (float64, float64, bool) {
	l, ok1 := left.(runtime.Number)
	r, ok2 := right.(runtime.Number)
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return l.Value, r.Value, true
}

func bothStrings(left, right runtime.Value) (string, string, bool) {
	l, ok1 := left.(runtime.Str)
	r, ok2 := right.(runtime.Str)
	if !ok1 || !ok2 {
		return "", "", false
	}
	return l.Value, r.Value, true
}
