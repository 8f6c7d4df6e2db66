package runtime

import "time"

// RegisterNatives installs the Language's mandated native surface into
// globals: exactly clock() (spec §4.2). Grounded on the teacher's
// internal/interp/builtins/registry.go table-of-natives pattern, trimmed to
// the single native this spec requires.
func RegisterNatives(globals *Environment) {
	RegisterNativesFiltered(globals, nil)
}

// RegisterNativesFiltered installs the native surface, skipping any native
// whose name is absent from allowed (when allowed is non-empty). This backs
// the optional allowed_natives sidecar config (SPEC_FULL.md §6); an empty
// allowed list means "no restriction".
func RegisterNativesFiltered(globals *Environment, allowed []string) {
	all := []*Native{
		{
			ArityValue: 0,
			NameValue:  "clock",
			Fn: func(args []Value) (Value, error) {
				return Number{Value: float64(time.Now().UnixNano()) / 1e9}, nil
			},
		},
	}

	permit := func(name string) bool {
		if len(allowed) == 0 {
			return true
		}
		for _, a := range allowed {
			if a == name {
				return true
			}
		}
		return false
	}

	for _, n := range all {
		if permit(n.NameValue) {
			globals.Define(n.NameValue, n)
		}
	}
}
