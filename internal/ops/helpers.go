package ops

import (
	"github.com/dekarrin/zil/internal/world"
	"github.com/dekarrin/zil/internal/zilast"
)

// evalArgs evaluates every node in args in order, stopping at the first
// error.
func evalArgs(args []zilast.Node, ev Evaluator) ([]zilast.Value, error) {
	out := make([]zilast.Value, len(args))
	for i, a := range args {
		v, err := ev.Eval(a)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// resolveObject evaluates n and, if the result names a world object,
// returns it.
func resolveObject(n zilast.Node, ev Evaluator) (*world.Object, bool) {
	v, err := ev.Eval(n)
	if err != nil {
		return nil, false
	}
	return objectFromValue(v, ev)
}

func objectFromValue(v zilast.Value, ev Evaluator) (*world.Object, bool) {
	if v.Kind() != zilast.KindObject {
		return nil, false
	}
	return ev.World().Object(v.Object().Name)
}

// flagName resolves a flag argument without evaluating it as a variable
// reference: bare atoms and quoted atoms name the flag directly; a
// GlobalRef like ,TAKEBIT also names the flag directly rather than being
// looked up as a global. This matches the source convention that flag
// names are never themselves stored as global values.
func flagName(n zilast.Node) (zilast.Atom, bool) {
	switch v := n.(type) {
	case *zilast.AtomNode:
		return v.Name, true
	case *zilast.QuotedAtom:
		return v.Name, true
	case *zilast.GlobalRef:
		return v.Name, true
	case *zilast.LocalRef:
		return v.Name, true
	default:
		return "", false
	}
}

func numArg(args []zilast.Node, i int, ev Evaluator) (int, error) {
	if i >= len(args) {
		return 0, nil
	}
	v, err := ev.Eval(args[i])
	if err != nil {
		return 0, err
	}
	return v.Num(), nil
}

func boolVal(b bool) zilast.Value { return zilast.NewBool(b) }
