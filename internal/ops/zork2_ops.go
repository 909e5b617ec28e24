package ops

import (
	"sort"

	"github.com/dekarrin/zil/internal/zilast"
)

// registerZork2Ops installs the handful of operations that showed up only in
// later games in the series: NEXTP, FIXED-FONT-ON/OFF, PUSH, and RSTACK.
func registerZork2Ops(r *Registry) {
	r.register("NEXTP", opNextp)
	r.register("FIXED-FONT-ON", opFixedFontOn)
	r.register("FIXED-FONT-OFF", opFixedFontOff)
	r.register("PUSH", opPush)
	r.register("RSTACK", opRstack)
}

// opNextp walks an object's properties in a fixed (sorted) order, since the
// world model keeps them in a map. <NEXTP obj 0> (or any falsy prop) returns
// the first property name; otherwise it returns the name after prop, or 0
// once the list is exhausted.
func opNextp(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 2 {
		return zilast.NewNumber(0), nil
	}
	obj, ok := resolveObject(args[0], ev)
	if !ok {
		return zilast.NewNumber(0), nil
	}
	names := make([]string, 0, len(obj.Properties))
	for p := range obj.Properties {
		names = append(names, p.String())
	}
	sort.Strings(names)
	if len(names) == 0 {
		return zilast.NewNumber(0), nil
	}

	propVal, err := ev.Eval(args[1])
	if err != nil {
		return zilast.Nil, err
	}
	if propVal.IsZero() || propVal.Kind() == zilast.KindNil {
		return zilast.NewAtomValue(zilast.Intern(names[0])), nil
	}
	target := propVal.Str()
	if propVal.Kind() == zilast.KindAtom {
		target = propVal.Atom().String()
	}
	for i, n := range names {
		if n == target {
			if i+1 < len(names) {
				return zilast.NewAtomValue(zilast.Intern(names[i+1])), nil
			}
			return zilast.NewNumber(0), nil
		}
	}
	return zilast.NewNumber(0), nil
}

func opFixedFontOn(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	ev.SetGlobal(zilast.Intern("FIXED-FONT"), zilast.True)
	return zilast.True, nil
}

func opFixedFontOff(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	ev.SetGlobal(zilast.Intern("FIXED-FONT"), zilast.False)
	return zilast.True, nil
}

func opPush(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.Nil, nil
	}
	v, err := ev.Eval(args[0])
	if err != nil {
		return zilast.Nil, err
	}
	ev.Push(v)
	return v, nil
}

func opRstack(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	v, ok := ev.PopStack()
	if !ok {
		return zilast.Nil, nil
	}
	return v, nil
}
