package ops

import (
	"github.com/dekarrin/zil/internal/zilast"
)

// registerControlIO installs PERFORM, APPLY, GOTO, RANDOM, PRINTD, and CRLF.
func registerControlIO(r *Registry) {
	r.register("PERFORM", opPerform)
	r.register("APPLY", opApply)
	r.register("GOTO", opGoto)
	r.register("RANDOM", opRandom)
	r.register("PRINTD", opPrintd)
	r.register("CRLF", opCrlf)
}

// opPerform simulates a parsed command: it sets PRSA/PRSO/PRSI and invokes
// the named action routine directly, since the full verb-to-action dispatch
// lives in the command pipeline, not here.
func opPerform(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.Nil, nil
	}
	verb, ok := flagName(args[0])
	if !ok {
		v, err := ev.Eval(args[0])
		if err != nil {
			return zilast.Nil, err
		}
		verb = v.Atom()
	}
	ev.SetGlobal(zilast.Intern("PRSA"), zilast.NewAtomValue(verb))

	if len(args) > 1 {
		v, err := ev.Eval(args[1])
		if err != nil {
			return zilast.Nil, err
		}
		ev.SetGlobal(zilast.Intern("PRSO"), v)
	} else {
		ev.SetGlobal(zilast.Intern("PRSO"), zilast.Nil)
	}

	if len(args) > 2 {
		v, err := ev.Eval(args[2])
		if err != nil {
			return zilast.Nil, err
		}
		ev.SetGlobal(zilast.Intern("PRSI"), v)
	} else {
		ev.SetGlobal(zilast.Intern("PRSI"), zilast.Nil)
	}

	if _, ok := ev.World().Routine(verb); ok {
		return ev.CallRoutine(verb, nil)
	}
	return zilast.True, nil
}

func opApply(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.Nil, nil
	}
	fn, err := ev.Eval(args[0])
	if err != nil {
		return zilast.Nil, err
	}
	if fn.Kind() != zilast.KindAtom {
		return zilast.Nil, nil
	}
	callArgs, err := evalArgs(args[1:], ev)
	if err != nil {
		return zilast.Nil, err
	}
	if _, ok := ev.World().Routine(fn.Atom()); !ok {
		return zilast.Nil, nil
	}
	return ev.CallRoutine(fn.Atom(), callArgs)
}

// opGoto moves the player to a new room, sets HERE, and calls the V-LOOK
// routine if the world defines one; otherwise it prints the room's DESC
// property.
func opGoto(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.Nil, nil
	}
	room, ok := resolveObject(args[0], ev)
	if !ok {
		return zilast.Nil, nil
	}
	ev.SetGlobal(zilast.Intern("HERE"), zilast.NewObject(zilast.ObjectHandle{Name: room.Name}))

	if playerVal, ok := ev.Global(zilast.Intern("PLAYER")); ok {
		if player, ok := objectFromValue(playerVal, ev); ok {
			player.MoveTo(room)
		}
	}

	if _, ok := ev.World().Routine(zilast.Intern("V-LOOK")); ok {
		return ev.CallRoutine(zilast.Intern("V-LOOK"), nil)
	}
	if desc, ok := room.GetProperty(zilast.Intern("DESC")); ok {
		ev.Print(desc.Str())
		ev.Print("\n")
	}
	return zilast.True, nil
}

// opRandom returns a random integer in [1, N], matching ZIL's inclusive
// range rather than Go's half-open convention.
func opRandom(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	n, err := numArg(args, 0, ev)
	if err != nil {
		return zilast.Nil, err
	}
	if n < 1 {
		return zilast.NewNumber(1), nil
	}
	return zilast.NewNumber(ev.Random(n) + 1), nil
}

func opPrintd(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.True, nil
	}
	obj, ok := resolveObject(args[0], ev)
	if !ok {
		return zilast.True, nil
	}
	if desc, ok := obj.GetProperty(zilast.Intern("DESC")); ok {
		ev.Print(desc.Str())
	} else {
		ev.Print(obj.Name.String())
	}
	return zilast.True, nil
}

func opCrlf(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	ev.Print("\n")
	return zilast.True, nil
}

