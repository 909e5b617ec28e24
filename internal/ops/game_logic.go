package ops

import "github.com/dekarrin/zil/internal/zilast"

// registerGameLogic installs META-LOC, LIT?, ACCESSIBLE?, and JIGS-UP.
func registerGameLogic(r *Registry) {
	r.register("META-LOC", opMetaLoc)
	r.register("LIT?", opLit)
	r.register("ACCESSIBLE?", opAccessible)
	r.register("JIGS-UP", opJigsUp)
}

func opMetaLoc(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.Nil, nil
	}
	obj, ok := resolveObject(args[0], ev)
	if !ok {
		return zilast.Nil, nil
	}
	if ev.World().IsRoom(obj) {
		return zilast.NewObject(zilast.ObjectHandle{Name: obj.Name}), nil
	}
	room := obj.MetaLoc(ev.World().IsRoom)
	if room == nil {
		return zilast.Nil, nil
	}
	return zilast.NewObject(zilast.ObjectHandle{Name: room.Name}), nil
}

func opLit(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.False, nil
	}
	obj, ok := resolveObject(args[0], ev)
	if !ok {
		return zilast.False, nil
	}
	return boolVal(obj.HasFlag(zilast.Intern("LIGHTBIT"))), nil
}

// opAccessible reports whether obj can be reached from HERE or PLAYER:
// directly contained by either, or nested through a chain of open
// containers leading to one of them.
func opAccessible(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.False, nil
	}
	obj, ok := resolveObject(args[0], ev)
	if !ok {
		return zilast.False, nil
	}

	here, hereOK := ev.Global(zilast.Intern("HERE"))
	player, playerOK := ev.Global(zilast.Intern("PLAYER"))

	cur := obj.Loc()
	for cur != nil {
		if hereOK && here.Kind() == zilast.KindObject && cur.Name == here.Object().Name {
			return zilast.True, nil
		}
		if playerOK && player.Kind() == zilast.KindObject && cur.Name == player.Object().Name {
			return zilast.True, nil
		}
		if cur.HasFlag(zilast.Intern("CONTAINERBIT")) && !cur.HasFlag(zilast.Intern("OPENBIT")) {
			return zilast.False, nil
		}
		cur = cur.Loc()
	}
	return zilast.False, nil
}

func opJigsUp(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	msg := "You have died."
	if len(args) > 0 {
		v, err := ev.Eval(args[0])
		if err != nil {
			return zilast.Nil, err
		}
		msg = v.Str()
	}
	ev.Print("\n" + msg + "\n")
	ev.SetGlobal(zilast.Intern("DEAD"), zilast.True)
	return zilast.True, nil
}
