package ops

import "github.com/dekarrin/zil/internal/zilast"

// registerObjectOps installs MOVE, FSET, FCLEAR, GETP, PUTP, LOC, REMOVE,
// HELD?, and MAP-CONTENTS.
func registerObjectOps(r *Registry) {
	r.register("MOVE", opMove)
	r.register("FSET", opFset)
	r.register("FCLEAR", opFclear)
	r.register("GETP", opGetp)
	r.register("PUTP", opPutp)
	r.register("LOC", opLoc)
	r.register("REMOVE", opRemove)
	r.register("HELD?", opHeld)
	r.register("MAP-CONTENTS", opMapContents)
}

func opMove(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 2 {
		return zilast.False, nil
	}
	obj, ok := resolveObject(args[0], ev)
	if !ok {
		return zilast.False, nil
	}
	dest, ok := resolveObject(args[1], ev)
	if !ok {
		return zilast.False, nil
	}
	obj.MoveTo(dest)
	return zilast.True, nil
}

func opFset(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 2 {
		return zilast.False, nil
	}
	obj, ok := resolveObject(args[0], ev)
	if !ok {
		return zilast.False, nil
	}
	flag, ok := flagName(args[1])
	if !ok {
		return zilast.False, nil
	}
	obj.SetFlag(flag)
	return zilast.True, nil
}

func opFclear(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 2 {
		return zilast.False, nil
	}
	obj, ok := resolveObject(args[0], ev)
	if !ok {
		return zilast.False, nil
	}
	flag, ok := flagName(args[1])
	if !ok {
		return zilast.False, nil
	}
	obj.ClearFlag(flag)
	return zilast.True, nil
}

// opGetp implements property lookup with property-default fallback. The
// fallback itself lives on World (see World.GetProperty), so the op needs
// access to the object's world, not just the object.
func opGetp(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 2 {
		return zilast.Nil, nil
	}
	obj, ok := resolveObject(args[0], ev)
	if !ok {
		return zilast.Nil, nil
	}
	prop, ok := flagName(args[1])
	if !ok {
		return zilast.Nil, nil
	}
	return ev.World().GetProperty(obj, prop), nil
}

func opPutp(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 3 {
		return zilast.False, nil
	}
	obj, ok := resolveObject(args[0], ev)
	if !ok {
		return zilast.False, nil
	}
	prop, ok := flagName(args[1])
	if !ok {
		return zilast.False, nil
	}
	v, err := ev.Eval(args[2])
	if err != nil {
		return zilast.Nil, err
	}
	obj.PutProperty(prop, v)
	return zilast.True, nil
}

func opLoc(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.Nil, nil
	}
	obj, ok := resolveObject(args[0], ev)
	if !ok || obj.Loc() == nil {
		return zilast.Nil, nil
	}
	return zilast.NewObject(zilast.ObjectHandle{Name: obj.Loc().Name}), nil
}

func opRemove(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.False, nil
	}
	obj, ok := resolveObject(args[0], ev)
	if !ok {
		return zilast.False, nil
	}
	obj.Remove()
	return zilast.True, nil
}

func opHeld(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.False, nil
	}
	obj, ok := resolveObject(args[0], ev)
	if !ok {
		return zilast.False, nil
	}
	player, ok := ev.Global(zilast.Intern("PLAYER"))
	if !ok {
		return zilast.False, nil
	}
	playerObj, ok := objectFromValue(player, ev)
	if !ok {
		return zilast.False, nil
	}
	return boolVal(obj.In(playerObj)), nil
}

// opMapContents implements "<MAP-CONTENTS (var container) body...>": binds
// var to each child of container in turn and evaluates body.
func opMapContents(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.Nil, nil
	}
	binding, ok := args[0].(*zilast.List)
	if !ok || len(binding.Elements) < 2 {
		return zilast.Nil, nil
	}
	varName, ok := flagName(binding.Elements[0])
	if !ok {
		return zilast.Nil, nil
	}
	container, ok := resolveObject(binding.Elements[1], ev)
	if !ok {
		return zilast.Nil, nil
	}
	body := args[1:]

	var last zilast.Value = zilast.Nil
	for child := container.First(); child != nil; child = child.NextSibling() {
		ev.SetLocal(varName, zilast.NewObject(zilast.ObjectHandle{Name: child.Name}))
		for _, expr := range body {
			v, err := ev.Eval(expr)
			if err != nil {
				return zilast.Nil, err
			}
			last = v
		}
	}
	return last, nil
}
